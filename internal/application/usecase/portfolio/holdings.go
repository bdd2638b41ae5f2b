package portfolio

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finplan/backend/internal/application/adapter"
	"github.com/finplan/backend/internal/domain/entity"
)

// ListHoldingsInput represents the input for listing holdings.
type ListHoldingsInput struct {
	UserID uuid.UUID
}

// ListHoldingsOutput represents the output of listing holdings.
type ListHoldingsOutput struct {
	Holdings []*entity.Holding
}

// ListHoldingsUseCase lists the holdings of a user.
type ListHoldingsUseCase struct {
	holdingRepo adapter.HoldingRepository
}

// NewListHoldingsUseCase creates a new ListHoldingsUseCase instance.
func NewListHoldingsUseCase(holdingRepo adapter.HoldingRepository) *ListHoldingsUseCase {
	return &ListHoldingsUseCase{holdingRepo: holdingRepo}
}

// Execute performs the listing.
func (uc *ListHoldingsUseCase) Execute(ctx context.Context, input ListHoldingsInput) (*ListHoldingsOutput, error) {
	holdings, err := uc.holdingRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	return &ListHoldingsOutput{Holdings: holdings}, nil
}

// CreateHoldingInput represents the input for holding creation.
type CreateHoldingInput struct {
	UserID         uuid.UUID
	Name           string
	Type           entity.HoldingType
	InvestedAmount float64
	CurrentValue   float64
	PurchaseDate   time.Time
}

// CreateHoldingOutput represents the output of holding creation.
type CreateHoldingOutput struct {
	Holding *entity.Holding
}

// CreateHoldingUseCase handles holding creation.
type CreateHoldingUseCase struct {
	holdingRepo adapter.HoldingRepository
}

// NewCreateHoldingUseCase creates a new CreateHoldingUseCase instance.
func NewCreateHoldingUseCase(holdingRepo adapter.HoldingRepository) *CreateHoldingUseCase {
	return &CreateHoldingUseCase{holdingRepo: holdingRepo}
}

// Execute performs the holding creation.
func (uc *CreateHoldingUseCase) Execute(ctx context.Context, input CreateHoldingInput) (*CreateHoldingOutput, error) {
	holding := entity.NewHolding(input.UserID, input.Name, input.Type, input.InvestedAmount, input.CurrentValue, input.PurchaseDate.UTC())
	if err := validateHolding(holding, time.Now().UTC()); err != nil {
		return nil, err
	}

	if err := uc.holdingRepo.Create(ctx, holding); err != nil {
		return nil, fmt.Errorf("failed to create holding: %w", err)
	}
	return &CreateHoldingOutput{Holding: holding}, nil
}

// UpdateHoldingInput represents the input for holding update. Nil fields are left unchanged.
type UpdateHoldingInput struct {
	HoldingID      uuid.UUID
	UserID         uuid.UUID
	Name           *string
	Type           *entity.HoldingType
	InvestedAmount *float64
	CurrentValue   *float64
	PurchaseDate   *time.Time
}

// UpdateHoldingOutput represents the output of holding update.
type UpdateHoldingOutput struct {
	Holding *entity.Holding
}

// UpdateHoldingUseCase handles holding updates, typically a new current value.
type UpdateHoldingUseCase struct {
	holdingRepo adapter.HoldingRepository
}

// NewUpdateHoldingUseCase creates a new UpdateHoldingUseCase instance.
func NewUpdateHoldingUseCase(holdingRepo adapter.HoldingRepository) *UpdateHoldingUseCase {
	return &UpdateHoldingUseCase{holdingRepo: holdingRepo}
}

// Execute performs the holding update.
func (uc *UpdateHoldingUseCase) Execute(ctx context.Context, input UpdateHoldingInput) (*UpdateHoldingOutput, error) {
	holding, err := findOwnedHolding(ctx, uc.holdingRepo, input.HoldingID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		holding.Name = *input.Name
	}
	if input.Type != nil {
		holding.Type = *input.Type
	}
	if input.InvestedAmount != nil {
		holding.InvestedAmount = *input.InvestedAmount
	}
	if input.CurrentValue != nil {
		holding.CurrentValue = *input.CurrentValue
	}
	if input.PurchaseDate != nil {
		holding.PurchaseDate = input.PurchaseDate.UTC()
	}

	now := time.Now().UTC()
	if err := validateHolding(holding, now); err != nil {
		return nil, err
	}
	holding.UpdatedAt = now

	if err := uc.holdingRepo.Update(ctx, holding); err != nil {
		return nil, fmt.Errorf("failed to update holding: %w", err)
	}
	return &UpdateHoldingOutput{Holding: holding}, nil
}

// DeleteHoldingInput represents the input for holding deletion.
type DeleteHoldingInput struct {
	HoldingID uuid.UUID
	UserID    uuid.UUID
}

// DeleteHoldingUseCase handles holding deletion.
type DeleteHoldingUseCase struct {
	holdingRepo adapter.HoldingRepository
}

// NewDeleteHoldingUseCase creates a new DeleteHoldingUseCase instance.
func NewDeleteHoldingUseCase(holdingRepo adapter.HoldingRepository) *DeleteHoldingUseCase {
	return &DeleteHoldingUseCase{holdingRepo: holdingRepo}
}

// Execute performs the holding deletion.
func (uc *DeleteHoldingUseCase) Execute(ctx context.Context, input DeleteHoldingInput) error {
	if _, err := findOwnedHolding(ctx, uc.holdingRepo, input.HoldingID, input.UserID); err != nil {
		return err
	}
	if err := uc.holdingRepo.Delete(ctx, input.HoldingID); err != nil {
		return fmt.Errorf("failed to delete holding: %w", err)
	}
	return nil
}
