package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finplan/backend/internal/domain/entity"
)

// HoldingRepository defines the interface for portfolio holding persistence.
type HoldingRepository interface {
	Create(ctx context.Context, holding *entity.Holding) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Holding, error)
	// FindByUserID returns the holdings of a user ordered by purchase date.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Holding, error)
	Update(ctx context.Context, holding *entity.Holding) error
	Delete(ctx context.Context, id uuid.UUID) error
}
