// Package portfolio contains holding and portfolio summary use cases.
package portfolio

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/finplan/backend/internal/application/adapter"
	"github.com/finplan/backend/internal/domain/entity"
	domainerror "github.com/finplan/backend/internal/domain/error"
)

func findOwnedHolding(ctx context.Context, repo adapter.HoldingRepository, holdingID, userID uuid.UUID) (*entity.Holding, error) {
	holding, err := repo.FindByID(ctx, holdingID)
	if err != nil {
		if errors.Is(err, domainerror.ErrHoldingNotFound) {
			return nil, domainerror.NewHoldingError(
				domainerror.ErrCodeHoldingNotFound,
				"holding not found",
				domainerror.ErrHoldingNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find holding: %w", err)
	}

	if holding.UserID != userID {
		return nil, domainerror.NewHoldingError(
			domainerror.ErrCodeUnauthorizedHoldingAccess,
			"not authorized to access this holding",
			domainerror.ErrUnauthorizedHoldingAccess,
		)
	}
	return holding, nil
}

func validateHolding(h *entity.Holding, asOf time.Time) error {
	if strings.TrimSpace(h.Name) == "" {
		return domainerror.NewHoldingError(domainerror.ErrCodeMissingHoldingFields, "name is required", nil)
	}
	if !h.Type.IsValid() {
		return domainerror.NewHoldingError(
			domainerror.ErrCodeInvalidHoldingType,
			"type must be one of mutual_fund, stock, fd, ppf, gold, other",
			domainerror.ErrInvalidHoldingType,
		)
	}
	if !(h.InvestedAmount > 0) || h.CurrentValue < 0 || math.IsInf(h.InvestedAmount, 0) || math.IsInf(h.CurrentValue, 0) || math.IsNaN(h.CurrentValue) {
		return domainerror.NewHoldingError(
			domainerror.ErrCodeInvalidHoldingAmount,
			"invested amount must be greater than zero and current value must not be negative",
			domainerror.ErrInvalidHoldingAmount,
		)
	}
	if h.PurchaseDate.IsZero() || h.PurchaseDate.After(asOf) {
		return domainerror.NewHoldingError(
			domainerror.ErrCodeInvalidPurchaseDate,
			"purchase date is required and cannot be in the future",
			domainerror.ErrInvalidPurchaseDate,
		)
	}
	return nil
}
