// Package goal contains goal-related use cases.
package goal

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

// findOwnedGoal loads a goal and checks that it belongs to userID.
func findOwnedGoal(ctx context.Context, repo adapter.GoalRepository, goalID, userID uuid.UUID, action string) (*entity.Goal, error) {
	goal, err := repo.FindByID(ctx, goalID)
	if err != nil {
		if errors.Is(err, domainerror.ErrGoalNotFound) {
			return nil, domainerror.NewGoalError(
				domainerror.ErrCodeGoalNotFound,
				"goal not found",
				domainerror.ErrGoalNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find goal: %w", err)
	}

	if goal.UserID != userID {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeUnauthorizedGoalAccess,
			"not authorized to "+action+" this goal",
			domainerror.ErrUnauthorizedGoalAccess,
		)
	}
	return goal, nil
}

// validateGoal checks the user-editable fields of a goal.
func validateGoal(goal *entity.Goal) error {
	if strings.TrimSpace(goal.Name) == "" {
		return domainerror.NewGoalError(
			domainerror.ErrCodeMissingGoalFields,
			"name is required",
			nil,
		)
	}
	if goal.TargetAmount <= 0 || math.IsNaN(goal.TargetAmount) || math.IsInf(goal.TargetAmount, 0) {
		return domainerror.NewGoalError(
			domainerror.ErrCodeInvalidTargetAmount,
			"target amount must be greater than zero",
			domainerror.ErrInvalidTargetAmount,
		)
	}
	if goal.TargetDate.IsZero() {
		return domainerror.NewGoalError(
			domainerror.ErrCodeInvalidTargetDate,
			"target date is required",
			domainerror.ErrInvalidTargetDate,
		)
	}
	if goal.CurrentAmount < 0 || goal.MonthlyContribution < 0 {
		return domainerror.NewGoalError(
			domainerror.ErrCodeInvalidGoalAmounts,
			"current amount and monthly contribution must not be negative",
			domainerror.ErrInvalidGoalAmounts,
		)
	}
	if goal.ExpectedReturnPercent <= -100 || goal.ExpectedReturnPercent > 100 {
		return domainerror.NewGoalError(
			domainerror.ErrCodeInvalidGoalAmounts,
			"expected return must be between -100% and 100%",
			domainerror.ErrInvalidGoalAmounts,
		)
	}
	return nil
}

func today() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}
