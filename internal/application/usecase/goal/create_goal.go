package goal

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finplan/backend/internal/application/adapter"
	"github.com/finplan/backend/internal/domain/entity"
)

// CreateGoalInput represents the input for goal creation.
type CreateGoalInput struct {
	UserID                uuid.UUID
	Name                  string
	TargetAmount          float64
	TargetDate            time.Time
	CurrentAmount         float64
	MonthlyContribution   float64
	ExpectedReturnPercent float64
}

// CreateGoalOutput represents the output of goal creation.
type CreateGoalOutput struct {
	Goal *entity.Goal
}

// CreateGoalUseCase handles goal creation logic.
type CreateGoalUseCase struct {
	goalRepo adapter.GoalRepository
}

// NewCreateGoalUseCase creates a new CreateGoalUseCase instance.
func NewCreateGoalUseCase(goalRepo adapter.GoalRepository) *CreateGoalUseCase {
	return &CreateGoalUseCase{
		goalRepo: goalRepo,
	}
}

// Execute performs the goal creation.
func (uc *CreateGoalUseCase) Execute(ctx context.Context, input CreateGoalInput) (*CreateGoalOutput, error) {
	goal := entity.NewGoal(
		input.UserID,
		input.Name,
		input.TargetAmount,
		input.TargetDate.UTC(),
		input.CurrentAmount,
		input.MonthlyContribution,
		input.ExpectedReturnPercent,
	)

	if err := validateGoal(goal); err != nil {
		return nil, err
	}

	if err := uc.goalRepo.Create(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	return &CreateGoalOutput{
		Goal: goal,
	}, nil
}
