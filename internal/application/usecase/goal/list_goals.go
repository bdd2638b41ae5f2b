package goal

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finplan/backend/internal/application/adapter"
	"github.com/finplan/backend/internal/domain/entity"
	"github.com/finplan/backend/internal/domain/projection"
)

// ListGoalsInput represents the input for listing goals.
type ListGoalsInput struct {
	UserID uuid.UUID
}

// ListGoalsOutput represents the output of listing goals.
type ListGoalsOutput struct {
	Goals []*entity.GoalWithProjection
}

// ListGoalsUseCase lists the goals of a user, each with its current projection.
type ListGoalsUseCase struct {
	goalRepo adapter.GoalRepository
	now      func() time.Time
}

// NewListGoalsUseCase creates a new ListGoalsUseCase instance.
func NewListGoalsUseCase(goalRepo adapter.GoalRepository) *ListGoalsUseCase {
	return &ListGoalsUseCase{
		goalRepo: goalRepo,
		now:      today,
	}
}

// Execute performs the goal listing.
func (uc *ListGoalsUseCase) Execute(ctx context.Context, input ListGoalsInput) (*ListGoalsOutput, error) {
	goals, err := uc.goalRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	asOf := uc.now()
	output := &ListGoalsOutput{
		Goals: make([]*entity.GoalWithProjection, 0, len(goals)),
	}

	for _, g := range goals {
		p, err := projection.ProjectGoal(g.Spec(), asOf)
		if err != nil {
			// Stored goals are validated on write; a failure here means bad data, not a bad request.
			slog.Warn("Skipping projection for goal", "goal_id", g.ID, "error", err)
		}
		output.Goals = append(output.Goals, &entity.GoalWithProjection{Goal: g, Projection: p})
	}

	return output, nil
}
