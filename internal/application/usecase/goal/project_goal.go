package goal

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finplan/backend/internal/application/adapter"
	"github.com/finplan/backend/internal/domain/entity"
	"github.com/finplan/backend/internal/domain/projection"
)

// ProjectGoalInput represents the input for a goal projection.
type ProjectGoalInput struct {
	GoalID uuid.UUID
	UserID uuid.UUID
}

// ProjectionFigures holds display strings for a goal projection.
type ProjectionFigures struct {
	Target              string
	Current             string
	Projected           string
	Shortfall           string
	RecommendedIncrease string
}

// ProjectGoalOutput represents the output of a goal projection.
type ProjectGoalOutput struct {
	Goal       *entity.Goal
	Projection projection.GoalProjection
	// Series is the projected balance month by month at the current contribution.
	Series    []projection.SeriesPoint
	Formatted ProjectionFigures
}

// ProjectGoalUseCase projects a goal to its target date.
type ProjectGoalUseCase struct {
	goalRepo    adapter.GoalRepository
	format      projection.CurrencyFormat
	chartPoints int
	now         func() time.Time
}

// NewProjectGoalUseCase creates a new ProjectGoalUseCase instance.
func NewProjectGoalUseCase(goalRepo adapter.GoalRepository, format projection.CurrencyFormat, chartPoints int) *ProjectGoalUseCase {
	return &ProjectGoalUseCase{
		goalRepo:    goalRepo,
		format:      format,
		chartPoints: chartPoints,
		now:         today,
	}
}

// Execute performs the goal projection.
func (uc *ProjectGoalUseCase) Execute(ctx context.Context, input ProjectGoalInput) (*ProjectGoalOutput, error) {
	goal, err := findOwnedGoal(ctx, uc.goalRepo, input.GoalID, input.UserID, "access")
	if err != nil {
		return nil, err
	}

	p, err := projection.ProjectGoal(goal.Spec(), uc.now())
	if err != nil {
		return nil, err
	}

	series, err := BalanceSeries(goal, p.MonthsRemaining, uc.chartPoints)
	if err != nil {
		return nil, err
	}

	return &ProjectGoalOutput{
		Goal:       goal,
		Projection: p,
		Series:     series,
		Formatted: ProjectionFigures{
			Target:              uc.format.Format(goal.TargetAmount),
			Current:             uc.format.Format(goal.CurrentAmount),
			Projected:           uc.format.Format(p.ProjectedValue),
			Shortfall:           uc.format.Format(p.Shortfall),
			RecommendedIncrease: uc.format.Format(p.RecommendedMonthlyIncrease),
		},
	}, nil
}

// BalanceSeries samples the projected balance of a goal over months.
// The final point equals GoalProjection.ProjectedValue.
func BalanceSeries(goal *entity.Goal, months, maxPoints int) ([]projection.SeriesPoint, error) {
	savings := projection.Input{
		Amount:            goal.CurrentAmount,
		AnnualRatePercent: goal.ExpectedReturnPercent,
		Unit:              projection.UnitMonth,
		Style:             projection.StyleLumpSum,
	}
	contributions := savings
	contributions.Amount = goal.MonthlyContribution
	contributions.Style = projection.StylePeriodicContribution

	return projection.SampleFunc(func(month int) (float64, error) {
		savings.Horizon, contributions.Horizon = month, month
		grown, err := projection.FutureValue(savings)
		if err != nil {
			return 0, err
		}
		added, err := projection.FutureValue(contributions)
		if err != nil {
			return 0, err
		}
		return grown + added, nil
	}, months, projection.SamplerOptions{
		MaxPoints: maxPoints,
		Label:     projection.PeriodLabeler(projection.UnitMonth),
	})
}
