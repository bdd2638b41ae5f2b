package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/finplan/backend/internal/application/adapter"
	"github.com/finplan/backend/internal/domain/projection"
)

// GetSummaryInput represents the input for the dashboard summary.
type GetSummaryInput struct {
	UserID uuid.UUID
}

// NextGoal is the nearest goal that has not been reached yet.
type NextGoal struct {
	ID              uuid.UUID
	Name            string
	TargetDate      time.Time
	MonthsRemaining int
	ProgressPercent int
}

// GoalWidget aggregates the goals of a user.
type GoalWidget struct {
	Total                  int
	OnTrack                int
	Overdue                int
	Behind                 int
	TotalTarget            float64
	TotalSaved             float64
	ProjectedTotal         float64
	OverallProgressPercent int
	Next                   *NextGoal
}

// PortfolioWidget aggregates the holdings of a user.
type PortfolioWidget struct {
	Holdings      int
	Invested      float64
	Current       float64
	Gain          float64
	ReturnPercent float64
}

// SummaryFigures holds display strings for the widgets.
type SummaryFigures struct {
	TotalTarget       string
	TotalSaved        string
	ProjectedTotal    string
	PortfolioInvested string
	PortfolioCurrent  string
	PortfolioGain     string
	NetWorth          string
}

// GetSummaryOutput represents the dashboard summary.
type GetSummaryOutput struct {
	Goals     GoalWidget
	Portfolio PortfolioWidget
	NetWorth  float64
	Formatted SummaryFigures
}

// GetSummaryUseCase builds the dashboard summary widgets.
type GetSummaryUseCase struct {
	goalRepo      adapter.GoalRepository
	dashboardRepo DashboardRepository
	format        projection.CurrencyFormat
	now           func() time.Time
}

// NewGetSummaryUseCase creates a new GetSummaryUseCase instance.
func NewGetSummaryUseCase(goalRepo adapter.GoalRepository, dashboardRepo DashboardRepository, format projection.CurrencyFormat) *GetSummaryUseCase {
	return &GetSummaryUseCase{
		goalRepo:      goalRepo,
		dashboardRepo: dashboardRepo,
		format:        format,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// Execute builds the summary.
func (uc *GetSummaryUseCase) Execute(ctx context.Context, input GetSummaryInput) (*GetSummaryOutput, error) {
	goals, err := uc.goalRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}

	totals, err := uc.dashboardRepo.GetPortfolioTotals(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get portfolio totals: %w", err)
	}

	asOf := uc.now()
	output := &GetSummaryOutput{}
	w := &output.Goals

	for _, g := range goals {
		p, err := projection.ProjectGoal(g.Spec(), asOf)
		if err != nil {
			slog.Warn("Skipping goal in dashboard summary", "goal_id", g.ID, "error", err)
			continue
		}

		w.Total++
		w.TotalTarget += g.TargetAmount
		w.TotalSaved += g.CurrentAmount
		w.ProjectedTotal += math.Min(p.ProjectedValue, g.TargetAmount)
		switch {
		case p.OnTrack:
			w.OnTrack++
		case p.Overdue:
			w.Overdue++
		default:
			w.Behind++
		}

		if !p.Exceeded && !p.Overdue && (w.Next == nil || g.TargetDate.Before(w.Next.TargetDate)) {
			w.Next = &NextGoal{
				ID:              g.ID,
				Name:            g.Name,
				TargetDate:      g.TargetDate,
				MonthsRemaining: p.MonthsRemaining,
				ProgressPercent: p.ProgressPercent,
			}
		}
	}
	if w.TotalTarget > 0 {
		w.OverallProgressPercent = int(math.Round(math.Min(w.TotalSaved/w.TotalTarget, 1) * 100))
	}

	invested, _ := totals.Invested.Float64()
	current, _ := totals.Current.Float64()
	output.Portfolio = PortfolioWidget{
		Holdings: totals.Holdings,
		Invested: invested,
		Current:  current,
		Gain:     current - invested,
	}
	if invested > 0 {
		output.Portfolio.ReturnPercent = (current - invested) / invested * 100
	}
	output.NetWorth = w.TotalSaved + current

	output.Formatted = SummaryFigures{
		TotalTarget:       uc.format.Format(w.TotalTarget),
		TotalSaved:        uc.format.Format(w.TotalSaved),
		ProjectedTotal:    uc.format.Format(w.ProjectedTotal),
		PortfolioInvested: uc.format.Format(invested),
		PortfolioCurrent:  uc.format.Format(current),
		PortfolioGain:     uc.format.Format(current - invested),
		NetWorth:          uc.format.Format(output.NetWorth),
	}
	return output, nil
}
