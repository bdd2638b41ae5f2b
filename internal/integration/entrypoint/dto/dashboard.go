package dto

import (
	"github.com/finplan/backend/internal/application/usecase/dashboard"
)

// NextGoalResponse is the nearest goal still in progress.
type NextGoalResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	TargetDate      string `json:"target_date"`
	MonthsRemaining int    `json:"months_remaining"`
	ProgressPercent int    `json:"progress_percent"`
}

// GoalWidgetResponse aggregates the goals of a user.
type GoalWidgetResponse struct {
	Total                  int               `json:"total"`
	OnTrack                int               `json:"on_track"`
	Overdue                int               `json:"overdue"`
	Behind                 int               `json:"behind"`
	TotalTarget            float64           `json:"total_target"`
	TotalSaved             float64           `json:"total_saved"`
	ProjectedTotal         float64           `json:"projected_total"`
	OverallProgressPercent int               `json:"overall_progress_percent"`
	Next                   *NextGoalResponse `json:"next,omitempty"`
}

// PortfolioWidgetResponse aggregates the holdings of a user.
type PortfolioWidgetResponse struct {
	Holdings      int     `json:"holdings"`
	Invested      float64 `json:"invested"`
	Current       float64 `json:"current"`
	Gain          float64 `json:"gain"`
	ReturnPercent float64 `json:"return_percent"`
}

// DashboardSummaryResponse represents the response of GET /dashboard/summary.
type DashboardSummaryResponse struct {
	Goals     GoalWidgetResponse      `json:"goals"`
	Portfolio PortfolioWidgetResponse `json:"portfolio"`
	NetWorth  float64                 `json:"net_worth"`
	Formatted map[string]string       `json:"formatted"`
}

// ToDashboardSummaryResponse converts the dashboard summary to its DTO.
func ToDashboardSummaryResponse(out *dashboard.GetSummaryOutput) DashboardSummaryResponse {
	goals := GoalWidgetResponse{
		Total:                  out.Goals.Total,
		OnTrack:                out.Goals.OnTrack,
		Overdue:                out.Goals.Overdue,
		Behind:                 out.Goals.Behind,
		TotalTarget:            out.Goals.TotalTarget,
		TotalSaved:             out.Goals.TotalSaved,
		ProjectedTotal:         out.Goals.ProjectedTotal,
		OverallProgressPercent: out.Goals.OverallProgressPercent,
	}
	if next := out.Goals.Next; next != nil {
		goals.Next = &NextGoalResponse{
			ID:              next.ID.String(),
			Name:            next.Name,
			TargetDate:      next.TargetDate.Format(DateLayout),
			MonthsRemaining: next.MonthsRemaining,
			ProgressPercent: next.ProgressPercent,
		}
	}

	return DashboardSummaryResponse{
		Goals: goals,
		Portfolio: PortfolioWidgetResponse{
			Holdings:      out.Portfolio.Holdings,
			Invested:      out.Portfolio.Invested,
			Current:       out.Portfolio.Current,
			Gain:          out.Portfolio.Gain,
			ReturnPercent: out.Portfolio.ReturnPercent,
		},
		NetWorth: out.NetWorth,
		Formatted: map[string]string{
			"total_target":       out.Formatted.TotalTarget,
			"total_saved":        out.Formatted.TotalSaved,
			"projected_total":    out.Formatted.ProjectedTotal,
			"portfolio_invested": out.Formatted.PortfolioInvested,
			"portfolio_current":  out.Formatted.PortfolioCurrent,
			"portfolio_gain":     out.Formatted.PortfolioGain,
			"net_worth":          out.Formatted.NetWorth,
		},
	}
}
