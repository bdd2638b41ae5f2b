package dto

import (
	"time"

	"github.com/finplan/backend/internal/application/usecase/goal"
	"github.com/finplan/backend/internal/domain/entity"
	"github.com/finplan/backend/internal/domain/projection"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// CreateGoalRequest represents the request body for goal creation.
type CreateGoalRequest struct {
	Name                  string  `json:"name" binding:"required,max=100"`
	TargetAmount          float64 `json:"target_amount" binding:"required"`
	TargetDate            string  `json:"target_date" binding:"required"`
	CurrentAmount         float64 `json:"current_amount"`
	MonthlyContribution   float64 `json:"monthly_contribution"`
	ExpectedReturnPercent float64 `json:"expected_return"`
}

// UpdateGoalRequest represents the request body for goal update.
type UpdateGoalRequest struct {
	Name                  *string  `json:"name,omitempty" binding:"omitempty,max=100"`
	TargetAmount          *float64 `json:"target_amount,omitempty"`
	TargetDate            *string  `json:"target_date,omitempty"`
	CurrentAmount         *float64 `json:"current_amount,omitempty"`
	MonthlyContribution   *float64 `json:"monthly_contribution,omitempty"`
	ExpectedReturnPercent *float64 `json:"expected_return,omitempty"`
}

// GoalResponse represents a single goal in API responses.
type GoalResponse struct {
	ID                    string              `json:"id"`
	Name                  string              `json:"name"`
	TargetAmount          float64             `json:"target_amount"`
	TargetDate            string              `json:"target_date"`
	CurrentAmount         float64             `json:"current_amount"`
	MonthlyContribution   float64             `json:"monthly_contribution"`
	ExpectedReturnPercent float64             `json:"expected_return"`
	Projection            *ProjectionResponse `json:"projection,omitempty"`
	CreatedAt             time.Time           `json:"created_at"`
	UpdatedAt             time.Time           `json:"updated_at"`
}

// ProjectionResponse is the projected state of a goal.
type ProjectionResponse struct {
	ProgressPercent            int     `json:"progress_percent"`
	Exceeded                   bool    `json:"exceeded"`
	YearsRemaining             float64 `json:"years_remaining"`
	MonthsRemaining            int     `json:"months_remaining"`
	ProjectedValue             float64 `json:"projected_value"`
	ProjectedPercent           int     `json:"projected_percent"`
	Shortfall                  float64 `json:"shortfall"`
	RecommendedMonthlyIncrease float64 `json:"recommended_monthly_increase"`
	OnTrack                    bool    `json:"on_track"`
	Overdue                    bool    `json:"overdue"`
}

// GoalListResponse represents the response for listing goals.
type GoalListResponse struct {
	Goals []GoalResponse `json:"goals"`
}

// GoalProjectionResponse represents the response of GET /goals/:id/projection.
type GoalProjectionResponse struct {
	Goal      GoalResponse          `json:"goal"`
	Series    []SeriesPointResponse `json:"series"`
	Formatted map[string]string     `json:"formatted"`
}

// DigestResponse represents the response of POST /goals/digest.
type DigestResponse struct {
	MessageID string `json:"message_id"`
	Goals     int    `json:"goals"`
}

// ToGoalResponse converts a domain Goal entity to a GoalResponse DTO.
func ToGoalResponse(g *entity.Goal) GoalResponse {
	return GoalResponse{
		ID:                    g.ID.String(),
		Name:                  g.Name,
		TargetAmount:          g.TargetAmount,
		TargetDate:            g.TargetDate.Format(DateLayout),
		CurrentAmount:         g.CurrentAmount,
		MonthlyContribution:   g.MonthlyContribution,
		ExpectedReturnPercent: g.ExpectedReturnPercent,
		CreatedAt:             g.CreatedAt,
		UpdatedAt:             g.UpdatedAt,
	}
}

// ToProjectionResponse converts an engine projection to its DTO.
func ToProjectionResponse(p projection.GoalProjection) *ProjectionResponse {
	return &ProjectionResponse{
		ProgressPercent:            p.ProgressPercent,
		Exceeded:                   p.Exceeded,
		YearsRemaining:             p.YearsRemaining,
		MonthsRemaining:            p.MonthsRemaining,
		ProjectedValue:             p.ProjectedValue,
		ProjectedPercent:           p.ProjectedPercent,
		Shortfall:                  p.Shortfall,
		RecommendedMonthlyIncrease: p.RecommendedMonthlyIncrease,
		OnTrack:                    p.OnTrack,
		Overdue:                    p.Overdue,
	}
}

// ToGoalListResponse converts goals with projections to a GoalListResponse DTO.
func ToGoalListResponse(goals []*entity.GoalWithProjection) GoalListResponse {
	responses := make([]GoalResponse, len(goals))
	for i, g := range goals {
		responses[i] = ToGoalResponse(g.Goal)
		responses[i].Projection = ToProjectionResponse(g.Projection)
	}
	return GoalListResponse{Goals: responses}
}

// ToGoalProjectionResponse converts a goal projection output to its DTO.
func ToGoalProjectionResponse(out *goal.ProjectGoalOutput) GoalProjectionResponse {
	g := ToGoalResponse(out.Goal)
	g.Projection = ToProjectionResponse(out.Projection)
	return GoalProjectionResponse{
		Goal:   g,
		Series: ToSeriesResponse(out.Series),
		Formatted: map[string]string{
			"target":               out.Formatted.Target,
			"current":              out.Formatted.Current,
			"projected":            out.Formatted.Projected,
			"shortfall":            out.Formatted.Shortfall,
			"recommended_increase": out.Formatted.RecommendedIncrease,
		},
	}
}
