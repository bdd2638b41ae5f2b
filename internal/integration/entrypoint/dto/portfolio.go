package dto

import (
	"time"

	"github.com/finplan/backend/internal/application/usecase/portfolio"
	"github.com/finplan/backend/internal/domain/entity"
)

// CreateHoldingRequest represents the request body for holding creation.
type CreateHoldingRequest struct {
	Name           string  `json:"name" binding:"required,max=100"`
	Type           string  `json:"type" binding:"required"`
	InvestedAmount float64 `json:"invested_amount" binding:"required"`
	CurrentValue   float64 `json:"current_value"`
	PurchaseDate   string  `json:"purchase_date" binding:"required"`
}

// UpdateHoldingRequest represents the request body for holding update.
type UpdateHoldingRequest struct {
	Name           *string  `json:"name,omitempty" binding:"omitempty,max=100"`
	Type           *string  `json:"type,omitempty"`
	InvestedAmount *float64 `json:"invested_amount,omitempty"`
	CurrentValue   *float64 `json:"current_value,omitempty"`
	PurchaseDate   *string  `json:"purchase_date,omitempty"`
}

// HoldingResponse represents a single holding in API responses.
type HoldingResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Type           string    `json:"type"`
	InvestedAmount float64   `json:"invested_amount"`
	CurrentValue   float64   `json:"current_value"`
	PurchaseDate   string    `json:"purchase_date"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// HoldingListResponse represents the response for listing holdings.
type HoldingListResponse struct {
	Holdings []HoldingResponse `json:"holdings"`
}

// HoldingSummaryResponse is one holding line in the portfolio summary.
type HoldingSummaryResponse struct {
	HoldingResponse
	Gain                  float64  `json:"gain"`
	AbsoluteReturnPercent float64  `json:"absolute_return_percent"`
	CAGRPercent           *float64 `json:"cagr_percent"`
	CAGRDisplay           string   `json:"cagr_display"`
	AllocationPercent     float64  `json:"allocation_percent"`
}

// PortfolioSummaryResponse represents the response of GET /portfolio/summary.
type PortfolioSummaryResponse struct {
	TotalInvested              float64                  `json:"total_invested"`
	CurrentValue               float64                  `json:"current_value"`
	TotalGain                  float64                  `json:"total_gain"`
	AbsoluteReturnPercent      float64                  `json:"absolute_return_percent"`
	MoneyWeightedReturnPercent *float64                 `json:"money_weighted_return_percent"`
	MoneyWeightedDisplay       string                   `json:"money_weighted_display"`
	Holdings                   []HoldingSummaryResponse `json:"holdings"`
	AllocationByType           map[string]float64       `json:"allocation_by_type"`
	Formatted                  map[string]string        `json:"formatted"`
}

// ToHoldingResponse converts a domain Holding entity to a HoldingResponse DTO.
func ToHoldingResponse(h *entity.Holding) HoldingResponse {
	return HoldingResponse{
		ID:             h.ID.String(),
		Name:           h.Name,
		Type:           string(h.Type),
		InvestedAmount: h.InvestedAmount,
		CurrentValue:   h.CurrentValue,
		PurchaseDate:   h.PurchaseDate.Format(DateLayout),
		CreatedAt:      h.CreatedAt,
		UpdatedAt:      h.UpdatedAt,
	}
}

// ToHoldingListResponse converts holdings to a HoldingListResponse DTO.
func ToHoldingListResponse(holdings []*entity.Holding) HoldingListResponse {
	responses := make([]HoldingResponse, len(holdings))
	for i, h := range holdings {
		responses[i] = ToHoldingResponse(h)
	}
	return HoldingListResponse{Holdings: responses}
}

// ToPortfolioSummaryResponse converts a portfolio summary to its DTO.
func ToPortfolioSummaryResponse(out *portfolio.GetSummaryOutput) PortfolioSummaryResponse {
	holdings := make([]HoldingSummaryResponse, len(out.Holdings))
	for i, h := range out.Holdings {
		holdings[i] = HoldingSummaryResponse{
			HoldingResponse:       ToHoldingResponse(h.Holding),
			Gain:                  h.Gain,
			AbsoluteReturnPercent: h.AbsoluteReturnPercent,
			CAGRPercent:           h.CAGRPercent,
			CAGRDisplay:           h.CAGRDisplay,
			AllocationPercent:     h.AllocationPercent,
		}
	}

	allocation := make(map[string]float64, len(out.AllocationByType))
	for t, share := range out.AllocationByType {
		allocation[string(t)] = share
	}

	return PortfolioSummaryResponse{
		TotalInvested:              out.TotalInvested,
		CurrentValue:               out.CurrentValue,
		TotalGain:                  out.TotalGain,
		AbsoluteReturnPercent:      out.AbsoluteReturnPercent,
		MoneyWeightedReturnPercent: out.MoneyWeightedReturnPercent,
		MoneyWeightedDisplay:       out.MoneyWeightedDisplay,
		Holdings:                   holdings,
		AllocationByType:           allocation,
		Formatted: map[string]string{
			"invested": out.Formatted.Invested,
			"current":  out.Formatted.Current,
			"gain":     out.Formatted.Gain,
		},
	}
}
