package dto

import (
	"github.com/finplan/backend/internal/application/usecase/calculator"
	"github.com/finplan/backend/internal/domain/projection"
)

// GrowthRequest is the body shared by the growth calculators.
// Amount is the monthly deposit for sip and rd, the yearly deposit for ssy
// and the principal otherwise.
type GrowthRequest struct {
	Amount            float64 `json:"amount"`
	MonthlyAmount     float64 `json:"monthly_amount"`
	AnnualRatePercent float64 `json:"annual_rate"`
	Years             int     `json:"years" binding:"gte=0,lte=100"`
	Months            int     `json:"months" binding:"gte=0,lte=11"`
}

// CAGRRequest represents the request body for the CAGR calculator.
type CAGRRequest struct {
	InitialValue float64 `json:"initial_value"`
	FinalValue   float64 `json:"final_value"`
	Years        float64 `json:"years"`
}

// IRRRequest represents the request body for the IRR calculator.
// Outflows are negative and inflows positive, one entry per period.
type IRRRequest struct {
	CashFlows []float64 `json:"cash_flows" binding:"required,min=2"`
}

// HRARequest represents the request body for the HRA exemption calculator.
type HRARequest struct {
	BasicSalary float64 `json:"basic_salary"`
	HRAReceived float64 `json:"hra_received"`
	RentPaid    float64 `json:"rent_paid"`
	IsMetroCity bool    `json:"is_metro_city"`
}

// GoalSIPRequest represents the request body for the goal SIP planner.
type GoalSIPRequest struct {
	TargetAmount      float64 `json:"target_amount"`
	CurrentSavings    float64 `json:"current_savings"`
	AnnualRatePercent float64 `json:"annual_rate"`
	Years             int     `json:"years" binding:"gte=0,lte=100"`
	Months            int     `json:"months" binding:"gte=0,lte=11"`
}

// SeriesPointResponse is one chart point.
type SeriesPointResponse struct {
	Period int     `json:"period"`
	Label  string  `json:"label"`
	Value  float64 `json:"value"`
}

// GrowthResponse represents the response of a growth calculator.
type GrowthResponse struct {
	Calculator       string                `json:"calculator"`
	Invested         float64               `json:"invested"`
	EstimatedReturns float64               `json:"estimated_returns"`
	MaturityValue    float64               `json:"maturity_value"`
	Series           []SeriesPointResponse `json:"series"`
	Formatted        map[string]string     `json:"formatted"`
}

// CAGRResponse represents the response of the CAGR calculator.
type CAGRResponse struct {
	CAGRPercent           float64           `json:"cagr_percent"`
	AbsoluteGain          float64           `json:"absolute_gain"`
	AbsoluteReturnPercent float64           `json:"absolute_return_percent"`
	Formatted             map[string]string `json:"formatted"`
}

// IRRResponse represents the response of the IRR calculator.
// IRRPercent is null when no rate solves the cash flows.
type IRRResponse struct {
	Defined      bool     `json:"defined"`
	IRRPercent   *float64 `json:"irr_percent"`
	Display      string   `json:"display"`
	Reason       string   `json:"reason,omitempty"`
	TotalInflow  float64  `json:"total_inflow"`
	TotalOutflow float64  `json:"total_outflow"`
	NetCashFlow  float64  `json:"net_cash_flow"`
	FormattedNet string   `json:"formatted_net"`
}

// HRAResponse represents the response of the HRA calculator.
type HRAResponse struct {
	ExemptedAmount     float64           `json:"exempted_amount"`
	TaxableAmount      float64           `json:"taxable_amount"`
	ActualHRA          float64           `json:"actual_hra"`
	RentOverThreshold  float64           `json:"rent_over_threshold"`
	SalaryShareCeiling float64           `json:"salary_share_ceiling"`
	Formatted          map[string]string `json:"formatted"`
}

// GoalSIPResponse represents the response of the goal SIP planner.
type GoalSIPResponse struct {
	RequiredMonthly    float64               `json:"required_monthly"`
	SavingsFutureValue float64               `json:"savings_future_value"`
	TotalInvested      float64               `json:"total_invested"`
	Series             []SeriesPointResponse `json:"series"`
	Formatted          map[string]string     `json:"formatted"`
}

// ToGrowthInput converts a request into a calculator input.
func (r GrowthRequest) ToGrowthInput(kind calculator.Kind) calculator.ProjectInput {
	return calculator.ProjectInput{
		Kind:              kind,
		Amount:            r.Amount,
		MonthlyAmount:     r.MonthlyAmount,
		AnnualRatePercent: r.AnnualRatePercent,
		Years:             r.Years,
		Months:            r.Months,
	}
}

// ToSeriesResponse converts chart points to their DTOs.
func ToSeriesResponse(points []projection.SeriesPoint) []SeriesPointResponse {
	out := make([]SeriesPointResponse, len(points))
	for i, p := range points {
		out[i] = SeriesPointResponse{Period: p.Period, Label: p.Label, Value: p.Value}
	}
	return out
}

// ToGrowthResponse converts a growth calculator output to its DTO.
func ToGrowthResponse(out *calculator.ProjectOutput) GrowthResponse {
	return GrowthResponse{
		Calculator:       string(out.Kind),
		Invested:         out.Invested,
		EstimatedReturns: out.EstimatedReturns,
		MaturityValue:    out.MaturityValue,
		Series:           ToSeriesResponse(out.Series),
		Formatted: map[string]string{
			"invested": out.Formatted.Invested,
			"returns":  out.Formatted.Returns,
			"maturity": out.Formatted.Maturity,
		},
	}
}

// ToCAGRResponse converts a CAGR output to its DTO.
func ToCAGRResponse(out *calculator.CAGROutput) CAGRResponse {
	return CAGRResponse{
		CAGRPercent:           out.CAGRPercent,
		AbsoluteGain:          out.AbsoluteGain,
		AbsoluteReturnPercent: out.AbsoluteReturnPercent,
		Formatted: map[string]string{
			"cagr": out.FormattedCAGR,
			"gain": out.FormattedGain,
		},
	}
}

// ToIRRResponse converts an IRR output to its DTO.
func ToIRRResponse(out *calculator.IRROutput) IRRResponse {
	resp := IRRResponse{
		Defined:      out.Defined,
		Display:      out.Display,
		Reason:       out.Reason,
		TotalInflow:  out.TotalInflow,
		TotalOutflow: out.TotalOutflow,
		NetCashFlow:  out.NetCashFlow,
		FormattedNet: out.FormattedNet,
	}
	if out.Defined {
		irr := out.IRRPercent
		resp.IRRPercent = &irr
	}
	return resp
}

// ToHRAResponse converts an HRA output to its DTO.
func ToHRAResponse(out *calculator.HRAOutput) HRAResponse {
	return HRAResponse{
		ExemptedAmount:     out.ExemptedAmount,
		TaxableAmount:      out.TaxableAmount,
		ActualHRA:          out.ActualHRA,
		RentOverThreshold:  out.RentOverThreshold,
		SalaryShareCeiling: out.SalaryShareCeiling,
		Formatted: map[string]string{
			"exempted": out.FormattedExempted,
			"taxable":  out.FormattedTaxable,
		},
	}
}

// ToGoalSIPResponse converts a goal SIP output to its DTO.
func ToGoalSIPResponse(out *calculator.GoalSIPOutput) GoalSIPResponse {
	return GoalSIPResponse{
		RequiredMonthly:    out.RequiredMonthly,
		SavingsFutureValue: out.SavingsFutureValue,
		TotalInvested:      out.TotalInvested,
		Series:             ToSeriesResponse(out.Series),
		Formatted: map[string]string{
			"monthly": out.FormattedMonthly,
			"target":  out.FormattedTarget,
			"savings": out.FormattedSavings,
		},
	}
}
