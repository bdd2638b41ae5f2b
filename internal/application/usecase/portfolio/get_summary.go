package portfolio

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finplan/backend/internal/application/adapter"
	"github.com/finplan/backend/internal/domain/entity"
	domainerror "github.com/finplan/backend/internal/domain/error"
	"github.com/finplan/backend/internal/domain/projection"
)

// minCAGRYears is the shortest holding period for which an annualized rate is reported.
const minCAGRYears = 1.0

// GetSummaryInput represents the input for the portfolio summary.
type GetSummaryInput struct {
	UserID uuid.UUID
}

// HoldingSummary is the performance of a single holding.
type HoldingSummary struct {
	Holding               *entity.Holding
	Gain                  float64
	AbsoluteReturnPercent float64
	// CAGRPercent is nil when the holding is younger than a year or the rate is undefined.
	CAGRPercent       *float64
	CAGRDisplay       string
	AllocationPercent float64
}

// SummaryFigures holds display strings for the portfolio totals.
type SummaryFigures struct {
	Invested string
	Current  string
	Gain     string
}

// GetSummaryOutput represents the portfolio summary.
type GetSummaryOutput struct {
	TotalInvested         float64
	CurrentValue          float64
	TotalGain             float64
	AbsoluteReturnPercent float64
	// MoneyWeightedReturnPercent is the IRR of yearly purchase flows against today's value.
	MoneyWeightedReturnPercent *float64
	MoneyWeightedDisplay       string
	Holdings                   []HoldingSummary
	AllocationByType           map[entity.HoldingType]float64
	Formatted                  SummaryFigures
}

// GetSummaryUseCase summarizes the holdings of a user.
type GetSummaryUseCase struct {
	holdingRepo adapter.HoldingRepository
	format      projection.CurrencyFormat
	irr         projection.IRROptions
	now         func() time.Time
}

// NewGetSummaryUseCase creates a new GetSummaryUseCase instance.
func NewGetSummaryUseCase(holdingRepo adapter.HoldingRepository, format projection.CurrencyFormat, irr projection.IRROptions) *GetSummaryUseCase {
	return &GetSummaryUseCase{
		holdingRepo: holdingRepo,
		format:      format,
		irr:         irr,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Execute builds the summary.
func (uc *GetSummaryUseCase) Execute(ctx context.Context, input GetSummaryInput) (*GetSummaryOutput, error) {
	holdings, err := uc.holdingRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	asOf := uc.now()
	output := &GetSummaryOutput{
		Holdings:             make([]HoldingSummary, 0, len(holdings)),
		AllocationByType:     make(map[entity.HoldingType]float64),
		MoneyWeightedDisplay: uc.format.Undefined,
	}

	for _, h := range holdings {
		output.TotalInvested += h.InvestedAmount
		output.CurrentValue += h.CurrentValue
	}
	output.TotalGain = output.CurrentValue - output.TotalInvested
	if output.TotalInvested > 0 {
		output.AbsoluteReturnPercent = output.TotalGain / output.TotalInvested * 100
	}

	for _, h := range holdings {
		s := HoldingSummary{
			Holding:               h,
			Gain:                  h.CurrentValue - h.InvestedAmount,
			AbsoluteReturnPercent: (h.CurrentValue - h.InvestedAmount) / h.InvestedAmount * 100,
			CAGRDisplay:           uc.format.Undefined,
		}
		if output.CurrentValue > 0 {
			s.AllocationPercent = h.CurrentValue / output.CurrentValue * 100
			output.AllocationByType[h.Type] += s.AllocationPercent
		}
		if years := h.YearsHeld(asOf); years >= minCAGRYears {
			if cagr, err := projection.CAGR(h.InvestedAmount, h.CurrentValue, years); err == nil {
				s.CAGRPercent = &cagr
				s.CAGRDisplay = percent(cagr)
			}
		}
		output.Holdings = append(output.Holdings, s)
	}

	if rate, err := moneyWeightedReturn(holdings, asOf, uc.irr); err == nil {
		output.MoneyWeightedReturnPercent = &rate
		output.MoneyWeightedDisplay = percent(rate)
	} else if !domainerror.IsNoSolution(err) && len(holdings) > 0 {
		return nil, err
	}

	output.Formatted = SummaryFigures{
		Invested: uc.format.Format(output.TotalInvested),
		Current:  uc.format.Format(output.CurrentValue),
		Gain:     uc.format.Format(output.TotalGain),
	}
	return output, nil
}

// moneyWeightedReturn buckets purchases into whole years since the oldest
// purchase and solves for the yearly rate that grows them into today's value.
func moneyWeightedReturn(holdings []*entity.Holding, asOf time.Time, opts projection.IRROptions) (float64, error) {
	if len(holdings) == 0 {
		return 0, domainerror.NewNoSolution(domainerror.ErrCodeNoSignChange, "no holdings")
	}

	oldest := holdings[0].PurchaseDate
	for _, h := range holdings[1:] {
		if h.PurchaseDate.Before(oldest) {
			oldest = h.PurchaseDate
		}
	}

	span := int(math.Ceil(asOf.Sub(oldest).Hours() / 24 / 365.25))
	if span < 1 {
		return 0, domainerror.NewNoSolution(domainerror.ErrCodeRootNotBracketed, "holding period shorter than a year")
	}

	flows := make(projection.CashFlowSeries, span+1)
	for _, h := range holdings {
		bucket := int(h.PurchaseDate.Sub(oldest).Hours() / 24 / 365.25)
		if bucket > span-1 {
			bucket = span - 1
		}
		flows[bucket] -= h.InvestedAmount
		flows[span] += h.CurrentValue
	}
	return projection.IRR(flows, opts)
}

func percent(v float64) string {
	return decimal.NewFromFloat(v).Round(2).StringFixed(2) + "%"
}
