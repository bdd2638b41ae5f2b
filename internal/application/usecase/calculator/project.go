package calculator

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/finplan/backend/internal/application/adapter"
	domainerror "github.com/finplan/backend/internal/domain/error"
	"github.com/finplan/backend/internal/domain/projection"
)

// Kind names a growth calculator.
type Kind string

const (
	KindSIP        Kind = "sip"
	KindLumpSum    Kind = "lumpsum"
	KindFD         Kind = "fd"
	KindRD         Kind = "rd"
	KindNSC        Kind = "nsc"
	KindSSY        Kind = "ssy"
	KindMutualFund Kind = "mutual_fund"
)

// ProjectInput represents the input for a growth calculator.
type ProjectInput struct {
	Kind Kind
	// Amount is the principal (lumpsum, fd, nsc, mutual_fund), the monthly
	// deposit (sip, rd) or the yearly deposit (ssy).
	Amount float64
	// MonthlyAmount is the SIP leg of a mutual_fund projection.
	MonthlyAmount     float64
	AnnualRatePercent float64
	// Years is the tenure. nsc and ssy fall back to their statutory tenure when it is zero.
	Years int
	// Months adds to Years for sip and rd; a non-zero value switches the chart to months.
	Months int
}

// FormattedFigures holds display strings for a calculator result.
type FormattedFigures struct {
	Invested string
	Returns  string
	Maturity string
}

// ProjectOutput represents the output of a growth calculator.
type ProjectOutput struct {
	Kind             Kind
	Invested         float64
	EstimatedReturns float64
	MaturityValue    float64
	Series           []projection.SeriesPoint
	Formatted        FormattedFigures
}

// ProjectUseCase runs the growth calculators.
type ProjectUseCase struct {
	settings Settings
	cache    adapter.ProjectionCache
}

// NewProjectUseCase creates a new ProjectUseCase instance. cache may be nil.
func NewProjectUseCase(settings Settings, cache adapter.ProjectionCache) *ProjectUseCase {
	return &ProjectUseCase{
		settings: settings,
		cache:    cache,
	}
}

// planners maps each calculator onto engine projections.
var planners = map[Kind]func(ProjectInput, Settings) (plan, error){
	KindSIP:        planMonthlyDeposits,
	KindRD:         planMonthlyDeposits,
	KindLumpSum:    planLumpSum,
	KindFD:         planFD,
	KindNSC:        planNSC,
	KindSSY:        planSSY,
	KindMutualFund: planMutualFund,
}

// Execute performs the projection.
func (uc *ProjectUseCase) Execute(ctx context.Context, input ProjectInput) (*ProjectOutput, error) {
	planner, ok := planners[input.Kind]
	if !ok {
		return nil, domainerror.NewInvalidProjectionInput(
			domainerror.ErrCodeUnknownCalculator,
			fmt.Sprintf("unknown calculator %q", input.Kind),
		)
	}

	key := uc.cacheKey(input)
	if cached, ok := uc.lookup(ctx, key); ok {
		return cached, nil
	}

	p, err := planner(input, uc.settings)
	if err != nil {
		return nil, err
	}
	if p.horizon <= 0 {
		return nil, domainerror.NewInvalidProjectionInput(
			domainerror.ErrCodeNonPositiveYears,
			"tenure must be at least one period",
		)
	}

	series, err := p.sample(uc.settings)
	if err != nil {
		return nil, err
	}

	maturity := series[len(series)-1].Value
	invested := p.invested()
	output := &ProjectOutput{
		Kind:             input.Kind,
		Invested:         invested,
		EstimatedReturns: maturity - invested,
		MaturityValue:    maturity,
		Series:           series,
		Formatted: FormattedFigures{
			Invested: uc.settings.Currency.Format(invested),
			Returns:  uc.settings.Currency.Format(maturity - invested),
			Maturity: uc.settings.Currency.Format(maturity),
		},
	}

	uc.store(ctx, key, output)
	return output, nil
}

func (uc *ProjectUseCase) cacheKey(input ProjectInput) string {
	s := uc.settings
	return fmt.Sprintf("calc:v1:%s:%g:%g:%g:%d:%d|%d:%s:%d:%d:%d",
		input.Kind, input.Amount, input.MonthlyAmount, input.AnnualRatePercent, input.Years, input.Months,
		s.ChartPoints, s.FDUnit, s.SSYDepositYears, s.SSYMaturityYears, s.NSCTenureYears,
	)
}

func (uc *ProjectUseCase) lookup(ctx context.Context, key string) (*ProjectOutput, bool) {
	if uc.cache == nil {
		return nil, false
	}
	raw, ok := uc.cache.Get(ctx, key)
	if !ok {
		return nil, false
	}

	var output ProjectOutput
	if err := json.Unmarshal(raw, &output); err != nil {
		slog.Warn("Discarding unreadable calculator cache entry", "key", key, "error", err)
		return nil, false
	}
	return &output, true
}

func (uc *ProjectUseCase) store(ctx context.Context, key string, output *ProjectOutput) {
	if uc.cache == nil {
		return
	}
	raw, err := json.Marshal(output)
	if err != nil {
		slog.Warn("Failed to encode calculator result", "key", key, "error", err)
		return
	}
	if err := uc.cache.Set(ctx, key, raw); err != nil {
		slog.Warn("Failed to cache calculator result", "key", key, "error", err)
	}
}

// planMonthlyDeposits serves sip and rd: a monthly annuity-due.
func planMonthlyDeposits(input ProjectInput, _ Settings) (plan, error) {
	unit, horizon := projection.UnitYear, input.Years
	if input.Months != 0 {
		unit, horizon = projection.UnitMonth, input.Years*12+input.Months
	}
	in := projection.Input{
		Amount:            input.Amount,
		AnnualRatePercent: input.AnnualRatePercent,
		Unit:              unit,
		Style:             projection.StylePeriodicContribution,
	}
	return plan{unit: unit, horizon: horizon, legs: []leg{newLeg(in, unit)}}, nil
}

func planLumpSum(input ProjectInput, _ Settings) (plan, error) {
	return yearlyLumpSum(input.Amount, input.AnnualRatePercent, input.Years), nil
}

// planFD compounds at the configured frequency and charts by year.
func planFD(input ProjectInput, s Settings) (plan, error) {
	if s.FDUnit.PeriodsPerYear() == 0 {
		return plan{}, domainerror.NewInvalidProjectionInput(
			domainerror.ErrCodeUnknownPeriodUnit,
			fmt.Sprintf("unsupported fixed deposit compounding %q", s.FDUnit),
		)
	}
	in := projection.Input{
		Amount:            input.Amount,
		AnnualRatePercent: input.AnnualRatePercent,
		Unit:              s.FDUnit,
		Style:             projection.StyleLumpSum,
	}
	return plan{unit: projection.UnitYear, horizon: input.Years, legs: []leg{newLeg(in, projection.UnitYear)}}, nil
}

func planNSC(input ProjectInput, s Settings) (plan, error) {
	years := input.Years
	if years == 0 {
		years = s.NSCTenureYears
	}
	return yearlyLumpSum(input.Amount, input.AnnualRatePercent, years), nil
}

// planSSY deposits yearly for the deposit window and compounds until maturity.
func planSSY(input ProjectInput, s Settings) (plan, error) {
	years := input.Years
	if years == 0 {
		years = s.SSYMaturityYears
	}
	in := projection.Input{
		Amount:             input.Amount,
		AnnualRatePercent:  input.AnnualRatePercent,
		Unit:               projection.UnitYear,
		Style:              projection.StyleDecliningBalanceAnnual,
		ContributionWindow: s.SSYDepositYears,
	}
	return plan{unit: projection.UnitYear, horizon: years, legs: []leg{newLeg(in, projection.UnitYear)}}, nil
}

// planMutualFund sums a lump-sum leg and a SIP leg year by year.
func planMutualFund(input ProjectInput, _ Settings) (plan, error) {
	if input.Amount == 0 && input.MonthlyAmount == 0 {
		return plan{}, domainerror.NewInvalidProjectionInput(
			domainerror.ErrCodeMissingCalcFields,
			"either a lump sum or a monthly amount is required",
		)
	}
	p := yearlyLumpSum(input.Amount, input.AnnualRatePercent, input.Years)
	sip := projection.Input{
		Amount:            input.MonthlyAmount,
		AnnualRatePercent: input.AnnualRatePercent,
		Unit:              projection.UnitYear,
		Style:             projection.StylePeriodicContribution,
	}
	p.legs = append(p.legs, newLeg(sip, projection.UnitYear))
	return p, nil
}

func yearlyLumpSum(amount, rate float64, years int) plan {
	in := projection.Input{
		Amount:            amount,
		AnnualRatePercent: rate,
		Unit:              projection.UnitYear,
		Style:             projection.StyleLumpSum,
	}
	return plan{unit: projection.UnitYear, horizon: years, legs: []leg{newLeg(in, projection.UnitYear)}}
}
