// Package projection implements the financial projection engine: compound
// growth, rate derivation, HRA exemption, goal projection, chart sampling
// and currency formatting. Every function here is pure and safe for
// concurrent use; nothing performs I/O or keeps package-level state.
package projection

import (
	"math"

	domainerror "github.com/finplan/backend/internal/domain/error"
)

// CompoundingStyle selects the growth formula applied to an Input.
type CompoundingStyle string

const (
	StyleLumpSum                CompoundingStyle = "lump_sum"
	StylePeriodicContribution   CompoundingStyle = "periodic_contribution"
	StyleDecliningBalanceAnnual CompoundingStyle = "declining_balance_annual"
)

// PeriodUnit is the length of one horizon period.
type PeriodUnit string

const (
	UnitYear    PeriodUnit = "year"
	UnitQuarter PeriodUnit = "quarter"
	UnitMonth   PeriodUnit = "month"
)

// PeriodsPerYear returns how many periods of the unit fit in a year, or 0 for an unknown unit.
func (u PeriodUnit) PeriodsPerYear() int {
	switch u {
	case UnitYear:
		return 1
	case UnitQuarter:
		return 4
	case UnitMonth:
		return 12
	default:
		return 0
	}
}

// monthsPerPeriod returns the number of months in one period of the unit.
func (u PeriodUnit) monthsPerPeriod() int {
	if ppy := u.PeriodsPerYear(); ppy > 0 {
		return 12 / ppy
	}
	return 0
}

// Input describes a single projection.
//
// Amount is the principal for lump sums and the per-deposit contribution
// for the other styles. Periodic contributions are always monthly; Horizon
// is converted to months using Unit. ContributionWindow bounds the number
// of periods that receive a deposit under the declining-balance style,
// with 0 meaning every period.
type Input struct {
	Amount             float64
	AnnualRatePercent  float64
	Horizon            int
	Unit               PeriodUnit
	Style              CompoundingStyle
	ContributionWindow int
}

// Validate checks the input against the domain of the formulas.
func (in Input) Validate() error {
	if !isFinite(in.Amount) || !isFinite(in.AnnualRatePercent) {
		return domainerror.NewInvalidProjectionInput(domainerror.ErrCodeNonFiniteValue, "amount and rate must be finite numbers")
	}
	if in.Amount < 0 {
		return domainerror.NewInvalidProjectionInput(domainerror.ErrCodeNegativeAmount, "amount must not be negative")
	}
	if in.AnnualRatePercent <= -100 {
		return domainerror.NewInvalidProjectionInput(domainerror.ErrCodeRateOutOfRange, "annual rate must be greater than -100%")
	}
	if in.Horizon < 0 || in.ContributionWindow < 0 {
		return domainerror.NewInvalidProjectionInput(domainerror.ErrCodeNegativeHorizon, "horizon must not be negative")
	}
	if in.Unit.PeriodsPerYear() == 0 {
		return domainerror.NewInvalidProjectionInput(domainerror.ErrCodeUnknownPeriodUnit, "period unit must be 'year', 'quarter' or 'month'")
	}
	if _, ok := formulas[in.Style]; !ok {
		return domainerror.NewInvalidProjectionInput(domainerror.ErrCodeUnknownStyle, "unknown compounding style")
	}
	return nil
}

// formulas is the closed dispatch table over compounding styles.
var formulas = map[CompoundingStyle]func(Input) float64{
	StyleLumpSum:                lumpSum,
	StylePeriodicContribution:   periodicContribution,
	StyleDecliningBalanceAnnual: decliningBalance,
}

// FutureValue returns the value of the input at the end of its horizon.
// The result is never rounded.
func FutureValue(in Input) (float64, error) {
	if err := in.Validate(); err != nil {
		return 0, err
	}
	return formulas[in.Style](in), nil
}

// Contributed returns the total amount deposited over the horizon of the input.
func Contributed(in Input) float64 {
	switch in.Style {
	case StylePeriodicContribution:
		return in.Amount * float64(in.Horizon*in.Unit.monthsPerPeriod())
	case StyleDecliningBalanceAnnual:
		deposits := in.Horizon
		if in.ContributionWindow > 0 && in.ContributionWindow < deposits {
			deposits = in.ContributionWindow
		}
		return in.Amount * float64(deposits)
	default:
		return in.Amount
	}
}

// PeriodicRate converts an annual percentage into the rate for one period of unit.
func PeriodicRate(annualRatePercent float64, unit PeriodUnit) float64 {
	ppy := unit.PeriodsPerYear()
	if ppy == 0 {
		return 0
	}
	return annualRatePercent / 100 / float64(ppy)
}

// MonthlyRate converts an annual percentage into a monthly rate.
func MonthlyRate(annualRatePercent float64) float64 {
	return PeriodicRate(annualRatePercent, UnitMonth)
}

// AnnuityDueFactor is the future value of one unit deposited at the start of
// each of m periods at rate rm. It reduces to m when rm is zero.
func AnnuityDueFactor(rm float64, m int) float64 {
	if m <= 0 {
		return 0
	}
	if rm == 0 {
		return float64(m)
	}
	return (math.Pow(1+rm, float64(m)) - 1) / rm * (1 + rm)
}

func lumpSum(in Input) float64 {
	r := PeriodicRate(in.AnnualRatePercent, in.Unit)
	return in.Amount * math.Pow(1+r, float64(in.Horizon))
}

func periodicContribution(in Input) float64 {
	m := in.Horizon * in.Unit.monthsPerPeriod()
	return in.Amount * AnnuityDueFactor(MonthlyRate(in.AnnualRatePercent), m)
}

// decliningBalance deposits at the start of each period inside the window
// and then credits interest on the whole balance.
func decliningBalance(in Input) float64 {
	r := PeriodicRate(in.AnnualRatePercent, in.Unit)
	window := in.ContributionWindow
	if window == 0 {
		window = in.Horizon
	}

	balance := 0.0
	for period := 1; period <= in.Horizon; period++ {
		if period <= window {
			balance += in.Amount
		}
		balance += balance * r
	}
	return balance
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
