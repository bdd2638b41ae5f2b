package projection

import (
	"math"

	domainerror "github.com/finplan/backend/internal/domain/error"
)

// CashFlowSeries is an ordered list of signed flows where the index is the period number.
type CashFlowSeries []float64

// IRROptions bounds the IRR root search.
type IRROptions struct {
	// Lower and Upper bound the periodic rate as a fraction (-0.99 = -99%).
	Lower float64
	Upper float64
	// MaxIterations caps the number of bisection steps.
	MaxIterations int
	// Tolerance is the accepted absolute NPV residual, scaled by the largest
	// absolute flow when that exceeds 1.
	Tolerance float64
}

// DefaultIRROptions returns the default IRR search configuration.
func DefaultIRROptions() IRROptions {
	return IRROptions{
		Lower:         -0.99,
		Upper:         10,
		MaxIterations: 100,
		Tolerance:     1e-7,
	}
}

// CAGR returns the compound annual growth rate, in percent, that turns
// initial into final over years.
func CAGR(initial, final, years float64) (float64, error) {
	if !isFinite(initial) || !isFinite(final) || !isFinite(years) {
		return 0, domainerror.NewInvalidProjectionInput(domainerror.ErrCodeNonFiniteValue, "values must be finite numbers")
	}
	if initial <= 0 {
		return 0, domainerror.NewInvalidProjectionInput(domainerror.ErrCodeNonPositiveBase, "initial value must be greater than zero")
	}
	if years <= 0 {
		return 0, domainerror.NewInvalidProjectionInput(domainerror.ErrCodeNonPositiveYears, "years must be greater than zero")
	}
	if final < 0 {
		return 0, domainerror.NewInvalidProjectionInput(domainerror.ErrCodeNegativeAmount, "final value must not be negative")
	}

	return (math.Pow(final/initial, 1/years) - 1) * 100, nil
}

// NPV discounts the flows at a periodic rate given as a fraction.
func NPV(rate float64, flows CashFlowSeries) float64 {
	npv := 0.0
	discount := 1.0
	for _, cf := range flows {
		npv += cf / discount
		discount *= 1 + rate
	}
	return npv
}

// IRR finds the periodic rate, in percent, at which the NPV of flows is zero.
//
// The search is a plain bisection over [opts.Lower, opts.Upper] so the
// same flows always produce the same root. A series without both an
// outflow and an inflow, an NPV that does not change sign across the
// bounds, or an exhausted iteration cap yields an error wrapping
// ErrNoSolution.
func IRR(flows CashFlowSeries, opts IRROptions) (float64, error) {
	if len(flows) == 0 {
		return 0, domainerror.NewInvalidProjectionInput(domainerror.ErrCodeEmptyCashFlows, "cash flows must not be empty")
	}
	if !(opts.Lower > -1) || opts.Upper <= opts.Lower || opts.MaxIterations <= 0 || opts.Tolerance <= 0 {
		return 0, domainerror.NewInvalidProjectionInput(domainerror.ErrCodeInvalidSearchBounds, "invalid IRR search options")
	}

	var hasInflow, hasOutflow bool
	scale := 1.0
	for _, cf := range flows {
		if !isFinite(cf) {
			return 0, domainerror.NewInvalidProjectionInput(domainerror.ErrCodeNonFiniteValue, "cash flows must be finite numbers")
		}
		if cf > 0 {
			hasInflow = true
		} else if cf < 0 {
			hasOutflow = true
		}
		scale = math.Max(scale, math.Abs(cf))
	}
	if !hasInflow || !hasOutflow {
		return 0, domainerror.NewNoSolution(domainerror.ErrCodeNoSignChange, "cash flows need at least one sign change")
	}

	tolerance := opts.Tolerance * scale
	lo, hi := opts.Lower, opts.Upper
	npvLo, negLo := npvSign(lo, flows)
	if math.Abs(npvLo) < tolerance {
		return lo * 100, nil
	}
	npvHi, negHi := npvSign(hi, flows)
	if math.Abs(npvHi) < tolerance {
		return hi * 100, nil
	}
	if negLo == negHi {
		return 0, domainerror.NewNoSolution(domainerror.ErrCodeRootNotBracketed, "no rate within the search bounds zeroes the NPV")
	}

	for i := 0; i < opts.MaxIterations; i++ {
		mid := lo + (hi-lo)/2
		npvMid, negMid := npvSign(mid, flows)
		if math.Abs(npvMid) < tolerance {
			return mid * 100, nil
		}
		if negMid == negLo {
			lo = mid
		} else {
			hi = mid
		}
	}

	return 0, domainerror.NewNoSolution(domainerror.ErrCodeNotConverged, "IRR did not converge within the iteration cap")
}

// npvSign returns the NPV at rate and whether it is negative. Near a rate
// of -100% the discount factor underflows and the NPV stops being finite;
// the sign then comes from the flows compounded to the last period, which
// is the NPV scaled by a positive factor.
func npvSign(rate float64, flows CashFlowSeries) (float64, bool) {
	npv := NPV(rate, flows)
	if isFinite(npv) {
		return npv, npv < 0
	}
	return npv, terminalValue(rate, flows) < 0
}

// terminalValue compounds every flow forward to the last period.
func terminalValue(rate float64, flows CashFlowSeries) float64 {
	acc := 0.0
	for _, cf := range flows {
		acc = acc*(1+rate) + cf
	}
	return acc
}
