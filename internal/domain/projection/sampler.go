package projection

import (
	"fmt"

	domainerror "github.com/finplan/backend/internal/domain/error"
)

// DefaultMaxPoints is the chart budget used when SamplerOptions.MaxPoints is not set.
const DefaultMaxPoints = 12

// SeriesPoint is one chart point.
type SeriesPoint struct {
	Period int
	Label  string
	Value  float64
}

// SamplerOptions configures down-sampling and labeling.
type SamplerOptions struct {
	MaxPoints int
	Label     func(period int) string
}

// PeriodLabeler returns a labeler such as "Year 3" or "Month 12".
func PeriodLabeler(unit PeriodUnit) func(int) string {
	name := "Period"
	switch unit {
	case UnitYear:
		name = "Year"
	case UnitQuarter:
		name = "Quarter"
	case UnitMonth:
		name = "Month"
	}
	return func(period int) string {
		return fmt.Sprintf("%s %d", name, period)
	}
}

// SamplePeriods returns the periods to plot for a horizon. Up to maxPoints
// periods every period is kept; beyond that every ceil(horizon/maxPoints)-th
// period is kept. Period 0 and the final period are always present.
func SamplePeriods(horizon, maxPoints int) []int {
	if horizon <= 0 {
		return []int{0}
	}
	if maxPoints <= 0 {
		maxPoints = DefaultMaxPoints
	}

	step := 1
	if horizon > maxPoints {
		step = (horizon + maxPoints - 1) / maxPoints
	}

	periods := make([]int, 0, horizon/step+2)
	for p := 0; p < horizon; p += step {
		periods = append(periods, p)
	}
	return append(periods, horizon)
}

// SampleFunc evaluates f at each sampled period in chronological order.
func SampleFunc(f func(period int) (float64, error), horizon int, opts SamplerOptions) ([]SeriesPoint, error) {
	if horizon < 0 {
		return nil, domainerror.NewInvalidProjectionInput(domainerror.ErrCodeNegativeHorizon, "horizon must not be negative")
	}

	label := opts.Label
	if label == nil {
		label = PeriodLabeler("")
	}

	periods := SamplePeriods(horizon, opts.MaxPoints)
	points := make([]SeriesPoint, 0, len(periods))
	for _, p := range periods {
		v, err := f(p)
		if err != nil {
			return nil, err
		}
		points = append(points, SeriesPoint{Period: p, Label: label(p), Value: v})
	}
	return points, nil
}

// Sample builds the growth curve of in by re-evaluating FutureValue with
// the horizon cut at each sampled period.
func Sample(in Input, opts SamplerOptions) ([]SeriesPoint, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if opts.Label == nil {
		opts.Label = PeriodLabeler(in.Unit)
	}

	return SampleFunc(func(period int) (float64, error) {
		at := in
		at.Horizon = period
		return FutureValue(at)
	}, in.Horizon, opts)
}
