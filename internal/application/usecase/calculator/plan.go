package calculator

import (
	"github.com/finplan/backend/internal/domain/projection"
)

// leg is one engine projection contributing to a calculator result.
// Its horizon is filled in per chart period; scale converts chart
// periods into periods of the leg's own unit.
type leg struct {
	in    projection.Input
	scale int
}

// plan is the engine view of a calculator request: a chart unit, a
// horizon in that unit and the legs whose values are summed.
type plan struct {
	unit    projection.PeriodUnit
	horizon int
	legs    []leg
}

func newLeg(in projection.Input, chartUnit projection.PeriodUnit) leg {
	scale := 1
	if chart := chartUnit.PeriodsPerYear(); chart > 0 && in.Unit.PeriodsPerYear() > chart {
		scale = in.Unit.PeriodsPerYear() / chart
	}
	return leg{in: in, scale: scale}
}

func (l leg) at(period int) projection.Input {
	in := l.in
	in.Horizon = period * l.scale
	return in
}

// valueAt returns the summed future value of every leg after period chart periods.
func (p plan) valueAt(period int) (float64, error) {
	total := 0.0
	for _, l := range p.legs {
		v, err := projection.FutureValue(l.at(period))
		if err != nil {
			return 0, err
		}
		total += v
	}
	return total, nil
}

// invested returns the total deposited over the full horizon.
func (p plan) invested() float64 {
	total := 0.0
	for _, l := range p.legs {
		total += projection.Contributed(l.at(p.horizon))
	}
	return total
}

func (p plan) sample(s Settings) ([]projection.SeriesPoint, error) {
	return projection.SampleFunc(p.valueAt, p.horizon, projection.SamplerOptions{
		MaxPoints: s.ChartPoints,
		Label:     projection.PeriodLabeler(p.unit),
	})
}
