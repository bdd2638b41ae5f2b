package calculator

import (
	"context"

	domainerror "github.com/finplan/backend/internal/domain/error"
	"github.com/finplan/backend/internal/domain/projection"
)

// CAGRInput represents the input for the CAGR calculator.
type CAGRInput struct {
	InitialValue float64
	FinalValue   float64
	Years        float64
}

// CAGROutput represents the output of the CAGR calculator.
type CAGROutput struct {
	CAGRPercent           float64
	AbsoluteGain          float64
	AbsoluteReturnPercent float64
	FormattedCAGR         string
	FormattedGain         string
}

// CAGRUseCase derives the compound annual growth rate between two values.
type CAGRUseCase struct {
	settings Settings
}

// NewCAGRUseCase creates a new CAGRUseCase instance.
func NewCAGRUseCase(settings Settings) *CAGRUseCase {
	return &CAGRUseCase{settings: settings}
}

// Execute performs the CAGR calculation.
func (uc *CAGRUseCase) Execute(_ context.Context, input CAGRInput) (*CAGROutput, error) {
	cagr, err := projection.CAGR(input.InitialValue, input.FinalValue, input.Years)
	if err != nil {
		return nil, err
	}

	gain := input.FinalValue - input.InitialValue
	absolute := gain / input.InitialValue * 100

	return &CAGROutput{
		CAGRPercent:           cagr,
		AbsoluteGain:          gain,
		AbsoluteReturnPercent: absolute,
		FormattedCAGR:         formatPercent(cagr),
		FormattedGain:         uc.settings.Currency.Format(gain),
	}, nil
}

// IRRInput represents the input for the IRR calculator.
// CashFlows[i] is the signed flow at the end of period i.
type IRRInput struct {
	CashFlows []float64
}

// IRROutput represents the output of the IRR calculator.
// Defined is false when the flows admit no rate within the search bounds.
type IRROutput struct {
	Defined      bool
	IRRPercent   float64
	Display      string
	Reason       string
	TotalInflow  float64
	TotalOutflow float64
	NetCashFlow  float64
	FormattedNet string
}

// IRRUseCase derives the internal rate of return of a cash flow series.
type IRRUseCase struct {
	settings Settings
}

// NewIRRUseCase creates a new IRRUseCase instance.
func NewIRRUseCase(settings Settings) *IRRUseCase {
	return &IRRUseCase{settings: settings}
}

// Execute performs the IRR calculation. A series without a rate is not an error.
func (uc *IRRUseCase) Execute(_ context.Context, input IRRInput) (*IRROutput, error) {
	output := &IRROutput{}
	for _, f := range input.CashFlows {
		if f > 0 {
			output.TotalInflow += f
		} else {
			output.TotalOutflow -= f
		}
	}
	output.NetCashFlow = output.TotalInflow - output.TotalOutflow
	output.FormattedNet = uc.settings.Currency.Format(output.NetCashFlow)

	irr, err := projection.IRR(projection.CashFlowSeries(input.CashFlows), uc.settings.IRR)
	switch {
	case domainerror.IsNoSolution(err):
		output.Display = uc.settings.Currency.Undefined
		output.Reason = err.Error()
		return output, nil
	case err != nil:
		return nil, err
	}

	output.Defined = true
	output.IRRPercent = irr
	output.Display = formatPercent(irr)
	return output, nil
}
