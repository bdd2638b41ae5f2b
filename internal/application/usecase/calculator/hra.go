package calculator

import (
	"context"

	"github.com/finplan/backend/internal/domain/projection"
)

// HRAInput represents the input for the HRA exemption calculator.
// All figures are for the same period, monthly or yearly.
type HRAInput struct {
	BasicSalary float64
	HRAReceived float64
	RentPaid    float64
	IsMetroCity bool
}

// HRAOutput represents the output of the HRA exemption calculator.
type HRAOutput struct {
	projection.HRAResult
	FormattedExempted string
	FormattedTaxable  string
}

// HRAUseCase computes the exempt and taxable parts of an HRA.
type HRAUseCase struct {
	settings Settings
}

// NewHRAUseCase creates a new HRAUseCase instance.
func NewHRAUseCase(settings Settings) *HRAUseCase {
	return &HRAUseCase{settings: settings}
}

// Execute performs the HRA calculation.
func (uc *HRAUseCase) Execute(_ context.Context, input HRAInput) (*HRAOutput, error) {
	result, err := projection.HRAExemption(projection.HRAInput{
		BasicSalary: input.BasicSalary,
		HRAReceived: input.HRAReceived,
		RentPaid:    input.RentPaid,
		IsMetroCity: input.IsMetroCity,
	})
	if err != nil {
		return nil, err
	}

	return &HRAOutput{
		HRAResult:         result,
		FormattedExempted: uc.settings.Currency.Format(result.ExemptedAmount),
		FormattedTaxable:  uc.settings.Currency.Format(result.TaxableAmount),
	}, nil
}
