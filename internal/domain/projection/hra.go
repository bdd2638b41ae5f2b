package projection

import (
	"math"

	domainerror "github.com/finplan/backend/internal/domain/error"
)

const (
	hraRentThreshold = 0.10
	hraMetroShare    = 0.50
	hraNonMetroShare = 0.40
)

// HRAInput holds the salary figures used for the HRA exemption.
type HRAInput struct {
	BasicSalary float64
	HRAReceived float64
	RentPaid    float64
	IsMetroCity bool
}

// HRAResult is the exemption split along with the value of each rule.
type HRAResult struct {
	ExemptedAmount float64
	TaxableAmount  float64

	ActualHRA          float64 // rule 1
	RentOverThreshold  float64 // rule 2, rent minus 10% of basic, floored at zero
	SalaryShareCeiling float64 // rule 3, 50% (metro) or 40% of basic
}

// HRAExemption applies the minimum-of-three-rules HRA exemption.
// ExemptedAmount + TaxableAmount always equals HRAReceived.
func HRAExemption(in HRAInput) (HRAResult, error) {
	if !isFinite(in.BasicSalary) || !isFinite(in.HRAReceived) || !isFinite(in.RentPaid) {
		return HRAResult{}, domainerror.NewInvalidProjectionInput(domainerror.ErrCodeNonFiniteValue, "salary figures must be finite numbers")
	}
	if in.BasicSalary < 0 || in.HRAReceived < 0 || in.RentPaid < 0 {
		return HRAResult{}, domainerror.NewInvalidProjectionInput(domainerror.ErrCodeNegativeAmount, "salary figures must not be negative")
	}

	share := hraNonMetroShare
	if in.IsMetroCity {
		share = hraMetroShare
	}

	result := HRAResult{
		ActualHRA:          in.HRAReceived,
		RentOverThreshold:  math.Max(0, in.RentPaid-hraRentThreshold*in.BasicSalary),
		SalaryShareCeiling: share * in.BasicSalary,
	}
	result.ExemptedAmount = math.Min(result.ActualHRA, math.Min(result.RentOverThreshold, result.SalaryShareCeiling))
	result.TaxableAmount = in.HRAReceived - result.ExemptedAmount

	return result, nil
}
