package projection

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerror "github.com/finplan/backend/internal/domain/error"
)

func TestHRAExemption(t *testing.T) {
	t.Run("rent rule is the minimum", func(t *testing.T) {
		res, err := HRAExemption(HRAInput{BasicSalary: 50000, HRAReceived: 20000, RentPaid: 15000, IsMetroCity: true})
		require.NoError(t, err)
		assert.Equal(t, 20000.0, res.ActualHRA)
		assert.Equal(t, 10000.0, res.RentOverThreshold)
		assert.Equal(t, 25000.0, res.SalaryShareCeiling)
		assert.Equal(t, 10000.0, res.ExemptedAmount)
		assert.Equal(t, 10000.0, res.TaxableAmount)
	})

	t.Run("non-metro uses forty percent", func(t *testing.T) {
		res, err := HRAExemption(HRAInput{BasicSalary: 50000, HRAReceived: 30000, RentPaid: 40000})
		require.NoError(t, err)
		assert.Equal(t, 20000.0, res.SalaryShareCeiling)
		assert.Equal(t, 20000.0, res.ExemptedAmount)
		assert.Equal(t, 10000.0, res.TaxableAmount)
	})

	t.Run("rent below ten percent of basic exempts nothing", func(t *testing.T) {
		res, err := HRAExemption(HRAInput{BasicSalary: 50000, HRAReceived: 20000, RentPaid: 3000, IsMetroCity: true})
		require.NoError(t, err)
		assert.Equal(t, 0.0, res.RentOverThreshold)
		assert.Equal(t, 0.0, res.ExemptedAmount)
		assert.Equal(t, 20000.0, res.TaxableAmount)
	})

	t.Run("exempt plus taxable equals received", func(t *testing.T) {
		for _, basic := range []float64{0, 12000, 45000, 200000} {
			for _, hra := range []float64{0, 5000, 18000, 90000} {
				for _, rent := range []float64{0, 4000, 25000, 120000} {
					for _, metro := range []bool{true, false} {
						res, err := HRAExemption(HRAInput{BasicSalary: basic, HRAReceived: hra, RentPaid: rent, IsMetroCity: metro})
						require.NoError(t, err)
						assert.InDelta(t, hra, res.ExemptedAmount+res.TaxableAmount, 1e-9)
						assert.GreaterOrEqual(t, res.ExemptedAmount, 0.0)
						assert.LessOrEqual(t, res.ExemptedAmount, hra)
					}
				}
			}
		}
	})

	t.Run("negative input", func(t *testing.T) {
		_, err := HRAExemption(HRAInput{BasicSalary: -1})
		assert.True(t, errors.Is(err, domainerror.ErrInvalidProjectionInput))
	})
}
