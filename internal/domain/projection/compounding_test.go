package projection

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerror "github.com/finplan/backend/internal/domain/error"
)

func TestFutureValue_LumpSum(t *testing.T) {
	t.Run("yearly compounding", func(t *testing.T) {
		fv, err := FutureValue(Input{Amount: 100000, AnnualRatePercent: 10, Horizon: 3, Unit: UnitYear, Style: StyleLumpSum})
		require.NoError(t, err)
		assert.InDelta(t, 133100, fv, 1e-6)
	})

	t.Run("quarterly compounding", func(t *testing.T) {
		fv, err := FutureValue(Input{Amount: 100000, AnnualRatePercent: 8, Horizon: 4, Unit: UnitQuarter, Style: StyleLumpSum})
		require.NoError(t, err)
		assert.InDelta(t, 100000*math.Pow(1.02, 4), fv, 1e-6)
	})

	t.Run("never below principal for non-negative rates", func(t *testing.T) {
		for _, p := range []float64{0.01, 1, 5000, 1e7} {
			for _, r := range []float64{0, 0.5, 7.1, 12, 40} {
				for n := 0; n <= 40; n += 5 {
					fv, err := FutureValue(Input{Amount: p, AnnualRatePercent: r, Horizon: n, Unit: UnitYear, Style: StyleLumpSum})
					require.NoError(t, err)
					assert.GreaterOrEqual(t, fv, p, "P=%v r=%v n=%v", p, r, n)
				}
			}
		}
	})

	t.Run("negative rate shrinks the principal", func(t *testing.T) {
		fv, err := FutureValue(Input{Amount: 1000, AnnualRatePercent: -50, Horizon: 2, Unit: UnitYear, Style: StyleLumpSum})
		require.NoError(t, err)
		assert.InDelta(t, 250, fv, 1e-9)
	})
}

func TestFutureValue_PeriodicContribution(t *testing.T) {
	t.Run("annuity due monthly SIP", func(t *testing.T) {
		fv, err := FutureValue(Input{Amount: 5000, AnnualRatePercent: 12, Horizon: 10, Unit: UnitYear, Style: StylePeriodicContribution})
		require.NoError(t, err)
		rm := 0.01
		expected := 5000 * ((math.Pow(1+rm, 120) - 1) / rm) * (1 + rm)
		assert.InDelta(t, expected, fv, 1e-6)
		assert.InDelta(t, 1161695.38, fv, 1)
	})

	t.Run("zero rate is linear", func(t *testing.T) {
		for _, m := range []int{1, 12, 37, 240} {
			fv, err := FutureValue(Input{Amount: 2500, AnnualRatePercent: 0, Horizon: m, Unit: UnitMonth, Style: StylePeriodicContribution})
			require.NoError(t, err)
			assert.Equal(t, 2500*float64(m), fv)
		}
	})

	t.Run("zero horizon is zero", func(t *testing.T) {
		fv, err := FutureValue(Input{Amount: 2500, AnnualRatePercent: 9, Horizon: 0, Unit: UnitMonth, Style: StylePeriodicContribution})
		require.NoError(t, err)
		assert.Equal(t, 0.0, fv)
	})

	t.Run("horizon in years converts to months", func(t *testing.T) {
		yearly, err := FutureValue(Input{Amount: 1000, AnnualRatePercent: 6, Horizon: 2, Unit: UnitYear, Style: StylePeriodicContribution})
		require.NoError(t, err)
		monthly, err := FutureValue(Input{Amount: 1000, AnnualRatePercent: 6, Horizon: 24, Unit: UnitMonth, Style: StylePeriodicContribution})
		require.NoError(t, err)
		assert.Equal(t, monthly, yearly)
	})
}

func TestFutureValue_DecliningBalance(t *testing.T) {
	t.Run("deposits stop after the window", func(t *testing.T) {
		in := Input{Amount: 1000, AnnualRatePercent: 10, Horizon: 3, Unit: UnitYear, Style: StyleDecliningBalanceAnnual, ContributionWindow: 2}
		fv, err := FutureValue(in)
		require.NoError(t, err)
		// (1000*1.1 + 1000) * 1.1 * 1.1
		assert.InDelta(t, 2541, fv, 1e-9)
		assert.Equal(t, 2000.0, Contributed(in))
	})

	t.Run("zero window deposits every period", func(t *testing.T) {
		in := Input{Amount: 1000, AnnualRatePercent: 10, Horizon: 2, Unit: UnitYear, Style: StyleDecliningBalanceAnnual}
		fv, err := FutureValue(in)
		require.NoError(t, err)
		assert.InDelta(t, 2310, fv, 1e-9)
		assert.Equal(t, 2000.0, Contributed(in))
	})

	t.Run("SSY style 15 of 21 years", func(t *testing.T) {
		in := Input{Amount: 150000, AnnualRatePercent: 8.2, Horizon: 21, Unit: UnitYear, Style: StyleDecliningBalanceAnnual, ContributionWindow: 15}
		fv, err := FutureValue(in)
		require.NoError(t, err)

		balance := 0.0
		for year := 1; year <= 21; year++ {
			if year <= 15 {
				balance += 150000
			}
			balance *= 1.082
		}
		assert.InDelta(t, balance, fv, 1e-6)
	})
}

func TestInput_Validate(t *testing.T) {
	valid := Input{Amount: 100, AnnualRatePercent: 5, Horizon: 1, Unit: UnitYear, Style: StyleLumpSum}

	tests := []struct {
		name   string
		mutate func(*Input)
		code   domainerror.ProjectionErrorCode
	}{
		{"negative amount", func(in *Input) { in.Amount = -1 }, domainerror.ErrCodeNegativeAmount},
		{"rate at -100", func(in *Input) { in.AnnualRatePercent = -100 }, domainerror.ErrCodeRateOutOfRange},
		{"negative horizon", func(in *Input) { in.Horizon = -1 }, domainerror.ErrCodeNegativeHorizon},
		{"unknown unit", func(in *Input) { in.Unit = "week" }, domainerror.ErrCodeUnknownPeriodUnit},
		{"unknown style", func(in *Input) { in.Style = "simple" }, domainerror.ErrCodeUnknownStyle},
		{"NaN rate", func(in *Input) { in.AnnualRatePercent = math.NaN() }, domainerror.ErrCodeNonFiniteValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)

			_, err := FutureValue(in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domainerror.ErrInvalidProjectionInput))

			var projErr *domainerror.ProjectionError
			require.True(t, errors.As(err, &projErr))
			assert.Equal(t, tt.code, projErr.Code)
		})
	}

	assert.NoError(t, valid.Validate())
}

func TestAnnuityDueFactor(t *testing.T) {
	assert.Equal(t, 0.0, AnnuityDueFactor(0.01, 0))
	assert.Equal(t, 12.0, AnnuityDueFactor(0, 12))
	assert.InDelta(t, 1.01, AnnuityDueFactor(0.01, 1), 1e-12)
}
