package calculator

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerror "github.com/finplan/backend/internal/domain/error"
	"github.com/finplan/backend/internal/domain/projection"
)

type memoryCache struct {
	entries map[string][]byte
	gets    int
	sets    int
	failSet bool
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.gets++
	v, ok := c.entries[key]
	return v, ok
}

func (c *memoryCache) Set(_ context.Context, key string, value []byte) error {
	c.sets++
	if c.failSet {
		return errors.New("cache unavailable")
	}
	c.entries[key] = value
	return nil
}

func TestProjectUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	uc := NewProjectUseCase(DefaultSettings(), nil)

	t.Run("sip", func(t *testing.T) {
		out, err := uc.Execute(ctx, ProjectInput{Kind: KindSIP, Amount: 5000, AnnualRatePercent: 12, Years: 10})
		require.NoError(t, err)
		assert.InDelta(t, 1_161_695.38, out.MaturityValue, 1)
		assert.Equal(t, 600_000.0, out.Invested)
		assert.InDelta(t, out.MaturityValue-600_000, out.EstimatedReturns, 1e-9)
		assert.Len(t, out.Series, 11)
		assert.Equal(t, "Year 10", out.Series[10].Label)
		assert.Equal(t, "₹11.6 L", out.Formatted.Maturity)
	})

	t.Run("sip with months charts by month", func(t *testing.T) {
		out, err := uc.Execute(ctx, ProjectInput{Kind: KindSIP, Amount: 1000, AnnualRatePercent: 0, Years: 1, Months: 6})
		require.NoError(t, err)
		assert.Equal(t, 18_000.0, out.MaturityValue)
		last := out.Series[len(out.Series)-1]
		assert.Equal(t, 18, last.Period)
		assert.Equal(t, "Month 18", last.Label)
		assert.LessOrEqual(t, len(out.Series), DefaultSettings().ChartPoints+2)
	})

	t.Run("fixed deposit compounds quarterly", func(t *testing.T) {
		out, err := uc.Execute(ctx, ProjectInput{Kind: KindFD, Amount: 100_000, AnnualRatePercent: 7, Years: 5})
		require.NoError(t, err)
		assert.InEpsilon(t, 100_000*math.Pow(1.0175, 20), out.MaturityValue, 1e-12)
		assert.Equal(t, 100_000.0, out.Invested)
		assert.Equal(t, "Year 5", out.Series[len(out.Series)-1].Label)
	})

	t.Run("nsc falls back to its tenure", func(t *testing.T) {
		out, err := uc.Execute(ctx, ProjectInput{Kind: KindNSC, Amount: 10_000, AnnualRatePercent: 7.7})
		require.NoError(t, err)
		assert.InEpsilon(t, 10_000*math.Pow(1.077, 5), out.MaturityValue, 1e-12)
	})

	t.Run("ssy deposits for fifteen years and matures at twenty-one", func(t *testing.T) {
		out, err := uc.Execute(ctx, ProjectInput{Kind: KindSSY, Amount: 150_000, AnnualRatePercent: 8.2})
		require.NoError(t, err)

		want, err := projection.FutureValue(projection.Input{
			Amount: 150_000, AnnualRatePercent: 8.2, Horizon: 21,
			Unit: projection.UnitYear, Style: projection.StyleDecliningBalanceAnnual, ContributionWindow: 15,
		})
		require.NoError(t, err)
		assert.Equal(t, want, out.MaturityValue)
		assert.Equal(t, 2_250_000.0, out.Invested)
		assert.Equal(t, 0, out.Series[0].Period)
		assert.Equal(t, 21, out.Series[len(out.Series)-1].Period)
	})

	t.Run("mutual fund sums both legs", func(t *testing.T) {
		lump, err := uc.Execute(ctx, ProjectInput{Kind: KindLumpSum, Amount: 100_000, AnnualRatePercent: 12, Years: 10})
		require.NoError(t, err)
		sip, err := uc.Execute(ctx, ProjectInput{Kind: KindSIP, Amount: 5000, AnnualRatePercent: 12, Years: 10})
		require.NoError(t, err)

		out, err := uc.Execute(ctx, ProjectInput{Kind: KindMutualFund, Amount: 100_000, MonthlyAmount: 5000, AnnualRatePercent: 12, Years: 10})
		require.NoError(t, err)
		assert.InDelta(t, lump.MaturityValue+sip.MaturityValue, out.MaturityValue, 1e-6)
		assert.Equal(t, 700_000.0, out.Invested)
	})

	t.Run("unknown calculator", func(t *testing.T) {
		_, err := uc.Execute(ctx, ProjectInput{Kind: "crypto", Amount: 1, Years: 1})
		require.Error(t, err)
		var projErr *domainerror.ProjectionError
		require.True(t, errors.As(err, &projErr))
		assert.Equal(t, domainerror.ErrCodeUnknownCalculator, projErr.Code)
	})

	t.Run("invalid figures", func(t *testing.T) {
		inputs := []ProjectInput{
			{Kind: KindSIP, Amount: -1, AnnualRatePercent: 12, Years: 10},
			{Kind: KindLumpSum, Amount: 1000, AnnualRatePercent: -150, Years: 10},
			{Kind: KindLumpSum, Amount: 1000, AnnualRatePercent: 10},
			{Kind: KindMutualFund, AnnualRatePercent: 10, Years: 3},
		}
		for _, in := range inputs {
			_, err := uc.Execute(ctx, in)
			assert.True(t, errors.Is(err, domainerror.ErrInvalidProjectionInput), "input %+v", in)
		}
	})
}

func TestProjectUseCase_Cache(t *testing.T) {
	ctx := context.Background()
	input := ProjectInput{Kind: KindLumpSum, Amount: 50_000, AnnualRatePercent: 9, Years: 7}

	t.Run("second call is served from cache", func(t *testing.T) {
		cache := newMemoryCache()
		uc := NewProjectUseCase(DefaultSettings(), cache)

		first, err := uc.Execute(ctx, input)
		require.NoError(t, err)
		second, err := uc.Execute(ctx, input)
		require.NoError(t, err)

		assert.Equal(t, 1, cache.sets)
		assert.Equal(t, 2, cache.gets)
		assert.Equal(t, first, second)
	})

	t.Run("unreadable entries are recomputed", func(t *testing.T) {
		cache := newMemoryCache()
		uc := NewProjectUseCase(DefaultSettings(), cache)
		cache.entries[uc.cacheKey(input)] = []byte("not json")

		out, err := uc.Execute(ctx, input)
		require.NoError(t, err)
		assert.InEpsilon(t, 50_000*math.Pow(1.09, 7), out.MaturityValue, 1e-12)
	})

	t.Run("cache failures do not fail the calculation", func(t *testing.T) {
		cache := newMemoryCache()
		cache.failSet = true
		uc := NewProjectUseCase(DefaultSettings(), cache)

		_, err := uc.Execute(ctx, input)
		require.NoError(t, err)
	})

	t.Run("different settings use different keys", func(t *testing.T) {
		monthly := DefaultSettings()
		monthly.FDUnit = projection.UnitMonth
		a := NewProjectUseCase(DefaultSettings(), nil).cacheKey(input)
		b := NewProjectUseCase(monthly, nil).cacheKey(input)
		assert.NotEqual(t, a, b)
	})
}
