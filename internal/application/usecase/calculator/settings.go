// Package calculator contains the investment and tax calculator use cases.
// Each use case maps request figures onto the projection engine and
// renders the results with the configured currency format.
package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/finplan/backend/internal/domain/projection"
)

// Settings carries the presets shared by the calculators.
type Settings struct {
	ChartPoints      int
	IRR              projection.IRROptions
	SSYDepositYears  int
	SSYMaturityYears int
	NSCTenureYears   int
	FDUnit           projection.PeriodUnit
	Currency         projection.CurrencyFormat
}

// DefaultSettings returns the presets used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		ChartPoints:      projection.DefaultMaxPoints,
		IRR:              projection.DefaultIRROptions(),
		SSYDepositYears:  15,
		SSYMaturityYears: 21,
		NSCTenureYears:   5,
		FDUnit:           projection.UnitQuarter,
		Currency:         projection.DefaultCurrencyFormat(),
	}
}

// formatPercent renders a percentage with two decimals, e.g. "13.07%".
func formatPercent(v float64) string {
	return decimal.NewFromFloat(v).Round(2).StringFixed(2) + "%"
}
