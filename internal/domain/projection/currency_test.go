package projection

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrencyFormat_Format(t *testing.T) {
	f := DefaultCurrencyFormat()

	tests := []struct {
		name   string
		amount float64
		want   string
	}{
		{"crore", 12_345_678, "₹1.23 Cr"},
		{"exact crore", 10_000_000, "₹1.00 Cr"},
		{"lakh", 234_567, "₹2.3 L"},
		{"exact lakh", 100_000, "₹1.0 L"},
		{"lakh rounding up to a crore", 9_999_999.99, "₹1.00 Cr"},
		{"lakh rounding up at the half", 9_995_000, "₹1.00 Cr"},
		{"largest lakh", 9_994_999, "₹99.9 L"},
		{"below lakh", 9_999, "₹9,999"},
		{"five digits", 99_999, "₹99,999"},
		{"rounds into six digits", 99_999.6, "₹1,00,000"},
		{"small", 42.4, "₹42"},
		{"zero", 0, "₹0"},
		{"negative crore", -12_345_678, "-₹1.23 Cr"},
		{"negative lakh", -234_567, "-₹2.3 L"},
		{"negative small", -1_500, "-₹1,500"},
		{"negative rounding to zero", -0.3, "₹0"},
		{"large crore", 1_234_567_890_123, "₹123456.79 Cr"},
		{"NaN", math.NaN(), "N/A"},
		{"infinity", math.Inf(-1), "N/A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.Format(tt.amount))
		})
	}
}

func TestCurrencyFormat_Custom(t *testing.T) {
	f := CurrencyFormat{Symbol: "Rs.", CroreSuffix: "crore", LakhSuffix: "lakh", Undefined: "-"}
	assert.Equal(t, "Rs.2.50 crore", f.Format(25_000_000))
	assert.Equal(t, "Rs.5.0 lakh", f.Format(500_000))
	assert.Equal(t, "-", f.Format(math.NaN()))
}

func TestGroupIndian(t *testing.T) {
	assert.Equal(t, "1", groupIndian("1"))
	assert.Equal(t, "999", groupIndian("999"))
	assert.Equal(t, "1,000", groupIndian("1000"))
	assert.Equal(t, "12,34,567", groupIndian("1234567"))
	assert.Equal(t, "1,23,45,678", groupIndian("12345678"))
}
