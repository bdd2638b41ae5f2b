package projection

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	croreThreshold = 10_000_000
	lakhThreshold  = 100_000
)

var (
	crore        = decimal.NewFromInt(croreThreshold)
	lakh         = decimal.NewFromInt(lakhThreshold)
	lakhsInCrore = decimal.NewFromInt(croreThreshold / lakhThreshold)
)

// CurrencyFormat renders amounts with crore/lakh unit switching.
// Callers pass it explicitly; there is no ambient default.
type CurrencyFormat struct {
	Symbol      string
	CroreSuffix string
	LakhSuffix  string
	// Undefined is printed for NaN and infinite amounts.
	Undefined string
}

// DefaultCurrencyFormat returns the rupee format ("₹1.23 Cr", "₹2.3 L", "₹9,999").
func DefaultCurrencyFormat() CurrencyFormat {
	return CurrencyFormat{
		Symbol:      "₹",
		CroreSuffix: "Cr",
		LakhSuffix:  "L",
		Undefined:   "N/A",
	}
}

// Format renders amount. Amounts of at least one crore keep two decimals,
// amounts of at least one lakh keep one, and anything smaller is rounded
// to a whole number with Indian digit grouping. The sign is preserved.
func (f CurrencyFormat) Format(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return f.Undefined
	}

	value := decimal.NewFromFloat(amount)
	abs := value.Abs()

	var body string
	var rounded decimal.Decimal
	inLakhs := abs.Div(lakh).Round(1)
	switch {
	case abs.GreaterThanOrEqual(crore) || inLakhs.GreaterThanOrEqual(lakhsInCrore):
		rounded = abs.Div(crore).Round(2)
		body = rounded.StringFixed(2) + " " + f.CroreSuffix
	case abs.GreaterThanOrEqual(lakh):
		rounded = inLakhs
		body = rounded.StringFixed(1) + " " + f.LakhSuffix
	default:
		rounded = abs.Round(0)
		body = groupIndian(rounded.StringFixed(0))
	}

	sign := ""
	if value.IsNegative() && !rounded.IsZero() {
		sign = "-"
	}
	return sign + f.Symbol + body
}

// groupIndian inserts separators in the Indian style: the last three
// digits form one group and every two digits before that form another.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var b strings.Builder
	lead := len(head) % 2
	if lead > 0 {
		b.WriteString(head[:lead])
	}
	for i := lead; i < len(head); i += 2 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(head[i : i+2])
	}
	b.WriteByte(',')
	b.WriteString(tail)
	return b.String()
}
