// Package money converts between free-text monetary/percentage input and
// decimal values, and holds the margin arithmetic shared by the catalog,
// checkout and price simulation flows.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Format describes how currency values are rendered.
type Format struct {
	Symbol     string
	DecimalSep string
	GroupSep   string
}

// BRL is the default format: R$ 1.234,56.
var BRL = Format{Symbol: "R$", DecimalSep: ",", GroupSep: "."}

// ParseCurrencyInput reads the digits of text as a number of cents.
// Typing "150" yields 1.50. Empty or digit-free input yields 0.
func ParseCurrencyInput(text string) decimal.Decimal {
	digits := onlyDigits(text)
	if digits == "" {
		return decimal.Zero
	}
	cents, err := decimal.NewFromString(digits)
	if err != nil {
		return decimal.Zero
	}
	return cents.Shift(-2)
}

// FormatCurrency renders d with BRL.
func FormatCurrency(d decimal.Decimal) string {
	return BRL.Currency(d)
}

// Currency renders d with two decimals, grouping and the currency symbol.
func (f Format) Currency(d decimal.Decimal) string {
	out := f.Symbol + " " + f.Number(d, 2)
	if d.Round(2).IsNegative() {
		return "-" + out
	}
	return out
}

// Number renders the absolute value of d with the given number of decimals
// using the format's separators.
func (f Format) Number(d decimal.Decimal, places int32) string {
	s := d.Abs().StringFixed(places)
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i+1:]
	}

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(f.GroupSep)
		}
		b.WriteRune(r)
	}
	if frac != "" {
		b.WriteString(f.DecimalSep)
		b.WriteString(frac)
	}
	return b.String()
}

// FormatPercentage renders a percentage such as "12,50%".
func FormatPercentage(d decimal.Decimal) string {
	out := BRL.Number(d, 2) + "%"
	if d.Round(2).IsNegative() {
		return "-" + out
	}
	return out
}

type percentOptions struct {
	max      decimal.Decimal
	decimals int
}

// PercentOption tunes ParsePercentageInput.
type PercentOption func(*percentOptions)

// WithMax sets the clamp ceiling (default 100).
func WithMax(ceiling decimal.Decimal) PercentOption {
	return func(o *percentOptions) { o.max = ceiling }
}

// WithDecimals limits the accepted decimal places (default 2).
func WithDecimals(n int) PercentOption {
	return func(o *percentOptions) {
		if n >= 0 {
			o.decimals = n
		}
	}
}

// ParsePercentageInput accepts digits and at most one decimal comma.
// Extra decimal places are dropped and the result is clamped to the
// configured maximum. Invalid or empty input yields 0.
func ParsePercentageInput(text string, opts ...PercentOption) decimal.Decimal {
	o := percentOptions{max: hundred, decimals: 2}
	for _, opt := range opts {
		opt(&o)
	}

	var b strings.Builder
	seenComma := false
	places := 0
	for _, r := range text {
		switch {
		case r >= '0' && r <= '9':
			if seenComma {
				if places >= o.decimals {
					continue
				}
				places++
			}
			b.WriteRune(r)
		case r == ',' && !seenComma:
			seenComma = true
			b.WriteByte('.')
		}
	}

	s := strings.TrimSuffix(b.String(), ".")
	if s == "" {
		return decimal.Zero
	}
	if strings.HasPrefix(s, ".") {
		s = "0" + s
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	if d.GreaterThan(o.max) {
		return o.max
	}
	return d
}

// SalePriceFromMargin returns cost × (1 + margin/100).
func SalePriceFromMargin(cost, marginPercent decimal.Decimal) decimal.Decimal {
	return cost.Mul(decimal.NewFromInt(1).Add(marginPercent.Div(hundred)))
}

// MarginFromPrices returns (sale − cost) / cost × 100. ok is false when cost
// is zero, in which case there is no margin to show.
func MarginFromPrices(cost, sale decimal.Decimal) (margin decimal.Decimal, ok bool) {
	if cost.IsZero() {
		return decimal.Zero, false
	}
	return sale.Sub(cost).Div(cost).Mul(hundred), true
}

// Percent returns pct% of base.
func Percent(base, pct decimal.Decimal) decimal.Decimal {
	return base.Mul(pct).Div(hundred)
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
