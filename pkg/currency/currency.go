// Package currency holds the display currencies a profile can choose and
// formats amounts for them.
package currency

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Code is an ISO 4217 code supported for display.
type Code string

const (
	USD Code = "USD"
	CLP Code = "CLP"
)

// Default is used when a profile has no preference.
const Default = USD

// Valid reports whether c is a supported display currency.
func (c Code) Valid() bool {
	return c == USD || c == CLP
}

// Parse returns the code for s, falling back to Default for unknown input.
func Parse(s string) Code {
	c := Code(strings.ToUpper(strings.TrimSpace(s)))
	if c.Valid() {
		return c
	}
	return Default
}

// Symbol is the prefix shown next to amount inputs.
func Symbol(c Code) string {
	if c == CLP {
		return "CLP $"
	}
	return "USD $"
}

// Format renders the magnitude of amount. Signs are left to the caller.
//
//	USD: $1,234.50  (two decimals, comma thousands)
//	CLP: $1.235     (no decimals, dot thousands)
func Format(amount decimal.Decimal, c Code) string {
	abs := amount.Abs()
	if c == CLP {
		return "$" + group(abs.Round(0).StringFixed(0), ".")
	}
	fixed := abs.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")
	return "$" + group(whole, ",") + "." + frac
}

func group(digits, sep string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
