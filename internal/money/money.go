// Package money converts between user-entered money text, integer
// cents, and display strings. Amounts are integer cents everywhere;
// floats never touch a balance.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ParseToCents converts free-form money text to integer cents. Every
// character except digits and dots is stripped first, so "$1,234.56"
// and "15.50 usd" both parse. Fractions of a cent round half up.
//
// Empty or unparseable input means "no value entered" and yields 0;
// this function never fails.
func ParseToCents(text string) int64 {
	var b strings.Builder
	for _, r := range text {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return 0
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0
	}
	return d.Mul(hundred).Round(0).IntPart()
}

// Format renders cents as a fixed two-decimal dollar string:
// 1550 -> "$15.50". Negative amounts get a leading minus: "-$5.00".
func Format(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}
