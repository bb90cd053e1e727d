// Package normalize turns loosely formatted classifier output (currency
// strings, deadline phrases) into canonical values. The functions here are
// injected into handlers so product rules can change without touching them.
package normalize

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// MoneyFunc parses free text into an amount.
type MoneyFunc func(text string) (decimal.Decimal, bool)

var moneyRe = regexp.MustCompile(`(?i)(?:usd|eur|gbp|[$€£])?\s*([0-9][0-9,]*(?:\.[0-9]+)?)\s*(thousand|million|billion|mm|bn|k|m|b)?(?:[^a-z]|$)`)

var multipliers = map[string]decimal.Decimal{
	"":         decimal.NewFromInt(1),
	"k":        decimal.NewFromInt(1_000),
	"thousand": decimal.NewFromInt(1_000),
	"m":        decimal.NewFromInt(1_000_000),
	"mm":       decimal.NewFromInt(1_000_000),
	"million":  decimal.NewFromInt(1_000_000),
	"b":        decimal.NewFromInt(1_000_000_000),
	"bn":       decimal.NewFromInt(1_000_000_000),
	"billion":  decimal.NewFromInt(1_000_000_000),
}

// ParseMoney extracts the first amount in text. It understands currency
// symbols and codes, thousands separators and k/M/B style suffixes, and
// rounds to cents: "$1.2M" is 1200000, "USD 900,000.50" is 900000.50.
// Negative amounts are not recognised.
func ParseMoney(text string) (decimal.Decimal, bool) {
	text = strings.TrimSpace(text)
	if text == "" || strings.HasPrefix(text, "-") {
		return decimal.Zero, false
	}

	m := moneyRe.FindStringSubmatch(text)
	if m == nil {
		return decimal.Zero, false
	}

	digits := strings.ReplaceAll(m[1], ",", "")
	amount, err := decimal.NewFromString(digits)
	if err != nil {
		return decimal.Zero, false
	}

	mult, ok := multipliers[strings.ToLower(m[2])]
	if !ok {
		return decimal.Zero, false
	}

	return amount.Mul(mult).Round(2), true
}

// Largest parses every candidate and returns the largest amount along with
// the text it came from. ok is false when nothing parses.
func Largest(candidates []string, parse MoneyFunc) (amount decimal.Decimal, source string, ok bool) {
	for _, c := range candidates {
		v, parsed := parse(c)
		if !parsed {
			continue
		}
		if !ok || v.GreaterThan(amount) {
			amount, source, ok = v, c, true
		}
	}
	return amount, source, ok
}
