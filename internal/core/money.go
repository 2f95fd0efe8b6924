// Package core provides the transaction domain model and money handling.
//
// Amounts are stored as integer cents and travel as decimal strings on the
// wire, so no float arithmetic touches monetary values.
package core

import (
	"strconv"
	"strings"
	"unicode"
)

// Money is a positive monetary amount in cents of the implicit currency unit.
type Money struct {
	Cents int64
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Decimal renders the canonical wire form: whole units without a fractional
// part ("25000"), otherwise two decimals ("12.34").
func (m Money) Decimal() string {
	units := m.Cents / 100
	rem := m.Cents % 100
	if rem < 0 {
		rem = -rem
	}
	if rem == 0 {
		return strconv.FormatInt(units, 10)
	}
	return strconv.FormatInt(units, 10) + "." + pad2(rem)
}

func pad2(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}

// ParseAmount converts a decimal string to Money with half-up rounding on the
// third decimal place. Both dot and comma separators are accepted. Negative,
// zero, and malformed values are rejected.
//
// Examples:
//
//	ParseAmount("25000") -> {2500000}
//	ParseAmount("12,34") -> {1234}
//	ParseAmount("12.346") -> {1235}
func ParseAmount(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return Money{}, ErrInvalidAmount
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return Money{}, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	if intPart == "0" && fracPart == "" {
		return Money{}, ErrInvalidAmount
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return Money{}, ErrInvalidAmount
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return Money{}, ErrInvalidAmount
		}
	}

	units, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}

	cents := int64(0)
	switch {
	case len(fracPart) == 0:
	case len(fracPart) == 1:
		d, _ := strconv.ParseInt(fracPart, 10, 64)
		cents = d * 10
	default:
		d, err := strconv.ParseInt(fracPart[:2], 10, 64)
		if err != nil {
			return Money{}, ErrInvalidAmount
		}
		cents = d
		// Half-up rounding on the third decimal.
		if len(fracPart) > 2 && fracPart[2] >= '5' {
			cents++
		}
	}

	const maxUnits = (1<<63 - 1) / 100
	if units > maxUnits {
		return Money{}, ErrInvalidAmount
	}
	total := units*100 + cents
	if total <= 0 {
		return Money{}, ErrInvalidAmount
	}
	return Money{Cents: total}, nil
}
