// Package units converts decimal gas and value amounts into integer wei.
package units

import (
	"fmt"
	"math/big"
	"strings"
)

// Decimal places between wei and the two configuration units.
const (
	GweiDecimals  = 9
	EtherDecimals = 18
)

// ParseGwei converts a decimal gwei string (fractional allowed) to wei.
func ParseGwei(s string) (*big.Int, error) {
	return ParseDecimal(s, GweiDecimals)
}

// ParseEther converts a decimal ether string (fractional allowed) to wei.
func ParseEther(s string) (*big.Int, error) {
	return ParseDecimal(s, EtherDecimals)
}

// ParseDecimal shifts the decimal point of s right by decimals places and
// returns the resulting integer. Fraction digits beyond the shift are
// truncated toward zero, so "1.0000000005" gwei is 1000000000 wei.
// Negative amounts are rejected.
func ParseDecimal(s string, decimals int) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty decimal value")
	}
	if strings.HasPrefix(s, "-") {
		return nil, fmt.Errorf("negative value %q not allowed", s)
	}
	s = strings.TrimPrefix(s, "+")

	intPart, fracPart, hasDot := strings.Cut(s, ".")
	if intPart == "" && fracPart == "" {
		return nil, fmt.Errorf("invalid decimal value %q", s)
	}
	if intPart == "" {
		intPart = "0"
	}
	if !isDigits(intPart) || (hasDot && fracPart != "" && !isDigits(fracPart)) {
		return nil, fmt.Errorf("invalid decimal value %q", s)
	}

	// Pad or truncate the fraction to exactly `decimals` digits.
	if len(fracPart) > decimals {
		fracPart = fracPart[:decimals]
	}
	fracPart += strings.Repeat("0", decimals-len(fracPart))

	wei, ok := new(big.Int).SetString(intPart+fracPart, 10)
	if !ok {
		return nil, fmt.Errorf("invalid decimal value %q", s)
	}
	return wei, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
