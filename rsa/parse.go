package rsa

import (
	"math/big"
	"regexp"
	"strings"
)

var digitsRegexp = regexp.MustCompile(`^[0-9]+$`)

// ParseDecimal parses a non-negative integer written only with ASCII
// digits. Surrounding whitespace is ignored; signs, separators and any
// other character make it fail with an *InvalidInputError.
func ParseDecimal(s string) (*big.Int, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil, &InvalidInputError{Input: s, Reason: "empty"}
	}
	if !digitsRegexp.MatchString(trimmed) {
		return nil, &InvalidInputError{Input: s, Reason: "must contain only digits"}
	}

	v, ok := new(big.Int).SetString(trimmed, 10)
	if !ok {
		return nil, &InvalidInputError{Input: s, Reason: "not a decimal integer"}
	}
	return v, nil
}
