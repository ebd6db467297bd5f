package rsa

import (
	"errors"
	"fmt"
)

var (
	// ErrZeroModulus is returned when an exponentiation is asked to reduce by zero.
	ErrZeroModulus = errors.New("rsa: zero modulus")
	// ErrNegativeExponent is returned by ModExp for exponents below zero.
	ErrNegativeExponent = errors.New("rsa: negative exponent")
	// ErrNilOperand is returned when a base or exponent is missing, as in a
	// key built without its exponent.
	ErrNilOperand = errors.New("rsa: nil operand")
	// ErrMessageRange is returned by CheckRange for messages not below n.
	ErrMessageRange = errors.New("rsa: message not below the modulus")
	// ErrNotInvertible is returned by KeyGen when gcd(e, φ(n)) != 1.
	ErrNotInvertible = errors.New("rsa: key generation failed: e not invertible modulo phi(n)")
	// ErrExponentRange is returned by KeyGen when e >= φ(n).
	ErrExponentRange = errors.New("rsa: key generation failed: e not below phi(n)")
	// ErrInvalidPrime is returned by KeyGen for factors that cannot form a modulus.
	ErrInvalidPrime = errors.New("rsa: key generation failed: invalid prime factor")
	// ErrInvalidInput is matched by every *InvalidInputError.
	ErrInvalidInput = errors.New("invalid input")
)

// InvalidInputError reports a string that is not a canonical decimal integer.
type InvalidInputError struct {
	Input  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input %q: %s", e.Input, e.Reason)
}

func (e *InvalidInputError) Unwrap() error {
	return ErrInvalidInput
}
