package rsa

import (
	"github.com/consensys/gnark/std/math/emulated"
)

// PublicExponent is hardcoded in the circuit as 2^16 + 1.
const PublicExponent = 65537

// Encrypt returns message^65537 mod modulus. The result is not guaranteed
// to be fully reduced; compare it with ModAssertIsEqual.
func Encrypt[T emulated.FieldParams](f *emulated.Field[T], message, modulus *emulated.Element[T]) *emulated.Element[T] {
	acc := message
	for range 16 {
		acc = f.ModMul(acc, acc, modulus)
	}
	acc = f.ModMul(acc, message, modulus)

	return acc
}

// AssertEncryption constrains ciphertext ≡ message^65537 (mod modulus).
func AssertEncryption[T emulated.FieldParams](f *emulated.Field[T], message, ciphertext, modulus *emulated.Element[T]) {
	em := Encrypt(f, message, modulus)
	f.ModAssertIsEqual(em, ciphertext, modulus)
}
