package rsa

import (
	"math/big"
	"time"
)

// Encrypt computes message^e mod n with the default engine and reports how
// long the exponentiation took.
//
// Messages are not range checked: a message >= n wraps around the modulus
// and will not decrypt back to itself.
func Encrypt(message *big.Int, pub *PublicKey) (*big.Int, time.Duration, error) {
	return EngineSquareMultiply.Encrypt(message, pub)
}

// Decrypt computes ciphertext^d mod n with the default engine and reports
// how long the exponentiation took.
func Decrypt(ciphertext *big.Int, priv *PrivateKey) (*big.Int, time.Duration, error) {
	return EngineSquareMultiply.Decrypt(ciphertext, priv)
}

func (e Engine) Encrypt(message *big.Int, pub *PublicKey) (*big.Int, time.Duration, error) {
	return e.timedExp(message, pub.E, pub.N)
}

func (e Engine) Decrypt(ciphertext *big.Int, priv *PrivateKey) (*big.Int, time.Duration, error) {
	return e.timedExp(ciphertext, priv.D, priv.N)
}

func (e Engine) timedExp(base, exponent, modulus *big.Int) (*big.Int, time.Duration, error) {
	start := time.Now()
	result, err := e.Exp(base, exponent, modulus)
	elapsed := time.Since(start)
	if err != nil {
		return nil, 0, err
	}
	return result, elapsed, nil
}
