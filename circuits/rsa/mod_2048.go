package rsa

import "math/big"

// Mod1e2048 holds moduli up to 2048 bits, which covers the built-in key.
type Mod1e2048 struct{}

func (Mod1e2048) NbLimbs() uint     { return 32 }
func (Mod1e2048) BitsPerLimb() uint { return 64 }
func (Mod1e2048) IsPrime() bool     { return false }
func (Mod1e2048) Modulus() *big.Int { return allOnes(2048) }

// allOnes returns 2^bits - 1, the largest value the field can hold.
func allOnes(bits uint) *big.Int {
	one := big.NewInt(1)
	return new(big.Int).Sub(new(big.Int).Lsh(one, bits), one)
}
