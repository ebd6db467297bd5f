package rsa

import "math/big"

// Mod1e4096 holds moduli of rotated keys wider than 2048 bits.
type Mod1e4096 struct{}

func (Mod1e4096) NbLimbs() uint     { return 64 }
func (Mod1e4096) BitsPerLimb() uint { return 64 }
func (Mod1e4096) IsPrime() bool     { return false }
func (Mod1e4096) Modulus() *big.Int { return allOnes(4096) }
