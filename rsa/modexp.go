package rsa

import "math/big"

var (
	zero = big.NewInt(0)
	one  = big.NewInt(1)
)

// ModExp computes base^exponent mod modulus by square-and-multiply.
//
// The result lies in [0, |modulus|). None of the arguments is modified.
func ModExp(base, exponent, modulus *big.Int) (*big.Int, error) {
	if modulus == nil || modulus.Sign() == 0 {
		return nil, ErrZeroModulus
	}
	if base == nil || exponent == nil {
		return nil, ErrNilOperand
	}
	if exponent.Sign() < 0 {
		return nil, ErrNegativeExponent
	}

	m := new(big.Int).Abs(modulus)
	result := new(big.Int).Mod(one, m)
	b := new(big.Int).Mod(base, m)
	exp := new(big.Int).Set(exponent)

	for exp.Cmp(zero) > 0 {
		if exp.Bit(0) == 1 {
			result.Mul(result, b)
			result.Mod(result, m)
		}
		b.Mul(b, b)
		b.Mod(b, m)
		exp.Rsh(exp, 1)
	}

	return result, nil
}
