package rsa

import "math/big"

// ExtGcd returns g = gcd(a, b) together with Bézout coefficients x and y
// such that a·x + b·y = g.
//
// Quotient and remainder are taken with truncated division (QuoRem), so
// a = q·b + r holds exactly at every step. The recursion depth is bounded
// by the number of Euclidean steps, which is linear in the digit count.
func ExtGcd(a, b *big.Int) (g, x, y *big.Int) {
	if b.Sign() == 0 {
		return new(big.Int).Set(a), big.NewInt(1), big.NewInt(0)
	}

	q, r := new(big.Int).QuoRem(a, b, new(big.Int))
	g, x1, y1 := ExtGcd(b, r)

	// x = y1, y = x1 - q·y1
	y = x1.Sub(x1, q.Mul(q, y1))
	return g, y1, y
}
