package rsa

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtGcd(t *testing.T) {
	pDefault, _ := new(big.Int).SetString(DefaultP, 10)
	qDefault, _ := new(big.Int).SetString(DefaultQ, 10)
	phiDefault := new(big.Int).Mul(new(big.Int).Sub(pDefault, one), new(big.Int).Sub(qDefault, one))

	tests := []struct {
		name string
		a, b *big.Int
		gcd  *big.Int
	}{
		{"coprime", big.NewInt(17), big.NewInt(3120), big.NewInt(1)},
		{"common factor", big.NewInt(240), big.NewInt(46), big.NewInt(2)},
		{"b is zero", big.NewInt(42), big.NewInt(0), big.NewInt(42)},
		{"a is zero", big.NewInt(0), big.NewInt(5), big.NewInt(5)},
		{"a below b", big.NewInt(3), big.NewInt(7), big.NewInt(1)},
		{"negative a", big.NewInt(-12), big.NewInt(5), nil},
		{"public exponent and default phi", big.NewInt(PublicExponent), phiDefault, big.NewInt(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, x, y := ExtGcd(tt.a, tt.b)
			if tt.gcd != nil {
				require.Zero(t, g.Cmp(tt.gcd), "gcd = %s, want %s", g, tt.gcd)
			}

			lhs := new(big.Int).Mul(tt.a, x)
			lhs.Add(lhs, new(big.Int).Mul(tt.b, y))
			require.Zero(t, lhs.Cmp(g), "%s·%s + %s·%s = %s, want %s", tt.a, x, tt.b, y, lhs, g)
		})
	}
}

func TestExtGcdDoesNotModifyArguments(t *testing.T) {
	a, b := big.NewInt(65537), big.NewInt(3120)
	ExtGcd(a, b)
	require.Equal(t, "65537", a.String())
	require.Equal(t, "3120", b.String())
}
