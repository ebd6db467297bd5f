package rsa

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseEngine(t *testing.T) {
	for _, e := range []Engine{EngineSquareMultiply, EngineSaferith} {
		got, err := ParseEngine(e.String())
		require.NoError(t, err)
		require.Equal(t, e, got)
	}

	got, err := ParseEngine("")
	require.NoError(t, err)
	require.Equal(t, EngineSquareMultiply, got)

	_, err = ParseEngine("gmp")
	require.Error(t, err)
}

func TestEnginesAgree(t *testing.T) {
	kp, err := DefaultKeyPair()
	require.NoError(t, err)

	moduli := []*big.Int{kp.Public.N, big.NewInt(3233), big.NewInt(1 << 20), big.NewInt(1)}
	for _, modulus := range moduli {
		for i := 0; i < 5; i++ {
			base, err := rand.Int(rand.Reader, new(big.Int).Lsh(modulus, 1))
			require.NoError(t, err)
			exponent, err := rand.Int(rand.Reader, kp.Public.N)
			require.NoError(t, err)

			want, err := EngineSquareMultiply.Exp(base, exponent, modulus)
			require.NoError(t, err)
			got, err := EngineSaferith.Exp(base, exponent, modulus)
			require.NoError(t, err)
			require.Zero(t, want.Cmp(got), "%s^%s mod %s", base, exponent, modulus)
		}
	}
}

func TestSaferithRoundTrip(t *testing.T) {
	kp, err := DefaultKeyPair()
	require.NoError(t, err)

	c, _, err := EngineSaferith.Encrypt(big.NewInt(12345), &kp.Public)
	require.NoError(t, err)

	want, _, err := Encrypt(big.NewInt(12345), &kp.Public)
	require.NoError(t, err)
	require.Zero(t, want.Cmp(c))

	m, _, err := EngineSaferith.Decrypt(c, &kp.Private)
	require.NoError(t, err)
	require.Equal(t, "12345", m.String())
}

func TestSaferithErrors(t *testing.T) {
	_, err := EngineSaferith.Exp(big.NewInt(2), big.NewInt(3), big.NewInt(0))
	require.ErrorIs(t, err, ErrZeroModulus)

	_, err = EngineSaferith.Exp(big.NewInt(2), big.NewInt(-3), big.NewInt(7))
	require.ErrorIs(t, err, ErrNegativeExponent)

	_, err = Engine(42).Exp(big.NewInt(2), big.NewInt(3), big.NewInt(7))
	require.Error(t, err)
}
