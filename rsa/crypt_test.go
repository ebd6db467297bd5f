package rsa

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptDefaultKey(t *testing.T) {
	kp, err := DefaultKeyPair()
	require.NoError(t, err)

	c, encElapsed, err := Encrypt(big.NewInt(12345), &kp.Public)
	require.NoError(t, err)
	require.NotEqual(t, "12345", c.String())
	require.GreaterOrEqual(t, encElapsed.Seconds(), 0.0)

	m, decElapsed, err := Decrypt(c, &kp.Private)
	require.NoError(t, err)
	require.Equal(t, "12345", m.String())
	require.GreaterOrEqual(t, decElapsed.Seconds(), 0.0)
}

func TestRoundTripRandomMessages(t *testing.T) {
	kp, err := DefaultKeyPair()
	require.NoError(t, err)

	messages := []*big.Int{
		big.NewInt(0),
		big.NewInt(1),
		new(big.Int).Sub(kp.Public.N, one),
	}
	for i := 0; i < 5; i++ {
		m, err := rand.Int(rand.Reader, kp.Public.N)
		require.NoError(t, err)
		messages = append(messages, m)
	}

	for _, m := range messages {
		c, _, err := Encrypt(m, &kp.Public)
		require.NoError(t, err)
		got, _, err := Decrypt(c, &kp.Private)
		require.NoError(t, err)
		require.Zero(t, m.Cmp(got), "round trip of %s gave %s", m, got)
	}
}

func TestMessageAboveModulusWraps(t *testing.T) {
	pub, priv, err := deriveKeys(big.NewInt(61), big.NewInt(53), big.NewInt(17))
	require.NoError(t, err)

	c, _, err := Encrypt(big.NewInt(3233+65), pub)
	require.NoError(t, err)
	m, _, err := Decrypt(c, priv)
	require.NoError(t, err)
	require.Equal(t, "65", m.String())
}

func TestEncryptZeroModulus(t *testing.T) {
	_, _, err := Encrypt(big.NewInt(1), &PublicKey{N: big.NewInt(0), E: big.NewInt(PublicExponent)})
	require.ErrorIs(t, err, ErrZeroModulus)

	_, _, err = Decrypt(big.NewInt(1), &PrivateKey{D: big.NewInt(3)})
	require.ErrorIs(t, err, ErrZeroModulus)
}

func TestEncryptMissingOperand(t *testing.T) {
	for _, engine := range []Engine{EngineSquareMultiply, EngineSaferith} {
		_, _, err := engine.Encrypt(big.NewInt(65), &PublicKey{N: big.NewInt(3233)})
		require.ErrorIs(t, err, ErrNilOperand, engine.String())

		_, _, err = engine.Decrypt(nil, &PrivateKey{N: big.NewInt(3233), D: big.NewInt(2753)})
		require.ErrorIs(t, err, ErrNilOperand, engine.String())
	}
}
