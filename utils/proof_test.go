package utils

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/consensys/gnark/backend/groth16"
	"github.com/stretchr/testify/require"

	"github.com/plainrsa/plainrsa/rsa"
)

type mod512 struct{}

func (mod512) NbLimbs() uint     { return 8 }
func (mod512) BitsPerLimb() uint { return 64 }
func (mod512) IsPrime() bool     { return false }
func (mod512) Modulus() *big.Int {
	one := big.NewInt(1)
	return new(big.Int).Sub(new(big.Int).Lsh(one, 512), one)
}

func smallKeyPair(t *testing.T) *rsa.KeyPair {
	t.Helper()
	for {
		p, err := rand.Prime(rand.Reader, 200)
		require.NoError(t, err)
		q, err := rand.Prime(rand.Reader, 200)
		require.NoError(t, err)

		if kp, err := rsa.NewKeyPair(p, q); err == nil {
			return kp
		}
	}
}

func TestProveVerify(t *testing.T) {
	kp := smallKeyPair(t)

	cs, err := CompileEncryption[mod512]()
	require.NoError(t, err)
	pk, vk, err := groth16.Setup(cs)
	require.NoError(t, err)

	w, statement, err := GenerateWitness[mod512](&kp.Public, big.NewInt(12345), big.NewInt(7))
	require.NoError(t, err)

	proof, err := Prove(cs, pk, w)
	require.NoError(t, err)

	// The verifier only sees the statement, never the witness.
	publicWitness, err := PublicWitness[mod512](statement)
	require.NoError(t, err)
	require.NoError(t, Verify(proof, vk, publicWitness))

	t.Run("wrong commitment", func(t *testing.T) {
		forged := *statement
		forged.Commitment = new(big.Int).Add(statement.Commitment, big.NewInt(1))
		pw, err := PublicWitness[mod512](&forged)
		require.NoError(t, err)
		require.Error(t, Verify(proof, vk, pw))
	})

	t.Run("default prover options", func(t *testing.T) {
		plain, err := groth16.Prove(cs, pk, w)
		require.NoError(t, err)
		require.Error(t, Verify(plain, vk, publicWitness))
	})
}
