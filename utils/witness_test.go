package utils

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/stretchr/testify/require"

	circuitsrsa "github.com/plainrsa/plainrsa/circuits/rsa"
	"github.com/plainrsa/plainrsa/rsa"
)

func TestCommitDeterministic(t *testing.T) {
	chunks, err := MessageToChunks(big.NewInt(12345), 2048)
	require.NoError(t, err)

	a, err := Commit(big.NewInt(7), chunks)
	require.NoError(t, err)
	b, err := Commit(big.NewInt(7), chunks)
	require.NoError(t, err)
	require.Zero(t, a.Cmp(b))
	require.True(t, a.Cmp(ecc.BN254.ScalarField()) < 0)

	c, err := Commit(big.NewInt(8), chunks)
	require.NoError(t, err)
	require.NotZero(t, a.Cmp(c))
}

func TestRandomSalt(t *testing.T) {
	a, err := RandomSalt()
	require.NoError(t, err)
	b, err := RandomSalt()
	require.NoError(t, err)

	require.NotZero(t, a.Cmp(b))
	require.LessOrEqual(t, a.BitLen(), 248)
}

func TestGenerateWitnessDefaultKey(t *testing.T) {
	kp, err := rsa.DefaultKeyPair()
	require.NoError(t, err)
	require.Equal(t, 2048, FieldBits[circuitsrsa.Mod1e2048]())

	w, statement, err := GenerateWitness[circuitsrsa.Mod1e2048](&kp.Public, big.NewInt(12345), big.NewInt(7))
	require.NoError(t, err)
	require.NotNil(t, w)

	want, _, err := rsa.Encrypt(big.NewInt(12345), &kp.Public)
	require.NoError(t, err)
	require.Zero(t, want.Cmp(statement.Ciphertext))
	require.Zero(t, kp.Public.N.Cmp(statement.Modulus))

	public, err := PublicWitness[circuitsrsa.Mod1e2048](statement)
	require.NoError(t, err)

	fromFull, err := w.Public()
	require.NoError(t, err)

	fullBytes, err := fromFull.MarshalBinary()
	require.NoError(t, err)
	publicBytes, err := public.MarshalBinary()
	require.NoError(t, err)
	require.Equal(t, fullBytes, publicBytes)
}

func TestBuildAssignmentErrors(t *testing.T) {
	kp, err := rsa.DefaultKeyPair()
	require.NoError(t, err)

	// the built-in modulus does not fit a 256-bit field
	_, _, err = BuildAssignment[mod256](&kp.Public, big.NewInt(1), big.NewInt(1))
	require.Error(t, err)

	_, _, err = BuildAssignment[circuitsrsa.Mod1e2048](&kp.Public, big.NewInt(1), ecc.BN254.ScalarField())
	require.Error(t, err)

	_, _, err = BuildAssignment[circuitsrsa.Mod1e2048](&kp.Public, big.NewInt(-1), big.NewInt(1))
	require.Error(t, err)
}

type mod256 struct{}

func (mod256) NbLimbs() uint     { return 4 }
func (mod256) BitsPerLimb() uint { return 64 }
func (mod256) IsPrime() bool     { return false }
func (mod256) Modulus() *big.Int {
	one := big.NewInt(1)
	return new(big.Int).Sub(new(big.Int).Lsh(one, 256), one)
}
