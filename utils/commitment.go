package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"

	bn254fr "github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/mdehoog/poseidon/poseidon"

	"github.com/plainrsa/plainrsa/circuits"
)

// Commit mirrors circuits.Commit outside the circuit.
func Commit(salt *big.Int, chunks []*big.Int) (commitment *big.Int, err error) {
	commitment = new(big.Int).Set(salt)
	for i := 0; i < len(chunks); i += circuits.CommitmentRate {
		end := min(i+circuits.CommitmentRate, len(chunks))

		inputs := make([]*big.Int, 0, 1+end-i)
		inputs = append(inputs, commitment)
		inputs = append(inputs, chunks[i:end]...)

		commitment, err = poseidon.Hash[*bn254fr.Element](inputs)
		if err != nil {
			return nil, fmt.Errorf("failed to hash commitment chunks: %w", err)
		}
	}

	return
}

// RandomSalt returns ElementSize random bytes as an integer, which always
// fits the BN254 scalar field.
func RandomSalt() (*big.Int, error) {
	randBytes := make([]byte, circuits.ElementSize)
	if _, err := rand.Read(randBytes); err != nil {
		return nil, fmt.Errorf("failed to read salt: %w", err)
	}
	return new(big.Int).SetBytes(randBytes), nil
}
