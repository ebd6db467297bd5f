package utils

import (
	"fmt"

	"github.com/consensys/gnark/backend"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/backend/solidity"
	"github.com/consensys/gnark/backend/witness"
	"github.com/consensys/gnark/constraint"
)

// Prove runs groth16 with the hashing the exported Solidity verifier
// expects. Every proof of the encryption circuit goes through here.
func Prove(cs constraint.ConstraintSystem, pk groth16.ProvingKey, w witness.Witness) (groth16.Proof, error) {
	proof, err := groth16.Prove(cs, pk, w, solidity.WithProverTargetSolidityVerifier(backend.GROTH16))
	if err != nil {
		return nil, fmt.Errorf("failed to generate proof: %w", err)
	}
	return proof, nil
}

// Verify checks a proof produced by Prove.
func Verify(proof groth16.Proof, vk groth16.VerifyingKey, publicWitness witness.Witness) error {
	if err := groth16.Verify(proof, vk, publicWitness, solidity.WithVerifierTargetSolidityVerifier(backend.GROTH16)); err != nil {
		return fmt.Errorf("proof is invalid: %w", err)
	}
	return nil
}
