package utils

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/witness"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/consensys/gnark/std/math/emulated"

	"github.com/plainrsa/plainrsa/circuits"
	circuitsrsa "github.com/plainrsa/plainrsa/circuits/rsa"
	"github.com/plainrsa/plainrsa/rsa"
)

// SupportedFieldBits lists the emulated field widths the encryption circuit
// is instantiated with, smallest first.
var SupportedFieldBits = []int{2048, 4096}

// FieldBitsFor returns the smallest supported width that holds modulus.
func FieldBitsFor(modulus *big.Int) (int, error) {
	for _, bits := range SupportedFieldBits {
		if modulus.BitLen() <= bits {
			return bits, nil
		}
	}
	return 0, fmt.Errorf("modulus has %d bits (max %d)", modulus.BitLen(), SupportedFieldBits[len(SupportedFieldBits)-1])
}

// CompileEncryption compiles the encryption circuit over F to R1CS on BN254.
func CompileEncryption[F emulated.FieldParams]() (constraint.ConstraintSystem, error) {
	cs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, circuits.NewEncryptionCircuit[F]())
	if err != nil {
		return nil, fmt.Errorf("failed to compile circuit: %w", err)
	}
	return cs, nil
}

func CompileEncryptionCircuit(bits int) (constraint.ConstraintSystem, error) {
	switch bits {
	case 2048:
		return CompileEncryption[circuitsrsa.Mod1e2048]()
	case 4096:
		return CompileEncryption[circuitsrsa.Mod1e4096]()
	default:
		return nil, fmt.Errorf("unsupported field size %d", bits)
	}
}

func GenerateWitnessFor(bits int, pub *rsa.PublicKey, message, salt *big.Int) (witness.Witness, *Statement, error) {
	switch bits {
	case 2048:
		return GenerateWitness[circuitsrsa.Mod1e2048](pub, message, salt)
	case 4096:
		return GenerateWitness[circuitsrsa.Mod1e4096](pub, message, salt)
	default:
		return nil, nil, fmt.Errorf("unsupported field size %d", bits)
	}
}

func PublicWitnessFor(bits int, statement *Statement) (witness.Witness, error) {
	switch bits {
	case 2048:
		return PublicWitness[circuitsrsa.Mod1e2048](statement)
	case 4096:
		return PublicWitness[circuitsrsa.Mod1e4096](statement)
	default:
		return nil, fmt.Errorf("unsupported field size %d", bits)
	}
}
