package utils

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/witness"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/math/emulated"

	"github.com/plainrsa/plainrsa/circuits"
	"github.com/plainrsa/plainrsa/rsa"
)

// Statement is the public part of an encryption attestation.
type Statement struct {
	Modulus    *big.Int
	Ciphertext *big.Int
	Commitment *big.Int
}

// FieldBits returns the width of the emulated field F.
func FieldBits[F emulated.FieldParams]() int {
	var fr F
	return int(fr.NbLimbs() * fr.BitsPerLimb())
}

// BuildAssignment encrypts message under pub and fills every circuit input.
func BuildAssignment[F emulated.FieldParams](pub *rsa.PublicKey, message, salt *big.Int) (assignment *circuits.EncryptionCircuit[F], statement *Statement, err error) {
	nbBits := FieldBits[F]()
	if pub.N.BitLen() > nbBits {
		return nil, nil, fmt.Errorf("modulus has %d bits (max %d)", pub.N.BitLen(), nbBits)
	}
	if salt.Sign() < 0 || salt.Cmp(ecc.BN254.ScalarField()) >= 0 {
		return nil, nil, fmt.Errorf("salt is not a BN254 scalar")
	}

	chunks, err := MessageToChunks(message, nbBits)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to chunk message: %w", err)
	}

	ciphertext, _, err := rsa.Encrypt(message, pub)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encrypt message: %w", err)
	}

	commitment, err := Commit(salt, chunks)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to commit to message: %w", err)
	}

	assignment = circuits.NewEncryptionCircuit[F]()
	assignment.Modulus = emulated.ValueOf[F](pub.N)
	assignment.Ciphertext = emulated.ValueOf[F](ciphertext)
	assignment.Commitment = commitment
	assignment.Salt = new(big.Int).Set(salt)
	for i := range chunks {
		assignment.MessageChunks[i] = chunks[i]
	}

	statement = &Statement{
		Modulus:    new(big.Int).Set(pub.N),
		Ciphertext: ciphertext,
		Commitment: commitment,
	}

	return
}

// GenerateWitness builds the full witness used for proving.
func GenerateWitness[F emulated.FieldParams](pub *rsa.PublicKey, message, salt *big.Int) (w witness.Witness, statement *Statement, err error) {
	assignment, statement, err := BuildAssignment[F](pub, message, salt)
	if err != nil {
		return nil, nil, err
	}

	w, err = frontend.NewWitness(assignment, ecc.BN254.ScalarField())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create witness: %w", err)
	}

	return
}

// PublicWitness builds the witness a verifier needs from the statement alone.
func PublicWitness[F emulated.FieldParams](statement *Statement) (witness.Witness, error) {
	assignment := circuits.NewEncryptionCircuit[F]()
	assignment.Modulus = emulated.ValueOf[F](statement.Modulus)
	assignment.Ciphertext = emulated.ValueOf[F](statement.Ciphertext)
	assignment.Commitment = statement.Commitment
	assignment.Salt = 0
	for i := range assignment.MessageChunks {
		assignment.MessageChunks[i] = 0
	}

	w, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField(), frontend.PublicOnly())
	if err != nil {
		return nil, fmt.Errorf("failed to create public witness: %w", err)
	}

	return w, nil
}
