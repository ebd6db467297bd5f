package circuits

import (
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/math/emulated"

	"github.com/plainrsa/plainrsa/circuits/rsa"
)

// EncryptionCircuit proves that Ciphertext is the textbook RSA encryption,
// under (Modulus, 65537), of a message the prover knows and has committed
// to, without revealing the message.
type EncryptionCircuit[T emulated.FieldParams] struct {
	// Public inputs.
	Modulus    emulated.Element[T] `gnark:",public"`
	Ciphertext emulated.Element[T] `gnark:",public"`
	Commitment frontend.Variable   `gnark:",public"`

	// Private inputs.
	MessageChunks []frontend.Variable
	Salt          frontend.Variable
}

// NewEncryptionCircuit returns a circuit with its slices sized, ready to be
// compiled or used as a witness template.
func NewEncryptionCircuit[T emulated.FieldParams]() *EncryptionCircuit[T] {
	return &EncryptionCircuit[T]{
		MessageChunks: make([]frontend.Variable, NbChunks[T]()),
	}
}

func (c *EncryptionCircuit[T]) Define(api frontend.API) error {
	f, err := emulated.NewField[T](api)
	if err != nil {
		return err
	}

	// 1. Rebuild the message from its chunks.
	message := ChunksToEmulatedElement[T](api, c.MessageChunks)

	// 2. Check the ciphertext.
	rsa.AssertEncryption(f, message, &c.Ciphertext, &c.Modulus)

	// 3. Check the commitment to the same chunks.
	commitment := Commit(api, c.Salt, c.MessageChunks)
	api.AssertIsEqual(commitment, c.Commitment)

	return nil
}
