package circuits

import (
	"github.com/consensys/gnark/frontend"
	"github.com/mdehoog/poseidon/circuits/poseidon"
)

// Commit chains Poseidon over the chunks: the state starts at salt and each
// call hashes the state followed by up to CommitmentRate chunks.
// utils.Commit computes the same value outside the circuit.
func Commit(api frontend.API, salt frontend.Variable, chunks []frontend.Variable) frontend.Variable {
	state := salt
	for i := 0; i < len(chunks); i += CommitmentRate {
		end := min(i+CommitmentRate, len(chunks))

		inputs := make([]frontend.Variable, 0, 1+end-i)
		inputs = append(inputs, state)
		inputs = append(inputs, chunks[i:end]...)
		state = poseidon.Hash(api, inputs)
	}
	return state
}
