package utils

import (
	"fmt"
	"math/big"

	"github.com/plainrsa/plainrsa/circuits"
)

var chunkMask = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), circuits.ChunkBits), big.NewInt(1))

// MessageToChunks splits message into little-endian chunks of
// circuits.ChunkBits bits, enough of them to cover nbBits.
func MessageToChunks(message *big.Int, nbBits int) ([]*big.Int, error) {
	if message == nil {
		return nil, fmt.Errorf("message cannot be nil")
	}
	if message.Sign() < 0 {
		return nil, fmt.Errorf("message cannot be negative")
	}
	if message.BitLen() > nbBits {
		return nil, fmt.Errorf("message has %d bits (max %d)", message.BitLen(), nbBits)
	}

	count := (nbBits + circuits.ChunkBits - 1) / circuits.ChunkBits
	rest := new(big.Int).Set(message)

	chunks := make([]*big.Int, count)
	for i := range chunks {
		chunks[i] = new(big.Int).And(rest, chunkMask)
		rest.Rsh(rest, circuits.ChunkBits)
	}

	return chunks, nil
}

// ChunksToMessage reverses MessageToChunks.
func ChunksToMessage(chunks []*big.Int) *big.Int {
	message := new(big.Int)
	for i := len(chunks) - 1; i >= 0; i-- {
		message.Lsh(message, circuits.ChunkBits)
		message.Or(message, chunks[i])
	}
	return message
}
