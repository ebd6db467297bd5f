package utils

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/plainrsa/plainrsa/circuits"
)

func TestMessageToChunks(t *testing.T) {
	chunks, err := MessageToChunks(big.NewInt(12345), 2048)
	require.NoError(t, err)
	require.Len(t, chunks, 9)
	require.Equal(t, "12345", chunks[0].String())
	for _, c := range chunks[1:] {
		require.Zero(t, c.Sign())
	}

	// 2^248 lands exactly in the second chunk.
	chunks, err = MessageToChunks(new(big.Int).Lsh(big.NewInt(1), circuits.ChunkBits), 512)
	require.NoError(t, err)
	require.Len(t, chunks, 3)
	require.Zero(t, chunks[0].Sign())
	require.Equal(t, "1", chunks[1].String())
}

func TestMessageToChunksRoundTrip(t *testing.T) {
	limit := new(big.Int).Lsh(big.NewInt(1), 2048)
	for i := 0; i < 10; i++ {
		m, err := rand.Int(rand.Reader, limit)
		require.NoError(t, err)

		chunks, err := MessageToChunks(m, 2048)
		require.NoError(t, err)
		for _, c := range chunks {
			require.LessOrEqual(t, c.BitLen(), circuits.ChunkBits)
		}
		require.Zero(t, m.Cmp(ChunksToMessage(chunks)))
	}
}

func TestMessageToChunksErrors(t *testing.T) {
	_, err := MessageToChunks(nil, 512)
	require.Error(t, err)

	_, err = MessageToChunks(big.NewInt(-1), 512)
	require.Error(t, err)

	_, err = MessageToChunks(new(big.Int).Lsh(big.NewInt(1), 512), 512)
	require.Error(t, err)
}
