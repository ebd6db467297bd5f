package rsa

import (
	"math/big"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeyringRotate(t *testing.T) {
	first, err := DefaultKeyPair()
	require.NoError(t, err)
	ring := NewKeyring(first)
	require.Same(t, first, ring.Current())

	// φ(3233) is too small for e = 65537; the current pair must survive.
	_, err = ring.Rotate(big.NewInt(61), big.NewInt(53))
	require.ErrorIs(t, err, ErrExponentRange)
	require.Same(t, first, ring.Current())

	second, err := ring.Rotate(big.NewInt(65539), big.NewInt(65543))
	require.NoError(t, err)
	require.Same(t, second, ring.Current())
	require.Equal(t, "4295622677", second.Public.N.String())
}

func TestKeyringConcurrentReaders(t *testing.T) {
	first, err := DefaultKeyPair()
	require.NoError(t, err)
	ring := NewKeyring(first)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(m int64) {
			defer wg.Done()
			for j := 0; j < 5; j++ {
				kp := ring.Current()
				c, _, err := Encrypt(big.NewInt(m), &kp.Public)
				if err != nil {
					t.Error(err)
					return
				}
				got, _, err := Decrypt(c, &kp.Private)
				if err != nil {
					t.Error(err)
					return
				}
				if got.Int64() != m {
					t.Errorf("round trip of %d gave %s", m, got)
				}
			}
		}(int64(1000 + i))
	}

	for _, pq := range [][2]int64{{65539, 65543}, {65543, 65551}} {
		_, err := ring.Rotate(big.NewInt(pq[0]), big.NewInt(pq[1]))
		require.NoError(t, err)
	}
	wg.Wait()
}
