package rsa

import (
	"fmt"
	"math/big"
	"sync/atomic"
)

// Keyring holds the active key pair. Rotation replaces the whole pair in
// one atomic store, so a caller that loaded a pair keeps a consistent
// (n, e, d) snapshot for the rest of its operation.
type Keyring struct {
	current atomic.Pointer[KeyPair]
}

func NewKeyring(kp *KeyPair) *Keyring {
	k := &Keyring{}
	k.current.Store(kp)
	return k
}

func (k *Keyring) Current() *KeyPair {
	return k.current.Load()
}

// Rotate derives a new pair from p and q and makes it current. On error the
// previous pair stays in place.
func (k *Keyring) Rotate(p, q *big.Int) (*KeyPair, error) {
	kp, err := NewKeyPair(p, q)
	if err != nil {
		return nil, fmt.Errorf("failed to rotate key pair: %w", err)
	}
	k.current.Store(kp)
	return kp, nil
}
