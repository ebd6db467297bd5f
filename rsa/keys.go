package rsa

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// PublicExponent is the fixed public exponent e.
const PublicExponent = 65537

// Default factors of the built-in key pair.
const (
	DefaultP = "106697219132480173106064317148705638676529121742557567770857687729397446898790451577487723991083173010242416863238099716044775658681981821407922722052778958942891831033512463262741053961681512908218003840408526915629689432111480588966800949428079015682624591636010678691927285321708935076221951173426894836169"
	DefaultQ = "144819424465842307806353672547344125290716753535239658417883828941232509622838692761917211806963011168822281666033695157426515864265527046213326145174398018859056439431422867957079149967592078894410082695714160599647180947207504108618794637872261572262805565517756922288320779308895819726074229154002310375209"
)

type PublicKey struct {
	N *big.Int
	E *big.Int
}

// Fingerprint identifies the key in logs and journal entries without
// printing the whole modulus.
func (k *PublicKey) Fingerprint() common.Hash {
	return crypto.Keccak256Hash(k.N.Bytes(), k.E.Bytes())
}

// CheckRange returns ErrMessageRange unless 0 <= m < n, the range in which
// a message survives an encrypt/decrypt round trip.
func (k *PublicKey) CheckRange(m *big.Int) error {
	if m.Sign() < 0 || m.Cmp(k.N) >= 0 {
		return ErrMessageRange
	}
	return nil
}

type PrivateKey struct {
	N *big.Int
	D *big.Int
}

// KeyPair is derived once and never mutated afterwards, so it can be
// shared by any number of concurrent callers.
type KeyPair struct {
	Public  PublicKey
	Private PrivateKey
}

// KeyGen derives the public key (n, e) and private key (n, d) from p and q
// with e fixed to PublicExponent.
//
// p and q are not tested for primality. KeyGen fails with ErrInvalidPrime
// when either factor is below 2 or both are equal, with ErrExponentRange
// when e >= φ(n) and with ErrNotInvertible when gcd(e, φ(n)) != 1.
func KeyGen(p, q *big.Int) (*PublicKey, *PrivateKey, error) {
	return deriveKeys(p, q, big.NewInt(PublicExponent))
}

func deriveKeys(p, q, e *big.Int) (*PublicKey, *PrivateKey, error) {
	if p.Cmp(one) <= 0 || q.Cmp(one) <= 0 {
		return nil, nil, fmt.Errorf("%w: factors must be greater than 1", ErrInvalidPrime)
	}
	if p.Cmp(q) == 0 {
		return nil, nil, fmt.Errorf("%w: p and q must be distinct", ErrInvalidPrime)
	}

	n := new(big.Int).Mul(p, q)
	phi := new(big.Int).Mul(
		new(big.Int).Sub(p, one),
		new(big.Int).Sub(q, one),
	)

	if e.Sign() <= 0 || e.Cmp(phi) >= 0 {
		return nil, nil, ErrExponentRange
	}

	g, x, _ := ExtGcd(e, phi)
	if g.Cmp(one) != 0 {
		return nil, nil, fmt.Errorf("%w: gcd is %s", ErrNotInvertible, g)
	}

	d := x
	if d.Sign() < 0 {
		d.Add(d, phi)
	}

	pub := &PublicKey{N: n, E: new(big.Int).Set(e)}
	priv := &PrivateKey{N: new(big.Int).Set(n), D: d}
	return pub, priv, nil
}

// NewKeyPair runs KeyGen and bundles both halves.
func NewKeyPair(p, q *big.Int) (*KeyPair, error) {
	pub, priv, err := KeyGen(p, q)
	if err != nil {
		return nil, err
	}
	return &KeyPair{Public: *pub, Private: *priv}, nil
}

// NewKeyPairFromDecimal parses p and q as decimal strings before running KeyGen.
func NewKeyPairFromDecimal(p, q string) (*KeyPair, error) {
	pInt, err := ParseDecimal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to parse p: %w", err)
	}
	qInt, err := ParseDecimal(q)
	if err != nil {
		return nil, fmt.Errorf("failed to parse q: %w", err)
	}
	return NewKeyPair(pInt, qInt)
}

// DefaultKeyPair derives the built-in key pair from DefaultP and DefaultQ.
func DefaultKeyPair() (*KeyPair, error) {
	return NewKeyPairFromDecimal(DefaultP, DefaultQ)
}
