package rsa

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/cronokirby/saferith"
)

// Engine selects the exponentiation routine behind Encrypt and Decrypt.
type Engine int

const (
	// EngineSquareMultiply uses ModExp.
	EngineSquareMultiply Engine = iota
	// EngineSaferith uses saferith's constant-time Montgomery exponentiation.
	EngineSaferith
)

func (e Engine) String() string {
	switch e {
	case EngineSquareMultiply:
		return "square-multiply"
	case EngineSaferith:
		return "saferith"
	default:
		return fmt.Sprintf("engine(%d)", int(e))
	}
}

// ParseEngine maps an engine name, as printed by String, back to an Engine.
func ParseEngine(name string) (Engine, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "square-multiply":
		return EngineSquareMultiply, nil
	case "saferith":
		return EngineSaferith, nil
	default:
		return 0, fmt.Errorf("unknown engine %q", name)
	}
}

// Exp computes base^exponent mod modulus with the selected routine.
func (e Engine) Exp(base, exponent, modulus *big.Int) (*big.Int, error) {
	switch e {
	case EngineSquareMultiply:
		return ModExp(base, exponent, modulus)
	case EngineSaferith:
		return saferithExp(base, exponent, modulus)
	default:
		return nil, fmt.Errorf("unknown engine %d", int(e))
	}
}

func saferithExp(base, exponent, modulus *big.Int) (*big.Int, error) {
	if modulus == nil || modulus.Sign() == 0 {
		return nil, ErrZeroModulus
	}
	if base == nil || exponent == nil {
		return nil, ErrNilOperand
	}
	if exponent.Sign() < 0 {
		return nil, ErrNegativeExponent
	}

	m := new(big.Int).Abs(modulus)
	// Montgomery form needs an odd modulus greater than one.
	if m.Bit(0) == 0 || m.Cmp(one) == 0 || exponent.Sign() == 0 {
		return ModExp(base, exponent, modulus)
	}

	size := m.BitLen()
	b := new(big.Int).Mod(base, m)

	mod := saferith.ModulusFromNat(new(saferith.Nat).SetBig(m, size))
	x := new(saferith.Nat).SetBig(b, size)
	y := new(saferith.Nat).SetBig(exponent, exponent.BitLen())

	return new(saferith.Nat).Exp(x, y, mod).Big(), nil
}
