// Package session runs encrypt and decrypt requests against the active key
// pair, either one at a time through Apply or as an interactive loop.
package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/big"
	"time"

	"github.com/rs/zerolog"

	"github.com/plainrsa/plainrsa/journal"
	"github.com/plainrsa/plainrsa/rsa"
)

type Session struct {
	Keys   *rsa.Keyring
	Engine rsa.Engine
	// Journal is optional.
	Journal journal.Recorder
	Log     zerolog.Logger
}

type Result struct {
	Value   *big.Int
	Elapsed time.Duration
}

// Apply runs op on message with the current key pair.
func (s *Session) Apply(ctx context.Context, op Operation, message *big.Int) (*Result, error) {
	kp := s.Keys.Current()
	fingerprint := kp.Public.Fingerprint().Hex()

	if err := kp.Public.CheckRange(message); err != nil {
		s.Log.Warn().
			Str("fingerprint", fingerprint).
			Int("bits", message.BitLen()).
			Msg("message is not below the modulus and will not round-trip")
	}

	var (
		value    *big.Int
		elapsed  time.Duration
		recorded string
		err      error
	)
	switch op {
	case OpEncrypt:
		recorded = journal.OpEncrypt
		value, elapsed, err = s.Engine.Encrypt(message, &kp.Public)
	case OpDecrypt:
		recorded = journal.OpDecrypt
		value, elapsed, err = s.Engine.Decrypt(message, &kp.Private)
	default:
		return nil, fmt.Errorf("operation %s does not produce a result", op)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to %s: %w", op, err)
	}

	s.Log.Debug().
		Str("op", op.String()).
		Str("engine", s.Engine.String()).
		Str("fingerprint", fingerprint).
		Dur("elapsed", elapsed).
		Msg("operation done")

	if s.Journal != nil {
		err := s.Journal.Record(ctx, journal.Entry{
			Operation:   recorded,
			Fingerprint: fingerprint,
			InputBits:   message.BitLen(),
			Elapsed:     elapsed,
		})
		if err != nil {
			s.Log.Error().Err(err).Msg("failed to write journal entry")
		}
	}

	return &Result{Value: value, Elapsed: elapsed}, nil
}

// Run reads (message, operation) pairs from in until exit, EOF or ctx is done.
func (s *Session) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprintln(out, "Enter a number to encrypt or decrypt:")
		if !scanner.Scan() {
			return scanner.Err()
		}
		message, err := rsa.ParseDecimal(scanner.Text())
		if err != nil {
			s.Log.Debug().Err(err).Msg("rejected message")
			fmt.Fprintln(out, "The message must contain only digits.")
			continue
		}

		fmt.Fprintln(out, "Choose an operation (1 encrypt, 2 decrypt, 3 exit):")
		if !scanner.Scan() {
			return scanner.Err()
		}
		op, err := ParseOperation(scanner.Text())
		if err != nil {
			fmt.Fprintln(out, "Invalid operation.")
			continue
		}

		switch op {
		case OpExit:
			fmt.Fprintln(out, "Exiting.")
			return nil
		case OpEncrypt:
			fmt.Fprintf(out, "Number to encrypt: %s\n", message)
		}

		res, err := s.Apply(ctx, op, message)
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			continue
		}
		fmt.Fprintf(out, "%s result: %s\n", op, res.Value)
		fmt.Fprintf(out, "%s time: %v seconds\n", op, res.Elapsed.Seconds())
	}
}
