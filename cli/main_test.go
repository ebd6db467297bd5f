package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/plainrsa/plainrsa/journal"
	"github.com/plainrsa/plainrsa/rsa"
)

func run(t *testing.T, args ...string) error {
	t.Helper()
	return newApp().Run(append([]string{"plainrsa-cli", "--log-level", "error"}, args...))
}

func TestKeyGenCommand(t *testing.T) {
	require.NoError(t, run(t, "keygen"))
	require.NoError(t, run(t, "--p", "65539", "--q", "65543", "keygen"))
	require.ErrorIs(t, run(t, "--p", "61", "--q", "53", "keygen"), rsa.ErrExponentRange)
}

func TestEncryptDecryptCommandsJournal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")

	require.NoError(t, run(t, "--journal", path, "encrypt", "-m", "12345"))
	require.NoError(t, run(t, "--journal", path, "--engine", "saferith", "decrypt", "-m", "12345"))
	require.NoError(t, run(t, "--journal", path, "history", "--limit", "5"))

	j, err := journal.Open(path)
	require.NoError(t, err)
	defer j.Close()

	entries, err := j.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, journal.OpDecrypt, entries[0].Operation)
	require.Equal(t, journal.OpEncrypt, entries[1].Operation)
}

func TestEncryptRejectsInvalidMessage(t *testing.T) {
	require.ErrorIs(t, run(t, "encrypt", "-m", "12a45"), rsa.ErrInvalidInput)
}

func TestHistoryWithoutJournal(t *testing.T) {
	require.Error(t, run(t, "history"))
}

func TestProveRejectsMessageOutsideModulus(t *testing.T) {
	dir := t.TempDir()
	err := run(t, "--p", "65539", "--q", "65543", "prove",
		"-m", "4295622677",
		"--circuit", filepath.Join(dir, "circuit.bin"),
		"--pk", filepath.Join(dir, "pk.bin"),
		"-o", filepath.Join(dir, "proof.bin"),
	)
	require.ErrorIs(t, err, rsa.ErrMessageRange)
}
