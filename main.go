package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/urfave/cli/v2"

	"github.com/plainrsa/plainrsa/config"
	"github.com/plainrsa/plainrsa/journal"
	"github.com/plainrsa/plainrsa/logging"
	"github.com/plainrsa/plainrsa/rsa"
	"github.com/plainrsa/plainrsa/session"
)

func main() {
	app := &cli.App{
		Name:   "plainrsa",
		Usage:  "Interactive textbook RSA session",
		Flags:  config.Flags(config.LogFlags(), config.KeyFlags(), config.JournalFlags()),
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cCtx *cli.Context) error {
	cfg, err := config.FromContext(cCtx)
	if err != nil {
		return err
	}

	log, err := logging.Setup(cfg.LogLevel, cfg.LogJSON)
	if err != nil {
		return err
	}

	fmt.Println("Generating keys...")
	kp, err := cfg.KeyPair()
	if err != nil {
		return err
	}
	fmt.Printf("Public key: (n = %s, e = %s)\n", kp.Public.N, kp.Public.E)
	fmt.Printf("Fingerprint: %s\n", kp.Public.Fingerprint().Hex())

	s := &session.Session{
		Keys:   rsa.NewKeyring(kp),
		Engine: cfg.Engine,
		Log:    log,
	}
	if cfg.JournalPath != "" {
		j, err := journal.Open(cfg.JournalPath)
		if err != nil {
			return err
		}
		defer j.Close()
		s.Journal = j
	}

	ctx, stop := signal.NotifyContext(cCtx.Context, os.Interrupt)
	defer stop()

	return s.Run(ctx, os.Stdin, os.Stdout)
}
