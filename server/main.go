package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/plainrsa/plainrsa/config"
	"github.com/plainrsa/plainrsa/journal"
	"github.com/plainrsa/plainrsa/logging"
	"github.com/plainrsa/plainrsa/rsa"
	"github.com/plainrsa/plainrsa/server/handlers"
	"github.com/plainrsa/plainrsa/session"
	"github.com/plainrsa/plainrsa/utils"
)

func main() {
	app := &cli.App{
		Name:   "plainrsa-server",
		Usage:  "Textbook RSA over HTTP",
		Flags:  config.Flags(config.LogFlags(), config.KeyFlags(), config.JournalFlags(), config.ServerFlags()),
		Action: serve,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func serve(cCtx *cli.Context) error {
	cfg, err := config.FromContext(cCtx)
	if err != nil {
		return err
	}

	log, err := logging.Setup(cfg.LogLevel, cfg.LogJSON)
	if err != nil {
		return err
	}

	kp, err := cfg.KeyPair()
	if err != nil {
		return err
	}

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

	srv := &handlers.Server{
		Session:       s,
		AllowedOrigin: cfg.CORSOrigin,
		Log:           log,
	}

	// The /proof endpoint stays disabled when the artifacts are missing
	if bits, err := utils.FieldBitsFor(kp.Public.N); err != nil {
		log.Warn().Err(err).Msg("modulus too wide for the encryption circuit, proofs disabled")
	} else if prover, err := handlers.LoadProver(cfg.Artifacts, bits); err != nil {
		log.Warn().Err(err).Str("artifacts", cfg.Artifacts).Msg("proofs disabled")
	} else {
		log.Info().Int("field_bits", prover.FieldBits()).Msg("loaded circuit and proving key")
		srv.Prover = prover
	}

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cCtx.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("fingerprint", kp.Public.Fingerprint().Hex()).
			Msg("server starting")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}
