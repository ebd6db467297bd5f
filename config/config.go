// Package config holds the flags shared by the interactive session, the
// command-line tool and the HTTP server.
package config

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/plainrsa/plainrsa/rsa"
)

type Config struct {
	P, Q        string
	Engine      rsa.Engine
	LogLevel    string
	LogJSON     bool
	JournalPath string
	Port        string
	Artifacts   string
	CORSOrigin  string
}

// KeyFlags returns the key derivation flags. Every flag constructor returns
// fresh values since urfave/cli writes env overrides into the flag itself.
func KeyFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "p",
			Usage:       "First prime factor, in decimal",
			EnvVars:     []string{"RSA_P"},
			Value:       rsa.DefaultP,
			DefaultText: "built-in 1024-bit prime",
		},
		&cli.StringFlag{
			Name:        "q",
			Usage:       "Second prime factor, in decimal",
			EnvVars:     []string{"RSA_Q"},
			Value:       rsa.DefaultQ,
			DefaultText: "built-in 1024-bit prime",
		},
		&cli.StringFlag{
			Name:    "engine",
			Usage:   "Exponentiation engine: square-multiply or saferith",
			EnvVars: []string{"RSA_ENGINE"},
			Value:   rsa.EngineSquareMultiply.String(),
		},
	}
}

func LogFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "Log level (trace, debug, info, warn, error)",
			EnvVars: []string{"LOG_LEVEL"},
			Value:   "info",
		},
		&cli.BoolFlag{
			Name:    "log-json",
			Usage:   "Emit logs as JSON instead of console text",
			EnvVars: []string{"LOG_JSON"},
		},
	}
}

func JournalFlags() []cli.Flag {
	return []cli.Flag{&cli.StringFlag{
		Name:    "journal",
		Usage:   "Path to the SQLite operation journal; empty disables it",
		EnvVars: []string{"RSA_JOURNAL"},
	}}
}

func ServerFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "port",
			Usage:   "HTTP listen port",
			EnvVars: []string{"PORT"},
			Value:   "8080",
		},
		&cli.StringFlag{
			Name:    "artifacts",
			Usage:   "Directory holding circuit.bin and pk.bin for the /proof endpoint",
			EnvVars: []string{"RSA_ARTIFACTS"},
			Value:   "../artifacts",
		},
		&cli.StringFlag{
			Name:    "cors-origin",
			Usage:   "Origin allowed to call the HTTP endpoints",
			EnvVars: []string{"CORS_ORIGIN"},
			Value:   "http://localhost:3000",
		},
	}
}

// Flags returns the given flag groups as one slice.
func Flags(groups ...[]cli.Flag) []cli.Flag {
	var flags []cli.Flag
	for _, g := range groups {
		flags = append(flags, g...)
	}
	return flags
}

// FromContext resolves every known flag. Flags that the running command
// does not define resolve to their zero value.
func FromContext(cCtx *cli.Context) (*Config, error) {
	engine, err := rsa.ParseEngine(cCtx.String("engine"))
	if err != nil {
		return nil, fmt.Errorf("invalid --engine: %w", err)
	}

	return &Config{
		P:           cCtx.String("p"),
		Q:           cCtx.String("q"),
		Engine:      engine,
		LogLevel:    cCtx.String("log-level"),
		LogJSON:     cCtx.Bool("log-json"),
		JournalPath: cCtx.String("journal"),
		Port:        cCtx.String("port"),
		Artifacts:   cCtx.String("artifacts"),
		CORSOrigin:  cCtx.String("cors-origin"),
	}, nil
}

// KeyPair derives the key pair from the configured factors.
func (c *Config) KeyPair() (*rsa.KeyPair, error) {
	kp, err := rsa.NewKeyPairFromDecimal(c.P, c.Q)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key pair: %w", err)
	}
	return kp, nil
}
