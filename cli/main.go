package main

import (
	"bytes"
	"context"
	"fmt"
	"math/big"
	"os"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/plainrsa/plainrsa/config"
	"github.com/plainrsa/plainrsa/journal"
	"github.com/plainrsa/plainrsa/logging"
	"github.com/plainrsa/plainrsa/rsa"
	"github.com/plainrsa/plainrsa/session"
	"github.com/plainrsa/plainrsa/utils"
)

var log = zerolog.Nop()

func fieldFlag() cli.Flag {
	return &cli.IntFlag{
		Name:  "field",
		Usage: "Emulated field width of the circuit (2048 or 4096); 0 picks the smallest that fits the modulus",
	}
}

func newCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:   "keygen",
			Usage:  "Derive and print the key pair",
			Action: KeyGen,
		},
		{
			Name:  "encrypt",
			Usage: "Encrypt a decimal message with the public key",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "message",
					Aliases:  []string{"m"},
					Usage:    "Message to encrypt, in decimal",
					Required: true,
				},
			},
			Action: func(cCtx *cli.Context) error { return Apply(cCtx, session.OpEncrypt) },
		},
		{
			Name:  "decrypt",
			Usage: "Decrypt a decimal ciphertext with the private key",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "message",
					Aliases:  []string{"m"},
					Usage:    "Ciphertext to decrypt, in decimal",
					Required: true,
				},
			},
			Action: func(cCtx *cli.Context) error { return Apply(cCtx, session.OpDecrypt) },
		},
		{
			Name:  "history",
			Usage: "Show recent journal entries",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "limit",
					Usage: "Number of entries to show",
					Value: 20,
				},
			},
			Action: History,
		},
		{
			Name:  "compile",
			Usage: "Compile the encryption circuit",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "output",
					Aliases:  []string{"o"},
					Usage:    "Output path for the compiled circuit",
					Required: true,
				},
				fieldFlag(),
			},
			Action: CompileCircuit,
		},
		{
			Name:  "setup",
			Usage: "Run the setup ceremony",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "circuit",
					Aliases:  []string{"c"},
					Usage:    "Path to the circuit file",
					Required: true,
				},
				&cli.StringFlag{
					Name:     "proving-key",
					Aliases:  []string{"pk"},
					Usage:    "Output path for the proving key",
					Required: true,
				},
				&cli.StringFlag{
					Name:     "verification-key",
					Aliases:  []string{"vk"},
					Usage:    "Output path for the verification key",
					Required: true,
				},
			},
			Action: SetupCircuit,
		},
		{
			Name:  "contract",
			Usage: "Generate the Solidity verifier contract",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "verification-key",
					Aliases:  []string{"vk"},
					Usage:    "Path to the verification key",
					Required: true,
				},
				&cli.StringFlag{
					Name:     "output",
					Aliases:  []string{"o"},
					Usage:    "Output path for the Solidity verifier contract",
					Required: true,
				},
			},
			Action: GenerateContract,
		},
		{
			Name:  "prove",
			Usage: "Encrypt a message and prove the ciphertext matches a commitment to it",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "circuit",
					Aliases:  []string{"c"},
					Usage:    "Path to the circuit file",
					Required: true,
				},
				&cli.StringFlag{
					Name:     "proving-key",
					Aliases:  []string{"pk"},
					Usage:    "Path to the proving key",
					Required: true,
				},
				&cli.StringFlag{
					Name:     "message",
					Aliases:  []string{"m"},
					Usage:    "Message to encrypt, in decimal",
					Required: true,
				},
				&cli.StringFlag{
					Name:  "salt",
					Usage: "Commitment salt as 0x-prefixed hex; random when empty",
				},
				&cli.StringFlag{
					Name:     "output",
					Aliases:  []string{"o"},
					Usage:    "Output path for the proof file",
					Required: true,
				},
				fieldFlag(),
			},
			Action: GenerateProof,
		},
		{
			Name:  "verify",
			Usage: "Verify an encryption proof against the configured public key",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "verification-key",
					Aliases:  []string{"vk"},
					Usage:    "Path to the verification key",
					Required: true,
				},
				&cli.StringFlag{
					Name:     "proof",
					Usage:    "Path to the proof file",
					Required: true,
				},
				&cli.StringFlag{
					Name:     "ciphertext",
					Usage:    "Ciphertext, in decimal",
					Required: true,
				},
				&cli.StringFlag{
					Name:     "commitment",
					Usage:    "Commitment as 0x-prefixed hex",
					Required: true,
				},
				fieldFlag(),
			},
			Action: VerifyProof,
		},
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:     "plainrsa-cli",
		Usage:    "Textbook RSA tools",
		Flags:    config.Flags(config.LogFlags(), config.KeyFlags(), config.JournalFlags()),
		Before:   setupLogging,
		Commands: newCommands(),
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setupLogging(cCtx *cli.Context) error {
	l, err := logging.Setup(cCtx.String("log-level"), cCtx.Bool("log-json"))
	if err != nil {
		return err
	}
	log = l
	return nil
}

func loadKeyPair(cCtx *cli.Context) (*config.Config, *rsa.KeyPair, error) {
	cfg, err := config.FromContext(cCtx)
	if err != nil {
		return nil, nil, err
	}
	kp, err := cfg.KeyPair()
	if err != nil {
		return nil, nil, err
	}
	log.Debug().Str("fingerprint", kp.Public.Fingerprint().Hex()).Msg("key pair ready")
	return cfg, kp, nil
}

func KeyGen(cCtx *cli.Context) error {
	_, kp, err := loadKeyPair(cCtx)
	if err != nil {
		return err
	}

	fmt.Printf("n: %s\n", kp.Public.N)
	fmt.Printf("e: %s\n", kp.Public.E)
	fmt.Printf("d: %s\n", kp.Private.D)
	fmt.Printf("modulus bits: %d\n", kp.Public.N.BitLen())
	fmt.Printf("fingerprint: %s\n", kp.Public.Fingerprint().Hex())
	return nil
}

func Apply(cCtx *cli.Context, op session.Operation) error {
	cfg, kp, err := loadKeyPair(cCtx)
	if err != nil {
		return err
	}

	message, err := rsa.ParseDecimal(cCtx.String("message"))
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

	res, err := s.Apply(context.Background(), op, message)
	if err != nil {
		return err
	}

	fmt.Printf("%s result: %s\n", op, res.Value)
	fmt.Printf("%s time: %v seconds\n", op, res.Elapsed.Seconds())
	return nil
}

func History(cCtx *cli.Context) error {
	path := cCtx.String("journal")
	if path == "" {
		return fmt.Errorf("no journal configured: set --journal or RSA_JOURNAL")
	}

	j, err := journal.Open(path)
	if err != nil {
		return err
	}
	defer j.Close()

	entries, err := j.Recent(context.Background(), cCtx.Int("limit"))
	if err != nil {
		return err
	}

	for _, e := range entries {
		fmt.Printf("%d\t%s\t%s\t%s\t%d bits\t%v\n",
			e.ID, e.CreatedAt.Format("2006-01-02 15:04:05"), e.Operation, e.Fingerprint, e.InputBits, e.Elapsed)
	}
	return nil
}

func fieldBits(cCtx *cli.Context, modulus *big.Int) (int, error) {
	if bits := cCtx.Int("field"); bits != 0 {
		return bits, nil
	}
	return utils.FieldBitsFor(modulus)
}

func CompileCircuit(cCtx *cli.Context) error {
	_, kp, err := loadKeyPair(cCtx)
	if err != nil {
		return err
	}
	bits, err := fieldBits(cCtx, kp.Public.N)
	if err != nil {
		return err
	}

	fmt.Printf("Compiling %d-bit circuit...\n", bits)
	cs, err := utils.CompileEncryptionCircuit(bits)
	if err != nil {
		return err
	}
	fmt.Printf("Compilation done. %d constraints.\n", cs.GetNbConstraints())

	var buf bytes.Buffer
	if _, err := cs.WriteTo(&buf); err != nil {
		return fmt.Errorf("failed to serialize circuit: %w", err)
	}

	fmt.Println("Writing compiled circuit...")
	outputPath := cCtx.String("output")
	if err := os.WriteFile(outputPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	fmt.Printf("Successfully wrote compiled circuit to %s\n", outputPath)

	return nil
}

func SetupCircuit(cCtx *cli.Context) error {
	fmt.Println("Reading circuit...")
	circuitPath := cCtx.String("circuit")
	circuit, err := os.ReadFile(circuitPath)
	if err != nil {
		return fmt.Errorf("failed to read circuit file: %w", err)
	}

	cs := groth16.NewCS(ecc.BN254)
	if _, err := cs.ReadFrom(bytes.NewReader(circuit)); err != nil {
		return fmt.Errorf("failed to parse circuit file: %w", err)
	}

	fmt.Println("Running setup ceremony...")
	pk, vk, err := groth16.Setup(cs)
	if err != nil {
		return fmt.Errorf("failed to setup circuit: %w", err)
	}

	fmt.Println("Writing proving key...")
	pkPath := cCtx.String("pk")
	pkBuf := bytes.NewBuffer(nil)
	pk.WriteRawTo(pkBuf)
	if err := os.WriteFile(pkPath, pkBuf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	fmt.Printf("Successfully wrote proving key to %s\n", pkPath)

	fmt.Println("Writing verification key...")
	vkPath := cCtx.String("vk")
	vkBuf := bytes.NewBuffer(nil)
	vk.WriteRawTo(vkBuf)
	if err := os.WriteFile(vkPath, vkBuf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	fmt.Printf("Successfully wrote verification key to %s\n", vkPath)
	return nil
}

func readVerifyingKey(path string) (groth16.VerifyingKey, error) {
	vkBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read verification key file: %w", err)
	}

	vk := groth16.NewVerifyingKey(ecc.BN254)
	if _, err := vk.ReadFrom(bytes.NewReader(vkBytes)); err != nil {
		return nil, fmt.Errorf("failed to parse verification key: %w", err)
	}
	return vk, nil
}

func GenerateContract(cCtx *cli.Context) error {
	fmt.Println("Reading verification key...")
	vk, err := readVerifyingKey(cCtx.String("vk"))
	if err != nil {
		return err
	}

	fmt.Println("Writing contract...")
	f, err := os.Create(cCtx.String("output"))
	if err != nil {
		return fmt.Errorf("failed to create contract file: %w", err)
	}
	defer f.Close()

	if err := vk.ExportSolidity(f); err != nil {
		return fmt.Errorf("failed to export contract: %w", err)
	}

	fmt.Printf("Successfully wrote contract to %s\n", cCtx.String("output"))

	return nil
}

func GenerateProof(cCtx *cli.Context) error {
	_, kp, err := loadKeyPair(cCtx)
	if err != nil {
		return err
	}

	message, err := rsa.ParseDecimal(cCtx.String("message"))
	if err != nil {
		return err
	}
	// The proof attests an encryption that must decrypt back to message.
	if err := kp.Public.CheckRange(message); err != nil {
		return err
	}

	var salt *big.Int
	if s := cCtx.String("salt"); s != "" {
		salt, err = hexutil.DecodeBig(s)
		if err != nil {
			return fmt.Errorf("invalid salt: %w", err)
		}
	} else {
		salt, err = utils.RandomSalt()
		if err != nil {
			return err
		}
	}

	bits, err := fieldBits(cCtx, kp.Public.N)
	if err != nil {
		return err
	}

	fmt.Println("Generating witness...")
	witness, statement, err := utils.GenerateWitnessFor(bits, &kp.Public, message, salt)
	if err != nil {
		return fmt.Errorf("failed to generate witness: %w", err)
	}

	fmt.Println("Reading circuit...")
	circuit, err := os.ReadFile(cCtx.String("circuit"))
	if err != nil {
		return fmt.Errorf("failed to read circuit file: %w", err)
	}
	cs := groth16.NewCS(ecc.BN254)
	if _, err := cs.ReadFrom(bytes.NewReader(circuit)); err != nil {
		return fmt.Errorf("failed to parse circuit file: %w", err)
	}

	fmt.Println("Reading proving key...")
	pkBytes, err := os.ReadFile(cCtx.String("pk"))
	if err != nil {
		return fmt.Errorf("failed to read proving key file: %w", err)
	}
	pk := groth16.NewProvingKey(ecc.BN254)
	if _, err := pk.ReadFrom(bytes.NewReader(pkBytes)); err != nil {
		return fmt.Errorf("failed to parse proving key: %w", err)
	}

	fmt.Println("Generating proof...")
	proof, err := utils.Prove(cs, pk, witness)
	if err != nil {
		return err
	}

	fmt.Println("Writing proof...")
	proofPath := cCtx.String("output")
	proofBuf := bytes.NewBuffer(nil)
	if _, err := proof.WriteTo(proofBuf); err != nil {
		return fmt.Errorf("failed to serialize proof: %w", err)
	}
	if err := os.WriteFile(proofPath, proofBuf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write proof file: %w", err)
	}

	fmt.Printf("Successfully wrote proof to %s\n", proofPath)
	fmt.Printf("ciphertext: %s\n", statement.Ciphertext)
	fmt.Printf("commitment: %s\n", hexutil.EncodeBig(statement.Commitment))
	fmt.Printf("salt: %s\n", hexutil.EncodeBig(salt))

	return nil
}

func VerifyProof(cCtx *cli.Context) error {
	_, kp, err := loadKeyPair(cCtx)
	if err != nil {
		return err
	}

	ciphertext, err := rsa.ParseDecimal(cCtx.String("ciphertext"))
	if err != nil {
		return err
	}
	commitment, err := hexutil.DecodeBig(cCtx.String("commitment"))
	if err != nil {
		return fmt.Errorf("invalid commitment: %w", err)
	}

	bits, err := fieldBits(cCtx, kp.Public.N)
	if err != nil {
		return err
	}

	publicWitness, err := utils.PublicWitnessFor(bits, &utils.Statement{
		Modulus:    kp.Public.N,
		Ciphertext: ciphertext,
		Commitment: commitment,
	})
	if err != nil {
		return err
	}

	vk, err := readVerifyingKey(cCtx.String("vk"))
	if err != nil {
		return err
	}

	proofBytes, err := os.ReadFile(cCtx.String("proof"))
	if err != nil {
		return fmt.Errorf("failed to read proof file: %w", err)
	}
	proof := groth16.NewProof(ecc.BN254)
	if _, err := proof.ReadFrom(bytes.NewReader(proofBytes)); err != nil {
		return fmt.Errorf("failed to parse proof: %w", err)
	}

	fmt.Println("Verifying...")
	if err := utils.Verify(proof, vk, publicWitness); err != nil {
		return err
	}
	fmt.Println("Proof is valid")

	return nil
}
