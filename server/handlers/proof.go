package handlers

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"math/big"
	"net/http"
	"os"
	"path/filepath"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/backend/witness"
	"github.com/consensys/gnark/constraint"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/plainrsa/plainrsa/rsa"
	"github.com/plainrsa/plainrsa/utils"
)

// witnessFunc builds the full witness for one field width
type witnessFunc func(pub *rsa.PublicKey, message, salt *big.Int) (witness.Witness, *utils.Statement, error)

// Prover holds a compiled encryption circuit and its proving key
type Prover struct {
	cs        constraint.ConstraintSystem
	pk        groth16.ProvingKey
	fieldBits int
	witness   witnessFunc
}

// ProofRequest represents the request body for the /proof endpoint
type ProofRequest struct {
	Message string `json:"message"`
	// SaltHex is optional; a random salt is drawn when empty
	SaltHex string `json:"salt_hex"`
}

// ProofResponse represents the response body for the /proof endpoint
type ProofResponse struct {
	Ciphertext string `json:"ciphertext"`
	Commitment string `json:"commitment"`
	Salt       string `json:"salt"`
	Proof      string `json:"proof"`
}

// NewProver wraps a circuit compiled for one of utils.SupportedFieldBits
func NewProver(cs constraint.ConstraintSystem, pk groth16.ProvingKey, fieldBits int) *Prover {
	return &Prover{
		cs:        cs,
		pk:        pk,
		fieldBits: fieldBits,
		witness: func(pub *rsa.PublicKey, message, salt *big.Int) (witness.Witness, *utils.Statement, error) {
			return utils.GenerateWitnessFor(fieldBits, pub, message, salt)
		},
	}
}

// LoadProver loads circuit.bin and pk.bin from dir. fieldBits is the
// emulated field width the circuit was compiled for.
func LoadProver(dir string, fieldBits int) (*Prover, error) {
	// Load the circuit
	circuit, err := os.ReadFile(filepath.Join(dir, "circuit.bin"))
	if err != nil {
		return nil, fmt.Errorf("failed to read circuit file: %w", err)
	}

	cs := groth16.NewCS(ecc.BN254)
	if _, err := cs.ReadFrom(bytes.NewReader(circuit)); err != nil {
		return nil, fmt.Errorf("failed to parse circuit file: %w", err)
	}

	// Load the proving key
	pkBytes, err := os.ReadFile(filepath.Join(dir, "pk.bin"))
	if err != nil {
		return nil, fmt.Errorf("failed to read proving key file: %w", err)
	}

	pk := groth16.NewProvingKey(ecc.BN254)
	if _, err := pk.ReadFrom(bytes.NewReader(pkBytes)); err != nil {
		return nil, fmt.Errorf("failed to parse proving key: %w", err)
	}

	return NewProver(cs, pk, fieldBits), nil
}

// FieldBits is the emulated field width of the loaded circuit
func (p *Prover) FieldBits() int {
	return p.fieldBits
}

// HandleProofRequest handles the /proof endpoint
func (s *Server) HandleProofRequest(w http.ResponseWriter, r *http.Request) {
	// Only allow POST method
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if s.Prover == nil {
		http.Error(w, "Proving artifacts not loaded", http.StatusServiceUnavailable)
		return
	}

	// Parse the request body
	var req ProofRequest
	if err := decodeBody(w, r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	message, err := rsa.ParseDecimal(req.Message)
	if err != nil {
		s.fail(w, r, err, "Invalid message")
		return
	}

	// Use the caller's salt or draw a fresh one
	var salt *big.Int
	if req.SaltHex != "" {
		salt, err = hexutil.DecodeBig(req.SaltHex)
		if err != nil {
			http.Error(w, "Invalid salt format", http.StatusBadRequest)
			return
		}
	} else {
		salt, err = utils.RandomSalt()
		if err != nil {
			s.fail(w, r, err, "Failed to draw salt")
			return
		}
	}

	// Check the message and the key against the loaded circuit
	pub := s.Session.Keys.Current().Public
	if err := pub.CheckRange(message); err != nil {
		s.fail(w, r, err, "Invalid message")
		return
	}
	if pub.N.BitLen() > s.Prover.fieldBits {
		http.Error(w, "Key pair does not match the loaded circuit", http.StatusConflict)
		return
	}

	// Generate the proof
	proofBytes, statement, err := s.Prover.generateProof(&pub, message, salt)
	if err != nil {
		s.fail(w, r, err, "Failed to generate proof")
		return
	}

	// Return the proof
	s.writeJSON(w, ProofResponse{
		Ciphertext: statement.Ciphertext.String(),
		Commitment: hexutil.EncodeBig(statement.Commitment),
		Salt:       hexutil.EncodeBig(salt),
		Proof:      base64.RawURLEncoding.EncodeToString(proofBytes),
	})
}

// generateProof proves that the ciphertext of message under pub opens the
// returned commitment
func (p *Prover) generateProof(pub *rsa.PublicKey, message, salt *big.Int) ([]byte, *utils.Statement, error) {
	witness, statement, err := p.witness(pub, message, salt)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate witness: %w", err)
	}

	proof, err := utils.Prove(p.cs, p.pk, witness)
	if err != nil {
		return nil, nil, err
	}

	// Serialize the proof
	proofBuf := bytes.NewBuffer(nil)
	if _, err := proof.WriteRawTo(proofBuf); err != nil {
		return nil, nil, fmt.Errorf("failed to serialize proof: %w", err)
	}

	return proofBuf.Bytes(), statement, nil
}
