package handlers

import (
	"fmt"
	"net/http"

	"github.com/plainrsa/plainrsa/rsa"
)

// KeyResponse represents the response body for the /key and /rotate endpoints
type KeyResponse struct {
	N           string `json:"n"`
	E           string `json:"e"`
	Fingerprint string `json:"fingerprint"`
}

// RotateRequest represents the request body for the /rotate endpoint
type RotateRequest struct {
	P string `json:"p"`
	Q string `json:"q"`
}

func keyResponse(pub *rsa.PublicKey) KeyResponse {
	return KeyResponse{
		N:           pub.N.String(),
		E:           pub.E.String(),
		Fingerprint: pub.Fingerprint().Hex(),
	}
}

// HandleKeyRequest handles the /key endpoint
func (s *Server) HandleKeyRequest(w http.ResponseWriter, r *http.Request) {
	// Only allow GET method
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.writeJSON(w, keyResponse(&s.Session.Keys.Current().Public))
}

// HandleRotateRequest handles the /rotate endpoint
func (s *Server) HandleRotateRequest(w http.ResponseWriter, r *http.Request) {
	// Only allow POST method
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Parse the request body
	var req RotateRequest
	if err := decodeBody(w, r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	// Parse the prime factors
	p, err := rsa.ParseDecimal(req.P)
	if err != nil {
		s.fail(w, r, fmt.Errorf("p: %w", err), "Invalid p")
		return
	}
	q, err := rsa.ParseDecimal(req.Q)
	if err != nil {
		s.fail(w, r, fmt.Errorf("q: %w", err), "Invalid q")
		return
	}

	// Derive the new key pair and swap it in
	kp, err := s.Session.Keys.Rotate(p, q)
	if err != nil {
		s.fail(w, r, err, "Failed to rotate key pair")
		return
	}

	s.Log.Info().Str("fingerprint", kp.Public.Fingerprint().Hex()).Msg("rotated key pair")
	s.writeJSON(w, keyResponse(&kp.Public))
}
