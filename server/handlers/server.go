package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/plainrsa/plainrsa/rsa"
	"github.com/plainrsa/plainrsa/session"
)

// maxBodyBytes bounds every request body
const maxBodyBytes = 1 << 20

// Server serves the RSA endpoints against a session's keyring
type Server struct {
	Session *session.Session
	// Prover is nil when no proving artifacts were loaded
	Prover *Prover
	// AllowedOrigin is sent back in Access-Control-Allow-Origin
	AllowedOrigin string
	Log           zerolog.Logger
}

// Routes registers every endpoint, wrapped in the CORS middleware
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/encrypt", s.corsMiddleware(s.HandleEncryptRequest))
	mux.HandleFunc("/decrypt", s.corsMiddleware(s.HandleDecryptRequest))
	mux.HandleFunc("/key", s.corsMiddleware(s.HandleKeyRequest))
	mux.HandleFunc("/rotate", s.corsMiddleware(s.HandleRotateRequest))
	mux.HandleFunc("/proof", s.corsMiddleware(s.HandleProofRequest))
	return mux
}

// corsMiddleware adds CORS headers to the response
func (s *Server) corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Set CORS headers
		w.Header().Set("Access-Control-Allow-Origin", s.AllowedOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		// Handle preflight requests
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		// Call the next handler
		next(w, r)
	}
}

// badRequest reports whether err was caused by the client's input
func badRequest(err error) bool {
	return errors.Is(err, rsa.ErrInvalidInput) ||
		errors.Is(err, rsa.ErrMessageRange) ||
		errors.Is(err, rsa.ErrInvalidPrime) ||
		errors.Is(err, rsa.ErrNotInvertible) ||
		errors.Is(err, rsa.ErrExponentRange)
}

// fail logs err and writes it with a status derived from its kind. Client
// errors echo err; server errors only echo msg.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error, msg string) {
	if badRequest(err) {
		s.Log.Debug().Err(err).Str("path", r.URL.Path).Msg("rejected request")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.Log.Error().Err(err).Str("path", r.URL.Path).Msg(msg)
	http.Error(w, msg, http.StatusInternalServerError)
}

// decodeBody decodes a JSON body of at most maxBodyBytes into v
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Log.Error().Err(err).Msg("failed to write response")
	}
}
