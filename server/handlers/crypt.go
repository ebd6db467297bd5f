package handlers

import (
	"net/http"

	"github.com/plainrsa/plainrsa/rsa"
	"github.com/plainrsa/plainrsa/session"
)

// MessageRequest represents the request body for the /encrypt and /decrypt endpoints
type MessageRequest struct {
	Message string `json:"message"`
}

// MessageResponse represents the response body for the /encrypt and /decrypt endpoints
type MessageResponse struct {
	Result         string  `json:"result"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
}

// HandleEncryptRequest handles the /encrypt endpoint
func (s *Server) HandleEncryptRequest(w http.ResponseWriter, r *http.Request) {
	s.handleOperation(w, r, session.OpEncrypt)
}

// HandleDecryptRequest handles the /decrypt endpoint
func (s *Server) HandleDecryptRequest(w http.ResponseWriter, r *http.Request) {
	s.handleOperation(w, r, session.OpDecrypt)
}

func (s *Server) handleOperation(w http.ResponseWriter, r *http.Request, op session.Operation) {
	// Only allow POST method
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Parse the request body
	var req MessageRequest
	if err := decodeBody(w, r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	message, err := rsa.ParseDecimal(req.Message)
	if err != nil {
		s.fail(w, r, err, "Invalid message")
		return
	}

	// Run the operation against the current key pair
	res, err := s.Session.Apply(r.Context(), op, message)
	if err != nil {
		s.fail(w, r, err, "Failed to "+op.String())
		return
	}

	// Return the result
	s.writeJSON(w, MessageResponse{
		Result:         res.Value.String(),
		ElapsedSeconds: res.Elapsed.Seconds(),
	})
}
