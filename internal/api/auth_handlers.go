package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type authRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

type authResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// Register is a placeholder account endpoint. No credential store exists;
// the password is discarded.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req authRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "email and password are required")
		return
	}

	log.Warn().Str("email", req.Email).Msg("PLACEHOLDER AUTH: registration accepted without a credential store")
	writeData(w, http.StatusCreated, authResponse{
		Token: "demo-" + uuid.NewString(),
		Email: req.Email,
		Name:  req.Name,
	})
}

// Login is a placeholder session endpoint. Any password is accepted; no hash
// verification happens. Every call logs this loudly.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req authRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "email and password are required")
		return
	}

	log.Warn().Str("email", req.Email).Msg("PLACEHOLDER AUTH: password accepted without verification, do not use outside demos")
	writeData(w, http.StatusOK, authResponse{
		Token: "demo-" + uuid.NewString(),
		Email: req.Email,
	})
}

// Me echoes the demo identity for a bearer token issued by Login.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	header := r.Header.Get("Authorization")
	token := strings.TrimPrefix(header, "Bearer ")
	if token == "" || token == header {
		writeMessage(w, http.StatusUnauthorized, "Missing bearer token")
		return
	}

	writeData(w, http.StatusOK, map[string]string{
		"token": token,
		"role":  "demo",
	})
}
