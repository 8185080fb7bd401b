package handlers

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/roadhaul/fleet-sim/internal/auth"
	"github.com/roadhaul/fleet-sim/internal/models"
)

// AuthHandler issues tokens against the operator credentials configured in
// the environment. The engine has no user database of its own; the game's
// staff subsystem owns identities.
type AuthHandler struct {
	authService  *auth.Service
	opsUser      string
	opsPassHash  string
}

// NewAuthHandler creates an authentication handler.
func NewAuthHandler(authService *auth.Service, opsUser, opsPassHash string) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		opsUser:     opsUser,
		opsPassHash: opsPassHash,
	}
}

// Token handles POST /api/auth/token.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	var req models.TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.Username == "" || req.Password == "" {
		http.Error(w, "Username and password are required", http.StatusBadRequest)
		return
	}

	if h.opsPassHash == "" || req.Username != h.opsUser || !auth.CheckPassword(req.Password, h.opsPassHash) {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := h.authService.GenerateToken(req.Username, models.RoleDispatcher)
	if err != nil {
		log.WithError(err).Error("Failed to generate token")
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, models.TokenResponse{Token: token, Role: models.RoleDispatcher})
}
