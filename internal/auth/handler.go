package auth

import (
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"net/http"

	"confreg/internal/logger"
)

// LoginHandler exchanges the shared admin password for a signed session token.
type LoginHandler struct {
	Password string
	Issuer   *TokenIssuer
	Logger   *logger.Logger
}

func (h *LoginHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if h.Password == "" ||
		subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.Password)) != 1 {
		h.Logger.Warn("AUTH", "Failed admin login attempt")
		http.Error(w, "invalid password", http.StatusUnauthorized)
		return
	}

	token, err := h.Issuer.Issue()
	if err != nil {
		h.Logger.Error("AUTH", fmt.Sprintf("Failed to issue admin token: %v", err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.Logger.Info("AUTH", "Admin login successful")
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"token": token})
}
