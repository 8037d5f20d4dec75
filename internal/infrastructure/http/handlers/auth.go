package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/infrastructure/http/middleware"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/ports/inbound"
	apperrors "github.com/eusilvaluiz/sabor-sem-limites-app/pkg/errors"
)

// AuthHandlers handles signup, login and profile lookup.
type AuthHandlers struct {
	users  inbound.UserService
	logger *zap.Logger
}

// NewAuthHandlers creates the auth handler set.
func NewAuthHandlers(users inbound.UserService, logger *zap.Logger) *AuthHandlers {
	return &AuthHandlers{users: users, logger: logger}
}

type authResponse struct {
	User  userDTO `json:"user"`
	Token string  `json:"token"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register handles POST /api/v1/auth/register.
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var cmd inbound.RegisterCommand
	if err := decodeAndValidate(r, &cmd); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if _, err := h.users.Register(r.Context(), cmd); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	// Sign in immediately so the SPA lands on the app after signup.
	result, err := h.users.Authenticate(r.Context(), cmd.Email, cmd.Password)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusCreated, authResponse{
		User:  toUserDTO(result.User),
		Token: result.Token,
	})
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	result, err := h.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, authResponse{
		User:  toUserDTO(result.User),
		Token: result.Token,
	})
}

// Me handles GET /api/v1/auth/me.
func (h *AuthHandlers) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, r, h.logger, apperrors.NewUnauthorizedError(""))
		return
	}

	u, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, toUserDTO(u))
}
