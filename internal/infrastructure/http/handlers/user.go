package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/user"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/ports/inbound"
)

// UserHandlers handles the admin user CRUD.
type UserHandlers struct {
	users  inbound.UserService
	logger *zap.Logger
}

// NewUserHandlers creates the user handler set.
func NewUserHandlers(users inbound.UserService, logger *zap.Logger) *UserHandlers {
	return &UserHandlers{users: users, logger: logger}
}

// List handles GET /api/v1/users. A "q" query parameter switches to
// name/email search.
func (h *UserHandlers) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	var users []*user.User
	var err error
	if query != "" {
		users, err = h.users.Search(r.Context(), query)
	} else {
		users, err = h.users.List(r.Context())
	}
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, toUserDTOs(users))
}

// Get handles GET /api/v1/users/{id}.
func (h *UserHandlers) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	u, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, toUserDTO(u))
}

// Create handles POST /api/v1/users.
func (h *UserHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var cmd inbound.CreateUserCommand
	if err := decodeAndValidate(r, &cmd); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	u, err := h.users.Create(r.Context(), cmd)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusCreated, toUserDTO(u))
}

// Update handles PUT /api/v1/users/{id}.
func (h *UserHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var cmd inbound.UpdateUserCommand
	if err := decodeAndValidate(r, &cmd); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	u, err := h.users.Update(r.Context(), id, cmd)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, toUserDTO(u))
}

// Delete handles DELETE /api/v1/users/{id}.
func (h *UserHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := h.users.Delete(r.Context(), id); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
