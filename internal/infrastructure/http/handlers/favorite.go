package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/infrastructure/http/middleware"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/ports/inbound"
	apperrors "github.com/eusilvaluiz/sabor-sem-limites-app/pkg/errors"
)

// FavoriteHandlers handles the per-user favorites.
type FavoriteHandlers struct {
	favorites inbound.FavoriteService
	logger    *zap.Logger
}

// NewFavoriteHandlers creates the favorite handler set.
func NewFavoriteHandlers(favorites inbound.FavoriteService, logger *zap.Logger) *FavoriteHandlers {
	return &FavoriteHandlers{favorites: favorites, logger: logger}
}

type toggleResponse struct {
	Favorited bool `json:"favorited"`
}

// List handles GET /api/v1/favorites.
func (h *FavoriteHandlers) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, r, h.logger, apperrors.NewUnauthorizedError(""))
		return
	}

	favorites, err := h.favorites.ListByUser(r.Context(), userID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, toFavoriteRecipeDTOs(favorites))
}

// Toggle handles POST /api/v1/favorites/{recipeId}.
func (h *FavoriteHandlers) Toggle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, r, h.logger, apperrors.NewUnauthorizedError(""))
		return
	}

	recipeID, err := pathID(r, "recipeId")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	favorited, err := h.favorites.Toggle(r.Context(), userID, recipeID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, toggleResponse{Favorited: favorited})
}

// Add handles PUT /api/v1/favorites/{recipeId}.
func (h *FavoriteHandlers) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, r, h.logger, apperrors.NewUnauthorizedError(""))
		return
	}

	recipeID, err := pathID(r, "recipeId")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := h.favorites.Add(r.Context(), userID, recipeID); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, toggleResponse{Favorited: true})
}

// Remove handles DELETE /api/v1/favorites/{recipeId}.
func (h *FavoriteHandlers) Remove(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, r, h.logger, apperrors.NewUnauthorizedError(""))
		return
	}

	recipeID, err := pathID(r, "recipeId")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := h.favorites.Remove(r.Context(), userID, recipeID); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, toggleResponse{Favorited: false})
}

// Status handles GET /api/v1/favorites/{recipeId}.
func (h *FavoriteHandlers) Status(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, r, h.logger, apperrors.NewUnauthorizedError(""))
		return
	}

	recipeID, err := pathID(r, "recipeId")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	favorited, err := h.favorites.IsFavorite(r.Context(), userID, recipeID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, toggleResponse{Favorited: favorited})
}
