package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/category"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/ports/inbound"
	apperrors "github.com/eusilvaluiz/sabor-sem-limites-app/pkg/errors"
)

// CategoryHandlers handles category browsing and admin CRUD.
type CategoryHandlers struct {
	categories inbound.CategoryService
	recipes    inbound.RecipeService
	logger     *zap.Logger
}

// NewCategoryHandlers creates the category handler set.
func NewCategoryHandlers(categories inbound.CategoryService, recipes inbound.RecipeService, logger *zap.Logger) *CategoryHandlers {
	return &CategoryHandlers{categories: categories, recipes: recipes, logger: logger}
}

// List handles GET /api/v1/categories. A "q" query parameter
// switches to name search.
func (h *CategoryHandlers) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	var categories []*category.Category
	var err error
	if query != "" {
		categories, err = h.categories.Search(r.Context(), query)
	} else {
		categories, err = h.categories.List(r.Context())
	}
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, toCategoryDTOs(categories))
}

// Get handles GET /api/v1/categories/{id}.
func (h *CategoryHandlers) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	c, err := h.categories.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, toCategoryDTO(c))
}

// ListRecipes handles GET /api/v1/categories/{id}/recipes.
func (h *CategoryHandlers) ListRecipes(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	recipes, err := h.recipes.ListByCategory(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, toRecipeDTOs(recipes))
}

// Create handles POST /api/v1/categories.
func (h *CategoryHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var cmd inbound.CreateCategoryCommand
	if err := decodeAndValidate(r, &cmd); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	c, err := h.categories.Create(r.Context(), cmd)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusCreated, toCategoryDTO(c))
}

// Update handles PUT /api/v1/categories/{id}.
func (h *CategoryHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var cmd inbound.UpdateCategoryCommand
	if err := decodeAndValidate(r, &cmd); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	c, err := h.categories.Update(r.Context(), id, cmd)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, toCategoryDTO(c))
}

// Delete handles DELETE /api/v1/categories/{id}.
func (h *CategoryHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := h.categories.Delete(r.Context(), id); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// pathID parses a UUID path parameter.
func pathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, apperrors.NewBadRequestError("Invalid " + name + " parameter")
	}
	return id, nil
}
