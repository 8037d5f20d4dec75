package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/infrastructure/http/middleware"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/ports/inbound"
	apperrors "github.com/eusilvaluiz/sabor-sem-limites-app/pkg/errors"
)

// RecipeHandlers handles recipe browsing, search, admin CRUD and the
// completion-backed recipe tools.
type RecipeHandlers struct {
	recipes inbound.RecipeService
	tools   inbound.RecipeToolsService
	logger  *zap.Logger
}

// NewRecipeHandlers creates the recipe handler set.
func NewRecipeHandlers(recipes inbound.RecipeService, tools inbound.RecipeToolsService, logger *zap.Logger) *RecipeHandlers {
	return &RecipeHandlers{recipes: recipes, tools: tools, logger: logger}
}

// List handles GET /api/v1/recipes. A q parameter switches to search.
func (h *RecipeHandlers) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	var err error
	var result interface{}
	if query != "" {
		recipes, searchErr := h.recipes.Search(r.Context(), query)
		result, err = toRecipeDTOs(recipes), searchErr
	} else {
		recipes, listErr := h.recipes.List(r.Context())
		result, err = toRecipeDTOs(recipes), listErr
	}
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, result)
}

// Get handles GET /api/v1/recipes/{id}.
func (h *RecipeHandlers) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	recipe, err := h.recipes.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, toRecipeDTO(recipe))
}

// Create handles POST /api/v1/recipes.
func (h *RecipeHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var cmd inbound.CreateRecipeCommand
	if err := decodeAndValidate(r, &cmd); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, r, h.logger, apperrors.NewUnauthorizedError(""))
		return
	}
	cmd.CreatedBy = userID

	recipe, err := h.recipes.Create(r.Context(), cmd)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusCreated, toRecipeDTO(recipe))
}

// Update handles PUT /api/v1/recipes/{id}.
func (h *RecipeHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var cmd inbound.UpdateRecipeCommand
	if err := decodeAndValidate(r, &cmd); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	recipe, err := h.recipes.Update(r.Context(), id, cmd)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, toRecipeDTO(recipe))
}

// Delete handles DELETE /api/v1/recipes/{id}.
func (h *RecipeHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := h.recipes.Delete(r.Context(), id); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type toolResponse struct {
	Result string `json:"result"`
}

type adjustServingsRequest struct {
	Servings int `json:"servings" validate:"required,min=1"`
}

// AdjustServings handles POST /api/v1/recipes/{id}/tools/servings.
func (h *RecipeHandlers) AdjustServings(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var req adjustServingsRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	result, err := h.tools.AdjustServings(r.Context(), id, req.Servings)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, toolResponse{Result: result})
}

type substituteRequest struct {
	Ingredients []string `json:"ingredients" validate:"required,min=1"`
	Reason      string   `json:"reason"`
}

// SubstituteIngredients handles POST /api/v1/recipes/{id}/tools/substitute.
func (h *RecipeHandlers) SubstituteIngredients(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var req substituteRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	result, err := h.tools.SubstituteIngredients(r.Context(), id, req.Ingredients, req.Reason)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, toolResponse{Result: result})
}

// CalculateNutrition handles POST /api/v1/recipes/{id}/tools/nutrition.
func (h *RecipeHandlers) CalculateNutrition(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	result, err := h.tools.CalculateNutrition(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, toolResponse{Result: result})
}

type convertUnitsRequest struct {
	FromUnit string `json:"fromUnit" validate:"required"`
	ToUnit   string `json:"toUnit" validate:"required"`
	Amount   string `json:"amount" validate:"required"`
}

// ConvertUnits handles POST /api/v1/recipes/{id}/tools/convert.
func (h *RecipeHandlers) ConvertUnits(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var req convertUnitsRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	result, err := h.tools.ConvertUnits(r.Context(), id, req.FromUnit, req.ToUnit, req.Amount)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, toolResponse{Result: result})
}
