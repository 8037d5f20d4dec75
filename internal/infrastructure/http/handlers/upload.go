package handlers

import (
	"fmt"
	"io"
	"net/http"
	"path"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/ports/outbound"
	apperrors "github.com/eusilvaluiz/sabor-sem-limites-app/pkg/errors"
)

// maxUploadSize caps image uploads at 5 MB.
const maxUploadSize = 5 << 20

var allowedImageTypes = map[string]bool{
	"image/jpeg":    true,
	"image/png":     true,
	"image/webp":    true,
	"image/svg+xml": true,
}

// UploadHandlers handles image uploads for recipes, categories and
// avatars.
type UploadHandlers struct {
	storage outbound.StorageService
	logger  *zap.Logger
}

// NewUploadHandlers creates the upload handler set.
func NewUploadHandlers(storage outbound.StorageService, logger *zap.Logger) *UploadHandlers {
	return &UploadHandlers{storage: storage, logger: logger}
}

type uploadResponse struct {
	URL string `json:"url"`
}

// Upload handles POST /api/v1/uploads. The multipart form carries the
// file under "file" and an optional "folder" field scoping the key.
func (h *UploadHandlers) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, r, h.logger, apperrors.NewBadRequestError("File too large or malformed form"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, h.logger, apperrors.NewBadRequestError("Missing file field"))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		writeError(w, r, h.logger, apperrors.NewValidationError("Unsupported image type "+contentType))
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, r, h.logger, apperrors.NewBadRequestError("Could not read uploaded file"))
		return
	}

	folder := sanitizeFolder(r.FormValue("folder"))
	key := fmt.Sprintf("%s/%s%s", folder, uuid.NewString(), path.Ext(header.Filename))

	url, err := h.storage.Upload(r.Context(), key, data, contentType)
	if err != nil {
		writeError(w, r, h.logger, apperrors.NewExternalServiceError("object storage", err))
		return
	}

	writeJSON(w, h.logger, http.StatusCreated, uploadResponse{URL: url})
}

func sanitizeFolder(folder string) string {
	switch folder {
	case "recipes", "categories", "avatars", "assistant":
		return folder
	default:
		return "uploads"
	}
}
