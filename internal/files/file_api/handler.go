package file_api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"ms-events/internal/files"
	"ms-events/internal/logger"
)

// maxUploadSize bounds a banner/avatar upload at 5 MiB.
const maxUploadSize = 5 << 20

type Handler struct {
	FileService *files.FileService
	Logger      *logger.Logger
}

func NewHandler(fileService *files.FileService, log *logger.Logger) *Handler {
	return &Handler{FileService: fileService, Logger: log}
}

// Upload handles POST /files: a multipart form with a "file" part and an
// optional "type" field (banner by default).
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Arquivo inválido ou muito grande"})
		return
	}

	part, header, err := r.FormFile("file")
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Arquivo não enviado"})
		return
	}
	defer part.Close()

	file, err := h.FileService.Store(header.Filename, r.FormValue("type"), part)
	if err != nil {
		if errors.Is(err, files.ErrInvalidType) {
			h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		h.Logger.Error("API", fmt.Sprintf("Upload failed: %v", err))
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Erro interno do servidor"})
		return
	}

	h.Logger.Info("FILE", fmt.Sprintf("stored %s as %s (%s)", header.Filename, file.Path, file.Type))
	h.writeJSON(w, http.StatusCreated, file)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.Logger.Error("API", fmt.Sprintf("failed to encode response: %v", err))
	}
}
