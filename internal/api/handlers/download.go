package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/lfmartins-dev/extrato-ai/internal/api/middleware"
	"github.com/lfmartins-dev/extrato-ai/internal/storage"
)

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Download handles GET /api/download/{file}, streaming a generated document.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	// Only bare filenames are served; path components are discarded.
	name := filepath.Base(chi.URLParam(r, "file"))
	if name == "." || name == "/" {
		middleware.WriteError(w, http.StatusBadRequest, "Nome de arquivo inválido")
		return
	}

	f, err := h.outputs.Open(r.Context(), name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			middleware.WriteError(w, http.StatusNotFound, "Arquivo não encontrado")
			return
		}
		h.log.Error().Err(err).Str("file", name).Msg("Failed to open output file")
		middleware.WriteError(w, http.StatusInternalServerError, "Falha ao abrir o arquivo")
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", docxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	if _, err := io.Copy(w, f); err != nil {
		h.log.Error().Err(err).Str("file", name).Msg("Download interrupted")
	}
}
