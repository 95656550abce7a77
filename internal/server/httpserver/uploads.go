package httpserver

import (
	"net/http"

	"github.com/mkravets/linkjournal/internal/models"
)

type presignRequest struct {
	Filename string `json:"filename"`
}

func (h *Handler) presignUpload(w http.ResponseWriter, r *http.Request) {
	var req presignRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	key, uploadURL, publicURL, err := h.uploads.PresignUpload(r.Context(), req.Filename)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, models.PresignResponse{
		Key:       key,
		UploadURL: uploadURL,
		PublicURL: publicURL,
	})
}
