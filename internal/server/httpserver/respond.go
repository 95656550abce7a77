package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mkravets/linkjournal/internal/common"
	"github.com/mkravets/linkjournal/internal/models"
)

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// respondError maps domain errors onto the `{"error": "..."}` payload.
// Unrecognized errors become an opaque 500; their detail stays server-side.
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, common.ErrValidation):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, common.ErrNotFound):
		status = http.StatusNotFound
		message = "not found"
	case errors.Is(err, common.ErrAlreadyExists):
		status = http.StatusConflict
		message = "already exists"
	case errors.Is(err, common.ErrTokenExpired):
		status = http.StatusUnauthorized
		message = "token expired"
	case errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrUnauthorized):
		status = http.StatusUnauthorized
		message = "unauthorized"
	}

	respondJSON(w, status, models.ErrorResponse{Error: message})
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return common.ErrValidation
	}
	return nil
}
