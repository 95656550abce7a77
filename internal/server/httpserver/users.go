package httpserver

import (
	"net/http"

	"github.com/mkravets/linkjournal/internal/models"
)

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.Profile(r.Context(), UserID(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// signup records the identity-provider account as a backend profile. The
// uid comes from the verified token, not the request body, so a client
// cannot register a profile for someone else.
func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	req.FirebaseUID = UserID(r.Context())

	user, err := h.users.Signup(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, user)
}

func (h *Handler) updateProfilePicture(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateAvatarRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	user, err := h.users.UpdateAvatar(r.Context(), UserID(r.Context()), req.ProfilePicture)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, models.AvatarResponse{
		Message:        "Profile picture updated",
		ProfilePicture: user.ProfilePicture,
	})
}
