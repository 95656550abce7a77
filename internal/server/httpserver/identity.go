package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/mkravets/linkjournal/internal/server/identity"
)

// The dev identity endpoints speak the Identity Toolkit wire format so the
// client uses one code path for both the hosted provider and local dev.

type identityCredentialsRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type identitySignInResponse struct {
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
}

type identityTokenRequest struct {
	GrantType    string `json:"grant_type"`
	RefreshToken string `json:"refresh_token"`
}

type identityTokenResponse struct {
	UserID       string `json:"user_id"`
	IDToken      string `json:"id_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    string `json:"expires_in"`
}

type identityErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// identityError renders failures the way the toolkit does: a 400 whose
// message is the error code, with optional detail after a colon.
func respondIdentityError(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	message := err.Error()

	known := errors.Is(err, identity.ErrEmailExists) ||
		errors.Is(err, identity.ErrInvalidEmail) ||
		errors.Is(err, identity.ErrWeakPassword) ||
		errors.Is(err, identity.ErrEmailNotFound) ||
		errors.Is(err, identity.ErrInvalidPassword) ||
		errors.Is(err, identity.ErrTokenExpired) ||
		errors.Is(err, identity.ErrInvalidRefreshToken) ||
		errors.Is(err, identity.ErrInvalidIDToken)
	if !known {
		status = http.StatusInternalServerError
		message = "INTERNAL_ERROR"
	}

	var body identityErrorResponse
	body.Error.Code = status
	body.Error.Message = message
	respondJSON(w, status, body)
}

func expiresInSeconds(t *identity.Tokens) string {
	return fmt.Sprintf("%d", int(t.ExpiresIn.Seconds()))
}

func (h *Handler) identitySignUp(w http.ResponseWriter, r *http.Request) {
	var req identityCredentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondIdentityError(w, identity.ErrInvalidEmail)
		return
	}

	tokens, err := h.identity.SignUp(r.Context(), req.Email, []byte(req.Password))
	if err != nil {
		respondIdentityError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, identitySignInResponse{
		LocalID:      tokens.UID,
		Email:        tokens.Email,
		IDToken:      tokens.IDToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresIn:    expiresInSeconds(tokens),
	})
}

func (h *Handler) identitySignIn(w http.ResponseWriter, r *http.Request) {
	var req identityCredentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondIdentityError(w, identity.ErrInvalidEmail)
		return
	}

	tokens, err := h.identity.SignIn(r.Context(), req.Email, []byte(req.Password))
	if err != nil {
		respondIdentityError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, identitySignInResponse{
		LocalID:      tokens.UID,
		Email:        tokens.Email,
		IDToken:      tokens.IDToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresIn:    expiresInSeconds(tokens),
	})
}

func (h *Handler) identityToken(w http.ResponseWriter, r *http.Request) {
	var req identityTokenRequest
	if err := decodeJSON(r, &req); err != nil {
		respondIdentityError(w, identity.ErrInvalidRefreshToken)
		return
	}

	tokens, err := h.identity.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		respondIdentityError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, identityTokenResponse{
		UserID:       tokens.UID,
		IDToken:      tokens.IDToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresIn:    expiresInSeconds(tokens),
	})
}

// identitySendOobCode handles out-of-band email requests: password
// resets (keyed by email) and verification emails (keyed by ID token).
// The dev provider has no mailer; the acknowledgement keeps the client
// flows working locally.
func (h *Handler) identitySendOobCode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RequestType string `json:"requestType"`
		Email       string `json:"email"`
		IDToken     string `json:"idToken"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondIdentityError(w, identity.ErrInvalidEmail)
		return
	}

	if req.RequestType == "VERIFY_EMAIL" {
		email, err := h.identity.EmailForIDToken(r.Context(), req.IDToken)
		if err != nil {
			respondIdentityError(w, err)
			return
		}
		h.logger.Info(r.Context(), "verification email requested", "email", email)
		respondJSON(w, http.StatusOK, map[string]string{"email": email})
		return
	}

	h.logger.Info(r.Context(), "password reset requested", "email", req.Email)
	respondJSON(w, http.StatusOK, map[string]string{"email": req.Email})
}
