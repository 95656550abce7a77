package identity

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mkravets/linkjournal/internal/apperr"
	"github.com/mkravets/linkjournal/internal/common"
	"github.com/mkravets/linkjournal/internal/logging"
)

func newProvider(t *testing.T, handler http.Handler) *RESTProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewRESTProvider(srv.URL, "test-key", &logging.NopLogger{})
}

func TestSignIn(t *testing.T) {
	p := newProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/accounts:signInWithPassword", r.URL.Path)
		require.Equal(t, "test-key", r.URL.Query().Get("key"))

		var req signInRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "user@example.com", req.Email)
		require.True(t, req.ReturnSecureToken)

		json.NewEncoder(w).Encode(signInResponse{
			LocalID:      "uid-1",
			Email:        req.Email,
			IDToken:      "id-token",
			RefreshToken: "refresh-token",
			ExpiresIn:    "3600",
		})
	}))

	creds, err := p.SignIn(context.Background(), "user@example.com", []byte("secret"))
	require.NoError(t, err)
	require.Equal(t, "uid-1", creds.UID)
	require.Equal(t, "id-token", creds.IDToken)
	require.Equal(t, "refresh-token", creds.RefreshToken)
	require.Equal(t, time.Hour, creds.ExpiresIn)
}

func TestSignUp_EmailExists(t *testing.T) {
	p := newProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/accounts:signUp", r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":400,"message":"EMAIL_EXISTS"}}`))
	}))

	_, err := p.SignUp(context.Background(), "user@example.com", []byte("secret"))
	require.Error(t, err)

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, apperr.KindAuthentication, appErr.Kind)
	require.Equal(t, "This email is already registered. Please login instead.", appErr.UserMessage)
	require.Equal(t, "EMAIL_EXISTS", appErr.Code)
}

func TestSignIn_CodeWithDetail(t *testing.T) {
	p := newProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":400,"message":"WEAK_PASSWORD : Password should be at least 6 characters"}}`))
	}))

	_, err := p.SignUp(context.Background(), "user@example.com", []byte("x"))
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, "WEAK_PASSWORD", appErr.Code)
	require.Equal(t, "Password is too weak. Please use at least 6 characters.", appErr.UserMessage)
}

func TestRefresh(t *testing.T) {
	p := newProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/token", r.URL.Path)

		var req refreshRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "refresh_token", req.GrantType)
		require.Equal(t, "old-refresh", req.RefreshToken)

		json.NewEncoder(w).Encode(refreshResponse{
			UserID:       "uid-1",
			IDToken:      "new-id-token",
			RefreshToken: "new-refresh",
			ExpiresIn:    "3600",
		})
	}))

	creds, err := p.Refresh(context.Background(), "old-refresh")
	require.NoError(t, err)
	require.Equal(t, "new-id-token", creds.IDToken)
	require.Equal(t, "new-refresh", creds.RefreshToken)
}

func TestRefresh_TokenExpired(t *testing.T) {
	p := newProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":400,"message":"TOKEN_EXPIRED"}}`))
	}))

	_, err := p.Refresh(context.Background(), "stale")
	require.ErrorIs(t, err, common.ErrRefreshTokenExpired)
}

func TestSendPasswordReset(t *testing.T) {
	p := newProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/accounts:sendOobCode", r.URL.Path)
		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "PASSWORD_RESET", req["requestType"])
		json.NewEncoder(w).Encode(map[string]string{"email": req["email"]})
	}))

	require.NoError(t, p.SendPasswordReset(context.Background(), "user@example.com"))
}

func TestSendEmailVerification(t *testing.T) {
	p := newProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/accounts:sendOobCode", r.URL.Path)
		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "VERIFY_EMAIL", req["requestType"])
		require.Equal(t, "id-token-1", req["idToken"])
		json.NewEncoder(w).Encode(map[string]string{"email": "user@example.com"})
	}))

	require.NoError(t, p.SendEmailVerification(context.Background(), "id-token-1"))
}

func TestNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	p := NewRESTProvider(url, "", &logging.NopLogger{})
	_, err := p.SignIn(context.Background(), "user@example.com", []byte("secret"))
	require.True(t, apperr.IsKind(err, apperr.KindNetwork))

	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
}
