package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mkravets/linkjournal/internal/apperr"
	"github.com/mkravets/linkjournal/internal/common"
	"github.com/mkravets/linkjournal/internal/logging"
)

// RESTProvider implements Provider against an Identity Toolkit style
// HTTP API (the wire format Firebase Auth and its emulators speak).
type RESTProvider struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  logging.Logger
}

// NewRESTProvider constructs a provider bound to the given endpoint.
// baseURL is the provider root, e.g. "https://identitytoolkit.googleapis.com"
// or a local emulator address.
func NewRESTProvider(baseURL, apiKey string, logger logging.Logger) *RESTProvider {
	return &RESTProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 30 * time.Second},
		logger:  logger,
	}
}

type signInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type signInResponse struct {
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
}

type refreshRequest struct {
	GrantType    string `json:"grant_type"`
	RefreshToken string `json:"refresh_token"`
}

type refreshResponse struct {
	UserID       string `json:"user_id"`
	IDToken      string `json:"id_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    string `json:"expires_in"`
}

type providerError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// toolkitAuthCodes maps Identity Toolkit error identifiers to the
// "auth/..." codes the error classifier curates messages for.
var toolkitAuthCodes = map[string]string{
	"EMAIL_EXISTS":                "auth/email-already-in-use",
	"INVALID_EMAIL":               "auth/invalid-email",
	"OPERATION_NOT_ALLOWED":       "auth/operation-not-allowed",
	"WEAK_PASSWORD":               "auth/weak-password",
	"USER_DISABLED":               "auth/user-disabled",
	"EMAIL_NOT_FOUND":             "auth/user-not-found",
	"INVALID_PASSWORD":            "auth/wrong-password",
	"INVALID_LOGIN_CREDENTIALS":   "auth/invalid-credential",
	"INVALID_CREDENTIAL":          "auth/invalid-credential",
	"TOO_MANY_ATTEMPTS_TRY_LATER": "auth/too-many-requests",
}

func (p *RESTProvider) SignUp(ctx context.Context, email string, password []byte) (*Credentials, error) {
	var out signInResponse
	req := signInRequest{Email: email, Password: string(password), ReturnSecureToken: true}
	if err := p.post(ctx, "/v1/accounts:signUp", req, &out); err != nil {
		return nil, err
	}
	return credentialsFromSignIn(&out)
}

func (p *RESTProvider) SignIn(ctx context.Context, email string, password []byte) (*Credentials, error) {
	var out signInResponse
	req := signInRequest{Email: email, Password: string(password), ReturnSecureToken: true}
	if err := p.post(ctx, "/v1/accounts:signInWithPassword", req, &out); err != nil {
		return nil, err
	}
	return credentialsFromSignIn(&out)
}

// Refresh exchanges a refresh token for a fresh ID token. When the
// provider reports the refresh token itself is no longer usable, the
// returned error wraps common.ErrRefreshTokenExpired so callers can
// drop the session instead of retrying.
func (p *RESTProvider) Refresh(ctx context.Context, refreshToken string) (*Credentials, error) {
	var out refreshResponse
	req := refreshRequest{GrantType: "refresh_token", RefreshToken: refreshToken}
	if err := p.post(ctx, "/v1/token", req, &out); err != nil {
		if code := apperr.CodeOf(err); code == "TOKEN_EXPIRED" || code == "INVALID_REFRESH_TOKEN" || code == "USER_NOT_FOUND" {
			return nil, fmt.Errorf("refresh rejected (%s): %w", code, common.ErrRefreshTokenExpired)
		}
		return nil, err
	}
	expires, err := parseExpiresIn(out.ExpiresIn)
	if err != nil {
		return nil, err
	}
	return &Credentials{
		UID:          out.UserID,
		IDToken:      out.IDToken,
		RefreshToken: out.RefreshToken,
		ExpiresIn:    expires,
	}, nil
}

// SendPasswordReset asks the provider to email a password reset link.
func (p *RESTProvider) SendPasswordReset(ctx context.Context, email string) error {
	req := map[string]string{"requestType": "PASSWORD_RESET", "email": email}
	var out struct {
		Email string `json:"email"`
	}
	return p.post(ctx, "/v1/accounts:sendOobCode", req, &out)
}

// SendEmailVerification asks the provider to email a verification link
// to the account the ID token identifies.
func (p *RESTProvider) SendEmailVerification(ctx context.Context, idToken string) error {
	req := map[string]string{"requestType": "VERIFY_EMAIL", "idToken": idToken}
	var out struct {
		Email string `json:"email"`
	}
	return p.post(ctx, "/v1/accounts:sendOobCode", req, &out)
}

// post is the single request path: it encodes the body, appends the API
// key, and classifies failures before they reach the caller.
func (p *RESTProvider) post(ctx context.Context, path string, body, out any) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	url := p.baseURL + path
	if p.apiKey != "" {
		url += "?key=" + p.apiKey
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.http.Do(req)
	if err != nil {
		return apperr.Network(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var perr providerError
		_ = json.NewDecoder(resp.Body).Decode(&perr)
		code := normalizeCode(perr.Error.Message)
		p.logger.Debug(ctx, "identity request failed", "path", path, "status", resp.StatusCode, "code", code)
		e := apperr.FromAuthCode(authCode(code), nil)
		e.StatusCode = resp.StatusCode
		e.Code = code
		return e
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// normalizeCode strips the detail the provider appends to some codes,
// e.g. "WEAK_PASSWORD : Password should be at least 6 characters".
func normalizeCode(message string) string {
	code, _, _ := strings.Cut(message, ":")
	return strings.TrimSpace(code)
}

func authCode(toolkitCode string) string {
	if c, ok := toolkitAuthCodes[toolkitCode]; ok {
		return c
	}
	return toolkitCode
}

func credentialsFromSignIn(r *signInResponse) (*Credentials, error) {
	expires, err := parseExpiresIn(r.ExpiresIn)
	if err != nil {
		return nil, err
	}
	return &Credentials{
		UID:          r.LocalID,
		Email:        r.Email,
		IDToken:      r.IDToken,
		RefreshToken: r.RefreshToken,
		ExpiresIn:    expires,
	}, nil
}

func parseExpiresIn(s string) (time.Duration, error) {
	if s == "" {
		return time.Hour, nil
	}
	secs, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("parsing expiresIn %q: %w", s, err)
	}
	return time.Duration(secs) * time.Second, nil
}
