// Package identity talks to the identity provider that issues ID and
// refresh tokens for the client. The provider is a separate service from
// the application API: it only authenticates users, the API server
// verifies the tokens it issues.
package identity

import (
	"context"
	"time"
)

// Credentials is the token material returned by the identity provider
// after a successful sign-up, sign-in, or refresh.
type Credentials struct {
	UID          string
	Email        string
	IDToken      string
	RefreshToken string
	ExpiresIn    time.Duration
}

// Provider defines the identity operations the client needs.
//
// Contract:
//   - SignUp: create a new account and return fresh credentials.
//   - SignIn: authenticate an existing account.
//   - Refresh: exchange a refresh token for a new ID token.
//   - SendPasswordReset: have the provider email a reset link.
//   - SendEmailVerification: have the provider email a verification
//     link to the user the ID token belongs to.
//
// All methods must honor context cancellation/timeouts. Failures caused
// by the provider rejecting the credentials carry an AUTHENTICATION
// classification; transport failures carry NETWORK.
type Provider interface {
	SignUp(ctx context.Context, email string, password []byte) (*Credentials, error)
	SignIn(ctx context.Context, email string, password []byte) (*Credentials, error)
	Refresh(ctx context.Context, refreshToken string) (*Credentials, error)
	SendPasswordReset(ctx context.Context, email string) error
	SendEmailVerification(ctx context.Context, idToken string) error
}
