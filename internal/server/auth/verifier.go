package auth

import (
	"context"

	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	"github.com/mkravets/linkjournal/internal/common"
)

// Verifier checks an ID token and returns the identity-provider uid it
// was issued for. Implementations must return common.ErrTokenExpired or
// common.ErrInvalidToken on rejection.
type Verifier interface {
	Verify(ctx context.Context, idToken string) (uid string, err error)
}

// HS256Verifier verifies tokens issued by the built-in dev identity
// provider.
type HS256Verifier struct {
	secret []byte
}

func NewHS256Verifier(secret []byte) *HS256Verifier {
	return &HS256Verifier{secret: secret}
}

func (v *HS256Verifier) Verify(_ context.Context, idToken string) (string, error) {
	return GetUserIDFromToken(idToken, v.secret)
}

// FirebaseVerifier verifies tokens against Firebase Auth. Used in
// production where the client authenticates with the hosted provider.
type FirebaseVerifier struct {
	app *firebase.App
}

// NewFirebaseVerifier initializes the Firebase app. credentialsFile may
// be empty, in which case application default credentials apply.
func NewFirebaseVerifier(ctx context.Context, credentialsFile string) (*FirebaseVerifier, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, err
	}
	return &FirebaseVerifier{app: app}, nil
}

func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (string, error) {
	client, err := v.app.Auth(ctx)
	if err != nil {
		return "", err
	}

	token, err := client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", common.ErrInvalidToken
	}
	return token.UID, nil
}
