// Package identity implements the built-in development identity provider.
// It issues HS256 ID tokens and rotating refresh tokens over the same wire
// protocol the hosted provider speaks, so the client needs no separate
// code path for local development.
package identity

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mkravets/linkjournal/internal/common"
	"github.com/mkravets/linkjournal/internal/dbx"
	"github.com/mkravets/linkjournal/internal/server/auth"
	"github.com/mkravets/linkjournal/internal/server/config"
	"github.com/mkravets/linkjournal/internal/server/repositories/repomanager"
)

// Provider error codes, matching the wire codes the client understands.
var (
	ErrEmailExists         = errors.New("EMAIL_EXISTS")
	ErrInvalidEmail        = errors.New("INVALID_EMAIL")
	ErrWeakPassword        = errors.New("WEAK_PASSWORD : Password should be at least 6 characters")
	ErrEmailNotFound       = errors.New("EMAIL_NOT_FOUND")
	ErrInvalidPassword     = errors.New("INVALID_PASSWORD")
	ErrTokenExpired        = errors.New("TOKEN_EXPIRED")
	ErrInvalidRefreshToken = errors.New("INVALID_REFRESH_TOKEN")
	ErrInvalidIDToken      = errors.New("INVALID_ID_TOKEN")
)

const minPasswordLength = 6

// Tokens is the credential set issued on sign-up, sign-in, and refresh.
type Tokens struct {
	UID          string
	Email        string
	IDToken      string
	RefreshToken string
	ExpiresIn    time.Duration
}

type Service struct {
	db                           *sql.DB
	rm                           repomanager.RepositoryManager
	jwtSecret                    []byte
	idTokenValidityDuration      time.Duration
	refreshTokenValidityDuration time.Duration
}

func NewService(db *sql.DB, rm repomanager.RepositoryManager, cfg *config.Config) *Service {
	return &Service{
		db:                           db,
		rm:                           rm,
		jwtSecret:                    []byte(cfg.SecretKey),
		idTokenValidityDuration:      cfg.IDTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
	}
}

// SignUp creates an account and issues its first token pair.
func (s *Service) SignUp(ctx context.Context, email string, password []byte) (*Tokens, error) {

	if !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}

	if len(password) < minPasswordLength {
		return nil, ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword(password, bcrypt.DefaultCost)
	if err != nil {
		return nil, common.ErrInternal
	}

	account, err := s.rm.Accounts(s.db).Create(ctx, email, hash)
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, ErrEmailExists
		}
		return nil, common.ErrInternal
	}

	return s.issueTokens(ctx, s.db, account.ID, account.Email)
}

// SignIn verifies the password and issues a fresh token pair.
func (s *Service) SignIn(ctx context.Context, email string, password []byte) (*Tokens, error) {

	account, err := s.rm.Accounts(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, ErrEmailNotFound
		}
		return nil, common.ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword(account.PasswordHash, password); err != nil {
		return nil, ErrInvalidPassword
	}

	return s.issueTokens(ctx, s.db, account.ID, account.Email)
}

// Refresh exchanges a refresh token for a new token pair. Each refresh
// token is single-use; the consume-and-reissue runs in one transaction so
// a rejected refresh cannot leave the old token dead without a new one.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*Tokens, error) {

	var tokens *Tokens

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		tokenRepo := s.rm.RefreshTokens(tx)

		stored, err := tokenRepo.Find(ctx, refreshToken)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return ErrInvalidRefreshToken
			}
			return common.ErrInternal
		}

		if err := tokenRepo.Delete(ctx, refreshToken); err != nil {
			return common.ErrInternal
		}

		if time.Now().After(stored.ExpiresAt) {
			return ErrTokenExpired
		}

		account, err := s.rm.Accounts(tx).GetByID(ctx, stored.AccountID)
		if err != nil {
			return ErrInvalidRefreshToken
		}

		tokens, err = s.issueTokens(ctx, tx, account.ID, account.Email)
		return err
	})
	if err != nil {
		return nil, err
	}

	return tokens, nil
}

// EmailForIDToken resolves the account email behind a valid ID token.
// The verification-email request carries a token, not an address.
func (s *Service) EmailForIDToken(ctx context.Context, idToken string) (string, error) {

	uid, err := auth.GetUserIDFromToken(idToken, s.jwtSecret)
	if err != nil {
		return "", ErrInvalidIDToken
	}

	account, err := s.rm.Accounts(s.db).GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", ErrInvalidIDToken
		}
		return "", common.ErrInternal
	}

	return account.Email, nil
}

func (s *Service) issueTokens(ctx context.Context, q dbx.DBTX, uid, email string) (*Tokens, error) {

	idToken, err := auth.GenerateToken(uid, s.jwtSecret, s.idTokenValidityDuration)
	if err != nil {
		return nil, common.ErrInternal
	}

	refreshToken, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, common.ErrInternal
	}

	if err := s.rm.RefreshTokens(q).Create(ctx, uid, refreshToken, s.refreshTokenValidityDuration); err != nil {
		return nil, common.ErrInternal
	}

	return &Tokens{
		UID:          uid,
		Email:        email,
		IDToken:      idToken,
		RefreshToken: refreshToken,
		ExpiresIn:    s.idTokenValidityDuration,
	}, nil
}
