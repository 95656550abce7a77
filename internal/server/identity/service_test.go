package identity

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkravets/linkjournal/internal/common"
	"github.com/mkravets/linkjournal/internal/dbx"
	"github.com/mkravets/linkjournal/internal/server/config"
	"github.com/mkravets/linkjournal/internal/server/models"
	"github.com/mkravets/linkjournal/internal/server/repositories/accounts"
	"github.com/mkravets/linkjournal/internal/server/repositories/refreshtokens"
	"github.com/mkravets/linkjournal/internal/server/repositories/repomanager"
)

// -------- test fakes --------

type memAccounts struct {
	byEmail map[string]*models.Account
	byID    map[string]*models.Account
}

func newMemAccounts() *memAccounts {
	return &memAccounts{
		byEmail: make(map[string]*models.Account),
		byID:    make(map[string]*models.Account),
	}
}

func (m *memAccounts) Create(ctx context.Context, email string, passwordHash []byte) (*models.Account, error) {
	if _, ok := m.byEmail[email]; ok {
		return nil, common.ErrAlreadyExists
	}
	a := &models.Account{ID: uuid.NewString(), Email: email, PasswordHash: passwordHash, CreatedAt: time.Now()}
	m.byEmail[email] = a
	m.byID[a.ID] = a
	return a, nil
}

func (m *memAccounts) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	a, ok := m.byEmail[email]
	if !ok {
		return nil, common.ErrNotFound
	}
	return a, nil
}

func (m *memAccounts) GetByID(ctx context.Context, id string) (*models.Account, error) {
	a, ok := m.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return a, nil
}

type memRefreshTokens struct {
	tokens map[string]*models.RefreshToken
}

func newMemRefreshTokens() *memRefreshTokens {
	return &memRefreshTokens{tokens: make(map[string]*models.RefreshToken)}
}

func (m *memRefreshTokens) Create(ctx context.Context, accountID, token string, validity time.Duration) error {
	m.tokens[token] = &models.RefreshToken{
		ID:        uuid.NewString(),
		AccountID: accountID,
		Token:     token,
		ExpiresAt: time.Now().Add(validity),
		CreatedAt: time.Now(),
	}
	return nil
}

func (m *memRefreshTokens) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	t, ok := m.tokens[token]
	if !ok {
		return nil, common.ErrNotFound
	}
	return t, nil
}

func (m *memRefreshTokens) Delete(ctx context.Context, token string) error {
	delete(m.tokens, token)
	return nil
}

type fakeRepoManager struct {
	repomanager.RepositoryManager
	acc *memAccounts
	rt  *memRefreshTokens
}

func (m *fakeRepoManager) Accounts(dbx.DBTX) accounts.Repository           { return m.acc }
func (m *fakeRepoManager) RefreshTokens(dbx.DBTX) refreshtokens.Repository { return m.rt }

// -------- helpers --------

func newTestService(t *testing.T) (*Service, sqlmock.Sqlmock, *fakeRepoManager) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{}
	cfg.LoadDefaults()

	rm := &fakeRepoManager{acc: newMemAccounts(), rt: newMemRefreshTokens()}
	return NewService(db, rm, cfg), mock, rm
}

// -------- tests --------

func TestSignUp(t *testing.T) {
	s, _, rm := newTestService(t)
	ctx := context.Background()

	tokens, err := s.SignUp(ctx, "user@example.com", []byte("password123"))
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.UID)
	assert.Equal(t, "user@example.com", tokens.Email)
	assert.NotEmpty(t, tokens.IDToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Equal(t, 1*time.Hour, tokens.ExpiresIn)

	stored, err := rm.rt.Find(ctx, tokens.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, tokens.UID, stored.AccountID)
}

func TestSignUp_Validation(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := s.SignUp(ctx, "not-an-email", []byte("password123"))
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = s.SignUp(ctx, "user@example.com", []byte("short"))
	assert.ErrorIs(t, err, ErrWeakPassword)
}

func TestSignUp_Duplicate(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := s.SignUp(ctx, "user@example.com", []byte("password123"))
	require.NoError(t, err)

	_, err = s.SignUp(ctx, "user@example.com", []byte("password456"))
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestSignIn(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()

	created, err := s.SignUp(ctx, "user@example.com", []byte("password123"))
	require.NoError(t, err)

	tokens, err := s.SignIn(ctx, "user@example.com", []byte("password123"))
	require.NoError(t, err)
	assert.Equal(t, created.UID, tokens.UID)
	assert.NotEmpty(t, tokens.IDToken)

	_, err = s.SignIn(ctx, "user@example.com", []byte("wrongpassword"))
	assert.ErrorIs(t, err, ErrInvalidPassword)

	_, err = s.SignIn(ctx, "other@example.com", []byte("password123"))
	assert.ErrorIs(t, err, ErrEmailNotFound)
}

func TestRefresh_Rotates(t *testing.T) {
	s, mock, _ := newTestService(t)
	ctx := context.Background()

	created, err := s.SignUp(ctx, "user@example.com", []byte("password123"))
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectCommit()

	tokens, err := s.Refresh(ctx, created.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, created.UID, tokens.UID)
	assert.NotEqual(t, created.RefreshToken, tokens.RefreshToken)

	// the consumed token no longer works
	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err = s.Refresh(ctx, created.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRefresh_Expired(t *testing.T) {
	s, mock, rm := newTestService(t)
	ctx := context.Background()

	created, err := s.SignUp(ctx, "user@example.com", []byte("password123"))
	require.NoError(t, err)

	rm.rt.tokens[created.RefreshToken].ExpiresAt = time.Now().Add(-time.Minute)

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err = s.Refresh(ctx, created.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestEmailForIDToken(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()

	created, err := s.SignUp(ctx, "user@example.com", []byte("password123"))
	require.NoError(t, err)

	email, err := s.EmailForIDToken(ctx, created.IDToken)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", email)

	_, err = s.EmailForIDToken(ctx, "garbage")
	assert.ErrorIs(t, err, ErrInvalidIDToken)
}

func TestRefresh_Unknown(t *testing.T) {
	s, mock, _ := newTestService(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := s.Refresh(context.Background(), "no-such-token")
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}
