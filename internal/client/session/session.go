// Package session owns the client's authentication state: it signs users
// in and out through the identity provider, persists tokens locally so a
// restart does not require a new login, and keeps the ID token fresh with
// a background refresher.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mkravets/linkjournal/internal/client/credstore"
	"github.com/mkravets/linkjournal/internal/client/identity"
	"github.com/mkravets/linkjournal/internal/common"
	"github.com/mkravets/linkjournal/internal/logging"
)

// DefaultRefreshInterval is how often the background refresher renews the
// ID token. Tokens live for an hour; refreshing at 50 minutes keeps a
// comfortable margin.
const DefaultRefreshInterval = 50 * time.Minute

// Account is the locally persisted identity of the signed-in user.
type Account struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
}

// Listener receives auth-state transitions. account is nil after sign-out.
type Listener func(account *Account)

// Session is the client's auth state machine. It implements
// transport.TokenSource: Token returns the current ID token, or "" when
// signed out.
type Session struct {
	provider identity.Provider
	creds    credstore.Repository
	logger   logging.Logger
	interval time.Duration

	mu        sync.RWMutex
	account   *Account
	idToken   string
	refresh   string
	listeners map[int]Listener
	nextSub   int

	// refresher state, guarded by mu. stop/done belong to the currently
	// running goroutine; a new pair is made on every restart.
	running bool
	stop    chan struct{}
	done    chan struct{}
}

// New constructs a Session. The background refresher starts lazily on the
// first successful sign-in or restore.
func New(provider identity.Provider, creds credstore.Repository, logger logging.Logger, interval time.Duration) *Session {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &Session{
		provider:  provider,
		creds:     creds,
		logger:    logger,
		interval:  interval,
		listeners: make(map[int]Listener),
	}
}

// Token returns the current ID token, or "" when no user is signed in.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.idToken
}

// Account returns the signed-in account, or nil.
func (s *Session) Account() *Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.account == nil {
		return nil
	}
	a := *s.account
	return &a
}

// Subscribe registers a listener for auth-state changes. It is invoked
// immediately with the current state, then on every transition. The
// returned function removes the subscription.
func (s *Session) Subscribe(fn Listener) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.listeners[id] = fn
	current := s.account
	s.mu.Unlock()

	fn(copyAccount(current))

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// SignUp creates an account with the identity provider and signs in.
func (s *Session) SignUp(ctx context.Context, email string, password []byte) (*Account, error) {
	creds, err := s.provider.SignUp(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.adopt(ctx, creds)
}

// SignIn authenticates with the identity provider and persists the session.
func (s *Session) SignIn(ctx context.Context, email string, password []byte) (*Account, error) {
	creds, err := s.provider.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.adopt(ctx, creds)
}

// SendPasswordReset proxies to the identity provider; no session state
// changes.
func (s *Session) SendPasswordReset(ctx context.Context, email string) error {
	return s.provider.SendPasswordReset(ctx, email)
}

// SendEmailVerification asks the provider to email a verification link
// to the signed-in user.
func (s *Session) SendEmailVerification(ctx context.Context) error {
	token := s.Token()
	if token == "" {
		return fmt.Errorf("no active session: %w", common.ErrUnauthorized)
	}
	return s.provider.SendEmailVerification(ctx, token)
}

// Restore loads a persisted session from the credential store and
// validates it by refreshing the ID token. Returns (nil, nil) when no
// session is stored. A refresh token the provider no longer accepts
// clears the stored session and also returns (nil, nil).
func (s *Session) Restore(ctx context.Context) (*Account, error) {
	refresh, err := s.creds.Get(ctx, credstore.KeyRefreshToken)
	if err != nil {
		return nil, fmt.Errorf("loading stored session: %w", err)
	}
	if refresh == nil {
		return nil, nil
	}

	creds, err := s.provider.Refresh(ctx, string(refresh))
	if err != nil {
		if errors.Is(err, common.ErrRefreshTokenExpired) {
			s.logger.Info(ctx, "stored session expired, clearing")
			if cerr := s.creds.Clear(ctx); cerr != nil {
				return nil, fmt.Errorf("clearing expired session: %w", cerr)
			}
			return nil, nil
		}
		return nil, err
	}

	// The token endpoint does not echo the email; recover it from the
	// persisted account.
	if raw, err := s.creds.Get(ctx, credstore.KeyUser); err == nil && raw != nil {
		var saved Account
		if json.Unmarshal(raw, &saved) == nil {
			creds.Email = saved.Email
			if creds.UID == "" {
				creds.UID = saved.UID
			}
		}
	}

	return s.adopt(ctx, creds)
}

// SignOut drops the in-memory session, wipes persisted credentials,
// stops the background refresher, and notifies listeners. The next
// sign-in starts a fresh refresher.
func (s *Session) SignOut(ctx context.Context) error {
	if err := s.dropSession(ctx); err != nil {
		return err
	}
	s.stopRefresher()
	return nil
}

// Close stops the background refresher. Safe to call at any time, any
// number of times.
func (s *Session) Close() {
	s.stopRefresher()
}

// dropSession clears the in-memory and persisted session state and
// notifies listeners. It does not touch the refresher; the refresher
// goroutine itself relies on that when it ends the session.
func (s *Session) dropSession(ctx context.Context) error {
	s.mu.Lock()
	s.account = nil
	s.idToken = ""
	s.refresh = ""
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	if err := s.creds.Clear(ctx); err != nil {
		return fmt.Errorf("clearing credentials: %w", err)
	}
	for _, fn := range listeners {
		fn(nil)
	}
	return nil
}

// adopt installs fresh credentials, persists them, notifies listeners,
// and makes sure the refresher is running.
func (s *Session) adopt(ctx context.Context, creds *identity.Credentials) (*Account, error) {
	account := &Account{UID: creds.UID, Email: creds.Email}

	s.mu.Lock()
	if s.account != nil && creds.Email == "" {
		account.Email = s.account.Email
	}
	s.account = account
	s.idToken = creds.IDToken
	s.refresh = creds.RefreshToken
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	if err := s.persist(ctx, account, creds); err != nil {
		return nil, err
	}

	s.startRefresher()

	a := *account
	for _, fn := range listeners {
		fn(&a)
	}
	return &a, nil
}

func (s *Session) persist(ctx context.Context, account *Account, creds *identity.Credentials) error {
	raw, err := json.Marshal(account)
	if err != nil {
		return fmt.Errorf("encoding account: %w", err)
	}
	if err := s.creds.Set(ctx, credstore.KeyIDToken, []byte(creds.IDToken)); err != nil {
		return fmt.Errorf("saving id token: %w", err)
	}
	if err := s.creds.Set(ctx, credstore.KeyRefreshToken, []byte(creds.RefreshToken)); err != nil {
		return fmt.Errorf("saving refresh token: %w", err)
	}
	if err := s.creds.Set(ctx, credstore.KeyUser, raw); err != nil {
		return fmt.Errorf("saving account: %w", err)
	}
	return nil
}

func (s *Session) snapshotListeners() []Listener {
	out := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		out = append(out, fn)
	}
	return out
}

func (s *Session) startRefresher() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	go s.runRefresher(s.stop, s.done)
}

func (s *Session) stopRefresher() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	stop, done := s.stop, s.done
	s.mu.Unlock()

	close(stop)
	<-done
}

func (s *Session) runRefresher(stop, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if !s.refreshOnce(context.Background()) {
				s.mu.Lock()
				if s.stop == stop {
					s.running = false
				}
				s.mu.Unlock()
				return
			}
		}
	}
}

// refreshOnce renews the ID token if a session is active. It reports
// whether the refresher should keep running; a rejected refresh token
// ends both the session and the refresher.
func (s *Session) refreshOnce(ctx context.Context) bool {
	s.mu.RLock()
	refresh := s.refresh
	s.mu.RUnlock()
	if refresh == "" {
		return true
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	creds, err := s.provider.Refresh(ctx, refresh)
	if err != nil {
		if errors.Is(err, common.ErrRefreshTokenExpired) {
			s.logger.Warn(ctx, "refresh token no longer valid, signing out")
			if serr := s.dropSession(ctx); serr != nil {
				s.logger.Error(ctx, "sign-out after failed refresh", "error", serr)
			}
			return false
		}
		// Transient failure; the next tick retries.
		s.logger.Warn(ctx, "token refresh failed", "error", err)
		return true
	}

	if _, err := s.adopt(ctx, creds); err != nil {
		s.logger.Error(ctx, "persisting refreshed token", "error", err)
	}
	return true
}

func copyAccount(a *Account) *Account {
	if a == nil {
		return nil
	}
	c := *a
	return &c
}
