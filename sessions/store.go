package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	apperrors "github.com/jrsteele09/go-tenant-client/internal/errors"
	"github.com/jrsteele09/go-tenant-client/internal/pubsub"
	"github.com/jrsteele09/go-tenant-client/storage"
	"github.com/jrsteele09/go-tenant-client/tenants"
)

// Store is the persisted session store. It is the only writer of the
// access_token, refresh_token, user and tenants durable keys, and the only
// component that seeds or clears the tenant context.
type Store struct {
	mu      sync.RWMutex
	session Session

	backend   Backend
	storage   storage.Store
	tenantCtx *tenants.Context
	log       zerolog.Logger
	broadcast *pubsub.Broadcaster[Session]
}

// StoreOption defines a function type to modify the Store instance.
type StoreOption func(*Store)

// WithLogger sets the diagnostic logger.
func WithLogger(log zerolog.Logger) StoreOption {
	return func(s *Store) {
		s.log = log
	}
}

// NewStore initializes a session store with its required dependencies.
func NewStore(backend Backend, store storage.Store, tenantCtx *tenants.Context, options ...StoreOption) (*Store, error) {
	if backend == nil {
		return nil, errors.New("[NewStore] backend is required")
	}
	if store == nil {
		return nil, errors.New("[NewStore] storage is required")
	}
	if tenantCtx == nil {
		return nil, errors.New("[NewStore] tenant context is required")
	}

	s := &Store{
		backend:   backend,
		storage:   store,
		tenantCtx: tenantCtx,
		log:       zerolog.Nop(),
		broadcast: pubsub.New[Session](),
	}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

// Login authenticates against the backend. On success the tokens and user
// are durably stored, the authenticated flag flips true, subscribers are
// notified and the tenant context is seeded from the response's membership
// list. A credential rejection surfaces as errors.ErrInvalidCredentials.
func (s *Store) Login(ctx context.Context, credentials Credentials) (Session, error) {
	result, err := s.backend.Login(ctx, credentials)
	if err != nil {
		return Session{}, apperrors.Wrapf(err, "[Login] backend rejected login")
	}
	return s.establish(result), nil
}

// Register creates an account and establishes a session exactly as Login
// does.
func (s *Store) Register(ctx context.Context, registration Registration) (Session, error) {
	result, err := s.backend.Register(ctx, registration)
	if err != nil {
		return Session{}, apperrors.Wrapf(err, "[Register] backend rejected registration")
	}
	return s.establish(result), nil
}

// establish stores a fresh login/registration result and seeds the tenant
// context. Seeding happens after the session broadcast so subscribers that
// read both stores observe them in establishment order.
func (s *Store) establish(result *LoginResult) Session {
	user := result.User

	s.persist(result)

	s.mu.Lock()
	s.session = Session{
		User:          &user,
		AccessToken:   result.AccessToken,
		RefreshToken:  result.RefreshToken,
		Authenticated: result.AccessToken != "",
	}
	session := s.session
	s.mu.Unlock()

	s.log.Info().Str("user_id", user.ID).Msg("Session established")
	s.broadcast.Publish(session)
	s.tenantCtx.Seed(result.Tenants, user.DefaultTenantID)
	return session
}

func (s *Store) persist(result *LoginResult) {
	s.setKey(storage.KeyAccessToken, result.AccessToken)
	if result.RefreshToken != "" {
		s.setKey(storage.KeyRefreshToken, result.RefreshToken)
	}
	if userJSON, err := json.Marshal(result.User); err == nil {
		s.setKey(storage.KeyUser, string(userJSON))
	}
	if tenantsJSON, err := json.Marshal(result.Tenants); err == nil {
		s.setKey(storage.KeyTenants, string(tenantsJSON))
	}
}

// Refresh exchanges refreshToken for a new token pair. Only the tokens are
// replaced, in durable storage and in memory; the user record and the
// tenant context are untouched. A failed exchange destroys the session.
func (s *Store) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	pair, err := s.backend.Refresh(ctx, refreshToken)
	if err != nil {
		s.log.Warn().Err(err).Msg("Refresh failed, destroying session")
		s.Logout()
		return TokenPair{}, apperrors.Wrapf(err, "[Refresh] token exchange failed")
	}

	s.setKey(storage.KeyAccessToken, pair.AccessToken)
	if pair.RefreshToken != "" {
		s.setKey(storage.KeyRefreshToken, pair.RefreshToken)
	}

	s.mu.Lock()
	s.session.AccessToken = pair.AccessToken
	if pair.RefreshToken != "" {
		s.session.RefreshToken = pair.RefreshToken
	}
	s.session.Authenticated = s.session.AccessToken != "" && s.session.User != nil
	session := s.session
	s.mu.Unlock()

	s.broadcast.Publish(session)
	return *pair, nil
}

// Logout clears every durable key this store owns, resets the in-memory
// session, notifies subscribers, and cascades into the tenant context. It
// is idempotent: a second call finds nothing to clear and changes nothing.
func (s *Store) Logout() {
	for _, key := range []string{storage.KeyAccessToken, storage.KeyRefreshToken, storage.KeyUser, storage.KeyTenants} {
		if err := s.storage.Delete(key); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("Failed to clear durable key")
		}
	}

	s.mu.Lock()
	s.session = Session{}
	session := s.session
	s.mu.Unlock()

	s.broadcast.Publish(session)
	s.tenantCtx.Clear()
}

// RestoreFromStorage rebuilds the session from durable state. Invoked once
// at process start. Anything short of a well-formed user record plus access
// token, including unparseable JSON, is treated exactly like a logout:
// fail safe, not fail loud.
func (s *Store) RestoreFromStorage() {
	accessToken, haveToken := s.storage.Get(storage.KeyAccessToken)
	userJSON, haveUser := s.storage.Get(storage.KeyUser)
	if !haveToken || accessToken == "" || !haveUser {
		s.Logout()
		return
	}

	var user User
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil {
		s.log.Warn().Err(err).Msg("Discarding malformed stored session")
		s.Logout()
		return
	}

	var memberships []tenants.Membership
	if tenantsJSON, ok := s.storage.Get(storage.KeyTenants); ok {
		if err := json.Unmarshal([]byte(tenantsJSON), &memberships); err != nil {
			s.log.Warn().Err(err).Msg("Discarding malformed stored tenant list")
			s.Logout()
			return
		}
	}

	refreshToken, _ := s.storage.Get(storage.KeyRefreshToken)

	s.mu.Lock()
	s.session = Session{
		User:          &user,
		AccessToken:   accessToken,
		RefreshToken:  refreshToken,
		Authenticated: true,
	}
	session := s.session
	s.mu.Unlock()

	s.log.Info().Str("user_id", user.ID).Msg("Session restored from storage")
	s.broadcast.Publish(session)
	s.tenantCtx.Seed(memberships, user.DefaultTenantID)
}

// CurrentAccessToken returns the raw access token, "" when logged out.
func (s *Store) CurrentAccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.AccessToken
}

// IsAuthenticated reports whether a session is established.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Authenticated
}

// Current returns a copy of the session state.
func (s *Store) Current() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// Subscribe registers fn for session transitions. The latest session, if
// any transition has happened, is replayed immediately; delivery is
// synchronous and in subscription order.
func (s *Store) Subscribe(fn func(Session)) func() {
	return s.broadcast.Subscribe(fn)
}

func (s *Store) setKey(key, value string) {
	if err := s.storage.Set(key, value); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("Failed to write durable key")
	}
}
