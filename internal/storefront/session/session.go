// Package session keeps the authenticated identity and persists it across
// restarts through a kv.Store.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/ergolife/storefront/internal/storefront/kv"
	"github.com/ergolife/storefront/internal/storefront/model"
	"go.uber.org/zap"
)

// Persisted keys. Logout removes all of them.
const (
	KeyToken    = "token"
	KeyUser     = "user"
	KeyWishlist = "wishlist"
)

var (
	// ErrInvalidCredentials is returned for empty login input
	ErrInvalidCredentials = errors.New("session: email and password are required")
	errMalformedUser      = errors.New("session: malformed user record")
)

// Authenticator is the part of the API gateway the session needs
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*model.Login, error)
	Logout(ctx context.Context) error
	Register(ctx context.Context, r model.Registration) (*model.User, error)
	SetToken(token string)
}

// Store holds the current identity
type Store struct {
	kv     kv.Store
	auth   Authenticator
	logger *zap.Logger

	mu    sync.RWMutex
	token string
	user  *model.User
}

func New(store kv.Store, auth Authenticator, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{kv: store, auth: auth, logger: logger}
}

// Restore loads a persisted session and reports whether one was restored.
// A user record that does not parse is discarded with its token.
func (s *Store) Restore(ctx context.Context) bool {
	token, hasToken, err := s.kv.Get(ctx, KeyToken)
	if err != nil {
		s.logger.Warn("failed to read persisted token", zap.Error(err))
		return false
	}
	raw, hasUser, err := s.kv.Get(ctx, KeyUser)
	if err != nil {
		s.logger.Warn("failed to read persisted user", zap.Error(err))
		return false
	}
	if !hasToken || !hasUser || token == "" {
		return false
	}

	user, err := decodeUser(raw)
	if err != nil {
		s.logger.Warn("discarding persisted session", zap.Error(err))
		if err := s.kv.Delete(ctx, KeyToken, KeyUser); err != nil {
			s.logger.Warn("failed to delete persisted session", zap.Error(err))
		}
		return false
	}

	s.set(token, user)
	s.logger.Debug("session restored", zap.String("email", user.Email))
	return true
}

func decodeUser(raw string) (*model.User, error) {
	var u model.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformedUser, err)
	}
	if u.ID == "" || !u.Role.Valid() {
		return nil, errMalformedUser
	}
	return &u, nil
}

// Login authenticates and persists the token and user
func (s *Store) Login(ctx context.Context, email, password string) (*model.User, error) {
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	login, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(login.User)
	if err != nil {
		return nil, fmt.Errorf("session: encode user: %w", err)
	}
	if err := s.kv.Set(ctx, KeyToken, login.Token); err != nil {
		return nil, err
	}
	if err := s.kv.Set(ctx, KeyUser, string(raw)); err != nil {
		return nil, err
	}

	user := login.User
	s.set(login.Token, &user)
	return &user, nil
}

// Register creates an account without logging in
func (s *Store) Register(ctx context.Context, r model.Registration) (*model.User, error) {
	return s.auth.Register(ctx, r)
}

// Logout forgets the identity and deletes every persisted key. Revoking the
// token on the server is best effort.
func (s *Store) Logout(ctx context.Context) error {
	if s.Authenticated() {
		if err := s.auth.Logout(ctx); err != nil {
			s.logger.Info("server logout failed", zap.Error(err))
		}
	}
	s.set("", nil)
	return s.kv.Delete(ctx, KeyToken, KeyUser, KeyWishlist)
}

func (s *Store) set(token string, user *model.User) {
	s.mu.Lock()
	s.token = token
	s.user = user
	s.mu.Unlock()
	s.auth.SetToken(token)
}

// User returns a copy of the current user
func (s *Store) User() (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return model.User{}, false
	}
	return *s.user, true
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.token != ""
}
