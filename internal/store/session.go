package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"go.uber.org/multierr"

	"github.com/heddiekitchen/storefront-client/internal/storage"
	"github.com/heddiekitchen/storefront-client/pkg/logger"
	"github.com/heddiekitchen/storefront-client/pkg/types"
)

// InvalidationSource is the adapter-side event the session store subscribes
// to: any 401 anywhere broadcasts through it.
type InvalidationSource interface {
	OnSessionInvalid(fn func())
}

// SessionStore holds the authenticated identity and its credential. The
// triple is restored synchronously from durable storage at construction, so
// a restart needs no network round trip. Invariant: token is set iff user is
// set; profile may be nil independently.
type SessionStore struct {
	store storage.Store
	logg  *logger.Logger

	mu      sync.RWMutex
	user    *types.User
	profile *types.UserProfile
	token   string
	errMsg  string
}

// NewSessionStore restores the session from storage and, when source is
// non-nil, registers for session-invalidated broadcasts.
func NewSessionStore(store storage.Store, source InvalidationSource, logg *logger.Logger) *SessionStore {
	s := &SessionStore{store: store, logg: logg}
	s.restore()
	if source != nil {
		source.OnSessionInvalid(s.handleSessionInvalid)
	}
	return s
}

func (s *SessionStore) restore() {
	rawUser, errUser := s.store.Get(storage.KeyUser)
	rawToken, errToken := s.store.Get(storage.KeyToken)
	if errUser != nil || errToken != nil || rawToken == "" {
		// A partial triple is treated as logged out.
		return
	}

	var user types.User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		if s.logg != nil {
			s.logg.Warn(context.Background(), "discarding corrupt persisted user record")
		}
		return
	}

	s.user = &user
	s.token = rawToken

	if rawProfile, err := s.store.Get(storage.KeyProfile); err == nil && rawProfile != "" && rawProfile != "null" {
		var profile types.UserProfile
		if err := json.Unmarshal([]byte(rawProfile), &profile); err == nil {
			s.profile = &profile
		}
	}
}

// User returns the authenticated user, nil when logged out.
func (s *SessionStore) User() *types.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Profile returns the user profile, which may be nil even when logged in.
func (s *SessionStore) Profile() *types.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

// Token returns the session credential, empty when logged out.
func (s *SessionStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// IsAuthenticated reports whether a user and credential are present.
func (s *SessionStore) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.token != ""
}

// Err returns the last recorded error message.
func (s *SessionStore) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errMsg
}

// SetUser updates the in-memory session and, when both user and token are
// present, persists the full triple. Persistence is all-or-nothing: a failed
// write rolls the already-written keys back so storage never holds a partial
// session. Called after login/registration, and after profile mutations with
// the existing token.
func (s *SessionStore) SetUser(user *types.User, profile *types.UserProfile, token string) error {
	if user != nil && token != "" {
		if err := s.persist(user, profile, token); err != nil {
			return err
		}
	}

	s.mu.Lock()
	s.user = user
	s.profile = profile
	s.token = token
	s.errMsg = ""
	s.mu.Unlock()
	return nil
}

func (s *SessionStore) persist(user *types.User, profile *types.UserProfile, token string) error {
	rawUser, err := json.Marshal(user)
	if err != nil {
		return err
	}
	rawProfile, err := json.Marshal(profile)
	if err != nil {
		return err
	}

	writes := []struct {
		key   string
		value string
	}{
		{storage.KeyUser, string(rawUser)},
		{storage.KeyProfile, string(rawProfile)},
		{storage.KeyToken, token},
	}
	for i, w := range writes {
		if err := s.store.Set(w.key, w.value); err != nil {
			// Roll back whatever landed so the triple stays all-or-nothing.
			for j := 0; j < i; j++ {
				err = multierr.Append(err, s.store.Delete(writes[j].key))
			}
			return err
		}
	}
	return nil
}

// Logout clears the persisted triple and resets in-memory state. It does not
// call the server-side logout endpoint; that is the caller's responsibility.
func (s *SessionStore) Logout() error {
	err := multierr.Combine(
		s.store.Delete(storage.KeyUser),
		s.store.Delete(storage.KeyProfile),
		s.store.Delete(storage.KeyToken),
	)

	s.mu.Lock()
	s.user = nil
	s.profile = nil
	s.token = ""
	s.errMsg = ""
	s.mu.Unlock()
	return err
}

// SetError records a session-level error message.
func (s *SessionStore) SetError(msg string) {
	s.mu.Lock()
	s.errMsg = msg
	s.mu.Unlock()
}

func (s *SessionStore) handleSessionInvalid() {
	if s.logg != nil {
		s.logg.Warn(context.Background(), "session invalidated, clearing persisted credentials")
	}
	if err := s.Logout(); err != nil && !errors.Is(err, storage.ErrNotFound) && s.logg != nil {
		s.logg.Error(context.Background(), "clearing session after invalidation", err)
	}
}
