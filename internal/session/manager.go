package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/agromarket/agromarket-go/internal/domain"
	"github.com/agromarket/agromarket-go/internal/observability"
	"github.com/agromarket/agromarket-go/internal/security"
	"github.com/agromarket/agromarket-go/internal/storage"
)

// ErrNoSession is returned when no usable session exists in either tier.
// Malformed or undecryptable stored payloads also surface as ErrNoSession:
// a corrupt record is treated as absent, never as a hard failure.
var ErrNoSession = errors.New("session: not signed in")

// Manager owns the client's single Session across two durability tiers.
// rememberMe selects the durable tier; otherwise the session lives only as
// long as the process. The admin credential sits in its own namespace and
// never mixes with the user session. Writers are serialized under mu so an
// activity touch that read the record before a token write cannot put the
// old token back.
type Manager struct {
	mu      sync.Mutex
	durable storage.Store
	scoped  storage.Store
	cipher  *security.TokenCipher
	nowFn   func() time.Time
}

type Option func(*Manager)

// WithCipher seals session payloads before they reach the durable tier.
func WithCipher(c *security.TokenCipher) Option {
	return func(m *Manager) { m.cipher = c }
}

// WithClock overrides the activity-timestamp clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.nowFn = now }
}

func NewManager(durable, scoped storage.Store, opts ...Option) *Manager {
	m := &Manager{durable: durable, scoped: scoped, nowFn: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Set writes the full session record atomically to the tier selected by
// rememberMe and removes any prior record from the other tier.
func (m *Manager) Set(ctx context.Context, token string, user domain.UserData, rememberMe bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.set(ctx, token, user, rememberMe)
}

func (m *Manager) set(ctx context.Context, token string, user domain.UserData, rememberMe bool) error {
	sess := domain.Session{
		Token:          token,
		User:           user,
		RememberMe:     rememberMe,
		LastActivityAt: m.nowFn().UTC(),
	}
	payload, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	target, other := m.scoped, m.durable
	if rememberMe {
		target, other = m.durable, m.scoped
		if m.cipher != nil {
			payload, err = m.cipher.Seal(payload)
			if err != nil {
				return err
			}
		}
	}
	if err := target.Put(ctx, storage.KeySession, payload); err != nil {
		observability.RecordSessionOp("set", "error")
		return err
	}
	_ = other.Delete(ctx, storage.KeySession)
	observability.RecordSessionOp("set", "success")
	return nil
}

// Get reads the current session, preferring the durable tier. The tier used
// at login may differ from the current one, so both are consulted.
func (m *Manager) Get(ctx context.Context) (*domain.Session, error) {
	if sess, err := m.read(ctx, m.durable, true); err == nil {
		observability.RecordSessionOp("get", "durable")
		return sess, nil
	}
	if sess, err := m.read(ctx, m.scoped, false); err == nil {
		observability.RecordSessionOp("get", "scoped")
		return sess, nil
	}
	observability.RecordSessionOp("get", "absent")
	return nil, ErrNoSession
}

// SetToken replaces only the bearer token, preserving user data and the
// rememberMe tier. Used by the refresh path.
func (m *Manager) SetToken(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, err := m.Get(ctx)
	if err != nil {
		return err
	}
	return m.set(ctx, token, sess.User, sess.RememberMe)
}

// Touch updates the activity timestamp. The record is re-read and rewritten
// under the writer lock, so a touch can never put back a token that a
// concurrent SetToken has already replaced.
func (m *Manager) Touch(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, err := m.Get(ctx)
	if err != nil {
		return
	}
	sess.LastActivityAt = m.nowFn().UTC()
	payload, err := json.Marshal(sess)
	if err != nil {
		return
	}
	target := m.scoped
	if sess.RememberMe {
		target = m.durable
		if m.cipher != nil {
			if payload, err = m.cipher.Seal(payload); err != nil {
				return
			}
		}
	}
	_ = target.Put(ctx, storage.KeySession, payload)
}

// Clear removes the session from both tiers unconditionally. Safe to call
// when no session exists.
func (m *Manager) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	err1 := m.durable.Delete(ctx, storage.KeySession)
	err2 := m.scoped.Delete(ctx, storage.KeySession)
	observability.RecordSessionOp("clear", "success")
	return errors.Join(err1, err2)
}

func (m *Manager) read(ctx context.Context, store storage.Store, sealed bool) (*domain.Session, error) {
	payload, err := store.Get(ctx, storage.KeySession)
	if err != nil {
		return nil, err
	}
	if sealed && m.cipher != nil {
		payload, err = m.cipher.Open(payload)
		if err != nil {
			_ = store.Delete(ctx, storage.KeySession)
			return nil, ErrNoSession
		}
	}
	var sess domain.Session
	if err := json.Unmarshal(payload, &sess); err != nil || sess.Token == "" {
		_ = store.Delete(ctx, storage.KeySession)
		return nil, ErrNoSession
	}
	return &sess, nil
}
