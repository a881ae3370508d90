package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrymomot/memberauth/pkg/cookie"
	"github.com/dmitrymomot/memberauth/pkg/member"
)

// Manager handles local session operations.
type Manager struct {
	store     Store
	transport Transport
	cookies   *cookie.Manager
	config    Config
	now       func() time.Time
}

// New creates a session manager. Without WithStore an in-memory store is
// used; without WithTransport a cookie manager is required.
func New(opts ...Option) *Manager {
	m := &Manager{
		config: DefaultConfig(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.store == nil {
		m.store = NewMemoryStore(m.config.CleanupInterval)
	}
	if m.transport == nil {
		if m.cookies == nil {
			panic("session: cookie manager is required when using default cookie transport")
		}
		m.transport = NewCookieTransport(m.cookies, m.config.CookieName)
	}
	return m
}

// NewFromConfig creates a Manager from cfg. Requires a cookie manager or
// transport via options.
func NewFromConfig(cfg Config, opts ...Option) *Manager {
	return New(append([]Option{WithConfig(cfg)}, opts...)...)
}

// Get returns the session referenced by the request.
func (m *Manager) Get(ctx context.Context, r *http.Request) (*Session, error) {
	token, err := m.transport.GetToken(r)
	if err != nil {
		return nil, err
	}
	sess, err := m.store.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if sess.IsExpired(m.now()) {
		return nil, ErrSessionExpired
	}
	return sess, nil
}

// Ensure returns the request's session, creating a new one when it is
// missing or expired. Sessions past half their lifetime are extended.
func (m *Manager) Ensure(ctx context.Context, w http.ResponseWriter, r *http.Request) (*Session, error) {
	sess, err := m.Get(ctx, r)
	switch {
	case err == nil:
		if err := m.extend(ctx, w, sess); err != nil {
			return nil, err
		}
		return sess, nil
	case errors.Is(err, ErrSessionNotFound), errors.Is(err, ErrSessionExpired):
	default:
		return nil, err
	}

	token, err := generateToken()
	if err != nil {
		return nil, err
	}
	sess = newSession(token, m.now(), m.config.TTL)
	if err := m.store.Create(ctx, sess); err != nil {
		return nil, err
	}
	m.transport.SetToken(w, sess.Token, m.config.TTL)
	return sess, nil
}

func (m *Manager) extend(ctx context.Context, w http.ResponseWriter, sess *Session) error {
	now := m.now()
	if sess.ExpiresAt.Sub(now) > m.config.TTL/2 {
		return nil
	}
	sess.ExpiresAt = now.Add(m.config.TTL)
	if err := m.store.Update(ctx, sess); err != nil {
		return err
	}
	m.transport.SetToken(w, sess.Token, m.config.TTL)
	return nil
}

// Attach binds an authenticated member to the session. The password hash is
// never kept in the session, whichever store backs it.
func (m *Manager) Attach(ctx context.Context, sess *Session, mem *member.Member) error {
	if sess == nil || mem == nil {
		return ErrInvalidSession
	}
	sess.Member = mem.Public()
	return m.store.Update(ctx, sess)
}

// Detach removes the authenticated member from the session. Detaching a
// session that is already gone from the store is not an error.
func (m *Manager) Detach(ctx context.Context, sess *Session) error {
	if sess == nil {
		return nil
	}
	sess.Member = nil
	if err := m.store.Update(ctx, sess); err != nil && !errors.Is(err, ErrSessionNotFound) {
		return err
	}
	return nil
}

// Middleware ensures every request carries a session in its context.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := m.Ensure(r.Context(), w, r)
		if err != nil {
			http.Error(w, "session unavailable", http.StatusInternalServerError)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
	})
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrTokenGeneration, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
