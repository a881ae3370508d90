package sessionauth_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/memberauth/pkg/credcookie"
	"github.com/dmitrymomot/memberauth/pkg/member"
	"github.com/dmitrymomot/memberauth/pkg/session"
	"github.com/dmitrymomot/memberauth/pkg/sessionauth"
)

var fixedNow = time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func ptr[T any](v T) *T { return &v }

// md5("pw")
const pwHash = "8fe4c11451281c094a6578e6ddbf5eed"

type cookieWrite struct {
	set    credcookie.Set
	maxAge int
}

type fakeCookies struct {
	writes []cookieWrite
	clears int
}

func (f *fakeCookies) Write(s credcookie.Set, maxAge int) {
	f.writes = append(f.writes, cookieWrite{set: s, maxAge: maxAge})
}

func (f *fakeCookies) Clear() { f.clears++ }

func (f *fakeCookies) last() (cookieWrite, bool) {
	if len(f.writes) == 0 {
		return cookieWrite{}, false
	}
	return f.writes[len(f.writes)-1], true
}

type fakeBinder struct {
	attached  int
	detached  int
	attachErr error
	detachErr error
}

func (b *fakeBinder) Attach(_ context.Context, sess *session.Session, m *member.Member) error {
	if b.attachErr != nil {
		return b.attachErr
	}
	b.attached++
	sess.Member = m
	return nil
}

func (b *fakeBinder) Detach(_ context.Context, sess *session.Session) error {
	b.detached++
	if sess != nil {
		sess.Member = nil
	}
	return b.detachErr
}

type recorder struct {
	mu     sync.Mutex
	events []sessionauth.Event
}

func (r *recorder) Observe(_ context.Context, e sessionauth.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) kinds() []sessionauth.EventKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]sessionauth.EventKind, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Kind)
	}
	return out
}

// plainStore hides the conditional clear of the wrapped store.
type plainStore struct {
	member.Store
}

type mockStore struct {
	mock.Mock
}

func (m *mockStore) FindByID(ctx context.Context, id string) (*member.Member, error) {
	args := m.Called(ctx, id)
	mem, _ := args.Get(0).(*member.Member)
	return mem, args.Error(1)
}

func (m *mockStore) FindByIDAndSessionToken(ctx context.Context, id, token string) (*member.Member, error) {
	args := m.Called(ctx, id, token)
	mem, _ := args.Get(0).(*member.Member)
	return mem, args.Error(1)
}

func (m *mockStore) UpdateSession(ctx context.Context, id string, token *string, expiry *time.Time) error {
	return m.Called(ctx, id, token, expiry).Error(0)
}

type env struct {
	store    *member.MemoryStore
	binder   *fakeBinder
	cookies  *fakeCookies
	events   *recorder
	sess     *session.Session
	rec      *sessionauth.Reconciler
	exchange *sessionauth.Exchange
}

func newEnv(store member.Store, members ...*member.Member) *env {
	e := &env{
		binder:  &fakeBinder{},
		cookies: &fakeCookies{},
		events:  &recorder{},
		sess:    &session.Session{ID: uuid.New(), Token: "transport-token"},
	}
	if store == nil {
		e.store = member.NewMemoryStore(members...)
		store = e.store
	}
	e.rec = sessionauth.New(store, e.binder,
		sessionauth.WithClock(clock),
		sessionauth.WithObserver(e.events),
	)
	e.exchange = &sessionauth.Exchange{Session: e.sess, Writer: e.cookies}
	return e
}

func (e *env) withCookies(s credcookie.Set) *env {
	e.exchange.Cookies = s
	return e
}

func (e *env) persisted(id string) *member.Member {
	m, err := e.store.FindByID(context.Background(), id)
	if err != nil {
		panic(err)
	}
	return m
}

func u1() *member.Member {
	return &member.Member{ID: "u1", PasswordHash: ptr(pwHash), Name: "Jane", Phone: "010-1234-5678"}
}

// persistentCookies is a complete auto-login cookie set for u1.
func persistentCookies(sessionID string) credcookie.Set {
	return credcookie.FromMember(u1(), sessionID, true)
}
