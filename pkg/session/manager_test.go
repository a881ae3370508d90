package session_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/memberauth/pkg/cookie"
	"github.com/dmitrymomot/memberauth/pkg/member"
	"github.com/dmitrymomot/memberauth/pkg/session"
)

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func setupManager(t *testing.T) (*session.Manager, *clock) {
	t.Helper()
	cookies, err := cookie.New([]string{"test-secret-key-that-is-long-enough!"})
	require.NoError(t, err)

	clk := &clock{now: time.Now()}
	store := session.NewMemoryStore(0)
	t.Cleanup(func() { _ = store.Close() })

	cfg := session.DefaultConfig()
	cfg.CookieName = "test-sid"
	cfg.TTL = 30 * time.Minute

	return session.NewFromConfig(cfg,
		session.WithCookieManager(cookies),
		session.WithStore(store),
		session.WithClock(clk.Now),
	), clk
}

func requestWith(w *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestManager_Ensure(t *testing.T) {
	mgr, clk := setupManager(t)
	ctx := context.Background()

	t.Run("creates session and sets cookie", func(t *testing.T) {
		w := httptest.NewRecorder()
		sess, err := mgr.Ensure(ctx, w, httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		assert.False(t, sess.IsAuthenticated())
		assert.NotEmpty(t, sess.Token)
		assert.NotEmpty(t, sess.Identifier())

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "test-sid", cookies[0].Name)
		assert.NotContains(t, cookies[0].Value, sess.Identifier())
	})

	t.Run("returns existing session", func(t *testing.T) {
		w1 := httptest.NewRecorder()
		first, err := mgr.Ensure(ctx, w1, httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)

		w2 := httptest.NewRecorder()
		second, err := mgr.Ensure(ctx, w2, requestWith(w1))
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
		assert.Empty(t, w2.Result().Cookies(), "fresh session is not re-issued")
	})

	t.Run("extends session past half life", func(t *testing.T) {
		w1 := httptest.NewRecorder()
		first, err := mgr.Ensure(ctx, w1, httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)

		clk.now = clk.now.Add(20 * time.Minute)
		w2 := httptest.NewRecorder()
		second, err := mgr.Ensure(ctx, w2, requestWith(w1))
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
		assert.WithinDuration(t, clk.now.Add(30*time.Minute), second.ExpiresAt, time.Second)
		assert.Len(t, w2.Result().Cookies(), 1)
	})

	t.Run("replaces expired session", func(t *testing.T) {
		w1 := httptest.NewRecorder()
		first, err := mgr.Ensure(ctx, w1, httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)

		clk.now = clk.now.Add(time.Hour)
		second, err := mgr.Ensure(ctx, httptest.NewRecorder(), requestWith(w1))
		require.NoError(t, err)
		assert.NotEqual(t, first.ID, second.ID)
	})

	t.Run("forged cookie gets a new session", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "test-sid", Value: "forged"})

		_, err := mgr.Get(ctx, r)
		assert.ErrorIs(t, err, session.ErrSessionNotFound)

		sess, err := mgr.Ensure(ctx, httptest.NewRecorder(), r)
		require.NoError(t, err)
		assert.NotNil(t, sess)
	})
}

func TestManager_AttachDetach(t *testing.T) {
	mgr, _ := setupManager(t)
	ctx := context.Background()

	w := httptest.NewRecorder()
	sess, err := mgr.Ensure(ctx, w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	hash := "8fe4c11451281c094a6578e6ddbf5eed"
	token := sess.Identifier()
	expiry := time.Now().UTC().AddDate(1, 0, 0)
	mem := &member.Member{ID: "u1", Name: "Jane", PasswordHash: &hash, SessionToken: &token, SessionExpiry: &expiry}
	require.NoError(t, mgr.Attach(ctx, sess, mem))
	assert.True(t, sess.IsAuthenticated())
	assert.NotNil(t, mem.PasswordHash)

	loaded, err := mgr.Get(ctx, requestWith(w))
	require.NoError(t, err)
	require.True(t, loaded.IsAuthenticated())
	assert.Equal(t, "u1", loaded.Member.ID)
	assert.False(t, loaded.Member.HasPassword())
	require.NotNil(t, loaded.Member.SessionToken)
	assert.Equal(t, token, *loaded.Member.SessionToken)

	require.NoError(t, mgr.Detach(ctx, sess))
	loaded, err = mgr.Get(ctx, requestWith(w))
	require.NoError(t, err)
	assert.False(t, loaded.IsAuthenticated())

	assert.ErrorIs(t, mgr.Attach(ctx, nil, &member.Member{ID: "u1"}), session.ErrInvalidSession)
	assert.NoError(t, mgr.Detach(ctx, nil))
}

func TestManager_Middleware(t *testing.T) {
	mgr, _ := setupManager(t)

	var seen *session.Session
	h := mgr.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = session.FromContext(r.Context())
		_, ok := session.MemberFromContext(r.Context())
		assert.False(t, ok)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotNil(t, seen)
}

func TestNew_PanicsWithoutTransport(t *testing.T) {
	assert.Panics(t, func() { session.New() })
}
