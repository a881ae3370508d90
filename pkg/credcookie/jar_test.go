package credcookie_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/memberauth/pkg/cookie"
	"github.com/dmitrymomot/memberauth/pkg/credcookie"
)

func newCookies(t *testing.T) *cookie.Manager {
	t.Helper()
	m, err := cookie.New([]string{"credcookie-test-secret-0123456789abcdef"})
	require.NoError(t, err)
	return m
}

func responseCookies(w *httptest.ResponseRecorder) map[string]*http.Cookie {
	out := make(map[string]*http.Cookie)
	for _, c := range w.Result().Cookies() {
		out[c.Name] = c
	}
	return out
}

func TestJar_WriteThenRead(t *testing.T) {
	t.Parallel()
	cookies := newCookies(t)
	jar := credcookie.NewJar(cookies)

	w := httptest.NewRecorder()
	jar.Write(w, completeSet(), credcookie.PersistentMaxAge)

	written := responseCookies(w)
	require.Len(t, written, len(credcookie.Names))
	for _, name := range credcookie.Names {
		require.Contains(t, written, name)
		assert.Equal(t, credcookie.PersistentMaxAge, written[name].MaxAge)
		assert.True(t, written[name].HttpOnly)
	}

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range written {
		r.AddCookie(c)
	}
	got := credcookie.Read(r, cookies)
	assert.Equal(t, completeSet(), got)
	assert.True(t, got.IsComplete())
}

func TestJar_OneTimeCookiesAreSessionScoped(t *testing.T) {
	t.Parallel()
	jar := credcookie.NewJar(newCookies(t))

	w := httptest.NewRecorder()
	jar.Write(w, completeSet(), credcookie.OneTimeMaxAge)
	for _, c := range w.Result().Cookies() {
		assert.Zero(t, c.MaxAge, c.Name)
		assert.True(t, c.Expires.IsZero(), c.Name)
	}
}

func TestJar_Clear(t *testing.T) {
	t.Parallel()
	jar := credcookie.NewJar(newCookies(t))

	w := httptest.NewRecorder()
	jar.Clear(w)

	cleared := responseCookies(w)
	require.Len(t, cleared, len(credcookie.Names))
	for _, name := range credcookie.Names {
		assert.Equal(t, -1, cleared[name].MaxAge, name)
		assert.Empty(t, cleared[name].Value, name)
	}
}

func TestRead_UntrustedFieldsAreAbsent(t *testing.T) {
	t.Parallel()
	cookies := newCookies(t)

	w := httptest.NewRecorder()
	credcookie.NewJar(cookies).Write(w, completeSet(), credcookie.PersistentMaxAge)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		if c.Name == credcookie.NameSessionID {
			c.Value = "forged"
		}
		r.AddCookie(c)
	}

	got := credcookie.Read(r, cookies)
	assert.False(t, got.SessionID.Present)
	assert.True(t, got.ID.Present)
	assert.False(t, got.IsComplete())
}

func TestRead_ForeignKeyIsRejected(t *testing.T) {
	t.Parallel()
	other, err := cookie.New([]string{"another-secret-another-secret-0123456"})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	credcookie.NewJar(other).Write(w, completeSet(), credcookie.PersistentMaxAge)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	assert.Equal(t, credcookie.Set{}, credcookie.Read(r, newCookies(t)))
}

func TestResponseJar(t *testing.T) {
	t.Parallel()
	jar := credcookie.NewJar(newCookies(t))

	w := httptest.NewRecorder()
	rj := jar.Bind(w)
	rj.Write(completeSet(), credcookie.OneTimeMaxAge)
	rj.Clear()

	assert.Len(t, w.Result().Cookies(), 2*len(credcookie.Names))
}
