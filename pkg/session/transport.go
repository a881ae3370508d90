package session

import (
	"net/http"
	"time"

	"github.com/dmitrymomot/memberauth/pkg/cookie"
)

// Transport moves the session token between client and server.
type Transport interface {
	GetToken(r *http.Request) (string, error)
	SetToken(w http.ResponseWriter, token string, ttl time.Duration)
}

// CookieTransport carries the token in a signed, HTTP-only cookie.
type CookieTransport struct {
	cookies *cookie.Manager
	name    string
}

func NewCookieTransport(cookies *cookie.Manager, name string) *CookieTransport {
	return &CookieTransport{cookies: cookies, name: name}
}

func (t *CookieTransport) GetToken(r *http.Request) (string, error) {
	token, err := t.cookies.GetSigned(r, t.name)
	if err != nil || token == "" {
		return "", ErrSessionNotFound
	}
	return token, nil
}

func (t *CookieTransport) SetToken(w http.ResponseWriter, token string, ttl time.Duration) {
	t.cookies.SetSigned(w, t.name, token,
		cookie.WithMaxAge(int(ttl.Seconds())),
		cookie.WithHTTPOnly(true),
	)
}
