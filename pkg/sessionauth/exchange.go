package sessionauth

import (
	"context"

	"github.com/dmitrymomot/memberauth/pkg/credcookie"
	"github.com/dmitrymomot/memberauth/pkg/member"
	"github.com/dmitrymomot/memberauth/pkg/session"
)

// CookieWriter writes or clears the credential cookie set on the response.
// credcookie.ResponseJar implements it.
type CookieWriter interface {
	Write(s credcookie.Set, maxAge int)
	Clear()
}

// SessionBinder attaches members to local sessions. session.Manager
// implements it.
type SessionBinder interface {
	Attach(ctx context.Context, sess *session.Session, m *member.Member) error
	Detach(ctx context.Context, sess *session.Session) error
}

// Exchange is the state of one request as seen by the reconciler.
type Exchange struct {
	// Cookies is the credential set read from the request.
	Cookies credcookie.Set
	// Session is the client's local session; its identifier becomes the
	// persisted session token.
	Session *session.Session
	Writer  CookieWriter
}
