package session

import (
	"context"

	"github.com/dmitrymomot/memberauth/pkg/member"
)

type sessionContextKey struct{}

func WithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, sess)
}

func FromContext(ctx context.Context) (*Session, bool) {
	sess, ok := ctx.Value(sessionContextKey{}).(*Session)
	return sess, ok && sess != nil
}

// MemberFromContext returns the member attached to the context's session.
func MemberFromContext(ctx context.Context) (*member.Member, bool) {
	sess, ok := FromContext(ctx)
	if !ok || !sess.IsAuthenticated() {
		return nil, false
	}
	return sess.Member, true
}
