package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/memberauth/pkg/member"
)

// Session is the per-client local session.
type Session struct {
	ID        uuid.UUID      `json:"id"`
	Token     string         `json:"token"`
	Member    *member.Member `json:"member,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	ExpiresAt time.Time      `json:"expires_at"`
}

func newSession(token string, now time.Time, ttl time.Duration) *Session {
	return &Session{
		ID:        uuid.New(),
		Token:     token,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// Identifier returns the stable identifier of the session.
func (s *Session) Identifier() string {
	if s == nil {
		return ""
	}
	return s.ID.String()
}

// IsAuthenticated reports whether a member is attached.
func (s *Session) IsAuthenticated() bool {
	return s != nil && s.Member != nil
}

func (s *Session) IsExpired(now time.Time) bool {
	return s != nil && !now.Before(s.ExpiresAt)
}

func (s *Session) clone() *Session {
	c := *s
	c.Member = s.Member.Clone()
	return &c
}
