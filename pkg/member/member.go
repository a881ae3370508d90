package member

import "time"

// Member is the identity record owned by the persistence layer.
type Member struct {
	ID string `json:"id" yaml:"id"`
	// PasswordHash is nil for passwordless, pre-verified members.
	PasswordHash *string `json:"-" yaml:"password_hash"`
	Name         string  `json:"name" yaml:"name"`
	Phone        string  `json:"phone" yaml:"phone"`
	IsWorker     bool    `json:"is_worker" yaml:"is_worker"`
	IsAdmin      bool    `json:"is_admin" yaml:"is_admin"`

	// SessionToken and SessionExpiry are set only while a persistent login
	// is active. SessionExpiry is always UTC.
	SessionToken  *string    `json:"session_token,omitempty" yaml:"session_token"`
	SessionExpiry *time.Time `json:"session_expiry,omitempty" yaml:"session_expiry"`
}

// HasPassword reports whether the member must present a password.
func (m *Member) HasPassword() bool {
	return m != nil && m.PasswordHash != nil
}

// Public returns a copy without the password hash, for holding in a local session.
func (m *Member) Public() *Member {
	c := m.Clone()
	if c != nil {
		c.PasswordHash = nil
	}
	return c
}

// Clone returns a deep copy so callers never share pointer fields with a store.
func (m *Member) Clone() *Member {
	if m == nil {
		return nil
	}
	c := *m
	if m.PasswordHash != nil {
		h := *m.PasswordHash
		c.PasswordHash = &h
	}
	if m.SessionToken != nil {
		t := *m.SessionToken
		c.SessionToken = &t
	}
	if m.SessionExpiry != nil {
		e := m.SessionExpiry.UTC()
		c.SessionExpiry = &e
	}
	return &c
}

// WithSession returns a copy of m carrying the given session metadata.
func (m *Member) WithSession(token *string, expiry *time.Time) *Member {
	c := m.Clone()
	c.SessionToken, c.SessionExpiry = nil, nil
	if token != nil {
		t := *token
		c.SessionToken = &t
	}
	if expiry != nil {
		e := expiry.UTC()
		c.SessionExpiry = &e
	}
	return c
}
