package sessionauth

import "github.com/dmitrymomot/memberauth/pkg/member"

// LoginMode selects whether a login survives the local session.
type LoginMode int

const (
	// OneTime logins keep no persisted session and use browser-session cookies.
	OneTime LoginMode = iota
	// Persistent logins store a session token for one year and mirror it in
	// long-lived cookies.
	Persistent
)

func (m LoginMode) String() string {
	switch m {
	case Persistent:
		return "persistent"
	case OneTime:
		return "one_time"
	default:
		return "unknown"
	}
}

// ModeFor maps the requested auto-login flag to a mode.
func ModeFor(persistent bool) LoginMode {
	if persistent {
		return Persistent
	}
	return OneTime
}

// Credentials is a login form submission.
type Credentials struct {
	ID         string
	Password   string
	Persistent bool
}

// Result is a successful login.
type Result struct {
	Member *member.Member
	Mode   LoginMode
}
