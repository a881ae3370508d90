package credcookie

import (
	"strings"

	"github.com/dmitrymomot/memberauth/pkg/member"
)

// Cookie names of the credential set.
const (
	NameID          = "id"
	NameName        = "name"
	NamePhone       = "phoneNumber"
	NameIsWorker    = "isWorker"
	NameSessionID   = "sessionId"
	NameIsAdmin     = "isAdmin"
	NameIsAutoLogin = "isAutoLogin"
)

// Names lists every credential cookie in write order.
var Names = []string{
	NameID,
	NameName,
	NamePhone,
	NameIsWorker,
	NameSessionID,
	NameIsAdmin,
	NameIsAutoLogin,
}

// Field is a single cookie value that may be absent.
type Field struct {
	Value   string
	Present bool
}

// Some returns a present field holding v.
func Some(v string) Field {
	return Field{Value: v, Present: true}
}

// Get returns the value and whether it is present.
func (f Field) Get() (string, bool) {
	return f.Value, f.Present
}

// Set is the credential cookie set.
type Set struct {
	ID          Field
	Name        Field
	Phone       Field
	IsWorker    Field
	SessionID   Field
	IsAdmin     Field
	IsAutoLogin Field
}

// IsComplete reports whether all seven fields are present.
func (s Set) IsComplete() bool {
	for _, f := range s.fields() {
		if !f.field.Present {
			return false
		}
	}
	return true
}

// Persistent reports the isAutoLogin flag. A missing or unparseable value is false.
func (s Set) Persistent() bool {
	return ParseFlag(s.IsAutoLogin.Value)
}

// Get returns the field stored under a cookie name.
func (s Set) Get(name string) Field {
	for _, f := range s.fields() {
		if f.name == name {
			return *f.field
		}
	}
	return Field{}
}

// With returns a copy of s with the named field set to f. Unknown names are ignored.
func (s Set) With(name string, f Field) Set {
	for _, nf := range s.fields() {
		if nf.name == name {
			*nf.field = f
		}
	}
	return s
}

type namedField struct {
	name  string
	field *Field
}

// fields must stay in the order of Names.
func (s *Set) fields() []namedField {
	return []namedField{
		{NameID, &s.ID},
		{NameName, &s.Name},
		{NamePhone, &s.Phone},
		{NameIsWorker, &s.IsWorker},
		{NameSessionID, &s.SessionID},
		{NameIsAdmin, &s.IsAdmin},
		{NameIsAutoLogin, &s.IsAutoLogin},
	}
}

// FromMember builds the complete set issued at login.
func FromMember(m *member.Member, sessionID string, persistent bool) Set {
	return Set{
		ID:          Some(m.ID),
		Name:        Some(m.Name),
		Phone:       Some(m.Phone),
		IsWorker:    Some(FormatBit(m.IsWorker)),
		SessionID:   Some(sessionID),
		IsAdmin:     Some(FormatBit(m.IsAdmin)),
		IsAutoLogin: Some(FormatFlag(persistent)),
	}
}

// ParseFlag is true iff v equals "true" ignoring case.
func ParseFlag(v string) bool {
	return strings.EqualFold(strings.TrimSpace(v), "true")
}

func FormatFlag(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// FormatBit renders role flags as "1" or "0".
func FormatBit(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
