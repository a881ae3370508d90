package credcookie

import (
	"net/http"

	"github.com/dmitrymomot/memberauth/pkg/cookie"
)

const (
	// PersistentMaxAge keeps auto-login cookies for one year.
	PersistentMaxAge = 365 * 24 * 60 * 60
	// OneTimeMaxAge yields browser-session cookies.
	OneTimeMaxAge = 0
)

// Read collects the credential set from the request. Fields that are missing
// or fail signature verification are absent.
func Read(r *http.Request, cookies *cookie.Manager) Set {
	var s Set
	for _, f := range s.fields() {
		v, err := cookies.GetSigned(r, f.name)
		if err != nil {
			continue
		}
		*f.field = Some(v)
	}
	return s
}

// Jar writes and clears the credential set on responses.
type Jar struct {
	cookies *cookie.Manager
}

func NewJar(cookies *cookie.Manager) *Jar {
	return &Jar{cookies: cookies}
}

// Write sets every present field of s, signed, with the same max-age.
func (j *Jar) Write(w http.ResponseWriter, s Set, maxAge int) {
	for _, f := range s.fields() {
		if !f.field.Present {
			continue
		}
		j.cookies.SetSigned(w, f.name, f.field.Value, cookie.WithMaxAge(maxAge))
	}
}

// Clear expires all seven credential cookies.
func (j *Jar) Clear(w http.ResponseWriter) {
	for _, name := range Names {
		j.cookies.Expire(w, name)
	}
}

// Bind returns a writer tied to a single response.
func (j *Jar) Bind(w http.ResponseWriter) *ResponseJar {
	return &ResponseJar{jar: j, w: w}
}

// ResponseJar writes the credential set to one response.
type ResponseJar struct {
	jar *Jar
	w   http.ResponseWriter
}

func (r *ResponseJar) Write(s Set, maxAge int) {
	r.jar.Write(r.w, s, maxAge)
}

func (r *ResponseJar) Clear() {
	r.jar.Clear(r.w)
}
