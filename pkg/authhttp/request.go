package authhttp

import (
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/dmitrymomot/memberauth/pkg/sessionauth"
)

// Login form field names.
const (
	FieldID          = "id"
	FieldPassword    = "pwd"
	FieldIsAutoLogin = "isAutoLogin"
)

const maxFormBytes = 16 << 10

// parseCredentials reads the login form. An empty form yields nil so that a
// cookie-only login can be attempted.
func parseCredentials(w http.ResponseWriter, r *http.Request) (*sessionauth.Credentials, error) {
	parse := r.ParseForm
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mediaType, _, err := mime.ParseMediaType(ct)
		switch {
		case err != nil:
			return nil, ErrUnsupported
		case mediaType == "multipart/form-data":
			parse = func() error { return r.ParseMultipartForm(maxFormBytes) }
		case mediaType != "application/x-www-form-urlencoded":
			return nil, ErrUnsupported
		}
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := parse(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}

	id := r.PostFormValue(FieldID)
	if id == "" {
		return nil, nil
	}
	return &sessionauth.Credentials{
		ID:         id,
		Password:   r.PostFormValue(FieldPassword),
		Persistent: formBool(r.PostFormValue(FieldIsAutoLogin)),
	}, nil
}

// formBool accepts the usual checkbox and boolean spellings.
func formBool(v string) bool {
	if strings.EqualFold(v, "on") {
		return true
	}
	b, _ := strconv.ParseBool(v)
	return b
}
