package sessionauth

import "errors"

var (
	// ErrNotFound means no member matched the identifier or (id, token) pair.
	ErrNotFound = errors.New("sessionauth.not_found")

	// ErrInvalidCredentials means the submitted password did not match.
	ErrInvalidCredentials = errors.New("sessionauth.invalid_credentials")

	// ErrMalformedCookie means id or sessionId was missing where required.
	ErrMalformedCookie = errors.New("sessionauth.malformed_cookie")

	// ErrSessionInvalid means the cookie session does not match the persisted
	// session or the persisted session has expired.
	ErrSessionInvalid = errors.New("sessionauth.session_invalid")

	// ErrCredentialsRequired means the credential path was taken without a submission.
	ErrCredentialsRequired = errors.New("sessionauth.credentials_required")

	ErrNoSession = errors.New("sessionauth.no_local_session")
)

// IsAuthFailure reports whether err should be presented to the client as a
// plain authentication failure.
func IsAuthFailure(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrSessionInvalid) ||
		errors.Is(err, ErrMalformedCookie) ||
		errors.Is(err, ErrCredentialsRequired)
}
