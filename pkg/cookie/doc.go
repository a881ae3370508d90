// Package cookie reads and writes HTTP cookies with shared defaults and
// optional HMAC-SHA256 signatures.
//
// A Manager holds one or more secrets. The first secret signs new values;
// every secret is tried on verification so secrets can be rotated without
// invalidating cookies already issued. Signed values are encoded as
// base64(value) + "|" + base64(mac), which also makes arbitrary UTF-8
// values safe to carry in a cookie.
//
//	mgr, err := cookie.New([]string{os.Getenv("COOKIE_SECRET")},
//	    cookie.WithSecure(true),
//	)
//	_ = mgr.SetSigned(w, "id", memberID, cookie.WithMaxAge(3600))
//	id, err := mgr.GetSigned(r, "id")
//	mgr.Expire(w, "id")
//
// Errors are sentinel values; a missing cookie is ErrCookieNotFound and a
// tampered one ErrInvalidSignature or ErrInvalidFormat.
package cookie
