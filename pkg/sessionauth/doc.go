// Package sessionauth decides whether a client is authenticated by reconciling
// three sources of truth: the local server-side session, the credential
// cookie set presented by the client, and the member's persisted session
// record.
//
// A Reconciler drives the login and logout transitions:
//
//   - Login verifies submitted credentials when the cookie set is incomplete,
//     or re-authenticates from the cookies when it is complete. Persistent
//     cookie logins must match the persisted (id, session token) pair and an
//     unexpired session; a mismatch forces a logout and fails with
//     ErrSessionInvalid.
//   - Logout clears the persisted session for persistent logins, then always
//     clears the cookies and detaches the member from the local session.
//   - CheckAutoLogin is a read-only gate for ordinary requests.
//
// On success the Writer establishes the new state in a fixed order: the
// persisted record first, then the cookies, then the local session. A failure
// at any step leaves the client unauthenticated.
//
// Per-request state is carried by an Exchange:
//
//	ex := &sessionauth.Exchange{
//		Cookies: credcookie.Read(r, cookies),
//		Session: sess,
//		Writer:  jar.Bind(w),
//	}
//	res, err := reconciler.Login(ctx, ex, &sessionauth.Credentials{ID: id, Password: pwd})
//	switch {
//	case errors.Is(err, sessionauth.ErrNotFound), errors.Is(err, sessionauth.ErrInvalidCredentials):
//		// answer 401 without telling which
//	case errors.Is(err, sessionauth.ErrSessionInvalid):
//		// cookies are already cleared
//	}
//
// The package never logs. Decisions are reported to an Observer; see
// NewLogObserver and the authmetrics package.
package sessionauth
