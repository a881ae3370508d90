// Package credcookie models the credential cookie set a client presents
// after logging in.
//
// The set has seven fixed fields (id, name, phoneNumber, isWorker, sessionId,
// isAdmin and isAutoLogin). It is collected once at the HTTP boundary with
// Read and is trusted only when complete; a partial set is treated as absent.
// Values travel HMAC-signed through a cookie.Manager, so a field that fails
// verification reads as missing.
//
// Jar writes all seven fields with one max-age or expires all seven:
//
//	jar := credcookie.NewJar(cookies)
//	jar.Write(w, credcookie.FromMember(m, sessionID, true), credcookie.PersistentMaxAge)
//	...
//	set := credcookie.Read(r, cookies)
//	if set.IsComplete() && set.Persistent() {
//		// consult the member store
//	}
//	...
//	jar.Clear(w)
package credcookie
