// Package authhttp exposes the session reconciler over HTTP.
//
// Routes mounts POST /login, POST /logout and GET /me behind the local
// session middleware. RequireAutoLogin guards other routes: a persistent
// cookie claim that no longer matches the member store forces a logout and
// answers 401.
//
// Every authentication failure answers with the same 401 body so clients
// cannot tell an unknown id from a wrong password.
package authhttp
