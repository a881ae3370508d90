// Package session manages the short-lived, server-side local session of a
// client.
//
// A Session carries at most one authenticated member in its typed Member
// field. The Manager finds or creates the session for a request, hands its
// token to the client through a Transport (a signed cookie by default) and
// persists it in a Store. MemoryStore keeps sessions in process; RedisStore
// shares them between instances.
//
//	┌────────┐  token  ┌───────────┐        ┌─────────┐
//	│ Client │ ──────► │ Transport │ ─────► │ Manager │ ──► Store (memory, redis)
//	└────────┘         └───────────┘        └─────────┘
//
// The session ID (not the token) is the identifier other components may
// persist or expose; the token is a bearer secret and only travels in the
// transport.
//
//	sess, err := mgr.Ensure(ctx, w, r)
//	if err != nil {
//	    return err
//	}
//	if err := mgr.Attach(ctx, sess, m); err != nil {
//	    return err
//	}
package session
