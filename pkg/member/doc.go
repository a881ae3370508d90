// Package member defines the member identity record and the store contract
// the session reconciler consumes.
//
// A Store looks members up by id or by the (id, session token) pair and
// updates the persisted session metadata. Stores that can clear a session
// conditionally in a single operation implement ConditionalStore; callers
// should prefer it to a lookup followed by an update.
//
// MemoryStore is a concurrency-safe in-process implementation seeded from a
// YAML fixture with LoadYAML. Database-backed stores live in the pgstore and
// mongostore sub-packages.
package member
