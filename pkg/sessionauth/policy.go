package sessionauth

import "time"

// PersistentExpiry returns the expiry stored for a persistent login started
// at now: one calendar year later, in UTC.
func PersistentExpiry(now time.Time) time.Time {
	return now.UTC().AddDate(1, 0, 0)
}

// SessionValid reports whether a persisted session expiry is still in the
// future. A nil expiry is never valid.
func SessionValid(expiry *time.Time, now time.Time) bool {
	return expiry != nil && expiry.UTC().After(now.UTC())
}
