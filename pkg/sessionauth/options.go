package sessionauth

import (
	"time"

	"github.com/dmitrymomot/memberauth/pkg/password"
)

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithHasher sets the password hasher. Defaults to password.MD5Hasher.
func WithHasher(h password.Hasher) Option {
	return func(r *Reconciler) {
		if h != nil {
			r.hasher = h
		}
	}
}

// WithObserver adds an event observer. It may be given more than once.
func WithObserver(o Observer) Option {
	return func(r *Reconciler) {
		if o != nil {
			r.observers = append(r.observers, o)
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(r *Reconciler) {
		if now != nil {
			r.now = now
		}
	}
}
