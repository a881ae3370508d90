package member

import (
	"context"
	"time"
)

// Store is the persistence contract used by the session reconciler.
type Store interface {
	// FindByID returns the member with the given id or ErrNotFound.
	FindByID(ctx context.Context, id string) (*Member, error)

	// FindByIDAndSessionToken returns the member whose id and current
	// session token both match, or ErrNotFound.
	FindByIDAndSessionToken(ctx context.Context, id, token string) (*Member, error)

	// UpdateSession overwrites the persisted session metadata. Nil values
	// clear the session.
	UpdateSession(ctx context.Context, id string, token *string, expiry *time.Time) error
}

// ConditionalStore is implemented by stores that can clear a session only
// when the persisted token still equals token, as a single operation.
type ConditionalStore interface {
	Store

	// ClearSessionIfToken clears token and expiry for id when the current
	// token equals token. It returns ErrNotFound when nothing matched.
	ClearSessionIfToken(ctx context.Context, id, token string) error
}
