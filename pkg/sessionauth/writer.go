package sessionauth

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrymomot/memberauth/pkg/credcookie"
	"github.com/dmitrymomot/memberauth/pkg/member"
)

// Writer establishes the session state that follows a successful login.
type Writer struct {
	store  member.Store
	binder SessionBinder
	now    func() time.Time
}

func NewWriter(store member.Store, binder SessionBinder, now func() time.Time) *Writer {
	if now == nil {
		now = time.Now
	}
	return &Writer{store: store, binder: binder, now: now}
}

// Establish records the login of m in mode. The persisted record is updated
// first; cookies are written and the member attached only after that update
// succeeds. If attaching fails the cookies are cleared again.
// The returned member carries the persisted session values.
func (w *Writer) Establish(ctx context.Context, ex *Exchange, m *member.Member, mode LoginMode) (*member.Member, error) {
	if ex == nil || ex.Session == nil {
		return nil, ErrNoSession
	}
	sid := ex.Session.Identifier()

	var (
		token  *string
		expiry *time.Time
		maxAge = credcookie.OneTimeMaxAge
	)
	if mode == Persistent {
		e := PersistentExpiry(w.now())
		token, expiry = &sid, &e
		maxAge = credcookie.PersistentMaxAge
	}

	if err := w.store.UpdateSession(ctx, m.ID, token, expiry); err != nil {
		return nil, mapStoreErr(err, "update persisted session")
	}

	ex.Writer.Write(credcookie.FromMember(m, sid, mode == Persistent), maxAge)

	authed := m.WithSession(token, expiry)
	if err := w.binder.Attach(ctx, ex.Session, authed); err != nil {
		ex.Writer.Clear()
		return nil, fmt.Errorf("attach member to session: %w", err)
	}
	return authed, nil
}
