package sessionauth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrymomot/memberauth/pkg/credcookie"
	"github.com/dmitrymomot/memberauth/pkg/member"
	"github.com/dmitrymomot/memberauth/pkg/password"
)

// Reconciler implements the login, logout and auto-login transitions.
// It holds no per-request state and is safe for concurrent use.
type Reconciler struct {
	store     member.Store
	binder    SessionBinder
	hasher    password.Hasher
	writer    *Writer
	observers Observers
	now       func() time.Time
}

// New creates a Reconciler over the member store and the local session binder.
func New(store member.Store, binder SessionBinder, opts ...Option) *Reconciler {
	r := &Reconciler{
		store:  store,
		binder: binder,
		hasher: password.MD5Hasher{},
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.writer = NewWriter(store, binder, r.now)
	return r
}

// Login authenticates the client. With an incomplete cookie set creds are
// verified; with a complete set the cookies are trusted, subject to the
// consistency check for persistent logins.
func (r *Reconciler) Login(ctx context.Context, ex *Exchange, creds *Credentials) (*Result, error) {
	if ex == nil || ex.Session == nil {
		return nil, ErrNoSession
	}

	var (
		m    *member.Member
		mode LoginMode
		src  Source
		err  error
	)
	if ex.Cookies.IsComplete() {
		src = SourceCookies
		m, mode, err = r.resolveFromCookies(ctx, ex)
	} else {
		src = SourceCredentials
		m, mode, err = r.resolveFromCredentials(ctx, creds)
	}
	if err == nil {
		m, err = r.writer.Establish(ctx, ex, m, mode)
	}
	if err != nil {
		r.emit(ctx, Event{Kind: EventLoginFailed, MemberID: claimedID(ex, creds, src), Mode: mode, Source: src, Err: err})
		return nil, err
	}

	r.emit(ctx, Event{Kind: EventLoginSucceeded, MemberID: m.ID, Mode: mode, Source: src})
	return &Result{Member: m, Mode: mode}, nil
}

func (r *Reconciler) resolveFromCredentials(ctx context.Context, creds *Credentials) (*member.Member, LoginMode, error) {
	if creds == nil || creds.ID == "" {
		return nil, OneTime, ErrCredentialsRequired
	}
	mode := ModeFor(creds.Persistent)

	m, err := r.findByID(ctx, creds.ID)
	if err != nil {
		return nil, mode, err
	}
	if m.HasPassword() {
		if err := r.hasher.Compare(*m.PasswordHash, creds.Password); err != nil {
			return nil, mode, ErrInvalidCredentials
		}
	}
	return m, mode, nil
}

func (r *Reconciler) resolveFromCookies(ctx context.Context, ex *Exchange) (*member.Member, LoginMode, error) {
	mode := ModeFor(ex.Cookies.Persistent())

	m, err := r.findByID(ctx, ex.Cookies.ID.Value)
	if err != nil {
		return nil, mode, err
	}
	if mode == Persistent {
		ok, err := r.IsSessionConsistent(ctx, ex.Cookies)
		if err != nil && !errors.Is(err, ErrMalformedCookie) {
			return nil, mode, err
		}
		if !ok {
			return nil, mode, r.forceLogout(ctx, ex, errors.Join(ErrSessionInvalid, err))
		}
	}
	return m, mode, nil
}

// Logout ends the client's authentication. For a complete persistent cookie
// set the persisted session is cleared first; if that fails the error is
// returned, but cookies are cleared and the local session detached regardless.
func (r *Reconciler) Logout(ctx context.Context, ex *Exchange) error {
	if ex == nil {
		return ErrNoSession
	}

	var errs []error
	mode := ModeFor(ex.Cookies.Persistent())
	if ex.Cookies.IsComplete() && mode == Persistent {
		if err := r.clearPersisted(ctx, ex.Cookies); err != nil {
			errs = append(errs, err)
		}
	}

	ex.Writer.Clear()
	if err := r.binder.Detach(ctx, ex.Session); err != nil {
		errs = append(errs, fmt.Errorf("detach member from session: %w", err))
	}

	err := errors.Join(errs...)
	r.emit(ctx, Event{Kind: EventLogout, MemberID: ex.Cookies.ID.Value, Mode: mode, Source: SourceCookies, Err: err})
	return err
}

func (r *Reconciler) clearPersisted(ctx context.Context, cookies credcookie.Set) error {
	id, token, err := sessionClaim(cookies)
	if err != nil {
		return err
	}

	if cs, ok := r.store.(member.ConditionalStore); ok {
		return mapStoreErr(cs.ClearSessionIfToken(ctx, id, token), "clear persisted session")
	}

	m, err := r.store.FindByIDAndSessionToken(ctx, id, token)
	if err != nil {
		return mapStoreErr(err, "find member by session")
	}
	return mapStoreErr(r.store.UpdateSession(ctx, m.ID, nil, nil), "clear persisted session")
}

// CheckAutoLogin is the gate for ordinary requests. When the cookies claim a
// persistent login the claim must be consistent, else ErrSessionInvalid is
// returned. It never modifies any state; forcing the logout is up to the caller.
func (r *Reconciler) CheckAutoLogin(ctx context.Context, cookies credcookie.Set) error {
	if !cookies.Persistent() {
		return nil
	}

	ok, err := r.IsSessionConsistent(ctx, cookies)
	switch {
	case errors.Is(err, ErrMalformedCookie):
		err = errors.Join(ErrSessionInvalid, err)
	case err != nil:
		return err
	case !ok:
		err = ErrSessionInvalid
	default:
		return nil
	}
	r.emit(ctx, Event{Kind: EventAutoLoginRejected, MemberID: cookies.ID.Value, Mode: Persistent, Source: SourceCookies, Err: err})
	return err
}

// IsSessionConsistent reports whether the cookie's (id, sessionId) pair
// matches a member's persisted session that has not expired. A missing or
// empty id or sessionId returns false with ErrMalformedCookie. Store failures
// other than not found are returned.
func (r *Reconciler) IsSessionConsistent(ctx context.Context, cookies credcookie.Set) (bool, error) {
	id, token, err := sessionClaim(cookies)
	if err != nil {
		r.emit(ctx, Event{Kind: EventConsistencyFailed, MemberID: id, Mode: Persistent, Source: SourceCookies, Err: err})
		return false, err
	}

	m, err := r.store.FindByIDAndSessionToken(ctx, id, token)
	if errors.Is(err, member.ErrNotFound) {
		r.emit(ctx, Event{Kind: EventConsistencyFailed, MemberID: id, Mode: Persistent, Source: SourceCookies, Err: ErrNotFound})
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("find member by session: %w", err)
	}

	if !SessionValid(m.SessionExpiry, r.now()) {
		r.emit(ctx, Event{Kind: EventConsistencyFailed, MemberID: id, Mode: Persistent, Source: SourceCookies, Err: ErrSessionInvalid})
		return false, nil
	}
	return true, nil
}

// forceLogout clears cookies and detaches the local session, returning cause
// joined with any detach failure.
func (r *Reconciler) forceLogout(ctx context.Context, ex *Exchange, cause error) error {
	ex.Writer.Clear()
	err := cause
	if derr := r.binder.Detach(ctx, ex.Session); derr != nil {
		err = errors.Join(cause, fmt.Errorf("detach member from session: %w", derr))
	}
	r.emit(ctx, Event{Kind: EventForcedLogout, MemberID: ex.Cookies.ID.Value, Mode: Persistent, Source: SourceCookies, Err: err})
	return err
}

func (r *Reconciler) findByID(ctx context.Context, id string) (*member.Member, error) {
	m, err := r.store.FindByID(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err, "find member")
	}
	return m, nil
}

func (r *Reconciler) emit(ctx context.Context, e Event) {
	r.observers.Observe(ctx, e)
}

func sessionClaim(cookies credcookie.Set) (id, token string, err error) {
	id, ok := cookies.ID.Get()
	if !ok || id == "" {
		return "", "", fmt.Errorf("%w: id cookie is empty", ErrMalformedCookie)
	}
	token, ok = cookies.SessionID.Get()
	if !ok || token == "" {
		return id, "", fmt.Errorf("%w: sessionId cookie is empty", ErrMalformedCookie)
	}
	return id, token, nil
}

// mapStoreErr translates member.ErrNotFound to ErrNotFound, keeping the
// store error in the chain. Other errors are wrapped with op.
func mapStoreErr(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, member.ErrNotFound):
		return errors.Join(ErrNotFound, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func claimedID(ex *Exchange, creds *Credentials, src Source) string {
	if src == SourceCookies {
		return ex.Cookies.ID.Value
	}
	if creds != nil {
		return creds.ID
	}
	return ""
}
