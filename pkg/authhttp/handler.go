package authhttp

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/memberauth/pkg/cookie"
	"github.com/dmitrymomot/memberauth/pkg/credcookie"
	"github.com/dmitrymomot/memberauth/pkg/logger"
	"github.com/dmitrymomot/memberauth/pkg/loginthrottle"
	"github.com/dmitrymomot/memberauth/pkg/member"
	"github.com/dmitrymomot/memberauth/pkg/session"
	"github.com/dmitrymomot/memberauth/pkg/sessionauth"
)

// Handler serves the authentication endpoints.
type Handler struct {
	auth     *sessionauth.Reconciler
	sessions *session.Manager
	cookies  *cookie.Manager
	jar      *credcookie.Jar
	throttle *loginthrottle.Limiter
	log      *slog.Logger
}

// Option configures a Handler.
type Option func(*Handler)

func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.log = l
		}
	}
}

// WithThrottle limits POST /login attempts per client address.
func WithThrottle(l *loginthrottle.Limiter) Option {
	return func(h *Handler) { h.throttle = l }
}

func NewHandler(auth *sessionauth.Reconciler, sessions *session.Manager, cookies *cookie.Manager, opts ...Option) *Handler {
	h := &Handler{
		auth:     auth,
		sessions: sessions,
		cookies:  cookies,
		jar:      credcookie.NewJar(cookies),
		log:      logger.Discard(),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.log = h.log.With(logger.Component("authhttp"))
	return h
}

// Routes returns a router with the session middleware and the auth endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(h.sessions.Middleware)
	if h.throttle != nil {
		r.With(loginthrottle.Middleware(h.throttle, loginthrottle.ByRemoteAddr)).Post("/login", h.Login)
	} else {
		r.Post("/login", h.Login)
	}
	r.Post("/logout", h.Logout)
	r.With(h.RequireAutoLogin, RequireMember).Get("/me", h.Me)
	return r
}

// memberView is the public projection of a member.
type memberView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	IsWorker bool   `json:"is_worker"`
	IsAdmin  bool   `json:"is_admin"`
}

type loginView struct {
	Member memberView `json:"member"`
	Mode   string     `json:"mode"`
}

func viewOf(m *member.Member) memberView {
	return memberView{ID: m.ID, Name: m.Name, Phone: m.Phone, IsWorker: m.IsWorker, IsAdmin: m.IsAdmin}
}

// Login handles POST /login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	creds, err := parseCredentials(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	ex, ok := h.exchange(w, r)
	if !ok {
		return
	}
	res, err := h.auth.Login(ctx, ex, creds)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, loginView{Member: viewOf(res.Member), Mode: res.Mode.String()})
}

// Logout handles POST /logout. The client is logged out even when clearing
// the persisted session fails; only store failures answer 500.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ex, ok := h.exchange(w, r)
	if !ok {
		return
	}
	if err := h.auth.Logout(r.Context(), ex); err != nil {
		if !sessionauth.IsAuthFailure(err) {
			h.fail(w, r, err)
			return
		}
		h.log.InfoContext(r.Context(), "logout without persisted session", h.requestAttr(r), logger.Error(err))
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /me.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	m, _ := session.MemberFromContext(r.Context())
	writeData(w, http.StatusOK, viewOf(m))
}

// RequireAutoLogin rejects requests whose persistent cookie claim is no longer
// valid. The rejection clears the credential cookies and detaches the member.
func (h *Handler) RequireAutoLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		err := h.auth.CheckAutoLogin(ctx, credcookie.Read(r, h.cookies))
		switch {
		case err == nil:
			next.ServeHTTP(w, r)
		case errors.Is(err, sessionauth.ErrSessionInvalid):
			h.jar.Clear(w)
			if sess, ok := session.FromContext(ctx); ok {
				if derr := h.sessions.Detach(ctx, sess); derr != nil {
					h.log.ErrorContext(ctx, "detach after rejected auto-login", h.requestAttr(r), logger.Error(derr))
				}
			}
			writeError(w, ErrUnauthorized)
		default:
			h.fail(w, r, err)
		}
	})
}

// RequireMember answers 401 unless the local session carries a member.
func RequireMember(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := session.MemberFromContext(r.Context()); !ok {
			writeError(w, ErrUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// exchange builds the reconciler input from the request, creating the local
// session when the session middleware did not run.
func (h *Handler) exchange(w http.ResponseWriter, r *http.Request) (*sessionauth.Exchange, bool) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		var err error
		if sess, err = h.sessions.Ensure(r.Context(), w, r); err != nil {
			h.fail(w, r, err)
			return nil, false
		}
	}
	return &sessionauth.Exchange{
		Cookies: credcookie.Read(r, h.cookies),
		Session: sess,
		Writer:  h.jar.Bind(w),
	}, true
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	var httpErr HTTPError
	switch {
	case sessionauth.IsAuthFailure(err):
		writeError(w, ErrUnauthorized)
	case errors.As(err, &httpErr):
		writeError(w, httpErr)
	default:
		h.log.ErrorContext(r.Context(), "auth request failed", h.requestAttr(r), logger.Error(err))
		writeError(w, ErrInternal)
	}
}

func (h *Handler) requestAttr(r *http.Request) slog.Attr {
	if id := middleware.GetReqID(r.Context()); id != "" {
		return logger.RequestID(id)
	}
	return slog.Attr{}
}
