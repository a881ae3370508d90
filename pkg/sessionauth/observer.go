package sessionauth

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/memberauth/pkg/logger"
)

// EventKind names a reconciler decision.
type EventKind string

const (
	EventLoginSucceeded    EventKind = "login_succeeded"
	EventLoginFailed       EventKind = "login_failed"
	EventForcedLogout      EventKind = "forced_logout"
	EventConsistencyFailed EventKind = "consistency_failed"
	EventLogout            EventKind = "logout"
	EventAutoLoginRejected EventKind = "auto_login_rejected"
)

// Source names which path produced a login decision.
type Source string

const (
	SourceCredentials Source = "credentials"
	SourceCookies     Source = "cookies"
)

// Event describes one decision. MemberID is the claimed id and may be empty.
type Event struct {
	Kind     EventKind
	MemberID string
	Mode     LoginMode
	Source   Source
	Err      error
}

// Observer receives reconciler events. Implementations must be safe for
// concurrent use and must not block.
type Observer interface {
	Observe(ctx context.Context, e Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ctx context.Context, e Event)

func (f ObserverFunc) Observe(ctx context.Context, e Event) { f(ctx, e) }

// Observers fans an event out to several observers.
type Observers []Observer

func (o Observers) Observe(ctx context.Context, e Event) {
	for _, obs := range o {
		if obs != nil {
			obs.Observe(ctx, e)
		}
	}
}

// LogObserver writes events to a slog.Logger. Failures are logged at warn
// level, everything else at info.
type LogObserver struct {
	log *slog.Logger
}

func NewLogObserver(log *slog.Logger) *LogObserver {
	if log == nil {
		log = slog.Default()
	}
	return &LogObserver{log: log.With(logger.Component("sessionauth"))}
}

func (o *LogObserver) Observe(ctx context.Context, e Event) {
	level := slog.LevelInfo
	switch e.Kind {
	case EventLoginFailed, EventForcedLogout, EventConsistencyFailed, EventAutoLoginRejected:
		level = slog.LevelWarn
	}
	if e.Kind == EventLogout && e.Err != nil {
		level = slog.LevelWarn
	}

	attrs := []slog.Attr{
		logger.Event(string(e.Kind)),
		logger.MemberID(e.MemberID),
		logger.LoginMode(e.Mode.String()),
		logger.Error(e.Err),
	}
	if e.Source != "" {
		attrs = append(attrs, slog.String("source", string(e.Source)))
	}
	o.log.LogAttrs(ctx, level, "auth "+string(e.Kind), attrs...)
}
