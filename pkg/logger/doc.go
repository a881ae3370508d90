// Package logger builds *slog.Logger instances for memberauth services.
//
// New returns a logger configured through functional options: output format
// (JSON or text), minimum level, static attributes and context extractors that
// pull request-scoped values such as a request id out of context.Context on
// every record. Attribute helpers (MemberID, SessionID, Event, ...) keep key
// names consistent between the auth core's log observer, the HTTP adapter and
// the daemon.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment(os.Getenv("APP_ENV"), "memberauthd"),
//	    logger.WithContextValue("request_id", requestIDKey{}),
//	)
//	log.InfoContext(ctx, "login succeeded",
//	    logger.MemberID(m.ID),
//	    logger.LoginMode("persistent"),
//	)
//
// Error and Errors return an empty attribute for nil errors so callers can
// pass them unconditionally.
package logger
