package sessionauth_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/memberauth/pkg/logger"
	"github.com/dmitrymomot/memberauth/pkg/sessionauth"
)

func TestLogObserver(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithFormat(logger.FormatJSON), logger.WithLevel(slog.LevelDebug))
	obs := sessionauth.NewLogObserver(log)

	obs.Observe(context.Background(), sessionauth.Event{
		Kind:     sessionauth.EventForcedLogout,
		MemberID: "u1",
		Mode:     sessionauth.Persistent,
		Source:   sessionauth.SourceCookies,
		Err:      errors.New("stale"),
	})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "forced_logout", entry["event"])
	assert.Equal(t, "u1", entry["member_id"])
	assert.Equal(t, "persistent", entry["login_mode"])
	assert.Equal(t, "cookies", entry["source"])
	assert.Equal(t, "sessionauth", entry["component"])
	assert.Equal(t, "stale", entry["error"])
}

func TestObservers_FanOut(t *testing.T) {
	t.Parallel()

	a, b := &recorder{}, &recorder{}
	var fn int
	obs := sessionauth.Observers{a, nil, b, sessionauth.ObserverFunc(func(context.Context, sessionauth.Event) { fn++ })}

	obs.Observe(context.Background(), sessionauth.Event{Kind: sessionauth.EventLogout})
	assert.Len(t, a.kinds(), 1)
	assert.Len(t, b.kinds(), 1)
	assert.Equal(t, 1, fn)
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()
	e := newEnv(nil, u1())

	_, err := sessionauth.NewFromConfig(sessionauth.Config{PasswordHasher: "rot13"}, e.store, e.binder)
	assert.Error(t, err)

	rec, err := sessionauth.NewFromConfig(sessionauth.DefaultConfig(), e.store, e.binder)
	require.NoError(t, err)
	_, err = rec.Login(context.Background(), e.exchange, &sessionauth.Credentials{ID: "u1", Password: "pw"})
	assert.NoError(t, err)
}
