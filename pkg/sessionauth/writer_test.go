package sessionauth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/memberauth/pkg/credcookie"
	"github.com/dmitrymomot/memberauth/pkg/member"
	"github.com/dmitrymomot/memberauth/pkg/sessionauth"
)

func TestWriter_Establish(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("persistent", func(t *testing.T) {
		t.Parallel()
		e := newEnv(nil, u1())
		w := sessionauth.NewWriter(e.store, e.binder, clock)

		m, err := w.Establish(ctx, e.exchange, u1(), sessionauth.Persistent)
		require.NoError(t, err)
		require.NotNil(t, m.SessionToken)
		assert.Equal(t, e.sess.Identifier(), *m.SessionToken)
		assert.Equal(t, sessionauth.PersistentExpiry(fixedNow), *m.SessionExpiry)
		assert.Same(t, m, e.sess.Member)

		require.Len(t, e.cookies.writes, 1)
		assert.Equal(t, credcookie.FromMember(u1(), e.sess.Identifier(), true), e.cookies.writes[0].set)
	})

	t.Run("one-time", func(t *testing.T) {
		t.Parallel()
		e := newEnv(nil, u1())
		w := sessionauth.NewWriter(e.store, e.binder, clock)

		m, err := w.Establish(ctx, e.exchange, u1(), sessionauth.OneTime)
		require.NoError(t, err)
		assert.Nil(t, m.SessionToken)
		assert.Nil(t, m.SessionExpiry)
		assert.Equal(t, credcookie.OneTimeMaxAge, e.cookies.writes[0].maxAge)
	})

	t.Run("unknown member", func(t *testing.T) {
		t.Parallel()
		e := newEnv(nil)
		w := sessionauth.NewWriter(e.store, e.binder, clock)

		_, err := w.Establish(ctx, e.exchange, u1(), sessionauth.Persistent)
		assert.ErrorIs(t, err, sessionauth.ErrNotFound)
		assert.ErrorIs(t, err, member.ErrNotFound)
		assert.Empty(t, e.cookies.writes)
	})

	t.Run("attach failure clears cookies", func(t *testing.T) {
		t.Parallel()
		e := newEnv(nil, u1())
		e.binder.attachErr = errors.New("redis down")
		w := sessionauth.NewWriter(e.store, e.binder, clock)

		_, err := w.Establish(ctx, e.exchange, u1(), sessionauth.Persistent)
		assert.ErrorIs(t, err, e.binder.attachErr)
		assert.Len(t, e.cookies.writes, 1)
		assert.Equal(t, 1, e.cookies.clears)
		assert.False(t, e.sess.IsAuthenticated())
	})

	t.Run("requires local session", func(t *testing.T) {
		t.Parallel()
		e := newEnv(nil, u1())
		w := sessionauth.NewWriter(e.store, e.binder, clock)

		_, err := w.Establish(ctx, &sessionauth.Exchange{Writer: e.cookies}, u1(), sessionauth.OneTime)
		assert.ErrorIs(t, err, sessionauth.ErrNoSession)
	})
}
