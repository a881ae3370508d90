package mongostore_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/memberauth/pkg/member"
	"github.com/dmitrymomot/memberauth/pkg/member/mongostore"
	"github.com/dmitrymomot/memberauth/pkg/mongo"
)

// Integration tests run only when MEMBERAUTH_TEST_MONGO_URL points at a deployment.
func setupStore(t *testing.T) *mongostore.Store {
	t.Helper()
	url := os.Getenv("MEMBERAUTH_TEST_MONGO_URL")
	if url == "" {
		t.Skip("MEMBERAUTH_TEST_MONGO_URL is not set; skipping MongoDB integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := mongo.ConnectDatabase(ctx, mongo.Config{
		ConnectionURL:  url,
		Database:       "memberauth_test",
		ConnectTimeout: 5 * time.Second,
		MaxPoolSize:    4,
		RetryAttempts:  1,
		RetryInterval:  time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Client().Disconnect(context.Background()) })

	return mongostore.New(db)
}

func TestStore_SessionLifecycle(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	m := &member.Member{ID: "mongo-u1", Name: "Jane", IsAdmin: true}
	require.NoError(t, store.Upsert(ctx, m))
	t.Cleanup(func() { _ = store.Delete(ctx, m.ID) })

	got, err := store.FindByID(ctx, m.ID)
	require.NoError(t, err)
	assert.True(t, got.IsAdmin)
	assert.False(t, got.HasPassword())

	token := "S1"
	expiry := time.Now().AddDate(1, 0, 0).UTC().Truncate(time.Millisecond)
	require.NoError(t, store.UpdateSession(ctx, m.ID, &token, &expiry))

	got, err = store.FindByIDAndSessionToken(ctx, m.ID, token)
	require.NoError(t, err)
	require.NotNil(t, got.SessionExpiry)
	assert.True(t, expiry.Equal(*got.SessionExpiry))

	assert.ErrorIs(t, store.ClearSessionIfToken(ctx, m.ID, "other"), member.ErrNotFound)
	require.NoError(t, store.ClearSessionIfToken(ctx, m.ID, token))

	_, err = store.FindByIDAndSessionToken(ctx, m.ID, token)
	assert.ErrorIs(t, err, member.ErrNotFound)

	assert.ErrorIs(t, store.UpdateSession(ctx, "mongo-missing", nil, nil), member.ErrNotFound)
}
