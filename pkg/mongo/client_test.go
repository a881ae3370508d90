package mongo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/memberauth/pkg/mongo"
)

func TestConnect(t *testing.T) {
	t.Parallel()

	t.Run("empty url", func(t *testing.T) {
		t.Parallel()
		_, err := mongo.Connect(context.Background(), mongo.Config{})
		assert.ErrorIs(t, err, mongo.ErrEmptyURL)
		assert.ErrorContains(t, err, "MONGODB_URL")
	})

	t.Run("unreachable", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
		defer cancel()

		_, err := mongo.Connect(ctx, mongo.Config{
			ConnectionURL:  "mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=100",
			ConnectTimeout: 100 * time.Millisecond,
			RetryAttempts:  1,
			RetryInterval:  10 * time.Millisecond,
		})
		assert.ErrorIs(t, err, mongo.ErrConnect)
	})
}
