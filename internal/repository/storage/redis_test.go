package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-console/testing/suite"
)

func TestNewRedisStorage(t *testing.T) {
	t.Run("Connects to a running redis", func(t *testing.T) {
		ctx, st := suite.New(t)

		// When: connecting to the container
		redisStorage, err := NewRedisStorage(ctx, st.Addr())

		// Then: the connection is usable and closes cleanly
		require.NoError(t, err)
		require.NoError(t, redisStorage.Connection.Ping(ctx).Err())
		require.NoError(t, redisStorage.Close())
	})

	t.Run("Fails when nothing listens", func(t *testing.T) {
		// When: connecting to a closed port
		redisStorage, err := NewRedisStorage(context.Background(), "127.0.0.1:1")

		// Then: an error is returned
		require.Error(t, err)
		require.Nil(t, redisStorage)
	})
}
