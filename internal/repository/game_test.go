package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-console/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
	"github.com/rocketscienceinc/tictactoe-console/testing/suite"
)

type repoFactory func(t *testing.T) (context.Context, GameRepository)

func memoryFactory(t *testing.T) (context.Context, GameRepository) {
	t.Helper()
	return context.Background(), NewMemoryGameRepository()
}

func redisFactory(t *testing.T) (context.Context, GameRepository) {
	t.Helper()
	ctx, st := suite.New(t)
	return ctx, NewGameRepository(st.Storage, time.Minute)
}

func TestGameRepository(t *testing.T) {
	factories := map[string]repoFactory{
		"memory": memoryFactory,
		"redis":  redisFactory,
	}

	for name, newRepo := range factories {
		t.Run(name, func(t *testing.T) {
			testCreateOrUpdate(t, newRepo)
			testGetByID(t, newRepo)
			testDeleteByID(t, newRepo)
		})
	}
}

func testCreateOrUpdate(t *testing.T, newRepo repoFactory) {
	t.Run("CreateOrUpdate", func(t *testing.T) {
		ctx, gameRepo := newRepo(t)

		// Given: a game with one move
		game := entity.NewGame("123")
		require.NoError(t, game.MakeTurn(1, 1))

		// When: CreateOrUpdate is called twice with a move in between
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))
		require.NoError(t, game.MakeTurn(0, 0))
		err := gameRepo.CreateOrUpdate(ctx, game)

		// Then: the latest state is stored
		require.NoError(t, err)

		stored, err := gameRepo.GetByID(ctx, "123")
		require.NoError(t, err)
		assert.Equal(t, game, stored)
	})
}

func testGetByID(t *testing.T, newRepo repoFactory) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx, gameRepo := newRepo(t)

		// Given: a stored game
		game := entity.NewGame("123")
		require.NoError(t, game.MakeTurn(2, 0))
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

		// When: GetByID is called with the existing ID
		retrievedGame, err := gameRepo.GetByID(ctx, game.ID)

		// Then: the retrieved game matches the saved one
		require.NoError(t, err)
		require.Equal(t, game, retrievedGame)
	})

	t.Run("GetByID_ReturnsCopy", func(t *testing.T) {
		ctx, gameRepo := newRepo(t)

		game := entity.NewGame("123")
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

		// When: the retrieved game is mutated without saving
		retrievedGame, err := gameRepo.GetByID(ctx, game.ID)
		require.NoError(t, err)
		require.NoError(t, retrievedGame.MakeTurn(0, 0))

		// Then: the stored game is untouched
		again, err := gameRepo.GetByID(ctx, game.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, again.TurnsPlayed)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, gameRepo := newRepo(t)

		// When: GetByID is called with a non-existent ID
		retrievedGame, err := gameRepo.GetByID(ctx, "9999999")

		// Then: ErrGameNotFound is returned
		require.ErrorIs(t, err, apperror.ErrGameNotFound)
		assert.Nil(t, retrievedGame)
	})
}

func testDeleteByID(t *testing.T, newRepo repoFactory) {
	t.Run("DeleteByID_Success", func(t *testing.T) {
		ctx, gameRepo := newRepo(t)

		// Given: a stored game
		game := entity.NewGame("123")
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

		// When: DeleteByID is called with the existing ID
		err := gameRepo.DeleteByID(ctx, game.ID)

		// Then: no error is returned and the game is gone
		require.NoError(t, err)

		_, err = gameRepo.GetByID(ctx, game.ID)
		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})

	t.Run("DeleteByID_NotFound", func(t *testing.T) {
		ctx, gameRepo := newRepo(t)

		// When: DeleteByID is called with a non-existent ID
		err := gameRepo.DeleteByID(ctx, "9999999")

		// Then: ErrGameNotFound is returned
		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})
}
