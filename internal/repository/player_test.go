package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/punithkrishnakeepudi/tictactoe-backend/internal/entity"
	"github.com/punithkrishnakeepudi/tictactoe-backend/internal/game"
	"github.com/punithkrishnakeepudi/tictactoe-backend/testing/suite"
)

func TestPlayerRepository_CreateOrUpdate(t *testing.T) {
	ctx, st := suite.New(t)

	playerRepo := NewPlayerRepository(st.RedisStorage)

	// Given: a player with a name and mark
	player := &entity.Player{
		ID:   "123",
		Name: "Alice",
		Mark: game.MarkX,
	}

	// When: CreateOrUpdate is called
	err := playerRepo.CreateOrUpdate(ctx, player)

	// Then: no error should be returned
	require.NoError(t, err)
}

func TestPlayerRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		playerRepo := NewPlayerRepository(st.RedisStorage)

		// Given: a stored player with session scores
		player := &entity.Player{
			ID:     "123",
			Name:   "Alice",
			Mark:   game.MarkX,
			GameID: "game-1",
			Wins:   2,
			Draws:  1,
		}
		require.NoError(t, playerRepo.CreateOrUpdate(ctx, player))

		// When: GetByID is called with the existing ID
		retrievedPlayer, err := playerRepo.GetByID(ctx, player.ID)

		// Then: the round-tripped player matches, scores included
		require.NoError(t, err)
		assert.Equal(t, player, retrievedPlayer)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		playerRepo := NewPlayerRepository(st.RedisStorage)

		// When: GetByID is called with an unknown ID
		_, err := playerRepo.GetByID(ctx, "9999999")

		// Then: ErrPlayerNotFound is returned
		assert.ErrorIs(t, err, ErrPlayerNotFound)
	})
}

func TestPlayerRepository_DeleteByID(t *testing.T) {
	ctx, st := suite.New(t)

	playerRepo := NewPlayerRepository(st.RedisStorage)

	// Given: a stored player
	player := &entity.Player{ID: "123", Name: "Alice"}
	require.NoError(t, playerRepo.CreateOrUpdate(ctx, player))

	// When: deleting it
	err := playerRepo.DeleteByID(ctx, player.ID)

	// Then: it is gone
	require.NoError(t, err)
	_, err = playerRepo.GetByID(ctx, player.ID)
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}
