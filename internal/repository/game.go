package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/punithkrishnakeepudi/tictactoe-backend/internal/entity"
)

var (
	ErrGameNotFound          = errors.New("game not found")
	ErrNoWaitingPublicGame   = errors.New("no waiting public game")
	errUnexpectedGamePayload = errors.New("unexpected game payload")
)

const gameKeyPrefix = "game:"

type GameRepository interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	GetWaitingPublicGame(ctx context.Context) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type dbGame struct {
	client *redis.Client
}

func NewGameRepository(client *redis.Client) GameRepository {
	return &dbGame{
		client: client,
	}
}

func (that *dbGame) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	gameJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	gameKey := gameKeyPrefix + game.ID
	if err = that.client.Set(ctx, gameKey, gameJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to set game: %w", err)
	}

	return nil
}

func (that *dbGame) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	gameKey := gameKeyPrefix + id

	response, err := that.client.Get(ctx, gameKey).Result()

	if errors.Is(err, redis.Nil) {
		return &entity.Game{}, ErrGameNotFound
	}

	if err != nil {
		return &entity.Game{}, fmt.Errorf("failed to get game by id: %w", err)
	}

	var existingGame entity.Game
	if err = json.Unmarshal([]byte(response), &existingGame); err != nil {
		return &entity.Game{}, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &existingGame, nil
}

// GetWaitingPublicGame - scans stored games for a public one that is still
// waiting for a second player.
func (that *dbGame) GetWaitingPublicGame(ctx context.Context) (*entity.Game, error) {
	var cursor uint64

	for {
		keys, nextCursor, err := that.client.Scan(ctx, cursor, gameKeyPrefix+"*", 50).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to scan games: %w", err)
		}

		for _, key := range keys {
			response, err := that.client.Get(ctx, key).Result()
			if errors.Is(err, redis.Nil) {
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("failed to get game by key %s: %w", key, err)
			}

			var existingGame entity.Game
			if err = json.Unmarshal([]byte(response), &existingGame); err != nil {
				return nil, fmt.Errorf("%w: %s", errUnexpectedGamePayload, key)
			}

			if existingGame.IsPublic() && existingGame.IsWaiting() {
				return &existingGame, nil
			}
		}

		cursor = nextCursor
		if cursor == 0 {
			return nil, ErrNoWaitingPublicGame
		}
	}
}

func (that *dbGame) DeleteByID(ctx context.Context, id string) error {
	gameKey := gameKeyPrefix + id

	if err := that.client.Del(ctx, gameKey).Err(); err != nil {
		return fmt.Errorf("failed to delete game by ID: %w", err)
	}

	return nil
}
