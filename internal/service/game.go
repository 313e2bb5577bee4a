package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/punithkrishnakeepudi/tictactoe-backend/internal/ai"
	"github.com/punithkrishnakeepudi/tictactoe-backend/internal/entity"
	"github.com/punithkrishnakeepudi/tictactoe-backend/internal/game"
)

const botName = "Bot"

type GameService interface {
	CreateGame(ctx context.Context, player *entity.Player, gameType string, difficulty ai.Difficulty, botMark string) (*entity.Game, error)
	GetGameByID(ctx context.Context, id string) (*entity.Game, error)
	GetWaitingPublicGame(ctx context.Context) (*entity.Game, error)
	UpdateGame(ctx context.Context, game *entity.Game) error
	DeleteGame(ctx context.Context, gameID string) error
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	GetWaitingPublicGame(ctx context.Context) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type gameService struct {
	gameRepo gameRepo
}

func NewGameService(gameRepo gameRepo) GameService {
	return &gameService{
		gameRepo: gameRepo,
	}
}

// CreateGame - creates a game session owned by the given player. For
// human-vs-human games the creator plays X and the session waits for a
// second player; for bot games a bot participant is seated with the
// configured mark and the round starts immediately.
func (that *gameService) CreateGame(ctx context.Context, player *entity.Player, gameType string, difficulty ai.Difficulty, botMark string) (*entity.Game, error) {
	newGame := entity.NewGame(uuid.NewString(), gameType, difficulty)

	player.GameID = newGame.ID
	player.Mark = game.MarkX
	newGame.Players = []*entity.Player{player}

	if newGame.IsWithBot() {
		player.Mark = game.OpponentMark(botMark)

		botPlayer := &entity.Player{
			ID:     uuid.NewString(),
			Name:   botName,
			Mark:   botMark,
			GameID: newGame.ID,
			Bot:    true,
		}
		newGame.Players = append(newGame.Players, botPlayer)
		newGame.Status = entity.StatusOngoing
	}

	if err := that.gameRepo.CreateOrUpdate(ctx, newGame); err != nil {
		return nil, fmt.Errorf("failed to create game in storage: %w", err)
	}

	return newGame, nil
}

func (that *gameService) GetGameByID(ctx context.Context, id string) (*entity.Game, error) {
	existingGame, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve game from storage: %w", err)
	}

	return existingGame, nil
}

func (that *gameService) GetWaitingPublicGame(ctx context.Context) (*entity.Game, error) {
	existingGame, err := that.gameRepo.GetWaitingPublicGame(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve waiting public game from storage: %w", err)
	}

	return existingGame, nil
}

func (that *gameService) UpdateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}

func (that *gameService) DeleteGame(ctx context.Context, gameID string) error {
	if err := that.gameRepo.DeleteByID(ctx, gameID); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	return nil
}
