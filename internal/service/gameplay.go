package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/punithkrishnakeepudi/tictactoe-backend/internal/ai"
	"github.com/punithkrishnakeepudi/tictactoe-backend/internal/apperror"
	"github.com/punithkrishnakeepudi/tictactoe-backend/internal/entity"
	"github.com/punithkrishnakeepudi/tictactoe-backend/internal/game"
)

var (
	ErrRoundNotFinished = errors.New("round is not finished yet")
	ErrPlayerNotInGame  = errors.New("player is not part of this game")
)

type GamePlayService interface {
	GetOrCreateGame(ctx context.Context, playerID, gameType string, difficulty ai.Difficulty) (*entity.Game, error)
	JoinGameByID(ctx context.Context, gameID, playerID string) (*entity.Game, error)
	JoinWaitingPublicGame(ctx context.Context, playerID string) (*entity.Game, error)

	MakeTurn(ctx context.Context, playerID string, move game.Move) (*entity.Game, error)
	RestartRound(ctx context.Context, playerID string) (*entity.Game, error)
	LeaveGame(ctx context.Context, playerID string) error
}

type gamePlayService struct {
	logger *slog.Logger

	playerService PlayerService
	gameService   GameService
	botService    BotService

	botMark string
}

func NewGamePlayService(logger *slog.Logger, playerService PlayerService, gameService GameService, botService BotService, botMark string) GamePlayService {
	return &gamePlayService{
		logger:        logger.With("component", "gameplay"),
		playerService: playerService,
		gameService:   gameService,
		botService:    botService,
		botMark:       botMark,
	}
}

func (that *gamePlayService) GetOrCreateGame(ctx context.Context, playerID, gameType string, difficulty ai.Difficulty) (*entity.Game, error) {
	player, err := that.playerService.GetPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	if player.GameID != "" {
		existingGame, err := that.gameService.GetGameByID(ctx, player.GameID)
		if err != nil {
			return nil, fmt.Errorf("failed to get game by id: %w", err)
		}

		return existingGame, nil
	}

	newGame, err := that.gameService.CreateGame(ctx, player, gameType, difficulty, that.botMark)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	// the bot opens the round when it holds the X mark
	if newGame.IsWithBot() && newGame.Board.Turn == that.botMark {
		if err = that.botService.MakeTurn(newGame); err != nil {
			return nil, fmt.Errorf("bot failed to open the round: %w", err)
		}

		if err = that.gameService.UpdateGame(ctx, newGame); err != nil {
			return nil, fmt.Errorf("failed to update game: %w", err)
		}
	}

	if err = that.playerService.UpdatePlayer(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to update player: %w", err)
	}

	return newGame, nil
}

func (that *gamePlayService) JoinGameByID(ctx context.Context, gameID, playerID string) (*entity.Game, error) {
	existingGame, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	return that.seatSecondPlayer(ctx, existingGame, playerID)
}

func (that *gamePlayService) JoinWaitingPublicGame(ctx context.Context, playerID string) (*entity.Game, error) {
	existingGame, err := that.gameService.GetWaitingPublicGame(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get waiting public game: %w", err)
	}

	return that.seatSecondPlayer(ctx, existingGame, playerID)
}

func (that *gamePlayService) seatSecondPlayer(ctx context.Context, existingGame *entity.Game, playerID string) (*entity.Game, error) {
	player, err := that.playerService.GetPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	if player.GameID == existingGame.ID {
		return existingGame, nil
	}

	if len(existingGame.Players) >= 2 {
		return nil, fmt.Errorf("%w: game id %s", apperror.ErrGameIsFull, existingGame.ID)
	}

	player.GameID = existingGame.ID
	player.Mark = game.MarkO
	if err = that.playerService.UpdatePlayer(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to update player: %w", err)
	}

	existingGame.Status = entity.StatusOngoing
	existingGame.Players = append(existingGame.Players, player)
	if err = that.gameService.UpdateGame(ctx, existingGame); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	return existingGame, nil
}

// MakeTurn - applies the player's move and, in a bot game, the bot's reply.
// When the round finishes the session scores are recorded and persisted.
func (that *gamePlayService) MakeTurn(ctx context.Context, playerID string, move game.Move) (*entity.Game, error) {
	existingGame, participant, err := that.findParticipant(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if err = existingGame.ConfirmOngoingState(); err != nil {
		return existingGame, err
	}

	if err = existingGame.MakeTurn(participant.Mark, move); err != nil {
		return existingGame, fmt.Errorf("failed to make turn: %w", err)
	}

	if existingGame.IsOngoing() && existingGame.IsWithBot() {
		if err = that.botService.MakeTurn(existingGame); err != nil {
			return nil, fmt.Errorf("bot failed to make turn: %w", err)
		}
	}

	if existingGame.IsFinished() {
		existingGame.RecordResult()
		that.persistScores(ctx, existingGame)
	}

	if err = that.gameService.UpdateGame(ctx, existingGame); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	return existingGame, nil
}

// RestartRound - starts a new round on a finished session. The board is
// cleared, the marks and scores stay.
func (that *gamePlayService) RestartRound(ctx context.Context, playerID string) (*entity.Game, error) {
	existingGame, _, err := that.findParticipant(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if !existingGame.IsFinished() {
		return existingGame, ErrRoundNotFinished
	}

	existingGame.ResetRound()

	if existingGame.IsWithBot() && existingGame.Board.Turn == that.botMark {
		if err = that.botService.MakeTurn(existingGame); err != nil {
			return nil, fmt.Errorf("bot failed to open the round: %w", err)
		}
	}

	if err = that.gameService.UpdateGame(ctx, existingGame); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	return existingGame, nil
}

// LeaveGame - ends the session: the game record is deleted and every human
// participant is detached with their session scores cleared.
func (that *gamePlayService) LeaveGame(ctx context.Context, playerID string) error {
	existingGame, _, err := that.findParticipant(ctx, playerID)
	if err != nil {
		return err
	}

	if err = that.gameService.DeleteGame(ctx, existingGame.ID); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	for _, participant := range existingGame.Players {
		if participant.IsBot() {
			continue
		}

		participant.GameID = ""
		participant.Mark = ""
		participant.Wins, participant.Losses, participant.Draws = 0, 0, 0

		if err = that.playerService.UpdatePlayer(ctx, participant); err != nil {
			return fmt.Errorf("failed to detach player %s: %w", participant.ID, err)
		}
	}

	return nil
}

func (that *gamePlayService) findParticipant(ctx context.Context, playerID string) (*entity.Game, *entity.Player, error) {
	player, err := that.playerService.GetPlayerByID(ctx, playerID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	existingGame, err := that.gameService.GetGameByID(ctx, player.GameID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	for _, participant := range existingGame.Players {
		if participant.ID == playerID {
			return existingGame, participant, nil
		}
	}

	return nil, nil, fmt.Errorf("%w: player id %s", ErrPlayerNotInGame, playerID)
}

func (that *gamePlayService) persistScores(ctx context.Context, finishedGame *entity.Game) {
	for _, participant := range finishedGame.Players {
		if participant.IsBot() {
			continue
		}

		if err := that.playerService.UpdatePlayer(ctx, participant); err != nil {
			that.logger.Error("failed to persist player score", "player", participant.ID, "error", err)
		}
	}
}
