package websocket

import (
	"context"
	"errors"
	"fmt"

	"github.com/gorilla/websocket"

	"github.com/punithkrishnakeepudi/tictactoe-backend/internal/ai"
	"github.com/punithkrishnakeepudi/tictactoe-backend/internal/apperror"
	"github.com/punithkrishnakeepudi/tictactoe-backend/internal/entity"
	"github.com/punithkrishnakeepudi/tictactoe-backend/internal/repository"
	"github.com/punithkrishnakeepudi/tictactoe-backend/internal/service"
)

var errPlayerIDMissing = errors.New("player id is missing in payload")

func (that *Server) handleConnect(ctx context.Context, conn *websocket.Conn, payload *Payload) error {
	log := that.logger.With("method", "handleConnect")

	if payload.Player != nil && payload.Player.ID != "" {
		player, err := that.playerService.GetPlayerByID(ctx, payload.Player.ID)
		if err == nil {
			return that.sendResponse(conn, actionConnect, &Payload{Player: player})
		}

		if !errors.Is(err, repository.ErrPlayerNotFound) {
			log.Error("failed to get player", "player", payload.Player.ID, "error", err)
			return that.sendError(conn, actionConnect, "failed to get player")
		}
	}

	player, err := that.playerService.CreatePlayer(ctx, payload.Name)
	if err != nil {
		log.Error("failed to create player", "error", err)
		return that.sendError(conn, actionConnect, "failed to create a new player")
	}

	return that.sendResponse(conn, actionConnect, &Payload{Player: player})
}

func (that *Server) handleNewGame(ctx context.Context, conn *websocket.Conn, payload *Payload) error {
	log := that.logger.With("method", "handleNewGame")

	playerID, err := playerIDFrom(payload)
	if err != nil {
		return that.sendError(conn, actionNewGame, err.Error())
	}

	gameType := payload.Type
	if gameType == "" {
		gameType = entity.PrivateType
	}

	if gameType != entity.PublicType && gameType != entity.PrivateType && gameType != entity.WithBotType {
		return that.sendError(conn, actionNewGame, fmt.Sprintf("unknown game type %q", gameType))
	}

	rawDifficulty := payload.Difficulty
	if rawDifficulty == "" {
		rawDifficulty = that.defaultDifficulty
	}

	difficulty, err := ai.ParseDifficulty(rawDifficulty)
	if err != nil {
		return that.sendError(conn, actionNewGame, err.Error())
	}

	newGame, err := that.gamePlay.GetOrCreateGame(ctx, playerID, gameType, difficulty)
	if err != nil {
		log.Error("failed to create game", "player", playerID, "error", err)
		return that.sendError(conn, actionNewGame, "failed to create game")
	}

	return that.sendResponse(conn, actionNewGame, &Payload{Game: newGame})
}

func (that *Server) handleJoinGame(ctx context.Context, conn *websocket.Conn, payload *Payload) error {
	log := that.logger.With("method", "handleJoinGame")

	playerID, err := playerIDFrom(payload)
	if err != nil {
		return that.sendError(conn, actionJoinGame, err.Error())
	}

	var joinedGame *entity.Game
	if payload.GameID != "" {
		joinedGame, err = that.gamePlay.JoinGameByID(ctx, payload.GameID, playerID)
	} else {
		joinedGame, err = that.gamePlay.JoinWaitingPublicGame(ctx, playerID)
	}

	switch {
	case errors.Is(err, apperror.ErrGameIsFull):
		return that.sendError(conn, actionJoinGame, "game already has two players")
	case errors.Is(err, repository.ErrGameNotFound):
		return that.sendError(conn, actionJoinGame, "game not found")
	case errors.Is(err, repository.ErrNoWaitingPublicGame):
		return that.sendError(conn, actionJoinGame, "no public game is waiting for players")
	case err != nil:
		log.Error("failed to join game", "player", playerID, "error", err)
		return that.sendError(conn, actionJoinGame, "failed to join game")
	}

	return that.sendResponse(conn, actionJoinGame, &Payload{Game: joinedGame})
}

func (that *Server) handleGameTurn(ctx context.Context, conn *websocket.Conn, payload *Payload) error {
	log := that.logger.With("method", "handleGameTurn")

	playerID, err := playerIDFrom(payload)
	if err != nil {
		return that.sendError(conn, actionGameTurn, err.Error())
	}

	if payload.Move == nil {
		return that.sendError(conn, actionGameTurn, "move is missing in payload")
	}

	updatedGame, err := that.gamePlay.MakeTurn(ctx, playerID, *payload.Move)

	// rule violations are recoverable: report them and let the client
	// re-prompt on the unchanged game state
	if isIllegalMove(err) {
		return that.sendResponse(conn, actionGameTurn, &Payload{Game: updatedGame, Error: err.Error()})
	}

	if err != nil {
		log.Error("failed to make turn", "player", playerID, "error", err)
		return that.sendError(conn, actionGameTurn, "failed to make turn")
	}

	return that.sendResponse(conn, actionGameTurn, &Payload{Game: updatedGame})
}

func (that *Server) handleGameRestart(ctx context.Context, conn *websocket.Conn, payload *Payload) error {
	log := that.logger.With("method", "handleGameRestart")

	playerID, err := playerIDFrom(payload)
	if err != nil {
		return that.sendError(conn, actionGameRestart, err.Error())
	}

	restartedGame, err := that.gamePlay.RestartRound(ctx, playerID)
	if errors.Is(err, service.ErrRoundNotFinished) {
		return that.sendError(conn, actionGameRestart, "round is not finished yet")
	}

	if err != nil {
		log.Error("failed to restart round", "player", playerID, "error", err)
		return that.sendError(conn, actionGameRestart, "failed to restart round")
	}

	return that.sendResponse(conn, actionGameRestart, &Payload{Game: restartedGame})
}

func (that *Server) handleGameLeave(ctx context.Context, conn *websocket.Conn, payload *Payload) error {
	log := that.logger.With("method", "handleGameLeave")

	playerID, err := playerIDFrom(payload)
	if err != nil {
		return that.sendError(conn, actionGameLeave, err.Error())
	}

	if err = that.gamePlay.LeaveGame(ctx, playerID); err != nil {
		log.Error("failed to leave game", "player", playerID, "error", err)
		return that.sendError(conn, actionGameLeave, "failed to leave game")
	}

	return that.sendResponse(conn, actionGameLeave, &Payload{})
}

func playerIDFrom(payload *Payload) (string, error) {
	if payload.Player == nil || payload.Player.ID == "" {
		return "", errPlayerIDMissing
	}

	return payload.Player.ID, nil
}

func isIllegalMove(err error) bool {
	return errors.Is(err, apperror.ErrCellOccupied) ||
		errors.Is(err, apperror.ErrNotYourTurn) ||
		errors.Is(err, apperror.ErrInvalidCell) ||
		errors.Is(err, apperror.ErrGameFinished) ||
		errors.Is(err, apperror.ErrGameIsNotStarted)
}
