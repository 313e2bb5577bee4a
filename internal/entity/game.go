package entity

import (
	"errors"
	"fmt"

	"github.com/punithkrishnakeepudi/tictactoe-backend/internal/ai"
	"github.com/punithkrishnakeepudi/tictactoe-backend/internal/apperror"
	"github.com/punithkrishnakeepudi/tictactoe-backend/internal/game"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
	StatusWaiting  = "waiting"

	PlayerTie = "-"
)

const (
	PublicType  = "public"
	PrivateType = "private"
	WithBotType = "bot"
)

var ErrUnknownGameStatus = errors.New("unknown game status")

// Game - one game session: the board plus everything the session layer
// tracks around it (players, round status, per-session scores live on the
// players themselves).
type Game struct {
	ID         string        `json:"id"`
	Board      *game.Board   `json:"board"`
	Winner     string        `json:"winner,omitempty"`
	Status     string        `json:"status"`
	Players    []*Player     `json:"players,omitempty"`
	Type       string        `json:"type,omitempty"`
	Difficulty ai.Difficulty `json:"difficulty,omitempty"`
}

func NewGame(id, gameType string, difficulty ai.Difficulty) *Game {
	return &Game{
		ID:         id,
		Board:      game.NewBoard(),
		Status:     StatusWaiting,
		Type:       gameType,
		Difficulty: difficulty,
	}
}

// MakeTurn - applies one validated placement for the given mark and maps the
// board status onto the session status.
func (that *Game) MakeTurn(mark string, move game.Move) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	status, err := that.Board.Place(move, mark)
	if err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	that.applyBoardStatus(status)

	return nil
}

func (that *Game) applyBoardStatus(status game.Status) {
	switch status.State {
	case game.StateWon:
		that.Winner = status.Winner
		that.Status = StatusFinished
	case game.StateDraw:
		that.Winner = PlayerTie
		that.Status = StatusFinished
	default:
		that.Status = StatusOngoing
	}
}

// RecordResult - updates the session scores of both players from the
// finished round. A no-op while the round is still running.
func (that *Game) RecordResult() {
	if !that.IsFinished() {
		return
	}

	for _, player := range that.Players {
		switch {
		case that.Winner == PlayerTie:
			player.Draws++
		case player.Mark == that.Winner:
			player.Wins++
		default:
			player.Losses++
		}
	}
}

// ResetRound - starts a fresh round on the same session: empty board, X to
// move, scores untouched.
func (that *Game) ResetRound() {
	that.Board.Reset()
	that.Winner = ""

	if len(that.Players) == 2 {
		that.Status = StatusOngoing
	} else {
		that.Status = StatusWaiting
	}
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsWaiting():
		return apperror.ErrGameIsNotStarted
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}

func (that *Game) IsPublic() bool {
	return that.Type == PublicType
}

func (that *Game) IsWithBot() bool {
	return that.Type == WithBotType
}

// BotPlayer - the bot participant of the session, nil for human-vs-human
// games.
func (that *Game) BotPlayer() *Player {
	for _, player := range that.Players {
		if player.IsBot() {
			return player
		}
	}

	return nil
}
