package service

import (
	"errors"
	"fmt"

	"github.com/punithkrishnakeepudi/tictactoe-backend/internal/ai"
	"github.com/punithkrishnakeepudi/tictactoe-backend/internal/entity"
)

var ErrBotNotFound = errors.New("bot player not found")

type BotService interface {
	MakeTurn(game *entity.Game) error
}

type botService struct {
	selector *ai.Selector
}

func NewBotService(selector *ai.Selector) BotService {
	return &botService{
		selector: selector,
	}
}

// MakeTurn - asks the strategy selector for one move at the game's
// difficulty and plays it for the bot participant.
func (that *botService) MakeTurn(game *entity.Game) error {
	botPlayer := game.BotPlayer()
	if botPlayer == nil {
		return ErrBotNotFound
	}

	move, err := that.selector.ChooseMove(game.Board, game.Difficulty, botPlayer.Mark)
	if err != nil {
		return fmt.Errorf("bot failed to choose move: %w", err)
	}

	if err = game.MakeTurn(botPlayer.Mark, move); err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	return nil
}
