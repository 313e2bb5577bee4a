package websocket

import (
	"encoding/json"

	"github.com/punithkrishnakeepudi/tictactoe-backend/internal/entity"
	"github.com/punithkrishnakeepudi/tictactoe-backend/internal/game"
)

// Message - one client request: an action name plus an action-specific
// payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Payload - the request/response body shared by all actions. Requests fill
// the fields their action needs; responses carry the player and game state
// or an error string.
type Payload struct {
	Player     *entity.Player `json:"player,omitempty"`
	Game       *entity.Game   `json:"game,omitempty"`
	GameID     string         `json:"game_id,omitempty"`
	Name       string         `json:"name,omitempty"`
	Type       string         `json:"type,omitempty"`
	Difficulty string         `json:"difficulty,omitempty"`
	Move       *game.Move     `json:"move,omitempty"`
	Error      string         `json:"error,omitempty"`
}
