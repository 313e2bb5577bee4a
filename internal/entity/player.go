package entity

// Player - a session participant. Name and the win/loss/draw counters are
// session-scoped: they live and die with the player record in storage.
type Player struct {
	ID     string `json:"id"`
	Name   string `json:"name,omitempty"`
	Mark   string `json:"mark,omitempty"`
	GameID string `json:"game_id,omitempty"`
	Bot    bool   `json:"bot,omitempty"`

	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Draws  int `json:"draws"`
}

func (that *Player) IsBot() bool {
	return that.Bot
}
