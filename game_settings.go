package main

type PlayerType int

const (
	PlayerHuman PlayerType = iota
	PlayerAI
)

type GameSettings struct {
	BoardWidth  int        `json:"board_width"`
	BoardHeight int        `json:"board_height"`
	Player1Type PlayerType `json:"-"`
	Player2Type PlayerType `json:"-"`
	FirstPlayer PlayerID   `json:"first_player"`
	TurnTimeMs  int        `json:"turn_time_ms"`
}

func DefaultGameSettings() GameSettings {
	config := GetConfig()
	return GameSettings{
		BoardWidth:  config.BoardWidth,
		BoardHeight: config.BoardHeight,
		Player1Type: PlayerHuman,
		Player2Type: PlayerAI,
		FirstPlayer: Player1,
		TurnTimeMs:  config.TurnTimeMs,
	}
}
