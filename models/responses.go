// models/responses.go
package models

// Response bodies for the /game routes.

type StartResponse struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type CatchResponse struct {
	Message  string `json:"message"`
	Pokemon  Entity `json:"pokemon"`
	TeamSize int    `json:"team_size"`
}

type TeamResponse struct {
	Team     []Entity `json:"team"`
	TeamSize int      `json:"team_size"`
}

type BattleResponse struct {
	Message         string `json:"message"`
	Result          string `json:"result"`
	Score           int    `json:"score"`
	GameOver        bool   `json:"game_over"`
	SelectedPokemon Entity `json:"selected_pokemon"`
	OpponentPokemon Entity `json:"opponent_pokemon"`
}

type ScoreResponse struct {
	Score    int  `json:"score"`
	GameOver bool `json:"game_over"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}
