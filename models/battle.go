// models/battle.go
package models

import "time"

type BattleResult string

const (
	BattleWon  BattleResult = "won"
	BattleLost BattleResult = "lost"
)

// BattleOutcome is what the engine returns after resolving a battle.
type BattleOutcome struct {
	Result             BattleResult `json:"result"`
	Score              int          `json:"score"`
	GameOver           bool         `json:"game_over"`
	Player             Entity       `json:"selected_pokemon"`
	Opponent           Entity       `json:"opponent_pokemon"`
	PlayerPower        int          `json:"player_power"`
	OpponentPower      int          `json:"opponent_power"`
	PlayerMultiplier   float64      `json:"player_multiplier"`
	OpponentMultiplier float64      `json:"opponent_multiplier"`
}

// BattleRecord is one row of the optional battle history table.
type BattleRecord struct {
	ID                 string    `gorm:"primaryKey;type:uuid" json:"id"`
	SessionID          string    `gorm:"index;not null" json:"session_id"`
	PlayerName         string    `gorm:"not null" json:"player_name"`
	PlayerEntityID     int       `json:"player_entity_id"`
	PlayerPower        int       `json:"player_power"`
	PlayerMultiplier   float64   `json:"player_multiplier"`
	OpponentName       string    `gorm:"not null" json:"opponent_name"`
	OpponentEntityID   int       `json:"opponent_entity_id"`
	OpponentPower      int       `json:"opponent_power"`
	OpponentMultiplier float64   `json:"opponent_multiplier"`
	Result             string    `gorm:"type:varchar(8);check:result IN ('won','lost')" json:"result"`
	Score              int       `json:"score"`
	ConsecutiveLosses  int       `json:"consecutive_losses"`
	GameOver           bool      `json:"game_over"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
}
