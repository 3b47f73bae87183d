// services/battle_history.go
package services

import (
	"context"
	"fmt"

	"pokemon-game-server/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BattleRecorder receives every resolved battle. Failures are logged by
// the caller and never undo the battle.
type BattleRecorder interface {
	RecordBattle(ctx context.Context, sessionID string, outcome models.BattleOutcome, consecutiveLosses int) error
}

// NopBattleRecorder discards everything; used when no database is configured.
type NopBattleRecorder struct{}

func (NopBattleRecorder) RecordBattle(context.Context, string, models.BattleOutcome, int) error {
	return nil
}

// GormBattleRecorder appends battles to the battle_records table.
type GormBattleRecorder struct {
	DB *gorm.DB
}

func NewGormBattleRecorder(db *gorm.DB) *GormBattleRecorder {
	return &GormBattleRecorder{DB: db}
}

// Migrate creates or updates the battle_records table.
func (r *GormBattleRecorder) Migrate() error {
	if err := r.DB.AutoMigrate(&models.BattleRecord{}); err != nil {
		return fmt.Errorf("failed to migrate battle_records: %w", err)
	}
	return nil
}

func (r *GormBattleRecorder) RecordBattle(ctx context.Context, sessionID string, outcome models.BattleOutcome, consecutiveLosses int) error {
	rec := NewBattleRecord(sessionID, outcome, consecutiveLosses)
	if err := r.DB.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("insert battle record: %w", err)
	}
	return nil
}

// RecentBattles returns the latest battles of a session, newest first.
func (r *GormBattleRecorder) RecentBattles(ctx context.Context, sessionID string, limit int) ([]models.BattleRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var records []models.BattleRecord
	err := r.DB.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("query battle records: %w", err)
	}
	return records, nil
}

// NewBattleRecord flattens an outcome into a history row.
func NewBattleRecord(sessionID string, outcome models.BattleOutcome, consecutiveLosses int) models.BattleRecord {
	return models.BattleRecord{
		ID:                 uuid.NewString(),
		SessionID:          sessionID,
		PlayerName:         outcome.Player.Name,
		PlayerEntityID:     outcome.Player.ID,
		PlayerPower:        outcome.PlayerPower,
		PlayerMultiplier:   outcome.PlayerMultiplier,
		OpponentName:       outcome.Opponent.Name,
		OpponentEntityID:   outcome.Opponent.ID,
		OpponentPower:      outcome.OpponentPower,
		OpponentMultiplier: outcome.OpponentMultiplier,
		Result:             string(outcome.Result),
		Score:              outcome.Score,
		ConsecutiveLosses:  consecutiveLosses,
		GameOver:           outcome.GameOver,
	}
}

// BattleHistory is the read side of a recorder that keeps battles.
type BattleHistory interface {
	RecentBattles(ctx context.Context, sessionID string, limit int) ([]models.BattleRecord, error)
}
