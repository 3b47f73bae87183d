package services

import (
	"context"
	"testing"
	"time"

	"pokemon-game-server/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestNewBattleRecord(t *testing.T) {
	outcome := models.BattleOutcome{
		Result:             models.BattleLost,
		Score:              2,
		GameOver:           true,
		Player:             pokemon("psyduck", 54, 50, 52),
		Opponent:           pokemon("mew", 151, 100, 100),
		PlayerPower:        102,
		OpponentPower:      200,
		PlayerMultiplier:   1.1,
		OpponentMultiplier: 0.9,
	}

	rec := NewBattleRecord("session-1", outcome, 3)
	if rec.ID == "" {
		t.Error("expected generated id")
	}
	if rec.SessionID != "session-1" || rec.Result != "lost" || rec.Score != 2 || !rec.GameOver || rec.ConsecutiveLosses != 3 {
		t.Errorf("unexpected record %+v", rec)
	}
	if rec.PlayerName != "psyduck" || rec.PlayerEntityID != 54 || rec.OpponentName != "mew" || rec.OpponentEntityID != 151 {
		t.Errorf("unexpected combatants %+v", rec)
	}
	if rec.PlayerPower != 102 || rec.OpponentPower != 200 || rec.PlayerMultiplier != 1.1 || rec.OpponentMultiplier != 0.9 {
		t.Errorf("unexpected powers %+v", rec)
	}

	if other := NewBattleRecord("session-1", outcome, 3); other.ID == rec.ID {
		t.Error("records must get distinct ids")
	}
}

func TestNopBattleRecorder(t *testing.T) {
	var r BattleRecorder = NopBattleRecorder{}
	if err := r.RecordBattle(context.Background(), "s", models.BattleOutcome{}, 0); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

// newTestRecorder opens a migrated in-memory database. Timestamps advance
// one second per insert so newest-first ordering is deterministic.
func newTestRecorder(t *testing.T) *GormBattleRecorder {
	t.Helper()
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			clock = clock.Add(time.Second)
			return clock
		},
	})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatal(err)
	}
	// every pooled connection would otherwise get its own empty database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	rec := NewGormBattleRecorder(db)
	if err := rec.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return rec
}

func battleWith(opponent string, result models.BattleResult, score int) models.BattleOutcome {
	return models.BattleOutcome{
		Result:   result,
		Score:    score,
		Player:   pokemon("pikachu", 25, 35, 55, 40, 50, 50, 90),
		Opponent: pokemon(opponent, 1, 45, 49, 49, 65, 65, 45),
	}
}

func TestGormRecorderNewestFirstPerSession(t *testing.T) {
	rec := newTestRecorder(t)
	ctx := context.Background()

	if err := rec.RecordBattle(ctx, "a", battleWith("bulbasaur", models.BattleWon, 1), 0); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := rec.RecordBattle(ctx, "b", battleWith("onix", models.BattleLost, 0), 1); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := rec.RecordBattle(ctx, "a", battleWith("charmander", models.BattleLost, 0), 1); err != nil {
		t.Fatalf("record: %v", err)
	}

	got, err := rec.RecentBattles(ctx, "a", 10)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 battles for session a, got %d", len(got))
	}
	if got[0].OpponentName != "charmander" || got[1].OpponentName != "bulbasaur" {
		t.Errorf("expected newest first, got %s then %s", got[0].OpponentName, got[1].OpponentName)
	}
	if !got[0].CreatedAt.After(got[1].CreatedAt) {
		t.Errorf("expected descending created_at, got %v then %v", got[0].CreatedAt, got[1].CreatedAt)
	}
	if got[0].Result != "lost" || got[0].ConsecutiveLosses != 1 || got[0].PlayerPower != 320 {
		t.Errorf("unexpected row %+v", got[0])
	}

	other, err := rec.RecentBattles(ctx, "b", 10)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(other) != 1 || other[0].OpponentName != "onix" {
		t.Errorf("unexpected battles for session b: %+v", other)
	}

	none, err := rec.RecentBattles(ctx, "missing", 10)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no battles, got %d", len(none))
	}
}

func TestGormRecorderLimit(t *testing.T) {
	rec := newTestRecorder(t)
	ctx := context.Background()
	for i := 0; i < 25; i++ {
		if err := rec.RecordBattle(ctx, "a", battleWith("rattata", models.BattleWon, i+1), 0); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}

	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"explicit", 3, 3},
		{"zero falls back", 0, 20},
		{"negative falls back", -5, 20},
		{"above max falls back", 101, 20},
		{"max", 100, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := rec.RecentBattles(ctx, "a", tt.limit)
			if err != nil {
				t.Fatalf("query: %v", err)
			}
			if len(got) != tt.want {
				t.Fatalf("limit %d: expected %d rows, got %d", tt.limit, tt.want, len(got))
			}
			if got[0].Score != 25 {
				t.Errorf("expected latest battle first, got score %d", got[0].Score)
			}
		})
	}
}

func TestGormRecorderRejectsUnknownResult(t *testing.T) {
	rec := newTestRecorder(t)
	bad := NewBattleRecord("a", battleWith("ditto", models.BattleResult("draw"), 0), 0)
	if err := rec.DB.Create(&bad).Error; err == nil {
		t.Fatal("expected the result check constraint to reject a draw")
	}
}
