package services

import (
	"context"
	"log"

	"pokemon-game-server/models"
)

const (
	BattleMultiplierMin = 0.8
	BattleMultiplierMax = 1.2
)

// GameService runs the catch/battle game on top of a SessionStore.
// Upstream fetches happen outside the per-session lock, so a slow catalog
// only stalls the operation that is waiting on it.
type GameService struct {
	Store   *SessionStore
	Fetcher EntityFetcher
	Rand    RandomSource
	History BattleRecorder
}

func NewGameService(store *SessionStore, fetcher EntityFetcher, rng RandomSource, history BattleRecorder) *GameService {
	if history == nil {
		history = NopBattleRecorder{}
	}
	return &GameService{
		Store:   store,
		Fetcher: fetcher,
		Rand:    rng,
		History: history,
	}
}

// StartSession creates an empty session and returns its id.
func (s *GameService) StartSession() string {
	id := s.Store.Create()
	log.Printf("[GAME] 🎮 Session %s started", id)
	return id
}

// Catch adds a random pokemon to the session's team and returns it with
// the new team size. The team-full check happens before any fetch, and a
// failed fetch leaves the team unchanged. A catch that finds every free
// slot reserved by in-flight catches waits for them instead of failing.
func (s *GameService) Catch(ctx context.Context, sessionID string) (models.Entity, int, error) {
	entry, err := s.Store.get(sessionID)
	if err != nil {
		return models.Entity{}, 0, err
	}

	entry.mu.Lock()
	// Only a full roster rejects. While in-flight catches hold the remaining
	// slots, wait for them to settle since any of them may still fail.
	for !entry.ended && !entry.state.TeamFull() &&
		len(entry.state.Roster)+entry.pending >= models.MaxTeamSize {
		entry.settled.Wait()
	}
	if entry.ended {
		entry.mu.Unlock()
		return models.Entity{}, 0, ErrSessionNotFound
	}
	if entry.state.TeamFull() {
		entry.mu.Unlock()
		return models.Entity{}, 0, ErrTeamFull
	}
	entry.pending++
	entry.mu.Unlock()

	caught, fetchErr := s.Fetcher.FetchRandom(ctx)

	entry.mu.Lock()
	defer entry.mu.Unlock()
	entry.pending--
	defer entry.settled.Broadcast()
	if fetchErr != nil {
		log.Printf("[GAME] ❌ Catch failed for session %s: %v", sessionID, fetchErr)
		return models.Entity{}, 0, fetchErr
	}
	if entry.ended {
		return models.Entity{}, 0, ErrSessionNotFound
	}
	entry.state.Roster = append(entry.state.Roster, caught)
	size := len(entry.state.Roster)
	log.Printf("[GAME] 🎯 Session %s caught %s (#%d), team %d/%d", sessionID, caught.Name, caught.ID, size, models.MaxTeamSize)
	return caught, size, nil
}

// GetTeam returns a copy of the roster and its size.
func (s *GameService) GetTeam(sessionID string) ([]models.Entity, int, error) {
	snap, err := s.Store.Snapshot(sessionID)
	if err != nil {
		return nil, 0, err
	}
	return snap.Roster, len(snap.Roster), nil
}

// Battle pits roster[index] against a freshly fetched random opponent.
// The opponent is remembered as the session's current opponent but never
// joins the team.
func (s *GameService) Battle(ctx context.Context, sessionID string, index int) (models.BattleOutcome, error) {
	entry, err := s.Store.get(sessionID)
	if err != nil {
		return models.BattleOutcome{}, err
	}

	entry.mu.Lock()
	if entry.ended {
		entry.mu.Unlock()
		return models.BattleOutcome{}, ErrSessionNotFound
	}
	if len(entry.state.Roster) == 0 {
		entry.mu.Unlock()
		return models.BattleOutcome{}, ErrNoTeam
	}
	if index < 0 || index >= len(entry.state.Roster) {
		entry.mu.Unlock()
		return models.BattleOutcome{}, ErrInvalidIndex
	}
	player := entry.state.Roster[index]
	entry.mu.Unlock()

	opponent, err := s.Fetcher.FetchRandom(ctx)
	if err != nil {
		log.Printf("[GAME] ❌ Opponent fetch failed for session %s: %v", sessionID, err)
		return models.BattleOutcome{}, err
	}

	outcome := models.BattleOutcome{
		Player:             player,
		Opponent:           opponent,
		PlayerPower:        player.Power(),
		OpponentPower:      opponent.Power(),
		PlayerMultiplier:   s.multiplier(),
		OpponentMultiplier: s.multiplier(),
	}
	outcome.Result = ResolveBattle(outcome.PlayerPower, outcome.OpponentPower, outcome.PlayerMultiplier, outcome.OpponentMultiplier)

	entry.mu.Lock()
	if entry.ended {
		entry.mu.Unlock()
		return models.BattleOutcome{}, ErrSessionNotFound
	}
	applyResult(&entry.state, outcome.Result)
	entry.state.CurrentOpponent = &opponent
	outcome.Score = entry.state.Score
	outcome.GameOver = entry.state.GameOver()
	losses := entry.state.ConsecutiveLosses
	entry.mu.Unlock()

	log.Printf("[GAME] ⚔️  Session %s: %s (%d x%.2f) vs %s (%d x%.2f) → %s, score=%d streak=%d",
		sessionID, player.Name, outcome.PlayerPower, outcome.PlayerMultiplier,
		opponent.Name, outcome.OpponentPower, outcome.OpponentMultiplier,
		outcome.Result, outcome.Score, losses)

	if err := s.History.RecordBattle(ctx, sessionID, outcome, losses); err != nil {
		log.Printf("[HISTORY] ⚠️ Failed to record battle for session %s: %v", sessionID, err)
	}
	return outcome, nil
}

// GetScore returns the score and whether the loss streak has ended the game.
func (s *GameService) GetScore(sessionID string) (int, bool, error) {
	snap, err := s.Store.Snapshot(sessionID)
	if err != nil {
		return 0, false, err
	}
	return snap.Score, snap.GameOver(), nil
}

// EndSession forgets the session; later calls with its id fail.
func (s *GameService) EndSession(sessionID string) error {
	if err := s.Store.Delete(sessionID); err != nil {
		return err
	}
	log.Printf("[GAME] 🏁 Session %s ended", sessionID)
	return nil
}

// FetchPokemon looks up a single catalog entry by id.
func (s *GameService) FetchPokemon(ctx context.Context, id int) (models.Entity, error) {
	return s.Fetcher.Fetch(ctx, id)
}

func (s *GameService) multiplier() float64 {
	return BattleMultiplierMin + (BattleMultiplierMax-BattleMultiplierMin)*s.Rand.Float64()
}

// ResolveBattle compares the adjusted powers. Ties go to the opponent.
func ResolveBattle(playerPower, opponentPower int, playerMult, opponentMult float64) models.BattleResult {
	if float64(playerPower)*playerMult > float64(opponentPower)*opponentMult {
		return models.BattleWon
	}
	return models.BattleLost
}

func applyResult(state *models.Session, result models.BattleResult) {
	if result == models.BattleWon {
		state.Score++
		state.ConsecutiveLosses = 0
		return
	}
	state.Score = max(0, state.Score-1)
	state.ConsecutiveLosses++
}
