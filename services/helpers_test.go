package services

import (
	"context"
	"encoding/json"
	"sync"

	"pokemon-game-server/models"
)

// scriptedRand replays fixed draws in order, wrapping around.
type scriptedRand struct {
	mu     sync.Mutex
	ints   []int
	floats []float64
	ni, nf int
}

func (r *scriptedRand) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[r.ni%len(r.ints)]
	r.ni++
	return v % n
}

func (r *scriptedRand) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.floats) == 0 {
		return 0.5
	}
	v := r.floats[r.nf%len(r.floats)]
	r.nf++
	return v
}

// fakeFetcher hands out entities from next, or err when set.
type fakeFetcher struct {
	mu    sync.Mutex
	next  []models.Entity
	err   error
	calls int
	// when non-nil, FetchRandom signals started and waits for release
	started chan struct{}
	release chan struct{}
}

func (f *fakeFetcher) Fetch(_ context.Context, id int) (models.Entity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return models.Entity{}, f.err
	}
	for _, e := range f.next {
		if e.ID == id {
			return e, nil
		}
	}
	return models.Entity{}, ErrEntityNotFound
}

func (f *fakeFetcher) FetchRandom(ctx context.Context) (models.Entity, error) {
	if f.started != nil {
		f.started <- struct{}{}
		select {
		case <-f.release:
		case <-ctx.Done():
			return models.Entity{}, ErrUpstreamUnavailable
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return models.Entity{}, f.err
	}
	if len(f.next) == 0 {
		return pokemon("ditto", 132, 48, 48, 48, 48, 48, 48), nil
	}
	e := f.next[0]
	if len(f.next) > 1 {
		f.next = f.next[1:]
	}
	return e, nil
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type recordedBattle struct {
	sessionID string
	outcome   models.BattleOutcome
	losses    int
}

type fakeRecorder struct {
	mu      sync.Mutex
	battles []recordedBattle
	err     error
}

func (r *fakeRecorder) RecordBattle(_ context.Context, sessionID string, outcome models.BattleOutcome, losses int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.battles = append(r.battles, recordedBattle{sessionID, outcome, losses})
	return nil
}

func pokemon(name string, id int, baseStats ...int) models.Entity {
	names := []string{"hp", "attack", "defense", "special-attack", "special-defense", "speed"}
	stats := make([]models.Stat, len(baseStats))
	for i, v := range baseStats {
		stats[i] = models.Stat{BaseStat: v, Stat: models.StatRef{Name: names[i%len(names)]}}
	}
	return models.Entity{
		Name:    name,
		ID:      id,
		Stats:   stats,
		Sprites: json.RawMessage(`{"front_default":"https://img.example/` + name + `.png"}`),
	}
}
