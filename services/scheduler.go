// services/scheduler.go
package services

import (
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartStatsScheduler logs a summary of live sessions every interval.
// Sessions are never evicted; this is reporting only.
func (s *GameService) StartStatsScheduler(interval time.Duration) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(s.LogStats),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = sched.Shutdown()
		return nil, fmt.Errorf("register stats job: %w", err)
	}

	sched.Start()
	return sched, nil
}

// LogStats writes one summary line for the session store.
func (s *GameService) LogStats() {
	st := s.Store.Stats()
	log.Printf("[STATS] 📊 sessions=%d game_over=%d caught=%d pending_catches=%d top_score=%d",
		st.Active, st.GameOver, st.TotalCaught, st.PendingCatches, st.HighestScore)
}
