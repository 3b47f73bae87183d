// models/session.go
package models

const (
	MaxTeamSize          = 6
	MaxConsecutiveLosses = 3 // game over once reached
)

// Session is one player's game state. The services package owns the
// live copy; values handed out to callers are snapshots.
type Session struct {
	ID                string
	Roster            []Entity
	CurrentOpponent   *Entity
	Score             int
	ConsecutiveLosses int
}

// GameOver is derived from the loss streak; it never blocks further play.
func (s *Session) GameOver() bool {
	return s.ConsecutiveLosses >= MaxConsecutiveLosses
}

// TeamFull reports whether the roster has reached capacity.
func (s *Session) TeamFull() bool {
	return len(s.Roster) >= MaxTeamSize
}
