// models/entity.go
package models

import "encoding/json"

// StatRef names the attribute a Stat measures (e.g. "hp", "attack").
type StatRef struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

type Stat struct {
	BaseStat int     `json:"base_stat"`
	Effort   int     `json:"effort"`
	Stat     StatRef `json:"stat"`
}

// Entity is the normalized catalog record held in rosters and battles.
// Sprites is passed through from the catalog untouched.
type Entity struct {
	Name    string          `json:"name"`
	ID      int             `json:"id"`
	Stats   []Stat          `json:"stats"`
	Sprites json.RawMessage `json:"sprites"`
}

// Power is the sum of all base stat values.
func (e Entity) Power() int {
	total := 0
	for _, s := range e.Stats {
		total += s.BaseStat
	}
	return total
}
