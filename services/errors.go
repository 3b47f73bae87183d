// services/errors.go
package services

import "errors"

var (
	ErrSessionNotFound     = errors.New("game session not found")
	ErrTeamFull            = errors.New("your pokemon team is full")
	ErrNoTeam              = errors.New("you need at least one pokemon to battle")
	ErrInvalidIndex        = errors.New("invalid pokemon selection")
	ErrEntityNotFound      = errors.New("pokemon not found")
	ErrUpstreamUnavailable = errors.New("pokemon api is currently unavailable")
)
