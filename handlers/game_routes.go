// handlers/game_routes.go
package handlers

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"pokemon-game-server/models"
	"pokemon-game-server/services"
	"pokemon-game-server/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupGameRoutes wires the game API. history may be nil, in which case
// the battle history route is not registered.
func SetupGameRoutes(app *fiber.App, gameService *services.GameService, history services.BattleHistory) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":   "ok",
			"sessions": gameService.Store.Len(),
		})
	})

	app.Get("/pokemon/:id", func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("id"))
		if err != nil {
			return detail(c, fiber.StatusBadRequest, "Pokemon ID must be an integer")
		}
		pokemon, err := gameService.FetchPokemon(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, services.ErrEntityNotFound) {
				return detail(c, fiber.StatusNotFound, fmt.Sprintf("Pokemon with ID %d not found", id))
			}
			return gameError(c, err)
		}
		return c.JSON(pokemon)
	})

	game := app.Group("/game")

	game.Post("/start", func(c *fiber.Ctx) error {
		sessionID := gameService.StartSession()
		return c.JSON(models.StartResponse{
			SessionID: sessionID,
			Message:   "Game started! Use /game/{session_id}/catch to catch Pokemon!",
		})
	})

	game.Post("/:id/catch", func(c *fiber.Ctx) error {
		pokemon, size, err := gameService.Catch(c.UserContext(), c.Params("id"))
		if err != nil {
			return gameError(c, err)
		}
		return c.JSON(models.CatchResponse{
			Message:  fmt.Sprintf("You caught %s!", utils.DisplayName(pokemon.Name)),
			Pokemon:  pokemon,
			TeamSize: size,
		})
	})

	game.Get("/:id/team", func(c *fiber.Ctx) error {
		team, size, err := gameService.GetTeam(c.Params("id"))
		if err != nil {
			return gameError(c, err)
		}
		return c.JSON(models.TeamResponse{Team: team, TeamSize: size})
	})

	game.Post("/:id/battle/:index", func(c *fiber.Ctx) error {
		index, err := strconv.Atoi(c.Params("index"))
		if err != nil {
			return detail(c, fiber.StatusBadRequest, "Pokemon index must be an integer")
		}
		outcome, err := gameService.Battle(c.UserContext(), c.Params("id"), index)
		if err != nil {
			return gameError(c, err)
		}
		return c.JSON(models.BattleResponse{
			Message: fmt.Sprintf("Battle between %s and %s!",
				utils.DisplayName(outcome.Player.Name), utils.DisplayName(outcome.Opponent.Name)),
			Result:          fmt.Sprintf("You %s the battle!", outcome.Result),
			Score:           outcome.Score,
			GameOver:        outcome.GameOver,
			SelectedPokemon: outcome.Player,
			OpponentPokemon: outcome.Opponent,
		})
	})

	game.Get("/:id/score", func(c *fiber.Ctx) error {
		score, over, err := gameService.GetScore(c.Params("id"))
		if err != nil {
			return gameError(c, err)
		}
		return c.JSON(models.ScoreResponse{Score: score, GameOver: over})
	})

	if history != nil {
		game.Get("/:id/history", func(c *fiber.Ctx) error {
			sessionID := c.Params("id")
			if _, _, err := gameService.GetScore(sessionID); err != nil {
				return gameError(c, err)
			}
			limit, err := strconv.Atoi(c.Query("limit", "20"))
			if err != nil {
				return detail(c, fiber.StatusBadRequest, "limit must be an integer")
			}
			records, err := history.RecentBattles(c.UserContext(), sessionID, limit)
			if err != nil {
				log.Printf("[HISTORY] ❌ Failed to load battles for session %s: %v", sessionID, err)
				return detail(c, fiber.StatusInternalServerError, "failed to load battle history")
			}
			return c.JSON(fiber.Map{"battles": records})
		})
	}

	game.Delete("/:id", func(c *fiber.Ctx) error {
		if err := gameService.EndSession(c.Params("id")); err != nil {
			return gameError(c, err)
		}
		return c.JSON(models.MessageResponse{Message: "Game ended"})
	})
}

// gameError maps engine failures onto status codes. A missing catalog
// entry on a random draw is the catalog's fault, not the caller's, so it
// is reported as unavailable.
func gameError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		return detail(c, fiber.StatusNotFound, "Game session not found")
	case errors.Is(err, services.ErrTeamFull):
		return detail(c, fiber.StatusBadRequest, "Your Pokemon team is full!")
	case errors.Is(err, services.ErrNoTeam):
		return detail(c, fiber.StatusBadRequest, "You need at least one Pokemon to battle!")
	case errors.Is(err, services.ErrInvalidIndex):
		return detail(c, fiber.StatusBadRequest, "Invalid Pokemon selection")
	case errors.Is(err, services.ErrEntityNotFound), errors.Is(err, services.ErrUpstreamUnavailable):
		return detail(c, fiber.StatusServiceUnavailable, "Pokemon API is currently unavailable")
	default:
		log.Printf("[GAME] ❌ Unexpected error on %s: %v", c.Path(), err)
		return detail(c, fiber.StatusInternalServerError, err.Error())
	}
}

func detail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(models.ErrorResponse{Detail: msg})
}
