// handlers/static_routes.go
package handlers

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
)

// SetupStaticRoutes serves the browser client: index.html at / and the
// rest of dir under /static.
func SetupStaticRoutes(app *fiber.App, dir string) {
	index := filepath.Join(dir, "index.html")

	app.Get("/", func(c *fiber.Ctx) error {
		if _, err := os.Stat(index); err != nil {
			return detail(c, fiber.StatusInternalServerError, fmt.Sprintf("Error serving index.html: %v", err))
		}
		return c.SendFile(index)
	})

	app.Static("/static", dir, fiber.Static{
		MaxAge: 3600,
	})
}
