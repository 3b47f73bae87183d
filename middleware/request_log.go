// middleware/request_log.go
package middleware

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

// RequestLogger logs method, path, status and latency of every request.
// It expects the requestid middleware to run first.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			// the app error handler has not written the response yet
			status = fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}

		reqID, _ := c.Locals("requestid").(string)
		marker := "✅"
		if status >= fiber.StatusBadRequest {
			marker = "❌"
		}
		log.Printf("%s [HTTP] %s %s → %d (%s) id=%s",
			marker, c.Method(), c.OriginalURL(), status, time.Since(start).Round(time.Microsecond), reqID)
		return err
	}
}
