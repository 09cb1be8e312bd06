// middlewares/cors.go

package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CorsMiddleware allows the configured frontend plus the local Vite ports.
func CorsMiddleware(clientURL string) fiber.Handler {
	origins := []string{
		"http://localhost:5173",
		"http://localhost:5174",
	}
	if u := strings.TrimRight(strings.TrimSpace(clientURL), "/"); u != "" && !contains(origins, u) {
		origins = append(origins, u)
	}
	return cors.New(cors.Config{
		AllowOrigins:     strings.Join(origins, ", "),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, Idempotency-Key, X-Request-ID",
		ExposeHeaders:    "X-Request-ID, Idempotent-Replay",
		AllowCredentials: true,
	})
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
