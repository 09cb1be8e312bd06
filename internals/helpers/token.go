package helper

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// TokenCookie is the cookie the frontend sends back instead of an Authorization header.
const TokenCookie = "token"

// GetRawAccessToken returns the JWT from "Authorization: Bearer <token>" or, failing that, the token cookie.
func GetRawAccessToken(c *fiber.Ctx) string {
	fields := strings.Fields(c.Get("Authorization"))
	if len(fields) == 2 && strings.EqualFold(fields[0], "Bearer") {
		if tok := strings.Trim(fields[1], "\"'"); tok != "" {
			return tok
		}
	}
	return strings.TrimSpace(c.Cookies(TokenCookie))
}

func SetTokenCookie(c *fiber.Ctx, token string, ttl time.Duration, secure bool) {
	sameSite := fiber.CookieSameSiteLaxMode
	if secure {
		sameSite = fiber.CookieSameSiteNoneMode
	}
	c.Cookie(&fiber.Cookie{
		Name:     TokenCookie,
		Value:    token,
		HTTPOnly: true,
		Secure:   secure,
		SameSite: sameSite,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
	})
}

func ClearTokenCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     TokenCookie,
		Value:    "none",
		HTTPOnly: true,
		Path:     "/",
		Expires:  time.Now().Add(10 * time.Second),
	})
}
