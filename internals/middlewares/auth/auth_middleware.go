// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"zamanat_backend/internals/configs"
	helper "zamanat_backend/internals/helpers"
)

const notAuthorized = "Not authorized to access this route"

// AuthMiddleware verifies the JWT (Bearer header or token cookie) and stores
// user_id and userRole in Locals. With a non-nil db the user must still exist,
// and the stored role wins over the claim.
func AuthMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := helper.GetRawAccessToken(c)
		if tokenString == "" {
			return helper.JsonError(c, fiber.StatusUnauthorized, notAuthorized)
		}

		secretKey := configs.JWTSecret
		if secretKey == "" {
			log.Println("[AUTH] ❌ JWT_SECRET is empty")
			return helper.JsonError(c, fiber.StatusInternalServerError, "Server Error")
		}

		claims, err := parseToken(tokenString, secretKey)
		if err != nil {
			log.Println("[AUTH] token rejected:", err)
			return helper.JsonError(c, fiber.StatusUnauthorized, notAuthorized)
		}
		if err := validateTokenExpiry(claims, 30*time.Second); err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, notAuthorized)
		}

		userID, err := extractUserID(claims)
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, notAuthorized)
		}

		role, _ := claims["role"].(string)
		if db != nil {
			stored, err := loadUserRole(db.WithContext(c.UserContext()), userID)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.JsonError(c, fiber.StatusUnauthorized, "User not found")
			}
			if err != nil {
				log.Println("[AUTH] ❌ user lookup:", err)
				return helper.JsonError(c, fiber.StatusInternalServerError, "Server Error")
			}
			role = stored
		}

		c.Locals("user_id", userID.String())
		c.Locals("userRole", role)
		return c.Next()
	}
}

func parseToken(tokenString, secret string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true, ValidMethods: []string{jwt.SigningMethodHS256.Alg()}}
	if _, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}); err != nil {
		return nil, err
	}
	return claims, nil
}
