package helper

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// --- PG error mapping (pgx/libpq) ---
func MapPGError(err error) (int, string) {
	var code, msg string

	var pgxErr *pgconn.PgError
	var pqErr *pq.Error
	switch {
	case errors.As(err, &pgxErr):
		code, msg = pgxErr.Code, pgxErr.Message
	case errors.As(err, &pqErr):
		code, msg = string(pqErr.Code), pqErr.Message
	default:
		return http.StatusInternalServerError, err.Error()
	}

	switch code {
	case "23505":
		return http.StatusConflict, "Duplicate data (unique violation)"
	case "23503":
		return http.StatusBadRequest, "Referenced row not found (FK violation)"
	case "23514":
		return http.StatusBadRequest, "Value rejected by a check constraint"
	default:
		return http.StatusInternalServerError, msg
	}
}

func IsUniqueViolation(err error) bool {
	code, _ := MapPGError(err)
	return code == http.StatusConflict
}

func WritePGError(c *fiber.Ctx, err error) error {
	code, msg := MapPGError(err)
	return JsonError(c, code, msg)
}
