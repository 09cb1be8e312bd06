package idempotency

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	helper "zamanat_backend/internals/helpers"
)

const (
	HeaderKey    = "Idempotency-Key"
	HeaderReplay = "Idempotent-Replay"
	maxKeyLen    = 255
)

// New replays the first response for a repeated Idempotency-Key. Requests without
// the header pass through. Keys are scoped by user (or IP) and path. Store
// failures fail open: the request runs as if no key was sent.
func New(store Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := strings.TrimSpace(c.Get(HeaderKey))
		if key == "" {
			return c.Next()
		}
		if len(key) > maxKeyLen {
			return helper.JsonError(c, fiber.StatusBadRequest, "Idempotency-Key is too long")
		}

		scoped := scope(c) + ":" + c.Path() + ":" + key
		ctx := c.UserContext()

		if resp, ok, err := store.Recall(ctx, scoped); err != nil {
			log.Printf("[IDEMPOTENCY] ⚠️ recall failed: %v", err)
			return c.Next()
		} else if ok {
			return replay(c, resp)
		}

		locked, err := store.TryLock(ctx, scoped)
		if err != nil {
			log.Printf("[IDEMPOTENCY] ⚠️ lock failed: %v", err)
			return c.Next()
		}
		if !locked {
			// the holder may have finished between Recall and TryLock
			if resp, ok, _ := store.Recall(ctx, scoped); ok {
				return replay(c, resp)
			}
			return helper.JsonError(c, fiber.StatusConflict, "A request with this Idempotency-Key is already in progress")
		}

		if err := c.Next(); err != nil {
			_ = store.Unlock(ctx, scoped)
			return err
		}

		status := c.Response().StatusCode()
		if status >= fiber.StatusInternalServerError {
			_ = store.Unlock(ctx, scoped)
			return nil
		}

		body := append([]byte(nil), c.Response().Body()...)
		if err := store.Remember(ctx, scoped, Response{
			Status:      status,
			ContentType: string(c.Response().Header.ContentType()),
			Body:        body,
		}); err != nil {
			log.Printf("[IDEMPOTENCY] ⚠️ remember failed: %v", err)
		}
		return nil
	}
}

func scope(c *fiber.Ctx) string {
	if uid, ok := c.Locals("user_id").(string); ok && uid != "" {
		return "u:" + uid
	}
	return "ip:" + c.IP()
}

func replay(c *fiber.Ctx, resp *Response) error {
	c.Set(HeaderReplay, "true")
	if resp.ContentType != "" {
		c.Set(fiber.HeaderContentType, resp.ContentType)
	}
	return c.Status(resp.Status).Send(resp.Body)
}
