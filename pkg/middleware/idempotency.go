package middleware

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/sync/singleflight"
)

const (
	IdempotencyKeyHeader = "Idempotency-Key"
	ReplayedHeader       = "Idempotent-Replayed"
)

type IdempotencyConfig struct {
	Storage fiber.Storage
	TTL     time.Duration
	Logger  *slog.Logger
}

type storedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// Idempotency collapses requests that carry the same Idempotency-Key for
// the same caller. Concurrent duplicates wait for the first request and
// receive its response; later duplicates get the stored copy until TTL
// expires. Only 2xx responses are stored. Requests without the header pass
// through.
func Idempotency(cfg IdempotencyConfig) fiber.Handler {
	var group singleflight.Group
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return func(c *fiber.Ctx) error {
		header := c.Get(IdempotencyKeyHeader)
		if header == "" || c.Method() != fiber.MethodPost {
			return c.Next()
		}
		key := "idempotency:" + caller(c) + ":" + c.Path() + ":" + header

		if cached := load(cfg.Storage, key, logger); cached != nil {
			return replay(c, cached)
		}

		leader := false
		v, err, _ := group.Do(key, func() (any, error) {
			leader = true
			if cached := load(cfg.Storage, key, logger); cached != nil {
				return cached, nil
			}
			if err := c.Next(); err != nil {
				return nil, err
			}
			resp := &storedResponse{
				Status:      c.Response().StatusCode(),
				ContentType: string(c.Response().Header.ContentType()),
				Body:        append([]byte(nil), c.Response().Body()...),
			}
			if resp.Status >= 200 && resp.Status < 300 {
				store(cfg.Storage, key, resp, cfg.TTL, logger)
			}
			return resp, nil
		})
		if err != nil {
			return err
		}
		if leader {
			return nil
		}
		return replay(c, v.(*storedResponse))
	}
}

func caller(c *fiber.Ctx) string {
	if token, ok := c.Locals(UserKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if id, ok := claims["user_id"].(string); ok {
				return id
			}
		}
	}
	return c.IP()
}

func load(storage fiber.Storage, key string, logger *slog.Logger) *storedResponse {
	raw, err := storage.Get(key)
	if err != nil || raw == nil {
		if err != nil {
			logger.Warn("Idempotency lookup failed", "error", err)
		}
		return nil
	}
	var resp storedResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		logger.Warn("Idempotency entry unreadable", "error", err)
		return nil
	}
	return &resp
}

func store(storage fiber.Storage, key string, resp *storedResponse, ttl time.Duration, logger *slog.Logger) {
	raw, err := json.Marshal(resp)
	if err != nil {
		logger.Warn("Idempotency entry not encodable", "error", err)
		return
	}
	if err := storage.Set(key, raw, ttl); err != nil {
		logger.Warn("Idempotency store failed", "error", err)
	}
}

func replay(c *fiber.Ctx, resp *storedResponse) error {
	c.Set(ReplayedHeader, "true")
	if resp.ContentType != "" {
		c.Set(fiber.HeaderContentType, resp.ContentType)
	}
	return c.Status(resp.Status).Send(resp.Body)
}
