package web

import (
	"strings"

	"github.com/alexedwards/argon2id"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/hartikaaggarwal/salesforce-chatter-bot-groups/internal/db/controller/setting"
)

// SettingKeyWebhookTokenHash is the setting row holding the argon2id hash of
// the shared webhook token. The plain token is printed once at first boot.
const SettingKeyWebhookTokenHash = "webhook_token_hash"

// TokenAuth is a Fiber middleware that checks the shared webhook token on
// every request. Liveness and metrics endpoints stay open for the platform.
func TokenAuth(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()
		if path == "/checkalive" || path == "/metrics" {
			return c.Next()
		}

		token := requestToken(c)
		if token == "" {
			return unauthorized(c)
		}

		row, err := setting.Get(db, SettingKeyWebhookTokenHash)
		if err != nil {
			log.Warn().Err(err).Msg("webhook token is not configured, rejecting request")

			return unauthorized(c)
		}

		match, err := argon2id.ComparePasswordAndHash(token, string(row.Value))
		if err != nil || !match {
			return unauthorized(c)
		}

		return c.Next()
	}
}

// requestToken reads the token from the Authorization bearer scheme or the
// X-Webhook-Token fallback header.
func requestToken(c *fiber.Ctx) string {
	authz := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(authz, "Bearer ") {
		return strings.TrimPrefix(authz, "Bearer ")
	}

	return c.Get("X-Webhook-Token")
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "unauthorized",
	})
}
