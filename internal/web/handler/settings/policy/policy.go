// Package policy exposes the mirror auto-create policy settings.
package policy

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/hartikaaggarwal/salesforce-chatter-bot-groups/internal/config"
	"github.com/hartikaaggarwal/salesforce-chatter-bot-groups/internal/db/controller/autocreate"
	"github.com/hartikaaggarwal/salesforce-chatter-bot-groups/internal/web/handler"
)

const (
	// Path is the path of the auto-create policy settings endpoint.
	Path = "settings/auto-create-policy"
)

// Service is the auto-create policy settings handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the auto-create policy settings handler.
var Handler = Service{} //nolint:gochecknoglobals

// Init initializes the auto-create policy settings handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.db = db

	// register routes
	app.Route("/"+Path, func(router fiber.Router) {
		router.Get(handler.RootPath, s.Get)
		router.Put(handler.RootPath, s.Put)
	})

	return nil
}

// Get returns the current policy. An unset policy reads as all false.
func (s *Service) Get(c *fiber.Ctx) error {
	policy := &autocreate.Policy{}
	if err := policy.Load(s.db); err != nil {
		log.Error().Err(err).Msg("failed to load auto-create policy")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to load policy",
		})
	}

	return c.JSON(policy)
}

// Put replaces the policy.
func (s *Service) Put(c *fiber.Ctx) error {
	policy := &autocreate.Policy{}
	if err := c.BodyParser(policy); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if err := policy.Save(s.db); err != nil {
		log.Error().Err(err).Msg("failed to save auto-create policy")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to save policy",
		})
	}

	log.Info().
		Bool("allow_public", policy.AllowPublic).
		Bool("allow_private", policy.AllowPrivate).
		Bool("allow_unlisted", policy.AllowUnlisted).
		Msg("auto-create policy saved")

	return c.JSON(policy)
}
