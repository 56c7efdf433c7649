// Package connection exposes the Salesforce connection settings.
package connection

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/hartikaaggarwal/salesforce-chatter-bot-groups/internal/config"
	controller "github.com/hartikaaggarwal/salesforce-chatter-bot-groups/internal/db/controller/connection"
	"github.com/hartikaaggarwal/salesforce-chatter-bot-groups/internal/db/controller/setting"
	"github.com/hartikaaggarwal/salesforce-chatter-bot-groups/internal/salesforce"
	"github.com/hartikaaggarwal/salesforce-chatter-bot-groups/internal/web/handler"
)

const (
	// Path is the path of the Salesforce connection settings endpoint.
	Path = "settings/salesforce"

	redacted = "********"
)

// Service is the Salesforce connection settings handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	db        *gorm.DB
	validator *validator.Validate
}

// Handler is the Salesforce connection settings handler.
var Handler = Service{} //nolint:gochecknoglobals

// Init initializes the Salesforce connection settings handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.db = db
	s.validator = validator.New()

	// register routes
	app.Route("/"+Path, func(router fiber.Router) {
		router.Get(handler.RootPath, s.Get)
		router.Put(handler.RootPath, s.Put)
	})

	return nil
}

// Get returns the stored connection settings with the client secret redacted.
// An unconfigured connection returns the empty settings.
func (s *Service) Get(c *fiber.Ctx) error {
	settings := &controller.Settings{}
	if err := settings.Load(s.db); err != nil && !errors.Is(err, setting.ErrSettingNotFound) {
		log.Error().Err(err).Msg("failed to load Salesforce connection settings")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to load settings",
		})
	}

	if settings.ClientSecret != "" {
		settings.ClientSecret = redacted
	}

	return c.JSON(settings)
}

// Put validates and saves the connection settings, then reconnects the
// Salesforce client and probes the org with them.
func (s *Service) Put(c *fiber.Ctx) error {
	settings := &controller.Settings{}
	if err := c.BodyParser(settings); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if err := s.validator.Struct(settings); err != nil {
		var validationErrors validator.ValidationErrors

		errors.As(err, &validationErrors)

		errorMessages := make([]string, len(validationErrors))
		for i, ve := range validationErrors {
			errorMessages[i] = "Field '" + ve.Field() + "' failed validation tag '" + ve.Tag() + "'"
		}

		log.Error().Err(err).Msg("validation failed for Salesforce connection settings")

		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": errorMessages,
		})
	}

	if err := settings.Save(s.db); err != nil {
		log.Error().Err(err).Msg("failed to save Salesforce connection settings")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to save settings",
		})
	}

	log.Info().
		Str("login_url", settings.LoginURL).
		Str("api_version", settings.APIVersion).
		Msg("Salesforce connection settings saved")

	// Reconnect the Salesforce client with the new settings
	if err := salesforce.Open(s.db); err != nil {
		log.Error().Err(err).Msg("failed to connect to Salesforce after settings update")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to connect to Salesforce with the provided settings (%s)", err),
		})
	}

	// probe the org with the new connection
	if err := salesforce.Engine.Test(); err != nil {
		log.Error().Err(err).Msg("failed to reach the Salesforce API with new settings")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to reach the Salesforce API with the provided settings (%s)", err),
		})
	}

	settings.ClientSecret = redacted

	return c.JSON(settings)
}
