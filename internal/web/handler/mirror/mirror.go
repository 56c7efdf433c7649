// Package mirror exposes the chatter group mirror records.
package mirror

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/hartikaaggarwal/salesforce-chatter-bot-groups/internal/config"
	controller "github.com/hartikaaggarwal/salesforce-chatter-bot-groups/internal/db/controller/mirror"
	"github.com/hartikaaggarwal/salesforce-chatter-bot-groups/internal/web/handler"
)

const (
	// Path is the path of the mirror record endpoints.
	Path = "groups"

	defaultLimit = 50
	maxLimit     = 200
)

// Service is the mirror record handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the mirror record handler.
var Handler = Service{} //nolint:gochecknoglobals

// Init initializes the mirror record handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.db = db

	// register routes
	app.Route("/"+Path, func(router fiber.Router) {
		router.Get(handler.RootPath, s.List)
		router.Get("/:id", s.Get)
	})

	return nil
}

// List returns a page of mirror records ordered by group name.
func (s *Service) List(c *fiber.Ctx) error {
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	limit := c.QueryInt("limit", defaultLimit)
	if limit <= 0 || limit > maxLimit {
		limit = defaultLimit
	}

	groups, total, err := controller.List(s.db, offset, limit)
	if err != nil {
		log.Error().Err(err).Msg("failed to list mirror records")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to list groups",
		})
	}

	return c.JSON(fiber.Map{
		"groups": groups,
		"total":  total,
		"offset": offset,
		"limit":  limit,
	})
}

// Get returns one mirror record by group id, either id form works.
func (s *Service) Get(c *fiber.Ctx) error {
	group, err := controller.Get(s.db, c.Params("id"))
	if err != nil {
		if errors.Is(err, controller.ErrMirrorNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "group not found",
			})
		}

		log.Error().Err(err).Str("group_id", c.Params("id")).Msg("failed to load mirror record")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to load group",
		})
	}

	return c.JSON(group)
}
