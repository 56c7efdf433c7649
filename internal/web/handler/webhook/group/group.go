// Package group handles collaboration group trigger webhooks.
package group

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/hartikaaggarwal/salesforce-chatter-bot-groups/internal/config"
	"github.com/hartikaaggarwal/salesforce-chatter-bot-groups/internal/groupsync"
	"github.com/hartikaaggarwal/salesforce-chatter-bot-groups/internal/salesforce"
	"github.com/hartikaaggarwal/salesforce-chatter-bot-groups/internal/web/handler"
)

const (
	// Path is the path of the collaboration group webhook.
	Path = "webhooks/collaboration-groups"
)

// Trigger events delivered by the org.
const (
	EventInsert = "insert"
	EventUpdate = "update"
	EventDelete = "delete"
)

// Request is the webhook payload fired by the collaboration group trigger.
type Request struct {
	Event    string   `json:"event"`
	GroupIDs []string `json:"groupIds"`
}

// synchronizer applies trigger events to the mirror table.
type synchronizer interface {
	Sync(ctx context.Context, groupIDs []string) (*groupsync.Result, error)
	Delete(ctx context.Context, groupIDs []string) (*groupsync.Result, error)
}

// Service is the collaboration group webhook handler service.
type Service struct {
	handler.Service
	cfg  *config.Config
	db   *gorm.DB
	sync synchronizer
}

// Handler is the collaboration group webhook handler.
var Handler = Service{} //nolint:gochecknoglobals

// Init initializes the collaboration group webhook handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.db = db
	s.sync = groupsync.New(db, &salesforce.Engine)

	// register routes
	app.Route("/"+Path, func(router fiber.Router) {
		router.Post(handler.RootPath, s.Post)
	})

	return nil
}

// Post applies one trigger event to the mirror table.
func (s *Service) Post(c *fiber.Ctx) error {
	req := new(Request)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if len(req.GroupIDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "groupIds must not be empty",
		})
	}

	var (
		res *groupsync.Result
		err error
	)

	switch req.Event {
	case EventInsert, EventUpdate:
		res, err = s.sync.Sync(c.UserContext(), req.GroupIDs)
	case EventDelete:
		res, err = s.sync.Delete(c.UserContext(), req.GroupIDs)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "unknown event: " + req.Event,
		})
	}

	if err != nil {
		log.Error().
			Err(err).
			Str("event", req.Event).
			Int("group_ids", len(req.GroupIDs)).
			Msg("group webhook failed")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	log.Info().
		Str("event", req.Event).
		Int("group_ids", len(req.GroupIDs)).
		Msg("group webhook handled")

	return c.JSON(res)
}
