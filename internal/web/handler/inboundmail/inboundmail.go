// Package inboundmail handles email payloads forwarded by the mail gateway.
package inboundmail

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/hartikaaggarwal/salesforce-chatter-bot-groups/internal/config"
	"github.com/hartikaaggarwal/salesforce-chatter-bot-groups/internal/mailroom"
	"github.com/hartikaaggarwal/salesforce-chatter-bot-groups/internal/salesforce"
	"github.com/hartikaaggarwal/salesforce-chatter-bot-groups/internal/web/handler"
)

const (
	// Path is the path of the inbound email endpoint.
	Path = "inbound-email"
)

// processor turns one email into a feed post.
type processor interface {
	Process(ctx context.Context, email mailroom.Email) *mailroom.Result
}

// Service is the inbound email handler service.
type Service struct {
	handler.Service
	cfg  *config.Config
	db   *gorm.DB
	proc processor
}

// Handler is the inbound email handler.
var Handler = Service{} //nolint:gochecknoglobals

// Init initializes the inbound email handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.db = db
	s.proc = mailroom.New(db, &salesforce.Engine)

	// register routes
	app.Route("/"+Path, func(router fiber.Router) {
		router.Post(handler.RootPath, s.Post)
	})

	return nil
}

// Post processes one inbound email. Processing failures are part of the
// gateway contract and come back as a 200 with success=false, only an
// unreadable payload is a client error.
func (s *Service) Post(c *fiber.Ctx) error {
	email := new(mailroom.Email)
	if err := c.BodyParser(email); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	return c.JSON(s.proc.Process(c.UserContext(), *email))
}
