// Package mailroom turns inbound email into Chatter feed posts.
package mailroom

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/hartikaaggarwal/salesforce-chatter-bot-groups/internal/db/models"
	"github.com/hartikaaggarwal/salesforce-chatter-bot-groups/internal/salesforce"
	"github.com/hartikaaggarwal/salesforce-chatter-bot-groups/internal/sfid"
)

// ErrDBNil is returned when the database connection is nil.
var ErrDBNil = errors.New("database connection is nil")

// groupKeyPrefix is the id prefix of collaboration group records.
const groupKeyPrefix = "0F9"

// FeedPoster posts feed elements and resolves network routing.
// The salesforce engine implements it.
type FeedPoster interface {
	DefaultNetworkID() string
	NetworkIDForGroup(ctx context.Context, groupID string) (string, error)
	PostFeedElement(ctx context.Context, networkID, subjectID, message string) (*salesforce.FeedElement, error)
}

// Email is the inbound message handed over by the mail gateway.
type Email struct {
	FromAddress   string `json:"fromAddress"`
	Subject       string `json:"subject"`
	PlainTextBody string `json:"plainTextBody"`
}

// Result reports the outcome back to the mail gateway.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// Processor handles inbound email end to end.
type Processor struct {
	db     *gorm.DB
	poster FeedPoster
}

// New creates a Processor.
func New(db *gorm.DB, poster FeedPoster) *Processor {
	return &Processor{db: db, poster: poster}
}

// Process parses the email body, resolves the target network, posts the feed
// element and records an audit row. The audit row is written inside one
// transaction with the post, so a failure leaves no trace in the database.
// Failures are reported in the result, never as an error to the gateway.
func (p *Processor) Process(ctx context.Context, email Email) *Result {
	res := &Result{}

	if p.db == nil {
		res.Message = ErrDBNil.Error()

		return res
	}

	subjectID, message, err := parseBody(email.PlainTextBody)
	if err != nil {
		log.Warn().
			Err(err).
			Str("from", email.FromAddress).
			Str("subject", email.Subject).
			Msg("rejecting inbound email")

		res.Message = err.Error()

		return res
	}

	var post models.FeedPost

	err = p.db.Transaction(func(tx *gorm.DB) error {
		networkID, err := p.resolveNetwork(ctx, subjectID)
		if err != nil {
			return err
		}

		element, err := p.poster.PostFeedElement(ctx, networkID, subjectID, message)
		if err != nil {
			return err
		}

		post = models.FeedPost{
			SubjectID:     subjectID,
			NetworkID:     networkID,
			Body:          message,
			FeedElementID: element.ID,
		}

		return errors.Wrap(tx.Create(&post).Error, "recording feed post")
	})
	if err != nil {
		// the stack lands in the log, the message goes back to the gateway
		log.Error().
			Stack().
			Err(errors.WithStack(err)).
			Str("subject_id", subjectID).
			Msg("inbound email processing failed")

		res.Message = err.Error()

		return res
	}

	log.Info().
		Str("subject_id", post.SubjectID).
		Str("network_id", post.NetworkID).
		Str("feed_element_id", post.FeedElementID).
		Msg("posted feed element")

	res.Success = true
	res.Message = "posted feed element " + post.FeedElementID

	return res
}

// resolveNetwork picks the community to post into. Group subjects are looked
// up in the org because a group can live in a community of its own; every
// other subject posts to the default network.
func (p *Processor) resolveNetwork(ctx context.Context, subjectID string) (string, error) {
	if sfid.KeyPrefix(subjectID) == groupKeyPrefix {
		return p.poster.NetworkIDForGroup(ctx, subjectID)
	}

	return p.poster.DefaultNetworkID(), nil
}
