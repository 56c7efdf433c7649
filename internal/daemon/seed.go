package daemon

import (
	"errors"

	"github.com/alexedwards/argon2id"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/hartikaaggarwal/salesforce-chatter-bot-groups/internal/config"
	"github.com/hartikaaggarwal/salesforce-chatter-bot-groups/internal/db/controller/setting"
	"github.com/hartikaaggarwal/salesforce-chatter-bot-groups/internal/uniuri"
	"github.com/hartikaaggarwal/salesforce-chatter-bot-groups/internal/web"
)

const webhookTokenLength = 32

func seed(_ *config.Config, db *gorm.DB) {
	// Generate the shared webhook token on first boot. Only its hash is
	// stored, the plain token appears in the log exactly once.

	_, err := setting.Get(db, web.SettingKeyWebhookTokenHash)
	if err == nil {
		return
	}

	if !errors.Is(err, setting.ErrSettingNotFound) {
		log.Error().Err(err).Msg("failed to check for webhook token")
		return
	}

	token := uniuri.NewLen(webhookTokenLength)

	hash, err := argon2id.CreateHash(token, argon2id.DefaultParams)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash webhook token")
		return
	}

	if _, err := setting.Set(db, web.SettingKeyWebhookTokenHash, []byte(hash)); err != nil {
		log.Error().Err(err).Msg("failed to store webhook token")
		return
	}

	log.Warn().
		Str("token", token).
		Msg("generated webhook token, store it now, it will not be shown again")
}
