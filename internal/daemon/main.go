// Package daemon wires the service together and runs it.
package daemon

import (
	"fmt"

	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/hartikaaggarwal/salesforce-chatter-bot-groups/internal/config"
	"github.com/hartikaaggarwal/salesforce-chatter-bot-groups/internal/db/dsn"
	"github.com/hartikaaggarwal/salesforce-chatter-bot-groups/internal/db/models"
	"github.com/hartikaaggarwal/salesforce-chatter-bot-groups/internal/logger"
	"github.com/hartikaaggarwal/salesforce-chatter-bot-groups/internal/salesforce"
	"github.com/hartikaaggarwal/salesforce-chatter-bot-groups/internal/web"
)

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	webService *web.Service
}

// Start starts the Daemon's web service and blocks until shutdown.
func (d *Daemon) Start() error {
	go d.webService.WaitShutdown()

	return d.webService.Start(fmt.Sprintf(":%d", d.cfg.Webserver.Port))
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) *Daemon {
	if cfg == nil {
		log.Fatal().Msg("config is nil")
		return nil
	}

	if err := logger.Init(cfg.Log); err != nil {
		panic(err)
	}

	dbDriver := gormmysql.Open(dsn.Create(cfg)) // open db with gorm mysql driver

	db, err := gorm.Open(dbDriver, &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}

	if err = db.AutoMigrate(
		&models.Setting{},
		&models.ChatterGroup{},
		&models.FeedPost{},
	); err != nil {
		panic("failed to migrate database")
	}

	seed(cfg, db)

	// The Salesforce connection is configured at runtime through the settings
	// endpoint, a fresh install runs without one.
	if err := salesforce.Open(db); err != nil {
		log.Warn().Err(err).Msg("Salesforce connection not established, configure it via /settings/salesforce")
	}

	return &Daemon{
		cfg:        cfg,
		webService: web.New(cfg, db),
	}
}
