// Package connection manages the Salesforce connection settings.
package connection

import (
	"encoding/json"

	"gorm.io/gorm"

	"github.com/hartikaaggarwal/salesforce-chatter-bot-groups/internal/db/controller/setting"
)

const (
	// SettingKeySalesforce is the key used to store the connection settings in the database.
	SettingKeySalesforce = "salesforce_connection"
)

type (
	// Settings represents the Salesforce org connection configuration.
	// The client credentials flow is used, so no user password is stored.
	Settings struct {
		LoginURL         string `form:"login_url"          json:"loginUrl"         validate:"required,url"`
		ClientID         string `form:"client_id"          json:"clientId"         validate:"required"`
		ClientSecret     string `form:"client_secret"      json:"clientSecret"     validate:"required,min=8"`
		APIVersion       string `form:"api_version"        json:"apiVersion"       validate:"required"`
		DefaultNetworkID string `form:"default_network_id" json:"defaultNetworkId"`
		BotUserID        string `form:"bot_user_id"        json:"botUserId"`
	}
)

// Load loads the Salesforce connection settings from the database.
func (s *Settings) Load(db *gorm.DB) error {
	// Retrieve the setting from the database
	stored, err := setting.Get(db, SettingKeySalesforce)
	if err != nil {
		return err
	}

	// Unmarshal the JSON blob into the struct
	return json.Unmarshal(stored.Value, s)
}

// Save saves the Salesforce connection settings to the database.
func (s *Settings) Save(db *gorm.DB) error {
	// Marshal the struct to JSON
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}

	// Save or update the setting in the database
	_, err = setting.Set(db, SettingKeySalesforce, data)

	return err
}
