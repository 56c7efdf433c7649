// Package autocreate manages the mirror auto-create policy.
package autocreate

import (
	"encoding/json"
	"errors"

	"gorm.io/gorm"

	"github.com/hartikaaggarwal/salesforce-chatter-bot-groups/internal/db/controller/setting"
	"github.com/hartikaaggarwal/salesforce-chatter-bot-groups/internal/db/models"
)

const (
	// SettingKeyAutoCreatePolicy is the key used to store the policy in the database.
	SettingKeyAutoCreatePolicy = "auto_create_policy"
)

// Policy controls for which collaboration types the sync handler may create
// new mirror records. A missing policy setting means nothing is auto-created.
type Policy struct {
	AllowPublic   bool `form:"allow_public"   json:"allowPublic"`
	AllowPrivate  bool `form:"allow_private"  json:"allowPrivate"`
	AllowUnlisted bool `form:"allow_unlisted" json:"allowUnlisted"`
}

// Load loads the policy from the database. An absent setting is not an error:
// it loads the zero policy, which allows nothing.
func (p *Policy) Load(db *gorm.DB) error {
	s, err := setting.Get(db, SettingKeyAutoCreatePolicy)
	if err != nil {
		if errors.Is(err, setting.ErrSettingNotFound) {
			*p = Policy{}
			return nil
		}

		return err
	}

	// Unmarshal the JSON blob into the struct
	return json.Unmarshal(s.Value, p)
}

// Save saves the policy to the database.
func (p *Policy) Save(db *gorm.DB) error {
	// Marshal the struct to JSON
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}

	// Save or update the setting in the database
	_, err = setting.Set(db, SettingKeyAutoCreatePolicy, data)

	return err
}

// Allows reports whether a mirror may be auto-created for a group of the
// given collaboration type. Unknown types are never auto-created.
func (p *Policy) Allows(collaborationType string) bool {
	switch collaborationType {
	case models.CollaborationTypePublic:
		return p.AllowPublic
	case models.CollaborationTypePrivate:
		return p.AllowPrivate
	case models.CollaborationTypeUnlisted:
		return p.AllowUnlisted
	default:
		return false
	}
}
