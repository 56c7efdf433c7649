// Package mirror provides persistence operations for chatter group mirror records.
package mirror

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hartikaaggarwal/salesforce-chatter-bot-groups/internal/db/models"
	"github.com/hartikaaggarwal/salesforce-chatter-bot-groups/internal/sfid"
)

const (
	groupIDQueryPattern = "group_id IN ?"
)

var (
	// ErrMirrorNotFound is returned when no mirror record matches the group id.
	ErrMirrorNotFound = errors.New("mirror record not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// trackedColumns are the columns refreshed from Salesforce on every sync.
var trackedColumns = []string{
	"active", "name", "owner_id", "description", "email", "member_count",
	"small_photo_url", "medium_photo_url", "full_photo_url", "banner_photo_url",
	"collaboration_type", "is_archived", "is_broadcast", "updated_at",
}

// idForms expands group ids into their 15- and 18-character forms so queries
// match records regardless of which form was stored. Invalid ids are skipped.
func idForms(groupIDs []string) []string {
	forms := make([]string, 0, len(groupIDs)*2)

	for _, id := range groupIDs {
		f, err := sfid.Forms(id)
		if err != nil {
			continue
		}

		forms = append(forms, f...)
	}

	return forms
}

// Get retrieves the mirror record for a group id, matching either id form.
func Get(db *gorm.DB, groupID string) (*models.ChatterGroup, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	forms, err := sfid.Forms(groupID)
	if err != nil {
		return nil, err
	}

	var group models.ChatterGroup
	result := db.Where(groupIDQueryPattern, forms).First(&group)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrMirrorNotFound
		}
		return nil, result.Error
	}

	return &group, nil
}

// GetByGroupIDs retrieves mirror records for the given group ids, keyed by
// the 18-character id form.
func GetByGroupIDs(db *gorm.DB, groupIDs []string) (map[string]models.ChatterGroup, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var groups []models.ChatterGroup
	result := db.Where(groupIDQueryPattern, idForms(groupIDs)).Find(&groups)
	if result.Error != nil {
		return nil, result.Error
	}

	byID := make(map[string]models.ChatterGroup, len(groups))

	for _, g := range groups {
		long, err := sfid.To18(g.GroupID)
		if err != nil {
			continue
		}

		byID[long] = g
	}

	return byID, nil
}

// List retrieves mirror records with pagination.
func List(db *gorm.DB, offset, limit int) ([]models.ChatterGroup, int64, error) {
	if db == nil {
		return nil, 0, ErrDBNil
	}

	var total int64
	if err := db.Model(&models.ChatterGroup{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var groups []models.ChatterGroup
	result := db.Order("name").Offset(offset).Limit(limit).Find(&groups)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	return groups, total, nil
}

// UpsertBatch inserts new mirror records or, when the group id already exists,
// overwrites the tracked columns. Used for the insert-or-update-by-external-key
// half of a sync commit.
func UpsertBatch(db *gorm.DB, groups []models.ChatterGroup) error {
	if db == nil {
		return ErrDBNil
	}

	if len(groups) == 0 {
		return nil
	}

	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "group_id"}},
		DoUpdates: clause.AssignmentColumns(trackedColumns),
	}).Create(&groups)

	return result.Error
}

// UpdateBatch saves already loaded mirror records, all or nothing.
func UpdateBatch(db *gorm.DB, groups []models.ChatterGroup) error {
	if db == nil {
		return ErrDBNil
	}

	if len(groups) == 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for i := range groups {
			if err := tx.Save(&groups[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// DeleteByGroupIDs removes all mirror records whose group id matches any of
// the given ids in either id form. Returns the number of deleted records.
func DeleteByGroupIDs(db *gorm.DB, groupIDs []string) (int64, error) {
	if db == nil {
		return 0, ErrDBNil
	}

	forms := idForms(groupIDs)
	if len(forms) == 0 {
		return 0, nil
	}

	result := db.Where(groupIDQueryPattern, forms).Delete(&models.ChatterGroup{})
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}
