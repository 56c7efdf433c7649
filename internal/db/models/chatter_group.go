package models

import "time"

// Collaboration types as Salesforce reports them on CollaborationGroup.
const (
	// CollaborationTypePublic marks a group anyone in the org can join.
	CollaborationTypePublic = "Public"
	// CollaborationTypePrivate marks a group requiring owner approval to join.
	CollaborationTypePrivate = "Private"
	// CollaborationTypeUnlisted marks a group hidden from non-members.
	CollaborationTypeUnlisted = "Unlisted"
)

// ChatterGroup is the local mirror of a Salesforce CollaborationGroup record.
// Mirrors are created by the sync handler when the auto-create policy allows
// the group's collaboration type, refreshed on every subsequent group update
// while active, and removed when the source group is deleted.
// At most one mirror exists per distinct group id; GroupID always holds the
// 18-character id form.
type ChatterGroup struct {
	// ID is the unique identifier for the mirror record.
	ID uint `gorm:"primaryKey"`
	// GroupID is the 18-character Salesforce id of the source group.
	GroupID string `gorm:"size:18;not null;uniqueIndex"`
	// Active controls whether sync keeps refreshing this mirror.
	// An operator can set it false to freeze the record; sync never flips it back.
	Active bool
	// Name is the group's display name.
	Name string `gorm:"size:255"`
	// OwnerID is the Salesforce id of the group owner.
	OwnerID string `gorm:"size:18"`
	// Description is the group description text.
	Description string `gorm:"size:1000"`
	// Email is the group's email address for posting by mail.
	Email string `gorm:"size:255"`
	// MemberCount is the group's member count at last sync.
	MemberCount int
	// SmallPhotoURL, MediumPhotoURL, FullPhotoURL and BannerPhotoURL carry the
	// group photo in the four sizes Salesforce serves. They are only available
	// from a fresh query, not from the trigger payload.
	SmallPhotoURL  string `gorm:"size:1024"`
	MediumPhotoURL string `gorm:"size:1024"`
	FullPhotoURL   string `gorm:"size:1024"`
	BannerPhotoURL string `gorm:"size:1024"`
	// CollaborationType is Public, Private or Unlisted.
	CollaborationType string `gorm:"size:20"`
	// IsArchived mirrors the group's archived flag.
	IsArchived bool
	// IsBroadcast mirrors the broadcast-only flag (only owners/managers may post).
	IsBroadcast bool
	// CreatedAt is the timestamp when the mirror was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the mirror was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the ChatterGroup model.
func (ChatterGroup) TableName() string {
	return "chatter_groups"
}
