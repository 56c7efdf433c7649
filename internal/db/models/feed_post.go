package models

import "time"

// FeedPost records a Chatter feed element created by the inbound email handler.
// The row is written in the same transaction as the Connect API call, so a
// failed post leaves no trace behind.
type FeedPost struct {
	ID uint `gorm:"primaryKey"`
	// SubjectID is the record or group the feed element was posted to.
	SubjectID string `gorm:"size:18;not null;index"`
	// NetworkID is the community the post was routed to, empty for the default network.
	NetworkID string `gorm:"size:18"`
	// Body is the raw message text extracted from the email.
	Body string `gorm:"type:text"`
	// FeedElementID is the id Salesforce assigned to the created feed element.
	FeedElementID string `gorm:"size:18"`
	// CreatedAt is the timestamp when the post was recorded (managed by GORM).
	CreatedAt time.Time
}
