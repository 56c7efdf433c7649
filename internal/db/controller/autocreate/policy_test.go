package autocreate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hartikaaggarwal/salesforce-chatter-bot-groups/internal/db/models"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	// Migrate the schema
	err = db.AutoMigrate(&models.Setting{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func TestPolicy_LoadAbsentMeansAllFalse(t *testing.T) {
	db := setupTestDB(t)

	policy := &Policy{AllowPublic: true} // stale in-memory state gets reset
	err := policy.Load(db)
	require.NoError(t, err)

	assert.False(t, policy.AllowPublic)
	assert.False(t, policy.AllowPrivate)
	assert.False(t, policy.AllowUnlisted)
}

func TestPolicy_SaveAndLoad(t *testing.T) {
	db := setupTestDB(t)

	original := &Policy{AllowPublic: true, AllowUnlisted: true}
	require.NoError(t, original.Save(db))

	loaded := &Policy{}
	require.NoError(t, loaded.Load(db))

	assert.True(t, loaded.AllowPublic)
	assert.False(t, loaded.AllowPrivate)
	assert.True(t, loaded.AllowUnlisted)

	// Verify only one setting row exists after a second save
	original.AllowPublic = false
	require.NoError(t, original.Save(db))

	var count int64
	err := db.Model(&models.Setting{}).Where("name = ?", SettingKeyAutoCreatePolicy).Count(&count).Error
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, loaded.Load(db))
	assert.False(t, loaded.AllowPublic)
}

func TestPolicy_NilDatabase(t *testing.T) {
	policy := &Policy{}

	require.Error(t, policy.Load(nil))
	require.Error(t, policy.Save(nil))
}

func TestPolicy_Allows(t *testing.T) {
	testCases := []struct {
		name              string
		policy            Policy
		collaborationType string
		expected          bool
	}{
		{
			name:              "public allowed",
			policy:            Policy{AllowPublic: true},
			collaborationType: models.CollaborationTypePublic,
			expected:          true,
		},
		{
			name:              "public not allowed",
			policy:            Policy{AllowPrivate: true, AllowUnlisted: true},
			collaborationType: models.CollaborationTypePublic,
			expected:          false,
		},
		{
			name:              "private allowed",
			policy:            Policy{AllowPrivate: true},
			collaborationType: models.CollaborationTypePrivate,
			expected:          true,
		},
		{
			name:              "unlisted allowed",
			policy:            Policy{AllowUnlisted: true},
			collaborationType: models.CollaborationTypeUnlisted,
			expected:          true,
		},
		{
			name:              "zero policy allows nothing",
			policy:            Policy{},
			collaborationType: models.CollaborationTypePublic,
			expected:          false,
		},
		{
			name:              "unknown type never allowed",
			policy:            Policy{AllowPublic: true, AllowPrivate: true, AllowUnlisted: true},
			collaborationType: "Secret",
			expected:          false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.policy.Allows(tc.collaborationType))
		})
	}
}
