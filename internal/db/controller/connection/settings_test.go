package connection

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

func TestSettings_SaveAndLoad(t *testing.T) {
	db := setupTestDB(t)

	original := &Settings{
		LoginURL:         "https://login.salesforce.com",
		ClientID:         "3MVG9test",
		ClientSecret:     "super-secret-value",
		APIVersion:       "v59.0",
		DefaultNetworkID: "0DBB0000000CgmX",
		BotUserID:        "005XX000001SvwQ",
	}

	require.NoError(t, original.Save(db))

	loaded := &Settings{}
	require.NoError(t, loaded.Load(db))

	assert.Equal(t, original, loaded)
}

func TestSettings_LoadNotFound(t *testing.T) {
	db := setupTestDB(t)

	settings := &Settings{}
	require.Error(t, settings.Load(db))
}

func TestSettings_SaveOverwrites(t *testing.T) {
	db := setupTestDB(t)

	first := &Settings{
		LoginURL:     "https://login.salesforce.com",
		ClientID:     "first",
		ClientSecret: "first-secret",
		APIVersion:   "v58.0",
	}
	require.NoError(t, first.Save(db))

	second := &Settings{
		LoginURL:     "https://test.salesforce.com",
		ClientID:     "second",
		ClientSecret: "second-secret",
		APIVersion:   "v59.0",
	}
	require.NoError(t, second.Save(db))

	loaded := &Settings{}
	require.NoError(t, loaded.Load(db))
	assert.Equal(t, "second", loaded.ClientID)

	// only one setting row
	var count int64
	err := db.Model(&models.Setting{}).Where("name = ?", SettingKeySalesforce).Count(&count).Error
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestSettings_NilDatabase(t *testing.T) {
	settings := &Settings{}

	require.Error(t, settings.Save(nil))
	require.Error(t, settings.Load(nil))
}
