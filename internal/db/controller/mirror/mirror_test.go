package mirror

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hartikaaggarwal/salesforce-chatter-bot-groups/internal/db/models"
)

const (
	groupIDShort = "0F9B0000000HWjK"
	groupIDLong  = "0F9B0000000HWjKKAW"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	// Migrate the schema
	err = db.AutoMigrate(&models.ChatterGroup{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func seedGroups(t *testing.T, db *gorm.DB, groups []models.ChatterGroup) {
	t.Helper()
	for _, group := range groups {
		err := db.Create(&group).Error
		require.NoError(t, err, "failed to seed test data")
	}
}

func TestGet(t *testing.T) {
	db := setupTestDB(t)

	seedGroups(t, db, []models.ChatterGroup{
		{GroupID: groupIDLong, Active: true, Name: "All Sales"},
	})

	testCases := []struct {
		name          string
		dbParam       *gorm.DB
		groupID       string
		expectedError error
	}{
		{
			name:          "nil database",
			dbParam:       nil,
			groupID:       groupIDLong,
			expectedError: ErrDBNil,
		},
		{
			name:    "lookup by 18 character form",
			dbParam: db,
			groupID: groupIDLong,
		},
		{
			name:    "lookup by 15 character form",
			dbParam: db,
			groupID: groupIDShort,
		},
		{
			name:          "unknown group",
			dbParam:       db,
			groupID:       "0F9B0000000XXXX",
			expectedError: ErrMirrorNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			group, err := Get(tc.dbParam, tc.groupID)

			if tc.expectedError != nil {
				require.Error(t, err)
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, group)
			} else {
				require.NoError(t, err)
				require.NotNil(t, group)
				assert.Equal(t, "All Sales", group.Name)
			}
		})
	}
}

func TestGetInvalidID(t *testing.T) {
	db := setupTestDB(t)

	_, err := Get(db, "not-an-id")
	require.Error(t, err)
}

func TestGetByGroupIDs(t *testing.T) {
	db := setupTestDB(t)

	seedGroups(t, db, []models.ChatterGroup{
		{GroupID: groupIDLong, Active: true, Name: "All Sales"},
		// a record stored in the short form still has to be found and
		// keyed under its long form
		{GroupID: "0F9B0000000Abcd", Active: true, Name: "Support"},
	})

	byID, err := GetByGroupIDs(db, []string{groupIDShort, "0F9B0000000Abcd", "0F9B0000000Zzzz"})
	require.NoError(t, err)
	require.Len(t, byID, 2)

	assert.Equal(t, "All Sales", byID[groupIDLong].Name)

	// "0F9B0000000Abcd" expands to its computed 18 character key
	found := false
	for key, g := range byID {
		if g.Name == "Support" {
			found = true
			assert.Len(t, key, 18)
		}
	}
	assert.True(t, found, "short form record should be keyed by long form")
}

func TestUpsertBatch(t *testing.T) {
	db := setupTestDB(t)

	groups := []models.ChatterGroup{
		{GroupID: groupIDLong, Active: true, Name: "All Sales", MemberCount: 4, CollaborationType: models.CollaborationTypePublic},
	}

	require.NoError(t, UpsertBatch(db, groups))

	// same key again with changed fields updates instead of duplicating
	groups = []models.ChatterGroup{
		{GroupID: groupIDLong, Active: true, Name: "All Sales EMEA", MemberCount: 9, CollaborationType: models.CollaborationTypePublic},
	}

	require.NoError(t, UpsertBatch(db, groups))

	var count int64
	db.Model(&models.ChatterGroup{}).Count(&count)
	assert.Equal(t, int64(1), count)

	stored, err := Get(db, groupIDLong)
	require.NoError(t, err)
	assert.Equal(t, "All Sales EMEA", stored.Name)
	assert.Equal(t, 9, stored.MemberCount)
}

func TestUpsertBatchEmpty(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, UpsertBatch(db, nil))
	require.ErrorIs(t, UpsertBatch(nil, nil), ErrDBNil)
}

func TestUpdateBatch(t *testing.T) {
	db := setupTestDB(t)

	seedGroups(t, db, []models.ChatterGroup{
		{GroupID: groupIDLong, Active: true, Name: "All Sales"},
	})

	stored, err := Get(db, groupIDLong)
	require.NoError(t, err)

	stored.Name = "Renamed"
	stored.MemberCount = 12

	require.NoError(t, UpdateBatch(db, []models.ChatterGroup{*stored}))

	reloaded, err := Get(db, groupIDLong)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", reloaded.Name)
	assert.Equal(t, 12, reloaded.MemberCount)
}

func TestDeleteByGroupIDs(t *testing.T) {
	db := setupTestDB(t)

	testCases := []struct {
		name            string
		deleteIDs       []string
		seedData        []models.ChatterGroup
		expectedDeleted int64
		expectedLeft    int64
	}{
		{
			name:      "delete by short form removes long form record",
			deleteIDs: []string{groupIDShort},
			seedData: []models.ChatterGroup{
				{GroupID: groupIDLong, Name: "All Sales"},
				{GroupID: "0F9B0000000Abcd", Name: "Support"},
			},
			expectedDeleted: 1,
			expectedLeft:    1,
		},
		{
			name:      "delete by long form removes short form record",
			deleteIDs: []string{"0F9B0000000AbcdKAC"},
			seedData: []models.ChatterGroup{
				{GroupID: "0F9B0000000Abcd", Name: "Support"},
			},
			expectedDeleted: 1,
			expectedLeft:    0,
		},
		{
			name:            "unknown ids delete nothing",
			deleteIDs:       []string{"0F9B0000000Zzzz"},
			seedData:        []models.ChatterGroup{{GroupID: groupIDLong, Name: "All Sales"}},
			expectedDeleted: 0,
			expectedLeft:    1,
		},
		{
			name:            "invalid ids are skipped",
			deleteIDs:       []string{"garbage"},
			seedData:        []models.ChatterGroup{{GroupID: groupIDLong, Name: "All Sales"}},
			expectedDeleted: 0,
			expectedLeft:    1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db.Exec("DELETE FROM chatter_groups")
			seedGroups(t, db, tc.seedData)

			deleted, err := DeleteByGroupIDs(db, tc.deleteIDs)
			require.NoError(t, err)
			assert.Equal(t, tc.expectedDeleted, deleted)

			var left int64
			db.Model(&models.ChatterGroup{}).Count(&left)
			assert.Equal(t, tc.expectedLeft, left)
		})
	}
}

func TestList(t *testing.T) {
	db := setupTestDB(t)

	seedGroups(t, db, []models.ChatterGroup{
		{GroupID: groupIDLong, Name: "Bravo"},
		{GroupID: "0F9B0000000Abcd", Name: "Alpha"},
		{GroupID: "0F9B0000000Efgh", Name: "Charlie"},
	})

	groups, total, err := List(db, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, groups, 2)
	assert.Equal(t, "Alpha", groups[0].Name)
	assert.Equal(t, "Bravo", groups[1].Name)

	groups, _, err = List(db, 2, 2)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "Charlie", groups[0].Name)
}
