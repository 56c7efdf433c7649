package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexedwards/argon2id"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hartikaaggarwal/salesforce-chatter-bot-groups/internal/db/controller/setting"
	"github.com/hartikaaggarwal/salesforce-chatter-bot-groups/internal/db/models"
)

const testToken = "0sgVkfwVAPpiXsqYlKLrFRCZfJEYCBGa"

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

func seedToken(t *testing.T, db *gorm.DB) {
	t.Helper()

	hash, err := argon2id.CreateHash(testToken, argon2id.DefaultParams)
	require.NoError(t, err)

	_, err = setting.Set(db, SettingKeyWebhookTokenHash, []byte(hash))
	require.NoError(t, err)
}

func authTestApp(db *gorm.DB) *fiber.App {
	app := fiber.New()
	app.Use(TokenAuth(db))
	app.Get("/checkalive", func(c *fiber.Ctx) error { return c.SendString("OK") })
	app.Post("/inbound-email", func(c *fiber.Ctx) error { return c.SendString("handled") })

	return app
}

func TestTokenAuth(t *testing.T) {
	db := setupTestDB(t)
	seedToken(t, db)
	app := authTestApp(db)

	tests := []struct {
		name       string
		header     string
		value      string
		wantStatus int
	}{
		{
			name:       "bearer token accepted",
			header:     fiber.HeaderAuthorization,
			value:      "Bearer " + testToken,
			wantStatus: http.StatusOK,
		},
		{
			name:       "webhook token header accepted",
			header:     "X-Webhook-Token",
			value:      testToken,
			wantStatus: http.StatusOK,
		},
		{
			name:       "wrong token rejected",
			header:     fiber.HeaderAuthorization,
			value:      "Bearer not-the-token",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "missing token rejected",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/inbound-email", nil)
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestTokenAuthCheckAliveIsOpen(t *testing.T) {
	db := setupTestDB(t)
	seedToken(t, db)
	app := authTestApp(db)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/checkalive", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestTokenAuthUnconfiguredRejects(t *testing.T) {
	db := setupTestDB(t)
	app := authTestApp(db)

	req := httptest.NewRequest(http.MethodPost, "/inbound-email", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+testToken)

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
