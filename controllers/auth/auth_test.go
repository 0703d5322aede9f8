package authController_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"learnhub/config"
	"learnhub/database"
	"learnhub/models"
	"learnhub/routers/authRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupAuthTest(t *testing.T) (*gorm.DB, *fiber.App) {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey:    "test-secret",
		SaltRound: bcrypt.MinCost,
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	authRoutes.SetupAuthRoutes(app)
	return db, app
}

type apiResponse struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) (int, apiResponse) {
	t.Helper()

	encoded, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(encoded))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var parsed apiResponse
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &parsed))
	}
	return resp.StatusCode, parsed
}

func signup(t *testing.T, app *fiber.App, email, role string) {
	t.Helper()

	status, _ := postJSON(t, app, "/auth/signup", map[string]interface{}{
		"first_name": "Test",
		"last_name":  "User",
		"email":      email,
		"password":   "password123",
		"role":       role,
	})
	require.Equal(t, http.StatusCreated, status)
}

func login(t *testing.T, app *fiber.App, email, password string) (int, apiResponse) {
	t.Helper()

	return postJSON(t, app, "/auth/login", map[string]interface{}{
		"email":    email,
		"password": password,
	})
}

func TestSignupAssignsRole(t *testing.T) {
	db, app := setupAuthTest(t)

	signup(t, app, "prof@example.com", "professor")
	signup(t, app, "student@example.com", "student")

	var prof, student models.User
	require.NoError(t, db.Where("email = ?", "prof@example.com").First(&prof).Error)
	require.NoError(t, db.Where("email = ?", "student@example.com").First(&student).Error)
	assert.Equal(t, models.RoleProfessor, prof.Role)
	assert.Equal(t, models.RoleStudent, student.Role)
}

func TestSignupDuplicateEmail(t *testing.T) {
	_, app := setupAuthTest(t)

	signup(t, app, "dup@example.com", "student")

	status, _ := postJSON(t, app, "/auth/signup", map[string]interface{}{
		"first_name": "Test",
		"last_name":  "User",
		"email":      "dup@example.com",
		"password":   "password123",
		"role":       "student",
	})
	assert.Equal(t, http.StatusConflict, status)
}

func TestLoginIssuesToken(t *testing.T) {
	_, app := setupAuthTest(t)

	signup(t, app, "user@example.com", "student")

	status, resp := login(t, app, "user@example.com", "password123")
	require.Equal(t, http.StatusOK, status)

	var payload struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &payload))
	assert.NotEmpty(t, payload.Token)
}

func TestLoginLocksAfterThreeFailures(t *testing.T) {
	db, app := setupAuthTest(t)

	signup(t, app, "locked@example.com", "student")

	for i := 0; i < 3; i++ {
		status, _ := login(t, app, "locked@example.com", "wrong-password")
		assert.Equal(t, http.StatusUnauthorized, status)
	}

	var user models.User
	require.NoError(t, db.Where("email = ?", "locked@example.com").First(&user).Error)
	assert.True(t, user.IsLocked)
	assert.Equal(t, 3, user.FailedLoginAttempts)

	// Correct credentials are rejected while locked.
	status, resp := login(t, app, "locked@example.com", "password123")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Contains(t, resp.Message, "locked")
}

func TestLoginSuccessResetsFailureCounter(t *testing.T) {
	db, app := setupAuthTest(t)

	signup(t, app, "reset@example.com", "student")

	for i := 0; i < 2; i++ {
		status, _ := login(t, app, "reset@example.com", "wrong-password")
		assert.Equal(t, http.StatusUnauthorized, status)
	}

	status, _ := login(t, app, "reset@example.com", "password123")
	require.Equal(t, http.StatusOK, status)

	var user models.User
	require.NoError(t, db.Where("email = ?", "reset@example.com").First(&user).Error)
	assert.False(t, user.IsLocked)
	assert.Equal(t, 0, user.FailedLoginAttempts)
	assert.Nil(t, user.LastFailedLogin)

	// The counter starts over, so two more misses still do not lock.
	login(t, app, "reset@example.com", "wrong-password")
	login(t, app, "reset@example.com", "wrong-password")
	require.NoError(t, db.Where("email = ?", "reset@example.com").First(&user).Error)
	assert.False(t, user.IsLocked)
	assert.Equal(t, 2, user.FailedLoginAttempts)
}

func TestLoginUnknownEmail(t *testing.T) {
	_, app := setupAuthTest(t)

	status, _ := login(t, app, "nobody@example.com", "password123")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestLoginRecordsTracking(t *testing.T) {
	db, app := setupAuthTest(t)

	signup(t, app, "tracked@example.com", "student")

	status, _ := login(t, app, "tracked@example.com", "password123")
	require.Equal(t, http.StatusOK, status)

	var count int64
	require.NoError(t, db.Model(&models.LoginTracking{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
