package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strconv"
	"testing"

	"learnhub/config"
	"learnhub/database"
	"learnhub/middleware"
	"learnhub/models"
	courseModels "learnhub/models/course"
	"learnhub/routers/courseRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an isolated in-memory database, runs the full migration
// and installs it as the global instance the handlers read.
func setupTestDB(t *testing.T) *gorm.DB {
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
	return db
}

func createUser(t *testing.T, db *gorm.DB, email, role string) *models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		Password:  string(hashed),
		Role:      role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createCourse(t *testing.T, db *gorm.DB, professorID uint, code string, gamified bool) *courseModels.Course {
	t.Helper()

	crs := &courseModels.Course{
		ProfessorID:      professorID,
		PublicCode:       code,
		Title:            "Course " + code,
		ShortDescription: "short",
		Category:         "math",
		Level:            courseModels.LevelBasic,
		Status:           courseModels.StatusPublished,
	}
	if gamified {
		crs.GamificationEnabled = true
		crs.GamificationType = courseModels.GamificationMemory
	}
	require.NoError(t, db.Create(crs).Error)
	return crs
}

func createLesson(t *testing.T, db *gorm.DB, courseID uint, order int) *courseModels.Lesson {
	t.Helper()

	lesson := &courseModels.Lesson{
		CourseID: courseID,
		Title:    fmt.Sprintf("Lesson %d", order),
		Content:  "lesson body",
		Order:    order,
	}
	require.NoError(t, db.Create(lesson).Error)
	return lesson
}

func subscribe(t *testing.T, db *gorm.DB, userID, courseID uint) *courseModels.CourseSubscription {
	t.Helper()

	sub := &courseModels.CourseSubscription{UserID: userID, CourseID: courseID, IsActive: true}
	require.NoError(t, db.Create(sub).Error)
	return sub
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// newTestApp wires the real course routes onto a fresh fiber app.
func newTestApp() *fiber.App {
	app := fiber.New()
	courseRoutes.SetupCourseRoutes(app)
	return app
}

func bearerToken(t *testing.T, user *models.User) string {
	t.Helper()

	token, err := middleware.GenerateJWT(user.ID, user.FirstName, user.Role, user.Email)
	require.NoError(t, err)
	return "Bearer " + token
}

type apiResponse struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// doRequest runs one request through the app and decodes the JSON envelope.
func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, apiResponse) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}

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
