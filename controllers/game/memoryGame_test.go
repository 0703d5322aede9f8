package gameController_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"learnhub/config"
	"learnhub/database"
	"learnhub/middleware"
	"learnhub/models"
	courseModels "learnhub/models/course"
	gameModels "learnhub/models/game"
	"learnhub/routers/gameRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupGameTest(t *testing.T) (*gorm.DB, *fiber.App) {
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
	gameRoutes.SetupGameRoutes(app)
	return db, app
}

type apiResponse struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

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

func newUser(t *testing.T, db *gorm.DB, email, role string) (*models.User, string) {
	t.Helper()

	user := &models.User{FirstName: "Test", LastName: "User", Email: email, Password: "x", Role: role}
	require.NoError(t, db.Create(user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.FirstName, user.Role, user.Email)
	require.NoError(t, err)
	return user, "Bearer " + token
}

func newCourse(t *testing.T, db *gorm.DB, professorID uint, code string, gamified bool) *courseModels.Course {
	t.Helper()

	crs := &courseModels.Course{
		ProfessorID: professorID,
		PublicCode:  code,
		Title:       "Course " + code,
		Level:       courseModels.LevelBasic,
		Status:      courseModels.StatusPublished,
	}
	if gamified {
		crs.GamificationEnabled = true
		crs.GamificationType = courseModels.GamificationMemory
	}
	require.NoError(t, db.Create(crs).Error)
	return crs
}

func gamePayload(code string) map[string]interface{} {
	return map[string]interface{}{
		"course_code": code,
		"name":        "Capitals",
		"position":    gameModels.PositionEnd,
		"grid_size":   "4x4",
	}
}

func TestCreateMemoryGameRules(t *testing.T) {
	db, app := setupGameTest(t)

	owner, ownerToken := newUser(t, db, "owner@example.com", models.RoleProfessor)
	_, otherToken := newUser(t, db, "other@example.com", models.RoleProfessor)

	newCourse(t, db, owner.ID, "crs-plain", false)
	newCourse(t, db, owner.ID, "crs-game", true)

	// Non-gamified course cannot host a game.
	status, _ := doRequest(t, app, http.MethodPost, "/memory-games/create", ownerToken, gamePayload("crs-plain"))
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	// Only the owner may create it.
	status, _ = doRequest(t, app, http.MethodPost, "/memory-games/create", otherToken, gamePayload("crs-game"))
	assert.Equal(t, http.StatusForbidden, status)

	status, resp := doRequest(t, app, http.MethodPost, "/memory-games/create", ownerToken, gamePayload("crs-game"))
	require.Equal(t, http.StatusCreated, status)

	var game gameModels.MemoryGame
	require.NoError(t, json.Unmarshal(resp.Data, &game))
	assert.Equal(t, gameModels.PositionEnd, game.Position)

	// One game per course.
	status, _ = doRequest(t, app, http.MethodPost, "/memory-games/create", ownerToken, gamePayload("crs-game"))
	assert.Equal(t, http.StatusConflict, status)
}

func TestMemoryGamePairsAndGating(t *testing.T) {
	db, app := setupGameTest(t)

	owner, ownerToken := newUser(t, db, "owner@example.com", models.RoleProfessor)
	student, studentToken := newUser(t, db, "student@example.com", models.RoleStudent)

	crs := newCourse(t, db, owner.ID, "crs-play", true)

	status, resp := doRequest(t, app, http.MethodPost, "/memory-games/create", ownerToken, gamePayload("crs-play"))
	require.Equal(t, http.StatusCreated, status)

	var game gameModels.MemoryGame
	require.NoError(t, json.Unmarshal(resp.Data, &game))
	gameID := strconv.FormatUint(uint64(game.ID), 10)

	status, _ = doRequest(t, app, http.MethodPost, "/memory-games/"+gameID+"/pairs", ownerToken,
		map[string]interface{}{"question_text": "France", "answer_text": "Paris"})
	require.Equal(t, http.StatusCreated, status)

	status, _ = doRequest(t, app, http.MethodPost, "/memory-games/"+gameID+"/pairs/bulk", ownerToken,
		map[string]interface{}{"pairs": []map[string]interface{}{
			{"question_text": "Spain", "answer_text": "Madrid"},
			{"question_text": "Italy", "answer_text": "Rome"},
		}})
	require.Equal(t, http.StatusCreated, status)

	// Game payload is gated like lesson content.
	status, _ = doRequest(t, app, http.MethodGet, "/memory-games/"+gameID+"/full", studentToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	sub := &courseModels.CourseSubscription{UserID: student.ID, CourseID: crs.ID, IsActive: true}
	require.NoError(t, db.Create(sub).Error)

	status, resp = doRequest(t, app, http.MethodGet, "/memory-games/"+gameID+"/full", studentToken, nil)
	require.Equal(t, http.StatusOK, status)

	var full struct {
		gameModels.MemoryGame
		Pairs []gameModels.MemoryGamePair `json:"pairs"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &full))
	assert.Len(t, full.Pairs, 3)

	// Resolution by course code returns the same payload.
	status, resp = doRequest(t, app, http.MethodGet, "/memory-games/by-course/crs-play/full", studentToken, nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(resp.Data, &full))
	assert.Equal(t, game.ID, full.ID)
	assert.Len(t, full.Pairs, 3)

	// A course without a game is a miss, not an error.
	newCourse(t, db, owner.ID, "crs-nogame", true)
	status, _ = doRequest(t, app, http.MethodGet, "/memory-games/by-course/crs-nogame/full", ownerToken, nil)
	assert.Equal(t, http.StatusNotFound, status)
}
