package gameController

import (
	"log"

	courseControllers "learnhub/controllers/course"
	"learnhub/database"
	"learnhub/middleware"
	"learnhub/models"
	courseModels "learnhub/models/course"
	gameModels "learnhub/models/game"
	gameValidator "learnhub/validators/game"

	"github.com/gofiber/fiber/v2"
)

// GameWithPairs bundles a memory game with its card pairs
type GameWithPairs struct {
	gameModels.MemoryGame
	Pairs []gameModels.MemoryGamePair `json:"pairs"`
}

func loadGame(c *fiber.Ctx) (*gameModels.MemoryGame, *courseModels.Course, error) {
	gameID := c.Locals("gameID").(int)

	db := database.Database.Db

	var game gameModels.MemoryGame
	if err := db.Where("id = ?", gameID).First(&game).Error; err != nil {
		return nil, nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Game not found!", nil)
	}

	var crs courseModels.Course
	if err := db.Where("id = ?", game.CourseID).First(&crs).Error; err != nil {
		return nil, nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	return &game, &crs, nil
}

// requireUnlocked applies the course access gate to the game payload
func requireUnlocked(c *fiber.Ctx, crs *courseModels.Course) error {
	user, ok := c.Locals("authUser").(*models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	if !courseControllers.IsCourseUnlocked(database.Database.Db, user, crs) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "An active subscription is required to access the game!", nil)
	}

	return nil
}

// CreateMemoryGame attaches the memory game to one of the caller's gamified
// courses. One game per course.
func CreateMemoryGame(c *fiber.Ctx) error {
	user, ok := c.Locals("authUser").(*models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedGame").(*gameValidator.CreateGameRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var crs courseModels.Course
	if err := db.Where("public_code = ?", reqData.CourseCode).First(&crs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if !crs.IsOwnedBy(user.ID) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not own this course!", nil)
	}

	if !crs.GamificationEnabled {
		return middleware.ValidationErrorResponse(c, map[string]string{
			"course": "This course is not gamified!",
		})
	}

	var existing gameModels.MemoryGame
	if err := db.Where("course_id = ?", crs.ID).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "This course already has a memory game!", nil)
	}

	game := gameModels.MemoryGame{
		CourseID: crs.ID,
		Name:     reqData.Name,
		Position: reqData.Position,
		GridSize: reqData.GridSize,
	}

	if err := db.Create(&game).Error; err != nil {
		log.Printf("Error creating memory game: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create game!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Game created successfully!", game)
}

// AddPair adds one question/answer pair to a game
func AddPair(c *fiber.Ctx) error {
	user, ok := c.Locals("authUser").(*models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	game, crs, err := loadGame(c)
	if err != nil {
		return err
	}

	if !crs.IsOwnedBy(user.ID) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not own this course!", nil)
	}

	reqData, ok := c.Locals("validatedPair").(*gameValidator.PairRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	pair := gameModels.MemoryGamePair{
		GameID:       game.ID,
		QuestionText: reqData.QuestionText,
		AnswerText:   reqData.AnswerText,
	}

	if err := database.Database.Db.Create(&pair).Error; err != nil {
		log.Printf("Error adding pair to game %d: %v", game.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add pair!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Pair added successfully!", pair)
}

// AddPairsBulk adds several pairs in one transaction
func AddPairsBulk(c *fiber.Ctx) error {
	user, ok := c.Locals("authUser").(*models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	game, crs, err := loadGame(c)
	if err != nil {
		return err
	}

	if !crs.IsOwnedBy(user.ID) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not own this course!", nil)
	}

	reqData, ok := c.Locals("validatedPairsBulk").(*gameValidator.BulkPairsRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	pairs := make([]gameModels.MemoryGamePair, len(reqData.Pairs))
	for i, p := range reqData.Pairs {
		pairs[i] = gameModels.MemoryGamePair{
			GameID:       game.ID,
			QuestionText: p.QuestionText,
			AnswerText:   p.AnswerText,
		}
	}

	if err := database.Database.Db.Create(&pairs).Error; err != nil {
		log.Printf("Error bulk adding pairs to game %d: %v", game.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add pairs!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Pairs added successfully!", pairs)
}

// GetMemoryGame returns the game row without its pairs
func GetMemoryGame(c *fiber.Ctx) error {
	game, crs, err := loadGame(c)
	if err != nil {
		return err
	}

	if err := requireUnlocked(c, crs); err != nil {
		return err
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Game fetched successfully!", game)
}

// ListPairs returns the card pairs of a game
func ListPairs(c *fiber.Ctx) error {
	game, crs, err := loadGame(c)
	if err != nil {
		return err
	}

	if err := requireUnlocked(c, crs); err != nil {
		return err
	}

	var pairs []gameModels.MemoryGamePair
	if err := database.Database.Db.Where("game_id = ?", game.ID).Find(&pairs).Error; err != nil {
		log.Printf("Error listing pairs for game %d: %v", game.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch pairs!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Pairs fetched successfully!", pairs)
}

// GetMemoryGameFull returns the game together with its pairs
func GetMemoryGameFull(c *fiber.Ctx) error {
	game, crs, err := loadGame(c)
	if err != nil {
		return err
	}

	if err := requireUnlocked(c, crs); err != nil {
		return err
	}

	var pairs []gameModels.MemoryGamePair
	if err := database.Database.Db.Where("game_id = ?", game.ID).Find(&pairs).Error; err != nil {
		log.Printf("Error listing pairs for game %d: %v", game.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch game!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Game fetched successfully!", GameWithPairs{
		MemoryGame: *game,
		Pairs:      pairs,
	})
}

// GetMemoryGameByCourseFull resolves a course's game through its public code
func GetMemoryGameByCourseFull(c *fiber.Ctx) error {
	publicCode := c.Params("publicCode")

	db := database.Database.Db

	var crs courseModels.Course
	if err := db.Where("public_code = ?", publicCode).First(&crs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if err := requireUnlocked(c, &crs); err != nil {
		return err
	}

	var game gameModels.MemoryGame
	if err := db.Where("course_id = ?", crs.ID).First(&game).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "This course has no memory game!", nil)
	}

	var pairs []gameModels.MemoryGamePair
	if err := db.Where("game_id = ?", game.ID).Find(&pairs).Error; err != nil {
		log.Printf("Error listing pairs for game %d: %v", game.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch game!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Game fetched successfully!", GameWithPairs{
		MemoryGame: game,
		Pairs:      pairs,
	})
}
