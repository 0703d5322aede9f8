package controllers

import (
	"log"

	"learnhub/database"
	"learnhub/middleware"
	"learnhub/models"
	courseModels "learnhub/models/course"
	gameModels "learnhub/models/game"
	"learnhub/utils"

	"github.com/gofiber/fiber/v2"
)

// LessonView is the viewer-dependent projection of a lesson. Content and
// FileURL are only filled in for unlocked viewers.
type LessonView struct {
	ID           uint   `json:"id"`
	Title        string `json:"title"`
	Order        int    `json:"order"`
	IsGameLinked bool   `json:"is_game_linked"`
	Content      string `json:"content,omitempty"`
	FileURL      string `json:"file_url,omitempty"`
}

// GameView bundles a memory game with its card pairs
type GameView struct {
	gameModels.MemoryGame
	Pairs []gameModels.MemoryGamePair `json:"pairs"`
}

// ProjectLesson maps a lesson to its outbound shape for one viewer. The
// same unlocked flag must be applied to every lesson of a response so gated
// fields never leak partially.
func ProjectLesson(lesson *courseModels.Lesson, unlocked bool) LessonView {
	view := LessonView{
		ID:           lesson.ID,
		Title:        lesson.Title,
		Order:        lesson.Order,
		IsGameLinked: lesson.IsGameLinked,
	}
	if unlocked {
		view.Content = lesson.Content
		view.FileURL = lesson.FileURL
	}
	return view
}

// ListCourses returns the published course catalog, ungated fields only
func ListCourses(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedList").(*struct {
		Page  *int `json:"page"`
		Limit *int `json:"limit"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	page := *reqData.Page
	limit := *reqData.Limit
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&courseModels.Course{}).
		Where("status = ?", courseModels.StatusPublished)

	if category := c.Query("category"); category != "" {
		db = db.Where("category = ?", category)
	}
	if level := c.Query("level"); level != "" {
		db = db.Where("level = ?", level)
	}

	var total int64
	db.Count(&total)

	var courses []courseModels.Course
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	response := map[string]interface{}{
		"courses": courses,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", response)
}

// GetCourseDetail returns one course with its lessons and, when unlocked,
// the gated lesson bodies and the game payload. Unpublished courses are not
// found for anyone but their owner.
func GetCourseDetail(c *fiber.Ctx) error {
	user, ok := c.Locals("authUser").(*models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	publicCode := c.Params("publicCode")

	db := database.Database.Db

	var crs courseModels.Course
	if err := db.Where("public_code = ?", publicCode).First(&crs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if crs.Status != courseModels.StatusPublished && !crs.IsOwnedBy(user.ID) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	// One gate decision applied uniformly to every gated field below.
	unlocked := IsCourseUnlocked(db, user, &crs)

	var lessons []courseModels.Lesson
	if err := db.Where("course_id = ?", crs.ID).Order("\"order\" asc").Find(&lessons).Error; err != nil {
		log.Printf("Error fetching lessons for course %d: %v", crs.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course detail!", nil)
	}

	lessonViews := make([]LessonView, len(lessons))
	for i := range lessons {
		lessonViews[i] = ProjectLesson(&lessons[i], unlocked)
	}

	var gameView *GameView
	if unlocked && crs.GamificationEnabled {
		var game gameModels.MemoryGame
		if err := db.Where("course_id = ?", crs.ID).First(&game).Error; err == nil {
			var pairs []gameModels.MemoryGamePair
			db.Where("game_id = ?", game.ID).Find(&pairs)
			gameView = &GameView{MemoryGame: game, Pairs: pairs}
		}
	}

	isSubscribed := false
	if user.Role == models.RoleStudent {
		var sub courseModels.CourseSubscription
		if err := db.Where("user_id = ? AND course_id = ? AND is_active = ?", user.ID, crs.ID, true).First(&sub).Error; err == nil {
			isSubscribed = true
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course detail fetched successfully!", fiber.Map{
		"course":        crs,
		"cover_image":   utils.FetchCoverImageBase64(crs.CoverImageURL),
		"lessons":       lessonViews,
		"game":          gameView,
		"is_unlocked":   unlocked,
		"is_subscribed": isSubscribed,
	})
}
