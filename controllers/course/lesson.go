package controllers

import (
	"fmt"
	"log"
	"strings"

	"learnhub/database"
	"learnhub/middleware"
	"learnhub/models"
	courseModels "learnhub/models/course"
	courseValidator "learnhub/validators/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ResolveLessonOrder enforces the per-course sequencing rules for a lesson
// write. A nil order is auto-assigned max(existing)+1. Returns the order to
// persist and a field->message map of violations. excludeID skips the row
// being updated.
func ResolveLessonOrder(db *gorm.DB, crs *courseModels.Course, order *int, isGameLinked bool, excludeID uint) (int, map[string]string) {
	errs := make(map[string]string)

	assigned := 0
	if order == nil {
		var maxOrder int
		row := db.Model(&courseModels.Lesson{}).
			Where("course_id = ?", crs.ID).
			Select("COALESCE(MAX(\"order\"), 0)").
			Row()
		if err := row.Scan(&maxOrder); err != nil {
			maxOrder = 0
		}
		assigned = maxOrder + 1
	} else {
		assigned = *order
		if assigned < 1 {
			errs["order"] = "Order must be a positive integer!"
		} else {
			var count int64
			db.Model(&courseModels.Lesson{}).
				Where("course_id = ? AND \"order\" = ? AND id <> ?", crs.ID, assigned, excludeID).
				Count(&count)
			if count > 0 {
				errs["order"] = fmt.Sprintf("Order %d is already taken in this course!", assigned)
			}
		}
	}

	if isGameLinked {
		if !crs.GamificationEnabled {
			errs["is_game_linked"] = "This course is not gamified, a lesson cannot carry the game!"
		} else {
			var existing courseModels.Lesson
			err := db.Where("course_id = ? AND is_game_linked = ? AND id <> ?", crs.ID, true, excludeID).
				First(&existing).Error
			if err == nil {
				errs["is_game_linked"] = fmt.Sprintf("Lesson '%s' already carries the game for this course!", existing.Title)
			}
		}
	}

	return assigned, errs
}

// isUniqueViolation reports whether a store error came from a unique index,
// so race losers surface as conflicts rather than server errors.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint") || strings.Contains(msg, "unique")
}

// CreateLesson adds a lesson to one of the caller's courses
func CreateLesson(c *fiber.Ctx) error {
	user, ok := c.Locals("authUser").(*models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	publicCode := c.Params("publicCode")

	reqData, ok := c.Locals("validatedLesson").(*courseValidator.CreateLessonRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var crs courseModels.Course
	if err := db.Where("public_code = ?", publicCode).First(&crs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if !crs.IsOwnedBy(user.ID) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not own this course!", nil)
	}

	order, errs := ResolveLessonOrder(db, &crs, reqData.Order, reqData.IsGameLinked, 0)
	if len(errs) > 0 {
		return middleware.ValidationErrorResponse(c, errs)
	}

	lesson := courseModels.Lesson{
		CourseID:     crs.ID,
		Title:        reqData.Title,
		Content:      reqData.Content,
		FileURL:      reqData.FileURL,
		Order:        order,
		IsGameLinked: reqData.IsGameLinked,
	}

	if err := db.Create(&lesson).Error; err != nil {
		if isUniqueViolation(err) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "A concurrent write took this order, please retry!", nil)
		}
		log.Printf("Error creating lesson: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lesson created successfully!", lesson)
}

// UpdateLesson edits a lesson of one of the caller's courses
func UpdateLesson(c *fiber.Ctx) error {
	user, ok := c.Locals("authUser").(*models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	lessonID := c.Locals("lessonID").(int)

	reqData, ok := c.Locals("validatedLessonUpdate").(*courseValidator.UpdateLessonRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var lesson courseModels.Lesson
	if err := db.Where("id = ?", lessonID).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	var crs courseModels.Course
	if err := db.Where("id = ?", lesson.CourseID).First(&crs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if !crs.IsOwnedBy(user.ID) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not own this course!", nil)
	}

	order := lesson.Order
	gameLinked := lesson.IsGameLinked
	if reqData.IsGameLinked != nil {
		gameLinked = *reqData.IsGameLinked
	}

	checkOrder := &order
	if reqData.Order != nil {
		checkOrder = reqData.Order
	}

	assigned, errs := ResolveLessonOrder(db, &crs, checkOrder, gameLinked, lesson.ID)
	if len(errs) > 0 {
		return middleware.ValidationErrorResponse(c, errs)
	}

	if reqData.Title != "" {
		lesson.Title = reqData.Title
	}
	if reqData.Content != nil {
		lesson.Content = *reqData.Content
	}
	if reqData.FileURL != nil {
		lesson.FileURL = *reqData.FileURL
	}
	lesson.Order = assigned
	lesson.IsGameLinked = gameLinked

	if err := db.Save(&lesson).Error; err != nil {
		if isUniqueViolation(err) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "A concurrent write took this order, please retry!", nil)
		}
		log.Printf("Error updating lesson: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson updated successfully!", lesson)
}

// DeleteLesson removes a lesson. The delete is hard so its order slot frees
// up, and progress rows cascade away with it.
func DeleteLesson(c *fiber.Ctx) error {
	user, ok := c.Locals("authUser").(*models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	lessonID := c.Locals("lessonID").(int)

	db := database.Database.Db

	var lesson courseModels.Lesson
	if err := db.Where("id = ?", lessonID).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	var crs courseModels.Course
	if err := db.Where("id = ?", lesson.CourseID).First(&crs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if !crs.IsOwnedBy(user.ID) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not own this course!", nil)
	}

	if err := db.Unscoped().Delete(&lesson).Error; err != nil {
		log.Printf("Error deleting lesson: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson deleted successfully!", nil)
}

// ListLessons returns lessons the caller may see: professors get lessons of
// their own courses, students lessons of courses they actively subscribe to.
func ListLessons(c *fiber.Ctx) error {
	user, ok := c.Locals("authUser").(*models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	query := db.Model(&courseModels.Lesson{}).
		Joins("JOIN courses ON courses.id = lessons.course_id AND courses.deleted_at IS NULL")

	switch user.Role {
	case models.RoleProfessor:
		query = query.Where("courses.professor_id = ?", user.ID)
	case models.RoleStudent:
		query = query.
			Joins("JOIN course_subscriptions ON course_subscriptions.course_id = courses.id").
			Where("course_subscriptions.user_id = ? AND course_subscriptions.is_active = ?", user.ID, true)
	default:
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Lessons fetched successfully!", []courseModels.Lesson{})
	}

	if publicCode := c.Query("course"); publicCode != "" {
		query = query.Where("courses.public_code = ?", publicCode)
	}

	var lessons []courseModels.Lesson
	if err := query.Order("lessons.course_id asc, lessons.\"order\" asc").Find(&lessons).Error; err != nil {
		log.Printf("Error listing lessons: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch lessons!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lessons fetched successfully!", lessons)
}
