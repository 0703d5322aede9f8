package controllers

import (
	"log"

	"learnhub/database"
	"learnhub/middleware"
	"learnhub/models"
	courseModels "learnhub/models/course"
	"learnhub/utils"
	courseValidator "learnhub/validators/course"

	"github.com/gofiber/fiber/v2"
)

// CreateCourse registers a new course owned by the calling professor
func CreateCourse(c *fiber.Ctx) error {
	user, ok := c.Locals("authUser").(*models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCourse").(*courseValidator.CreateCourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	crs := courseModels.Course{
		ProfessorID:         user.ID,
		PublicCode:          utils.GeneratePublicCode(),
		Title:               reqData.Title,
		ShortDescription:    reqData.ShortDescription,
		LongDescription:     reqData.LongDescription,
		Category:            reqData.Category,
		Level:               reqData.Level,
		DurationHours:       reqData.DurationHours,
		CoverImageURL:       reqData.CoverImageURL,
		Status:              courseModels.StatusDraft,
		GamificationEnabled: reqData.GamificationEnabled,
		GamificationType:    reqData.GamificationType,
	}

	if err := database.Database.Db.Create(&crs).Error; err != nil {
		log.Printf("Error creating course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", crs)
}

// MyCourses lists the calling professor's own courses, drafts included
func MyCourses(c *fiber.Ctx) error {
	user, ok := c.Locals("authUser").(*models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

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

	db := database.Database.Db.Model(&courseModels.Course{}).Where("professor_id = ?", user.ID)

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

// UpdateCourse edits one of the caller's courses. The owner never changes.
func UpdateCourse(c *fiber.Ctx) error {
	user, ok := c.Locals("authUser").(*models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	publicCode := c.Params("publicCode")

	reqData, ok := c.Locals("validatedCourseUpdate").(*courseValidator.UpdateCourseRequest)
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

	if reqData.Title != "" {
		crs.Title = reqData.Title
	}
	if reqData.ShortDescription != nil {
		crs.ShortDescription = *reqData.ShortDescription
	}
	if reqData.LongDescription != nil {
		crs.LongDescription = *reqData.LongDescription
	}
	if reqData.Category != "" {
		crs.Category = reqData.Category
	}
	if reqData.Level != "" {
		crs.Level = reqData.Level
	}
	if reqData.DurationHours != nil {
		crs.DurationHours = *reqData.DurationHours
	}
	if reqData.CoverImageURL != nil {
		crs.CoverImageURL = *reqData.CoverImageURL
	}
	if reqData.GamificationEnabled != nil {
		crs.GamificationEnabled = *reqData.GamificationEnabled
	}
	if reqData.GamificationType != nil {
		crs.GamificationType = *reqData.GamificationType
	}

	// The gamification kind must hold on the merged state, not just the
	// fields of this request.
	if crs.GamificationEnabled && crs.GamificationType == "" {
		return middleware.ValidationErrorResponse(c, map[string]string{
			"gamification_type": "A gamification type is required when gamification is enabled!",
		})
	}
	if !crs.GamificationEnabled {
		crs.GamificationType = ""
	}

	if err := db.Save(&crs).Error; err != nil {
		log.Printf("Error updating course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", crs)
}

// PublishCourse moves a draft course to the published state
func PublishCourse(c *fiber.Ctx) error {
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

	if !crs.IsOwnedBy(user.ID) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not own this course!", nil)
	}

	crs.Status = courseModels.StatusPublished
	if err := db.Save(&crs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to publish course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course published successfully!", crs)
}

// DeleteCourse removes one of the caller's courses. The delete is hard so
// lessons, progress rows, subscriptions and games cascade away with it.
func DeleteCourse(c *fiber.Ctx) error {
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

	if !crs.IsOwnedBy(user.ID) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not own this course!", nil)
	}

	if err := db.Unscoped().Delete(&crs).Error; err != nil {
		log.Printf("Error deleting course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}
