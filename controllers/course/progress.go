package controllers

import (
	"errors"
	"log"
	"time"

	"learnhub/database"
	"learnhub/middleware"
	"learnhub/models"
	courseModels "learnhub/models/course"
	"learnhub/utils"
	courseValidator "learnhub/validators/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecomputeCourseProgress recalculates the (user, course) aggregate from the
// live LessonProgress rows and persists it. Always a full overwrite, never an
// increment, so a missed event cannot cause drift. Must run inside the same
// transaction as the LessonProgress write that triggered it.
func RecomputeCourseProgress(tx *gorm.DB, userID uint, crs *courseModels.Course) (*courseModels.CourseProgress, error) {
	var total int64
	if err := tx.Model(&courseModels.Lesson{}).Where("course_id = ?", crs.ID).Count(&total).Error; err != nil {
		return nil, err
	}

	var completed int64
	if err := tx.Model(&courseModels.LessonProgress{}).
		Joins("JOIN lessons ON lessons.id = lesson_progresses.lesson_id AND lessons.deleted_at IS NULL").
		Where("lesson_progresses.user_id = ? AND lessons.course_id = ? AND lesson_progresses.completed = ?", userID, crs.ID, true).
		Count(&completed).Error; err != nil {
		return nil, err
	}

	// Lock the aggregate row so concurrent writers for the same pair
	// serialize on the recompute. SQLite serializes writes on its own.
	q := tx
	if tx.Dialector.Name() == "postgres" {
		q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var progress courseModels.CourseProgress
	err := q.Where("user_id = ? AND course_id = ?", userID, crs.ID).First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		progress = courseModels.CourseProgress{
			UserID:       userID,
			CourseID:     crs.ID,
			TotalLessons: int(total),
		}
		if err := tx.Create(&progress).Error; err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	progress.TotalLessons = int(total)
	progress.CompletedLessons = int(completed)

	if total > 0 && completed >= total {
		progress.Status = courseModels.ProgressCompleted
		// CompletedAt is monotonic: set once on first reaching 100%,
		// untouched on repeat completions.
		if progress.CompletedAt == nil {
			now := time.Now()
			progress.CompletedAt = &now
		}
	} else {
		progress.Status = courseModels.ProgressInProgress
		progress.CompletedAt = nil
	}

	if err := tx.Save(&progress).Error; err != nil {
		return nil, err
	}

	return &progress, nil
}

// UpdateLessonProgress upserts the caller's completion state for one lesson
// and recomputes the course aggregate in the same transaction.
func UpdateLessonProgress(c *fiber.Ctx) error {
	user, ok := c.Locals("authUser").(*models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	lessonID := c.Locals("lessonID").(int)

	reqData, ok := c.Locals("validatedLessonProgress").(*courseValidator.LessonProgressRequest)
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

	if !IsCourseUnlocked(db, user, &crs) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "An active subscription is required to track progress!", nil)
	}

	var progress *courseModels.CourseProgress
	wasCompleted := false

	err := db.Transaction(func(tx *gorm.DB) error {
		var lp courseModels.LessonProgress
		err := tx.Where("user_id = ? AND lesson_id = ?", user.ID, lesson.ID).First(&lp).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			lp = courseModels.LessonProgress{UserID: user.ID, LessonID: lesson.ID}
			if err := tx.Create(&lp).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		completed := *reqData.Completed
		if completed && !lp.Completed {
			now := time.Now()
			lp.CompletedAt = &now
		} else if !completed {
			lp.CompletedAt = nil
		}
		lp.Completed = completed

		if err := tx.Save(&lp).Error; err != nil {
			return err
		}

		var existing courseModels.CourseProgress
		if err := tx.Where("user_id = ? AND course_id = ?", user.ID, crs.ID).First(&existing).Error; err == nil {
			wasCompleted = existing.Status == courseModels.ProgressCompleted
		}

		progress, err = RecomputeCourseProgress(tx, user.ID, &crs)
		return err
	})
	if err != nil {
		log.Printf("Error updating lesson progress: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lesson progress!", nil)
	}

	if !wasCompleted && progress.Status == courseModels.ProgressCompleted {
		go func(email, name, title string) {
			if err := utils.SendCourseCompletionEmail(email, name, title); err != nil {
				log.Printf("Error sending completion email: %v", err)
			}
		}(user.Email, user.FirstName, crs.Title)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson progress updated successfully!", fiber.Map{
		"lesson_id":       lesson.ID,
		"completed":       *reqData.Completed,
		"course_progress": progress,
	})
}

// DeleteLessonProgress removes the caller's completion record for a lesson.
// The aggregate is recomputed in the same transaction.
func DeleteLessonProgress(c *fiber.Ctx) error {
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

	var lp courseModels.LessonProgress
	if err := db.Where("user_id = ? AND lesson_id = ?", user.ID, lesson.ID).First(&lp).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson progress not found!", nil)
	}

	var progress *courseModels.CourseProgress
	err := db.Transaction(func(tx *gorm.DB) error {
		// Hard delete so the (user, lesson) slot can be recreated.
		if err := tx.Unscoped().Delete(&lp).Error; err != nil {
			return err
		}
		var err error
		progress, err = RecomputeCourseProgress(tx, user.ID, &crs)
		return err
	})
	if err != nil {
		log.Printf("Error deleting lesson progress: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete lesson progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson progress deleted successfully!", fiber.Map{
		"course_progress": progress,
	})
}

// GetCourseProgress returns the caller's aggregate for a course, creating it
// on first read.
func GetCourseProgress(c *fiber.Ctx) error {
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

	if !IsCourseUnlocked(db, user, &crs) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "An active subscription is required!", nil)
	}

	var progress *courseModels.CourseProgress
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		progress, err = RecomputeCourseProgress(tx, user.ID, &crs)
		return err
	})
	if err != nil {
		log.Printf("Error fetching course progress: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course progress fetched successfully!", progress)
}
