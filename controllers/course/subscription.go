package controllers

import (
	"errors"
	"log"

	"learnhub/database"
	"learnhub/middleware"
	"learnhub/models"
	courseModels "learnhub/models/course"
	"learnhub/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Subscribe activates the caller's subscription to a published course.
// Subscribing while already active is a no-op returning the current state;
// a cancelled subscription is reactivated on its existing row.
func Subscribe(c *fiber.Ctx) error {
	user, ok := c.Locals("authUser").(*models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	publicCode := c.Params("publicCode")

	db := database.Database.Db

	var crs courseModels.Course
	if err := db.Where("public_code = ? AND status = ?", publicCode, courseModels.StatusPublished).First(&crs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var sub courseModels.CourseSubscription
	err := db.Where("user_id = ? AND course_id = ?", user.ID, crs.ID).First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		sub = courseModels.CourseSubscription{
			UserID:   user.ID,
			CourseID: crs.ID,
			IsActive: true,
		}
		if err := db.Create(&sub).Error; err != nil {
			if isUniqueViolation(err) {
				// A concurrent request created the row first; report its state.
				if err := db.Where("user_id = ? AND course_id = ?", user.ID, crs.ID).First(&sub).Error; err == nil {
					return middleware.JsonResponse(c, fiber.StatusOK, true, "Already subscribed to this course!", sub)
				}
				return middleware.JsonResponse(c, fiber.StatusConflict, false, "Subscription already exists, please retry!", nil)
			}
			log.Printf("Error creating subscription: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to subscribe!", nil)
		}

		go func(email, name, title string) {
			if err := utils.SendSubscriptionEmail(email, name, title); err != nil {
				log.Printf("Error sending subscription email: %v", err)
			}
		}(user.Email, user.FirstName, crs.Title)

		return middleware.JsonResponse(c, fiber.StatusCreated, true, "Subscribed to course successfully!", sub)
	} else if err != nil {
		log.Printf("Error fetching subscription: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to subscribe!", nil)
	}

	if sub.IsActive {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Already subscribed to this course!", sub)
	}

	sub.IsActive = true
	if err := db.Save(&sub).Error; err != nil {
		log.Printf("Error reactivating subscription: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to subscribe!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Subscription reactivated successfully!", sub)
}

// Unsubscribe deactivates the caller's subscription. The row is kept so a
// later re-subscribe reuses it.
func Unsubscribe(c *fiber.Ctx) error {
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

	var sub courseModels.CourseSubscription
	if err := db.Where("user_id = ? AND course_id = ? AND is_active = ?", user.ID, crs.ID, true).First(&sub).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No active subscription for this course!", nil)
	}

	sub.IsActive = false
	if err := db.Save(&sub).Error; err != nil {
		log.Printf("Error cancelling subscription: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to unsubscribe!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Unsubscribed from course successfully!", sub)
}
