package userController

import (
	"log"
	"time"

	"learnhub/database"
	"learnhub/middleware"
	"learnhub/models"

	"github.com/gofiber/fiber/v2"
)

// GetProfile returns the caller's account
func GetProfile(c *fiber.Ctx) error {
	user, ok := c.Locals("authUser").(*models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	user.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched successfully!", user)
}

// UpdateProfile edits the caller's name fields
func UpdateProfile(c *fiber.Ctx) error {
	user, ok := c.Locals("authUser").(*models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := new(struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.FirstName != "" {
		user.FirstName = reqData.FirstName
	}
	if reqData.LastName != "" {
		user.LastName = reqData.LastName
	}

	if err := database.Database.Db.Save(user).Error; err != nil {
		log.Printf("Error updating profile: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update profile!", nil)
	}

	user.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile updated successfully!", user)
}

// ActivatePlatformSubscription opens a 30-day platform subscription window
// for the caller. The daily scheduler closes it once the end date passes.
func ActivatePlatformSubscription(c *fiber.Ctx) error {
	user, ok := c.Locals("authUser").(*models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	now := time.Now()
	end := now.AddDate(0, 0, 30)

	user.HasPlatformSubscription = true
	user.SubscriptionStart = &now
	user.SubscriptionEnd = &end

	if err := database.Database.Db.Save(user).Error; err != nil {
		log.Printf("Error activating platform subscription: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to activate subscription!", nil)
	}

	user.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Platform subscription activated.", user)
}
