package userRoutes

import (
	userControllers "learnhub/controllers/user"
	"learnhub/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/user", middleware.JWTMiddleware, middleware.LoadUser())

	userGroup.Get("/profile", userControllers.GetProfile)
	userGroup.Patch("/profile", userControllers.UpdateProfile)
	userGroup.Post("/subscription/activate", userControllers.ActivatePlatformSubscription)
}
