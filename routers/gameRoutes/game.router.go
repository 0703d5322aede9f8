package gameRoutes

import (
	gameControllers "learnhub/controllers/game"
	"learnhub/middleware"
	"learnhub/models"
	gameValidators "learnhub/validators/game"

	"github.com/gofiber/fiber/v2"
)

func SetupGameRoutes(app *fiber.App) {
	gameGroup := app.Group("/memory-games", middleware.JWTMiddleware)

	gameGroup.Post("/create", middleware.RequireRole(models.RoleProfessor), gameValidators.CreateGame(), gameControllers.CreateMemoryGame)
	gameGroup.Post("/:id/pairs/bulk", middleware.RequireRole(models.RoleProfessor), gameValidators.GameID(), gameValidators.AddPairsBulk(), gameControllers.AddPairsBulk)
	gameGroup.Post("/:id/pairs", middleware.RequireRole(models.RoleProfessor), gameValidators.GameID(), gameValidators.AddPair(), gameControllers.AddPair)
	gameGroup.Get("/by-course/:publicCode/full", middleware.LoadUser(), gameControllers.GetMemoryGameByCourseFull)
	gameGroup.Get("/:id/pairs", middleware.LoadUser(), gameValidators.GameID(), gameControllers.ListPairs)
	gameGroup.Get("/:id/full", middleware.LoadUser(), gameValidators.GameID(), gameControllers.GetMemoryGameFull)
	gameGroup.Get("/:id", middleware.LoadUser(), gameValidators.GameID(), gameControllers.GetMemoryGame)
}
