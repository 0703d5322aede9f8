package courseRoutes

import (
	controllers "learnhub/controllers/course"
	"learnhub/middleware"
	"learnhub/models"
	validators "learnhub/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up catalog, authoring, subscription and progress routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course", middleware.JWTMiddleware)

	// Catalog (any authenticated role)
	courseGroup.Get("/list", middleware.LoadUser(), validators.CourseList(), controllers.ListCourses)

	// Authoring (owning professor)
	courseGroup.Post("/", middleware.RequireRole(models.RoleProfessor), validators.CreateCourse(), controllers.CreateCourse)
	courseGroup.Get("/mine", middleware.RequireRole(models.RoleProfessor), validators.CourseList(), controllers.MyCourses)
	courseGroup.Patch("/:publicCode/publish", middleware.RequireRole(models.RoleProfessor), controllers.PublishCourse)
	courseGroup.Patch("/:publicCode", middleware.RequireRole(models.RoleProfessor), validators.UpdateCourse(), controllers.UpdateCourse)
	courseGroup.Delete("/:publicCode", middleware.RequireRole(models.RoleProfessor), controllers.DeleteCourse)

	// Lessons
	courseGroup.Post("/:publicCode/lessons", middleware.RequireRole(models.RoleProfessor), validators.CreateLesson(), controllers.CreateLesson)

	// Subscription lifecycle (students)
	courseGroup.Post("/:publicCode/subscribe", middleware.RequireRole(models.RoleStudent), controllers.Subscribe)
	courseGroup.Delete("/:publicCode/subscribe", middleware.RequireRole(models.RoleStudent), controllers.Unsubscribe)

	// Detail view last so the static segments above keep precedence
	courseGroup.Get("/:publicCode", middleware.LoadUser(), controllers.GetCourseDetail)

	lessonGroup := app.Group("/lessons", middleware.JWTMiddleware)
	lessonGroup.Get("/", middleware.LoadUser(), controllers.ListLessons)
	lessonGroup.Patch("/:id", middleware.RequireRole(models.RoleProfessor), validators.LessonID(), validators.UpdateLesson(), controllers.UpdateLesson)
	lessonGroup.Delete("/:id", middleware.RequireRole(models.RoleProfessor), validators.LessonID(), controllers.DeleteLesson)

	progressGroup := app.Group("/progress", middleware.JWTMiddleware, middleware.LoadUser())
	progressGroup.Put("/lessons/:id", validators.LessonID(), validators.LessonProgress(), controllers.UpdateLessonProgress)
	progressGroup.Delete("/lessons/:id", validators.LessonID(), controllers.DeleteLessonProgress)
	progressGroup.Get("/courses/:publicCode", controllers.GetCourseProgress)
}
