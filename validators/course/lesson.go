package courseValidator

import (
	"strconv"
	"strings"

	"learnhub/middleware"

	"github.com/gofiber/fiber/v2"
)

// CreateLessonRequest is the payload for adding a lesson to a course. A nil
// Order means "append after the highest existing order".
type CreateLessonRequest struct {
	Title        string `json:"title" validate:"required,min=3,max=200"`
	Content      string `json:"content"`
	FileURL      string `json:"file_url" validate:"omitempty,url"`
	Order        *int   `json:"order"`
	IsGameLinked bool   `json:"is_game_linked"`
}

// UpdateLessonRequest is the partial payload for editing a lesson
type UpdateLessonRequest struct {
	Title        string  `json:"title" validate:"omitempty,min=3,max=200"`
	Content      *string `json:"content"`
	FileURL      *string `json:"file_url"`
	Order        *int    `json:"order"`
	IsGameLinked *bool   `json:"is_game_linked"`
}

// LessonProgressRequest toggles the caller's completion state for a lesson
type LessonProgressRequest struct {
	Completed *bool `json:"completed" validate:"required"`
}

func CreateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateLessonRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Title = strings.TrimSpace(reqData.Title)

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}

func UpdateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateLessonRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedLessonUpdate", reqData)
		return c.Next()
	}
}

// LessonID validates the :id path parameter
func LessonID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		lessonIDStr := strings.TrimSpace(c.Params("id"))
		if lessonIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Lesson ID is required!", nil)
		}

		lessonID, err := strconv.Atoi(lessonIDStr)
		if err != nil || lessonID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Lesson ID!", nil)
		}

		c.Locals("lessonID", lessonID)
		return c.Next()
	}
}

func LessonProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(LessonProgressRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedLessonProgress", reqData)
		return c.Next()
	}
}
