package courseValidator

import (
	"strings"

	"learnhub/middleware"

	"github.com/gofiber/fiber/v2"
)

// CreateCourseRequest is the payload for creating a course
type CreateCourseRequest struct {
	Title               string `json:"title" validate:"required,min=3,max=150"`
	ShortDescription    string `json:"short_description" validate:"required,max=250"`
	LongDescription     string `json:"long_description"`
	Category            string `json:"category" validate:"required"`
	Level               string `json:"level" validate:"required,oneof=basic intermediate advanced"`
	DurationHours       int    `json:"duration_hours" validate:"omitempty,gt=0"`
	CoverImageURL       string `json:"cover_image_url" validate:"omitempty,url"`
	GamificationEnabled bool   `json:"gamification_enabled"`
	GamificationType    string `json:"gamification_type" validate:"required_if=GamificationEnabled true,omitempty,oneof=memory"`
}

// UpdateCourseRequest is the partial payload for editing a course. Pointer
// fields distinguish "absent" from "set to zero value".
type UpdateCourseRequest struct {
	Title               string  `json:"title" validate:"omitempty,min=3,max=150"`
	ShortDescription    *string `json:"short_description" validate:"omitempty,max=250"`
	LongDescription     *string `json:"long_description"`
	Category            string  `json:"category"`
	Level               string  `json:"level" validate:"omitempty,oneof=basic intermediate advanced"`
	DurationHours       *int    `json:"duration_hours" validate:"omitempty,gt=0"`
	CoverImageURL       *string `json:"cover_image_url"`
	GamificationEnabled *bool   `json:"gamification_enabled"`
	GamificationType    *string `json:"gamification_type" validate:"omitempty,oneof=memory"`
}

func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateCourseRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.ShortDescription = strings.TrimSpace(reqData.ShortDescription)

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateCourseRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

func CourseList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page  *int `json:"page"`
			Limit *int `json:"limit"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		errors := make(map[string]string)

		// Validate Page
		if reqData.Page == nil || *reqData.Page < 1 {
			errors["page"] = "Page must be greater than 0!"
		}

		// Validate Limit
		if reqData.Limit == nil || *reqData.Limit < 1 {
			errors["limit"] = "Limit must be greater than 0!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedList", reqData)
		return c.Next()
	}
}
