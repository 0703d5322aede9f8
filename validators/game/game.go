package gameValidator

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"learnhub/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

func init() {
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// CreateGameRequest attaches a memory game to a course
type CreateGameRequest struct {
	CourseCode string `json:"course_code" validate:"required"`
	Name       string `json:"name" validate:"required,min=3,max=100"`
	Position   string `json:"position" validate:"required,oneof=start middle end"`
	GridSize   string `json:"grid_size" validate:"required,oneof=2x2 4x4 6x6"`
}

// PairRequest is one question/answer card pair
type PairRequest struct {
	QuestionText string `json:"question_text" validate:"max=255"`
	AnswerText   string `json:"answer_text" validate:"required,max=255"`
}

// BulkPairsRequest adds several pairs at once
type BulkPairsRequest struct {
	Pairs []PairRequest `json:"pairs" validate:"required,min=1,dive"`
}

func validationErrors(err error) map[string]string {
	errs := make(map[string]string)

	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		errs["body"] = "Invalid request body!"
		return errs
	}

	for _, fe := range vErrs {
		switch fe.Tag() {
		case "required":
			errs[fe.Field()] = "This field is required!"
		case "min":
			errs[fe.Field()] = "Must be at least " + fe.Param() + " long!"
		case "max":
			errs[fe.Field()] = "Must be at most " + fe.Param() + " characters long!"
		case "oneof":
			errs[fe.Field()] = "Must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ") + "!"
		default:
			errs[fe.Field()] = "Invalid value!"
		}
	}
	return errs
}

// GameID validates the :id path parameter
func GameID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		gameIDStr := strings.TrimSpace(c.Params("id"))
		if gameIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Game ID is required!", nil)
		}

		gameID, err := strconv.Atoi(gameIDStr)
		if err != nil || gameID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Game ID!", nil)
		}

		c.Locals("gameID", gameID)
		return c.Next()
	}
}

func CreateGame() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateGameRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Name = strings.TrimSpace(reqData.Name)

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedGame", reqData)
		return c.Next()
	}
}

func AddPair() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(PairRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedPair", reqData)
		return c.Next()
	}
}

func AddPairsBulk() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(BulkPairsRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedPairsBulk", reqData)
		return c.Next()
	}
}
