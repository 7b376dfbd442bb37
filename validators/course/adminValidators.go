package courseValidator

import (
	"elearn/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

type CreateCourseRequest struct {
	Title        string  `json:"title" validate:"required,min=3"`
	Description  string  `json:"description" validate:"required"`
	InstructorID uint    `json:"instructor_id" validate:"required"`
	Price        float64 `json:"price" validate:"gte=0"`
	IsFree       bool    `json:"is_free"`
	ContentLink  string  `json:"content_link" validate:"omitempty,url"`
	ThumbnailURL string  `json:"thumbnail_url" validate:"omitempty,url"`
	Featured     bool    `json:"featured"`
}

type UpdateCourseRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Price        *float64 `json:"price" validate:"omitempty,gte=0"`
	IsFree       *bool    `json:"is_free"`
	ContentLink  string   `json:"content_link" validate:"omitempty,url"`
	ThumbnailURL string   `json:"thumbnail_url" validate:"omitempty,url"`
	Featured     *bool    `json:"featured"`
	IsPublished  *bool    `json:"is_published"`
}

type CreateModuleRequest struct {
	Title       string `json:"title" validate:"required,min=3"`
	Description string `json:"description"`
	OrderIndex  int    `json:"order_index" validate:"gte=0"`
}

func adminFieldErrors(err error) map[string]string {
	errors := make(map[string]string)
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			errors[fe.Field()] = "Failed validation: " + fe.Tag()
		}
	} else {
		errors["request"] = "Invalid request body!"
	}
	return errors
}

// CreateCourse validator middleware. A free course must carry a zero
// price; a paid course must carry a positive one.
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateCourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, adminFieldErrors(err))
		}

		errors := make(map[string]string)
		if reqData.IsFree && reqData.Price != 0 {
			errors["price"] = "A free course must have price 0!"
		}
		if !reqData.IsFree && reqData.Price <= 0 {
			errors["price"] = "A paid course must have a positive price!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// UpdateCourse validator middleware
func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateCourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, adminFieldErrors(err))
		}

		if reqData.IsFree != nil && *reqData.IsFree && reqData.Price != nil && *reqData.Price != 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"price": "A free course must have price 0!",
			})
		}

		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

// CreateModule validator middleware
func CreateModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateModuleRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, adminFieldErrors(err))
		}

		c.Locals("validatedModule", reqData)
		return c.Next()
	}
}
