package courseValidator

import (
	"elearn/middleware"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type CourseListRequest struct {
	Page     *int  `query:"page"`
	Limit    *int  `query:"limit"`
	Featured *bool `query:"featured"`
}

// CourseList validates catalog pagination parameters
func CourseList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CourseListRequest)
		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		errors := make(map[string]string)
		if reqData.Page != nil && *reqData.Page < 1 {
			errors["page"] = "Page must be at least 1!"
		}
		if reqData.Limit != nil && (*reqData.Limit < 1 || *reqData.Limit > 100) {
			errors["limit"] = "Limit must be between 1 and 100!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourseList", reqData)
		return c.Next()
	}
}

// CourseID validates the :id route parameter
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("id"))
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course ID!", nil)
		}

		c.Locals("courseID", id)
		return c.Next()
	}
}

// ModuleID validates the :module_id route parameter
func ModuleID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("module_id"))
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid module ID!", nil)
		}

		c.Locals("moduleID", id)
		return c.Next()
	}
}
