package courseValidator

import (
	"elearn/middleware"
	courseModels "elearn/models/course"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type EnrollmentListRequest struct {
	Page   *int    `query:"page"`
	Limit  *int    `query:"limit"`
	Status *string `query:"status"`
}

type RejectRequest struct {
	Reason string `json:"reason"`
}

// EnrollmentList validates admin request-list parameters
func EnrollmentList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(EnrollmentListRequest)
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
		if reqData.Status != nil && *reqData.Status != "" {
			switch *reqData.Status {
			case courseModels.StatusPending, courseModels.StatusApproved, courseModels.StatusRejected:
			default:
				errors["status"] = "Status must be PENDING, APPROVED or REJECTED!"
			}
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedEnrollmentList", reqData)
		return c.Next()
	}
}

// RequestID validates the :request_id route parameter
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("request_id"))
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request ID!", nil)
		}

		c.Locals("requestID", id)
		return c.Next()
	}
}

// Reject validates the optional rejection reason body
func Reject() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(RejectRequest)
		// Body is optional on reject
		if len(c.Body()) > 0 {
			if err := c.BodyParser(reqData); err != nil {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
			}
		}

		if len(reqData.Reason) > 500 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"reason": "Reason must be at most 500 characters!",
			})
		}

		c.Locals("validatedReject", reqData)
		return c.Next()
	}
}
