package controllers

import (
	"elearn/database"
	"elearn/middleware"
	courseModels "elearn/models/course"
	courseValidator "elearn/validators/course"

	"github.com/gofiber/fiber/v2"
)

// GetAllCourses lists published courses. Public route: list views are
// always redacted, the protected link is only resolved on the detail
// route where the caller's entitlements are checked.
func GetAllCourses(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourseList").(*courseValidator.CourseListRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request!", nil)
	}

	page := 1
	limit := 20
	if reqData.Page != nil {
		page = *reqData.Page
	}
	if reqData.Limit != nil {
		limit = *reqData.Limit
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&courseModels.Course{}).
		Where("is_deleted = ? AND is_published = ?", false, true)
	if reqData.Featured != nil {
		db = db.Where("featured = ?", *reqData.Featured)
	}

	var total int64
	db.Count(&total)

	var courses []courseModels.Course
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	views := make([]CourseView, len(courses))
	for i, course := range courses {
		views[i] = courseViewFor(course, nil, nil)
	}

	response := map[string]interface{}{
		"courses": views,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", response)
}

// GetCourseDetails returns a course with its modules. Runs behind
// OptionalJWTMiddleware: anonymous callers get the redacted view,
// entitled callers get the content link.
func GetCourseDetails(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).
		First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var modules []courseModels.Module
	if err := database.Database.Db.
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc").
		Find(&modules).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course modules!", nil)
	}

	user := middleware.CurrentUser(c)
	view := courseViewFor(course, modules, user)

	// Enrollment workflow status for the caller, NONE when no
	// request exists
	enrollmentStatus := "NONE"
	if user != nil {
		var request courseModels.EnrollmentRequest
		if err := database.Database.Db.
			Where("user_id = ? AND course_id = ? AND is_deleted = ?", user.ID, courseID, false).
			Order("created_at desc").
			First(&request).Error; err == nil {
			enrollmentStatus = request.Status
		}
		if user.HasCourseAccess(course.ID) {
			enrollmentStatus = courseModels.StatusApproved
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully!", fiber.Map{
		"course":            view,
		"enrollment_status": enrollmentStatus,
	})
}
