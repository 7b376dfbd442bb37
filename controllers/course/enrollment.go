package controllers

import (
	"elearn/config"
	"elearn/database"
	"elearn/middleware"
	courseModels "elearn/models/course"
	"elearn/utils"
	"log"

	"github.com/gofiber/fiber/v2"
)

// RequestEnrollment opens a PENDING enrollment request for a paid
// course. The user's approved set is never touched here; only an
// admin approval grants access.
func RequestEnrollment(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	// Check if course exists and is published
	var course courseModels.Course
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).
		First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if course.IsFree {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "This course is free, no enrollment request needed!", nil)
	}

	if user.HasCourseAccess(course.ID) {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You are already enrolled in this course!", nil)
	}

	// At most one pending request per (user, course)
	var existing courseModels.EnrollmentRequest
	if err := database.Database.Db.
		Where("user_id = ? AND course_id = ? AND status = ? AND is_deleted = ?",
			user.ID, courseID, courseModels.StatusPending, false).
		First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "An enrollment request is already pending for this course!", nil)
	}

	request := courseModels.EnrollmentRequest{
		UserID:   user.ID,
		CourseID: uint(courseID),
		Status:   courseModels.StatusPending,
	}

	if note := c.FormValue("payment_note"); note != "" {
		request.PaymentNote = note
	}

	// Optional payment evidence upload; only the stored path is kept
	if file, err := c.FormFile("evidence"); err == nil && file != nil {
		path, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir)
		if err != nil {
			log.Printf("Error saving evidence upload: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store evidence file!", nil)
		}
		request.EvidencePath = path
	}

	if err := database.Database.Db.Create(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create enrollment request!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrollment request submitted successfully!", request)
}

// GetMyEnrollments lists the caller's enrollment requests.
func GetMyEnrollments(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var requests []courseModels.EnrollmentRequest
	if err := database.Database.Db.
		Where("user_id = ? AND is_deleted = ?", user.ID, false).
		Order("created_at desc").
		Find(&requests).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments":      requests,
		"approved_courses": user.ApprovedCourses,
	})
}

// GetEnrollmentStatus reports the caller's workflow status for one
// course: PENDING, APPROVED, REJECTED or NONE. NONE is a normal
// answer, not an error.
func GetEnrollmentStatus(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	status := "NONE"
	var request courseModels.EnrollmentRequest
	if err := database.Database.Db.
		Where("user_id = ? AND course_id = ? AND is_deleted = ?", user.ID, courseID, false).
		Order("created_at desc").
		First(&request).Error; err == nil {
		status = request.Status
	}

	// The approved set is authoritative
	if user.HasCourseAccess(uint(courseID)) {
		status = courseModels.StatusApproved
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment status fetched successfully!", fiber.Map{
		"course_id": courseID,
		"status":    status,
	})
}
