package controllers

import (
	"elearn/database"
	"elearn/middleware"
	"elearn/models"
	courseModels "elearn/models/course"
	"elearn/utils"
	courseValidator "elearn/validators/course"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AdminListEnrollmentRequests lists enrollment requests, optionally
// filtered by status, paginated.
func AdminListEnrollmentRequests(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedEnrollmentList").(*courseValidator.EnrollmentListRequest)
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

	db := database.Database.Db.Model(&courseModels.EnrollmentRequest{}).
		Where("is_deleted = ?", false)
	if reqData.Status != nil && *reqData.Status != "" {
		db = db.Where("status = ?", *reqData.Status)
	}

	var total int64
	db.Count(&total)

	var requests []courseModels.EnrollmentRequest
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&requests).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollment requests!", nil)
	}

	response := map[string]interface{}{
		"requests": requests,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment requests fetched successfully!", response)
}

// AdminApproveRequest flips a PENDING request to APPROVED and appends
// the course to the user's approved set. Both writes run in one
// transaction; the conditional status update serializes concurrent
// approves on the same request, so a repeat click gets a 409 instead
// of a double grant.
func AdminApproveRequest(c *fiber.Ctx) error {
	requestID := c.Locals("requestID").(int)

	var request courseModels.EnrollmentRequest
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = ?", requestID, false).
		First(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment request not found!", nil)
	}

	if request.Status != courseModels.StatusPending {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Request has already been decided!", nil)
	}

	now := time.Now()
	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&courseModels.EnrollmentRequest{}).
			Where("id = ? AND status = ?", request.ID, courseModels.StatusPending).
			Updates(map[string]interface{}{"status": courseModels.StatusApproved, "decided_at": now})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound // lost the race, already decided
		}

		// Lock the user row so concurrent approves for the same user
		// on different requests cannot overwrite each other's append.
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND is_deleted = ?", request.UserID, false).First(&user).Error; err != nil {
			return err
		}

		// Idempotent append to the authoritative access list
		if user.GrantCourseAccess(request.CourseID) {
			if err := tx.Model(&user).Update("approved_courses", user.ApprovedCourses).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Request has already been decided!", nil)
		}
		log.Printf("Error approving enrollment request %d: %v", request.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to approve enrollment request!", nil)
	}

	request.Status = courseModels.StatusApproved
	request.DecidedAt = &now

	notifyEnrollmentDecision(request)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment request approved successfully!", request)
}

// AdminRejectRequest flips a PENDING request to REJECTED. Terminal;
// the user may submit a fresh request afterwards.
func AdminRejectRequest(c *fiber.Ctx) error {
	requestID := c.Locals("requestID").(int)

	reqData, _ := c.Locals("validatedReject").(*courseValidator.RejectRequest)

	var request courseModels.EnrollmentRequest
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = ?", requestID, false).
		First(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment request not found!", nil)
	}

	if request.Status != courseModels.StatusPending {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Request has already been decided!", nil)
	}

	now := time.Now()
	updates := map[string]interface{}{"status": courseModels.StatusRejected, "decided_at": now}
	if reqData != nil && reqData.Reason != "" {
		updates["reason"] = reqData.Reason
	}

	res := database.Database.Db.Model(&courseModels.EnrollmentRequest{}).
		Where("id = ? AND status = ?", request.ID, courseModels.StatusPending).
		Updates(updates)
	if res.Error != nil {
		log.Printf("Error rejecting enrollment request %d: %v", request.ID, res.Error)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reject enrollment request!", nil)
	}
	if res.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Request has already been decided!", nil)
	}

	request.Status = courseModels.StatusRejected
	request.DecidedAt = &now
	if reqData != nil {
		request.Reason = reqData.Reason
	}

	notifyEnrollmentDecision(request)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment request rejected.", request)
}

// notifyEnrollmentDecision emails the requester about the decision.
// Best effort, failures are only logged; the mail client returns
// immediately when no API key is configured.
func notifyEnrollmentDecision(request courseModels.EnrollmentRequest) {
	var user models.User
	if err := database.Database.Db.Where("id = ?", request.UserID).First(&user).Error; err != nil {
		log.Printf("Error loading user %d for decision email: %v", request.UserID, err)
		return
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ?", request.CourseID).First(&course).Error; err != nil {
		log.Printf("Error loading course %d for decision email: %v", request.CourseID, err)
		return
	}

	if err := utils.SendEnrollmentDecisionEmail(user.Email, user.Name, course.Title, request.Status, request.Reason); err != nil {
		log.Printf("Error sending decision email to %s: %v", user.Email, err)
	}
}
