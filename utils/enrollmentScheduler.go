package utils

import (
	"elearn/config"
	"elearn/database"
	courseModels "elearn/models/course"
	"fmt"
	"log"
	"strings"

	"github.com/jinzhu/now"
	"github.com/robfig/cron/v3"
)

// InitializeEnrollmentScheduler sets up the pending-request digest scheduler
func InitializeEnrollmentScheduler() {
	log.Println("[ENROLLMENT-SCHEDULER] Initializing enrollment scheduler...")

	c := cron.New()

	// Run daily at 9 AM to nudge admins about stale pending requests
	c.AddFunc("0 9 * * *", func() {
		log.Println("[ENROLLMENT-SCHEDULER] Running daily pending-request check...")
		ProcessStalePendingRequests()
	})

	c.Start()
	log.Println("[ENROLLMENT-SCHEDULER] Enrollment scheduler started - runs daily at 9 AM")
}

// ProcessStalePendingRequests emails admins a digest of enrollment
// requests that have been waiting more than two days.
func ProcessStalePendingRequests() {
	db := database.Database.Db

	cutoff := now.BeginningOfDay().AddDate(0, 0, -2)

	var staleRequests []courseModels.EnrollmentRequest
	if err := db.
		Where("status = ? AND is_deleted = false", courseModels.StatusPending).
		Where("created_at < ?", cutoff).
		Order("created_at asc").
		Find(&staleRequests).Error; err != nil {
		log.Printf("[ENROLLMENT-SCHEDULER] Error fetching pending requests: %v", err)
		return
	}

	log.Printf("[ENROLLMENT-SCHEDULER] Found %d stale pending requests", len(staleRequests))

	if len(staleRequests) == 0 || config.AppConfig.AdminDigestEmail == "" {
		return
	}

	var lines []string
	for _, req := range staleRequests {
		lines = append(lines, fmt.Sprintf("request #%d: user %d, course %d, waiting since %s",
			req.ID, req.UserID, req.CourseID, req.CreatedAt.Format("2006-01-02")))
	}
	body := "Enrollment requests awaiting review:\n\n" + strings.Join(lines, "\n")

	if err := SendEmail(config.AppConfig.AdminDigestEmail, "Pending enrollment requests", body, ""); err != nil {
		log.Printf("[ENROLLMENT-SCHEDULER] Error sending digest: %v", err)
	}
}
