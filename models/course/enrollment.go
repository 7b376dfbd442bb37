package course

import (
	"time"

	"gorm.io/gorm"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// EnrollmentRequest tracks a user's request for paid-course access.
// Transitions: PENDING -> APPROVED or PENDING -> REJECTED, both
// terminal. At most one PENDING request may exist per (user, course);
// a rejected request does not block a fresh one.
type EnrollmentRequest struct {
	gorm.Model
	UserID       uint       `json:"user_id" gorm:"index;not null"`
	CourseID     uint       `json:"course_id" gorm:"index;not null"`
	Status       string     `json:"status" gorm:"default:'PENDING'"`
	PaymentNote  string     `json:"payment_note"`
	EvidencePath string     `json:"evidence_path"` // stored path of the uploaded payment proof
	Reason       string     `json:"reason"`        // set on rejection
	DecidedAt    *time.Time `json:"decided_at"`
	IsDeleted    bool       `gorm:"default:false" json:"-"`
}
