package models

import "gorm.io/gorm"

// TestimonialStatus defines the moderation status of a testimonial
type TestimonialStatus string

const (
	TestimonialPending  TestimonialStatus = "PENDING"
	TestimonialApproved TestimonialStatus = "APPROVED"
	TestimonialRejected TestimonialStatus = "REJECTED"
)

type Testimonial struct {
	gorm.Model
	UserID  uint              `gorm:"not null;index" json:"userId"`
	Rating  int               `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment string            `gorm:"type:text" json:"comment"`
	Status  TestimonialStatus `gorm:"type:varchar(20);default:'PENDING'" json:"status"`

	// Association - omit in JSON list unless Preloaded
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
