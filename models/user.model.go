package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	RoleStudent    = "STUDENT"
	RoleInstructor = "INSTRUCTOR"
	RoleAdmin      = "ADMIN"
)

type User struct {
	gorm.Model
	ProfileImage    string                    `gorm:"default:''"`
	Name            string                    `gorm:"default:''"`
	Email           string                    `gorm:"unique;not null"` // stored lower-cased
	Role            string                    `gorm:"default:'STUDENT'"`
	Password        string                    `gorm:"not null" json:"-"`
	IsEmailVerified bool                      `gorm:"default:false" json:"is_email_verified"`
	ApprovedCourses datatypes.JSONSlice[uint] `json:"approved_courses"` // course IDs the user has full access to
	LastLogin       time.Time                 `gorm:"default:NULL"`
	IsDeleted       bool                      `gorm:"default:false"`
}

// HasCourseAccess reports whether courseID is in the user's approved set.
func (u *User) HasCourseAccess(courseID uint) bool {
	for _, id := range u.ApprovedCourses {
		if id == courseID {
			return true
		}
	}
	return false
}

// GrantCourseAccess appends courseID to the approved set if absent.
// Returns true when the set changed.
func (u *User) GrantCourseAccess(courseID uint) bool {
	if u.HasCourseAccess(courseID) {
		return false
	}
	u.ApprovedCourses = append(u.ApprovedCourses, courseID)
	return true
}
