package course

import "gorm.io/gorm"

const (
	TypeFree = "free"
	TypePaid = "paid"
)

// Course represents a learning course. ContentLink is the protected
// field: it is only disclosed to callers the course view resolves as
// entitled (free course, or course ID in the user's approved set).
type Course struct {
	gorm.Model
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	InstructorID uint    `json:"instructor_id" gorm:"index"`
	Price        float64 `json:"price" gorm:"default:0"`
	Type         string  `json:"type" gorm:"default:'paid'"` // free, paid; kept in sync with IsFree
	IsFree       bool    `json:"is_free" gorm:"default:false"`
	ContentLink  string  `json:"content_link,omitempty"`
	ThumbnailURL string  `json:"thumbnail_url"`
	Featured     bool    `json:"featured" gorm:"default:false"`
	IsPublished  bool    `json:"is_published" gorm:"default:false"`
	IsDeleted    bool    `gorm:"default:false" json:"-"`
}

// SyncType enforces isFree == true <=> type == "free".
func (c *Course) SyncType() {
	if c.IsFree {
		c.Type = TypeFree
	} else {
		c.Type = TypePaid
	}
}

// Module represents a section/module within a course
type Module struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	Title       string `json:"title"`
	Description string `json:"description"`
	OrderIndex  int    `json:"order_index" gorm:"default:0"` // module order in course
	IsDeleted   bool   `gorm:"default:false" json:"-"`
}
