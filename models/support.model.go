package models

import "gorm.io/gorm"

type SupportTicket struct {
	gorm.Model
	UserID    uint   `json:"user_id"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Status    string `json:"status" gorm:"default:'OPEN'"` // OPEN, CLOSED
	Category  string `json:"category" gorm:"default:'GENERAL'"`
	IsDeleted bool   `json:"is_deleted" gorm:"default:false"`
}
