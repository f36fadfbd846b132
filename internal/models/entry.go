package models

import (
	"time"

	"gorm.io/gorm"
)

// Entry is a single dated diary entry. Content and Date are immutable after
// creation and entries are never deleted; Scratched is the only mutable
// field and only ever flips false -> true.
type Entry struct {
	Content   string    `json:"content" gorm:"type:text" validate:"required"`
	Date      time.Time `json:"date" gorm:"type:date;index"`
	Scratched bool      `json:"scratched" gorm:"default:false"`
	UserID    string    `json:"user_id" gorm:"type:varchar(36);index"`
	gorm.Model          // Embed gorm.Model for ID (auto-increment keeps authoring order), CreatedAt, UpdatedAt, DeletedAt
}
