package models

import "etb/src/types"

type Lead struct {
	ID       uint        `gorm:"primarykey" json:"id"`
	FullName string      `gorm:"size:255" json:"full_name"`
	Email    string      `gorm:"size:255;uniqueIndex" json:"email"`
	Phone    string      `gorm:"size:20;uniqueIndex" json:"phone"`
	Message  string      `gorm:"type:text" json:"message,omitempty"`
	Metadata types.JSONB `gorm:"type:jsonb" json:"metadata,omitempty"`

	types.Timestamps
}
