package models

import (
	"etb/src/types"
	"time"
)

type Banner struct {
	ID          uint       `gorm:"primarykey" json:"id"`
	ImageURL    string     `gorm:"size:500" json:"image_url"`
	ImageKey    string     `gorm:"size:500" json:"-"`
	Title       string     `gorm:"size:255" json:"title,omitempty"`
	Description string     `gorm:"type:text" json:"description,omitempty"`
	Link        string     `gorm:"size:500" json:"link,omitempty"`
	LinkType    string     `gorm:"size:16" json:"link_type,omitempty"`
	IsActive    bool       `json:"is_active"`
	Order       *int       `json:"order,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`

	types.Timestamps
}
