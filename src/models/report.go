package models

import "etb/src/types"

// Report is a catalog entry for the reporting views the back office can run.
// Codes are unique so downstream consumers can reference a report stably.
type Report struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	Name        string `gorm:"size:255" json:"name"`
	Code        string `gorm:"size:100;uniqueIndex" json:"code"`
	IsActive    bool   `json:"is_active"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	types.Timestamps
}
