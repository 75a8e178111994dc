package models

import (
	"etb/src/types"
	"time"

	"github.com/shopspring/decimal"
)

type Event struct {
	ID          uint              `gorm:"primarykey" json:"id"`
	Name        string            `gorm:"size:255" json:"name"`
	Description string            `gorm:"type:text" json:"description,omitempty"`
	ImageURL    string            `gorm:"size:500" json:"image_url,omitempty"`
	ImageKey    string            `gorm:"size:500" json:"-"`
	StartDate   time.Time         `json:"start_date"`
	EndDate     time.Time         `json:"end_date"`
	MemberPrice decimal.Decimal   `gorm:"type:decimal(10,2)" json:"member_price"`
	PublicPrice decimal.Decimal   `gorm:"type:decimal(10,2)" json:"public_price"`
	Status      types.EventStatus `gorm:"size:16;default:'ACTIVE'" json:"status"`

	types.Timestamps
}
