package models

import (
	"etb/src/types"

	"github.com/shopspring/decimal"
)

// Ticket is the unit of the purchase saga. The saga creates it PENDING,
// compensation may delete it while payment_id is still null; once a payment
// reference exists the row is only ever transitioned, never removed.
type Ticket struct {
	ID            uint                `gorm:"primarykey" json:"id"`
	EventID       uint                `gorm:"index" json:"event_id"`
	UserID        string              `gorm:"size:100;index" json:"user_id"`
	UserName      string              `gorm:"size:255" json:"user_name"`
	UserEmail     string              `gorm:"size:255" json:"user_email"`
	PaymentMethod types.PaymentMethod `gorm:"size:32" json:"payment_method"`
	PricePaid     decimal.Decimal     `gorm:"type:decimal(10,2)" json:"price_paid"`
	PaymentID     *uint               `json:"payment_id,omitempty"`
	Status        types.TicketStatus  `gorm:"size:16;default:'PENDING'" json:"status"`
	QRCodeURL     *string             `gorm:"size:500" json:"qr_code_url,omitempty"`
	QRCodeKey     *string             `gorm:"size:500" json:"-"`
	Attended      bool                `gorm:"default:false" json:"attended"`

	Event *Event `gorm:"foreignKey:event_id" json:"event,omitempty"`

	types.Timestamps
}
