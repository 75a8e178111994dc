package models

import (
	"etb/src/types"

	"github.com/shopspring/decimal"
)

// Complaint is an entry in the consumer complaints book.
type Complaint struct {
	ID             uint            `gorm:"primarykey" json:"id"`
	FullName       string          `gorm:"size:255" json:"full_name"`
	Address        string          `gorm:"size:500" json:"address"`
	DocumentType   string          `gorm:"size:8" json:"document_type"`
	DocumentNumber string          `gorm:"size:20" json:"document_number"`
	Phone          string          `gorm:"size:20" json:"phone"`
	Email          string          `gorm:"size:255" json:"email"`
	ParentGuardian string          `gorm:"size:255" json:"parent_guardian,omitempty"`
	ItemType       string          `gorm:"size:16" json:"item_type"`
	ClaimAmount    decimal.Decimal `gorm:"type:decimal(10,2)" json:"claim_amount"`
	Description    string          `gorm:"type:text" json:"description"`
	Detail         string          `gorm:"type:text" json:"detail"`
	ComplaintType  string          `gorm:"size:16" json:"complaint_type"`
	Order          string          `gorm:"size:100" json:"order,omitempty"`
	Attended       bool            `gorm:"default:false" json:"attended"`

	types.Timestamps
}
