package types

import (
	"time"

	"github.com/shopspring/decimal"
)

type Timestamps struct {
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at,omitempty"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at,omitempty"`
}

type TicketStatus string

const (
	TICKET_PENDING   TicketStatus = "PENDING"
	TICKET_CONFIRMED TicketStatus = "CONFIRMED"
	TICKET_CANCELLED TicketStatus = "CANCELLED"
)

type PaymentMethod string

const (
	PAYMENT_VOUCHER PaymentMethod = "VOUCHER"
	PAYMENT_POINTS  PaymentMethod = "POINTS"
	PAYMENT_GATEWAY PaymentMethod = "PAYMENT_GATEWAY"
)

type EventStatus string

const (
	EVENT_ACTIVE    EventStatus = "ACTIVE"
	EVENT_INACTIVE  EventStatus = "INACTIVE"
	EVENT_FINISHED  EventStatus = "FINISHED"
	EVENT_CANCELLED EventStatus = "CANCELLED"
)

type MembershipStatus string

const (
	MEMBERSHIP_ACTIVE   MembershipStatus = "ACTIVE"
	MEMBERSHIP_INACTIVE MembershipStatus = "INACTIVE"
)

// MembershipInfo is fetched fresh from the membership service on every
// purchase and never persisted.
type MembershipInfo struct {
	HasMembership bool             `json:"has_membership"`
	Status        MembershipStatus `json:"status,omitempty"`
}

// SerializedFile carries a file attachment through a JSON request body with
// the content base64-encoded. Voucher images travel this way to the payment
// service.
type SerializedFile struct {
	Name     string `json:"originalname"`
	Mimetype string `json:"mimetype"`
	Size     int64  `json:"size"`
	Content  string `json:"buffer"`
}

type PurchaseTicketRequestBody struct {
	EventID       uint             `json:"event_id" binding:"required"`
	UserID        string           `json:"user_id" binding:"required"`
	UserName      string           `json:"user_name" binding:"required"`
	UserEmail     string           `json:"user_email" binding:"required,email"`
	PaymentMethod PaymentMethod    `json:"payment_method" binding:"required,paymentmethod"`
	PricePaid     decimal.Decimal  `json:"price_paid" binding:"required"`
	Payments      []map[string]any `json:"payments,omitempty"`
	SourceID      string           `json:"source_id,omitempty"`
	Files         []SerializedFile `json:"files,omitempty"`
}

type UpdateTicketStatusRequestBody struct {
	Status TicketStatus `json:"status" binding:"required,ticketstatus"`
}

type CreatePaymentRequest struct {
	UserID            string           `json:"user_id"`
	UserEmail         string           `json:"user_email"`
	Username          string           `json:"username"`
	Amount            decimal.Decimal  `json:"amount"`
	PaymentMethod     PaymentMethod    `json:"payment_method"`
	RelatedEntityType string           `json:"related_entity_type"`
	RelatedEntityID   uint             `json:"related_entity_id"`
	Metadata          map[string]any   `json:"metadata,omitempty"`
	Payments          []map[string]any `json:"payments,omitempty"`
	Files             []SerializedFile `json:"files,omitempty"`
	SourceID          string           `json:"source_id,omitempty"`
	IdempotencyKey    string           `json:"-"`
}

type PaymentOrderInfo struct {
	OrderID      uint   `json:"order_id"`
	Status       string `json:"status"`
	AutoApproved bool   `json:"auto_approved"`
}

type PaymentResponse struct {
	Success   bool              `json:"success"`
	PaymentID uint              `json:"payment_id"`
	Message   string            `json:"message,omitempty"`
	OrderInfo *PaymentOrderInfo `json:"order_info,omitempty"`
}

type CreateEventRequestBody struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description,omitempty"`
	StartDate   time.Time       `json:"start_date" binding:"required"`
	EndDate     time.Time       `json:"end_date" binding:"required"`
	MemberPrice decimal.Decimal `json:"member_price" binding:"required"`
	PublicPrice decimal.Decimal `json:"public_price" binding:"required"`
	Image       *SerializedFile `json:"image,omitempty"`
}

type UpdateEventRequestBody struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	StartDate   *time.Time       `json:"start_date,omitempty"`
	EndDate     *time.Time       `json:"end_date,omitempty"`
	MemberPrice *decimal.Decimal `json:"member_price,omitempty"`
	PublicPrice *decimal.Decimal `json:"public_price,omitempty"`
	Image       *SerializedFile  `json:"image,omitempty"`
}

type UpdateEventStatusRequestBody struct {
	Status EventStatus `json:"status" binding:"required,eventstatus"`
}

type CreateBannerRequestBody struct {
	Title       string          `json:"title,omitempty"`
	Description string          `json:"description,omitempty"`
	Link        string          `json:"link,omitempty"`
	LinkType    string          `json:"link_type,omitempty" binding:"omitempty,oneof=INTERNAL EXTERNAL"`
	IsActive    *bool           `json:"is_active,omitempty"`
	Order       *int            `json:"order,omitempty"`
	StartDate   *time.Time      `json:"start_date,omitempty"`
	EndDate     *time.Time      `json:"end_date,omitempty"`
	Image       *SerializedFile `json:"image" binding:"required"`
}

type UpdateBannerRequestBody struct {
	Title       *string         `json:"title,omitempty"`
	Description *string         `json:"description,omitempty"`
	Link        *string         `json:"link,omitempty"`
	LinkType    *string         `json:"link_type,omitempty" binding:"omitempty,oneof=INTERNAL EXTERNAL"`
	IsActive    *bool           `json:"is_active,omitempty"`
	Order       *int            `json:"order,omitempty"`
	StartDate   *time.Time      `json:"start_date,omitempty"`
	EndDate     *time.Time      `json:"end_date,omitempty"`
	Image       *SerializedFile `json:"image,omitempty"`
}

type BannerOrderItem struct {
	ID    uint `json:"id" binding:"required"`
	Order int  `json:"order" binding:"required"`
}

type OrderBannersRequestBody struct {
	Banners []BannerOrderItem `json:"banners" binding:"required,min=1,dive"`
}

type CreateReportRequestBody struct {
	Name        string `json:"name" binding:"required,max=255"`
	Code        string `json:"code" binding:"required,max=100"`
	IsActive    *bool  `json:"is_active,omitempty"`
	Description string `json:"description,omitempty"`
}

type CreateLeadRequestBody struct {
	FullName string         `json:"full_name" binding:"required"`
	Email    string         `json:"email" binding:"required,email"`
	Phone    string         `json:"phone" binding:"required"`
	Message  string         `json:"message,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type CreateComplaintRequestBody struct {
	FullName       string          `json:"full_name" binding:"required"`
	Address        string          `json:"address" binding:"required"`
	DocumentType   string          `json:"document_type" binding:"required,oneof=DNI CE"`
	DocumentNumber string          `json:"document_number" binding:"required"`
	Phone          string          `json:"phone" binding:"required"`
	Email          string          `json:"email" binding:"required,email"`
	ParentGuardian string          `json:"parent_guardian,omitempty"`
	ItemType       string          `json:"item_type" binding:"required,oneof=PRODUCT SERVICE"`
	ClaimAmount    decimal.Decimal `json:"claim_amount" binding:"required"`
	Description    string          `json:"description" binding:"required"`
	Detail         string          `json:"detail" binding:"required"`
	ComplaintType  string          `json:"complaint_type" binding:"required,oneof=COMPLAINT CLAIM"`
	Order          string          `json:"order,omitempty"`
}

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type UserTicketsURIParams struct {
	UserID string `uri:"userId" binding:"required"`
}

type PaginationQuery struct {
	Page  int `form:"page,default=1" binding:"omitempty,min=1"`
	Limit int `form:"limit,default=10" binding:"omitempty,min=1,max=100"`
}

type JSONB map[string]any
