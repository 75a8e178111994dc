package common

import (
	"context"
	"errors"
	"etb/src/lib"
	"etb/src/models"
	"etb/src/types"
	"log"

	"gorm.io/gorm"
)

// The saga's collaborators. Each one is injected through the constructor so
// purchase and transition logic can be exercised against fakes.

type EventLookup interface {
	GetEvent(ctx context.Context, id uint) (*models.Event, error)
}

type MembershipLookup interface {
	GetUserMembershipInfo(ctx context.Context, userID string) (*types.MembershipInfo, error)
}

type PaymentClient interface {
	CreatePayment(ctx context.Context, data *types.CreatePaymentRequest) (*types.PaymentResponse, error)
}

type QRTicketData struct {
	TicketID uint
	EventID  uint
	UserID   string
	UserName string
}

type QRUploadResult struct {
	URL string
	Key string
}

type QrClient interface {
	UploadAndGenerateQR(ctx context.Context, data *QRTicketData) (*QRUploadResult, error)
	DeleteQR(ctx context.Context, key string) error
}

// StatusPublisher announces ticket lifecycle transitions. Publishing is
// best-effort and never fails a transition.
type StatusPublisher interface {
	PublishTicketStatus(ticketID uint, status types.TicketStatus)
}

// GormEventLookup reads events off the ledger database.
type GormEventLookup struct {
	DB *gorm.DB
}

func (l *GormEventLookup) GetEvent(ctx context.Context, id uint) (*models.Event, error) {
	var event models.Event
	err := l.DB.WithContext(ctx).
		Where(&models.Event{ID: id}).
		First(&event).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

// KafkaStatusPublisher emits transitions onto the tickets-status topic.
type KafkaStatusPublisher struct{}

func (KafkaStatusPublisher) PublishTicketStatus(ticketID uint, status types.TicketStatus) {
	go func() {
		err := lib.KafkaProduceMessage("tickets-status", map[string]any{
			"ticketId": ticketID,
			"status":   string(status),
		})
		if err != nil {
			log.Printf("Error publishing status event for Ticket [%d]: %s\n", ticketID, err.Error())
		}
	}()
}
