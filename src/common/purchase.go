package common

import (
	"context"
	"errors"
	"etb/src/db"
	"etb/src/lib"
	"etb/src/models"
	"etb/src/types"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PurchaseResult struct {
	TicketID  uint               `json:"ticket_id"`
	PaymentID uint               `json:"payment_id"`
	Status    types.TicketStatus `json:"status"`
	QRCodeURL string             `json:"qr_code_url,omitempty"`
}

// TicketSaga coordinates the purchase workflow across the event table, the
// membership and payment services and the QR issuer. It is the only place
// with cross-step failure handling; every collaborator is injected.
type TicketSaga struct {
	db         *gorm.DB
	events     EventLookup
	membership MembershipLookup
	payments   PaymentClient
	qr         QrClient
	publisher  StatusPublisher

	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

type SagaClients struct {
	Events     EventLookup
	Membership MembershipLookup
	Payments   PaymentClient
	QR         QrClient
	Publisher  StatusPublisher
}

func NewTicketSaga(d *gorm.DB, c SagaClients) *TicketSaga {
	return &TicketSaga{
		db:         d,
		events:     c.Events,
		membership: c.Membership,
		payments:   c.Payments,
		qr:         c.QR,
		publisher:  c.Publisher,
		locks:      map[uint]*sync.Mutex{},
	}
}

var ticketSaga *TicketSaga

func GetTicketSaga() *TicketSaga {
	if ticketSaga != nil {
		return ticketSaga
	}
	d := db.GetDb()
	ticketSaga = NewTicketSaga(d, SagaClients{
		Events:     &GormEventLookup{DB: d},
		Membership: lib.GetMembershipClient(),
		Payments:   lib.GetPaymentsClient(),
		QR:         &QRIssuer{},
		Publisher:  KafkaStatusPublisher{},
	})
	return ticketSaga
}

// UseTicketSaga Replace saga instance, used by tests
func UseTicketSaga(s *TicketSaga) {
	ticketSaga = s
}

// ticketLock serializes transitions per ticket id. Holding it never blocks
// work on other tickets.
func (s *TicketSaga) ticketLock(ticketID uint) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.locks[ticketID]
	if !ok {
		m = &sync.Mutex{}
		s.locks[ticketID] = m
	}
	return m
}

// releaseTicketLock drops the mutex entry once a ticket reaches a terminal
// state, keeping the map bounded by in-flight tickets. A straggler holding
// the old mutex re-reads the row after locking and finds the terminal state,
// so it can never repeat the side effects.
func (s *TicketSaga) releaseTicketLock(ticketID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.locks, ticketID)
}

// PurchaseTicket runs the purchase workflow:
//
//  1. availability and price checks, no side effects
//  2. create the ticket PENDING
//  3. request payment; on failure delete the ticket again
//  4. record the payment id; points payments confirm in the same call
//
// A failure after the payment id is recorded leaves the ticket PENDING for
// the caller to retry confirmation on.
func (s *TicketSaga) PurchaseTicket(ctx context.Context, body *types.PurchaseTicketRequestBody) (*PurchaseResult, error) {
	event, err := CheckEventAvailable(ctx, s.events, body.EventID, time.Now())
	if err != nil {
		return nil, err
	}

	info, err := s.membership.GetUserMembershipInfo(ctx, body.UserID)
	if err != nil {
		log.Printf("Error fetching membership info for user %s: %s\n", body.UserID, err.Error())
		return nil, err
	}
	expected := ResolvePrice(event, info)
	if !body.PricePaid.Equal(expected) {
		log.Printf("Price mismatch for Event [%d]: paid=%s expected=%s\n", event.ID, body.PricePaid.String(), expected.String())
		return nil, types.ErrInvalidPrice
	}

	ticket := models.Ticket{
		EventID:       event.ID,
		UserID:        body.UserID,
		UserName:      body.UserName,
		UserEmail:     body.UserEmail,
		PaymentMethod: body.PaymentMethod,
		PricePaid:     body.PricePaid,
		Status:        types.TICKET_PENDING,
	}
	if err := s.db.WithContext(ctx).Create(&ticket).Error; err != nil {
		log.Printf("Error creating Ticket for Event [%d]: %s\n", event.ID, err.Error())
		return nil, err
	}

	payment, err := s.payments.CreatePayment(ctx, &types.CreatePaymentRequest{
		UserID:            body.UserID,
		UserEmail:         body.UserEmail,
		Username:          body.UserName,
		Amount:            body.PricePaid,
		PaymentMethod:     body.PaymentMethod,
		RelatedEntityType: "TICKET",
		RelatedEntityID:   ticket.ID,
		Metadata: map[string]any{
			"eventId":   event.ID,
			"eventName": event.Name,
			"ticketId":  ticket.ID,
		},
		Payments:       body.Payments,
		Files:          body.Files,
		SourceID:       body.SourceID,
		IdempotencyKey: uuid.NewString(),
	})
	if err != nil || payment == nil || !payment.Success || payment.PaymentID == 0 {
		// The ticket has no payment reference yet, so compensation deletes
		// it rather than cancelling.
		if derr := s.db.Delete(&models.Ticket{}, ticket.ID).Error; derr != nil {
			log.Printf("Error removing Ticket [%d] after failed payment: %s\n", ticket.ID, derr.Error())
		}
		if err != nil {
			log.Printf("Error requesting payment for Ticket [%d]: %s\n", ticket.ID, err.Error())
			return nil, types.ErrPaymentUnavailable
		}
		if payment != nil && payment.Message != "" {
			log.Printf("Payment rejected for Ticket [%d]: %s\n", ticket.ID, payment.Message)
		}
		return nil, types.ErrPaymentRejected
	}

	if err := s.db.
		Model(&models.Ticket{}).
		Where(&models.Ticket{ID: ticket.ID}).
		Update("payment_id", payment.PaymentID).
		Error; err != nil {
		log.Printf("Error persisting payment id %d on Ticket [%d]: %s\n", payment.PaymentID, ticket.ID, err.Error())
		return nil, err
	}

	result := &PurchaseResult{
		TicketID:  ticket.ID,
		PaymentID: payment.PaymentID,
		Status:    types.TICKET_PENDING,
	}

	// Points settle synchronously, so the purchase call drives the same
	// transition the asynchronous path uses. A QR failure here leaves the
	// ticket PENDING with its payment recorded; the caller retries
	// confirmation.
	if body.PaymentMethod == types.PAYMENT_POINTS {
		updated, err := s.UpdateTicketStatus(ctx, ticket.ID, types.TICKET_CONFIRMED)
		if err != nil {
			return nil, err
		}
		result.Status = updated.Status
		if updated.QRCodeURL != nil {
			result.QRCodeURL = *updated.QRCodeURL
		}
	}
	return result, nil
}

// UpdateTicketStatus drives the ticket state machine. Asking for the state
// the ticket is already in succeeds without side effects; terminal states
// cannot be left. Confirmation issues the QR code and persists it together
// with the status in a single write.
func (s *TicketSaga) UpdateTicketStatus(ctx context.Context, ticketID uint, target types.TicketStatus) (*models.Ticket, error) {
	lock := s.ticketLock(ticketID)
	lock.Lock()
	defer lock.Unlock()

	var ticket models.Ticket
	if err := s.db.WithContext(ctx).
		Where(&models.Ticket{ID: ticketID}).
		First(&ticket).
		Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrTicketNotFound
		}
		return nil, err
	}
	if ticket.Status == target {
		// At-least-once deliveries land here; nothing to redo.
		return &ticket, nil
	}
	if ticket.Status != types.TICKET_PENDING {
		return nil, types.ErrInvalidTransition
	}

	if target == types.TICKET_CONFIRMED {
		res, err := s.qr.UploadAndGenerateQR(ctx, &QRTicketData{
			TicketID: ticket.ID,
			EventID:  ticket.EventID,
			UserID:   ticket.UserID,
			UserName: ticket.UserName,
		})
		if err != nil {
			log.Printf("Error issuing QR for Ticket [%d]: %s\n", ticket.ID, err.Error())
			return nil, types.ErrQRIssuance
		}
		err = s.db.
			Model(&models.Ticket{}).
			Where(&models.Ticket{ID: ticket.ID}).
			Updates(map[string]any{
				"status":      target,
				"qr_code_url": res.URL,
				"qr_code_key": res.Key,
			}).
			Error
		if err != nil {
			if derr := s.qr.DeleteQR(ctx, res.Key); derr != nil {
				log.Printf("Error removing orphaned QR object [%s]: %s\n", res.Key, derr.Error())
			}
			return nil, err
		}
		ticket.Status = target
		ticket.QRCodeURL = &res.URL
		ticket.QRCodeKey = &res.Key
	} else {
		err := s.db.
			Model(&models.Ticket{}).
			Where(&models.Ticket{ID: ticket.ID}).
			Update("status", target).
			Error
		if err != nil {
			return nil, err
		}
		ticket.Status = target
	}

	// CONFIRMED and CANCELLED are both terminal, so no further transition
	// will need this entry.
	s.releaseTicketLock(ticket.ID)

	if s.publisher != nil {
		s.publisher.PublishTicketStatus(ticket.ID, ticket.Status)
	}
	return &ticket, nil
}

// ConfirmTicket is kept for callers of the old confirmation endpoint.
//
// Deprecated: use UpdateTicketStatus with TICKET_CONFIRMED.
func (s *TicketSaga) ConfirmTicket(ctx context.Context, ticketID uint) (*models.Ticket, error) {
	return s.UpdateTicketStatus(ctx, ticketID, types.TICKET_CONFIRMED)
}
