package types

import "errors"

// Saga and ledger errors. Remote-call failures are translated into one of
// these at the orchestrator boundary; handlers map them to HTTP status codes.
var (
	ErrEventNotFound       = errors.New("event not found")
	ErrEventNotAvailable   = errors.New("event is not available for ticket purchase")
	ErrEventAlreadyStarted = errors.New("cannot purchase tickets for events that have already started")
	ErrInvalidPrice        = errors.New("price paid does not match the expected price")
	ErrPaymentRejected     = errors.New("payment was rejected by the payment service")
	ErrPaymentUnavailable  = errors.New("payment service is unavailable")
	ErrQRIssuance          = errors.New("failed to generate QR code for ticket")
	ErrTicketNotFound      = errors.New("ticket not found")
	ErrInvalidTransition   = errors.New("ticket status can no longer be changed")
	ErrTicketAlreadyUsed   = errors.New("this ticket has already been used")
)
