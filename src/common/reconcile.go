package common

import (
	"etb/src/db"
	"etb/src/models"
	"etb/src/types"
	"log"
	"time"
)

// ReportStuckTickets logs tickets that have held a payment reference without
// reaching a terminal state for over an hour, typically because QR issuance
// failed during confirmation. The job only observes; recovery stays an
// operator action through the status endpoint.
func ReportStuckTickets() {
	d := db.GetDb()
	cutoff := time.Now().Add(-1 * time.Hour)
	var tickets []models.Ticket
	err := d.
		Model(&models.Ticket{}).
		Where("status = ? AND payment_id IS NOT NULL AND created_at < ?", types.TICKET_PENDING, cutoff).
		Find(&tickets).
		Error
	if err != nil {
		log.Printf("Error scanning for stuck tickets: %s\n", err.Error())
		return
	}
	for _, t := range tickets {
		log.Printf("[reconcile] Ticket [%d] holds payment %d but is still %s since %s\n",
			t.ID, *t.PaymentID, t.Status, t.CreatedAt.Format(time.RFC3339))
	}
}
