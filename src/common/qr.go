package common

import (
	"context"
	"encoding/json"
	"etb/src/lib"
	"fmt"
	"log"
	"os"
	"path"
	"time"

	awslib "etb/src/lib/aws"

	"github.com/yeqown/go-qrcode"
)

// QRIssuer renders a scannable code for a confirmed ticket and uploads it to
// the assets bucket. DeleteQR undoes an upload when the confirmation write
// fails afterwards.
type QRIssuer struct{}

func (q *QRIssuer) UploadAndGenerateQR(ctx context.Context, data *QRTicketData) (*QRUploadResult, error) {
	payload := map[string]any{
		"ticketId":    data.TicketID,
		"eventId":     data.EventID,
		"userId":      data.UserID,
		"userName":    data.UserName,
		"generatedAt": time.Now().UTC().Format(time.RFC3339),
	}
	rawBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	qrc, err := qrcode.New(string(rawBytes))
	if err != nil {
		return nil, err
	}
	wd, err := os.Getwd()
	if err != nil {
		log.Printf("Could not read working directory: %s\n", err.Error())
		return nil, err
	}
	tempdir := os.Getenv("TEMP_DIR")
	filename := fmt.Sprintf("ticket-%d-qr", data.TicketID)
	filepath := path.Join(wd, tempdir, fmt.Sprintf("%s.jpeg", filename))
	if err := qrc.Save(filepath); err != nil {
		log.Printf("Could not save qrcode to file [%s]: %s\n", filepath, err.Error())
		return nil, err
	}
	defer os.Remove(filepath)
	body, err := os.ReadFile(filepath)
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("tickets/qr-codes/%s.jpeg", filename)
	url, err := awslib.S3UploadObject(key, body, "image/jpeg")
	if err != nil {
		return nil, err
	}
	if rd := lib.GetRedisClient(); rd != nil {
		cacheKey := fmt.Sprintf("ticketqr_%d", data.TicketID)
		if err := rd.SetEx(ctx, cacheKey, url, 24*time.Hour).Err(); err != nil {
			log.Printf("Error caching QR url for Ticket [%d]: %s\n", data.TicketID, err.Error())
		}
	}
	return &QRUploadResult{URL: url, Key: key}, nil
}

func (q *QRIssuer) DeleteQR(ctx context.Context, key string) error {
	return awslib.S3DeleteObject(key)
}
