package lib

import (
	"bytes"
	"context"
	"encoding/json"
	"etb/src/config"
	"etb/src/types"
	"fmt"
	"log"
	"net/http"
	"time"
)

// PaymentsClient talks to the payment service that owns payment creation and
// settlement. The saga only ever asks it to create a payment; settlement
// outcomes come back through the ticket status endpoint.
type PaymentsClient struct {
	baseURL string
	hc      *http.Client
}

var paymentsClient *PaymentsClient

func GetPaymentsClient() *PaymentsClient {
	if paymentsClient != nil {
		return paymentsClient
	}
	paymentsClient = &PaymentsClient{
		baseURL: config.PaymentsAPIURL(),
		hc: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
	return paymentsClient
}

// NewPaymentsClient Replace payments client instance with custom implementation
func NewPaymentsClient(c *PaymentsClient) {
	paymentsClient = c
}

func (c *PaymentsClient) CreatePayment(ctx context.Context, data *types.CreatePaymentRequest) (*types.PaymentResponse, error) {
	body, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/payments", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if data.IdempotencyKey != "" {
		req.Header.Set("X-Idempotency-Key", data.IdempotencyKey)
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		log.Printf("Error calling payments API: %s\n", err.Error())
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("payments api: unexpected status %d", resp.StatusCode)
	}
	var payment types.PaymentResponse
	if err := json.NewDecoder(resp.Body).Decode(&payment); err != nil {
		return nil, err
	}
	return &payment, nil
}
