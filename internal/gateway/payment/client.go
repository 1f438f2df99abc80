package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

// Client implements Gateway against a snap-compatible HTTP endpoint. The
// server key is sent as basic auth username with an empty password.
type Client struct {
	baseURL   string
	serverKey string
	http      *http.Client
	logger    *log.Logger
}

func NewClient(baseURL, serverKey string, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.New(os.Stdout, "[payment] ", log.LstdFlags|log.LUTC)
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		serverKey: serverKey,
		http:      &http.Client{Timeout: 15 * time.Second},
		logger:    logger,
	}
}

func (c *Client) CreateTransaction(ctx context.Context, req TransactionRequest) (*Transaction, error) {
	payload := map[string]interface{}{
		"transaction_details": map[string]interface{}{
			"order_id":     req.OrderID,
			"gross_amount": req.GrossAmount,
		},
		"item_details":     req.Items,
		"customer_details": req.Customer,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal transaction: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/transactions", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.SetBasicAuth(c.serverKey, "")
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.logger.Printf("create transaction %s failed: %v", req.OrderID, err)
		return nil, &Error{Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var failure struct {
			ErrorMessages []string `json:"error_messages"`
		}
		msg := fmt.Sprintf("unexpected status %d", resp.StatusCode)
		if err := json.NewDecoder(resp.Body).Decode(&failure); err == nil && len(failure.ErrorMessages) > 0 {
			msg = strings.Join(failure.ErrorMessages, " ")
		}
		c.logger.Printf("create transaction %s rejected: %s", req.OrderID, msg)
		return nil, &Error{Message: msg}
	}

	var txn Transaction
	if err := json.NewDecoder(resp.Body).Decode(&txn); err != nil {
		return nil, &Error{Message: "invalid gateway response"}
	}
	if txn.Token == "" {
		return nil, &Error{Message: "gateway returned no token"}
	}
	c.logger.Printf("transaction created, order %s", req.OrderID)
	return &txn, nil
}
