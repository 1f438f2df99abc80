package payment

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestCreateTransaction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/transactions" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if user, _, ok := r.BasicAuth(); !ok || user != "server-key" {
			t.Fatalf("expected server key as basic auth user")
		}
		var payload struct {
			TransactionDetails struct {
				OrderID     string `json:"order_id"`
				GrossAmount int64  `json:"gross_amount"`
			} `json:"transaction_details"`
			ItemDetails []Item `json:"item_details"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		if payload.TransactionDetails.OrderID != "DOM-1234-1" {
			t.Fatalf("unexpected order id %q", payload.TransactionDetails.OrderID)
		}
		if payload.TransactionDetails.GrossAmount != 270000 {
			t.Fatalf("unexpected gross amount %d", payload.TransactionDetails.GrossAmount)
		}
		if len(payload.ItemDetails) != 2 {
			t.Fatalf("expected 2 line items, got %d", len(payload.ItemDetails))
		}
		json.NewEncoder(w).Encode(map[string]string{"token": "tok-abc", "redirect_url": "https://pay.example/tok-abc"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "server-key", testLogger())
	txn, err := client.CreateTransaction(context.Background(), TransactionRequest{
		OrderID:     "DOM-1234-1",
		GrossAmount: 270000,
		Items: []Item{
			{ID: "example.com", Price: 300000, Quantity: 1, Name: "Registrasi Domain example.com (2 Tahun)"},
			{ID: "DISCOUNT", Price: -30000, Quantity: 1, Name: "Voucher SAVE10"},
		},
		Customer: CustomerDetails{FirstName: "Budi", Email: "budi@example.com"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if txn.Token != "tok-abc" {
		t.Fatalf("unexpected token %q", txn.Token)
	}
}

func TestCreateTransactionGatewayRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]interface{}{"error_messages": []string{"access denied"}})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "bad-key", testLogger())
	_, err := client.CreateTransaction(context.Background(), TransactionRequest{OrderID: "X", GrossAmount: 1})
	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("expected payment error, got %v", err)
	}
	if perr.Message != "access denied" {
		t.Fatalf("unexpected message %q", perr.Message)
	}
}

func TestCreateTransactionMissingToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "key", testLogger())
	_, err := client.CreateTransaction(context.Background(), TransactionRequest{OrderID: "X", GrossAmount: 1})
	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("expected payment error, got %v", err)
	}
}
