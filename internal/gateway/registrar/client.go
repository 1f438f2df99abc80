package registrar

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// Client is the HTTP implementation of Gateway. It authenticates with basic
// auth and treats timeouts and non-2xx responses as *Error.
type Client struct {
	baseURL  string
	username string
	password string
	http     *http.Client
	logger   *log.Logger
}

func NewClient(baseURL, username, password string, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.New(os.Stdout, "[registrar] ", log.LstdFlags|log.LUTC)
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		username: username,
		password: password,
		http:     &http.Client{Timeout: 15 * time.Second},
		logger:   logger,
	}
}

func (c *Client) CheckAvailability(ctx context.Context, name string) (*Availability, error) {
	q := url.Values{}
	q.Set("domain", name)
	q.Set("include_premium_domains", "true")

	var resp struct {
		Data []struct {
			Name                     string `json:"name"`
			Available                int    `json:"available"`
			IsPremiumName            bool   `json:"is_premium_name"`
			PremiumRegistrationPrice int64  `json:"premium_registration_price"`
		} `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/domains/availability?"+q.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, &Error{Message: "invalid availability response"}
	}
	first := resp.Data[0]
	return &Availability{
		Name:      first.Name,
		Available: first.Available == 1,
		Premium:   first.IsPremiumName,
		Price:     first.PremiumRegistrationPrice,
	}, nil
}

func (c *Client) Register(ctx context.Context, req RegistrationRequest) (*Domain, error) {
	var resp struct {
		Data Domain `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/domains", req, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (c *Client) Transfer(ctx context.Context, req TransferRequest) (*Domain, error) {
	var resp struct {
		Data Domain `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/domains/transfer", req, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (c *Client) ListDomains(ctx context.Context, customerID int64) ([]Domain, error) {
	q := url.Values{}
	q.Set("customer_id", fmt.Sprintf("%d", customerID))

	var resp struct {
		Data []Domain `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/domains?"+q.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) ShowDomain(ctx context.Context, domainID string) (*Domain, error) {
	var dom Domain
	if err := c.do(ctx, http.MethodGet, "/domains/"+url.PathEscape(domainID), nil, &dom); err != nil {
		return nil, err
	}
	return &dom, nil
}

func (c *Client) ResendVerification(ctx context.Context, domainID string) error {
	return c.do(ctx, http.MethodPost, "/domains/"+url.PathEscape(domainID)+"/verification/resend", nil, nil)
}

func (c *Client) Lock(ctx context.Context, domainID string) error {
	return c.do(ctx, http.MethodPut, "/domains/"+url.PathEscape(domainID)+"/locked", map[string]string{"reason": ""}, nil)
}

func (c *Client) Unlock(ctx context.Context, domainID string) error {
	return c.do(ctx, http.MethodDelete, "/domains/"+url.PathEscape(domainID)+"/locked", nil, nil)
}

func (c *Client) Suspend(ctx context.Context, domainID, reason string) error {
	body := map[string]interface{}{"type": 2, "reason": reason}
	return c.do(ctx, http.MethodPut, "/domains/"+url.PathEscape(domainID)+"/suspended", body, nil)
}

func (c *Client) Unsuspend(ctx context.Context, domainID string) error {
	return c.do(ctx, http.MethodDelete, "/domains/"+url.PathEscape(domainID)+"/suspended", nil, nil)
}

func (c *Client) DNSRecords(ctx context.Context, domainID string) ([]DNSRecord, error) {
	var resp struct {
		Records []DNSRecord `json:"records"`
	}
	if err := c.do(ctx, http.MethodGet, "/domains/"+url.PathEscape(domainID)+"/dns", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Records, nil
}

func (c *Client) CreateDNSRecord(ctx context.Context, domainID string, rec DNSRecord) error {
	return c.do(ctx, http.MethodPut, "/domains/"+url.PathEscape(domainID)+"/dns", rec, nil)
}

func (c *Client) DeleteDNSRecord(ctx context.Context, domainID string, rec DNSRecord) error {
	return c.do(ctx, http.MethodDelete, "/domains/"+url.PathEscape(domainID)+"/dns/record", rec, nil)
}

func (c *Client) CreateCustomer(ctx context.Context, cust Customer) (*Customer, error) {
	var resp struct {
		Data Customer `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/customers", cust, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (c *Client) ShowCustomer(ctx context.Context, customerID int64) (*Customer, error) {
	var resp struct {
		Data Customer `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/customers/%d", customerID), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (c *Client) UpdateCustomer(ctx context.Context, customerID int64, cust Customer) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/customers/%d", customerID), cust, nil)
}

// do issues one request and decodes the response into out when non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		var uerr *url.Error
		if errors.As(err, &uerr) && uerr.Timeout() {
			c.logger.Printf("timeout on %s %s", method, path)
			return &Error{Message: "API timeout, please try again later"}
		}
		return &Error{Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := apiErrorMessage(resp.Body)
		c.logger.Printf("%s %s failed: status %d: %s", method, path, resp.StatusCode, msg)
		return &Error{Code: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// apiErrorMessage digs the registrar's error payload out of a failed
// response: either a flat message or a field→messages map.
func apiErrorMessage(body io.Reader) string {
	var payload struct {
		Message string              `json:"message"`
		Errors  map[string][]string `json:"errors"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err == nil {
		if len(payload.Errors) > 0 {
			var parts []string
			for _, msgs := range payload.Errors {
				parts = append(parts, msgs...)
			}
			return strings.Join(parts, " ")
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return "an error occurred with the registrar API"
}
