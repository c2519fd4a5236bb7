// Package twilio is a small client for the Twilio Messages and Verify REST APIs.
package twilio

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultAPIURL    = "https://api.twilio.com"
	DefaultVerifyURL = "https://verify.twilio.com"
)

// Client represents a client for the Twilio REST API.
type Client struct {
	accountSID string
	authToken  string
	apiURL     string
	verifyURL  string
	httpClient *http.Client
}

// ClientOption is a function that configures the client
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithBaseURLs points the client at different Messages and Verify hosts.
func WithBaseURLs(apiURL, verifyURL string) ClientOption {
	return func(c *Client) {
		c.apiURL = strings.TrimRight(apiURL, "/")
		c.verifyURL = strings.TrimRight(verifyURL, "/")
	}
}

// NewClient creates a new Twilio client.
func NewClient(accountSID, authToken string, opts ...ClientOption) *Client {
	c := &Client{
		accountSID: accountSID,
		authToken:  authToken,
		apiURL:     DefaultAPIURL,
		verifyURL:  DefaultVerifyURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Message is the subset of a Twilio message resource we read.
type Message struct {
	SID    string `json:"sid"`
	Status string `json:"status"`
	To     string `json:"to"`
}

// Verification is the subset of a Twilio verification resource we read.
type Verification struct {
	SID    string `json:"sid"`
	Status string `json:"status"`
	To     string `json:"to"`
	Valid  bool   `json:"valid"`
}

// Approved reports whether the verification check succeeded.
func (v *Verification) Approved() bool {
	return v.Status == "approved"
}

// APIError is an error response from Twilio.
type APIError struct {
	StatusCode int    `json:"status"`
	Code       int    `json:"code"`
	Message    string `json:"message"`
	MoreInfo   string `json:"more_info"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("twilio error %d (HTTP %d): %s", e.Code, e.StatusCode, e.Message)
}

// SendSMS sends body to the phone number to.
func (c *Client) SendSMS(ctx context.Context, from, to, body string) (*Message, error) {
	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", c.apiURL, url.PathEscape(c.accountSID))
	form := url.Values{
		"From": {from},
		"To":   {to},
		"Body": {body},
	}

	var msg Message
	if err := c.post(ctx, endpoint, form, &msg); err != nil {
		return nil, fmt.Errorf("failed to send sms: %w", err)
	}
	return &msg, nil
}

// StartVerification asks the Verify service to text a code to to.
func (c *Client) StartVerification(ctx context.Context, serviceSID, to string) (*Verification, error) {
	endpoint := fmt.Sprintf("%s/v2/Services/%s/Verifications", c.verifyURL, url.PathEscape(serviceSID))
	form := url.Values{
		"To":      {to},
		"Channel": {"sms"},
	}

	var v Verification
	if err := c.post(ctx, endpoint, form, &v); err != nil {
		return nil, fmt.Errorf("failed to start verification: %w", err)
	}
	return &v, nil
}

// CheckVerification checks code against the pending verification for to.
func (c *Client) CheckVerification(ctx context.Context, serviceSID, to, code string) (*Verification, error) {
	endpoint := fmt.Sprintf("%s/v2/Services/%s/VerificationCheck", c.verifyURL, url.PathEscape(serviceSID))
	form := url.Values{
		"To":   {to},
		"Code": {code},
	}

	var v Verification
	if err := c.post(ctx, endpoint, form, &v); err != nil {
		return nil, fmt.Errorf("failed to check verification: %w", err)
	}
	return &v, nil
}

func (c *Client) post(ctx context.Context, endpoint string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(c.accountSID, c.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		apiErr.StatusCode = resp.StatusCode
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
