package verify

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/mmynk/tabsplit/internal/twilio"
)

// VerifyAPI is the part of the Twilio client the verifier uses.
type VerifyAPI interface {
	StartVerification(ctx context.Context, serviceSID, to string) (*twilio.Verification, error)
	CheckVerification(ctx context.Context, serviceSID, to, code string) (*twilio.Verification, error)
}

// TwilioVerifier delegates code delivery and checking to Twilio Verify.
type TwilioVerifier struct {
	client     VerifyAPI
	serviceSID string
}

// NewTwilioVerifier creates a verifier for the given Verify service.
func NewTwilioVerifier(client VerifyAPI, serviceSID string) *TwilioVerifier {
	return &TwilioVerifier{client: client, serviceSID: serviceSID}
}

// Start implements Verifier. Twilio keeps the pending state, so there is no challenge.
func (v *TwilioVerifier) Start(ctx context.Context, phone string) (string, error) {
	if _, err := v.client.StartVerification(ctx, v.serviceSID, phone); err != nil {
		return "", err
	}
	return "", nil
}

// Check implements Verifier.
func (v *TwilioVerifier) Check(ctx context.Context, phone, _, code string) (bool, error) {
	res, err := v.client.CheckVerification(ctx, v.serviceSID, phone, code)
	if err != nil {
		// Twilio answers 404 once a verification has expired or been used up.
		var apiErr *twilio.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return false, nil
		}
		return false, fmt.Errorf("verification check failed: %w", err)
	}
	return res.Approved(), nil
}
