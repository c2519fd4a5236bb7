// Package notify delivers fire-and-forget text messages to participants.
package notify

import (
	"context"
	"log/slog"

	"github.com/mmynk/tabsplit/internal/twilio"
)

// Messenger sends a single text message.
type Messenger interface {
	Send(ctx context.Context, to, body string) error
}

// SMSAPI is the part of the Twilio client used for messages.
type SMSAPI interface {
	SendSMS(ctx context.Context, from, to, body string) (*twilio.Message, error)
}

// TwilioMessenger sends through the Twilio Messages API.
type TwilioMessenger struct {
	client SMSAPI
	from   string
}

func NewTwilioMessenger(client SMSAPI, from string) *TwilioMessenger {
	return &TwilioMessenger{client: client, from: from}
}

func (m *TwilioMessenger) Send(ctx context.Context, to, body string) error {
	_, err := m.client.SendSMS(ctx, m.from, to, body)
	return err
}

// LogMessenger writes messages to the log instead of sending them.
type LogMessenger struct {
	logger *slog.Logger
}

func NewLogMessenger(logger *slog.Logger) *LogMessenger {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogMessenger{logger: logger}
}

func (m *LogMessenger) Send(_ context.Context, to, body string) error {
	m.logger.Info("SMS (not sent)", "to", to, "body", body)
	return nil
}
