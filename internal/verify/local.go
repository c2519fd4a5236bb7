package verify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mmynk/tabsplit/internal/auth"
)

// Sender delivers a text message.
type Sender interface {
	Send(ctx context.Context, to, body string) error
}

// LocalVerifier generates codes itself. The client holds a signed
// challenge carrying a keyed MAC of the code, so nothing is stored
// server side. Without a Sender the code is logged, for development.
type LocalVerifier struct {
	challenges *auth.ChallengeManager
	sender     Sender
	logger     *slog.Logger
}

// NewLocalVerifier creates a verifier. sender may be nil.
func NewLocalVerifier(challenges *auth.ChallengeManager, sender Sender, logger *slog.Logger) *LocalVerifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LocalVerifier{challenges: challenges, sender: sender, logger: logger}
}

// Start implements Verifier.
func (v *LocalVerifier) Start(ctx context.Context, phone string) (string, error) {
	code, err := auth.GenerateCode()
	if err != nil {
		return "", err
	}
	challenge, err := v.challenges.Issue(phone, code)
	if err != nil {
		return "", err
	}

	if v.sender == nil {
		v.logger.Info("Verification code issued", "phone", MaskPhone(phone), "code", code)
		return challenge, nil
	}
	body := fmt.Sprintf("Your tabsplit verification code is %s", code)
	if err := v.sender.Send(ctx, phone, body); err != nil {
		return "", fmt.Errorf("failed to send verification code: %w", err)
	}
	return challenge, nil
}

// Check implements Verifier.
func (v *LocalVerifier) Check(_ context.Context, phone, challenge, code string) (bool, error) {
	if challenge == "" {
		return false, nil
	}
	ok, err := v.challenges.Verify(challenge, phone, code)
	if errors.Is(err, auth.ErrInvalidChallenge) {
		v.logger.Debug("Rejected verification challenge", "phone", MaskPhone(phone), "error", err)
		return false, nil
	}
	return ok, err
}
