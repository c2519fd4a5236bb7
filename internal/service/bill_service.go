package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/mmynk/tabsplit/internal/apperr"
	"github.com/mmynk/tabsplit/internal/auth"
	"github.com/mmynk/tabsplit/internal/imagestore"
	"github.com/mmynk/tabsplit/internal/middleware"
	"github.com/mmynk/tabsplit/internal/models"
	"github.com/mmynk/tabsplit/internal/parser"
	"github.com/mmynk/tabsplit/internal/ratelimit"
	"github.com/mmynk/tabsplit/internal/storage"
	"github.com/mmynk/tabsplit/internal/verify"
	"github.com/mmynk/tabsplit/pkg/api/apiconnect"
)

// DefaultMaxUploadBytes bounds receipt images when Deps leaves it unset.
const DefaultMaxUploadBytes = 10 << 20

// Notifier queues a text message without blocking. *notify.Dispatcher
// implements it.
type Notifier interface {
	Send(kind, to, body string)
}

// Limits are the rate limit rules applied to abuse-prone operations.
type Limits struct {
	Join   ratelimit.Rule
	Verify ratelimit.Rule
	// Check bounds verification code attempts per participant.
	Check ratelimit.Rule
}

// Deps are the collaborators of BillService. Store is required; the rest
// fall back to inert implementations.
type Deps struct {
	Store          storage.Store
	Tokens         *auth.Authority
	Images         imagestore.Store
	Parser         parser.Parser
	Verifier       verify.Verifier
	Notifier       Notifier
	Limiter        ratelimit.Limiter
	Limits         Limits
	MaxUploadBytes int
	Logger         *slog.Logger
}

// BillService implements the Connect BillService. Every request is
// authorized by the token interceptor in internal/middleware, which puts
// the resolved resource in the context.
type BillService struct {
	apiconnect.UnimplementedBillServiceHandler

	store          storage.Store
	tokens         *auth.Authority
	images         imagestore.Store
	parser         parser.Parser
	verifier       verify.Verifier
	notifier       Notifier
	limiter        ratelimit.Limiter
	limits         Limits
	maxUploadBytes int
	logger         *slog.Logger
}

// NewBillService creates a BillService from deps.
func NewBillService(deps Deps) *BillService {
	s := &BillService{
		store:          deps.Store,
		tokens:         deps.Tokens,
		images:         deps.Images,
		parser:         deps.Parser,
		verifier:       deps.Verifier,
		notifier:       deps.Notifier,
		limiter:        deps.Limiter,
		limits:         deps.Limits,
		maxUploadBytes: deps.MaxUploadBytes,
		logger:         deps.Logger,
	}
	if s.tokens == nil {
		s.tokens = auth.NewAuthority(deps.Store)
	}
	if s.parser == nil {
		s.parser = parser.Disabled{}
	}
	if s.notifier == nil {
		s.notifier = discardNotifier{}
	}
	if s.limiter == nil {
		s.limiter = ratelimit.Noop{}
	}
	if s.maxUploadBytes <= 0 {
		s.maxUploadBytes = DefaultMaxUploadBytes
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

type discardNotifier struct{}

func (discardNotifier) Send(string, string, string) {}

// resource returns the token resource resolved by the interceptor. Its
// absence means the handler was mounted without the interceptor.
func resource(ctx context.Context, kind models.TokenKind) (*models.ResourceRef, error) {
	ref := middleware.GetResource(ctx)
	if ref == nil || (kind != "" && ref.Kind != kind) {
		return nil, &apperr.Error{Kind: apperr.KindNotFound, Message: "bill not found", Err: auth.ErrMissingToken}
	}
	return ref, nil
}

// fail converts err for the wire, logging anything unexpected.
func (s *BillService) fail(ctx context.Context, op string, err error) error {
	switch {
	case apperr.KindOf(err) != apperr.KindInternal:
	case errors.Is(err, storage.ErrNotFound):
		err = apperr.NotFound("bill")
	default:
		s.logger.ErrorContext(ctx, op+" failed", "error", err)
	}
	return apperr.ToConnect(err)
}

// rateLimit applies rule to key. Limiter failures let the request through.
func (s *BillService) rateLimit(ctx context.Context, key string, rule ratelimit.Rule) error {
	if rule.Limit <= 0 {
		return nil
	}
	allowed, retryAfter, err := s.limiter.Allow(ctx, key, rule)
	if err != nil {
		s.logger.WarnContext(ctx, "Rate limiter unavailable", "error", err)
		return nil
	}
	if !allowed {
		return &apperr.Error{
			Kind:    apperr.KindRateLimited,
			Message: "too many attempts, try again later",
			Detail:  "retry after " + retryAfter.Round(time.Second).String(),
		}
	}
	return nil
}
