package middleware

import (
	"context"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/tabsplit/internal/apperr"
	"github.com/mmynk/tabsplit/internal/auth"
	"github.com/mmynk/tabsplit/internal/models"
	"github.com/mmynk/tabsplit/pkg/api/apiconnect"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// ResourceKey is the context key for the resource the bearer token resolved to.
const ResourceKey contextKey = "resource"

// GetResource returns the resolved token resource, or nil for public procedures.
func GetResource(ctx context.Context) *models.ResourceRef {
	ref, _ := ctx.Value(ResourceKey).(*models.ResourceRef)
	return ref
}

// WithResource stores ref in ctx.
func WithResource(ctx context.Context, ref *models.ResourceRef) context.Context {
	return context.WithValue(ctx, ResourceKey, ref)
}

// TokenPolicy maps a procedure to the token kinds it accepts, tried in
// order. Procedures with no entry are public.
type TokenPolicy map[string][]models.TokenKind

var (
	creatorOnly     = []models.TokenKind{models.TokenCreator}
	shareOnly       = []models.TokenKind{models.TokenShare}
	participantOnly = []models.TokenKind{models.TokenParticipant}
)

// DefaultPolicy is the token policy of BillService.
func DefaultPolicy() TokenPolicy {
	return TokenPolicy{
		apiconnect.BillServiceGetBillProcedure:                creatorOnly,
		apiconnect.BillServiceParseBillProcedure:              creatorOnly,
		apiconnect.BillServiceIngestItemsProcedure:            creatorOnly,
		apiconnect.BillServiceAddItemProcedure:                creatorOnly,
		apiconnect.BillServiceUpdateItemProcedure:             creatorOnly,
		apiconnect.BillServiceDeleteItemProcedure:             creatorOnly,
		apiconnect.BillServiceUpdateTotalsProcedure:           creatorOnly,
		apiconnect.BillServiceConfirmBillProcedure:            creatorOnly,
		apiconnect.BillServiceGetDashboardProcedure:           creatorOnly,
		apiconnect.BillServiceCompleteBillProcedure:           creatorOnly,
		apiconnect.BillServiceGetSharedBillProcedure:          shareOnly,
		apiconnect.BillServiceJoinBillProcedure:               shareOnly,
		apiconnect.BillServiceGetClaimsProcedure:              participantOnly,
		apiconnect.BillServiceSetClaimsProcedure:              participantOnly,
		apiconnect.BillServiceSubmitClaimsProcedure:           participantOnly,
		apiconnect.BillServiceStartPhoneVerificationProcedure: participantOnly,
		apiconnect.BillServiceCheckPhoneVerificationProcedure: participantOnly,
		apiconnect.BillServiceGetFinalResultsProcedure:        {models.TokenCreator, models.TokenShare},
	}
}

// BearerToken extracts the token from an "Authorization: Bearer" header.
func BearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// RequireToken returns an interceptor that resolves the bearer token of
// every procedure in policy and stores the ResourceRef in the context.
// Missing, malformed and unknown tokens all fail with the same NotFound.
func RequireToken(authority *auth.Authority, policy TokenPolicy) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			kinds, ok := policy[req.Spec().Procedure]
			if !ok {
				return next(ctx, req)
			}

			token, _ := BearerToken(req.Header().Get("Authorization"))

			var err error
			for _, kind := range kinds {
				var ref *models.ResourceRef
				ref, err = authority.Resolve(ctx, kind, token)
				if err == nil {
					return next(WithResource(ctx, ref), req)
				}
				if !apperr.Is(err, apperr.KindNotFound) {
					break
				}
			}
			return nil, apperr.ToConnect(err)
		}
	}
}
