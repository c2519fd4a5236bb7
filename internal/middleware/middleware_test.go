package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/tabsplit/internal/apperr"
	"github.com/mmynk/tabsplit/internal/auth"
	"github.com/mmynk/tabsplit/internal/models"
	"github.com/mmynk/tabsplit/internal/storage"
	"github.com/mmynk/tabsplit/pkg/api"
	"github.com/mmynk/tabsplit/pkg/api/apiconnect"
	"github.com/mmynk/tabsplit/pkg/logging"
)

const (
	creatorToken = "cccccccccccccccccccccccccccccccc"
	shareToken   = "joes-diner-ssssssssssssssssssssssssssssssss"
	participant  = "pppppppppppppppppppppppppppppppp"
)

type fakeTokenStore struct {
	refs map[string]*models.ResourceRef
	err  error
}

func (f *fakeTokenStore) ResolveToken(_ context.Context, kind models.TokenKind, token string) (*models.ResourceRef, error) {
	if f.err != nil {
		return nil, f.err
	}
	ref, ok := f.refs[token]
	if !ok || ref.Kind != kind {
		return nil, storage.ErrNotFound
	}
	return ref, nil
}

// recordingHandler records the resource each call saw.
type recordingHandler struct {
	apiconnect.UnimplementedBillServiceHandler
	seen *models.ResourceRef
}

func (p *recordingHandler) CreateBill(ctx context.Context, _ *connect.Request[api.CreateBillRequest]) (*connect.Response[api.CreateBillResponse], error) {
	p.seen = GetResource(ctx)
	return connect.NewResponse(&api.CreateBillResponse{BillID: "new"}), nil
}

func (p *recordingHandler) GetBill(ctx context.Context, _ *connect.Request[api.GetBillRequest]) (*connect.Response[api.GetBillResponse], error) {
	p.seen = GetResource(ctx)
	return connect.NewResponse(&api.GetBillResponse{Bill: &api.Bill{ID: p.seen.BillID}}), nil
}

func (p *recordingHandler) GetFinalResults(ctx context.Context, _ *connect.Request[api.GetFinalResultsRequest]) (*connect.Response[api.GetFinalResultsResponse], error) {
	p.seen = GetResource(ctx)
	return connect.NewResponse(&api.GetFinalResultsResponse{Results: &api.FinalResults{BillID: p.seen.BillID}}), nil
}

func (p *recordingHandler) JoinBill(context.Context, *connect.Request[api.JoinBillRequest]) (*connect.Response[api.JoinBillResponse], error) {
	return nil, apperr.ToConnect(apperr.StateConflict("bill is not active", ""))
}

func newTestServer(t *testing.T, store *fakeTokenStore, reg prometheus.Registerer) (apiconnect.BillServiceClient, *recordingHandler) {
	t.Helper()
	p := &recordingHandler{}
	interceptors := connect.WithInterceptors(
		NewRPCMetrics(reg).Interceptor(),
		LoggingInterceptor(logging.Discard()),
		RequireToken(auth.NewAuthority(store), DefaultPolicy()),
	)
	path, handler := apiconnect.NewBillServiceHandler(p, interceptors)
	mux := http.NewServeMux()
	mux.Handle(path, handler)
	srv := httptest.NewServer(CORS([]string{"*"}, RequestLogger(logging.Discard(), mux)))
	t.Cleanup(srv.Close)
	return apiconnect.NewBillServiceClient(srv.Client(), srv.URL), p
}

func defaultStore() *fakeTokenStore {
	return &fakeTokenStore{refs: map[string]*models.ResourceRef{
		creatorToken: {Kind: models.TokenCreator, BillID: "b1"},
		shareToken:   {Kind: models.TokenShare, BillID: "b1"},
		participant:  {Kind: models.TokenParticipant, BillID: "b1", ParticipantID: "p1"},
	}}
}

func withToken[T any](msg *T, token string) *connect.Request[T] {
	req := connect.NewRequest(msg)
	if token != "" {
		req.Header().Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestRequireToken(t *testing.T) {
	client, p := newTestServer(t, defaultStore(), prometheus.NewRegistry())
	ctx := context.Background()

	resp, err := client.GetBill(ctx, withToken(&api.GetBillRequest{}, creatorToken))
	require.NoError(t, err)
	assert.Equal(t, "b1", resp.Msg.Bill.ID)
	assert.Equal(t, models.TokenCreator, p.seen.Kind)

	tests := []struct {
		name  string
		token string
	}{
		{"missing", ""},
		{"unknown", "zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz"},
		{"malformed", "not a token!"},
		{"wrong kind", shareToken},
		{"participant", participant},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.GetBill(ctx, withToken(&api.GetBillRequest{}, tt.token))
			require.Error(t, err)
			assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))
			assert.Equal(t, apperr.KindNotFound, apperr.KindFromConnect(err))
			assert.Equal(t, "bill not found", err.(*connect.Error).Message())
		})
	}
}

func TestRequireTokenAcceptsEitherKind(t *testing.T) {
	client, p := newTestServer(t, defaultStore(), prometheus.NewRegistry())
	ctx := context.Background()

	for _, token := range []string{creatorToken, shareToken} {
		resp, err := client.GetFinalResults(ctx, withToken(&api.GetFinalResultsRequest{}, token))
		require.NoError(t, err)
		assert.Equal(t, "b1", resp.Msg.Results.BillID)
	}
	assert.Equal(t, models.TokenShare, p.seen.Kind)

	_, err := client.GetFinalResults(ctx, withToken(&api.GetFinalResultsRequest{}, participant))
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))
}

func TestRequireTokenPublicProcedure(t *testing.T) {
	client, p := newTestServer(t, defaultStore(), prometheus.NewRegistry())

	resp, err := client.CreateBill(context.Background(), connect.NewRequest(&api.CreateBillRequest{}))
	require.NoError(t, err)
	assert.Equal(t, "new", resp.Msg.BillID)
	assert.Nil(t, p.seen)
}

func TestRequireTokenStoreFailure(t *testing.T) {
	client, _ := newTestServer(t, &fakeTokenStore{err: errors.New("database is locked")}, prometheus.NewRegistry())

	_, err := client.GetBill(context.Background(), withToken(&api.GetBillRequest{}, creatorToken))
	assert.Equal(t, connect.CodeInternal, connect.CodeOf(err))
}

func TestRPCMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	client, _ := newTestServer(t, defaultStore(), reg)
	ctx := context.Background()

	_, err := client.GetBill(ctx, withToken(&api.GetBillRequest{}, creatorToken))
	require.NoError(t, err)
	_, err = client.JoinBill(ctx, withToken(&api.JoinBillRequest{}, shareToken))
	require.Error(t, err)
	assert.Equal(t, apperr.KindStateConflict, apperr.KindFromConnect(err))

	count, err := testutil.GatherAndCount(reg, "tabsplit_rpc_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"bearer abc", "abc", true},
		{"  Bearer   abc  ", "abc", true},
		{"Basic abc", "", false},
		{"Bearer", "", false},
		{"Bearer ", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := BearerToken(tt.header)
		assert.Equal(t, tt.ok, ok, tt.header)
		assert.Equal(t, tt.want, got, tt.header)
	}
}

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	t.Run("allow list", func(t *testing.T) {
		h := CORS([]string{"https://tabsplit.app"}, next)

		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("Origin", "https://tabsplit.app")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, "https://tabsplit.app", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
		assert.Equal(t, http.StatusTeapot, rec.Code)

		req = httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("Origin", "https://evil.example")
		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight", func(t *testing.T) {
		rec := httptest.NewRecorder()
		CORS([]string{"*"}, next).ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})
}
