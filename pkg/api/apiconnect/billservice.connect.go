// Package apiconnect holds the Connect service descriptors for
// tabsplit.v1.BillService.
package apiconnect

import (
	context "context"
	errors "errors"
	http "net/http"
	strings "strings"

	connect "connectrpc.com/connect"

	api "github.com/mmynk/tabsplit/pkg/api"
)

// BillServiceName is the fully-qualified name of the BillService service.
const BillServiceName = "tabsplit.v1.BillService"

// These constants are the fully-qualified names of the RPCs defined in this package. They're
// exposed at runtime as Spec.Procedure and as the final two segments of the HTTP route.
const (
	// BillServiceCreateBillProcedure is the fully-qualified name of the BillService's CreateBill RPC.
	BillServiceCreateBillProcedure = "/tabsplit.v1.BillService/CreateBill"
	// BillServiceGetBillProcedure is the fully-qualified name of the BillService's GetBill RPC.
	BillServiceGetBillProcedure = "/tabsplit.v1.BillService/GetBill"
	// BillServiceParseBillProcedure is the fully-qualified name of the BillService's ParseBill RPC.
	BillServiceParseBillProcedure = "/tabsplit.v1.BillService/ParseBill"
	// BillServiceIngestItemsProcedure is the fully-qualified name of the BillService's IngestItems RPC.
	BillServiceIngestItemsProcedure = "/tabsplit.v1.BillService/IngestItems"
	// BillServiceAddItemProcedure is the fully-qualified name of the BillService's AddItem RPC.
	BillServiceAddItemProcedure = "/tabsplit.v1.BillService/AddItem"
	// BillServiceUpdateItemProcedure is the fully-qualified name of the BillService's UpdateItem RPC.
	BillServiceUpdateItemProcedure = "/tabsplit.v1.BillService/UpdateItem"
	// BillServiceDeleteItemProcedure is the fully-qualified name of the BillService's DeleteItem RPC.
	BillServiceDeleteItemProcedure = "/tabsplit.v1.BillService/DeleteItem"
	// BillServiceUpdateTotalsProcedure is the fully-qualified name of the BillService's UpdateTotals RPC.
	BillServiceUpdateTotalsProcedure = "/tabsplit.v1.BillService/UpdateTotals"
	// BillServiceConfirmBillProcedure is the fully-qualified name of the BillService's ConfirmBill RPC.
	BillServiceConfirmBillProcedure = "/tabsplit.v1.BillService/ConfirmBill"
	// BillServiceGetSharedBillProcedure is the fully-qualified name of the BillService's GetSharedBill RPC.
	BillServiceGetSharedBillProcedure = "/tabsplit.v1.BillService/GetSharedBill"
	// BillServiceJoinBillProcedure is the fully-qualified name of the BillService's JoinBill RPC.
	BillServiceJoinBillProcedure = "/tabsplit.v1.BillService/JoinBill"
	// BillServiceGetClaimsProcedure is the fully-qualified name of the BillService's GetClaims RPC.
	BillServiceGetClaimsProcedure = "/tabsplit.v1.BillService/GetClaims"
	// BillServiceSetClaimsProcedure is the fully-qualified name of the BillService's SetClaims RPC.
	BillServiceSetClaimsProcedure = "/tabsplit.v1.BillService/SetClaims"
	// BillServiceSubmitClaimsProcedure is the fully-qualified name of the BillService's SubmitClaims RPC.
	BillServiceSubmitClaimsProcedure = "/tabsplit.v1.BillService/SubmitClaims"
	// BillServiceStartPhoneVerificationProcedure is the fully-qualified name of the BillService's StartPhoneVerification RPC.
	BillServiceStartPhoneVerificationProcedure = "/tabsplit.v1.BillService/StartPhoneVerification"
	// BillServiceCheckPhoneVerificationProcedure is the fully-qualified name of the BillService's CheckPhoneVerification RPC.
	BillServiceCheckPhoneVerificationProcedure = "/tabsplit.v1.BillService/CheckPhoneVerification"
	// BillServiceGetDashboardProcedure is the fully-qualified name of the BillService's GetDashboard RPC.
	BillServiceGetDashboardProcedure = "/tabsplit.v1.BillService/GetDashboard"
	// BillServiceCompleteBillProcedure is the fully-qualified name of the BillService's CompleteBill RPC.
	BillServiceCompleteBillProcedure = "/tabsplit.v1.BillService/CompleteBill"
	// BillServiceGetFinalResultsProcedure is the fully-qualified name of the BillService's GetFinalResults RPC.
	BillServiceGetFinalResultsProcedure = "/tabsplit.v1.BillService/GetFinalResults"
)

// BillServiceClient is a client for the tabsplit.v1.BillService service.
type BillServiceClient interface {
	// CreateBill creates a bill from an optional receipt image.
	CreateBill(context.Context, *connect.Request[api.CreateBillRequest]) (*connect.Response[api.CreateBillResponse], error)
	// GetBill returns the creator's view of a bill.
	GetBill(context.Context, *connect.Request[api.GetBillRequest]) (*connect.Response[api.GetBillResponse], error)
	// ParseBill runs the stored receipt image through the parsing service.
	ParseBill(context.Context, *connect.Request[api.ParseBillRequest]) (*connect.Response[api.ParseBillResponse], error)
	// IngestItems replaces a bill's items and totals.
	IngestItems(context.Context, *connect.Request[api.IngestItemsRequest]) (*connect.Response[api.IngestItemsResponse], error)
	// AddItem appends an item while editing.
	AddItem(context.Context, *connect.Request[api.AddItemRequest]) (*connect.Response[api.AddItemResponse], error)
	// UpdateItem renames or reprices an item while editing.
	UpdateItem(context.Context, *connect.Request[api.UpdateItemRequest]) (*connect.Response[api.UpdateItemResponse], error)
	// DeleteItem removes an item and its claims.
	DeleteItem(context.Context, *connect.Request[api.DeleteItemRequest]) (*connect.Response[api.DeleteItemResponse], error)
	// UpdateTotals sets subtotal, tax and tip while editing.
	UpdateTotals(context.Context, *connect.Request[api.UpdateTotalsRequest]) (*connect.Response[api.UpdateTotalsResponse], error)
	// ConfirmBill activates a bill and enrolls the creator as a participant.
	ConfirmBill(context.Context, *connect.Request[api.ConfirmBillRequest]) (*connect.Response[api.ConfirmBillResponse], error)
	// GetSharedBill returns the shared view of an active or complete bill.
	GetSharedBill(context.Context, *connect.Request[api.GetSharedBillRequest]) (*connect.Response[api.GetSharedBillResponse], error)
	// JoinBill adds a participant to an active bill.
	JoinBill(context.Context, *connect.Request[api.JoinBillRequest]) (*connect.Response[api.JoinBillResponse], error)
	// GetClaims returns the caller's claims and provisional total.
	GetClaims(context.Context, *connect.Request[api.GetClaimsRequest]) (*connect.Response[api.GetClaimsResponse], error)
	// SetClaims replaces the caller's claims.
	SetClaims(context.Context, *connect.Request[api.SetClaimsRequest]) (*connect.Response[api.SetClaimsResponse], error)
	// SubmitClaims locks in the caller's claims.
	SubmitClaims(context.Context, *connect.Request[api.SubmitClaimsRequest]) (*connect.Response[api.SubmitClaimsResponse], error)
	// StartPhoneVerification sends a verification code to a phone number.
	StartPhoneVerification(context.Context, *connect.Request[api.StartPhoneVerificationRequest]) (*connect.Response[api.StartPhoneVerificationResponse], error)
	// CheckPhoneVerification checks a verification code.
	CheckPhoneVerification(context.Context, *connect.Request[api.CheckPhoneVerificationRequest]) (*connect.Response[api.CheckPhoneVerificationResponse], error)
	// GetDashboard returns the creator's roster and reconciliation.
	GetDashboard(context.Context, *connect.Request[api.GetDashboardRequest]) (*connect.Response[api.GetDashboardResponse], error)
	// CompleteBill records payment handles and finalizes the bill.
	CompleteBill(context.Context, *connect.Request[api.CompleteBillRequest]) (*connect.Response[api.CompleteBillResponse], error)
	// GetFinalResults returns the final per-participant totals.
	GetFinalResults(context.Context, *connect.Request[api.GetFinalResultsRequest]) (*connect.Response[api.GetFinalResultsResponse], error)
}

// NewBillServiceClient constructs a client for the tabsplit.v1.BillService service. Messages
// are encoded with the JSON codec unless opts override it.
//
// The URL supplied here should be the base URL for the Connect server (for example,
// http://api.acme.com or https://acme.com/grpc).
func NewBillServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) BillServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(api.Codec{})}, opts...)
	return &billServiceClient{
		createBill:             connect.NewClient[api.CreateBillRequest, api.CreateBillResponse](httpClient, baseURL+BillServiceCreateBillProcedure, opts...),
		getBill:                connect.NewClient[api.GetBillRequest, api.GetBillResponse](httpClient, baseURL+BillServiceGetBillProcedure, opts...),
		parseBill:              connect.NewClient[api.ParseBillRequest, api.ParseBillResponse](httpClient, baseURL+BillServiceParseBillProcedure, opts...),
		ingestItems:            connect.NewClient[api.IngestItemsRequest, api.IngestItemsResponse](httpClient, baseURL+BillServiceIngestItemsProcedure, opts...),
		addItem:                connect.NewClient[api.AddItemRequest, api.AddItemResponse](httpClient, baseURL+BillServiceAddItemProcedure, opts...),
		updateItem:             connect.NewClient[api.UpdateItemRequest, api.UpdateItemResponse](httpClient, baseURL+BillServiceUpdateItemProcedure, opts...),
		deleteItem:             connect.NewClient[api.DeleteItemRequest, api.DeleteItemResponse](httpClient, baseURL+BillServiceDeleteItemProcedure, opts...),
		updateTotals:           connect.NewClient[api.UpdateTotalsRequest, api.UpdateTotalsResponse](httpClient, baseURL+BillServiceUpdateTotalsProcedure, opts...),
		confirmBill:            connect.NewClient[api.ConfirmBillRequest, api.ConfirmBillResponse](httpClient, baseURL+BillServiceConfirmBillProcedure, opts...),
		getSharedBill:          connect.NewClient[api.GetSharedBillRequest, api.GetSharedBillResponse](httpClient, baseURL+BillServiceGetSharedBillProcedure, opts...),
		joinBill:               connect.NewClient[api.JoinBillRequest, api.JoinBillResponse](httpClient, baseURL+BillServiceJoinBillProcedure, opts...),
		getClaims:              connect.NewClient[api.GetClaimsRequest, api.GetClaimsResponse](httpClient, baseURL+BillServiceGetClaimsProcedure, opts...),
		setClaims:              connect.NewClient[api.SetClaimsRequest, api.SetClaimsResponse](httpClient, baseURL+BillServiceSetClaimsProcedure, opts...),
		submitClaims:           connect.NewClient[api.SubmitClaimsRequest, api.SubmitClaimsResponse](httpClient, baseURL+BillServiceSubmitClaimsProcedure, opts...),
		startPhoneVerification: connect.NewClient[api.StartPhoneVerificationRequest, api.StartPhoneVerificationResponse](httpClient, baseURL+BillServiceStartPhoneVerificationProcedure, opts...),
		checkPhoneVerification: connect.NewClient[api.CheckPhoneVerificationRequest, api.CheckPhoneVerificationResponse](httpClient, baseURL+BillServiceCheckPhoneVerificationProcedure, opts...),
		getDashboard:           connect.NewClient[api.GetDashboardRequest, api.GetDashboardResponse](httpClient, baseURL+BillServiceGetDashboardProcedure, opts...),
		completeBill:           connect.NewClient[api.CompleteBillRequest, api.CompleteBillResponse](httpClient, baseURL+BillServiceCompleteBillProcedure, opts...),
		getFinalResults:        connect.NewClient[api.GetFinalResultsRequest, api.GetFinalResultsResponse](httpClient, baseURL+BillServiceGetFinalResultsProcedure, opts...),
	}
}

// billServiceClient implements BillServiceClient.
type billServiceClient struct {
	createBill             *connect.Client[api.CreateBillRequest, api.CreateBillResponse]
	getBill                *connect.Client[api.GetBillRequest, api.GetBillResponse]
	parseBill              *connect.Client[api.ParseBillRequest, api.ParseBillResponse]
	ingestItems            *connect.Client[api.IngestItemsRequest, api.IngestItemsResponse]
	addItem                *connect.Client[api.AddItemRequest, api.AddItemResponse]
	updateItem             *connect.Client[api.UpdateItemRequest, api.UpdateItemResponse]
	deleteItem             *connect.Client[api.DeleteItemRequest, api.DeleteItemResponse]
	updateTotals           *connect.Client[api.UpdateTotalsRequest, api.UpdateTotalsResponse]
	confirmBill            *connect.Client[api.ConfirmBillRequest, api.ConfirmBillResponse]
	getSharedBill          *connect.Client[api.GetSharedBillRequest, api.GetSharedBillResponse]
	joinBill               *connect.Client[api.JoinBillRequest, api.JoinBillResponse]
	getClaims              *connect.Client[api.GetClaimsRequest, api.GetClaimsResponse]
	setClaims              *connect.Client[api.SetClaimsRequest, api.SetClaimsResponse]
	submitClaims           *connect.Client[api.SubmitClaimsRequest, api.SubmitClaimsResponse]
	startPhoneVerification *connect.Client[api.StartPhoneVerificationRequest, api.StartPhoneVerificationResponse]
	checkPhoneVerification *connect.Client[api.CheckPhoneVerificationRequest, api.CheckPhoneVerificationResponse]
	getDashboard           *connect.Client[api.GetDashboardRequest, api.GetDashboardResponse]
	completeBill           *connect.Client[api.CompleteBillRequest, api.CompleteBillResponse]
	getFinalResults        *connect.Client[api.GetFinalResultsRequest, api.GetFinalResultsResponse]
}

// CreateBill calls tabsplit.v1.BillService.CreateBill.
func (c *billServiceClient) CreateBill(ctx context.Context, req *connect.Request[api.CreateBillRequest]) (*connect.Response[api.CreateBillResponse], error) {
	return c.createBill.CallUnary(ctx, req)
}

// GetBill calls tabsplit.v1.BillService.GetBill.
func (c *billServiceClient) GetBill(ctx context.Context, req *connect.Request[api.GetBillRequest]) (*connect.Response[api.GetBillResponse], error) {
	return c.getBill.CallUnary(ctx, req)
}

// ParseBill calls tabsplit.v1.BillService.ParseBill.
func (c *billServiceClient) ParseBill(ctx context.Context, req *connect.Request[api.ParseBillRequest]) (*connect.Response[api.ParseBillResponse], error) {
	return c.parseBill.CallUnary(ctx, req)
}

// IngestItems calls tabsplit.v1.BillService.IngestItems.
func (c *billServiceClient) IngestItems(ctx context.Context, req *connect.Request[api.IngestItemsRequest]) (*connect.Response[api.IngestItemsResponse], error) {
	return c.ingestItems.CallUnary(ctx, req)
}

// AddItem calls tabsplit.v1.BillService.AddItem.
func (c *billServiceClient) AddItem(ctx context.Context, req *connect.Request[api.AddItemRequest]) (*connect.Response[api.AddItemResponse], error) {
	return c.addItem.CallUnary(ctx, req)
}

// UpdateItem calls tabsplit.v1.BillService.UpdateItem.
func (c *billServiceClient) UpdateItem(ctx context.Context, req *connect.Request[api.UpdateItemRequest]) (*connect.Response[api.UpdateItemResponse], error) {
	return c.updateItem.CallUnary(ctx, req)
}

// DeleteItem calls tabsplit.v1.BillService.DeleteItem.
func (c *billServiceClient) DeleteItem(ctx context.Context, req *connect.Request[api.DeleteItemRequest]) (*connect.Response[api.DeleteItemResponse], error) {
	return c.deleteItem.CallUnary(ctx, req)
}

// UpdateTotals calls tabsplit.v1.BillService.UpdateTotals.
func (c *billServiceClient) UpdateTotals(ctx context.Context, req *connect.Request[api.UpdateTotalsRequest]) (*connect.Response[api.UpdateTotalsResponse], error) {
	return c.updateTotals.CallUnary(ctx, req)
}

// ConfirmBill calls tabsplit.v1.BillService.ConfirmBill.
func (c *billServiceClient) ConfirmBill(ctx context.Context, req *connect.Request[api.ConfirmBillRequest]) (*connect.Response[api.ConfirmBillResponse], error) {
	return c.confirmBill.CallUnary(ctx, req)
}

// GetSharedBill calls tabsplit.v1.BillService.GetSharedBill.
func (c *billServiceClient) GetSharedBill(ctx context.Context, req *connect.Request[api.GetSharedBillRequest]) (*connect.Response[api.GetSharedBillResponse], error) {
	return c.getSharedBill.CallUnary(ctx, req)
}

// JoinBill calls tabsplit.v1.BillService.JoinBill.
func (c *billServiceClient) JoinBill(ctx context.Context, req *connect.Request[api.JoinBillRequest]) (*connect.Response[api.JoinBillResponse], error) {
	return c.joinBill.CallUnary(ctx, req)
}

// GetClaims calls tabsplit.v1.BillService.GetClaims.
func (c *billServiceClient) GetClaims(ctx context.Context, req *connect.Request[api.GetClaimsRequest]) (*connect.Response[api.GetClaimsResponse], error) {
	return c.getClaims.CallUnary(ctx, req)
}

// SetClaims calls tabsplit.v1.BillService.SetClaims.
func (c *billServiceClient) SetClaims(ctx context.Context, req *connect.Request[api.SetClaimsRequest]) (*connect.Response[api.SetClaimsResponse], error) {
	return c.setClaims.CallUnary(ctx, req)
}

// SubmitClaims calls tabsplit.v1.BillService.SubmitClaims.
func (c *billServiceClient) SubmitClaims(ctx context.Context, req *connect.Request[api.SubmitClaimsRequest]) (*connect.Response[api.SubmitClaimsResponse], error) {
	return c.submitClaims.CallUnary(ctx, req)
}

// StartPhoneVerification calls tabsplit.v1.BillService.StartPhoneVerification.
func (c *billServiceClient) StartPhoneVerification(ctx context.Context, req *connect.Request[api.StartPhoneVerificationRequest]) (*connect.Response[api.StartPhoneVerificationResponse], error) {
	return c.startPhoneVerification.CallUnary(ctx, req)
}

// CheckPhoneVerification calls tabsplit.v1.BillService.CheckPhoneVerification.
func (c *billServiceClient) CheckPhoneVerification(ctx context.Context, req *connect.Request[api.CheckPhoneVerificationRequest]) (*connect.Response[api.CheckPhoneVerificationResponse], error) {
	return c.checkPhoneVerification.CallUnary(ctx, req)
}

// GetDashboard calls tabsplit.v1.BillService.GetDashboard.
func (c *billServiceClient) GetDashboard(ctx context.Context, req *connect.Request[api.GetDashboardRequest]) (*connect.Response[api.GetDashboardResponse], error) {
	return c.getDashboard.CallUnary(ctx, req)
}

// CompleteBill calls tabsplit.v1.BillService.CompleteBill.
func (c *billServiceClient) CompleteBill(ctx context.Context, req *connect.Request[api.CompleteBillRequest]) (*connect.Response[api.CompleteBillResponse], error) {
	return c.completeBill.CallUnary(ctx, req)
}

// GetFinalResults calls tabsplit.v1.BillService.GetFinalResults.
func (c *billServiceClient) GetFinalResults(ctx context.Context, req *connect.Request[api.GetFinalResultsRequest]) (*connect.Response[api.GetFinalResultsResponse], error) {
	return c.getFinalResults.CallUnary(ctx, req)
}

// BillServiceHandler is an implementation of the tabsplit.v1.BillService service.
type BillServiceHandler interface {
	// CreateBill creates a bill from an optional receipt image.
	CreateBill(context.Context, *connect.Request[api.CreateBillRequest]) (*connect.Response[api.CreateBillResponse], error)
	// GetBill returns the creator's view of a bill.
	GetBill(context.Context, *connect.Request[api.GetBillRequest]) (*connect.Response[api.GetBillResponse], error)
	// ParseBill runs the stored receipt image through the parsing service.
	ParseBill(context.Context, *connect.Request[api.ParseBillRequest]) (*connect.Response[api.ParseBillResponse], error)
	// IngestItems replaces a bill's items and totals.
	IngestItems(context.Context, *connect.Request[api.IngestItemsRequest]) (*connect.Response[api.IngestItemsResponse], error)
	// AddItem appends an item while editing.
	AddItem(context.Context, *connect.Request[api.AddItemRequest]) (*connect.Response[api.AddItemResponse], error)
	// UpdateItem renames or reprices an item while editing.
	UpdateItem(context.Context, *connect.Request[api.UpdateItemRequest]) (*connect.Response[api.UpdateItemResponse], error)
	// DeleteItem removes an item and its claims.
	DeleteItem(context.Context, *connect.Request[api.DeleteItemRequest]) (*connect.Response[api.DeleteItemResponse], error)
	// UpdateTotals sets subtotal, tax and tip while editing.
	UpdateTotals(context.Context, *connect.Request[api.UpdateTotalsRequest]) (*connect.Response[api.UpdateTotalsResponse], error)
	// ConfirmBill activates a bill and enrolls the creator as a participant.
	ConfirmBill(context.Context, *connect.Request[api.ConfirmBillRequest]) (*connect.Response[api.ConfirmBillResponse], error)
	// GetSharedBill returns the shared view of an active or complete bill.
	GetSharedBill(context.Context, *connect.Request[api.GetSharedBillRequest]) (*connect.Response[api.GetSharedBillResponse], error)
	// JoinBill adds a participant to an active bill.
	JoinBill(context.Context, *connect.Request[api.JoinBillRequest]) (*connect.Response[api.JoinBillResponse], error)
	// GetClaims returns the caller's claims and provisional total.
	GetClaims(context.Context, *connect.Request[api.GetClaimsRequest]) (*connect.Response[api.GetClaimsResponse], error)
	// SetClaims replaces the caller's claims.
	SetClaims(context.Context, *connect.Request[api.SetClaimsRequest]) (*connect.Response[api.SetClaimsResponse], error)
	// SubmitClaims locks in the caller's claims.
	SubmitClaims(context.Context, *connect.Request[api.SubmitClaimsRequest]) (*connect.Response[api.SubmitClaimsResponse], error)
	// StartPhoneVerification sends a verification code to a phone number.
	StartPhoneVerification(context.Context, *connect.Request[api.StartPhoneVerificationRequest]) (*connect.Response[api.StartPhoneVerificationResponse], error)
	// CheckPhoneVerification checks a verification code.
	CheckPhoneVerification(context.Context, *connect.Request[api.CheckPhoneVerificationRequest]) (*connect.Response[api.CheckPhoneVerificationResponse], error)
	// GetDashboard returns the creator's roster and reconciliation.
	GetDashboard(context.Context, *connect.Request[api.GetDashboardRequest]) (*connect.Response[api.GetDashboardResponse], error)
	// CompleteBill records payment handles and finalizes the bill.
	CompleteBill(context.Context, *connect.Request[api.CompleteBillRequest]) (*connect.Response[api.CompleteBillResponse], error)
	// GetFinalResults returns the final per-participant totals.
	GetFinalResults(context.Context, *connect.Request[api.GetFinalResultsRequest]) (*connect.Response[api.GetFinalResultsResponse], error)
}

// NewBillServiceHandler builds an HTTP handler from the service implementation. It returns the
// path on which to mount the handler and the handler itself. Messages are
// decoded with the JSON codec in addition to the defaults.
func NewBillServiceHandler(svc BillServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(api.Codec{})}, opts...)
	billServiceCreateBillHandler := connect.NewUnaryHandler(
		BillServiceCreateBillProcedure,
		svc.CreateBill,
		opts...,
	)
	billServiceGetBillHandler := connect.NewUnaryHandler(
		BillServiceGetBillProcedure,
		svc.GetBill,
		opts...,
	)
	billServiceParseBillHandler := connect.NewUnaryHandler(
		BillServiceParseBillProcedure,
		svc.ParseBill,
		opts...,
	)
	billServiceIngestItemsHandler := connect.NewUnaryHandler(
		BillServiceIngestItemsProcedure,
		svc.IngestItems,
		opts...,
	)
	billServiceAddItemHandler := connect.NewUnaryHandler(
		BillServiceAddItemProcedure,
		svc.AddItem,
		opts...,
	)
	billServiceUpdateItemHandler := connect.NewUnaryHandler(
		BillServiceUpdateItemProcedure,
		svc.UpdateItem,
		opts...,
	)
	billServiceDeleteItemHandler := connect.NewUnaryHandler(
		BillServiceDeleteItemProcedure,
		svc.DeleteItem,
		opts...,
	)
	billServiceUpdateTotalsHandler := connect.NewUnaryHandler(
		BillServiceUpdateTotalsProcedure,
		svc.UpdateTotals,
		opts...,
	)
	billServiceConfirmBillHandler := connect.NewUnaryHandler(
		BillServiceConfirmBillProcedure,
		svc.ConfirmBill,
		opts...,
	)
	billServiceGetSharedBillHandler := connect.NewUnaryHandler(
		BillServiceGetSharedBillProcedure,
		svc.GetSharedBill,
		opts...,
	)
	billServiceJoinBillHandler := connect.NewUnaryHandler(
		BillServiceJoinBillProcedure,
		svc.JoinBill,
		opts...,
	)
	billServiceGetClaimsHandler := connect.NewUnaryHandler(
		BillServiceGetClaimsProcedure,
		svc.GetClaims,
		opts...,
	)
	billServiceSetClaimsHandler := connect.NewUnaryHandler(
		BillServiceSetClaimsProcedure,
		svc.SetClaims,
		opts...,
	)
	billServiceSubmitClaimsHandler := connect.NewUnaryHandler(
		BillServiceSubmitClaimsProcedure,
		svc.SubmitClaims,
		opts...,
	)
	billServiceStartPhoneVerificationHandler := connect.NewUnaryHandler(
		BillServiceStartPhoneVerificationProcedure,
		svc.StartPhoneVerification,
		opts...,
	)
	billServiceCheckPhoneVerificationHandler := connect.NewUnaryHandler(
		BillServiceCheckPhoneVerificationProcedure,
		svc.CheckPhoneVerification,
		opts...,
	)
	billServiceGetDashboardHandler := connect.NewUnaryHandler(
		BillServiceGetDashboardProcedure,
		svc.GetDashboard,
		opts...,
	)
	billServiceCompleteBillHandler := connect.NewUnaryHandler(
		BillServiceCompleteBillProcedure,
		svc.CompleteBill,
		opts...,
	)
	billServiceGetFinalResultsHandler := connect.NewUnaryHandler(
		BillServiceGetFinalResultsProcedure,
		svc.GetFinalResults,
		opts...,
	)
	return "/tabsplit.v1.BillService/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case BillServiceCreateBillProcedure:
			billServiceCreateBillHandler.ServeHTTP(w, r)
		case BillServiceGetBillProcedure:
			billServiceGetBillHandler.ServeHTTP(w, r)
		case BillServiceParseBillProcedure:
			billServiceParseBillHandler.ServeHTTP(w, r)
		case BillServiceIngestItemsProcedure:
			billServiceIngestItemsHandler.ServeHTTP(w, r)
		case BillServiceAddItemProcedure:
			billServiceAddItemHandler.ServeHTTP(w, r)
		case BillServiceUpdateItemProcedure:
			billServiceUpdateItemHandler.ServeHTTP(w, r)
		case BillServiceDeleteItemProcedure:
			billServiceDeleteItemHandler.ServeHTTP(w, r)
		case BillServiceUpdateTotalsProcedure:
			billServiceUpdateTotalsHandler.ServeHTTP(w, r)
		case BillServiceConfirmBillProcedure:
			billServiceConfirmBillHandler.ServeHTTP(w, r)
		case BillServiceGetSharedBillProcedure:
			billServiceGetSharedBillHandler.ServeHTTP(w, r)
		case BillServiceJoinBillProcedure:
			billServiceJoinBillHandler.ServeHTTP(w, r)
		case BillServiceGetClaimsProcedure:
			billServiceGetClaimsHandler.ServeHTTP(w, r)
		case BillServiceSetClaimsProcedure:
			billServiceSetClaimsHandler.ServeHTTP(w, r)
		case BillServiceSubmitClaimsProcedure:
			billServiceSubmitClaimsHandler.ServeHTTP(w, r)
		case BillServiceStartPhoneVerificationProcedure:
			billServiceStartPhoneVerificationHandler.ServeHTTP(w, r)
		case BillServiceCheckPhoneVerificationProcedure:
			billServiceCheckPhoneVerificationHandler.ServeHTTP(w, r)
		case BillServiceGetDashboardProcedure:
			billServiceGetDashboardHandler.ServeHTTP(w, r)
		case BillServiceCompleteBillProcedure:
			billServiceCompleteBillHandler.ServeHTTP(w, r)
		case BillServiceGetFinalResultsProcedure:
			billServiceGetFinalResultsHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedBillServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedBillServiceHandler struct{}

func (UnimplementedBillServiceHandler) CreateBill(context.Context, *connect.Request[api.CreateBillRequest]) (*connect.Response[api.CreateBillResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tabsplit.v1.BillService.CreateBill is not implemented"))
}

func (UnimplementedBillServiceHandler) GetBill(context.Context, *connect.Request[api.GetBillRequest]) (*connect.Response[api.GetBillResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tabsplit.v1.BillService.GetBill is not implemented"))
}

func (UnimplementedBillServiceHandler) ParseBill(context.Context, *connect.Request[api.ParseBillRequest]) (*connect.Response[api.ParseBillResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tabsplit.v1.BillService.ParseBill is not implemented"))
}

func (UnimplementedBillServiceHandler) IngestItems(context.Context, *connect.Request[api.IngestItemsRequest]) (*connect.Response[api.IngestItemsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tabsplit.v1.BillService.IngestItems is not implemented"))
}

func (UnimplementedBillServiceHandler) AddItem(context.Context, *connect.Request[api.AddItemRequest]) (*connect.Response[api.AddItemResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tabsplit.v1.BillService.AddItem is not implemented"))
}

func (UnimplementedBillServiceHandler) UpdateItem(context.Context, *connect.Request[api.UpdateItemRequest]) (*connect.Response[api.UpdateItemResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tabsplit.v1.BillService.UpdateItem is not implemented"))
}

func (UnimplementedBillServiceHandler) DeleteItem(context.Context, *connect.Request[api.DeleteItemRequest]) (*connect.Response[api.DeleteItemResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tabsplit.v1.BillService.DeleteItem is not implemented"))
}

func (UnimplementedBillServiceHandler) UpdateTotals(context.Context, *connect.Request[api.UpdateTotalsRequest]) (*connect.Response[api.UpdateTotalsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tabsplit.v1.BillService.UpdateTotals is not implemented"))
}

func (UnimplementedBillServiceHandler) ConfirmBill(context.Context, *connect.Request[api.ConfirmBillRequest]) (*connect.Response[api.ConfirmBillResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tabsplit.v1.BillService.ConfirmBill is not implemented"))
}

func (UnimplementedBillServiceHandler) GetSharedBill(context.Context, *connect.Request[api.GetSharedBillRequest]) (*connect.Response[api.GetSharedBillResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tabsplit.v1.BillService.GetSharedBill is not implemented"))
}

func (UnimplementedBillServiceHandler) JoinBill(context.Context, *connect.Request[api.JoinBillRequest]) (*connect.Response[api.JoinBillResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tabsplit.v1.BillService.JoinBill is not implemented"))
}

func (UnimplementedBillServiceHandler) GetClaims(context.Context, *connect.Request[api.GetClaimsRequest]) (*connect.Response[api.GetClaimsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tabsplit.v1.BillService.GetClaims is not implemented"))
}

func (UnimplementedBillServiceHandler) SetClaims(context.Context, *connect.Request[api.SetClaimsRequest]) (*connect.Response[api.SetClaimsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tabsplit.v1.BillService.SetClaims is not implemented"))
}

func (UnimplementedBillServiceHandler) SubmitClaims(context.Context, *connect.Request[api.SubmitClaimsRequest]) (*connect.Response[api.SubmitClaimsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tabsplit.v1.BillService.SubmitClaims is not implemented"))
}

func (UnimplementedBillServiceHandler) StartPhoneVerification(context.Context, *connect.Request[api.StartPhoneVerificationRequest]) (*connect.Response[api.StartPhoneVerificationResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tabsplit.v1.BillService.StartPhoneVerification is not implemented"))
}

func (UnimplementedBillServiceHandler) CheckPhoneVerification(context.Context, *connect.Request[api.CheckPhoneVerificationRequest]) (*connect.Response[api.CheckPhoneVerificationResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tabsplit.v1.BillService.CheckPhoneVerification is not implemented"))
}

func (UnimplementedBillServiceHandler) GetDashboard(context.Context, *connect.Request[api.GetDashboardRequest]) (*connect.Response[api.GetDashboardResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tabsplit.v1.BillService.GetDashboard is not implemented"))
}

func (UnimplementedBillServiceHandler) CompleteBill(context.Context, *connect.Request[api.CompleteBillRequest]) (*connect.Response[api.CompleteBillResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tabsplit.v1.BillService.CompleteBill is not implemented"))
}

func (UnimplementedBillServiceHandler) GetFinalResults(context.Context, *connect.Request[api.GetFinalResultsRequest]) (*connect.Response[api.GetFinalResultsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tabsplit.v1.BillService.GetFinalResults is not implemented"))
}
