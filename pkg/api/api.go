// Package api defines the request and response messages of the
// tabsplit.v1.BillService RPC service.
//
// Monetary amounts are decimal strings. Amounts in responses are rounded
// to cents ("11.32"); an empty string means the amount is not set.
package api

// Bill status values.
const (
	StatusEditing  = "editing"
	StatusActive   = "active"
	StatusComplete = "complete"
)

// Participant status values.
const (
	ParticipantSelecting = "selecting"
	ParticipantDone      = "done"
)

// Item is a bill line item.
type Item struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Position int    `json:"position"`
	// ClaimedBy lists the names of claimants who have one, in join order.
	// Set on shared views only.
	ClaimedBy     []string `json:"claimedBy,omitempty"`
	ClaimantCount int      `json:"claimantCount"`
}

// ItemInput is a new item.
type ItemInput struct {
	Name  string `json:"name"`
	Price string `json:"price"`
}

// Bill is the creator's view of a bill.
type Bill struct {
	ID       string  `json:"id"`
	Status   string  `json:"status"`
	Venue    string  `json:"venue,omitempty"`
	Items    []*Item `json:"items"`
	Subtotal string  `json:"subtotal"`
	Tax      string  `json:"tax"`
	Tip      string  `json:"tip"`
	HasImage bool    `json:"hasImage"`
	// ShareToken is shown to the creator so the share link can be built.
	ShareToken string `json:"shareToken,omitempty"`
	CreatedAt  int64  `json:"createdAt"`
}

// Participant is one entry of a bill's roster.
type Participant struct {
	ID        string `json:"id"`
	Name      string `json:"name,omitempty"`
	Status    string `json:"status"`
	IsCreator bool   `json:"isCreator"`
}

type CreateBillRequest struct {
	// Image is the receipt photo, base64 encoded in JSON.
	Image       []byte `json:"image,omitempty"`
	ContentType string `json:"contentType,omitempty"`
}

type CreateBillResponse struct {
	BillID       string `json:"billId"`
	CreatorToken string `json:"creatorToken"`
	ShareToken   string `json:"shareToken"`
	Status       string `json:"status"`
}

type GetBillRequest struct{}

type GetBillResponse struct {
	Bill *Bill `json:"bill"`
}

// ParseBillRequest asks the server to run the stored receipt image through
// the parsing service and ingest the result.
type ParseBillRequest struct{}

type ParseBillResponse struct {
	Bill *Bill `json:"bill"`
}

// IngestItemsRequest replaces the bill's items and totals. An empty
// subtotal defaults to the sum of item prices.
type IngestItemsRequest struct {
	Venue    string       `json:"venue,omitempty"`
	Items    []*ItemInput `json:"items"`
	Subtotal string       `json:"subtotal,omitempty"`
	Tax      string       `json:"tax,omitempty"`
	Tip      string       `json:"tip,omitempty"`
}

type IngestItemsResponse struct {
	Bill *Bill `json:"bill"`
}

type AddItemRequest struct {
	Name  string `json:"name"`
	Price string `json:"price"`
}

type AddItemResponse struct {
	Item *Item `json:"item"`
	Bill *Bill `json:"bill"`
}

// UpdateItemRequest renames or reprices an item. Empty fields are left unchanged.
type UpdateItemRequest struct {
	ItemID string `json:"itemId"`
	Name   string `json:"name,omitempty"`
	Price  string `json:"price,omitempty"`
}

type UpdateItemResponse struct {
	Bill *Bill `json:"bill"`
}

type DeleteItemRequest struct {
	ItemID string `json:"itemId"`
}

type DeleteItemResponse struct {
	Bill *Bill `json:"bill"`
}

// UpdateTotalsRequest sets subtotal, tax and tip. A nil field is left
// unchanged; an empty string clears it.
type UpdateTotalsRequest struct {
	Subtotal *string `json:"subtotal,omitempty"`
	Tax      *string `json:"tax,omitempty"`
	Tip      *string `json:"tip,omitempty"`
}

type UpdateTotalsResponse struct {
	Bill *Bill `json:"bill"`
}

type ConfirmBillRequest struct{}

// ConfirmBillResponse carries the creator's own participant token, used to
// claim items like any other participant.
type ConfirmBillResponse struct {
	Bill             *Bill  `json:"bill"`
	ParticipantID    string `json:"participantId"`
	ParticipantToken string `json:"participantToken"`
}

type GetSharedBillRequest struct{}

type GetSharedBillResponse struct {
	BillID       string         `json:"billId"`
	Status       string         `json:"status"`
	Venue        string         `json:"venue,omitempty"`
	Items        []*Item        `json:"items"`
	Subtotal     string         `json:"subtotal"`
	Tax          string         `json:"tax"`
	Tip          string         `json:"tip"`
	Participants []*Participant `json:"participants"`
}

type JoinBillRequest struct{}

type JoinBillResponse struct {
	BillID           string `json:"billId"`
	ParticipantID    string `json:"participantId"`
	ParticipantToken string `json:"participantToken"`
}

type GetClaimsRequest struct{}

// Claims is a participant's own claim state. ProvisionalTotal counts every
// current claimant of each item and is not final.
type Claims struct {
	BillID           string   `json:"billId"`
	BillStatus       string   `json:"billStatus"`
	ParticipantID    string   `json:"participantId"`
	Name             string   `json:"name,omitempty"`
	Status           string   `json:"status"`
	IsCreator        bool     `json:"isCreator"`
	Phone            string   `json:"phone,omitempty"`
	PhoneVerified    bool     `json:"phoneVerified"`
	ItemIDs          []string `json:"itemIds"`
	ProvisionalTotal string   `json:"provisionalTotal"`
}

type GetClaimsResponse struct {
	Claims *Claims `json:"claims"`
}

type SetClaimsRequest struct {
	ItemIDs []string `json:"itemIds"`
}

type SetClaimsResponse struct {
	Claims *Claims `json:"claims"`
}

type SubmitClaimsRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

type SubmitClaimsResponse struct {
	Claims *Claims `json:"claims"`
	// VerificationStarted is set when a verification code was sent to Phone.
	VerificationStarted bool `json:"verificationStarted"`
	// Challenge must be echoed back to CheckPhoneVerification when set.
	Challenge string `json:"challenge,omitempty"`
}

type StartPhoneVerificationRequest struct {
	Phone string `json:"phone"`
}

type StartPhoneVerificationResponse struct {
	Challenge string `json:"challenge,omitempty"`
}

type CheckPhoneVerificationRequest struct {
	Code      string `json:"code"`
	Challenge string `json:"challenge,omitempty"`
}

type CheckPhoneVerificationResponse struct {
	Verified bool `json:"verified"`
}

type GetDashboardRequest struct{}

// DashboardParticipant is one roster row on the creator's dashboard.
type DashboardParticipant struct {
	ID            string   `json:"id"`
	Name          string   `json:"name,omitempty"`
	Status        string   `json:"status"`
	IsCreator     bool     `json:"isCreator"`
	PhoneVerified bool     `json:"phoneVerified"`
	ItemNames     []string `json:"itemNames"`
	ItemsTotal    string   `json:"itemsTotal"`
}

// Reconciliation compares the bill subtotal to what submitted participants
// have claimed. Warning is set when they differ by more than a cent.
type Reconciliation struct {
	Subtotal   string `json:"subtotal"`
	Claimed    string `json:"claimed"`
	Difference string `json:"difference"`
	Warning    bool   `json:"warning"`
}

type GetDashboardResponse struct {
	Bill           *Bill                   `json:"bill"`
	Participants   []*DashboardParticipant `json:"participants"`
	Reconciliation *Reconciliation         `json:"reconciliation"`
	DoneCount      int                     `json:"doneCount"`
	CanComplete    bool                    `json:"canComplete"`
}

type PaymentHandles struct {
	Venmo   string `json:"venmo,omitempty"`
	Zelle   string `json:"zelle,omitempty"`
	CashApp string `json:"cashapp,omitempty"`
}

type CompleteBillRequest struct {
	Payment *PaymentHandles `json:"payment"`
}

type FinalSplit struct {
	ParticipantID string `json:"participantId"`
	Name          string `json:"name"`
	ItemsTotal    string `json:"itemsTotal"`
	TaxShare      string `json:"taxShare"`
	TipShare      string `json:"tipShare"`
	FinalTotal    string `json:"finalTotal"`
}

type FinalResults struct {
	BillID         string          `json:"billId"`
	Venue          string          `json:"venue,omitempty"`
	Subtotal       string          `json:"subtotal"`
	Tax            string          `json:"tax"`
	Tip            string          `json:"tip"`
	Payment        *PaymentHandles `json:"payment"`
	Splits         []*FinalSplit   `json:"splits"`
	Reconciliation *Reconciliation `json:"reconciliation"`
}

type CompleteBillResponse struct {
	Results *FinalResults `json:"results"`
}

// GetFinalResultsRequest is authorized by either the creator or the share token.
type GetFinalResultsRequest struct{}

type GetFinalResultsResponse struct {
	Results *FinalResults `json:"results"`
}
