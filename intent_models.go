package x402

import (
	"encoding/json"
	"time"

	"github.com/oapi-codegen/runtime"
)

// IntentStatus reports where a payment intent is in its lifecycle.
type IntentStatus string

// Common lifecycle states. The API may introduce further states; treat
// unknown values as in-flight.
const (
	IntentStatusRequiresPayment IntentStatus = "requires_payment"
	IntentStatusPending         IntentStatus = "pending"
	IntentStatusConfirmed       IntentStatus = "confirmed"
	IntentStatusSettled         IntentStatus = "settled"
	IntentStatusFailed          IntentStatus = "failed"
	IntentStatusExpired         IntentStatus = "expired"
)

// SettlementType discriminates Settlement payload variants.
type SettlementType string

// Defines values for SettlementType.
const (
	SettlementTypeOnChain SettlementType = "on_chain"
	SettlementTypePending SettlementType = "pending"
)

// PaymentIntent mirrors the server's payment intent document.
type PaymentIntent struct {
	ID               string         `json:"id"`
	Status           IntentStatus   `json:"status"`
	Asset            string         `json:"asset,omitempty"`
	PaymentURL       *string        `json:"payment_url,omitempty"`
	AmountRequested  *float64       `json:"amount_requested,omitempty"`
	AmountRequired   *float64       `json:"amount_required,omitempty"`
	FeesTotal        *float64       `json:"fees_total,omitempty"`
	MerchantReceives *float64       `json:"merchant_receives,omitempty"`
	CustomerEmail    *string        `json:"customer_email,omitempty"`
	Metadata         map[string]any `json:"metadata,omitempty"`
	Receipt          *IntentReceipt `json:"receipt,omitempty"`
	Settlement       *Settlement    `json:"settlement,omitempty"`
	X402Context      *X402Context   `json:"x402_context,omitempty"`
	CreatedAt        *time.Time     `json:"created_at,omitempty"`
}

// IntentReceipt is the receipt reference embedded in an intent document.
type IntentReceipt struct {
	URL                  string `json:"url"`
	SHA256Hash           string `json:"sha256_hash"`
	Memo                 string `json:"memo"`
	TransactionSignature string `json:"transaction_signature"`
}

// X402Context carries the protocol context forwarded to the facilitator.
type X402Context struct {
	FacilitatorID  string  `json:"facilitator_id"`
	FacilitatorURL *string `json:"facilitator_url,omitempty"`
	Network        Network `json:"network"`
	Resource       string  `json:"resource"`
}

// PaymentResult is the normalized view returned by [Client.Pay] and
// [Client.ConfirmPayment].
type PaymentResult struct {
	IntentID   string          `json:"intent_id"`
	PaymentURL string          `json:"payment_url"`
	Status     IntentStatus    `json:"status"`
	Amount     AmountBreakdown `json:"amount"`
	Receipt    *Receipt        `json:"receipt,omitempty"`
	Settlement *Settlement     `json:"settlement,omitempty"`
	X402       *X402Context    `json:"x402,omitempty"`
}

// AmountBreakdown splits an intent's value into its fee components.
type AmountBreakdown struct {
	Requested float64 `json:"requested"`
	Total     float64 `json:"total"`
	Fees      float64 `json:"fees"`
	Net       float64 `json:"net"`
}

// Receipt is the normalized receipt reference inside a [PaymentResult].
type Receipt struct {
	URL       string `json:"url"`
	Hash      string `json:"hash"`
	Memo      string `json:"memo"`
	Signature string `json:"signature"`
}

// PayParams configures a payment intent created via [Client.Pay].
type PayParams struct {
	// Amount requested, denominated in Asset.
	Amount float64 `json:"amount" validate:"required,gt=0"`
	// Asset symbol, e.g. "USDC" or "SOL".
	Asset string `json:"asset" validate:"required"`
	// Optional customer email for the hosted checkout page.
	CustomerEmail string `json:"customer_email,omitempty" validate:"omitempty,email"`
	// Arbitrary key/value pairs stored on the intent.
	Metadata map[string]any `json:"metadata,omitempty"`
	// Redirect targets for the hosted checkout page.
	SuccessURL string `json:"success_url,omitempty" validate:"omitempty,url"`
	CancelURL  string `json:"cancel_url,omitempty" validate:"omitempty,url"`
	// Optional idempotency key for safe retries; generated when empty.
	IdempotencyKey string `json:"-"`
}

// createIntentRequest is the wire payload for intent creation.
type createIntentRequest struct {
	Amount         float64        `json:"amount"`
	Asset          string         `json:"asset"`
	MerchantWallet string         `json:"merchant_wallet"`
	CustomerEmail  *string        `json:"customer_email,omitempty"`
	Metadata       map[string]any `json:"metadata"`
	X402Context    X402Context    `json:"x402_context"`
	SuccessURL     *string        `json:"success_url,omitempty"`
	CancelURL      *string        `json:"cancel_url,omitempty"`
}

// confirmIntentRequest is the wire payload for intent confirmation.
type confirmIntentRequest struct {
	TransactionSignature string `json:"transaction_signature"`
}

// Settlement defines model for PaymentIntent.settlement.
type Settlement struct {
	union json.RawMessage
}

// SettlementOnChain describes funds settled on-chain.
type SettlementOnChain struct {
	Type                 SettlementType `json:"type"`
	TransactionSignature string         `json:"transaction_signature"`
	Network              Network        `json:"network"`
	Slot                 *int64         `json:"slot,omitempty"`
	SettledAt            *time.Time     `json:"settled_at,omitempty"`
}

// SettlementPending describes a settlement still awaiting finality.
type SettlementPending struct {
	Type       SettlementType `json:"type"`
	ExpectedBy *time.Time     `json:"expected_by,omitempty"`
}

// AsSettlementOnChain returns the union data inside the Settlement as a SettlementOnChain
func (t Settlement) AsSettlementOnChain() (SettlementOnChain, error) {
	var body SettlementOnChain
	err := json.Unmarshal(t.union, &body)
	return body, err
}

// FromSettlementOnChain overwrites any union data inside the Settlement as the provided SettlementOnChain
func (t *Settlement) FromSettlementOnChain(v SettlementOnChain) error {
	v.Type = SettlementTypeOnChain
	b, err := json.Marshal(v)
	t.union = b
	return err
}

// MergeSettlementOnChain performs a merge with any union data inside the Settlement, using the provided SettlementOnChain
func (t *Settlement) MergeSettlementOnChain(v SettlementOnChain) error {
	v.Type = SettlementTypeOnChain
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}

	merged, err := runtime.JSONMerge(t.union, b)
	t.union = merged
	return err
}

// AsSettlementPending returns the union data inside the Settlement as a SettlementPending
func (t Settlement) AsSettlementPending() (SettlementPending, error) {
	var body SettlementPending
	err := json.Unmarshal(t.union, &body)
	return body, err
}

// FromSettlementPending overwrites any union data inside the Settlement as the provided SettlementPending
func (t *Settlement) FromSettlementPending(v SettlementPending) error {
	v.Type = SettlementTypePending
	b, err := json.Marshal(v)
	t.union = b
	return err
}

// MergeSettlementPending performs a merge with any union data inside the Settlement, using the provided SettlementPending
func (t *Settlement) MergeSettlementPending(v SettlementPending) error {
	v.Type = SettlementTypePending
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}

	merged, err := runtime.JSONMerge(t.union, b)
	t.union = merged
	return err
}

// Discriminator returns the settlement type tag without committing to a variant.
func (t Settlement) Discriminator() (SettlementType, error) {
	var discriminator struct {
		Type SettlementType `json:"type"`
	}
	err := json.Unmarshal(t.union, &discriminator)
	return discriminator.Type, err
}

// MarshalJSON serializes the underlying union for Settlement.
func (t Settlement) MarshalJSON() ([]byte, error) {
	b, err := t.union.MarshalJSON()
	return b, err
}

// UnmarshalJSON loads union data for Settlement.
func (t *Settlement) UnmarshalJSON(b []byte) error {
	err := t.union.UnmarshalJSON(b)
	return err
}
