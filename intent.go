package x402

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const intentsPath = "/api/v1/payment_intents"

// Pay creates a payment intent for the configured merchant wallet and
// returns the normalized result, including the hosted checkout URL and the
// amount breakdown after facilitator fees.
func (c *Client) Pay(ctx context.Context, params PayParams) (*PaymentResult, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	c.logDebug("creating payment intent", "amount", params.Amount, "asset", params.Asset)

	metadata := make(map[string]any, len(params.Metadata)+2)
	for k, v := range params.Metadata {
		metadata[k] = v
	}
	metadata["sdk"] = sdkName
	metadata["sdk_version"] = sdkVersion

	body := createIntentRequest{
		Amount:         params.Amount,
		Asset:          params.Asset,
		MerchantWallet: c.merchantWallet,
		CustomerEmail:  optionalString(params.CustomerEmail),
		Metadata:       metadata,
		X402Context: X402Context{
			FacilitatorID:  c.cfg.facilitatorID,
			FacilitatorURL: optionalString(c.cfg.facilitatorURL),
			Network:        c.network,
			Resource:       c.apiBase + intentsPath,
		},
		SuccessURL: optionalString(params.SuccessURL),
		CancelURL:  optionalString(params.CancelURL),
	}
	req, err := c.newRequest(ctx, http.MethodPost, intentsPath, body, params.IdempotencyKey)
	if err != nil {
		return nil, err
	}
	var intent PaymentIntent
	if err := c.do(req, &intent); err != nil {
		c.logDebug("payment error", "error", err)
		return nil, err
	}
	c.logDebug("payment intent created", "intent_id", intent.ID, "status", intent.Status)
	requested := params.Amount
	return c.normalizeResult(&intent, &requested), nil
}

// GetPaymentIntent fetches the current state of a payment intent.
func (c *Client) GetPaymentIntent(ctx context.Context, intentID string) (*PaymentIntent, error) {
	if strings.TrimSpace(intentID) == "" {
		return nil, errors.New("x402: intent id is required")
	}
	c.logDebug("fetching payment intent", "intent_id", intentID)
	req, err := c.newRequest(ctx, http.MethodGet, intentsPath+"/"+url.PathEscape(intentID), nil, "")
	if err != nil {
		return nil, err
	}
	var intent PaymentIntent
	if err := c.do(req, &intent); err != nil {
		c.logDebug("get payment intent error", "error", err)
		return nil, err
	}
	return &intent, nil
}

// ConfirmPayment submits the on-chain transaction signature that finalizes
// a payment intent and returns the normalized result.
func (c *Client) ConfirmPayment(ctx context.Context, intentID, transactionSignature string) (*PaymentResult, error) {
	if strings.TrimSpace(intentID) == "" {
		return nil, errors.New("x402: intent id is required")
	}
	if strings.TrimSpace(transactionSignature) == "" {
		return nil, errors.New("x402: transaction signature is required")
	}
	c.logDebug("confirming payment", "intent_id", intentID, "signature", transactionSignature)
	path := intentsPath + "/" + url.PathEscape(intentID) + "/confirm"
	req, err := c.newRequest(ctx, http.MethodPost, path, confirmIntentRequest{
		TransactionSignature: transactionSignature,
	}, "")
	if err != nil {
		return nil, err
	}
	var intent PaymentIntent
	if err := c.do(req, &intent); err != nil {
		c.logDebug("confirmation error", "error", err)
		return nil, err
	}
	return c.normalizeResult(&intent, nil), nil
}

// normalizeResult flattens a server intent document into the stable shape
// callers consume. When requested is non-nil (intent creation) missing
// server amounts fall back to the requested value, else to zero.
func (c *Client) normalizeResult(intent *PaymentIntent, requested *float64) *PaymentResult {
	var amount AmountBreakdown
	if requested != nil {
		amount = AmountBreakdown{
			Requested: *requested,
			Total:     floatOr(intent.AmountRequired, *requested),
			Fees:      floatOr(intent.FeesTotal, 0),
			Net:       floatOr(intent.MerchantReceives, *requested),
		}
	} else {
		amount = AmountBreakdown{
			Requested: floatOr(intent.AmountRequested, 0),
			Total:     floatOr(intent.AmountRequired, 0),
			Fees:      floatOr(intent.FeesTotal, 0),
			Net:       floatOr(intent.MerchantReceives, 0),
		}
	}
	result := &PaymentResult{
		IntentID:   intent.ID,
		PaymentURL: stringOr(intent.PaymentURL, fmt.Sprintf("%s/checkout/%s", c.apiBase, intent.ID)),
		Status:     intent.Status,
		Amount:     amount,
		Settlement: intent.Settlement,
		X402:       intent.X402Context,
	}
	if r := intent.Receipt; r != nil {
		result.Receipt = &Receipt{
			URL:       r.URL,
			Hash:      r.SHA256Hash,
			Memo:      r.Memo,
			Signature: r.TransactionSignature,
		}
	}
	return result
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func stringOr(s *string, fallback string) string {
	if s != nil && *s != "" {
		return *s
	}
	return fallback
}

func floatOr(f *float64, fallback float64) float64 {
	if f != nil {
		return *f
	}
	return fallback
}
