// Package x402 is the Go SDK for the SolPay x402 payment API.
// It creates and confirms payment intents, fetches their state, and verifies
// settlement receipts without trusting the server's reported hash.
//
// # Payments
//
// Build a [Client] with [New] and your merchant configuration, then call
// [Client.Pay] to create a payment intent, [Client.GetPaymentIntent] to poll
// its state, and [Client.ConfirmPayment] to finalize it with an on-chain
// transaction signature. Options such as [WithAPIKey] and [WithSigningKey]
// attach bearer authentication and canonical-JSON request signatures.
//
// # Receipts
//
// [Client.VerifyReceipt] fetches a receipt document and independently
// recomputes its SHA-256 content hash over the canonical JSON form, so a
// tampered receipt is detected even when its embedded hash looks plausible.
// Verification never returns an error: it reports a [ReceiptVerification]
// with diagnostics so a calling workflow can log and move on.
//
// # Webhooks
//
// Merchant servers receiving payment lifecycle notifications can use
// [ParseWebhook] to authenticate the delivery against the shared webhook
// secret before acting on it.
package x402
