package domain

import "strings"

// PaymentStatus buckets a payment record into one of five canonical states
// used for display ordering and action gating.
type PaymentStatus string

const (
	PaymentPending              PaymentStatus = "PENDING"
	PaymentInitiated            PaymentStatus = "INITIATED"
	PaymentAwaitingVerification PaymentStatus = "AWAITING_VERIFICATION"
	PaymentConfirmed            PaymentStatus = "CONFIRMED"
	PaymentFailed               PaymentStatus = "FAILED"
)

// PaymentProvider identifies the channel a payment was initiated through.
type PaymentProvider string

const (
	ProviderBankTransfer PaymentProvider = "BANK_TRANSFER"
	ProviderPaystack     PaymentProvider = "PAYSTACK"
)

// Label renders the human name shown on receipts.
func (p PaymentProvider) Label() string {
	switch NormalizeProvider(string(p)) {
	case ProviderBankTransfer:
		return "Bank Transfer"
	case ProviderPaystack:
		return "Mobile Money (Paystack)"
	}
	return string(p)
}

// NormalizeProvider is case/separator insensitive like the status parsers.
func NormalizeProvider(raw string) PaymentProvider {
	switch canonicalToken(raw) {
	case "BANK_TRANSFER":
		return ProviderBankTransfer
	case "PAYSTACK":
		return ProviderPaystack
	}
	return PaymentProvider(strings.ToUpper(strings.TrimSpace(raw)))
}

// NormalizePaymentStatus maps a raw server value into a canonical bucket.
// Unknown values default to PENDING so an odd record still demands
// attention instead of silently disappearing.
func NormalizePaymentStatus(raw string) PaymentStatus {
	switch canonicalToken(raw) {
	case "PENDING":
		return PaymentPending
	case "INITIATED":
		return PaymentInitiated
	case "AWAITING_VERIFICATION":
		return PaymentAwaitingVerification
	case "CONFIRMED":
		return PaymentConfirmed
	case "FAILED":
		return PaymentFailed
	}
	return PaymentPending
}

// DisplayPaymentStatus applies the one server inconsistency the client must
// correct: AWAITING_VERIFICATION without an uploaded receipt means the
// precondition was never met, so the payment is really still INITIATED.
// This runs once at the data-ingestion boundary, not ad hoc per call site.
func DisplayPaymentStatus(raw string, receiptURL string) PaymentStatus {
	status := NormalizePaymentStatus(raw)
	if status == PaymentAwaitingVerification && strings.TrimSpace(receiptURL) == "" {
		return PaymentInitiated
	}
	return status
}

func canonicalToken(raw string) string {
	s := strings.ToUpper(strings.TrimSpace(raw))
	s = strings.NewReplacer(" ", "_", "-", "_").Replace(s)
	for strings.Contains(s, "__") {
		s = strings.ReplaceAll(s, "__", "_")
	}
	return s
}
