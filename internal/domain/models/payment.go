package models

// Payment is one payment attempt tied to a booking. At most one active
// payment per booking is expected; re-initiation returns the existing
// record.
type Payment struct {
	ID         int64  `json:"id"`
	BookingID  int64  `json:"bookingId"`
	Amount     string `json:"amount"`
	Provider   string `json:"provider"`
	Status     string `json:"status"`
	ReceiptURL string `json:"receiptUrl,omitempty"`
	Reference  string `json:"reference"`
	PayerPhone string `json:"payerPhone,omitempty"`
	CreatedAt  string `json:"createdAt,omitempty"`
}

// BankDetails accompanies a bank-transfer initiation so the payer knows
// where to send the money.
type BankDetails struct {
	BankName      string `json:"bankName"`
	AccountName   string `json:"accountName"`
	AccountNumber string `json:"accountNumber"`
	Reference     string `json:"reference"`
}

// InitiatePaymentInput is the payload for POST /payments/initiate.
type InitiatePaymentInput struct {
	BookingID  int64  `json:"bookingId"`
	Provider   string `json:"provider"`
	PayerPhone string `json:"payerPhone,omitempty"`
}
