package models

// ReceiptSnapshot persists the breakdown at payment-confirmation time so a
// later change to the flat charges never rewrites an already-issued
// receipt.
type ReceiptSnapshot struct {
	ID             int64   `json:"id"`
	BookingID      int64   `json:"bookingId"`
	ReceiptNumber  string  `json:"receiptNumber"`
	GrandTotal     float64 `json:"grandTotal"`
	BaseAmount     float64 `json:"baseAmount"`
	VAT            float64 `json:"vat"`
	TourismLevy    float64 `json:"tourismLevy"`
	ServiceFee     float64 `json:"serviceFee"`
	MaintenanceFee float64 `json:"maintenanceFee"`
	GeneratorFee   float64 `json:"generatorFee"`
	WaterBill      float64 `json:"waterBill"`
	CreatedAt      string  `json:"createdAt,omitempty"`
}
