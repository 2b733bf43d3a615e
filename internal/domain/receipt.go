package domain

import (
	"math"
	"time"
)

// Statutory rates applied to the base amount (not the grand total).
const (
	VATRate         = 0.15
	TourismLevyRate = 0.01
	ServiceFeeRate  = 0.02

	statutoryTotalRate = VATRate + TourismLevyRate + ServiceFeeRate // 0.18
)

// ChargeConfig holds the flat charges added on top of rent. Amounts are in
// the booking currency.
type ChargeConfig struct {
	MaintenanceFee float64
	GeneratorFee   float64
	WaterBill      float64
}

// DefaultCharges matches the published fee schedule.
func DefaultCharges() ChargeConfig {
	return ChargeConfig{
		MaintenanceFee: 200,
		GeneratorFee:   150,
		WaterBill:      50,
	}
}

func (c ChargeConfig) total() float64 {
	return c.MaintenanceFee + c.GeneratorFee + c.WaterBill
}

// ReceiptBreakdown decomposes a paid grand total. All fields are unrounded;
// rounding to two decimals happens only at presentation time so the derived
// fields never drift apart.
type ReceiptBreakdown struct {
	GrandTotal          float64 `json:"grandTotal"`
	BaseAmount          float64 `json:"baseAmount"`
	Subtotal            float64 `json:"subtotal"`
	VAT                 float64 `json:"vat"`
	TourismLevy         float64 `json:"tourismLevy"`
	ServiceFee          float64 `json:"serviceFee"`
	TotalTaxesAndLevies float64 `json:"totalTaxesAndLevies"`
	MaintenanceFee      float64 `json:"maintenanceFee"`
	GeneratorFee        float64 `json:"generatorFee"`
	WaterBill           float64 `json:"waterBill"`
	TotalFixedCharges   float64 `json:"totalFixedCharges"`
}

// ReceiptInfo carries the presentation metadata printed alongside the
// breakdown.
type ReceiptInfo struct {
	ReceiptNumber    string    `json:"receiptNumber"`
	DateTime         time.Time `json:"dateTime"`
	CustomerName     string    `json:"customerName"`
	PropertyName     string    `json:"propertyName"`
	PaymentReference string    `json:"paymentReference"`
	PaymentMethod    string    `json:"paymentMethod"`
}

// ComputeReceipt solves backward from the known grand total. The total is
// what the customer actually paid and is never recomputed forward from
// assumed rates: fixed charges come off first, the remainder is
// base * (1 + 0.18), and each statutory charge is derived from that base.
func ComputeReceipt(grandTotal float64, cfg ChargeConfig) (ReceiptBreakdown, error) {
	if math.IsNaN(grandTotal) || math.IsInf(grandTotal, 0) {
		return ReceiptBreakdown{}, InvalidAmountError{Amount: grandTotal, Msg: "not a finite number"}
	}
	if grandTotal <= 0 {
		return ReceiptBreakdown{}, InvalidAmountError{Amount: grandTotal, Msg: "must be positive"}
	}

	fixed := cfg.total()
	remaining := grandTotal - fixed
	if remaining <= 0 {
		return ReceiptBreakdown{}, InvalidAmountError{Amount: grandTotal, Msg: "below fixed charges"}
	}

	base := remaining / (1 + statutoryTotalRate)
	vat := base * VATRate
	levy := base * TourismLevyRate
	fee := base * ServiceFeeRate

	return ReceiptBreakdown{
		GrandTotal:          grandTotal,
		BaseAmount:          base,
		Subtotal:            base,
		VAT:                 vat,
		TourismLevy:         levy,
		ServiceFee:          fee,
		TotalTaxesAndLevies: vat + levy + fee,
		MaintenanceFee:      cfg.MaintenanceFee,
		GeneratorFee:        cfg.GeneratorFee,
		WaterBill:           cfg.WaterBill,
		TotalFixedCharges:   fixed,
	}, nil
}

// Round2 rounds to two decimals for presentation.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
