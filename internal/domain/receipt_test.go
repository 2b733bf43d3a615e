package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeReceiptPartsSumToTotal(t *testing.T) {
	cfg := DefaultCharges()
	for _, total := range []float64{500.01, 1000, 2954, 3333.33, 99999.99, 401} {
		b, err := ComputeReceipt(total, cfg)
		if err != nil {
			t.Fatalf("ComputeReceipt(%v): %v", total, err)
		}
		sum := b.BaseAmount + b.TotalTaxesAndLevies + b.TotalFixedCharges
		assert.InDelta(t, Round2(total), Round2(sum), 0.005, "total %v", total)
	}
}

func TestComputeReceiptChargesDeriveFromSameBase(t *testing.T) {
	b, err := ComputeReceipt(7850.40, DefaultCharges())
	if err != nil {
		t.Fatalf("ComputeReceipt: %v", err)
	}
	assert.Equal(t, Round2(b.BaseAmount*VATRate), Round2(b.VAT))
	assert.Equal(t, Round2(b.BaseAmount*TourismLevyRate), Round2(b.TourismLevy))
	assert.Equal(t, Round2(b.BaseAmount*ServiceFeeRate), Round2(b.ServiceFee))
	assert.Equal(t, b.BaseAmount, b.Subtotal)
}

func TestComputeReceiptKnownBreakdown(t *testing.T) {
	// price 2954.00 with fixed charges 200+150+50 leaves 2554, which is
	// exactly 2156 * 1.18
	b, err := ComputeReceipt(2954.00, DefaultCharges())
	if err != nil {
		t.Fatalf("ComputeReceipt: %v", err)
	}
	assert.Equal(t, 2156.00, Round2(b.BaseAmount))
	assert.Equal(t, 323.40, Round2(b.VAT))
	assert.Equal(t, 21.56, Round2(b.TourismLevy))
	assert.Equal(t, 43.12, Round2(b.ServiceFee))
	assert.Equal(t, 400.00, b.TotalFixedCharges)
	sum := b.BaseAmount + b.TotalTaxesAndLevies + b.TotalFixedCharges
	assert.Equal(t, 2954.00, Round2(sum))
}

func TestComputeReceiptRejectsInvalidAmounts(t *testing.T) {
	cfg := DefaultCharges()
	for _, total := range []float64{0, -1, -2954, math.NaN(), math.Inf(1), math.Inf(-1), 399.99} {
		_, err := ComputeReceipt(total, cfg)
		if err == nil {
			t.Fatalf("ComputeReceipt(%v): expected error", total)
		}
		if !IsInvalidAmount(err) {
			t.Fatalf("ComputeReceipt(%v): expected InvalidAmountError, got %v", total, err)
		}
	}
}

func TestDefaultChargesSchedule(t *testing.T) {
	cfg := DefaultCharges()
	assert.Equal(t, 400.00, cfg.MaintenanceFee+cfg.GeneratorFee+cfg.WaterBill)
}
