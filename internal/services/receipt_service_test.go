package services

import (
	"bytes"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"hostella/internal/domain"
	"hostella/internal/repositories"
)

func newReceiptService(db sqlmockDB) ReceiptService {
	return ReceiptService{
		BookingRepo: repositories.BookingRepository{DB: db.DB},
		PaymentRepo: repositories.PaymentRepository{DB: db.DB},
		ReceiptRepo: repositories.ReceiptRepository{DB: db.DB},
		UserRepo:    repositories.UserRepository{DB: db.DB},
		Charges:     domain.DefaultCharges(),
	}
}

func TestBuildRecomputesWhenNoSnapshot(t *testing.T) {
	db := newMockDB(t)
	defer db.Close()
	db.mock.MatchExpectationsInOrder(false)

	db.mock.ExpectQuery("FROM bookings").WithArgs(int64(5)).
		WillReturnRows(bookingRows().
			AddRow(5, "BK00000005", 7, 1, 3, "Unilodge", "Twin Deluxe", "", "completed", "2954.00", "B12", "2", "2026-02-01", "", ""))
	// no receipt_snapshots table on this deployment
	db.mock.ExpectQuery("information_schema\\.tables").WithArgs("receipt_snapshots").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}))
	db.mock.ExpectQuery("FROM users").WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "phone", "role"}).
			AddRow(7, "Chanda Mwila", "chanda@example.com", "0977000111", "student"))
	db.mock.ExpectQuery("FROM payments").WithArgs(int64(5)).
		WillReturnRows(paymentRows().
			AddRow(9, 5, "2954.00", "PAYSTACK", "CONFIRMED", "", "PAY-BK00000005-1", "0977000111", ""))

	svc := newReceiptService(db)
	data, err := svc.Build(7, 5)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	b := data.Breakdown
	assert.Equal(t, 2156.00, domain.Round2(b.BaseAmount))
	assert.Equal(t, 323.40, domain.Round2(b.VAT))
	assert.Equal(t, 21.56, domain.Round2(b.TourismLevy))
	assert.Equal(t, 43.12, domain.Round2(b.ServiceFee))
	assert.Equal(t, 400.00, b.TotalFixedCharges)
	assert.Equal(t, 2954.00, domain.Round2(b.BaseAmount+b.TotalTaxesAndLevies+b.TotalFixedCharges))

	assert.Equal(t, "Chanda Mwila", data.Info.CustomerName)
	assert.Equal(t, "Unilodge, Twin Deluxe", data.Info.PropertyName)
	assert.Equal(t, "Mobile Money (Paystack)", data.Info.PaymentMethod)
	assert.Equal(t, "PAY-BK00000005-1", data.Info.PaymentReference)
	assert.Regexp(t, `^RCP-BK00000005-\d{4}$`, data.Info.ReceiptNumber)
}

func TestBuildPrefersSnapshot(t *testing.T) {
	db := newMockDB(t)
	defer db.Close()
	db.mock.MatchExpectationsInOrder(false)

	db.mock.ExpectQuery("FROM bookings").WithArgs(int64(5)).
		WillReturnRows(bookingRows().
			AddRow(5, "BK00000005", 7, 1, 3, "Unilodge", "Twin", "", "completed", "2954.00", "", "", "", "", ""))
	db.mock.ExpectQuery("information_schema\\.tables").WithArgs("receipt_snapshots").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("receipt_snapshots"))
	// snapshot was taken under an older fee schedule
	db.mock.ExpectQuery("FROM receipt_snapshots").WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "booking_id", "receipt_number", "grand_total", "base_amount",
			"vat", "tourism_levy", "service_fee", "maintenance_fee", "generator_fee", "water_bill", "created_at",
		}).AddRow(1, 5, "RCP-BK00000005-0001", 2954.00, 2203.39, 330.51, 22.03, 44.07, 150.0, 150.0, 54.0, ""))
	db.mock.ExpectQuery("FROM users").WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "phone", "role"}).
			AddRow(7, "Chanda Mwila", "chanda@example.com", "", "student"))
	db.mock.ExpectQuery("FROM payments").WithArgs(int64(5)).
		WillReturnRows(paymentRows())

	svc := newReceiptService(db)
	data, err := svc.Build(7, 5)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	assert.Equal(t, "RCP-BK00000005-0001", data.Info.ReceiptNumber)
	assert.Equal(t, 2203.39, data.Breakdown.BaseAmount)
	assert.Equal(t, 354.00, domain.Round2(data.Breakdown.TotalFixedCharges))
}

func TestPDFRendersDocument(t *testing.T) {
	db := newMockDB(t)
	defer db.Close()

	breakdown, err := domain.ComputeReceipt(2954.00, domain.DefaultCharges())
	if err != nil {
		t.Fatalf("ComputeReceipt: %v", err)
	}
	svc := newReceiptService(db)
	data := ReceiptData{Breakdown: breakdown}
	data.Booking.BookingCode = "BK00000005"
	data.Info.ReceiptNumber = "RCP-BK00000005-0001"
	data.Info.CustomerName = "Chanda Mwila"

	raw, filename, err := svc.PDF(data)
	if err != nil {
		t.Fatalf("PDF: %v", err)
	}
	if len(raw) == 0 || !bytes.HasPrefix(raw, []byte("%PDF")) {
		t.Fatalf("output does not look like a PDF (%d bytes)", len(raw))
	}
	if filename != "RECEIPT_BK00000005.pdf" {
		t.Fatalf("filename = %q", filename)
	}
}
