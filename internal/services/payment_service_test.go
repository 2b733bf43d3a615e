package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"hostella/internal/domain"
	"hostella/internal/domain/models"
	"hostella/internal/repositories"
)

func newPaymentService(db sqlmockDB) PaymentService {
	return PaymentService{
		PaymentRepo: repositories.PaymentRepository{DB: db.DB},
		BookingRepo: repositories.BookingRepository{DB: db.DB},
		Notifier:    NotificationService{Repo: repositories.NotificationRepository{DB: db.DB}},
		Bank: models.BankDetails{
			BankName:      "Zed Commercial Bank",
			AccountName:   "Hostella Ltd",
			AccountNumber: "0102003004005",
		},
	}
}

func TestInitiateRejectsUnknownProvider(t *testing.T) {
	db := newMockDB(t)
	defer db.Close()

	svc := newPaymentService(db)
	_, _, err := svc.Initiate(7, models.InitiatePaymentInput{BookingID: 5, Provider: "CASH"})
	if !domain.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestInitiateReturnsExistingActivePayment(t *testing.T) {
	db := newMockDB(t)
	defer db.Close()

	db.mock.ExpectQuery("FROM bookings").WithArgs(int64(5)).
		WillReturnRows(bookingRows().
			AddRow(5, "BK00000005", 7, 1, 3, "Unilodge", "Twin", "", "pending_payment", "2954.00", "", "", "", "", ""))
	db.mock.ExpectQuery("FROM payments").WithArgs(int64(5)).
		WillReturnRows(paymentRows().
			AddRow(9, 5, "2954.00", "BANK_TRANSFER", "INITIATED", "", "PAY-BK00000005-1", "", ""))

	svc := newPaymentService(db)
	p, bank, err := svc.Initiate(7, models.InitiatePaymentInput{BookingID: 5, Provider: "BANK_TRANSFER"})
	if err != nil {
		t.Fatalf("Initiate: %v", err)
	}
	if p.ID != 9 {
		t.Fatalf("expected existing payment reused, got %+v", p)
	}
	if bank == nil || bank.Reference != "PAY-BK00000005-1" {
		t.Fatalf("bank details missing or wrong reference: %+v", bank)
	}
	if err := db.mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected extra queries: %v", err)
	}
}

func TestInitiateCreatesPaymentWhenNoneActive(t *testing.T) {
	db := newMockDB(t)
	defer db.Close()

	db.mock.ExpectQuery("FROM bookings").WithArgs(int64(5)).
		WillReturnRows(bookingRows().
			AddRow(5, "BK00000005", 7, 1, 3, "Unilodge", "Twin", "", "PENDING_PAYMENT", "2954.00", "", "", "", "", ""))
	db.mock.ExpectQuery("FROM payments").WithArgs(int64(5)).
		WillReturnRows(paymentRows().
			AddRow(8, 5, "2954.00", "PAYSTACK", "FAILED", "", "PAY-BK00000005-0", "", ""))
	db.mock.ExpectExec("INSERT INTO payments").
		WillReturnResult(sqlmock.NewResult(10, 1))

	svc := newPaymentService(db)
	p, bank, err := svc.Initiate(7, models.InitiatePaymentInput{BookingID: 5, Provider: "paystack", PayerPhone: "0977000111"})
	if err != nil {
		t.Fatalf("Initiate: %v", err)
	}
	if p.ID != 10 {
		t.Fatalf("expected new payment id 10, got %+v", p)
	}
	if p.Status != string(domain.PaymentInitiated) {
		t.Fatalf("status = %q", p.Status)
	}
	if p.Amount != "2954.00" {
		t.Fatalf("amount should copy booking price, got %q", p.Amount)
	}
	if bank != nil {
		t.Fatalf("mobile money must not include bank details, got %+v", bank)
	}
}

func TestInitiateRejectedOutsidePendingPayment(t *testing.T) {
	db := newMockDB(t)
	defer db.Close()

	db.mock.ExpectQuery("FROM bookings").WithArgs(int64(5)).
		WillReturnRows(bookingRows().
			AddRow(5, "BK00000005", 7, 1, 3, "Unilodge", "Twin", "", "approved", "2954.00", "", "", "", "", ""))

	svc := newPaymentService(db)
	_, _, err := svc.Initiate(7, models.InitiatePaymentInput{BookingID: 5, Provider: "BANK_TRANSFER"})
	if !domain.IsConflict(err) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
}

func TestListForBookingNoPaymentIsNotFound(t *testing.T) {
	db := newMockDB(t)
	defer db.Close()

	db.mock.ExpectQuery("FROM bookings").WithArgs(int64(5)).
		WillReturnRows(bookingRows().
			AddRow(5, "BK00000005", 7, 1, 3, "Unilodge", "Twin", "", "pending_payment", "2954.00", "", "", "", "", ""))
	db.mock.ExpectQuery("FROM payments").WithArgs(int64(5)).
		WillReturnRows(paymentRows())

	svc := newPaymentService(db)
	_, err := svc.ListForBooking(7, 5)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected NotFoundError so the API answers 404, got %v", err)
	}
}

func TestUploadReceiptRejectedOnConfirmedPayment(t *testing.T) {
	db := newMockDB(t)
	defer db.Close()

	db.mock.ExpectQuery("FROM payments").WithArgs(int64(9)).
		WillReturnRows(paymentRows().
			AddRow(9, 5, "2954.00", "BANK_TRANSFER", "CONFIRMED", "/uploads/p9.jpg", "PAY-1", "", ""))
	db.mock.ExpectQuery("FROM bookings").WithArgs(int64(5)).
		WillReturnRows(bookingRows().
			AddRow(5, "BK00000005", 7, 1, 3, "Unilodge", "Twin", "", "pending_approval", "2954.00", "", "", "", "", ""))

	svc := newPaymentService(db)
	_, err := svc.UploadReceipt(7, 9, "/uploads/p9-new.jpg")
	if !domain.IsConflict(err) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
}
