package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"hostella/internal/domain"
	"hostella/internal/domain/models"
	"hostella/internal/repositories"
)

func bookingRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "booking_code", "user_id", "hostel_id", "room_id",
		"hostel_name", "room_title", "hostel_image", "status", "price",
		"allocated_room_number", "floor_number", "reporting_date", "cancel_reason", "created_at",
	})
}

func paymentRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "booking_id", "amount", "provider", "status",
		"receipt_url", "reference", "payer_phone", "created_at",
	})
}

func newBookingService(db sqlmockDB) BookingService {
	return BookingService{
		BookingRepo: repositories.BookingRepository{DB: db.DB},
		PaymentRepo: repositories.PaymentRepository{DB: db.DB},
		HostelRepo:  repositories.HostelRepository{DB: db.DB},
		Notifier:    NotificationService{Repo: repositories.NotificationRepository{DB: db.DB}},
	}
}

func TestCancelAllowedFromPendingPayment(t *testing.T) {
	db := newMockDB(t)
	defer db.Close()
	db.mock.MatchExpectationsInOrder(false)

	db.mock.ExpectQuery("FROM bookings").WithArgs(int64(5)).
		WillReturnRows(bookingRows().
			AddRow(5, "BK00000005", 7, 1, 3, "Unilodge", "Twin", "", "pending_payment", "2954.00", "", "", "", "", ""))
	db.mock.ExpectQuery("FROM payments").WithArgs(int64(5)).
		WillReturnRows(paymentRows())
	db.mock.ExpectQuery("information_schema\\.columns").WithArgs("bookings", "cancel_reason").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}).AddRow("cancel_reason"))
	db.mock.ExpectExec("UPDATE bookings SET status=").
		WithArgs("cancelled", "changed plans", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// notification push checks for the optional table and skips when absent
	db.mock.ExpectQuery("information_schema\\.tables").WithArgs("notifications").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}))

	svc := newBookingService(db)
	b, err := svc.Cancel(7, 5, "changed plans")
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if domain.NormalizeStatus(b.Status) != domain.StatusCancelled {
		t.Fatalf("status = %q", b.Status)
	}
	if b.CancelReason != "changed plans" {
		t.Fatalf("reason = %q", b.CancelReason)
	}
}

func TestCancelRejectedOncePaymentAwaitsVerification(t *testing.T) {
	db := newMockDB(t)
	defer db.Close()

	db.mock.ExpectQuery("FROM bookings").WithArgs(int64(5)).
		WillReturnRows(bookingRows().
			AddRow(5, "BK00000005", 7, 1, 3, "Unilodge", "Twin", "", "pending_payment", "2954.00", "", "", "", "", ""))
	db.mock.ExpectQuery("FROM payments").WithArgs(int64(5)).
		WillReturnRows(paymentRows().
			AddRow(9, 5, "2954.00", "BANK_TRANSFER", "AWAITING_VERIFICATION", "/uploads/p9.jpg", "PAY-1", "", ""))

	svc := newBookingService(db)
	_, err := svc.Cancel(7, 5, "")
	if !domain.IsConflict(err) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
}

func TestCancelRejectedFromPendingApproval(t *testing.T) {
	db := newMockDB(t)
	defer db.Close()

	db.mock.ExpectQuery("FROM bookings").WithArgs(int64(5)).
		WillReturnRows(bookingRows().
			AddRow(5, "BK00000005", 7, 1, 3, "Unilodge", "Twin", "", "pending_approval", "2954.00", "", "", "", "", ""))
	db.mock.ExpectQuery("FROM payments").WithArgs(int64(5)).
		WillReturnRows(paymentRows())

	svc := newBookingService(db)
	_, err := svc.Cancel(7, 5, "")
	if !domain.IsConflict(err) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
}

func TestDeleteOnlyAllowedFromCancelled(t *testing.T) {
	db := newMockDB(t)
	defer db.Close()

	db.mock.ExpectQuery("FROM bookings").WithArgs(int64(5)).
		WillReturnRows(bookingRows().
			AddRow(5, "BK00000005", 7, 1, 3, "Unilodge", "Twin", "", "pending_payment", "2954.00", "", "", "", "", ""))

	svc := newBookingService(db)
	if err := svc.Delete(7, 5); !domain.IsConflict(err) {
		t.Fatalf("expected ConflictError for non-cancelled booking, got %v", err)
	}
}

func TestDeleteCancelledBooking(t *testing.T) {
	db := newMockDB(t)
	defer db.Close()

	db.mock.ExpectQuery("FROM bookings").WithArgs(int64(5)).
		WillReturnRows(bookingRows().
			AddRow(5, "BK00000005", 7, 1, 3, "Unilodge", "Twin", "", "cancelled", "2954.00", "", "", "", "changed plans", ""))
	db.mock.ExpectExec("DELETE FROM bookings").WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	svc := newBookingService(db)
	if err := svc.Delete(7, 5); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}

func TestPatchRejectsMalformedReportingDate(t *testing.T) {
	db := newMockDB(t)
	defer db.Close()

	db.mock.ExpectQuery("FROM bookings").WithArgs(int64(5)).
		WillReturnRows(bookingRows().
			AddRow(5, "BK00000005", 7, 1, 3, "Unilodge", "Twin", "", "approved", "2954.00", "", "", "", "", ""))

	svc := newBookingService(db)
	bad := "01/09/2026"
	_, err := svc.Patch(7, 5, models.BookingPatch{ReportingDate: &bad})
	if !domain.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestPatchStoresReportingDate(t *testing.T) {
	db := newMockDB(t)
	defer db.Close()

	db.mock.ExpectQuery("FROM bookings").WithArgs(int64(5)).
		WillReturnRows(bookingRows().
			AddRow(5, "BK00000005", 7, 1, 3, "Unilodge", "Twin", "", "approved", "2954.00", "", "", "", "", ""))
	db.mock.ExpectExec("UPDATE bookings SET reporting_date=").
		WithArgs("2026-09-01", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	db.mock.ExpectQuery("FROM bookings").WithArgs(int64(5)).
		WillReturnRows(bookingRows().
			AddRow(5, "BK00000005", 7, 1, 3, "Unilodge", "Twin", "", "approved", "2954.00", "", "", "2026-09-01", "", ""))

	svc := newBookingService(db)
	date := "2026-09-01"
	b, err := svc.Patch(7, 5, models.BookingPatch{ReportingDate: &date})
	if err != nil {
		t.Fatalf("Patch: %v", err)
	}
	if b.ReportingDate != "2026-09-01" {
		t.Fatalf("reporting date = %q", b.ReportingDate)
	}
}

func TestGetHidesForeignBooking(t *testing.T) {
	db := newMockDB(t)
	defer db.Close()

	db.mock.ExpectQuery("FROM bookings").WithArgs(int64(5)).
		WillReturnRows(bookingRows().
			AddRow(5, "BK00000005", 99, 1, 3, "Unilodge", "Twin", "", "approved", "2954.00", "", "", "", "", ""))

	svc := newBookingService(db)
	if _, _, err := svc.Get(7, 5); !domain.IsNotFound(err) {
		t.Fatalf("expected NotFoundError for another user's booking, got %v", err)
	}
}
