package repositories

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"hostella/internal/domain"
	"hostella/internal/domain/models"
)

func bookingPatch(room, floor *string) models.BookingPatch {
	return models.BookingPatch{AllocatedRoomNumber: room, FloorNumber: floor}
}

func bookingRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "booking_code", "user_id", "hostel_id", "room_id",
		"hostel_name", "room_title", "hostel_image", "status", "price",
		"allocated_room_number", "floor_number", "reporting_date", "cancel_reason", "created_at",
	})
}

func TestBookingListByUserPaginates(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM bookings").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(23))
	mock.ExpectQuery("FROM bookings").
		WithArgs(int64(7), 10, 10).
		WillReturnRows(bookingRows().
			AddRow(12, "BK00000012", 7, 1, 3, "Unilodge", "Twin Deluxe", "", "pending_payment", "2954.00", "", "", "", "", "2026-01-01 10:00:00"))

	repo := BookingRepository{DB: db}
	list, total, err := repo.ListByUser(7, "", 2, 10)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if total != 23 {
		t.Fatalf("total = %d, want 23", total)
	}
	if len(list) != 1 || list[0].BookingCode != "BK00000012" {
		t.Fatalf("unexpected page: %+v", list)
	}
	if list[0].Price != "2954.00" {
		t.Fatalf("price = %q", list[0].Price)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingListByUserFiltersStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM bookings").
		WithArgs(int64(7), "cancelled").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("FROM bookings").
		WithArgs(int64(7), "cancelled", 10, 0).
		WillReturnRows(bookingRows())

	repo := BookingRepository{DB: db}
	list, total, err := repo.ListByUser(7, "cancelled", 1, 10)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if total != 0 || len(list) != 0 {
		t.Fatalf("expected empty page, got total=%d list=%+v", total, list)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingUpdateStatusLegacySchemaSkipsCancelReason(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// schema without the cancel_reason column falls back to status only
	mock.ExpectQuery("information_schema\\.columns").
		WithArgs("bookings", "cancel_reason").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}))
	mock.ExpectExec("UPDATE bookings SET status=\\? WHERE id=\\?").
		WithArgs("cancelled", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := BookingRepository{DB: db}
	if err := repo.UpdateStatus(5, "cancelled", "changed plans"); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingUpdateStatusClearsEmptyReasonToNull(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("information_schema\\.columns").
		WithArgs("bookings", "cancel_reason").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}).AddRow("cancel_reason"))
	mock.ExpectExec("UPDATE bookings SET status=\\?, cancel_reason=\\? WHERE id=\\?").
		WithArgs("pending approval", nil, int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := BookingRepository{DB: db}
	if err := repo.UpdateStatus(5, "pending approval", ""); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingDeleteMissingRowIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("DELETE FROM bookings").
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := BookingRepository{DB: db}
	err = repo.Delete(99)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestBookingPatchOnlySetsPresentFields(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	room := "B12"
	floor := "2"
	mock.ExpectExec("UPDATE bookings SET allocated_room_number=\\?,floor_number=\\? WHERE id=\\?").
		WithArgs("B12", "2", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := BookingRepository{DB: db}
	patch := bookingPatch(&room, &floor)
	if err := repo.Patch(5, patch); err != nil {
		t.Fatalf("Patch: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
