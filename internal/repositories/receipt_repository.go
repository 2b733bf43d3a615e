package repositories

import (
	"database/sql"
	"errors"

	intconfig "hostella/internal/config"
	intdb "hostella/internal/db"
	"hostella/internal/domain/models"
)

// ReceiptRepository persists breakdown snapshots taken at
// payment-confirmation time. The table is optional; deployments without it
// fall back to recomputing from the booking total.
type ReceiptRepository struct {
	DB *sql.DB
}

func (r ReceiptRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r ReceiptRepository) GetByBookingID(bookingID int64) (models.ReceiptSnapshot, error) {
	db := r.db()
	if !intdb.HasTable(db, "receipt_snapshots") {
		return models.ReceiptSnapshot{}, nil
	}

	var s models.ReceiptSnapshot
	err := db.QueryRow(`
		SELECT id, booking_id, COALESCE(receipt_number,''),
		       COALESCE(grand_total,0), COALESCE(base_amount,0),
		       COALESCE(vat,0), COALESCE(tourism_levy,0), COALESCE(service_fee,0),
		       COALESCE(maintenance_fee,0), COALESCE(generator_fee,0), COALESCE(water_bill,0),
		       COALESCE(created_at,'')
		FROM receipt_snapshots WHERE booking_id=? LIMIT 1`, bookingID).Scan(
		&s.ID, &s.BookingID, &s.ReceiptNumber,
		&s.GrandTotal, &s.BaseAmount,
		&s.VAT, &s.TourismLevy, &s.ServiceFee,
		&s.MaintenanceFee, &s.GeneratorFee, &s.WaterBill,
		&s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ReceiptSnapshot{}, nil
		}
		return models.ReceiptSnapshot{}, err
	}
	return s, nil
}

func (r ReceiptRepository) Create(s models.ReceiptSnapshot) error {
	db := r.db()
	if !intdb.HasTable(db, "receipt_snapshots") {
		return nil
	}
	_, err := db.Exec(`
		INSERT INTO receipt_snapshots
			(booking_id, receipt_number, grand_total, base_amount, vat, tourism_levy, service_fee,
			 maintenance_fee, generator_fee, water_bill, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())`,
		s.BookingID, s.ReceiptNumber, s.GrandTotal, s.BaseAmount, s.VAT, s.TourismLevy, s.ServiceFee,
		s.MaintenanceFee, s.GeneratorFee, s.WaterBill,
	)
	return err
}
