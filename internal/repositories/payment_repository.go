package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	intconfig "hostella/internal/config"
	intdb "hostella/internal/db"
	"hostella/internal/domain/models"
)

type PaymentRepository struct {
	DB *sql.DB
}

func (r PaymentRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const paymentColumns = `
	id,
	COALESCE(booking_id,0),
	COALESCE(amount,'0'),
	COALESCE(provider,''),
	COALESCE(status,''),
	COALESCE(receipt_url,''),
	COALESCE(reference,''),
	COALESCE(payer_phone,''),
	COALESCE(created_at,'')`

func scanPayment(row interface{ Scan(...any) error }) (models.Payment, error) {
	var p models.Payment
	err := row.Scan(
		&p.ID,
		&p.BookingID,
		&p.Amount,
		&p.Provider,
		&p.Status,
		&p.ReceiptURL,
		&p.Reference,
		&p.PayerPhone,
		&p.CreatedAt,
	)
	return p, err
}

func (r PaymentRepository) GetByID(id int64) (models.Payment, error) {
	if id <= 0 {
		return models.Payment{}, fmt.Errorf("invalid payment id")
	}
	query := `SELECT` + paymentColumns + ` FROM payments WHERE id=? LIMIT 1`
	return scanPayment(r.db().QueryRow(query, id))
}

// GetByBookingID returns the zero Payment (ID 0) when no record exists;
// absence is a normal state for a fresh booking, not an error.
func (r PaymentRepository) GetByBookingID(bookingID int64) (models.Payment, error) {
	if bookingID <= 0 {
		return models.Payment{}, fmt.Errorf("invalid booking id")
	}
	query := `SELECT` + paymentColumns + ` FROM payments WHERE booking_id=? ORDER BY id DESC LIMIT 1`
	p, err := scanPayment(r.db().QueryRow(query, bookingID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Payment{}, nil
		}
		return models.Payment{}, err
	}
	return p, nil
}

func (r PaymentRepository) GetByReference(reference string) (models.Payment, error) {
	if reference == "" {
		return models.Payment{}, fmt.Errorf("invalid reference")
	}
	query := `SELECT` + paymentColumns + ` FROM payments WHERE reference=? LIMIT 1`
	return scanPayment(r.db().QueryRow(query, reference))
}

func (r PaymentRepository) Create(p models.Payment) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO payments
			(booking_id, amount, provider, status, reference, payer_phone, created_at)
		VALUES (?, ?, ?, ?, ?, ?, NOW())`,
		p.BookingID, p.Amount, p.Provider, p.Status, p.Reference, intdb.NullIfEmpty(p.PayerPhone),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r PaymentRepository) UpdateStatus(id int64, status string) error {
	if id <= 0 {
		return fmt.Errorf("invalid payment id")
	}
	_, err := r.db().Exec(`UPDATE payments SET status=? WHERE id=?`, status, id)
	return err
}

// SetReceipt records the uploaded proof and moves the payment into
// verification in one statement so the two can never disagree.
func (r PaymentRepository) SetReceipt(id int64, url, status string) error {
	if id <= 0 {
		return fmt.Errorf("invalid payment id")
	}
	_, err := r.db().Exec(`UPDATE payments SET receipt_url=?, status=? WHERE id=?`, url, status, id)
	return err
}
