package repositories

import (
	"database/sql"
	"fmt"
	"strings"

	intconfig "hostella/internal/config"
	intdb "hostella/internal/db"
	"hostella/internal/domain"
	"hostella/internal/domain/models"
)

type BookingRepository struct {
	DB *sql.DB
}

func (r BookingRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const bookingColumns = `
	id,
	COALESCE(booking_code,''),
	COALESCE(user_id,0),
	COALESCE(hostel_id,0),
	COALESCE(room_id,0),
	COALESCE(hostel_name,''),
	COALESCE(room_title,''),
	COALESCE(hostel_image,''),
	COALESCE(status,''),
	COALESCE(price,'0'),
	COALESCE(allocated_room_number,''),
	COALESCE(floor_number,''),
	COALESCE(reporting_date,''),
	COALESCE(cancel_reason,''),
	COALESCE(created_at,'')`

func scanBooking(row interface{ Scan(...any) error }) (models.Booking, error) {
	var b models.Booking
	err := row.Scan(
		&b.ID,
		&b.BookingCode,
		&b.UserID,
		&b.HostelID,
		&b.RoomID,
		&b.HostelName,
		&b.RoomTitle,
		&b.HostelImage,
		&b.Status,
		&b.Price,
		&b.AllocatedRoomNumber,
		&b.FloorNumber,
		&b.ReportingDate,
		&b.CancelReason,
		&b.CreatedAt,
	)
	return b, err
}

func (r BookingRepository) GetByID(id int64) (models.Booking, error) {
	if id <= 0 {
		return models.Booking{}, fmt.Errorf("invalid booking id")
	}
	query := `SELECT` + bookingColumns + ` FROM bookings WHERE id=? LIMIT 1`
	return scanBooking(r.db().QueryRow(query, id))
}

// ListByUser returns one page of a user's bookings plus the total count.
// status filters by raw stored value when non-empty.
func (r BookingRepository) ListByUser(userID int64, status string, page, limit int) ([]models.Booking, int, error) {
	if userID <= 0 {
		return nil, 0, fmt.Errorf("invalid user id")
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	where := "WHERE user_id=?"
	args := []any{userID}
	if s := strings.TrimSpace(status); s != "" {
		where += " AND status=?"
		args = append(args, s)
	}

	var total int
	if err := r.db().QueryRow(`SELECT COUNT(*) FROM bookings `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT` + bookingColumns + ` FROM bookings ` + where + ` ORDER BY id DESC LIMIT ? OFFSET ?`
	args = append(args, limit, (page-1)*limit)

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, b)
	}
	return out, total, rows.Err()
}

func (r BookingRepository) Create(b models.Booking) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO bookings
			(booking_code, user_id, hostel_id, room_id, hostel_name, room_title, hostel_image, status, price, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())`,
		b.BookingCode, b.UserID, b.HostelID, b.RoomID, b.HostelName, b.RoomTitle, intdb.NullIfEmpty(b.HostelImage), b.Status, b.Price,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r BookingRepository) UpdateStatus(id int64, status, reason string) error {
	if id <= 0 {
		return fmt.Errorf("invalid booking id")
	}

	db := r.db()
	query := `UPDATE bookings SET status=?, cancel_reason=? WHERE id=?`
	args := []any{status, intdb.NullIfEmpty(reason), id}
	// older deployments predate the cancel_reason column
	if !intdb.HasColumn(db, "bookings", "cancel_reason") {
		query = `UPDATE bookings SET status=? WHERE id=?`
		args = []any{status, id}
	}

	res, err := db.Exec(query, args...)
	if err != nil {
		return err
	}
	return requireRow(res, "booking")
}

// Patch applies only the fields present, key-presence style, backing
// PATCH /bookings/:id.
func (r BookingRepository) Patch(id int64, p models.BookingPatch) error {
	if id <= 0 {
		return fmt.Errorf("invalid booking id")
	}

	sets := []string{}
	args := []any{}
	add := func(col string, v *string) {
		if v != nil {
			sets = append(sets, col+"=?")
			args = append(args, strings.TrimSpace(*v))
		}
	}
	add("status", p.Status)
	add("allocated_room_number", p.AllocatedRoomNumber)
	add("floor_number", p.FloorNumber)
	add("reporting_date", p.ReportingDate)

	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	res, err := r.db().Exec(`UPDATE bookings SET `+strings.Join(sets, ",")+` WHERE id=?`, args...)
	if err != nil {
		return err
	}
	return requireRow(res, "booking")
}

func (r BookingRepository) Delete(id int64) error {
	if id <= 0 {
		return fmt.Errorf("invalid booking id")
	}
	res, err := r.db().Exec(`DELETE FROM bookings WHERE id=?`, id)
	if err != nil {
		return err
	}
	return requireRow(res, "booking")
}

func requireRow(res sql.Result, resource string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFoundError{Resource: resource}
	}
	return nil
}
