package repositories

import (
	"database/sql"
	"fmt"

	intconfig "hostella/internal/config"
	intdb "hostella/internal/db"
	"hostella/internal/domain/models"
)

type NotificationRepository struct {
	DB *sql.DB
}

func (r NotificationRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r NotificationRepository) ListByUser(userID int64, page, limit int) ([]models.Notification, int, error) {
	if userID <= 0 {
		return nil, 0, fmt.Errorf("invalid user id")
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	db := r.db()
	if !intdb.HasTable(db, "notifications") {
		return []models.Notification{}, 0, nil
	}

	var total int
	if err := db.QueryRow(`SELECT COUNT(*) FROM notifications WHERE user_id=?`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := db.Query(`
		SELECT id, user_id, COALESCE(title,''), COALESCE(body,''), COALESCE(is_read,0), COALESCE(created_at,'')
		FROM notifications WHERE user_id=? ORDER BY id DESC LIMIT ? OFFSET ?`,
		userID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []models.Notification{}
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Body, &n.Read, &n.CreatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, n)
	}
	return out, total, rows.Err()
}

func (r NotificationRepository) Create(n models.Notification) error {
	db := r.db()
	if !intdb.HasTable(db, "notifications") {
		return nil
	}
	_, err := db.Exec(`
		INSERT INTO notifications (user_id, title, body, is_read, created_at)
		VALUES (?, ?, ?, 0, NOW())`,
		n.UserID, n.Title, n.Body,
	)
	return err
}

func (r NotificationRepository) MarkRead(id, userID int64) error {
	if id <= 0 || userID <= 0 {
		return fmt.Errorf("invalid notification id")
	}
	_, err := r.db().Exec(`UPDATE notifications SET is_read=1 WHERE id=? AND user_id=?`, id, userID)
	return err
}
