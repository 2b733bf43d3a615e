package repositories

import (
	"database/sql"
	"fmt"

	intconfig "hostella/internal/config"
	"hostella/internal/domain/models"
)

type HostelRepository struct {
	DB *sql.DB
}

func (r HostelRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r HostelRepository) List(page, limit int) ([]models.Hostel, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	var total int
	if err := r.db().QueryRow(`SELECT COUNT(*) FROM hostels`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db().Query(`
		SELECT id, COALESCE(name,''), COALESCE(location,''), COALESCE(image,''), COALESCE(description,'')
		FROM hostels ORDER BY name LIMIT ? OFFSET ?`, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []models.Hostel{}
	for rows.Next() {
		var h models.Hostel
		if err := rows.Scan(&h.ID, &h.Name, &h.Location, &h.Image, &h.Description); err != nil {
			return nil, 0, err
		}
		out = append(out, h)
	}
	return out, total, rows.Err()
}

func (r HostelRepository) GetByID(id int64) (models.Hostel, error) {
	if id <= 0 {
		return models.Hostel{}, fmt.Errorf("invalid hostel id")
	}
	var h models.Hostel
	err := r.db().QueryRow(`
		SELECT id, COALESCE(name,''), COALESCE(location,''), COALESCE(image,''), COALESCE(description,'')
		FROM hostels WHERE id=? LIMIT 1`, id).Scan(
		&h.ID, &h.Name, &h.Location, &h.Image, &h.Description,
	)
	return h, err
}

func (r HostelRepository) ListRooms(hostelID int64) ([]models.Room, error) {
	if hostelID <= 0 {
		return nil, fmt.Errorf("invalid hostel id")
	}
	rows, err := r.db().Query(`
		SELECT id, hostel_id, COALESCE(title,''), COALESCE(price,'0'), COALESCE(capacity,1), COALESCE(available,1)
		FROM rooms WHERE hostel_id=? ORDER BY title`, hostelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Room{}
	for rows.Next() {
		var rm models.Room
		if err := rows.Scan(&rm.ID, &rm.HostelID, &rm.Title, &rm.Price, &rm.Capacity, &rm.Available); err != nil {
			return nil, err
		}
		out = append(out, rm)
	}
	return out, rows.Err()
}

func (r HostelRepository) GetRoom(roomID int64) (models.Room, error) {
	if roomID <= 0 {
		return models.Room{}, fmt.Errorf("invalid room id")
	}
	var rm models.Room
	err := r.db().QueryRow(`
		SELECT id, hostel_id, COALESCE(title,''), COALESCE(price,'0'), COALESCE(capacity,1), COALESCE(available,1)
		FROM rooms WHERE id=? LIMIT 1`, roomID).Scan(
		&rm.ID, &rm.HostelID, &rm.Title, &rm.Price, &rm.Capacity, &rm.Available,
	)
	return rm, err
}
