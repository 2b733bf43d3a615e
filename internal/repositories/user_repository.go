package repositories

import (
	"database/sql"
	"fmt"

	intconfig "hostella/internal/config"
	"hostella/internal/domain/models"
)

type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// GetByEmail also returns the stored bcrypt hash for login checks.
func (r UserRepository) GetByEmail(email string) (models.User, string, error) {
	var (
		u    models.User
		hash string
	)
	err := r.db().QueryRow(`
		SELECT id, COALESCE(name,''), COALESCE(email,''), COALESCE(phone,''), COALESCE(password_hash,''), COALESCE(role,'student')
		FROM users WHERE email=? LIMIT 1`, email).Scan(
		&u.ID, &u.Name, &u.Email, &u.Phone, &hash, &u.Role,
	)
	if err != nil {
		return models.User{}, "", err
	}
	return u, hash, nil
}

func (r UserRepository) GetByID(id int64) (models.User, error) {
	if id <= 0 {
		return models.User{}, fmt.Errorf("invalid user id")
	}
	var u models.User
	err := r.db().QueryRow(`
		SELECT id, COALESCE(name,''), COALESCE(email,''), COALESCE(phone,''), COALESCE(role,'student')
		FROM users WHERE id=? LIMIT 1`, id).Scan(
		&u.ID, &u.Name, &u.Email, &u.Phone, &u.Role,
	)
	return u, err
}

func (r UserRepository) CountByEmail(email string) (int, error) {
	var n int
	err := r.db().QueryRow(`SELECT COUNT(*) FROM users WHERE email=?`, email).Scan(&n)
	return n, err
}

func (r UserRepository) Create(u models.User, passwordHash string) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO users (name, email, phone, password_hash, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, 'student', NOW(), NOW())`,
		u.Name, u.Email, u.Phone, passwordHash,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
