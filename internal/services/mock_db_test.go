package services

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

type sqlmockDB struct {
	DB   *sql.DB
	mock sqlmock.Sqlmock
}

func (m sqlmockDB) Close() { _ = m.DB.Close() }

func newMockDB(t *testing.T) sqlmockDB {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	return sqlmockDB{DB: db, mock: mock}
}
