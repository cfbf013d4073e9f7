package connection

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPostgresGet(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	exp := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"user_id", "meli_user_id", "access_token", "refresh_token", "expires_at", "updated_at"}).
		AddRow(4, int64(99), "tok", nil, exp, exp)
	mock.ExpectQuery("FROM meli_connections").WithArgs(4).WillReturnRows(rows)

	c, err := repo.Get(4)
	if err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}
	if c.MeliUserID != 99 || c.RefreshToken != "" || !c.ExpiresAt.Equal(exp) {
		t.Fatalf("unexpected connection %+v", c)
	}

	mock.ExpectQuery("FROM meli_connections").WithArgs(5).WillReturnError(sql.ErrNoRows)
	if _, err := repo.Get(5); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresDelete_Missing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec("DELETE FROM meli_connections").WithArgs(8).WillReturnResult(sqlmock.NewResult(0, 0))
	if err := repo.Delete(8); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
