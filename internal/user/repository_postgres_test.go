package user

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPostgresCreate_DuplicateEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("a@b.c", "hash", "A", "t", "t").
		WillReturnError(sql.ErrNoRows)

	if _, err := repo.Create(User{Email: "a@b.c", Password: "hash", Name: "A", CreatedAt: "t", UpdatedAt: "t"}); err != ErrEmailExists {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresGetByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := sqlmock.NewRows([]string{"user_id", "email", "password", "name", "created_at", "updated_at"}).
		AddRow(3, "a@b.c", "hash", nil, "t", "u")
	mock.ExpectQuery("FROM users").WithArgs("a@b.c").WillReturnRows(rows)

	u, err := repo.GetByEmail("a@b.c")
	if err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}
	if u.ID != 3 || u.Name != "" {
		t.Fatalf("unexpected user %+v", u)
	}

	mock.ExpectQuery("FROM users").WithArgs("x@y.z").WillReturnError(sql.ErrNoRows)
	if _, err := repo.GetByEmail("x@y.z"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
