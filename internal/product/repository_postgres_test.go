package product

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/wichananm65/meli-optimizer/internal/meli"
)

var listingRowColumns = []string{
	"id", "user_id", "title", "category_id", "price", "currency_id", "sold_quantity", "available_quantity",
	"thumbnail", "permalink", "status", "brand", "model", "free_shipping", "logistic_type",
	"installment_quantity", "installment_rate", "description", "pictures", "attributes", "synced_at",
}

func TestPostgresList(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	at := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(listingRowColumns).
		AddRow("MLA1", 3, "Taladro", "MLA1055", "199.90", "ARS", 12, 4,
			"t.jpg", nil, "active", "Bosch", nil, true, "fulfillment",
			6, 0.0, nil, "{https://a.jpg,https://b.jpg}", `[{"id":"BRAND","name":"Marca","value_name":"Bosch"}]`, at).
		AddRow("MLA2", 3, "Amoladora", "MLA1055", "50", "ARS", 0, 1,
			nil, nil, "paused", nil, nil, false, nil,
			0, 0.0, nil, nil, nil, at)
	mock.ExpectQuery("FROM listings").WithArgs(3).WillReturnRows(rows)

	all, err := repo.List(3)
	if err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 listings, got %d", len(all))
	}
	first := all[0]
	if !first.Price.Equal(decimal.RequireFromString("199.9")) || first.Brand != "Bosch" || len(first.Pictures) != 2 {
		t.Fatalf("unexpected first listing %+v", first)
	}
	if len(first.Attributes) != 1 || first.Attributes[0].ValueName != "Bosch" {
		t.Fatalf("unexpected attributes %+v", first.Attributes)
	}
	if all[1].Pictures == nil || all[1].Attributes == nil {
		t.Fatalf("null arrays must decode to empty slices")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresGet_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("FROM listings").WithArgs(1, "MLA404").WillReturnError(sql.ErrNoRows)
	if _, err := repo.Get(1, "MLA404"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostgresUpsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec("INSERT INTO listings").WillReturnResult(sqlmock.NewResult(0, 1))

	l := FromItem(1, meli.Item{ID: "MLA1", Title: "Taladro", Price: 10.5}, "", time.Now())
	if err := repo.Upsert(l); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
