package product

import (
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/lib/pq"
	"github.com/wichananm65/meli-optimizer/internal/meli"
)

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const listingColumns = `id, user_id, title, category_id, price, currency_id, sold_quantity, available_quantity,
		thumbnail, permalink, status, brand, model, free_shipping, logistic_type,
		installment_quantity, installment_rate, description, pictures, attributes, synced_at`

const (
	listListingsQuery = `
		SELECT ` + listingColumns + `
		FROM listings
		WHERE user_id = $1
		ORDER BY id
	`
	getListingQuery = `
		SELECT ` + listingColumns + `
		FROM listings
		WHERE user_id = $1 AND id = $2
	`
	upsertListingQuery = `
		INSERT INTO listings (` + listingColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)
		ON CONFLICT (user_id, id) DO UPDATE
		SET title = EXCLUDED.title,
			category_id = EXCLUDED.category_id,
			price = EXCLUDED.price,
			currency_id = EXCLUDED.currency_id,
			sold_quantity = EXCLUDED.sold_quantity,
			available_quantity = EXCLUDED.available_quantity,
			thumbnail = EXCLUDED.thumbnail,
			permalink = EXCLUDED.permalink,
			status = EXCLUDED.status,
			brand = EXCLUDED.brand,
			model = EXCLUDED.model,
			free_shipping = EXCLUDED.free_shipping,
			logistic_type = EXCLUDED.logistic_type,
			installment_quantity = EXCLUDED.installment_quantity,
			installment_rate = EXCLUDED.installment_rate,
			description = EXCLUDED.description,
			pictures = EXCLUDED.pictures,
			attributes = EXCLUDED.attributes,
			synced_at = EXCLUDED.synced_at
	`
	deleteListingQuery = `DELETE FROM listings WHERE user_id = $1 AND id = $2`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(userID int) ([]Listing, error) {
	rows, err := r.db.Query(listListingsQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Listing, 0)
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Get(userID int, id string) (Listing, error) {
	l, err := scanListing(r.db.QueryRow(getListingQuery, userID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Listing{}, ErrNotFound
		}
		return Listing{}, err
	}
	return l, nil
}

func (r *PostgresRepository) Upsert(l Listing) error {
	attrs, err := json.Marshal(l.Attributes)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(upsertListingQuery,
		l.ID, l.UserID, l.Title, l.CategoryID, l.Price, l.CurrencyID, l.SoldQuantity, l.AvailableQuantity,
		l.Thumbnail, l.Permalink, l.Status, l.Brand, l.Model, l.FreeShipping, l.LogisticType,
		l.InstallmentQuantity, l.InstallmentRate, l.Description, pq.Array(l.Pictures), attrs, l.SyncedAt,
	)
	return err
}

func (r *PostgresRepository) Delete(userID int, id string) error {
	result, err := r.db.Exec(deleteListingQuery, userID, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func scanListing(scanner rowScanner) (Listing, error) {
	var (
		l            Listing
		thumbnail    sql.NullString
		permalink    sql.NullString
		brand        sql.NullString
		model        sql.NullString
		logisticType sql.NullString
		description  sql.NullString
		pictures     pq.StringArray
		attrs        []byte
	)
	err := scanner.Scan(
		&l.ID, &l.UserID, &l.Title, &l.CategoryID, &l.Price, &l.CurrencyID, &l.SoldQuantity, &l.AvailableQuantity,
		&thumbnail, &permalink, &l.Status, &brand, &model, &l.FreeShipping, &logisticType,
		&l.InstallmentQuantity, &l.InstallmentRate, &description, &pictures, &attrs, &l.SyncedAt,
	)
	if err != nil {
		return Listing{}, err
	}
	l.Thumbnail = thumbnail.String
	l.Permalink = permalink.String
	l.Brand = brand.String
	l.Model = model.String
	l.LogisticType = logisticType.String
	l.Description = description.String
	l.Pictures = []string(pictures)
	if l.Pictures == nil {
		l.Pictures = []string{}
	}
	l.Attributes = []meli.Attribute{}
	if len(attrs) > 0 {
		if err := json.Unmarshal(attrs, &l.Attributes); err != nil {
			return Listing{}, err
		}
	}
	return l, nil
}
