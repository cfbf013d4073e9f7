package connection

import (
	"database/sql"
	"errors"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	getConnectionQuery = `
		SELECT user_id, meli_user_id, access_token, refresh_token, expires_at, updated_at
		FROM meli_connections
		WHERE user_id = $1
	`
	upsertConnectionQuery = `
		INSERT INTO meli_connections (user_id, meli_user_id, access_token, refresh_token, expires_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE
		SET meli_user_id = EXCLUDED.meli_user_id,
			access_token = EXCLUDED.access_token,
			refresh_token = EXCLUDED.refresh_token,
			expires_at = EXCLUDED.expires_at,
			updated_at = EXCLUDED.updated_at
	`
	deleteConnectionQuery = `DELETE FROM meli_connections WHERE user_id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(userID int) (Connection, error) {
	var (
		c            Connection
		refreshToken sql.NullString
		expiresAt    sql.NullTime
	)
	err := r.db.QueryRow(getConnectionQuery, userID).
		Scan(&c.UserID, &c.MeliUserID, &c.AccessToken, &refreshToken, &expiresAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Connection{}, ErrNotFound
		}
		return Connection{}, err
	}
	c.RefreshToken = refreshToken.String
	if expiresAt.Valid {
		c.ExpiresAt = expiresAt.Time
	}
	return c, nil
}

func (r *PostgresRepository) Save(conn Connection) (Connection, error) {
	var expiresAt sql.NullTime
	if !conn.ExpiresAt.IsZero() {
		expiresAt = sql.NullTime{Time: conn.ExpiresAt, Valid: true}
	}
	_, err := r.db.Exec(upsertConnectionQuery,
		conn.UserID, conn.MeliUserID, conn.AccessToken,
		sql.NullString{String: conn.RefreshToken, Valid: conn.RefreshToken != ""},
		expiresAt, conn.UpdatedAt)
	if err != nil {
		return Connection{}, err
	}
	return conn, nil
}

func (r *PostgresRepository) Delete(userID int) error {
	result, err := r.db.Exec(deleteConnectionQuery, userID)
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
