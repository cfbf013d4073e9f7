package user

import (
	"database/sql"
	"errors"
)

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	getUserByIDQuery = `
		SELECT user_id, email, password, name, created_at, updated_at
		FROM users
		WHERE user_id = $1
	`
	getUserByEmailQuery = `
		SELECT user_id, email, password, name, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	insertUserQuery = `
		INSERT INTO users (email, password, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO NOTHING
		RETURNING user_id
	`
	updateUserQuery = `
		UPDATE users
		SET name = COALESCE(NULLIF($1, ''), name),
			password = COALESCE(NULLIF($2, ''), password),
			updated_at = $3
		WHERE user_id = $4
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(id int) (User, error) {
	return r.getOne(getUserByIDQuery, id)
}

func (r *PostgresRepository) GetByEmail(email string) (User, error) {
	return r.getOne(getUserByEmailQuery, email)
}

func (r *PostgresRepository) getOne(query string, arg any) (User, error) {
	user, err := scanUser(r.db.QueryRow(query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return user, nil
}

func (r *PostgresRepository) Create(user User) (User, error) {
	var id int
	err := r.db.QueryRow(insertUserQuery, user.Email, user.Password, user.Name, user.CreatedAt, user.UpdatedAt).Scan(&id)
	if err != nil {
		// ON CONFLICT DO NOTHING returns no row for a duplicate email
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrEmailExists
		}
		return User{}, err
	}
	user.ID = id
	return user, nil
}

func (r *PostgresRepository) Update(id int, user User) (User, error) {
	result, err := r.db.Exec(updateUserQuery, user.Name, user.Password, user.UpdatedAt, id)
	if err != nil {
		return User{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return User{}, err
	}
	if affected == 0 {
		return User{}, ErrNotFound
	}
	return r.GetByID(id)
}

func scanUser(scanner rowScanner) (User, error) {
	var (
		user      User
		name      sql.NullString
		createdAt sql.NullString
		updatedAt sql.NullString
	)
	if err := scanner.Scan(&user.ID, &user.Email, &user.Password, &name, &createdAt, &updatedAt); err != nil {
		return User{}, err
	}
	user.Name = name.String
	user.CreatedAt = createdAt.String
	user.UpdatedAt = updatedAt.String
	return user, nil
}
