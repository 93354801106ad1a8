package users

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, u User) (User, error) {
	const q = `
INSERT INTO users (id, username, email, role, password_hash, created_at)
VALUES ($1,$2,$3,$4,$5,$6)
`
	_, err := r.db.ExecContext(ctx, q, u.ID, u.Username, u.Email, u.Role, u.PasswordHash, u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		// 23505 = unique_violation
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return User{}, ErrDuplicate
		}
		return User{}, err
	}
	return u, nil
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (User, error) {
	const q = `
SELECT id, username, email, role, password_hash, created_at
FROM users
WHERE username = $1
`
	return r.scanOne(r.db.QueryRowContext(ctx, q, username))
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (User, error) {
	const q = `
SELECT id, username, email, role, password_hash, created_at
FROM users
WHERE email = $1
`
	return r.scanOne(r.db.QueryRowContext(ctx, q, email))
}

func (r *PostgresRepository) Update(ctx context.Context, u User) error {
	const q = `
UPDATE users
SET email = $2, role = $3, password_hash = $4
WHERE username = $1
`
	res, err := r.db.ExecContext(ctx, q, u.Username, u.Email, u.Role, u.PasswordHash)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, username string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE username = $1`, username)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]User, error) {
	const q = `
SELECT id, username, email, role, password_hash, created_at
FROM users
ORDER BY username
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]User, 0)
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.Role, &u.PasswordHash, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) scanOne(row *sql.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Role, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}
