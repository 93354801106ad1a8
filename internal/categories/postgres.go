package categories

import (
	"context"
	"database/sql"
	"errors"

	"fintrack/pkg/utils"

	"github.com/jackc/pgx/v5/pgconn"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, c Category) (Category, error) {
	const q = `
INSERT INTO categories (id, name, owner_email, created_at)
VALUES ($1,$2,$3,$4)
`
	_, err := r.db.ExecContext(ctx, q, c.ID, c.Name, c.OwnerEmail, c.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Category{}, ErrDuplicate
		}
		return Category{}, err
	}
	return c, nil
}

func (r *PostgresRepository) GetByName(ctx context.Context, ownerEmail, name string) (Category, error) {
	const q = `
SELECT id, name, owner_email, created_at
FROM categories
WHERE owner_email = $1 AND name = $2
`
	var c Category
	err := r.db.QueryRowContext(ctx, q, ownerEmail, name).Scan(&c.ID, &c.Name, &c.OwnerEmail, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Category{}, ErrNotFound
		}
		return Category{}, err
	}
	return c, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerEmail string) ([]Category, error) {
	const q = `
SELECT id, name, owner_email, created_at
FROM categories
WHERE owner_email = $1
ORDER BY name
`
	rows, err := r.db.QueryContext(ctx, q, ownerEmail)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Category, 0)
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.OwnerEmail, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Rename(ctx context.Context, ownerEmail, name, newName string) (Category, error) {
	const q = `
UPDATE categories
SET name = $3
WHERE owner_email = $1 AND name = $2
RETURNING id, name, owner_email, created_at
`
	var c Category
	err := r.db.QueryRowContext(ctx, q, ownerEmail, name, newName).Scan(&c.ID, &c.Name, &c.OwnerEmail, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Category{}, ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Category{}, ErrDuplicate
		}
		return Category{}, err
	}
	return c, nil
}

// DeleteAndReassign moves the category's transactions to the fallback and
// removes the category atomically. Without the single transaction a crash
// between the two statements would orphan transactions.
func (r *PostgresRepository) DeleteAndReassign(ctx context.Context, id, fallbackID string) (int64, error) {
	var moved int64
	err := utils.WithTx(ctx, r.db, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE transactions SET category_id = $2 WHERE category_id = $1`, id, fallbackID)
		if err != nil {
			return err
		}
		moved, err = res.RowsAffected()
		if err != nil {
			return err
		}

		del, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
		if err != nil {
			return err
		}
		n, err := del.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return moved, nil
}
