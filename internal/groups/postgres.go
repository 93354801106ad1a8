package groups

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

func (r *PostgresRepository) Create(ctx context.Context, g Group) (Group, error) {
	const q = `
INSERT INTO groups (id, name, owner_id, created_at)
VALUES ($1,$2,$3,$4)
`
	_, err := r.db.ExecContext(ctx, q, g.ID, g.Name, g.OwnerID, g.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Group{}, ErrDuplicate
		}
		return Group{}, err
	}
	return g, nil
}

func (r *PostgresRepository) GetByName(ctx context.Context, name string) (Group, error) {
	const q = `
SELECT id, name, owner_id, created_at
FROM groups
WHERE name = $1
`
	var g Group
	err := r.db.QueryRowContext(ctx, q, name).Scan(&g.ID, &g.Name, &g.OwnerID, &g.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Group{}, ErrNotFound
		}
		return Group{}, err
	}
	return g, nil
}

func (r *PostgresRepository) FindMembers(ctx context.Context, name string) ([]string, error) {
	// The existence check is separate from membership so an empty group is
	// distinguishable from a missing one.
	if _, err := r.GetByName(ctx, name); err != nil {
		return nil, err
	}

	const q = `
SELECT m.email
FROM group_members m
JOIN groups g ON g.id = m.group_id
WHERE g.name = $1
ORDER BY m.email
`
	rows, err := r.db.QueryContext(ctx, q, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	emails := make([]string, 0)
	for rows.Next() {
		var e string
		if err := rows.Scan(&e); err != nil {
			return nil, err
		}
		emails = append(emails, e)
	}
	return emails, rows.Err()
}

func (r *PostgresRepository) AddMember(ctx context.Context, name, email string) error {
	const q = `
INSERT INTO group_members (group_id, email)
SELECT id, $2 FROM groups WHERE name = $1
ON CONFLICT (group_id, email) DO NOTHING
`
	res, err := r.db.ExecContext(ctx, q, name, email)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Either the group does not exist or the member was already present;
		// only the former is an error.
		if _, err := r.GetByName(ctx, name); err != nil {
			return err
		}
	}
	return nil
}

func (r *PostgresRepository) RemoveMember(ctx context.Context, name, email string) error {
	const q = `
DELETE FROM group_members
WHERE email = $2
  AND group_id = (SELECT id FROM groups WHERE name = $1)
`
	_, err := r.db.ExecContext(ctx, q, name, email)
	return err
}

func (r *PostgresRepository) ListByMember(ctx context.Context, email string) ([]Group, error) {
	const q = `
SELECT g.id, g.name, g.owner_id, g.created_at
FROM groups g
JOIN group_members m ON m.group_id = g.id
WHERE m.email = $1
ORDER BY g.name
`
	rows, err := r.db.QueryContext(ctx, q, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Group, 0)
	for rows.Next() {
		var g Group
		if err := rows.Scan(&g.ID, &g.Name, &g.OwnerID, &g.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Delete(ctx context.Context, name string) error {
	// group_members rows go with the group via ON DELETE CASCADE.
	res, err := r.db.ExecContext(ctx, `DELETE FROM groups WHERE name = $1`, name)
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
