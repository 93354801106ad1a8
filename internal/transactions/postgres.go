package transactions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectColumns = `id, owner_email, category_id, group_name, amount_minor, note, occurred_at, created_at`

func (r *PostgresRepository) Create(ctx context.Context, t Transaction) (Transaction, error) {
	const q = `
INSERT INTO transactions (id, owner_email, category_id, group_name, amount_minor, note, occurred_at, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
`
	_, err := r.db.ExecContext(ctx, q,
		t.ID, t.OwnerEmail, t.CategoryID, t.GroupName, t.AmountMinor, t.Note, t.OccurredAt, t.CreatedAt)
	if err != nil {
		return Transaction{}, err
	}
	return t, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, ownerEmail, id string) (Transaction, error) {
	q := fmt.Sprintf(`SELECT %s FROM transactions WHERE owner_email = $1 AND id = $2`, selectColumns)
	var t Transaction
	err := r.db.QueryRowContext(ctx, q, ownerEmail, id).Scan(
		&t.ID, &t.OwnerEmail, &t.CategoryID, &t.GroupName, &t.AmountMinor, &t.Note, &t.OccurredAt, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Transaction{}, ErrNotFound
		}
		return Transaction{}, err
	}
	return t, nil
}

func (r *PostgresRepository) List(ctx context.Context, ownerEmail string, f Filter) ([]Transaction, error) {
	return r.list(ctx, "owner_email = $1", ownerEmail, f)
}

func (r *PostgresRepository) ListByGroup(ctx context.Context, groupName string, f Filter) ([]Transaction, error) {
	return r.list(ctx, "group_name = $1", groupName, f)
}

// list appends filter clauses to the scope predicate. All values travel as
// placeholders; no user input is interpolated into the SQL text.
func (r *PostgresRepository) list(ctx context.Context, scope string, scopeArg any, f Filter) ([]Transaction, error) {
	where := []string{scope}
	args := []any{scopeArg}

	add := func(clause string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(clause, len(args)))
	}

	if !f.From.IsZero() {
		add("occurred_at >= $%d", f.From)
	}
	if !f.To.IsZero() {
		add("occurred_at < $%d", f.To)
	}
	if f.MinAmount != nil {
		add("amount_minor >= $%d", *f.MinAmount)
	}
	if f.MaxAmount != nil {
		add("amount_minor <= $%d", *f.MaxAmount)
	}
	if f.CategoryID != "" {
		add("category_id = $%d", f.CategoryID)
	}
	if f.GroupName != "" {
		add("group_name = $%d", f.GroupName)
	}

	q := fmt.Sprintf(
		`SELECT %s FROM transactions WHERE %s ORDER BY occurred_at DESC, id`,
		selectColumns, strings.Join(where, " AND "),
	)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Transaction, 0)
	for rows.Next() {
		var t Transaction
		if err := rows.Scan(
			&t.ID, &t.OwnerEmail, &t.CategoryID, &t.GroupName, &t.AmountMinor, &t.Note, &t.OccurredAt, &t.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Update(ctx context.Context, t Transaction) error {
	const q = `
UPDATE transactions
SET category_id = $3, group_name = $4, amount_minor = $5, note = $6, occurred_at = $7
WHERE owner_email = $1 AND id = $2
`
	res, err := r.db.ExecContext(ctx, q,
		t.OwnerEmail, t.ID, t.CategoryID, t.GroupName, t.AmountMinor, t.Note, t.OccurredAt)
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

func (r *PostgresRepository) Delete(ctx context.Context, ownerEmail, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE owner_email = $1 AND id = $2`, ownerEmail, id)
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
