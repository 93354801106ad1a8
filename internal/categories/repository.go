package categories

import "context"

type Repository interface {
	Create(ctx context.Context, c Category) (Category, error)
	GetByName(ctx context.Context, ownerEmail, name string) (Category, error)
	ListByOwner(ctx context.Context, ownerEmail string) ([]Category, error)
	Rename(ctx context.Context, ownerEmail, name, newName string) (Category, error)

	// DeleteAndReassign removes the category and moves its transactions to
	// fallbackID in the same unit of work, returning how many moved.
	DeleteAndReassign(ctx context.Context, id, fallbackID string) (int64, error)
}
