package transactions

import "context"

type Repository interface {
	Create(ctx context.Context, t Transaction) (Transaction, error)
	GetByID(ctx context.Context, ownerEmail, id string) (Transaction, error)
	List(ctx context.Context, ownerEmail string, f Filter) ([]Transaction, error)
	ListByGroup(ctx context.Context, groupName string, f Filter) ([]Transaction, error)
	Update(ctx context.Context, t Transaction) error
	Delete(ctx context.Context, ownerEmail, id string) error
}
