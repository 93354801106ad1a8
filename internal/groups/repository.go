package groups

import "context"

type Repository interface {
	Create(ctx context.Context, g Group) (Group, error)
	GetByName(ctx context.Context, name string) (Group, error)
	FindMembers(ctx context.Context, name string) ([]string, error)
	AddMember(ctx context.Context, name, email string) error
	RemoveMember(ctx context.Context, name, email string) error
	ListByMember(ctx context.Context, email string) ([]Group, error)
	Delete(ctx context.Context, name string) error
}
