package users

import "context"

type Repository interface {
	Create(ctx context.Context, u User) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	Update(ctx context.Context, u User) error
	Delete(ctx context.Context, username string) error
	List(ctx context.Context) ([]User, error)
}
