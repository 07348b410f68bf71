package repository

import (
	"context"

	"github.com/oksasatya/hocus-focus/internal/domain/entity"
)

// UserRepository defines the user collection operations. Lookups return a nil
// user and a nil error when nothing matches.
type UserRepository interface {
	Get(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetAll(ctx context.Context) ([]entity.User, error)
	Save(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	Clear(ctx context.Context) error
}
