package repository

import (
	"context"

	"github.com/oksasatya/hocus-focus/internal/domain/entity"
)

type ActivityRepository interface {
	Get(ctx context.Context, id string) (*entity.Activity, error)
	GetAll(ctx context.Context) ([]entity.Activity, error)
	GetByCreator(ctx context.Context, creatorID string) ([]entity.Activity, error)
	GetByCategory(ctx context.Context, category string) ([]entity.Activity, error)
	GetByStatus(ctx context.Context, status entity.ActivityStatus) ([]entity.Activity, error)
	GetByDate(ctx context.Context, date string) ([]entity.Activity, error)
	Save(ctx context.Context, a *entity.Activity) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	Clear(ctx context.Context) error
}
