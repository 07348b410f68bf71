package repository

import (
	"context"

	"github.com/oksasatya/hocus-focus/internal/domain/entity"
)

// ParticipantRepository manages the user/activity join table. Add is an
// upsert that refreshes JoinedAt; Remove of a non-member is a no-op.
type ParticipantRepository interface {
	GetByActivity(ctx context.Context, activityID string) ([]entity.Participant, error)
	GetByUser(ctx context.Context, userID string) ([]entity.Participant, error)
	GetAll(ctx context.Context) ([]entity.Participant, error)
	Add(ctx context.Context, userID, activityID string) error
	Remove(ctx context.Context, userID, activityID string) error
	IsMember(ctx context.Context, userID, activityID string) (bool, error)
	Count(ctx context.Context) (int, error)
	Clear(ctx context.Context) error
}
