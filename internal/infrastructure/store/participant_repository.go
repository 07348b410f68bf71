package store

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/hocus-focus/internal/domain/entity"
	"github.com/oksasatya/hocus-focus/internal/domain/repository"
	"github.com/oksasatya/hocus-focus/internal/storage"
	"github.com/oksasatya/hocus-focus/pkg/helpers"
)

var _ repository.ParticipantRepository = (*ParticipantRepository)(nil)

type ParticipantRepository struct {
	coll   *storage.Collection[entity.Participant]
	logger *logrus.Logger
	opts   options
}

func newParticipantRepository(b storage.Backend, logger *logrus.Logger, opts options) *ParticipantRepository {
	return &ParticipantRepository{coll: storage.NewCollection(b, participantDefinition), logger: logger, opts: opts}
}

func (r *ParticipantRepository) fail(op string, err error, fields logrus.Fields) error {
	if fields == nil {
		fields = logrus.Fields{}
	}
	fields["entity"] = ParticipantsCollection
	fields["op"] = op
	helpers.LogError(r.logger, "participant store operation failed", err, fields)
	return err
}

func (r *ParticipantRepository) Open(ctx context.Context) error {
	if err := r.coll.Open(ctx); err != nil {
		return r.fail("open", err, nil)
	}
	return nil
}

func (r *ParticipantRepository) GetByActivity(ctx context.Context, activityID string) ([]entity.Participant, error) {
	out, err := r.coll.GetAllByIndex(ctx, IndexActivityID, activityID)
	if err != nil {
		return nil, r.fail("get_by_activity", err, logrus.Fields{"activity_id": activityID})
	}
	return out, nil
}

func (r *ParticipantRepository) GetByUser(ctx context.Context, userID string) ([]entity.Participant, error) {
	out, err := r.coll.GetAllByIndex(ctx, IndexUserID, userID)
	if err != nil {
		return nil, r.fail("get_by_user", err, logrus.Fields{"user_id": userID})
	}
	return out, nil
}

func (r *ParticipantRepository) GetAll(ctx context.Context) ([]entity.Participant, error) {
	out, err := r.coll.GetAll(ctx)
	if err != nil {
		return nil, r.fail("get_all", err, nil)
	}
	return out, nil
}

// Add records the membership with a fresh JoinedAt. Adding an existing pair
// overwrites its JoinedAt and never duplicates the row.
func (r *ParticipantRepository) Add(ctx context.Context, userID, activityID string) error {
	p := entity.Participant{UserID: userID, ActivityID: activityID, JoinedAt: r.opts.now().Unix()}
	if err := r.coll.Put(ctx, p); err != nil {
		return r.fail("add", err, logrus.Fields{"user_id": userID, "activity_id": activityID})
	}
	return nil
}

func (r *ParticipantRepository) Remove(ctx context.Context, userID, activityID string) error {
	if err := r.coll.Delete(ctx, participantKey(userID, activityID)); err != nil {
		return r.fail("remove", err, logrus.Fields{"user_id": userID, "activity_id": activityID})
	}
	return nil
}

// Get returns the membership row for the pair, or nil.
func (r *ParticipantRepository) Get(ctx context.Context, userID, activityID string) (*entity.Participant, error) {
	p, err := r.coll.Get(ctx, participantKey(userID, activityID))
	if err != nil {
		return nil, r.fail("get", err, logrus.Fields{"user_id": userID, "activity_id": activityID})
	}
	return p, nil
}

func (r *ParticipantRepository) IsMember(ctx context.Context, userID, activityID string) (bool, error) {
	p, err := r.Get(ctx, userID, activityID)
	if err != nil {
		return false, err
	}
	return p != nil, nil
}

func (r *ParticipantRepository) Count(ctx context.Context) (int, error) {
	n, err := r.coll.Count(ctx)
	if err != nil {
		return 0, r.fail("count", err, nil)
	}
	return n, nil
}

func (r *ParticipantRepository) Clear(ctx context.Context) error {
	if err := r.coll.Clear(ctx); err != nil {
		return r.fail("clear", err, nil)
	}
	return nil
}

func (r *ParticipantRepository) Seed(ctx context.Context) error {
	n, err := r.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	return r.insertDemo(ctx)
}

func (r *ParticipantRepository) Reset(ctx context.Context) error {
	if err := r.Clear(ctx); err != nil {
		return err
	}
	r.coll.Invalidate()
	return r.insertDemo(ctx)
}

func (r *ParticipantRepository) insertDemo(ctx context.Context) error {
	for _, p := range demoParticipants(r.opts.now().Unix()) {
		if err := r.coll.Put(ctx, p); err != nil {
			return r.fail("seed", err, logrus.Fields{"user_id": p.UserID, "activity_id": p.ActivityID})
		}
	}
	return nil
}
