package store

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/hocus-focus/internal/domain/entity"
	"github.com/oksasatya/hocus-focus/internal/domain/repository"
	"github.com/oksasatya/hocus-focus/internal/storage"
	"github.com/oksasatya/hocus-focus/pkg/helpers"
)

var _ repository.ActivityRepository = (*ActivityRepository)(nil)

type ActivityRepository struct {
	coll   *storage.Collection[entity.Activity]
	logger *logrus.Logger
	opts   options
}

func newActivityRepository(b storage.Backend, logger *logrus.Logger, opts options) *ActivityRepository {
	return &ActivityRepository{coll: storage.NewCollection(b, activityDefinition), logger: logger, opts: opts}
}

func (r *ActivityRepository) fail(op string, err error, fields logrus.Fields) error {
	if fields == nil {
		fields = logrus.Fields{}
	}
	fields["entity"] = ActivitiesCollection
	fields["op"] = op
	helpers.LogError(r.logger, "activity store operation failed", err, fields)
	return err
}

func (r *ActivityRepository) Open(ctx context.Context) error {
	if err := r.coll.Open(ctx); err != nil {
		return r.fail("open", err, nil)
	}
	return nil
}

func (r *ActivityRepository) Get(ctx context.Context, id string) (*entity.Activity, error) {
	a, err := r.coll.Get(ctx, id)
	if err != nil {
		return nil, r.fail("get", err, logrus.Fields{"activity_id": id})
	}
	return a, nil
}

func (r *ActivityRepository) GetAll(ctx context.Context) ([]entity.Activity, error) {
	all, err := r.coll.GetAll(ctx)
	if err != nil {
		return nil, r.fail("get_all", err, nil)
	}
	return all, nil
}

func (r *ActivityRepository) byIndex(ctx context.Context, op, index, value string) ([]entity.Activity, error) {
	out, err := r.coll.GetAllByIndex(ctx, index, value)
	if err != nil {
		return nil, r.fail(op, err, logrus.Fields{index: value})
	}
	return out, nil
}

func (r *ActivityRepository) GetByCreator(ctx context.Context, creatorID string) ([]entity.Activity, error) {
	return r.byIndex(ctx, "get_by_creator", IndexCreatorID, creatorID)
}

func (r *ActivityRepository) GetByCategory(ctx context.Context, category string) ([]entity.Activity, error) {
	return r.byIndex(ctx, "get_by_category", IndexCategory, category)
}

func (r *ActivityRepository) GetByStatus(ctx context.Context, status entity.ActivityStatus) ([]entity.Activity, error) {
	return r.byIndex(ctx, "get_by_status", IndexStatus, string(status))
}

func (r *ActivityRepository) GetByDate(ctx context.Context, date string) ([]entity.Activity, error) {
	return r.byIndex(ctx, "get_by_date", IndexDate, date)
}

// Save fully replaces the stored activity, keeping CreatedAt the same way
// UserRepository.Save does. No field is validated here.
func (r *ActivityRepository) Save(ctx context.Context, a *entity.Activity) error {
	if a.CreatedAt == 0 {
		existing, err := r.coll.Get(ctx, a.ID)
		if err != nil {
			return r.fail("save", err, logrus.Fields{"activity_id": a.ID})
		}
		if existing != nil && existing.CreatedAt != 0 {
			a.CreatedAt = existing.CreatedAt
		} else {
			a.CreatedAt = r.opts.now().Unix()
		}
	}
	if err := r.coll.Put(ctx, *a); err != nil {
		return r.fail("save", err, logrus.Fields{"activity_id": a.ID})
	}
	return nil
}

func (r *ActivityRepository) Delete(ctx context.Context, id string) error {
	if err := r.coll.Delete(ctx, id); err != nil {
		return r.fail("delete", err, logrus.Fields{"activity_id": id})
	}
	return nil
}

func (r *ActivityRepository) Count(ctx context.Context) (int, error) {
	n, err := r.coll.Count(ctx)
	if err != nil {
		return 0, r.fail("count", err, nil)
	}
	return n, nil
}

func (r *ActivityRepository) Clear(ctx context.Context) error {
	if err := r.coll.Clear(ctx); err != nil {
		return r.fail("clear", err, nil)
	}
	return nil
}

func (r *ActivityRepository) Seed(ctx context.Context) error {
	n, err := r.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	return r.insertDemo(ctx)
}

func (r *ActivityRepository) Reset(ctx context.Context) error {
	if err := r.Clear(ctx); err != nil {
		return err
	}
	r.coll.Invalidate()
	return r.insertDemo(ctx)
}

func (r *ActivityRepository) insertDemo(ctx context.Context) error {
	for _, a := range demoActivities(r.opts.now()) {
		if err := r.coll.Put(ctx, a); err != nil {
			return r.fail("seed", err, logrus.Fields{"activity_id": a.ID})
		}
	}
	return nil
}
