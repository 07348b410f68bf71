package store

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/hocus-focus/internal/domain/entity"
	"github.com/oksasatya/hocus-focus/internal/domain/repository"
	"github.com/oksasatya/hocus-focus/internal/storage"
	"github.com/oksasatya/hocus-focus/pkg/helpers"
)

var _ repository.UserRepository = (*UserRepository)(nil)

type UserRepository struct {
	coll   *storage.Collection[entity.User]
	logger *logrus.Logger
	opts   options
}

func newUserRepository(b storage.Backend, logger *logrus.Logger, opts options) *UserRepository {
	return &UserRepository{coll: storage.NewCollection(b, userDefinition), logger: logger, opts: opts}
}

func (r *UserRepository) fail(op string, err error, fields logrus.Fields) error {
	if fields == nil {
		fields = logrus.Fields{}
	}
	fields["entity"] = UsersCollection
	fields["op"] = op
	helpers.LogError(r.logger, "user store operation failed", err, fields)
	return err
}

// Open declares the users collection if this handle has not yet done so.
func (r *UserRepository) Open(ctx context.Context) error {
	if err := r.coll.Open(ctx); err != nil {
		return r.fail("open", err, nil)
	}
	return nil
}

func (r *UserRepository) Get(ctx context.Context, id string) (*entity.User, error) {
	u, err := r.coll.Get(ctx, id)
	if err != nil {
		return nil, r.fail("get", err, logrus.Fields{"user_id": id})
	}
	return u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	users, err := r.coll.GetAllByIndex(ctx, IndexEmail, email)
	if err != nil {
		return nil, r.fail("get_by_email", err, nil)
	}
	if len(users) == 0 {
		return nil, nil
	}
	return &users[0], nil
}

func (r *UserRepository) GetAll(ctx context.Context) ([]entity.User, error) {
	users, err := r.coll.GetAll(ctx)
	if err != nil {
		return nil, r.fail("get_all", err, nil)
	}
	return users, nil
}

// Save fully replaces the stored user. CreatedAt is kept from the stored copy
// when the caller leaves it zero, and stamped with the current time for a new
// user.
func (r *UserRepository) Save(ctx context.Context, u *entity.User) error {
	if u.CreatedAt == 0 {
		existing, err := r.coll.Get(ctx, u.ID)
		if err != nil {
			return r.fail("save", err, logrus.Fields{"user_id": u.ID})
		}
		if existing != nil && existing.CreatedAt != 0 {
			u.CreatedAt = existing.CreatedAt
		} else {
			u.CreatedAt = r.opts.now().Unix()
		}
	}
	if err := r.coll.Put(ctx, *u); err != nil {
		return r.fail("save", err, logrus.Fields{"user_id": u.ID})
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	if err := r.coll.Delete(ctx, id); err != nil {
		return r.fail("delete", err, logrus.Fields{"user_id": id})
	}
	return nil
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	n, err := r.coll.Count(ctx)
	if err != nil {
		return 0, r.fail("count", err, nil)
	}
	return n, nil
}

func (r *UserRepository) Clear(ctx context.Context) error {
	if err := r.coll.Clear(ctx); err != nil {
		return r.fail("clear", err, nil)
	}
	return nil
}

// Seed inserts the demo users when the collection is empty and leaves it
// untouched otherwise.
func (r *UserRepository) Seed(ctx context.Context) error {
	n, err := r.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	return r.insertDemo(ctx)
}

// Reset clears the collection, drops the cached handle and seeds again.
// Development use only.
func (r *UserRepository) Reset(ctx context.Context) error {
	if err := r.Clear(ctx); err != nil {
		return err
	}
	r.coll.Invalidate()
	return r.insertDemo(ctx)
}

func (r *UserRepository) insertDemo(ctx context.Context) error {
	now := r.opts.now().Unix()
	for _, u := range demoUsers(now) {
		hash, err := r.opts.hashPassword(u.Password)
		if err != nil {
			return r.fail("seed", err, logrus.Fields{"user_id": u.ID})
		}
		u.Password = hash
		if err := r.coll.Put(ctx, u); err != nil {
			return r.fail("seed", err, logrus.Fields{"user_id": u.ID})
		}
	}
	return nil
}
