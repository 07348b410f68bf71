// Package store holds the typed access modules for users, activities and
// participants, and the Store that owns all three.
package store

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/oksasatya/hocus-focus/internal/storage"
	"github.com/oksasatya/hocus-focus/pkg/helpers"
)

type options struct {
	now          func() time.Time
	hashPassword func(string) (string, error)
}

type Option func(*options)

// WithClock overrides the time source used for createdAt and joinedAt.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithPasswordHasher overrides how seeded demo passwords are hashed.
func WithPasswordHasher(h func(string) (string, error)) Option {
	return func(o *options) { o.hashPassword = h }
}

// Store is the application's single handle on persistence. It is built once
// at startup and passed to whatever needs data access.
type Store struct {
	Users        *UserRepository
	Activities   *ActivityRepository
	Participants *ParticipantRepository

	logger *logrus.Logger
}

// Stats are three independent counts, not a consistent snapshot.
type Stats struct {
	Users        int `json:"users"`
	Activities   int `json:"activities"`
	Participants int `json:"participants"`
}

func New(backend storage.Backend, logger *logrus.Logger, opts ...Option) *Store {
	o := options{now: time.Now, hashPassword: helpers.HashPassword}
	for _, opt := range opts {
		opt(&o)
	}
	if logger == nil {
		logger = helpers.NopLogger()
	}
	return &Store{
		Users:        newUserRepository(backend, logger, o),
		Activities:   newActivityRepository(backend, logger, o),
		Participants: newParticipantRepository(backend, logger, o),
		logger:       logger,
	}
}

// InitAll opens the three collections concurrently and reports the first
// failure.
func (s *Store) InitAll(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.Users.Open(ctx) })
	g.Go(func() error { return s.Activities.Open(ctx) })
	g.Go(func() error { return s.Participants.Open(ctx) })
	if err := g.Wait(); err != nil {
		helpers.LogError(s.logger, "initializing collections failed", err, nil)
		return err
	}
	return nil
}

func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	var err error
	if st.Users, err = s.Users.Count(ctx); err != nil {
		return Stats{}, err
	}
	if st.Activities, err = s.Activities.Count(ctx); err != nil {
		return Stats{}, err
	}
	if st.Participants, err = s.Participants.Count(ctx); err != nil {
		return Stats{}, err
	}
	return st, nil
}

// ClearAll clears the three collections concurrently. A partial failure is
// not rolled back.
func (s *Store) ClearAll(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error { return s.Users.Clear(ctx) })
	g.Go(func() error { return s.Activities.Clear(ctx) })
	g.Go(func() error { return s.Participants.Clear(ctx) })
	if err := g.Wait(); err != nil {
		helpers.LogError(s.logger, "clearing collections failed", err, nil)
		return err
	}
	return nil
}

// SeedAll seeds users, activities and participants in that order. Each
// collection that already holds data is left alone.
func (s *Store) SeedAll(ctx context.Context) error {
	if err := s.Users.Seed(ctx); err != nil {
		return err
	}
	if err := s.Activities.Seed(ctx); err != nil {
		return err
	}
	return s.Participants.Seed(ctx)
}

// ResetAll resets every collection to the demo data.
func (s *Store) ResetAll(ctx context.Context) error {
	if err := s.Users.Reset(ctx); err != nil {
		return err
	}
	if err := s.Activities.Reset(ctx); err != nil {
		return err
	}
	return s.Participants.Reset(ctx)
}
