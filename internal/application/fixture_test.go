package application_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/hocus-focus/internal/application"
	"github.com/oksasatya/hocus-focus/internal/infrastructure/memory"
	"github.com/oksasatya/hocus-focus/internal/infrastructure/session"
	"github.com/oksasatya/hocus-focus/internal/infrastructure/store"
	"github.com/oksasatya/hocus-focus/pkg/helpers"
)

func cheapHash(p string) (string, error) {
	return helpers.HashPasswordWithCost(p, bcrypt.MinCost)
}

type publishedEvent struct {
	Type string
	Body application.MembershipEvent
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) PublishJSON(_ context.Context, eventType string, body any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{Type: eventType, Body: body.(application.MembershipEvent)})
	return nil
}

type fixture struct {
	store      *store.Store
	users      *application.UserService
	activities *application.ActivityService
	membership *application.MembershipService
	events     *recordingPublisher
}

func newFixture(t *testing.T, seed bool) *fixture {
	t.Helper()
	ctx := context.Background()
	st := store.New(memory.NewBackend(), nil, store.WithPasswordHasher(cheapHash))
	require.NoError(t, st.InitAll(ctx))
	if seed {
		require.NoError(t, st.SeedAll(ctx))
	}

	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	users := application.NewUserService(st.Users, st.Activities, st.Participants, session.NewMemoryStore(), jwt, time.Hour, nil)
	users.HashPassword = cheapHash
	events := &recordingPublisher{}

	return &fixture{
		store:      st,
		users:      users,
		activities: application.NewActivityService(st.Users, st.Activities, st.Participants, nil),
		membership: application.NewMembershipService(st.Users, st.Activities, st.Participants, events, nil),
		events:     events,
	}
}
