package application_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/hocus-focus/internal/application"
)

func TestMembershipView(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true)

	cases := []struct {
		viewer string
		want   application.MembershipState
	}{
		{"", application.StateAnonymous},
		{"user-3", application.StateCreator},
		{"user-1", application.StateMember},
		{"user-5", application.StateNotMember},
	}
	for _, tc := range cases {
		got, err := f.membership.View(ctx, tc.viewer, "hiking-1")
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "viewer %q", tc.viewer)
	}

	_, err := f.membership.View(ctx, "user-1", "missing")
	assert.ErrorIs(t, err, application.ErrActivityNotFound)
}

func TestJoinLeave(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true)

	require.NoError(t, f.membership.Join(ctx, "user-5", "hiking-1"))
	ok, err := f.membership.IsMember(ctx, "user-5", "hiking-1")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, f.membership.Leave(ctx, "user-5", "hiking-1"))
	ok, err = f.membership.IsMember(ctx, "user-5", "hiking-1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.Len(t, f.events.events, 2)
	assert.Equal(t, application.EventParticipantJoined, f.events.events[0].Type)
	assert.Equal(t, application.EventParticipantLeft, f.events.events[1].Type)
	assert.Equal(t, "user-5", f.events.events[1].Body.UserID)
	assert.Equal(t, "hiking-1", f.events.events[1].Body.ActivityID)
}

func TestLeaveByNonMemberIsSilent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true)

	require.NoError(t, f.membership.Leave(ctx, "user-5", "hiking-1"))
	require.NoError(t, f.membership.Leave(ctx, "user-5", "missing"))

	n, err := f.store.Participants.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 9, n)
	assert.Empty(t, f.events.events)
}

func TestJoinRejections(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true)

	assert.ErrorIs(t, f.membership.Join(ctx, "user-1", "missing"), application.ErrActivityNotFound)
	assert.ErrorIs(t, f.membership.Join(ctx, "user-3", "hiking-1"), application.ErrCreatorCannotJoin)

	n, err := f.store.Participants.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 9, n)
	assert.Empty(t, f.events.events)
}

func TestToggleRoundTrip(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true)

	res, err := f.membership.Toggle(ctx, "user-6", "yoga-2")
	require.NoError(t, err)
	assert.Equal(t, application.StateMember, res.State)
	require.Len(t, res.Participants, 1)
	assert.Equal(t, "user-6", res.Participants[0].ID)

	res, err = f.membership.Toggle(ctx, "user-6", "yoga-2")
	require.NoError(t, err)
	assert.Equal(t, application.StateNotMember, res.State)
	assert.Empty(t, res.Participants)

	_, err = f.membership.Toggle(ctx, "user-2", "yoga-2")
	assert.ErrorIs(t, err, application.ErrCreatorCannotJoin)
	_, err = f.membership.Toggle(ctx, "user-6", "missing")
	assert.ErrorIs(t, err, application.ErrActivityNotFound)
}

func TestAnonymousCannotJoin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true)

	_, err := f.membership.Toggle(ctx, "", "yoga-2")
	assert.ErrorIs(t, err, application.ErrAnonymous)
	assert.ErrorIs(t, f.membership.Join(ctx, "", "yoga-2"), application.ErrAnonymous)

	people, err := f.store.Participants.GetByActivity(ctx, "yoga-2")
	require.NoError(t, err)
	assert.Empty(t, people)
	assert.Empty(t, f.events.events)
}

func TestMembershipWithoutPublisher(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true)
	f.membership.Events = nil

	require.NoError(t, f.membership.Join(ctx, "user-9", "pilates-5"))
	ok, err := f.membership.IsMember(ctx, "user-9", "pilates-5")
	require.NoError(t, err)
	assert.True(t, ok)
}
