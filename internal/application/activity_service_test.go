package application_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/hocus-focus/internal/application"
	"github.com/oksasatya/hocus-focus/internal/domain/entity"
)

func yogaInput() application.CreateActivityInput {
	return application.CreateActivityInput{
		Title: "Sunset Stretch", Description: "Easy evening flow", Category: "Yoga",
		Location: "Harbour Park", Duration: 45, NumParticipants: 10,
		Date: "2026-05-04", Hour: "19:15",
	}
}

func TestCreateThenListByCategory(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)

	a, err := f.activities.Create(ctx, "user-1", yogaInput())
	require.NoError(t, err)
	assert.Equal(t, entity.ActivityActive, a.Status)
	assert.Equal(t, "yoga", a.Category)
	assert.Equal(t, "user-1", a.CreatorID)

	list, err := f.activities.List(ctx, application.ActivityFilter{Category: "yoga"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, a.ID, list[0].ID)

	groups, err := f.activities.GroupByCategory(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "yoga", groups[0].Category)
}

func TestCreateValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)

	in := yogaInput()
	in.Date = "04.05.2026"
	in.Duration = 0
	_, err := f.activities.Create(ctx, "user-1", in)
	assert.ErrorIs(t, err, application.ErrInvalidInput)

	n, err := f.store.Activities.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestListCombinesFilters(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true)

	all, err := f.activities.List(ctx, application.ActivityFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 15)

	mine, err := f.activities.List(ctx, application.ActivityFilter{CreatorID: "user-7", Category: "pilates"})
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	none, err := f.activities.List(ctx, application.ActivityFilter{CreatorID: "user-7", Category: "yoga"})
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = f.activities.UpdateStatus(ctx, "user-7", "pilates-1", entity.ActivityCompleted)
	require.NoError(t, err)
	done, err := f.activities.List(ctx, application.ActivityFilter{Status: entity.ActivityCompleted})
	require.NoError(t, err)
	require.Len(t, done, 1)
	assert.Equal(t, "pilates-1", done[0].ID)
}

func TestListCategoryIgnoresCase(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true)

	got, err := f.activities.List(ctx, application.ActivityFilter{Category: " Yoga "})
	require.NoError(t, err)
	assert.Len(t, got, 7)

	got, err = f.activities.List(ctx, application.ActivityFilter{CreatorID: "user-5", Category: "PILATES"})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestGroupByCategorySkipsInactive(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true)

	for _, id := range []string{"hiking-1", "hiking-2", "hiking-3"} {
		a, err := f.store.Activities.Get(ctx, id)
		require.NoError(t, err)
		_, err = f.activities.UpdateStatus(ctx, a.CreatorID, id, entity.ActivityCancelled)
		require.NoError(t, err)
	}

	groups, err := f.activities.GroupByCategory(ctx)
	require.NoError(t, err)
	cats := []string{}
	for _, g := range groups {
		cats = append(cats, g.Category)
	}
	assert.Equal(t, []string{"pilates", "yoga"}, cats)
	assert.Len(t, groups[1].Activities, 7)
}

func TestUpdateStatusAndDeleteRequireCreator(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true)

	_, err := f.activities.UpdateStatus(ctx, "user-2", "yoga-1", entity.ActivityCancelled)
	assert.ErrorIs(t, err, application.ErrNotCreator)
	_, err = f.activities.UpdateStatus(ctx, "user-1", "yoga-1", entity.ActivityStatus("paused"))
	assert.ErrorIs(t, err, application.ErrInvalidInput)
	_, err = f.activities.UpdateStatus(ctx, "user-1", "nope", entity.ActivityCancelled)
	assert.ErrorIs(t, err, application.ErrActivityNotFound)

	assert.ErrorIs(t, f.activities.Delete(ctx, "user-2", "yoga-1"), application.ErrNotCreator)
	require.NoError(t, f.activities.Delete(ctx, "user-1", "yoga-1"))
	_, err = f.activities.Get(ctx, "yoga-1")
	assert.ErrorIs(t, err, application.ErrActivityNotFound)
}

func TestDetailWithDanglingCreator(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true)

	require.NoError(t, f.store.Users.Delete(ctx, "user-3"))

	d, err := f.activities.Detail(ctx, "hiking-1")
	require.NoError(t, err)
	assert.Equal(t, "hiking-1", d.Activity.ID)
	assert.Nil(t, d.Creator)
	require.Len(t, d.Participants, 1, "the deleted participant is skipped")
	assert.Equal(t, "user-1", d.Participants[0].ID)

	_, err = f.activities.Detail(ctx, "missing")
	assert.ErrorIs(t, err, application.ErrActivityNotFound)
}
