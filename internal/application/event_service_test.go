package application

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/campus-events/internal/domain/entity"
	"github.com/oksasatya/campus-events/internal/infrastructure/memory"
	"github.com/oksasatya/campus-events/pkg/helpers"
)

type fakeIndex struct {
	indexed map[string]string
	removed []string
	hits    []string
}

func (f *fakeIndex) IndexEvent(_ context.Context, e *entity.Event) error {
	if f.indexed == nil {
		f.indexed = map[string]string{}
	}
	f.indexed[e.ID] = e.Name
	return nil
}

func (f *fakeIndex) RemoveEvent(_ context.Context, id string) error {
	f.removed = append(f.removed, id)
	return nil
}

func (f *fakeIndex) SearchEvents(_ context.Context, _ string, _ int) ([]string, error) {
	return f.hits, nil
}

type fakePosters struct {
	path string
	body string
}

func (f *fakePosters) Upload(_ context.Context, objectPath, _ string, r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.path, f.body = objectPath, string(b)
	return "https://cdn.test/" + objectPath, nil
}

type eventFixture struct {
	events  *memory.EventRepository
	regs    *memory.RegistrationRepository
	index   *fakeIndex
	posters *fakePosters
	rec     *countingRecorder
	svc     *EventService
}

func newEventFixture() *eventFixture {
	f := &eventFixture{
		events:  memory.NewEventRepository(),
		regs:    memory.NewRegistrationRepository(),
		index:   &fakeIndex{},
		posters: &fakePosters{},
		rec:     newCountingRecorder(),
	}
	f.svc = NewEventService(f.events, f.regs, f.index, f.posters, f.rec, helpers.NewDiscardLogger())
	return f
}

func TestEventServiceCRUD(t *testing.T) {
	ctx := context.Background()
	f := newEventFixture()

	e, err := f.svc.Create(ctx, EventInput{Name: " Tech Expo ", Date: "2026-12-01", Time: "10:00", Location: "Library", Description: "Demos"})
	require.NoError(t, err)
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, "Tech Expo", e.Name)
	assert.Equal(t, "Tech Expo", f.index.indexed[e.ID])

	loc := "Main Hall"
	updated, err := f.svc.Update(ctx, e.ID, EventPatch{Location: &loc})
	require.NoError(t, err)
	assert.Equal(t, "Main Hall", updated.Location)
	assert.Equal(t, "2026-12-01", updated.Date, "unset fields are kept")

	_, err = f.svc.Update(ctx, "missing", EventPatch{Location: &loc})
	assert.ErrorIs(t, err, ErrEventNotFound)

	_, err = f.svc.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrEventNotFound)

	list, err := f.svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestEventServiceDeleteCascades(t *testing.T) {
	ctx := context.Background()
	f := newEventFixture()

	e, err := f.svc.Create(ctx, EventInput{Name: "Gala", Date: "2026-12-05", Location: "Hall", Description: "Dinner"})
	require.NoError(t, err)
	require.NoError(t, f.regs.Create(ctx, &entity.Registration{UserID: "u1", EventID: e.ID}))
	require.NoError(t, f.regs.Create(ctx, &entity.Registration{UserID: "u2", EventID: e.ID}))
	require.NoError(t, f.regs.Create(ctx, &entity.Registration{UserID: "u1", EventID: "other"}))

	require.NoError(t, f.svc.Delete(ctx, e.ID))

	assert.Equal(t, 1, f.regs.Len())
	assert.Equal(t, int64(2), f.rec.cascaded["event"])
	assert.Equal(t, []string{e.ID}, f.index.removed)

	assert.ErrorIs(t, f.svc.Delete(ctx, e.ID), ErrEventNotFound)
}

func TestEventServiceDeleteCascadeFailureIsNotSurfaced(t *testing.T) {
	ctx := context.Background()
	f := newEventFixture()
	flaky := &flakyRegistrations{RegistrationRepository: f.regs, failDelete: true}
	svc := NewEventService(f.events, flaky, nil, nil, nil, helpers.NewDiscardLogger())

	e, err := svc.Create(ctx, EventInput{Name: "Gala", Date: "2026-12-05", Location: "Hall", Description: "Dinner"})
	require.NoError(t, err)
	require.NoError(t, f.regs.Create(ctx, &entity.Registration{UserID: "u1", EventID: e.ID}))

	assert.NoError(t, svc.Delete(ctx, e.ID))
	assert.Equal(t, 1, f.regs.Len(), "orphan is left for listings to filter")
}

func TestEventServiceSearch(t *testing.T) {
	ctx := context.Background()
	f := newEventFixture()

	e, err := f.svc.Create(ctx, EventInput{Name: "Robotics", Date: "2026-10-30", Location: "Lab", Description: "Bots"})
	require.NoError(t, err)
	f.index.hits = []string{"stale", e.ID}

	found, err := f.svc.Search(ctx, "robot", 0)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, e.ID, found[0].ID)

	noIndex := NewEventService(f.events, f.regs, nil, nil, nil, nil)
	found, err = noIndex.Search(ctx, "robot", 10)
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestEventServiceUploadPoster(t *testing.T) {
	ctx := context.Background()
	f := newEventFixture()

	e, err := f.svc.Create(ctx, EventInput{Name: "Concert", Date: "2026-11-11", Location: "Field", Description: "Music"})
	require.NoError(t, err)

	url, err := f.svc.UploadPoster(ctx, e.ID, strings.NewReader("png-bytes"), "Poster.PNG", "image/png")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(f.posters.path, "posters/"+e.ID+"/"))
	assert.True(t, strings.HasSuffix(f.posters.path, ".png"))
	assert.Equal(t, "png-bytes", f.posters.body)

	stored, err := f.svc.Get(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, url, stored.PosterURL)

	_, err = f.svc.UploadPoster(ctx, "missing", strings.NewReader("x"), "a.png", "image/png")
	assert.ErrorIs(t, err, ErrEventNotFound)

	disabled := NewEventService(f.events, f.regs, nil, nil, nil, nil)
	_, err = disabled.UploadPoster(ctx, e.ID, strings.NewReader("x"), "a.png", "image/png")
	assert.ErrorIs(t, err, ErrPosterStorageDisabled)
}
