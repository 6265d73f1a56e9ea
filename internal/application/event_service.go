package application

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/campus-events/internal/domain/entity"
	repo "github.com/oksasatya/campus-events/internal/domain/repository"
	"github.com/oksasatya/campus-events/internal/metrics"
)

// EventIndex is the full-text search side of events. Writes are best effort.
type EventIndex interface {
	IndexEvent(ctx context.Context, e *entity.Event) error
	RemoveEvent(ctx context.Context, id string) error
	// SearchEvents returns matching event ids, best match first.
	SearchEvents(ctx context.Context, q string, size int) ([]string, error)
}

// PosterStore persists poster images and returns their public URL.
type PosterStore interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}

type EventInput struct {
	Name        string
	Date        string
	Time        string
	Location    string
	Description string
}

// EventPatch carries the fields to change; nil means keep.
type EventPatch struct {
	Name        *string
	Date        *string
	Time        *string
	Location    *string
	Description *string
}

type EventService struct {
	Events        repo.EventRepository
	Registrations repo.RegistrationRepository
	Index         EventIndex
	Posters       PosterStore
	Metrics       metrics.Recorder
	Logger        *logrus.Logger
}

func NewEventService(events repo.EventRepository, regs repo.RegistrationRepository, index EventIndex, posters PosterStore, rec metrics.Recorder, logger *logrus.Logger) *EventService {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &EventService{Events: events, Registrations: regs, Index: index, Posters: posters, Metrics: rec, Logger: logger}
}

func (s *EventService) Create(ctx context.Context, in EventInput) (*entity.Event, error) {
	e := &entity.Event{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(in.Name),
		Date:        in.Date,
		Time:        in.Time,
		Location:    strings.TrimSpace(in.Location),
		Description: in.Description,
	}
	if err := s.Events.Create(ctx, e); err != nil {
		return nil, storeErr("create event", err)
	}
	s.index(ctx, e)
	return e, nil
}

func (s *EventService) List(ctx context.Context) ([]*entity.Event, error) {
	events, err := s.Events.List(ctx)
	if err != nil {
		return nil, storeErr("list events", err)
	}
	return events, nil
}

func (s *EventService) Get(ctx context.Context, id string) (*entity.Event, error) {
	e, err := s.Events.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr("get event", err, ErrEventNotFound)
	}
	return e, nil
}

func (s *EventService) Update(ctx context.Context, id string, p EventPatch) (*entity.Event, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Name != nil {
		e.Name = strings.TrimSpace(*p.Name)
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Time != nil {
		e.Time = *p.Time
	}
	if p.Location != nil {
		e.Location = strings.TrimSpace(*p.Location)
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if err := s.Events.Update(ctx, e); err != nil {
		return nil, lookupErr("update event", err, ErrEventNotFound)
	}
	s.index(ctx, e)
	return e, nil
}

// Delete removes the event and then its registrations. A failed cascade is
// only logged; listings skip registrations whose event is gone.
func (s *EventService) Delete(ctx context.Context, id string) error {
	if err := s.Events.Delete(ctx, id); err != nil {
		return lookupErr("delete event", err, ErrEventNotFound)
	}

	n, err := s.Registrations.DeleteByEvent(ctx, id)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("event_id", id).Warn("cascade delete of event registrations failed")
		}
	} else {
		s.Metrics.RecordCascadeDeleted("event", n)
	}

	if s.Index != nil {
		if err := s.Index.RemoveEvent(ctx, id); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("event_id", id).Warn("es remove failed")
		}
	}
	return nil
}

// Search runs q against the search index and loads the hits from the store.
// Without an index it returns an empty list.
func (s *EventService) Search(ctx context.Context, q string, size int) ([]*entity.Event, error) {
	if s.Index == nil || strings.TrimSpace(q) == "" {
		return []*entity.Event{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	ids, err := s.Index.SearchEvents(ctx, q, size)
	if err != nil {
		return nil, storeErr("search events", err)
	}

	out := make([]*entity.Event, 0, len(ids))
	for _, id := range ids {
		e, err := s.Events.GetByID(ctx, id)
		if errors.Is(err, repo.ErrNotFound) {
			continue // stale index entry
		}
		if err != nil {
			return nil, storeErr("get event", err)
		}
		out = append(out, e)
	}
	return out, nil
}

// UploadPoster stores the image under posters/<eventID>/ and saves its URL on the event.
func (s *EventService) UploadPoster(ctx context.Context, eventID string, r io.Reader, filename, contentType string) (string, error) {
	if s.Posters == nil {
		return "", ErrPosterStorageDisabled
	}
	e, err := s.Get(ctx, eventID)
	if err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("posters", eventID, uuid.NewString()+ext))
	url, err := s.Posters.Upload(ctx, objectPath, contentType, r)
	if err != nil {
		return "", storeErr("upload poster", err)
	}

	e.PosterURL = url
	if err := s.Events.Update(ctx, e); err != nil {
		return "", lookupErr("update event", err, ErrEventNotFound)
	}
	s.index(ctx, e)
	return url, nil
}

func (s *EventService) index(ctx context.Context, e *entity.Event) {
	if s.Index == nil {
		return
	}
	if err := s.Index.IndexEvent(ctx, e); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("event_id", e.ID).Warn("es index failed")
	}
}
