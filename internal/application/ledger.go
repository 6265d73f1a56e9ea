package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/oksasatya/campus-events/internal/domain/entity"
	repo "github.com/oksasatya/campus-events/internal/domain/repository"
	"github.com/oksasatya/campus-events/internal/metrics"
)

// fetchConcurrency bounds parallel lookups when resolving registration lists.
const fetchConcurrency = 8

type NoticeKind string

const (
	NoticeRegistered   NoticeKind = "registered"
	NoticeDeregistered NoticeKind = "deregistered"
)

// RegistrationNotice describes a completed ledger transition.
type RegistrationNotice struct {
	Kind  NoticeKind
	User  *entity.User
	Event *entity.Event
	At    time.Time
}

// RegistrationNotifier is told about every successful Register/Deregister.
type RegistrationNotifier interface {
	NotifyRegistration(ctx context.Context, n RegistrationNotice) error
}

// Ledger owns the user/event registration relationship.
type Ledger struct {
	Users         repo.UserRepository
	Events        repo.EventRepository
	Registrations repo.RegistrationRepository
	Notifier      RegistrationNotifier
	Metrics       metrics.Recorder
	Logger        *logrus.Logger
	Now           func() time.Time
}

func NewLedger(users repo.UserRepository, events repo.EventRepository, regs repo.RegistrationRepository, notifier RegistrationNotifier, rec metrics.Recorder, logger *logrus.Logger) *Ledger {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &Ledger{
		Users:         users,
		Events:        events,
		Registrations: regs,
		Notifier:      notifier,
		Metrics:       rec,
		Logger:        logger,
		Now:           func() time.Time { return time.Now().UTC() },
	}
}

// Register records that userID attends eventID. The event is checked before
// the user; the insert itself is conditional on the pair being absent.
func (l *Ledger) Register(ctx context.Context, userID, eventID string) error {
	user, event, err := l.resolvePair(ctx, userID, eventID)
	if err != nil {
		l.Metrics.RecordRegistration(outcomeOf(err))
		return err
	}

	reg := &entity.Registration{UserID: user.ID, EventID: event.ID, RegisteredAt: l.Now()}
	if err := l.Registrations.Create(ctx, reg); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			err = ErrAlreadyRegistered
		} else {
			err = storeErr("create registration", err)
		}
		l.Metrics.RecordRegistration(outcomeOf(err))
		return err
	}

	l.Metrics.RecordRegistration(metrics.OutcomeOK)
	l.notify(ctx, RegistrationNotice{Kind: NoticeRegistered, User: user, Event: event, At: reg.RegisteredAt})
	return nil
}

// Deregister removes the registration for the pair, failing with
// ErrNotRegistered when there is none.
func (l *Ledger) Deregister(ctx context.Context, userID, eventID string) error {
	user, event, err := l.resolvePair(ctx, userID, eventID)
	if err != nil {
		l.Metrics.RecordDeregistration(outcomeOf(err))
		return err
	}

	if err := l.Registrations.Delete(ctx, user.ID, event.ID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			err = ErrNotRegistered
		} else {
			err = storeErr("delete registration", err)
		}
		l.Metrics.RecordDeregistration(outcomeOf(err))
		return err
	}

	l.Metrics.RecordDeregistration(metrics.OutcomeOK)
	l.notify(ctx, RegistrationNotice{Kind: NoticeDeregistered, User: user, Event: event, At: l.Now()})
	return nil
}

// IsRegistered reports whether the pair currently has a registration.
func (l *Ledger) IsRegistered(ctx context.Context, userID, eventID string) (bool, error) {
	ok, err := l.Registrations.Exists(ctx, userID, eventID)
	if err != nil {
		return false, storeErr("check registration", err)
	}
	return ok, nil
}

// ListRegisteredEvents returns the events userID is registered for, ordered by
// event id. Registrations whose event no longer exists are skipped.
func (l *Ledger) ListRegisteredEvents(ctx context.Context, userID string) ([]*entity.Event, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrUserIDRequired
	}
	if _, err := l.Users.GetByID(ctx, userID); err != nil {
		return nil, lookupErr("get user", err, ErrUserNotFound)
	}

	regs, err := l.Registrations.ListByUser(ctx, userID)
	if err != nil {
		return nil, storeErr("list registrations by user", err)
	}

	events := make([]*entity.Event, len(regs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)
	for i, reg := range regs {
		g.Go(func() error {
			ev, err := l.Events.GetByID(gctx, reg.EventID)
			if errors.Is(err, repo.ErrNotFound) {
				l.skipDangling("event", reg)
				return nil
			}
			if err != nil {
				return storeErr("get event", err)
			}
			events[i] = ev
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]*entity.Event, 0, len(events))
	for _, ev := range events {
		if ev != nil {
			out = append(out, ev)
		}
	}
	return out, nil
}

// ListEventRegistrants returns the ids of users registered for eventID,
// ordered by user id. Registrations whose user no longer exists are skipped.
func (l *Ledger) ListEventRegistrants(ctx context.Context, eventID string) ([]string, error) {
	if _, err := l.Events.GetByID(ctx, eventID); err != nil {
		return nil, lookupErr("get event", err, ErrEventNotFound)
	}

	regs, err := l.Registrations.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, storeErr("list registrations by event", err)
	}

	present := make([]bool, len(regs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)
	for i, reg := range regs {
		g.Go(func() error {
			_, err := l.Users.GetByID(gctx, reg.UserID)
			if errors.Is(err, repo.ErrNotFound) {
				l.skipDangling("user", reg)
				return nil
			}
			if err != nil {
				return storeErr("get user", err)
			}
			present[i] = true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]string, 0, len(regs))
	for i, reg := range regs {
		if present[i] {
			out = append(out, reg.UserID)
		}
	}
	return out, nil
}

func (l *Ledger) resolvePair(ctx context.Context, userID, eventID string) (*entity.User, *entity.Event, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, nil, ErrUserIDRequired
	}
	event, err := l.Events.GetByID(ctx, eventID)
	if err != nil {
		return nil, nil, lookupErr("get event", err, ErrEventNotFound)
	}
	user, err := l.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, lookupErr("get user", err, ErrUserNotFound)
	}
	return user, event, nil
}

func (l *Ledger) notify(ctx context.Context, n RegistrationNotice) {
	if l.Notifier == nil {
		return
	}
	if err := l.Notifier.NotifyRegistration(ctx, n); err != nil && l.Logger != nil {
		l.Logger.WithError(err).WithFields(logrus.Fields{
			"user_id":  n.User.ID,
			"event_id": n.Event.ID,
			"kind":     n.Kind,
		}).Warn("registration notice failed")
	}
}

func (l *Ledger) skipDangling(kind string, reg *entity.Registration) {
	l.Metrics.RecordDanglingSkipped(kind)
	if l.Logger != nil {
		l.Logger.WithFields(logrus.Fields{
			"user_id":  reg.UserID,
			"event_id": reg.EventID,
			"missing":  kind,
		}).Warn("skipping dangling registration")
	}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, ErrUserIDRequired):
		return metrics.OutcomeInvalid
	case errors.Is(err, ErrEventNotFound), errors.Is(err, ErrUserNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, ErrAlreadyRegistered):
		return metrics.OutcomeDuplicate
	case errors.Is(err, ErrNotRegistered):
		return metrics.OutcomeNotRegistered
	default:
		return metrics.OutcomeError
	}
}
