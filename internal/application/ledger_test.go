package application

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/oksasatya/campus-events/internal/domain/entity"
	"github.com/oksasatya/campus-events/internal/infrastructure/memory"
	"github.com/oksasatya/campus-events/internal/metrics"
	"github.com/oksasatya/campus-events/pkg/helpers"
)

type LedgerSuite struct {
	suite.Suite
	ctx      context.Context
	users    *memory.UserRepository
	events   *memory.EventRepository
	regs     *memory.RegistrationRepository
	notifier *recordingNotifier
	rec      *countingRecorder
	ledger   *Ledger
}

func TestLedgerSuite(t *testing.T) {
	suite.Run(t, new(LedgerSuite))
}

func (s *LedgerSuite) SetupTest() {
	s.ctx = context.Background()
	s.users = memory.NewUserRepository()
	s.events = memory.NewEventRepository()
	s.regs = memory.NewRegistrationRepository()
	s.notifier = &recordingNotifier{}
	s.rec = newCountingRecorder()
	s.ledger = NewLedger(s.users, s.events, s.regs, s.notifier, s.rec, helpers.NewDiscardLogger())

	s.addUser("u1")
	s.addUser("u2")
	s.addEvent("e1", "2026-11-02")
	s.addEvent("e2", "2026-11-20")
}

func (s *LedgerSuite) addUser(id string) {
	s.Require().NoError(s.users.Create(s.ctx, &entity.User{ID: id, Email: id + "@kcau.ac.ke", Name: id, Role: entity.RoleUser}))
}

func (s *LedgerSuite) addEvent(id, date string) {
	s.Require().NoError(s.events.Create(s.ctx, &entity.Event{ID: id, Name: "Event " + id, Date: date, Location: "Hall"}))
}

func eventIDs(events []*entity.Event) []string {
	ids := make([]string, 0, len(events))
	for _, e := range events {
		ids = append(ids, e.ID)
	}
	return ids
}

func (s *LedgerSuite) TestRegister() {
	s.Run("creates exactly one registration", func() {
		s.Require().NoError(s.ledger.Register(s.ctx, "u1", "e1"))

		ok, err := s.ledger.IsRegistered(s.ctx, "u1", "e1")
		s.Require().NoError(err)
		s.True(ok)
		s.Equal(1, s.regs.Len())
	})

	s.Run("second call is a duplicate and mutates nothing", func() {
		err := s.ledger.Register(s.ctx, "u1", "e1")
		s.ErrorIs(err, ErrAlreadyRegistered)
		s.Equal(1, s.regs.Len())
	})

	s.Run("missing user id is a validation failure", func() {
		s.ErrorIs(s.ledger.Register(s.ctx, "  ", "e1"), ErrUserIDRequired)
	})

	s.Run("unknown event is reported before unknown user", func() {
		s.ErrorIs(s.ledger.Register(s.ctx, "ghost", "nope"), ErrEventNotFound)
		s.ErrorIs(s.ledger.Register(s.ctx, "ghost", "e1"), ErrUserNotFound)
		s.Equal(1, s.regs.Len())
	})

	s.Equal(map[string]int{
		metrics.OutcomeOK:        1,
		metrics.OutcomeDuplicate: 1,
		metrics.OutcomeInvalid:   1,
		metrics.OutcomeNotFound:  2,
	}, s.rec.registrations)
	s.Equal([]NoticeKind{NoticeRegistered}, s.notifier.kinds())
}

func (s *LedgerSuite) TestDeregister() {
	s.Run("without a registration fails and mutates nothing", func() {
		s.ErrorIs(s.ledger.Deregister(s.ctx, "u1", "e1"), ErrNotRegistered)
		s.Equal(0, s.regs.Len())
	})

	s.Run("removes exactly that registration", func() {
		s.Require().NoError(s.ledger.Register(s.ctx, "u1", "e1"))
		s.Require().NoError(s.ledger.Register(s.ctx, "u1", "e2"))

		s.Require().NoError(s.ledger.Deregister(s.ctx, "u1", "e1"))

		s.Equal(1, s.regs.Len())
		ok, err := s.ledger.IsRegistered(s.ctx, "u1", "e2")
		s.Require().NoError(err)
		s.True(ok)
	})

	s.Run("unknown user", func() {
		s.ErrorIs(s.ledger.Deregister(s.ctx, "ghost", "e2"), ErrUserNotFound)
	})

	s.Equal(map[string]int{
		metrics.OutcomeOK:            1,
		metrics.OutcomeNotRegistered: 1,
		metrics.OutcomeNotFound:      1,
	}, s.rec.deregistrations)
}

func (s *LedgerSuite) TestStateMachineCycle() {
	for i := 0; i < 3; i++ {
		s.Require().NoError(s.ledger.Register(s.ctx, "u2", "e1"))
		events, err := s.ledger.ListRegisteredEvents(s.ctx, "u2")
		s.Require().NoError(err)
		s.Equal([]string{"e1"}, eventIDs(events))

		s.Require().NoError(s.ledger.Deregister(s.ctx, "u2", "e1"))
		events, err = s.ledger.ListRegisteredEvents(s.ctx, "u2")
		s.Require().NoError(err)
		s.Empty(events)
	}
	s.Len(s.notifier.kinds(), 6)
}

func (s *LedgerSuite) TestListRegisteredEvents() {
	s.Require().NoError(s.ledger.Register(s.ctx, "u1", "e2"))
	s.Require().NoError(s.ledger.Register(s.ctx, "u1", "e1"))
	s.Require().NoError(s.ledger.Register(s.ctx, "u2", "e2"))

	s.Run("ordered by event id and repeatable", func() {
		first, err := s.ledger.ListRegisteredEvents(s.ctx, "u1")
		s.Require().NoError(err)
		second, err := s.ledger.ListRegisteredEvents(s.ctx, "u1")
		s.Require().NoError(err)

		s.Equal([]string{"e1", "e2"}, eventIDs(first))
		s.Equal(eventIDs(first), eventIDs(second))
	})

	s.Run("unknown user", func() {
		_, err := s.ledger.ListRegisteredEvents(s.ctx, "ghost")
		s.ErrorIs(err, ErrUserNotFound)
	})

	s.Run("skips events deleted directly from the store", func() {
		s.Require().NoError(s.events.Delete(s.ctx, "e1"))

		events, err := s.ledger.ListRegisteredEvents(s.ctx, "u1")
		s.Require().NoError(err)
		s.Equal([]string{"e2"}, eventIDs(events))
		s.Equal(1, s.rec.dangling["event"])
	})
}

func (s *LedgerSuite) TestListEventRegistrants() {
	s.Require().NoError(s.ledger.Register(s.ctx, "u2", "e1"))
	s.Require().NoError(s.ledger.Register(s.ctx, "u1", "e1"))

	ids, err := s.ledger.ListEventRegistrants(s.ctx, "e1")
	s.Require().NoError(err)
	s.Equal([]string{"u1", "u2"}, ids)

	s.Require().NoError(s.users.Delete(s.ctx, "u1"))
	ids, err = s.ledger.ListEventRegistrants(s.ctx, "e1")
	s.Require().NoError(err)
	s.Equal([]string{"u2"}, ids)
	s.Equal(1, s.rec.dangling["user"])

	_, err = s.ledger.ListEventRegistrants(s.ctx, "missing")
	s.ErrorIs(err, ErrEventNotFound)
}

func (s *LedgerSuite) TestConcurrentRegisterHasOneWinner() {
	const goroutines = 50

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		dupes     int
	)
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			err := s.ledger.Register(s.ctx, "u1", "e1")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, ErrAlreadyRegistered):
				dupes++
			default:
				s.T().Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	s.Equal(1, successes)
	s.Equal(goroutines-1, dupes)
	s.Equal(1, s.regs.Len())
}

func (s *LedgerSuite) TestStoreFailures() {
	flaky := &flakyRegistrations{RegistrationRepository: s.regs, failCreate: true, failList: true}
	ledger := NewLedger(s.users, s.events, flaky, nil, s.rec, helpers.NewDiscardLogger())

	err := ledger.Register(s.ctx, "u1", "e1")
	var se *StoreError
	s.Require().ErrorAs(err, &se)
	s.ErrorIs(err, errStoreDown)
	s.Equal(0, s.regs.Len(), "failed write leaves no registration")

	_, err = ledger.ListRegisteredEvents(s.ctx, "u1")
	s.ErrorAs(err, &se)
	s.Equal(1, s.rec.registrations[metrics.OutcomeError])
}

func (s *LedgerSuite) TestNotifierFailureDoesNotFailRegister() {
	s.notifier.err = errors.New("broker unavailable")

	s.NoError(s.ledger.Register(s.ctx, "u1", "e1"))
	s.NoError(s.ledger.Deregister(s.ctx, "u1", "e1"))
	s.Equal([]NoticeKind{NoticeRegistered, NoticeDeregistered}, s.notifier.kinds())
}

func (s *LedgerSuite) TestCancelledContextIsStoreFailure() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	err := s.ledger.Register(ctx, "u1", "e1")
	var se *StoreError
	s.ErrorAs(err, &se)
	s.ErrorIs(err, context.Canceled)
}
