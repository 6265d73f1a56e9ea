// Package storetest holds the behaviour every store driver must share.
// Driver packages run RepositorySuite against their own repositories.
package storetest

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/oksasatya/campus-events/internal/domain/entity"
	"github.com/oksasatya/campus-events/internal/domain/repository"
	"github.com/oksasatya/campus-events/internal/infrastructure/store"
)

// RepositorySuite exercises a *store.Repositories. New is called before
// every test and must return empty repositories.
type RepositorySuite struct {
	suite.Suite
	New   func() *store.Repositories
	repos *store.Repositories
	ctx   context.Context
}

func (s *RepositorySuite) SetupTest() {
	s.ctx = context.Background()
	s.repos = s.New()
}

func (s *RepositorySuite) user(id, email string) *entity.User {
	u := &entity.User{ID: id, Email: email, Name: "name " + id, Password: "hash", Role: entity.RoleUser}
	s.Require().NoError(s.repos.Users.Create(s.ctx, u))
	return u
}

func (s *RepositorySuite) event(id, date string) *entity.Event {
	now := time.Now().UTC()
	e := &entity.Event{ID: id, Name: "event " + id, Date: date, Time: "10:00", Location: "hall", Description: "d", CreatedAt: now, UpdatedAt: now}
	s.Require().NoError(s.repos.Events.Create(s.ctx, e))
	return e
}

func (s *RepositorySuite) TestUserLifecycle() {
	s.user("ua", "ann@kcau.ac.ke")

	got, err := s.repos.Users.GetByEmail(s.ctx, "ann@kcau.ac.ke")
	s.Require().NoError(err)
	s.Equal("ua", got.ID)

	err = s.repos.Users.Create(s.ctx, &entity.User{ID: "ub", Email: "ann@kcau.ac.ke", Name: "dup", Role: entity.RoleUser})
	s.ErrorIs(err, repository.ErrDuplicate)

	got.Name = "Ann K"
	s.Require().NoError(s.repos.Users.Update(s.ctx, got))
	s.ErrorIs(s.repos.Users.Update(s.ctx, &entity.User{ID: "nobody", Email: "x@kcau.ac.ke", Role: entity.RoleUser}), repository.ErrNotFound)

	s.Require().NoError(s.repos.Users.SetRole(s.ctx, "ua", entity.RoleAdmin))
	got, err = s.repos.Users.GetByID(s.ctx, "ua")
	s.Require().NoError(err)
	s.True(got.IsAdmin())
	s.Equal("Ann K", got.Name)

	s.Require().NoError(s.repos.Users.Delete(s.ctx, "ua"))
	_, err = s.repos.Users.GetByID(s.ctx, "ua")
	s.ErrorIs(err, repository.ErrNotFound)
	s.ErrorIs(s.repos.Users.Delete(s.ctx, "ua"), repository.ErrNotFound)
}

func (s *RepositorySuite) TestEventsListedByDate() {
	s.event("ec", "2026-12-01")
	s.event("ea", "2026-11-15")
	s.event("eb", "2026-11-15")

	list, err := s.repos.Events.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(list, 3)
	s.Equal([]string{"ea", "eb", "ec"}, []string{list[0].ID, list[1].ID, list[2].ID})

	e := list[2]
	e.Location = "annex"
	s.Require().NoError(s.repos.Events.Update(s.ctx, e))
	got, err := s.repos.Events.GetByID(s.ctx, "ec")
	s.Require().NoError(err)
	s.Equal("annex", got.Location)

	s.Require().NoError(s.repos.Events.Delete(s.ctx, "ec"))
	_, err = s.repos.Events.GetByID(s.ctx, "ec")
	s.ErrorIs(err, repository.ErrNotFound)
}

func (s *RepositorySuite) TestClubUpdatesKeepAppendOrder() {
	now := time.Now().UTC().Truncate(time.Millisecond)
	c := &entity.Club{ID: "ca", Name: "chess", Description: "d", ContactInfo: entity.ContactInfo{Email: "c@kcau.ac.ke", Phone: "0700"}, CreatedAt: now, UpdatedAt: now}
	s.Require().NoError(s.repos.Clubs.Create(s.ctx, c))

	s.Require().NoError(s.repos.Clubs.AppendUpdate(s.ctx, "ca", entity.ClubUpdate{Message: "first", Date: now}))
	s.Require().NoError(s.repos.Clubs.AppendUpdate(s.ctx, "ca", entity.ClubUpdate{Message: "second", Date: now.Add(time.Second)}))
	s.ErrorIs(s.repos.Clubs.AppendUpdate(s.ctx, "missing", entity.ClubUpdate{Message: "x", Date: now}), repository.ErrNotFound)

	c.Name = "chess society"
	s.Require().NoError(s.repos.Clubs.Update(s.ctx, c))

	got, err := s.repos.Clubs.GetByID(s.ctx, "ca")
	s.Require().NoError(err)
	s.Equal("chess society", got.Name)
	s.Require().Len(got.Updates, 2)
	s.Equal("first", got.Updates[0].Message)
	s.Equal("second", got.Updates[1].Message)
}

func (s *RepositorySuite) TestRegistrationConditionalWrites() {
	reg := &entity.Registration{UserID: "ua", EventID: "ea", RegisteredAt: time.Now().UTC()}
	s.Require().NoError(s.repos.Registrations.Create(s.ctx, reg))
	s.ErrorIs(s.repos.Registrations.Create(s.ctx, reg), repository.ErrDuplicate)

	ok, err := s.repos.Registrations.Exists(s.ctx, "ua", "ea")
	s.Require().NoError(err)
	s.True(ok)

	s.Require().NoError(s.repos.Registrations.Delete(s.ctx, "ua", "ea"))
	s.ErrorIs(s.repos.Registrations.Delete(s.ctx, "ua", "ea"), repository.ErrNotFound)

	ok, err = s.repos.Registrations.Exists(s.ctx, "ua", "ea")
	s.Require().NoError(err)
	s.False(ok)
}

func (s *RepositorySuite) TestRegistrationListsAndCascades() {
	now := time.Now().UTC()
	for _, pair := range [][2]string{{"ub", "ea"}, {"ua", "eb"}, {"ua", "ea"}, {"uc", "eb"}} {
		s.Require().NoError(s.repos.Registrations.Create(s.ctx, &entity.Registration{UserID: pair[0], EventID: pair[1], RegisteredAt: now}))
	}

	byUser, err := s.repos.Registrations.ListByUser(s.ctx, "ua")
	s.Require().NoError(err)
	s.Require().Len(byUser, 2)
	s.Equal("ea", byUser[0].EventID)
	s.Equal("eb", byUser[1].EventID)

	byEvent, err := s.repos.Registrations.ListByEvent(s.ctx, "eb")
	s.Require().NoError(err)
	s.Require().Len(byEvent, 2)
	s.Equal("ua", byEvent[0].UserID)
	s.Equal("uc", byEvent[1].UserID)

	empty, err := s.repos.Registrations.ListByUser(s.ctx, "nobody")
	s.Require().NoError(err)
	s.Empty(empty)

	n, err := s.repos.Registrations.DeleteByEvent(s.ctx, "eb")
	s.Require().NoError(err)
	s.EqualValues(2, n)

	n, err = s.repos.Registrations.DeleteByUser(s.ctx, "ua")
	s.Require().NoError(err)
	s.EqualValues(1, n)

	left, err := s.repos.Registrations.ListByEvent(s.ctx, "ea")
	s.Require().NoError(err)
	s.Require().Len(left, 1)
	s.Equal("ub", left[0].UserID)
}

func (s *RepositorySuite) TestConcurrentCreateHasOneWinner() {
	const workers = 20
	var (
		wg   sync.WaitGroup
		won  atomic.Int32
		dups atomic.Int32
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.repos.Registrations.Create(s.ctx, &entity.Registration{UserID: "ua", EventID: "ea", RegisteredAt: time.Now().UTC()})
			switch {
			case err == nil:
				won.Add(1)
			case errors.Is(err, repository.ErrDuplicate):
				dups.Add(1)
			}
		}()
	}
	wg.Wait()

	s.EqualValues(1, won.Load())
	s.EqualValues(workers-1, dups.Load())
}
