package application

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/campus-events/internal/domain/entity"
	repo "github.com/oksasatya/campus-events/internal/domain/repository"
)

type ClubInput struct {
	Name        string
	Description string
	ContactInfo entity.ContactInfo
}

type ClubPatch struct {
	Name         *string
	Description  *string
	ContactEmail *string
	ContactPhone *string
}

type ClubService struct {
	Clubs repo.ClubRepository
	Now   func() time.Time
}

func NewClubService(clubs repo.ClubRepository) *ClubService {
	return &ClubService{Clubs: clubs, Now: func() time.Time { return time.Now().UTC() }}
}

func (s *ClubService) Create(ctx context.Context, in ClubInput) (*entity.Club, error) {
	c := &entity.Club{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		ContactInfo: in.ContactInfo,
		Updates:     []entity.ClubUpdate{},
	}
	if err := s.Clubs.Create(ctx, c); err != nil {
		return nil, storeErr("create club", err)
	}
	return c, nil
}

func (s *ClubService) List(ctx context.Context) ([]*entity.Club, error) {
	clubs, err := s.Clubs.List(ctx)
	if err != nil {
		return nil, storeErr("list clubs", err)
	}
	return clubs, nil
}

func (s *ClubService) Get(ctx context.Context, id string) (*entity.Club, error) {
	c, err := s.Clubs.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr("get club", err, ErrClubNotFound)
	}
	return c, nil
}

func (s *ClubService) Update(ctx context.Context, id string, p ClubPatch) (*entity.Club, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Name != nil {
		c.Name = strings.TrimSpace(*p.Name)
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.ContactEmail != nil {
		c.ContactInfo.Email = *p.ContactEmail
	}
	if p.ContactPhone != nil {
		c.ContactInfo.Phone = *p.ContactPhone
	}
	if err := s.Clubs.Update(ctx, c); err != nil {
		return nil, lookupErr("update club", err, ErrClubNotFound)
	}
	return c, nil
}

func (s *ClubService) Delete(ctx context.Context, id string) error {
	if err := s.Clubs.Delete(ctx, id); err != nil {
		return lookupErr("delete club", err, ErrClubNotFound)
	}
	return nil
}

// AddUpdate appends an announcement to the club's update log.
func (s *ClubService) AddUpdate(ctx context.Context, id, message string) (entity.ClubUpdate, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return entity.ClubUpdate{}, &ValidationError{Message: "Update message is required"}
	}
	u := entity.ClubUpdate{Message: message, Date: s.Now()}
	if err := s.Clubs.AppendUpdate(ctx, id, u); err != nil {
		return entity.ClubUpdate{}, lookupErr("append club update", err, ErrClubNotFound)
	}
	return u, nil
}
