package repository

import (
	"context"

	"github.com/oksasatya/campus-events/internal/domain/entity"
)

type ClubRepository interface {
	Create(ctx context.Context, c *entity.Club) error
	GetByID(ctx context.Context, id string) (*entity.Club, error)
	// List returns every club ordered by name.
	List(ctx context.Context) ([]*entity.Club, error)
	// Update replaces name, description and contact info; updates are left untouched.
	Update(ctx context.Context, c *entity.Club) error
	// AppendUpdate adds one message to the end of the club's update log.
	AppendUpdate(ctx context.Context, clubID string, u entity.ClubUpdate) error
	Delete(ctx context.Context, id string) error
}
