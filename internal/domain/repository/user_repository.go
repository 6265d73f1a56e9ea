package repository

import (
	"context"

	"github.com/oksasatya/campus-events/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	// Create fails with ErrDuplicate when the email is taken.
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	SetRole(ctx context.Context, id string, role entity.Role) error
	Delete(ctx context.Context, id string) error
}
