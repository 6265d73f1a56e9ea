package repository

import (
	"context"

	"github.com/oksasatya/campus-events/internal/domain/entity"
)

// RegistrationRepository stores user/event registrations in a flat collection
// keyed by the composite (userID, eventID).
//
// Create is a single conditional write: it either inserts the record or fails
// with ErrDuplicate, so concurrent callers for the same pair cannot both win.
// Delete removes exactly the record for the pair or fails with ErrNotFound.
type RegistrationRepository interface {
	Create(ctx context.Context, r *entity.Registration) error
	Delete(ctx context.Context, userID, eventID string) error
	Exists(ctx context.Context, userID, eventID string) (bool, error)
	// ListByUser is ordered by (userID, eventID).
	ListByUser(ctx context.Context, userID string) ([]*entity.Registration, error)
	// ListByEvent is ordered by (eventID, userID).
	ListByEvent(ctx context.Context, eventID string) ([]*entity.Registration, error)
	DeleteByUser(ctx context.Context, userID string) (int64, error)
	DeleteByEvent(ctx context.Context, eventID string) (int64, error)
}
