package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/campus-events/internal/domain/entity"
	"github.com/oksasatya/campus-events/internal/domain/repository"
)

// RegistrationRepository keeps registrations in the flat `registrations` table whose
// primary key is (user_id, event_id). Uniqueness is enforced by the key itself.
type RegistrationRepository struct {
	pool *pgxpool.Pool
}

func NewRegistrationRepository(pool *pgxpool.Pool) *RegistrationRepository {
	return &RegistrationRepository{pool: pool}
}

func (r *RegistrationRepository) Create(ctx context.Context, reg *entity.Registration) error {
	res, err := r.pool.Exec(ctx, `
		INSERT INTO registrations (user_id, event_id, registered_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, event_id) DO NOTHING
	`, reg.UserID, reg.EventID, reg.RegisteredAt)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrDuplicate
	}
	return nil
}

func (r *RegistrationRepository) Delete(ctx context.Context, userID, eventID string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM registrations WHERE user_id = $1 AND event_id = $2`, userID, eventID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *RegistrationRepository) Exists(ctx context.Context, userID, eventID string) (bool, error) {
	var ok bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM registrations WHERE user_id = $1 AND event_id = $2)
	`, userID, eventID).Scan(&ok)
	return ok, err
}

func (r *RegistrationRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Registration, error) {
	return r.list(ctx, `
		SELECT user_id, event_id, registered_at
		FROM registrations
		WHERE user_id = $1
		ORDER BY user_id, event_id
	`, userID)
}

func (r *RegistrationRepository) ListByEvent(ctx context.Context, eventID string) ([]*entity.Registration, error) {
	return r.list(ctx, `
		SELECT user_id, event_id, registered_at
		FROM registrations
		WHERE event_id = $1
		ORDER BY event_id, user_id
	`, eventID)
}

func (r *RegistrationRepository) list(ctx context.Context, query string, arg string) ([]*entity.Registration, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Registration, error) {
		reg := &entity.Registration{}
		err := row.Scan(&reg.UserID, &reg.EventID, &reg.RegisteredAt)
		return reg, err
	})
}

func (r *RegistrationRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	res, err := r.pool.Exec(ctx, `DELETE FROM registrations WHERE user_id = $1`, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected(), nil
}

func (r *RegistrationRepository) DeleteByEvent(ctx context.Context, eventID string) (int64, error) {
	res, err := r.pool.Exec(ctx, `DELETE FROM registrations WHERE event_id = $1`, eventID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected(), nil
}

var _ repository.RegistrationRepository = (*RegistrationRepository)(nil)
