package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/campus-events/internal/domain/entity"
	"github.com/oksasatya/campus-events/internal/domain/repository"
)

// ClubRepository stores clubs in `clubs` and their append-only update log in `club_updates`.
type ClubRepository struct {
	pool *pgxpool.Pool
}

func NewClubRepository(pool *pgxpool.Pool) *ClubRepository {
	return &ClubRepository{pool: pool}
}

const clubColumns = `id, name, description, contact_email, contact_phone, created_at, updated_at`

func scanClub(row pgx.Row) (*entity.Club, error) {
	c := &entity.Club{Updates: []entity.ClubUpdate{}}
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.ContactInfo.Email, &c.ContactInfo.Phone,
		&c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *ClubRepository) Create(ctx context.Context, c *entity.Club) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO clubs (id, name, description, contact_email, contact_phone)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`, c.ID, c.Name, c.Description, c.ContactInfo.Email, c.ContactInfo.Phone)

	if err := row.Scan(&c.CreatedAt, &c.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("club %s: %w", c.ID, repository.ErrDuplicate)
		}
		return err
	}
	if c.Updates == nil {
		c.Updates = []entity.ClubUpdate{}
	}
	return nil
}

func (r *ClubRepository) GetByID(ctx context.Context, id string) (*entity.Club, error) {
	c, err := scanClub(r.pool.QueryRow(ctx, `SELECT `+clubColumns+` FROM clubs WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}
	if err := r.attachUpdates(ctx, []*entity.Club{c}); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *ClubRepository) List(ctx context.Context) ([]*entity.Club, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+clubColumns+` FROM clubs ORDER BY name, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*entity.Club, 0)
	for rows.Next() {
		c, err := scanClub(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachUpdates(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// attachUpdates loads the update log for all clubs in one query, in insertion order.
func (r *ClubRepository) attachUpdates(ctx context.Context, clubs []*entity.Club) error {
	if len(clubs) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Club, len(clubs))
	ids := make([]string, 0, len(clubs))
	for _, c := range clubs {
		byID[c.ID] = c
		ids = append(ids, c.ID)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT club_id, message, created_at
		FROM club_updates
		WHERE club_id = ANY($1)
		ORDER BY club_id, id
	`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var clubID string
		var u entity.ClubUpdate
		if err := rows.Scan(&clubID, &u.Message, &u.Date); err != nil {
			return err
		}
		if c, ok := byID[clubID]; ok {
			c.Updates = append(c.Updates, u)
		}
	}
	return rows.Err()
}

func (r *ClubRepository) Update(ctx context.Context, c *entity.Club) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE clubs
		SET name = $1, description = $2, contact_email = $3, contact_phone = $4, updated_at = now()
		WHERE id = $5
	`, c.Name, c.Description, c.ContactInfo.Email, c.ContactInfo.Phone, c.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ClubRepository) AppendUpdate(ctx context.Context, clubID string, u entity.ClubUpdate) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		res, err := tx.Exec(ctx, `UPDATE clubs SET updated_at = now() WHERE id = $1`, clubID)
		if err != nil {
			return err
		}
		if res.RowsAffected() == 0 {
			return repository.ErrNotFound
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO club_updates (club_id, message, created_at)
			VALUES ($1, $2, $3)
		`, clubID, u.Message, u.Date)
		return err
	})
}

func (r *ClubRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM clubs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.ClubRepository = (*ClubRepository)(nil)
