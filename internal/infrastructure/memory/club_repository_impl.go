package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/oksasatya/campus-events/internal/domain/entity"
	"github.com/oksasatya/campus-events/internal/domain/repository"
)

type ClubRepository struct {
	mu    sync.RWMutex
	clubs map[string]entity.Club
}

func NewClubRepository() *ClubRepository {
	return &ClubRepository{clubs: make(map[string]entity.Club)}
}

// copyClub detaches the updates slice so callers never share backing arrays.
func copyClub(c entity.Club) *entity.Club {
	c.Updates = append([]entity.ClubUpdate{}, c.Updates...)
	return &c
}

func (r *ClubRepository) Create(ctx context.Context, c *entity.Club) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.clubs[c.ID]; ok {
		return repository.ErrDuplicate
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	if c.Updates == nil {
		c.Updates = []entity.ClubUpdate{}
	}
	r.clubs[c.ID] = *copyClub(*c)
	return nil
}

func (r *ClubRepository) GetByID(ctx context.Context, id string) (*entity.Club, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.clubs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyClub(c), nil
}

func (r *ClubRepository) List(ctx context.Context) ([]*entity.Club, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]*entity.Club, 0, len(r.clubs))
	for _, c := range r.clubs {
		out = append(out, copyClub(c))
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *ClubRepository) Update(ctx context.Context, c *entity.Club) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.clubs[c.ID]
	if !ok {
		return repository.ErrNotFound
	}
	existing.Name = c.Name
	existing.Description = c.Description
	existing.ContactInfo = c.ContactInfo
	existing.UpdatedAt = time.Now().UTC()
	r.clubs[c.ID] = existing
	return nil
}

func (r *ClubRepository) AppendUpdate(ctx context.Context, clubID string, u entity.ClubUpdate) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.clubs[clubID]
	if !ok {
		return repository.ErrNotFound
	}
	existing.Updates = append(append([]entity.ClubUpdate{}, existing.Updates...), u)
	existing.UpdatedAt = time.Now().UTC()
	r.clubs[clubID] = existing
	return nil
}

func (r *ClubRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.clubs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.clubs, id)
	return nil
}

var _ repository.ClubRepository = (*ClubRepository)(nil)
