package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/oksasatya/campus-events/internal/domain/entity"
	"github.com/oksasatya/campus-events/internal/domain/repository"
)

// RegistrationRepository is a flat map keyed by the composite registration key.
// Create checks and inserts under one lock, which is the in-memory form of a
// conditional write.
type RegistrationRepository struct {
	mu   sync.RWMutex
	regs map[string]entity.Registration
}

func NewRegistrationRepository() *RegistrationRepository {
	return &RegistrationRepository{regs: make(map[string]entity.Registration)}
}

func (r *RegistrationRepository) Create(ctx context.Context, reg *entity.Registration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	key := reg.Key()
	if _, ok := r.regs[key]; ok {
		return repository.ErrDuplicate
	}
	r.regs[key] = *reg
	return nil
}

func (r *RegistrationRepository) Delete(ctx context.Context, userID, eventID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	key := entity.RegistrationKey(userID, eventID)
	if _, ok := r.regs[key]; !ok {
		return repository.ErrNotFound
	}
	delete(r.regs, key)
	return nil
}

func (r *RegistrationRepository) Exists(ctx context.Context, userID, eventID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.regs[entity.RegistrationKey(userID, eventID)]
	return ok, nil
}

func (r *RegistrationRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Registration, error) {
	out, err := r.filter(ctx, func(reg entity.Registration) bool { return reg.UserID == userID })
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UserID != out[j].UserID {
			return out[i].UserID < out[j].UserID
		}
		return out[i].EventID < out[j].EventID
	})
	return out, nil
}

func (r *RegistrationRepository) ListByEvent(ctx context.Context, eventID string) ([]*entity.Registration, error) {
	out, err := r.filter(ctx, func(reg entity.Registration) bool { return reg.EventID == eventID })
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].EventID != out[j].EventID {
			return out[i].EventID < out[j].EventID
		}
		return out[i].UserID < out[j].UserID
	})
	return out, nil
}

func (r *RegistrationRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	return r.deleteWhere(ctx, func(reg entity.Registration) bool { return reg.UserID == userID })
}

func (r *RegistrationRepository) DeleteByEvent(ctx context.Context, eventID string) (int64, error) {
	return r.deleteWhere(ctx, func(reg entity.Registration) bool { return reg.EventID == eventID })
}

// Len reports the number of stored registrations.
func (r *RegistrationRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.regs)
}

func (r *RegistrationRepository) filter(ctx context.Context, keep func(entity.Registration) bool) ([]*entity.Registration, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entity.Registration, 0)
	for _, reg := range r.regs {
		if keep(reg) {
			found := reg
			out = append(out, &found)
		}
	}
	return out, nil
}

func (r *RegistrationRepository) deleteWhere(ctx context.Context, match func(entity.Registration) bool) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for key, reg := range r.regs {
		if match(reg) {
			delete(r.regs, key)
			n++
		}
	}
	return n, nil
}

var _ repository.RegistrationRepository = (*RegistrationRepository)(nil)
