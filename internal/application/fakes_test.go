package application

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/oksasatya/campus-events/internal/domain/entity"
	"github.com/oksasatya/campus-events/internal/infrastructure/memory"
)

var errStoreDown = errors.New("connection refused")

// flakyRegistrations fails the marked operations and delegates the rest.
type flakyRegistrations struct {
	*memory.RegistrationRepository
	failCreate bool
	failList   bool
	failDelete bool
}

func (f *flakyRegistrations) Create(ctx context.Context, r *entity.Registration) error {
	if f.failCreate {
		return errStoreDown
	}
	return f.RegistrationRepository.Create(ctx, r)
}

func (f *flakyRegistrations) ListByUser(ctx context.Context, userID string) ([]*entity.Registration, error) {
	if f.failList {
		return nil, errStoreDown
	}
	return f.RegistrationRepository.ListByUser(ctx, userID)
}

func (f *flakyRegistrations) DeleteByEvent(ctx context.Context, eventID string) (int64, error) {
	if f.failDelete {
		return 0, errStoreDown
	}
	return f.RegistrationRepository.DeleteByEvent(ctx, eventID)
}

type recordingNotifier struct {
	mu      sync.Mutex
	notices []RegistrationNotice
	err     error
}

func (n *recordingNotifier) NotifyRegistration(_ context.Context, notice RegistrationNotice) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, notice)
	return n.err
}

func (n *recordingNotifier) kinds() []NoticeKind {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]NoticeKind, 0, len(n.notices))
	for _, notice := range n.notices {
		out = append(out, notice.Kind)
	}
	return out
}

type countingRecorder struct {
	mu              sync.Mutex
	registrations   map[string]int
	deregistrations map[string]int
	dangling        map[string]int
	cascaded        map[string]int64
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{
		registrations:   map[string]int{},
		deregistrations: map[string]int{},
		dangling:        map[string]int{},
		cascaded:        map[string]int64{},
	}
}

func (c *countingRecorder) RecordRegistration(outcome string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.registrations[outcome]++
}

func (c *countingRecorder) RecordDeregistration(outcome string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deregistrations[outcome]++
}

func (c *countingRecorder) RecordDanglingSkipped(kind string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dangling[kind]++
}

func (c *countingRecorder) RecordCascadeDeleted(kind string, n int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cascaded[kind] += n
}

func (c *countingRecorder) RecordHTTPStatus(int) {}

func (c *countingRecorder) RecordRequestLatency(string, time.Duration) {}
