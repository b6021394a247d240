package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	bookingerrors "securebook/internal/booking/errors"
	"securebook/pkg/model"
)

const defaultSweepInterval = 10 * time.Minute

type memoryDraftRepository struct {
	mu     sync.RWMutex
	states map[string]*model.FormState
	ttl    time.Duration
	now    func() time.Time
	stopCh chan struct{}
	once   sync.Once
}

// MemoryDraftRepository keeps form state in process. States idle for longer
// than ttl are swept until Stop is called.
type MemoryDraftRepository interface {
	DraftRepository
	Stop()
}

func NewMemoryDraftRepository(ttl time.Duration) MemoryDraftRepository {
	return newMemoryDraftRepository(ttl, defaultSweepInterval, time.Now)
}

func newMemoryDraftRepository(ttl, sweepInterval time.Duration, now func() time.Time) *memoryDraftRepository {
	r := &memoryDraftRepository{
		states: make(map[string]*model.FormState),
		ttl:    ttl,
		now:    now,
		stopCh: make(chan struct{}),
	}

	go r.cleanup(sweepInterval)

	return r
}

func (r *memoryDraftRepository) Get(_ context.Context, sessionID, category string) (*model.FormState, error) {
	id := model.FormStateID(sessionID, category)

	r.mu.RLock()
	state, ok := r.states[id]
	r.mu.RUnlock()

	if !ok || r.expired(state) {
		return nil, fmt.Errorf("%w: %s", bookingerrors.ErrNotFound, id)
	}
	return cloneState(state), nil
}

func (r *memoryDraftRepository) Save(_ context.Context, state *model.FormState) error {
	state.ID = model.FormStateID(state.SessionID, state.Category)

	r.mu.Lock()
	defer r.mu.Unlock()

	var current int64
	if stored, ok := r.states[state.ID]; ok && !r.expired(stored) {
		current = stored.Version
	}
	if current != state.Version {
		return fmt.Errorf("%w: %s at version %d, stored %d", bookingerrors.ErrVersionConflict, state.ID, state.Version, current)
	}

	state.Version++
	state.UpdatedAt = r.now().UTC()
	r.states[state.ID] = cloneState(state)
	return nil
}

func (r *memoryDraftRepository) Delete(_ context.Context, sessionID, category string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.states, model.FormStateID(sessionID, category))
	return nil
}

func (r *memoryDraftRepository) Ping(context.Context) error {
	return nil
}

func (r *memoryDraftRepository) Stop() {
	r.once.Do(func() { close(r.stopCh) })
}

func (r *memoryDraftRepository) expired(s *model.FormState) bool {
	return r.now().Sub(s.UpdatedAt) > r.ttl
}

func (r *memoryDraftRepository) sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, state := range r.states {
		if r.expired(state) {
			delete(r.states, id)
			removed++
		}
	}
	return removed
}

func (r *memoryDraftRepository) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.sweep()
		case <-r.stopCh:
			return
		}
	}
}
