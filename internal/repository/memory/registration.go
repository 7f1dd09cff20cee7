package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"eventmanagement/internal/domain"
)

type registrationRepository struct {
	store *Store
}

// NewRegistrationRepository returns a RegistrationRepository backed by the given store.
func NewRegistrationRepository(store *Store) domain.RegistrationRepository {
	return &registrationRepository{store: store}
}

func (r *registrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	// Mirror the storage-level unique constraint on (event_id, user_id).
	for _, existing := range r.store.registrations {
		if existing.EventID == reg.EventID && existing.UserID == reg.UserID {
			return &domain.DuplicateRegistrationError{EventID: reg.EventID, UserID: reg.UserID}
		}
	}

	reg.ID = uuid.NewString()
	cp := *reg
	r.store.registrations[reg.ID] = &cp
	return nil
}

func (r *registrationRepository) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	reg, ok := r.store.registrations[id]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "registration", ID: id}
	}
	cp := *reg
	return &cp, nil
}

func (r *registrationRepository) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.Registration, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, reg := range r.store.registrations {
		if reg.EventID == eventID && reg.UserID == userID {
			cp := *reg
			return &cp, nil
		}
	}
	return nil, &domain.NotFoundError{Resource: "registration"}
}

func (r *registrationRepository) ListByEvent(ctx context.Context, eventID string) ([]*domain.Registration, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var regs []*domain.Registration
	for _, reg := range r.store.registrations {
		if reg.EventID == eventID {
			cp := *reg
			regs = append(regs, &cp)
		}
	}
	sort.Slice(regs, func(i, j int) bool { return regs[i].CreatedAt.Before(regs[j].CreatedAt) })
	return regs, nil
}

func (r *registrationRepository) ListByEventPaged(ctx context.Context, eventID string, p domain.PaginationParams) ([]*domain.Registration, int, error) {
	regs, err := r.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, 0, err
	}
	return paginate(regs, p), len(regs), nil
}

func (r *registrationRepository) ListByUser(ctx context.Context, userID string, p domain.PaginationParams) ([]*domain.Registration, int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var regs []*domain.Registration
	for _, reg := range r.store.registrations {
		if reg.UserID == userID {
			cp := *reg
			regs = append(regs, &cp)
		}
	}
	sort.Slice(regs, func(i, j int) bool { return regs[i].CreatedAt.After(regs[j].CreatedAt) })
	return paginate(regs, p), len(regs), nil
}

func (r *registrationRepository) UpdateParticipants(ctx context.Context, id string, participants int) (*domain.Registration, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	reg, ok := r.store.registrations[id]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "registration", ID: id}
	}
	reg.NumberOfParticipants = participants
	reg.UpdatedAt = time.Now()
	cp := *reg
	return &cp, nil
}

func (r *registrationRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.registrations[id]; !ok {
		return false, nil
	}
	delete(r.store.registrations, id)
	return true, nil
}
