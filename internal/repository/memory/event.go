package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"eventmanagement/internal/domain"
)

type eventRepository struct {
	store *Store
}

// NewEventRepository returns an EventRepository backed by the given store.
func NewEventRepository(store *Store) domain.EventRepository {
	return &eventRepository{store: store}
}

func (r *eventRepository) Create(ctx context.Context, event *domain.Event) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	event.ID = uuid.NewString()
	cp := *event
	r.store.events[event.ID] = &cp
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	event, ok := r.store.events[id]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "event", ID: id}
	}
	cp := *event
	return &cp, nil
}

func (r *eventRepository) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, event := range r.store.events {
		if strings.EqualFold(event.Title, title) {
			return true, nil
		}
	}
	return false, nil
}

func (r *eventRepository) List(ctx context.Context, p domain.PaginationParams) ([]*domain.Event, int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	all := make([]*domain.Event, 0, len(r.store.events))
	for _, event := range r.store.events {
		cp := *event
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return paginate(all, p), len(all), nil
}

func (r *eventRepository) Update(ctx context.Context, id string, patch domain.EventPatch) (*domain.Event, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	event, ok := r.store.events[id]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "event", ID: id}
	}
	if patch.StartTime != nil {
		event.StartTime = *patch.StartTime
	}
	if patch.EndTime != nil {
		event.EndTime = *patch.EndTime
	}
	if patch.Capacity != nil {
		event.Capacity = *patch.Capacity
	}
	if patch.IsActive != nil {
		event.IsActive = *patch.IsActive
	}
	event.UpdatedAt = time.Now()
	cp := *event
	return &cp, nil
}
