package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"eventmanagement/internal/domain"
)

type sessionRepository struct {
	store *Store
}

// NewSessionRepository returns a SessionRepository backed by the given store.
func NewSessionRepository(store *Store) domain.SessionRepository {
	return &sessionRepository{store: store}
}

func (r *sessionRepository) Create(ctx context.Context, session *domain.Session) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	session.ID = uuid.NewString()
	cp := *session
	r.store.sessions[session.ID] = &cp
	return nil
}

func (r *sessionRepository) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	session, ok := r.store.sessions[id]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "session", ID: id}
	}
	cp := *session
	return &cp, nil
}

func (r *sessionRepository) ListActiveByEvent(ctx context.Context, eventID string) ([]*domain.Session, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var sessions []*domain.Session
	for _, session := range r.store.sessions {
		if session.EventID == eventID && session.IsActive {
			cp := *session
			sessions = append(sessions, &cp)
		}
	}
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].StartTime.Before(sessions[j].StartTime) })
	return sessions, nil
}

func (r *sessionRepository) ListByEvent(ctx context.Context, eventID string, p domain.PaginationParams) ([]*domain.Session, int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var sessions []*domain.Session
	for _, session := range r.store.sessions {
		if session.EventID == eventID {
			cp := *session
			sessions = append(sessions, &cp)
		}
	}
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].StartTime.Before(sessions[j].StartTime) })
	return paginate(sessions, p), len(sessions), nil
}

func (r *sessionRepository) Update(ctx context.Context, id string, patch domain.SessionPatch) (*domain.Session, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	session, ok := r.store.sessions[id]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "session", ID: id}
	}
	if patch.Title != nil {
		session.Title = *patch.Title
	}
	if patch.SpeakerID != nil {
		session.SpeakerID = patch.SpeakerID
	}
	if patch.StartTime != nil {
		session.StartTime = *patch.StartTime
	}
	if patch.EndTime != nil {
		session.EndTime = *patch.EndTime
	}
	if patch.Capacity != nil {
		session.Capacity = patch.Capacity
	}
	if patch.IsActive != nil {
		session.IsActive = *patch.IsActive
	}
	session.UpdatedAt = time.Now()
	cp := *session
	return &cp, nil
}

func (r *sessionRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.sessions[id]; !ok {
		return false, nil
	}
	delete(r.store.sessions, id)
	return true, nil
}
