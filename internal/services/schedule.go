package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventmanagement/internal/domain"
)

type scheduleService struct {
	eventRepo      domain.EventRepository
	speakerRepo    domain.SpeakerRepository
	sessionRepo    domain.SessionRepository
	locker         *EventLocker
	buffer         time.Duration
	contextTimeout time.Duration
}

// NewScheduleService creates a ScheduleService. buffer is the minimum gap
// required between sessions of the same event (zero for strict conflict
// checking only).
func NewScheduleService(
	eventRepo domain.EventRepository,
	speakerRepo domain.SpeakerRepository,
	sessionRepo domain.SessionRepository,
	locker *EventLocker,
	buffer time.Duration,
	timeout time.Duration,
) domain.ScheduleService {
	return &scheduleService{
		eventRepo:      eventRepo,
		speakerRepo:    speakerRepo,
		sessionRepo:    sessionRepo,
		locker:         locker,
		buffer:         buffer,
		contextTimeout: timeout,
	}
}

func (s *scheduleService) CreateSession(ctx context.Context, session *domain.Session) (*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, session.EventID)
	if err != nil {
		var notFound *domain.NotFoundError
		if errors.As(err, &notFound) {
			return nil, &domain.NotFoundError{Resource: "event", ID: session.EventID}
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	unlock := s.locker.Lock(event.ID)
	defer unlock()

	if err := s.validateSession(ctx, event, session, ""); err != nil {
		return nil, err
	}

	now := time.Now()
	session.IsActive = true
	session.CreatedAt = now
	session.UpdatedAt = now
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return session, nil
}

func (s *scheduleService) UpdateSession(ctx context.Context, sessionID string, patch domain.SessionPatch) (*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	existing, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		var notFound *domain.NotFoundError
		if errors.As(err, &notFound) {
			return nil, &domain.NotFoundError{Resource: "session", ID: sessionID}
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	event, err := s.eventRepo.GetByID(ctx, existing.EventID)
	if err != nil {
		var notFound *domain.NotFoundError
		if errors.As(err, &notFound) {
			return nil, &domain.NotFoundError{Resource: "event", ID: existing.EventID}
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	unlock := s.locker.Lock(event.ID)
	defer unlock()

	// Merge supplied fields over current values, then re-run the full
	// validation pipeline against the merged session, excluding the session
	// itself from the conflict set.
	merged := *existing
	if patch.Title != nil {
		merged.Title = *patch.Title
	}
	if patch.SpeakerID != nil {
		merged.SpeakerID = patch.SpeakerID
	}
	if patch.StartTime != nil {
		merged.StartTime = *patch.StartTime
	}
	if patch.EndTime != nil {
		merged.EndTime = *patch.EndTime
	}
	if patch.Capacity != nil {
		merged.Capacity = patch.Capacity
	}
	if patch.IsActive != nil {
		merged.IsActive = *patch.IsActive
	}

	if err := s.validateSession(ctx, event, &merged, sessionID); err != nil {
		return nil, err
	}

	updated, err := s.sessionRepo.Update(ctx, sessionID, patch)
	if err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}
	return updated, nil
}

// validateSession runs the shared create/update checks: speaker existence,
// containment in the event window, positive capacity, and conflict detection
// against the event's other active sessions. excludeID is the id of the
// session being updated, empty on create.
func (s *scheduleService) validateSession(ctx context.Context, event *domain.Event, session *domain.Session, excludeID string) error {
	if session.SpeakerID != nil {
		if _, err := s.speakerRepo.GetByID(ctx, *session.SpeakerID); err != nil {
			var notFound *domain.NotFoundError
			if errors.As(err, &notFound) {
				return &domain.NotFoundError{Resource: "speaker", ID: *session.SpeakerID}
			}
			return fmt.Errorf("get speaker: %w", err)
		}
	}

	candidate, err := domain.NewTimeRange(session.StartTime, session.EndTime)
	if err != nil {
		return err
	}
	if !event.Window().Contains(candidate) {
		return &domain.OutOfRangeError{Candidate: candidate, Container: event.Window()}
	}

	if session.Capacity != nil && *session.Capacity <= 0 {
		return &domain.InvalidValueError{Field: "capacity", Reason: "must be a positive number"}
	}

	// Inactive sessions neither block others nor need a slot themselves.
	if !session.IsActive {
		return nil
	}

	siblings, err := s.sessionRepo.ListActiveByEvent(ctx, event.ID)
	if err != nil {
		return fmt.Errorf("list active sessions: %w", err)
	}
	if conflicts := domain.FindConflicts(candidate, siblings, excludeID, s.buffer); len(conflicts) > 0 {
		conflictErr := &domain.ScheduleConflictError{}
		for _, c := range conflicts {
			conflictErr.Conflicts = append(conflictErr.Conflicts, domain.SessionConflict{
				SessionID: c.ID,
				Title:     c.Title,
				Range:     c.Window(),
			})
		}
		return conflictErr
	}
	return nil
}

func (s *scheduleService) DeleteSession(ctx context.Context, sessionID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	deleted, err := s.sessionRepo.Delete(ctx, sessionID)
	if err != nil {
		return false, fmt.Errorf("delete session: %w", err)
	}
	return deleted, nil
}

func (s *scheduleService) GetSessionByID(ctx context.Context, sessionID string) (*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		var notFound *domain.NotFoundError
		if errors.As(err, &notFound) {
			return nil, &domain.NotFoundError{Resource: "session", ID: sessionID}
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	return session, nil
}

func (s *scheduleService) ListSessionsByEvent(ctx context.Context, eventID string, p domain.PaginationParams) ([]*domain.Session, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		var notFound *domain.NotFoundError
		if errors.As(err, &notFound) {
			return nil, 0, &domain.NotFoundError{Resource: "event", ID: eventID}
		}
		return nil, 0, fmt.Errorf("get event: %w", err)
	}

	sessions, total, err := s.sessionRepo.ListByEvent(ctx, eventID, p)
	if err != nil {
		return nil, 0, fmt.Errorf("list sessions: %w", err)
	}
	if sessions == nil {
		sessions = []*domain.Session{}
	}
	return sessions, total, nil
}
