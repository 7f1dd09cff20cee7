package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventmanagement/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	contextTimeout time.Duration
}

// NewEventService creates an EventService with the given repository.
func NewEventService(eventRepo domain.EventRepository, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		contextTimeout: timeout,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event.Title = strings.TrimSpace(event.Title)
	if event.Title == "" {
		return &domain.InvalidValueError{Field: "title", Reason: "is required"}
	}
	if _, err := domain.NewTimeRange(event.StartTime, event.EndTime); err != nil {
		return err
	}
	if event.Capacity < 0 {
		return &domain.InvalidValueError{Field: "capacity", Reason: "must be a positive number"}
	}

	exists, err := s.eventRepo.ExistsByTitle(ctx, event.Title)
	if err != nil {
		return fmt.Errorf("check event title: %w", err)
	}
	if exists {
		return &domain.InvalidValueError{Field: "title", Reason: "an event with this title already exists"}
	}

	now := time.Now()
	event.IsActive = true
	event.CreatedAt = now
	event.UpdatedAt = now
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (s *eventService) GetEventByID(ctx context.Context, eventID string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		var notFound *domain.NotFoundError
		if errors.As(err, &notFound) {
			return nil, &domain.NotFoundError{Resource: "event", ID: eventID}
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context, p domain.PaginationParams) ([]*domain.Event, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, total, err := s.eventRepo.List(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, total, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, eventID string, patch domain.EventPatch) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	current, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		var notFound *domain.NotFoundError
		if errors.As(err, &notFound) {
			return nil, &domain.NotFoundError{Resource: "event", ID: eventID}
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	start := current.StartTime
	end := current.EndTime
	if patch.StartTime != nil {
		start = *patch.StartTime
	}
	if patch.EndTime != nil {
		end = *patch.EndTime
	}
	if _, err := domain.NewTimeRange(start, end); err != nil {
		return nil, err
	}
	if patch.Capacity != nil && *patch.Capacity < 0 {
		return nil, &domain.InvalidValueError{Field: "capacity", Reason: "must be a positive number"}
	}

	updated, err := s.eventRepo.Update(ctx, eventID, patch)
	if err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}
	return updated, nil
}

func (s *eventService) DeactivateEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	inactive := false
	updated, err := s.eventRepo.Update(ctx, eventID, domain.EventPatch{IsActive: &inactive})
	if err != nil {
		var notFound *domain.NotFoundError
		if errors.As(err, &notFound) {
			return nil, &domain.NotFoundError{Resource: "event", ID: eventID}
		}
		return nil, fmt.Errorf("deactivate event: %w", err)
	}
	return updated, nil
}
