package domain

import (
	"context"
	"time"
)

// Event represents a scheduled occasion with a time window, location, and
// participant capacity.
// swagger:model Event
type Event struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Location  string    `json:"location"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Capacity  int       `json:"capacity"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewEvent returns a new active Event with the given fields. ID is typically
// set by the repository on create.
func NewEvent(title, location string, startTime, endTime time.Time, capacity int, createdAt, updatedAt time.Time) *Event {
	return &Event{
		Title:     title,
		Location:  location,
		StartTime: startTime,
		EndTime:   endTime,
		Capacity:  capacity,
		IsActive:  true,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// Window returns the event's time window as a TimeRange.
func (e *Event) Window() TimeRange {
	return TimeRange{Start: e.StartTime, End: e.EndTime}
}

// EventPatch holds the updatable event fields; nil fields keep their current
// value. Title and location are immutable once the event is created.
type EventPatch struct {
	StartTime *time.Time
	EndTime   *time.Time
	Capacity  *int
	IsActive  *bool
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	ExistsByTitle(ctx context.Context, title string) (bool, error)
	List(ctx context.Context, p PaginationParams) ([]*Event, int, error)
	Update(ctx context.Context, id string, patch EventPatch) (*Event, error)
}

// EventService defines the business logic for managing events.
type EventService interface {
	CreateEvent(ctx context.Context, event *Event) error
	GetEventByID(ctx context.Context, eventID string) (*Event, error)
	ListEvents(ctx context.Context, p PaginationParams) ([]*Event, int, error)
	UpdateEvent(ctx context.Context, eventID string, patch EventPatch) (*Event, error)
	DeactivateEvent(ctx context.Context, eventID string) (*Event, error)
}
