package domain

import (
	"context"
	"time"
)

// Session represents a talk scheduled inside an event's time window,
// optionally led by a speaker and optionally capacity-limited.
// swagger:model Session
type Session struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	SpeakerID *string   `json:"speaker_id,omitempty"`
	Title     string    `json:"title"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Capacity  *int      `json:"capacity,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSession returns a new active Session with the given fields. ID is
// typically set by the repository on create.
func NewSession(eventID, title string, speakerID *string, startTime, endTime time.Time, capacity *int, createdAt, updatedAt time.Time) *Session {
	return &Session{
		EventID:   eventID,
		SpeakerID: speakerID,
		Title:     title,
		StartTime: startTime,
		EndTime:   endTime,
		Capacity:  capacity,
		IsActive:  true,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// Window returns the session's time window as a TimeRange.
func (s *Session) Window() TimeRange {
	return TimeRange{Start: s.StartTime, End: s.EndTime}
}

// SessionPatch holds the updatable session fields; nil fields keep their
// current value.
type SessionPatch struct {
	Title     *string
	SpeakerID *string
	StartTime *time.Time
	EndTime   *time.Time
	Capacity  *int
	IsActive  *bool
}

// SessionRepository defines the interface for session storage
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	GetByID(ctx context.Context, id string) (*Session, error)
	// ListActiveByEvent returns every active session of the event, unpaginated.
	// The schedule service runs conflict detection over this snapshot.
	ListActiveByEvent(ctx context.Context, eventID string) ([]*Session, error)
	ListByEvent(ctx context.Context, eventID string, p PaginationParams) ([]*Session, int, error)
	Update(ctx context.Context, id string, patch SessionPatch) (*Session, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// ScheduleService defines the business logic for managing an event's session
// schedule.
type ScheduleService interface {
	CreateSession(ctx context.Context, session *Session) (*Session, error)
	UpdateSession(ctx context.Context, sessionID string, patch SessionPatch) (*Session, error)
	DeleteSession(ctx context.Context, sessionID string) (bool, error)
	GetSessionByID(ctx context.Context, sessionID string) (*Session, error)
	ListSessionsByEvent(ctx context.Context, eventID string, p PaginationParams) ([]*Session, int, error)
}
