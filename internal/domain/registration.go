package domain

import (
	"context"
	"time"
)

// Participant count bounds for a single registration.
const (
	MinParticipants = 1
	MaxParticipants = 10
)

// Registration represents a user's claim on some of an event's capacity.
// swagger:model Registration
type Registration struct {
	ID                   string    `json:"id"`
	EventID              string    `json:"event_id"`
	UserID               string    `json:"user_id"`
	NumberOfParticipants int       `json:"number_of_participants"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// NewRegistration returns a new Registration. ID is typically set by the
// repository on create.
func NewRegistration(eventID, userID string, participants int, createdAt, updatedAt time.Time) *Registration {
	return &Registration{
		EventID:              eventID,
		UserID:               userID,
		NumberOfParticipants: participants,
		CreatedAt:            createdAt,
		UpdatedAt:            updatedAt,
	}
}

// CapacityInfo summarizes consumed versus total capacity for an event.
// swagger:model CapacityInfo
type CapacityInfo struct {
	EventID               string `json:"event_id"`
	TotalCapacity         int    `json:"total_capacity"`
	RegisteredParticipants int   `json:"registered_participants"`
	AvailableCapacity     int    `json:"available_capacity"`
	IsFull                bool   `json:"is_full"`
}

// RegistrationRepository defines storage operations for event registrations.
type RegistrationRepository interface {
	Create(ctx context.Context, reg *Registration) error
	GetByID(ctx context.Context, id string) (*Registration, error)
	GetByEventAndUser(ctx context.Context, eventID, userID string) (*Registration, error)
	// ListByEvent returns every registration for the event, unpaginated. The
	// registration service runs capacity accounting over this snapshot.
	ListByEvent(ctx context.Context, eventID string) ([]*Registration, error)
	ListByEventPaged(ctx context.Context, eventID string, p PaginationParams) ([]*Registration, int, error)
	ListByUser(ctx context.Context, userID string, p PaginationParams) ([]*Registration, int, error)
	UpdateParticipants(ctx context.Context, id string, participants int) (*Registration, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// RegistrationService defines attendee-facing registration operations.
type RegistrationService interface {
	RegisterToEvent(ctx context.Context, eventID, userID string, participants int) (*Registration, error)
	UpdateRegistration(ctx context.Context, registrationID string, participants int) (*Registration, error)
	CancelRegistration(ctx context.Context, registrationID string) (bool, error)
	GetRegistrationByID(ctx context.Context, registrationID string) (*Registration, error)
	GetEventCapacityInfo(ctx context.Context, eventID string) (*CapacityInfo, error)
	ListEventRegistrations(ctx context.Context, eventID string, p PaginationParams) ([]*Registration, int, error)
	ListUserRegistrations(ctx context.Context, userID string, p PaginationParams) ([]*Registration, int, error)
}
