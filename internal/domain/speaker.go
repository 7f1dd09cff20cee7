package domain

import (
	"context"
	"time"
)

// Speaker represents a person who can lead sessions. Sessions reference
// speakers by id without owning them.
// swagger:model Speaker
type Speaker struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Bio       string    `json:"bio"`
	Company   string    `json:"company"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSpeaker returns a new Speaker with the given fields. ID is typically set
// by the repository on create.
func NewSpeaker(name, bio, company string, createdAt, updatedAt time.Time) *Speaker {
	return &Speaker{
		Name:      name,
		Bio:       bio,
		Company:   company,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// SpeakerRepository defines the interface for speaker storage
type SpeakerRepository interface {
	Create(ctx context.Context, speaker *Speaker) error
	GetByID(ctx context.Context, id string) (*Speaker, error)
	List(ctx context.Context, p PaginationParams) ([]*Speaker, int, error)
}

// SpeakerService defines speaker-facing business operations.
type SpeakerService interface {
	CreateSpeaker(ctx context.Context, speaker *Speaker) error
	GetSpeakerByID(ctx context.Context, speakerID string) (*Speaker, error)
	ListSpeakers(ctx context.Context, p PaginationParams) ([]*Speaker, int, error)
}
