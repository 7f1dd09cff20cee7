package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventmanagement/internal/domain"
)

type speakerRepository struct {
	DB *sql.DB
}

// NewSpeakerRepository returns a SpeakerRepository backed by Postgres.
func NewSpeakerRepository(db *sql.DB) domain.SpeakerRepository {
	return &speakerRepository{
		DB: db,
	}
}

func (r *speakerRepository) Create(ctx context.Context, s *domain.Speaker) error {
	query := `
		INSERT INTO speakers (name, bio, company, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, s.Name, s.Bio, s.Company, s.CreatedAt, s.UpdatedAt).Scan(&s.ID)
}

func (r *speakerRepository) GetByID(ctx context.Context, id string) (*domain.Speaker, error) {
	query := `
		SELECT id, name, bio, company, created_at, updated_at
		FROM speakers
		WHERE id = $1
	`
	s := &domain.Speaker{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.Name, &s.Bio, &s.Company, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &domain.NotFoundError{Resource: "speaker", ID: id}
		}
		return nil, err
	}
	return s, nil
}

func (r *speakerRepository) List(ctx context.Context, p domain.PaginationParams) ([]*domain.Speaker, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM speakers`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, name, bio, company, created_at, updated_at
		FROM speakers
		ORDER BY name
		LIMIT $1 OFFSET $2
	`
	rows, err := r.DB.QueryContext(ctx, query, p.PageSize, p.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	speakers := make([]*domain.Speaker, 0)
	for rows.Next() {
		s := &domain.Speaker{}
		if err := rows.Scan(&s.ID, &s.Name, &s.Bio, &s.Company, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, 0, err
		}
		speakers = append(speakers, s)
	}
	return speakers, total, rows.Err()
}
