package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"eventmanagement/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

var sessionCols = []string{"id", "event_id", "speaker_id", "title", "start_time", "end_time", "capacity", "is_active", "created_at", "updated_at"}

func TestSessionRepository_Create(t *testing.T) {
	ctx := context.Background()
	startTime := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	endTime := time.Date(2025, 6, 1, 11, 0, 0, 0, time.UTC)
	createdAt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		session *domain.Session
		mock    func(mock sqlmock.Sqlmock)
		wantID  string
		wantErr bool
	}{
		{
			name: "success",
			session: &domain.Session{
				EventID:   "ev-1",
				Title:     "Generics in Practice",
				StartTime: startTime,
				EndTime:   endTime,
				IsActive:  true,
				CreatedAt: createdAt,
				UpdatedAt: createdAt,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO sessions`).
					WithArgs("ev-1", nil, "Generics in Practice", startTime, endTime, nil, true, createdAt, createdAt).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("sess-uuid-1"))
			},
			wantID:  "sess-uuid-1",
			wantErr: false,
		},
		{
			name: "db error",
			session: &domain.Session{
				EventID:   "ev-1",
				Title:     "Talk",
				StartTime: startTime,
				EndTime:   endTime,
				IsActive:  true,
				CreatedAt: createdAt,
				UpdatedAt: createdAt,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO sessions`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewSessionRepository(db)
			err = repo.Create(ctx, tt.session)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, tt.session.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSessionRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	startTime := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	endTime := time.Date(2025, 6, 1, 11, 0, 0, 0, time.UTC)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("found with nullable fields set", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT .+ FROM sessions WHERE id = \$1`).
			WithArgs("sess-1").
			WillReturnRows(sqlmock.NewRows(sessionCols).
				AddRow("sess-1", "ev-1", "spk-1", "Talk", startTime, endTime, int64(40), true, now, now))

		repo := NewSessionRepository(db)
		s, err := repo.GetByID(ctx, "sess-1")
		require.NoError(t, err)
		require.NotNil(t, s.SpeakerID)
		require.Equal(t, "spk-1", *s.SpeakerID)
		require.NotNil(t, s.Capacity)
		require.Equal(t, 40, *s.Capacity)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("found with nullable fields empty", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT .+ FROM sessions WHERE id = \$1`).
			WithArgs("sess-1").
			WillReturnRows(sqlmock.NewRows(sessionCols).
				AddRow("sess-1", "ev-1", nil, "Talk", startTime, endTime, nil, true, now, now))

		repo := NewSessionRepository(db)
		s, err := repo.GetByID(ctx, "sess-1")
		require.NoError(t, err)
		require.Nil(t, s.SpeakerID)
		require.Nil(t, s.Capacity)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT .+ FROM sessions WHERE id = \$1`).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		repo := NewSessionRepository(db)
		_, err = repo.GetByID(ctx, "missing")
		var notFound *domain.NotFoundError
		require.ErrorAs(t, err, &notFound)
		require.Equal(t, "session", notFound.Resource)
	})
}

func TestSessionRepository_ListActiveByEvent(t *testing.T) {
	ctx := context.Background()
	startTime := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	endTime := time.Date(2025, 6, 1, 11, 0, 0, 0, time.UTC)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM sessions\s+WHERE event_id = \$1 AND is_active = TRUE`).
		WithArgs("ev-1").
		WillReturnRows(sqlmock.NewRows(sessionCols).
			AddRow("sess-1", "ev-1", nil, "First", startTime, endTime, nil, true, now, now).
			AddRow("sess-2", "ev-1", nil, "Second", endTime, endTime.Add(time.Hour), nil, true, now, now))

	repo := NewSessionRepository(db)
	sessions, err := repo.ListActiveByEvent(ctx, "ev-1")
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	require.Equal(t, "First", sessions[0].Title)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_Update(t *testing.T) {
	ctx := context.Background()
	startTime := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	endTime := time.Date(2025, 6, 1, 11, 0, 0, 0, time.UTC)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("updates only supplied fields", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		title := "Renamed"
		mock.ExpectQuery(`UPDATE sessions SET updated_at = NOW\(\), title = \$1\s+WHERE id = \$2`).
			WithArgs("Renamed", "sess-1").
			WillReturnRows(sqlmock.NewRows(sessionCols).
				AddRow("sess-1", "ev-1", nil, "Renamed", startTime, endTime, nil, true, now, now))

		repo := NewSessionRepository(db)
		s, err := repo.Update(ctx, "sess-1", domain.SessionPatch{Title: &title})
		require.NoError(t, err)
		require.Equal(t, "Renamed", s.Title)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty patch falls back to fetch", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT .+ FROM sessions WHERE id = \$1`).
			WithArgs("sess-1").
			WillReturnRows(sqlmock.NewRows(sessionCols).
				AddRow("sess-1", "ev-1", nil, "Talk", startTime, endTime, nil, true, now, now))

		repo := NewSessionRepository(db)
		s, err := repo.Update(ctx, "sess-1", domain.SessionPatch{})
		require.NoError(t, err)
		require.Equal(t, "Talk", s.Title)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		title := "Renamed"
		mock.ExpectQuery(`UPDATE sessions SET`).
			WillReturnError(sql.ErrNoRows)

		repo := NewSessionRepository(db)
		_, err = repo.Update(ctx, "missing", domain.SessionPatch{Title: &title})
		var notFound *domain.NotFoundError
		require.ErrorAs(t, err, &notFound)
	})
}

func TestSessionRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("deleted", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`DELETE FROM sessions WHERE id = \$1`).
			WithArgs("sess-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewSessionRepository(db)
		deleted, err := repo.Delete(ctx, "sess-1")
		require.NoError(t, err)
		require.True(t, deleted)
	})

	t.Run("already absent", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`DELETE FROM sessions WHERE id = \$1`).
			WithArgs("missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewSessionRepository(db)
		deleted, err := repo.Delete(ctx, "missing")
		require.NoError(t, err)
		require.False(t, deleted)
	})
}
