package controllers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventmanagement/internal/delivery/http/helpers"
	"eventmanagement/internal/domain"
)

// fakeScheduleService implements domain.ScheduleService with function fields.
type fakeScheduleService struct {
	createFn func(ctx context.Context, session *domain.Session) (*domain.Session, error)
	updateFn func(ctx context.Context, sessionID string, patch domain.SessionPatch) (*domain.Session, error)
	deleteFn func(ctx context.Context, sessionID string) (bool, error)
	getFn    func(ctx context.Context, sessionID string) (*domain.Session, error)
	listFn   func(ctx context.Context, eventID string, p domain.PaginationParams) ([]*domain.Session, int, error)
}

func (f *fakeScheduleService) CreateSession(ctx context.Context, session *domain.Session) (*domain.Session, error) {
	return f.createFn(ctx, session)
}

func (f *fakeScheduleService) UpdateSession(ctx context.Context, sessionID string, patch domain.SessionPatch) (*domain.Session, error) {
	return f.updateFn(ctx, sessionID, patch)
}

func (f *fakeScheduleService) DeleteSession(ctx context.Context, sessionID string) (bool, error) {
	return f.deleteFn(ctx, sessionID)
}

func (f *fakeScheduleService) GetSessionByID(ctx context.Context, sessionID string) (*domain.Session, error) {
	return f.getFn(ctx, sessionID)
}

func (f *fakeScheduleService) ListSessionsByEvent(ctx context.Context, eventID string, p domain.PaginationParams) ([]*domain.Session, int, error) {
	return f.listFn(ctx, eventID, p)
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) helpers.APIResponse {
	t.Helper()
	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
	return envelope
}

func TestSessionController_CreateSession(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 1, 11, 0, 0, 0, time.UTC)
	window := domain.TimeRange{Start: start, End: end}

	tests := []struct {
		name       string
		body       string
		svc        *fakeScheduleService
		wantStatus int
		wantCode   string
	}{
		{
			name: "created",
			body: `{"title":"Talk","start_time":"2025-06-01T10:00:00Z","end_time":"2025-06-01T11:00:00Z"}`,
			svc: &fakeScheduleService{
				createFn: func(_ context.Context, session *domain.Session) (*domain.Session, error) {
					session.ID = "sess-1"
					return session, nil
				},
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing title",
			body:       `{"start_time":"2025-06-01T10:00:00Z","end_time":"2025-06-01T11:00:00Z"}`,
			svc:        &fakeScheduleService{},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name: "schedule conflict",
			body: `{"title":"Talk","start_time":"2025-06-01T10:00:00Z","end_time":"2025-06-01T11:00:00Z"}`,
			svc: &fakeScheduleService{
				createFn: func(_ context.Context, _ *domain.Session) (*domain.Session, error) {
					return nil, &domain.ScheduleConflictError{Conflicts: []domain.SessionConflict{
						{SessionID: "sess-0", Title: "Other", Range: window},
					}}
				},
			},
			wantStatus: http.StatusConflict,
			wantCode:   helpers.ErrCodeConflict,
		},
		{
			name: "event not found",
			body: `{"title":"Talk","start_time":"2025-06-01T10:00:00Z","end_time":"2025-06-01T11:00:00Z"}`,
			svc: &fakeScheduleService{
				createFn: func(_ context.Context, _ *domain.Session) (*domain.Session, error) {
					return nil, &domain.NotFoundError{Resource: "event", ID: "ev-1"}
				},
			},
			wantStatus: http.StatusNotFound,
			wantCode:   helpers.ErrCodeNotFound,
		},
		{
			name: "outside event window",
			body: `{"title":"Talk","start_time":"2025-06-01T10:00:00Z","end_time":"2025-06-01T11:00:00Z"}`,
			svc: &fakeScheduleService{
				createFn: func(_ context.Context, _ *domain.Session) (*domain.Session, error) {
					return nil, &domain.OutOfRangeError{Candidate: window, Container: window}
				},
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewSessionController(testLogger(), tt.svc)

			req := httptest.NewRequest(http.MethodPost, "/events/ev-1/sessions", strings.NewReader(tt.body))
			req.SetPathValue("eventID", "ev-1")
			rr := httptest.NewRecorder()

			ctrl.CreateSession(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			envelope := decodeEnvelope(t, rr)
			if tt.wantCode != "" {
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantCode, envelope.Error.Code)
			} else {
				assert.Nil(t, envelope.Error)
				assert.NotNil(t, envelope.Data)
			}
		})
	}
}

func TestSessionController_CreateSession_ConflictDetails(t *testing.T) {
	window := domain.TimeRange{
		Start: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 6, 1, 11, 0, 0, 0, time.UTC),
	}
	svc := &fakeScheduleService{
		createFn: func(_ context.Context, _ *domain.Session) (*domain.Session, error) {
			return nil, &domain.ScheduleConflictError{Conflicts: []domain.SessionConflict{
				{SessionID: "sess-a", Title: "First", Range: window},
				{SessionID: "sess-b", Title: "Second", Range: window},
			}}
		},
	}
	ctrl := NewSessionController(testLogger(), svc)

	body := `{"title":"Talk","start_time":"2025-06-01T10:00:00Z","end_time":"2025-06-01T11:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/events/ev-1/sessions", strings.NewReader(body))
	req.SetPathValue("eventID", "ev-1")
	rr := httptest.NewRecorder()

	ctrl.CreateSession(rr, req)

	require.Equal(t, http.StatusConflict, rr.Code)
	envelope := decodeEnvelope(t, rr)
	require.NotNil(t, envelope.Error)
	details, ok := envelope.Error.Details.([]any)
	require.True(t, ok)
	assert.Len(t, details, 2)
}

func TestSessionController_DeleteSession(t *testing.T) {
	svc := &fakeScheduleService{
		deleteFn: func(_ context.Context, sessionID string) (bool, error) {
			return sessionID == "sess-1", nil
		},
	}
	ctrl := NewSessionController(testLogger(), svc)

	for _, id := range []string{"sess-1", "already-gone"} {
		req := httptest.NewRequest(http.MethodDelete, "/sessions/"+id, nil)
		req.SetPathValue("sessionID", id)
		rr := httptest.NewRecorder()

		ctrl.DeleteSession(rr, req)
		require.Equal(t, http.StatusNoContent, rr.Code, "id=%s", id)
	}
}

func TestSessionController_UpdateSession_RejectsUnknownFields(t *testing.T) {
	ctrl := NewSessionController(testLogger(), &fakeScheduleService{})

	req := httptest.NewRequest(http.MethodPatch, "/sessions/sess-1", strings.NewReader(`{"bogus":true}`))
	req.SetPathValue("sessionID", "sess-1")
	rr := httptest.NewRecorder()

	ctrl.UpdateSession(rr, req)
	require.Equal(t, http.StatusBadRequest, rr.Code)
}
