package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventmanagement/internal/domain"
	"eventmanagement/internal/repository/memory"
)

// scheduleHarness wires a ScheduleService over in-memory repositories.
type scheduleHarness struct {
	svc      domain.ScheduleService
	events   domain.EventRepository
	speakers domain.SpeakerRepository
	sessions domain.SessionRepository
}

func newScheduleHarness(t *testing.T, buffer time.Duration) *scheduleHarness {
	t.Helper()
	store := memory.NewStore()
	h := &scheduleHarness{
		events:   memory.NewEventRepository(store),
		speakers: memory.NewSpeakerRepository(store),
		sessions: memory.NewSessionRepository(store),
	}
	h.svc = NewScheduleService(h.events, h.speakers, h.sessions, NewEventLocker(), buffer, 5*time.Second)
	return h
}

// day returns a time on 2025-06-01 UTC at the given hour and minute.
func day(hour, min int) time.Time {
	return time.Date(2025, 6, 1, hour, min, 0, 0, time.UTC)
}

func (h *scheduleHarness) createEvent(t *testing.T, capacity int) *domain.Event {
	t.Helper()
	now := time.Now()
	event := domain.NewEvent("GopherCon", "Berlin", day(9, 0), day(18, 0), capacity, now, now)
	require.NoError(t, h.events.Create(context.Background(), event))
	return event
}

func (h *scheduleHarness) newSession(eventID, title string, start, end time.Time) *domain.Session {
	now := time.Now()
	return domain.NewSession(eventID, title, nil, start, end, nil, now, now)
}

func TestCreateSession(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a session inside the event window", func(t *testing.T) {
		h := newScheduleHarness(t, 0)
		event := h.createEvent(t, 100)

		created, err := h.svc.CreateSession(ctx, h.newSession(event.ID, "Generics in Practice", day(10, 0), day(11, 0)))
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.True(t, created.IsActive)
	})

	t.Run("unknown event", func(t *testing.T) {
		h := newScheduleHarness(t, 0)

		_, err := h.svc.CreateSession(ctx, h.newSession("missing", "Talk", day(10, 0), day(11, 0)))
		var notFound *domain.NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "event", notFound.Resource)
	})

	t.Run("unknown speaker", func(t *testing.T) {
		h := newScheduleHarness(t, 0)
		event := h.createEvent(t, 100)

		session := h.newSession(event.ID, "Talk", day(10, 0), day(11, 0))
		speakerID := "missing"
		session.SpeakerID = &speakerID
		_, err := h.svc.CreateSession(ctx, session)
		var notFound *domain.NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "speaker", notFound.Resource)
	})

	t.Run("start not before end", func(t *testing.T) {
		h := newScheduleHarness(t, 0)
		event := h.createEvent(t, 100)

		_, err := h.svc.CreateSession(ctx, h.newSession(event.ID, "Talk", day(11, 0), day(10, 0)))
		var invalid *domain.InvalidRangeError
		require.ErrorAs(t, err, &invalid)
	})

	t.Run("outside the event window", func(t *testing.T) {
		h := newScheduleHarness(t, 0)
		event := h.createEvent(t, 100)

		_, err := h.svc.CreateSession(ctx, h.newSession(event.ID, "Talk", day(17, 30), day(18, 30)))
		var outOfRange *domain.OutOfRangeError
		require.ErrorAs(t, err, &outOfRange)
	})

	t.Run("session ending exactly at the event end is allowed", func(t *testing.T) {
		h := newScheduleHarness(t, 0)
		event := h.createEvent(t, 100)

		_, err := h.svc.CreateSession(ctx, h.newSession(event.ID, "Closing", day(17, 0), day(18, 0)))
		require.NoError(t, err)
	})

	t.Run("non-positive capacity", func(t *testing.T) {
		h := newScheduleHarness(t, 0)
		event := h.createEvent(t, 100)

		session := h.newSession(event.ID, "Talk", day(10, 0), day(11, 0))
		zero := 0
		session.Capacity = &zero
		_, err := h.svc.CreateSession(ctx, session)
		var invalid *domain.InvalidValueError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "capacity", invalid.Field)
	})

	t.Run("overlapping session is rejected with all conflicts listed", func(t *testing.T) {
		h := newScheduleHarness(t, 0)
		event := h.createEvent(t, 100)

		_, err := h.svc.CreateSession(ctx, h.newSession(event.ID, "First", day(10, 0), day(11, 0)))
		require.NoError(t, err)
		_, err = h.svc.CreateSession(ctx, h.newSession(event.ID, "Second", day(11, 0), day(12, 0)))
		require.NoError(t, err)

		_, err = h.svc.CreateSession(ctx, h.newSession(event.ID, "Overlapper", day(10, 30), day(11, 30)))
		var conflict *domain.ScheduleConflictError
		require.ErrorAs(t, err, &conflict)
		require.Len(t, conflict.Conflicts, 2)
		assert.Equal(t, "First", conflict.Conflicts[0].Title)
		assert.Equal(t, "Second", conflict.Conflicts[1].Title)
	})

	t.Run("back-to-back sessions do not conflict with zero buffer", func(t *testing.T) {
		h := newScheduleHarness(t, 0)
		event := h.createEvent(t, 100)

		_, err := h.svc.CreateSession(ctx, h.newSession(event.ID, "First", day(10, 0), day(11, 0)))
		require.NoError(t, err)
		_, err = h.svc.CreateSession(ctx, h.newSession(event.ID, "Second", day(11, 0), day(12, 0)))
		require.NoError(t, err)
	})

	t.Run("buffer turns a near miss into a conflict", func(t *testing.T) {
		h := newScheduleHarness(t, 15*time.Minute)
		event := h.createEvent(t, 100)

		_, err := h.svc.CreateSession(ctx, h.newSession(event.ID, "First", day(10, 0), day(11, 0)))
		require.NoError(t, err)

		// 10 minute gap, 15 minute buffer required.
		_, err = h.svc.CreateSession(ctx, h.newSession(event.ID, "Too Close", day(11, 10), day(12, 0)))
		var conflict *domain.ScheduleConflictError
		require.ErrorAs(t, err, &conflict)

		// Gap equal to the buffer is fine.
		_, err = h.svc.CreateSession(ctx, h.newSession(event.ID, "Far Enough", day(11, 15), day(12, 0)))
		require.NoError(t, err)
	})

	t.Run("inactive sessions do not block new ones", func(t *testing.T) {
		h := newScheduleHarness(t, 0)
		event := h.createEvent(t, 100)

		first, err := h.svc.CreateSession(ctx, h.newSession(event.ID, "First", day(10, 0), day(11, 0)))
		require.NoError(t, err)
		inactive := false
		_, err = h.svc.UpdateSession(ctx, first.ID, domain.SessionPatch{IsActive: &inactive})
		require.NoError(t, err)

		_, err = h.svc.CreateSession(ctx, h.newSession(event.ID, "Replacement", day(10, 0), day(11, 0)))
		require.NoError(t, err)
	})
}

func TestUpdateSession(t *testing.T) {
	ctx := context.Background()

	t.Run("merges supplied fields and keeps the rest", func(t *testing.T) {
		h := newScheduleHarness(t, 0)
		event := h.createEvent(t, 100)
		created, err := h.svc.CreateSession(ctx, h.newSession(event.ID, "Original", day(10, 0), day(11, 0)))
		require.NoError(t, err)

		title := "Renamed"
		updated, err := h.svc.UpdateSession(ctx, created.ID, domain.SessionPatch{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", updated.Title)
		assert.Equal(t, created.StartTime, updated.StartTime)
		assert.Equal(t, created.EndTime, updated.EndTime)
	})

	t.Run("a session does not conflict with itself", func(t *testing.T) {
		h := newScheduleHarness(t, 0)
		event := h.createEvent(t, 100)
		created, err := h.svc.CreateSession(ctx, h.newSession(event.ID, "Talk", day(10, 0), day(11, 0)))
		require.NoError(t, err)

		// Shift within its own old slot.
		start, end := day(10, 15), day(11, 0)
		_, err = h.svc.UpdateSession(ctx, created.ID, domain.SessionPatch{StartTime: &start, EndTime: &end})
		require.NoError(t, err)
	})

	t.Run("moving onto another session is rejected", func(t *testing.T) {
		h := newScheduleHarness(t, 0)
		event := h.createEvent(t, 100)
		_, err := h.svc.CreateSession(ctx, h.newSession(event.ID, "First", day(10, 0), day(11, 0)))
		require.NoError(t, err)
		second, err := h.svc.CreateSession(ctx, h.newSession(event.ID, "Second", day(12, 0), day(13, 0)))
		require.NoError(t, err)

		start, end := day(10, 30), day(11, 30)
		_, err = h.svc.UpdateSession(ctx, second.ID, domain.SessionPatch{StartTime: &start, EndTime: &end})
		var conflict *domain.ScheduleConflictError
		require.ErrorAs(t, err, &conflict)
		require.Len(t, conflict.Conflicts, 1)
		assert.Equal(t, "First", conflict.Conflicts[0].Title)
	})

	t.Run("merged range outside the event window is rejected", func(t *testing.T) {
		h := newScheduleHarness(t, 0)
		event := h.createEvent(t, 100)
		created, err := h.svc.CreateSession(ctx, h.newSession(event.ID, "Talk", day(10, 0), day(11, 0)))
		require.NoError(t, err)

		end := day(19, 0)
		_, err = h.svc.UpdateSession(ctx, created.ID, domain.SessionPatch{EndTime: &end})
		var outOfRange *domain.OutOfRangeError
		require.ErrorAs(t, err, &outOfRange)
	})

	t.Run("unknown session", func(t *testing.T) {
		h := newScheduleHarness(t, 0)
		title := "x"
		_, err := h.svc.UpdateSession(ctx, "missing", domain.SessionPatch{Title: &title})
		var notFound *domain.NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "session", notFound.Resource)
	})

	t.Run("reactivating into an occupied slot is rejected", func(t *testing.T) {
		h := newScheduleHarness(t, 0)
		event := h.createEvent(t, 100)
		first, err := h.svc.CreateSession(ctx, h.newSession(event.ID, "First", day(10, 0), day(11, 0)))
		require.NoError(t, err)
		inactive := false
		_, err = h.svc.UpdateSession(ctx, first.ID, domain.SessionPatch{IsActive: &inactive})
		require.NoError(t, err)
		_, err = h.svc.CreateSession(ctx, h.newSession(event.ID, "Replacement", day(10, 0), day(11, 0)))
		require.NoError(t, err)

		active := true
		_, err = h.svc.UpdateSession(ctx, first.ID, domain.SessionPatch{IsActive: &active})
		var conflict *domain.ScheduleConflictError
		require.ErrorAs(t, err, &conflict)
	})
}

func TestDeleteSession(t *testing.T) {
	ctx := context.Background()
	h := newScheduleHarness(t, 0)
	event := h.createEvent(t, 100)
	created, err := h.svc.CreateSession(ctx, h.newSession(event.ID, "Talk", day(10, 0), day(11, 0)))
	require.NoError(t, err)

	deleted, err := h.svc.DeleteSession(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	// Second delete reports false without an error.
	deleted, err = h.svc.DeleteSession(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestListSessionsByEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("returns sessions ordered by start time", func(t *testing.T) {
		h := newScheduleHarness(t, 0)
		event := h.createEvent(t, 100)
		_, err := h.svc.CreateSession(ctx, h.newSession(event.ID, "Late", day(14, 0), day(15, 0)))
		require.NoError(t, err)
		_, err = h.svc.CreateSession(ctx, h.newSession(event.ID, "Early", day(10, 0), day(11, 0)))
		require.NoError(t, err)

		sessions, total, err := h.svc.ListSessionsByEvent(ctx, event.ID, domain.PaginationParams{Page: 1, PageSize: 20})
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		require.Len(t, sessions, 2)
		assert.Equal(t, "Early", sessions[0].Title)
		assert.Equal(t, "Late", sessions[1].Title)
	})

	t.Run("unknown event", func(t *testing.T) {
		h := newScheduleHarness(t, 0)
		_, _, err := h.svc.ListSessionsByEvent(ctx, "missing", domain.PaginationParams{Page: 1, PageSize: 20})
		var notFound *domain.NotFoundError
		require.ErrorAs(t, err, &notFound)
	})
}
