package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkSession(id, title string, r TimeRange, active bool) *Session {
	return &Session{
		ID:        id,
		EventID:   "ev-1",
		Title:     title,
		StartTime: r.Start,
		EndTime:   r.End,
		IsActive:  active,
	}
}

func TestFindConflicts(t *testing.T) {
	talk1 := mkSession("s-1", "Talk 1", tr(t, 10, 0, 11, 0), true)
	talk3 := mkSession("s-3", "Talk 3", tr(t, 11, 0, 12, 0), true)
	cancelled := mkSession("s-9", "Cancelled", tr(t, 10, 0, 12, 0), false)
	sessions := []*Session{talk1, talk3, cancelled}

	t.Run("overlapping candidate conflicts", func(t *testing.T) {
		got := FindConflicts(tr(t, 10, 30, 11, 30), sessions, "", 0)
		require.Len(t, got, 2)
		assert.Equal(t, "Talk 1", got[0].Title)
		assert.Equal(t, "Talk 3", got[1].Title)
	})

	t.Run("back to back is not a conflict", func(t *testing.T) {
		got := FindConflicts(tr(t, 12, 0, 13, 0), sessions, "", 0)
		assert.Empty(t, got)
	})

	t.Run("inactive sessions never block", func(t *testing.T) {
		got := FindConflicts(tr(t, 10, 0, 10, 30), []*Session{cancelled}, "", 0)
		assert.Empty(t, got)
	})

	t.Run("self exclusion by id", func(t *testing.T) {
		got := FindConflicts(tr(t, 10, 30, 11, 30), sessions, "s-1", 0)
		require.Len(t, got, 1)
		assert.Equal(t, "Talk 3", got[0].Title)
	})

	t.Run("buffer turns touching sessions into conflicts", func(t *testing.T) {
		got := FindConflicts(tr(t, 12, 0, 13, 0), sessions, "", 15*time.Minute)
		require.Len(t, got, 1)
		assert.Equal(t, "Talk 3", got[0].Title)
	})
}
