package service

import (
	"testing"
	"time"

	"meetmatch/modules/schedule/entity"

	"github.com/stretchr/testify/require"
)

var testDate = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return time.Date(2026, 3, 10, hour, minute, 0, 0, time.UTC)
}

func busy(startHour, startMin, endHour, endMin int) entity.TimeSlot {
	return entity.TimeSlot{Start: at(startHour, startMin), End: at(endHour, endMin)}
}

func TestFindOptimalTimeSlots_RanksByAvailability(t *testing.T) {
	m := NewSlotMatcher()

	// Two participants, one busy for the first half hour. Candidates at
	// 09:00 and 09:15 score 50, the 09:30 one scores 100 and must win.
	busyByUser := map[string][]entity.TimeSlot{
		"alice": {busy(9, 0, 9, 30)},
		"bob":   {},
	}

	suggestions, err := m.FindOptimalTimeSlots(busyByUser, 30,
		entity.TimeWindow{Start: "09:00", End: "10:00"}, testDate, 10)
	require.NoError(t, err)
	require.Len(t, suggestions, 3)

	top := suggestions[0]
	require.Equal(t, at(9, 30), top.StartTime)
	require.Equal(t, at(10, 0), top.EndTime)
	require.Equal(t, 100.0, top.Score)
	require.ElementsMatch(t, []string{"alice", "bob"}, top.AvailableUsers)
	require.Empty(t, top.ConflictUsers)

	for _, s := range suggestions[1:] {
		require.Equal(t, 50.0, s.Score)
		require.Equal(t, []string{"bob"}, s.AvailableUsers)
		require.Equal(t, []string{"alice"}, s.ConflictUsers)
	}
}

func TestFindOptimalTimeSlots_TieBreakByStartTime(t *testing.T) {
	m := NewSlotMatcher()

	// Nobody is busy, so every candidate scores 100 and the order must be
	// chronological.
	busyByUser := map[string][]entity.TimeSlot{"alice": {}, "bob": {}}

	suggestions, err := m.FindOptimalTimeSlots(busyByUser, 30,
		entity.TimeWindow{Start: "09:00", End: "11:00"}, testDate, 100)
	require.NoError(t, err)
	require.NotEmpty(t, suggestions)

	for i := 1; i < len(suggestions); i++ {
		require.Equal(t, suggestions[i-1].Score, suggestions[i].Score)
		require.True(t, suggestions[i-1].StartTime.Before(suggestions[i].StartTime))
	}
}

func TestFindOptimalTimeSlots_NoParticipants(t *testing.T) {
	m := NewSlotMatcher()

	suggestions, err := m.FindOptimalTimeSlots(map[string][]entity.TimeSlot{}, 60,
		entity.TimeWindow{Start: "09:00", End: "12:00"}, testDate, 5)
	require.NoError(t, err)
	require.NotEmpty(t, suggestions)

	for _, s := range suggestions {
		require.Equal(t, 0.0, s.Score)
		require.Empty(t, s.AvailableUsers)
		require.Empty(t, s.ConflictUsers)
	}
	// Zero scores tie, so ordering falls back to start time.
	for i := 1; i < len(suggestions); i++ {
		require.True(t, suggestions[i-1].StartTime.Before(suggestions[i].StartTime))
	}
}

func TestFindOptimalTimeSlots_WindowEqualsDuration(t *testing.T) {
	m := NewSlotMatcher()

	suggestions, err := m.FindOptimalTimeSlots(map[string][]entity.TimeSlot{"alice": {}}, 60,
		entity.TimeWindow{Start: "09:00", End: "10:00"}, testDate, 5)
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	require.Equal(t, at(9, 0), suggestions[0].StartTime)
	require.Equal(t, at(10, 0), suggestions[0].EndTime)
}

func TestFindOptimalTimeSlots_WindowTooShort(t *testing.T) {
	m := NewSlotMatcher()

	suggestions, err := m.FindOptimalTimeSlots(map[string][]entity.TimeSlot{"alice": {}}, 90,
		entity.TimeWindow{Start: "09:00", End: "10:00"}, testDate, 5)
	require.NoError(t, err)
	require.Empty(t, suggestions)
}

func TestFindOptimalTimeSlots_Validation(t *testing.T) {
	m := NewSlotMatcher()
	users := map[string][]entity.TimeSlot{"alice": {}}
	window := entity.TimeWindow{Start: "09:00", End: "10:00"}

	_, err := m.FindOptimalTimeSlots(users, 0, window, testDate, 5)
	require.ErrorIs(t, err, ErrInvalidDuration)

	_, err = m.FindOptimalTimeSlots(users, -30, window, testDate, 5)
	require.ErrorIs(t, err, ErrInvalidDuration)

	_, err = m.FindOptimalTimeSlots(users, 30, window, testDate, -1)
	require.ErrorIs(t, err, ErrNegativeMaxSuggestions)

	_, err = m.FindOptimalTimeSlots(users, 30, entity.TimeWindow{Start: "late", End: "10:00"}, testDate, 5)
	require.ErrorIs(t, err, ErrInvalidWindow)

	_, err = m.FindOptimalTimeSlots(users, 30, entity.TimeWindow{Start: "10:00", End: "09:00"}, testDate, 5)
	require.ErrorIs(t, err, ErrInvalidWindow)

	_, err = m.FindOptimalTimeSlots(users, 30, entity.TimeWindow{Start: "10:00", End: "10:00"}, testDate, 5)
	require.ErrorIs(t, err, ErrInvalidWindow)
}

func TestFindOptimalTimeSlots_PartitionsParticipants(t *testing.T) {
	m := NewSlotMatcher()

	busyByUser := map[string][]entity.TimeSlot{
		"alice": {busy(9, 0, 9, 45)},
		"bob":   {busy(10, 0, 11, 0)},
		"carol": {},
	}

	suggestions, err := m.FindOptimalTimeSlots(busyByUser, 60,
		entity.TimeWindow{Start: "09:00", End: "12:00"}, testDate, 100)
	require.NoError(t, err)

	for _, s := range suggestions {
		require.Equal(t, 3, len(s.AvailableUsers)+len(s.ConflictUsers))
		seen := map[string]bool{}
		for _, u := range append(append([]string{}, s.AvailableUsers...), s.ConflictUsers...) {
			require.False(t, seen[u])
			seen[u] = true
		}
	}
}

func TestFindOptimalTimeSlots_BoundaryTouchIsNotConflict(t *testing.T) {
	m := NewSlotMatcher()

	// Busy until exactly 10:00; a 10:00 candidate must be free.
	busyByUser := map[string][]entity.TimeSlot{
		"alice": {busy(9, 0, 10, 0)},
	}

	suggestions, err := m.FindOptimalTimeSlots(busyByUser, 60,
		entity.TimeWindow{Start: "10:00", End: "11:00"}, testDate, 5)
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	require.Equal(t, 100.0, suggestions[0].Score)
}

func TestFindOptimalTimeSlots_MaxSuggestionsCap(t *testing.T) {
	m := NewSlotMatcher()
	users := map[string][]entity.TimeSlot{"alice": {}}
	window := entity.TimeWindow{Start: "09:00", End: "12:00"}

	suggestions, err := m.FindOptimalTimeSlots(users, 30, window, testDate, 2)
	require.NoError(t, err)
	require.Len(t, suggestions, 2)

	// maxSuggestions of zero means no results, not an error.
	suggestions, err = m.FindOptimalTimeSlots(users, 30, window, testDate, 0)
	require.NoError(t, err)
	require.Empty(t, suggestions)
}

func TestFindOptimalTimeSlots_Deterministic(t *testing.T) {
	m := NewSlotMatcher()

	busyByUser := map[string][]entity.TimeSlot{
		"alice": {busy(9, 0, 9, 30)},
		"bob":   {busy(11, 0, 12, 0)},
		"carol": {busy(9, 45, 10, 15)},
	}
	window := entity.TimeWindow{Start: "09:00", End: "13:00"}

	first, err := m.FindOptimalTimeSlots(busyByUser, 45, window, testDate, 5)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := m.FindOptimalTimeSlots(busyByUser, 45, window, testDate, 5)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}
