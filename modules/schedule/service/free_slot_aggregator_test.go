package service

import (
	"testing"
	"time"

	"meetmatch/modules/schedule/entity"

	"github.com/stretchr/testify/require"
)

// slotRow builds a day of display slots from a free/busy pattern starting
// at 09:00 with 30-minute cells. 'f' = fully free, 'b' = someone busy,
// 's' = free but already surfaced as a suggestion.
func slotRow(pattern string) []entity.DisplaySlot {
	slots := make([]entity.DisplaySlot, 0, len(pattern))
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	for i, ch := range pattern {
		slot := entity.DisplaySlot{
			Time:              start.Add(time.Duration(i) * 30 * time.Minute),
			TotalParticipants: 2,
			AvailableCount:    2,
		}
		switch ch {
		case 'b':
			slot.AvailableCount = 1
		case 's':
			slot.IsSuggested = true
		}
		slots = append(slots, slot)
	}
	return slots
}

func TestAggregate_SplitsOnBusySlot(t *testing.T) {
	a := NewFreeSlotAggregator()

	// free, free, busy, free, free, free -> a 60-minute group and a
	// 90-minute group.
	groups := a.Aggregate(slotRow("ffbfff"), 60, 30)
	require.Len(t, groups, 2)

	require.Equal(t, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC), groups[0].StartTime)
	require.Equal(t, time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC), groups[0].EndTime)
	require.Equal(t, 60, groups[0].DurationMinutes)

	require.Equal(t, time.Date(2026, 3, 10, 10, 30, 0, 0, time.UTC), groups[1].StartTime)
	require.Equal(t, time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC), groups[1].EndTime)
	require.Equal(t, 90, groups[1].DurationMinutes)
}

func TestAggregate_SuggestedSlotBreaksRun(t *testing.T) {
	a := NewFreeSlotAggregator()

	// The suggested slot is free for everyone but must still split the run.
	groups := a.Aggregate(slotRow("ffsff"), 60, 30)
	require.Len(t, groups, 2)
	require.Equal(t, 60, groups[0].DurationMinutes)
	require.Equal(t, 60, groups[1].DurationMinutes)
}

func TestAggregate_AllFree(t *testing.T) {
	a := NewFreeSlotAggregator()

	groups := a.Aggregate(slotRow("ffff"), 60, 30)
	require.Len(t, groups, 1)
	require.Equal(t, 120, groups[0].DurationMinutes)
}

func TestAggregate_AllBusy(t *testing.T) {
	a := NewFreeSlotAggregator()

	groups := a.Aggregate(slotRow("bbbb"), 30, 30)
	require.Empty(t, groups)
}

func TestAggregate_DiscardsShortRuns(t *testing.T) {
	a := NewFreeSlotAggregator()

	// Single free slots between busy ones are below the 60-minute minimum.
	groups := a.Aggregate(slotRow("fbfbf"), 60, 30)
	require.Empty(t, groups)
}

func TestAggregate_MinimumBelowStepAllowsSingleSlot(t *testing.T) {
	a := NewFreeSlotAggregator()

	groups := a.Aggregate(slotRow("fbf"), 15, 30)
	require.Len(t, groups, 2)
	for _, g := range groups {
		require.Equal(t, 30, g.DurationMinutes)
	}
}

func TestAggregate_EmptyInput(t *testing.T) {
	a := NewFreeSlotAggregator()

	require.Empty(t, a.Aggregate(nil, 60, 30))
	require.Empty(t, a.Aggregate([]entity.DisplaySlot{}, 60, 30))
	require.Empty(t, a.Aggregate(slotRow("ffff"), 60, 0))
}
