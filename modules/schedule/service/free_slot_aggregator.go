package service

import (
	"time"

	"meetmatch/modules/schedule/entity"
)

// FreeSlotAggregator merges consecutive fully-free display slots into
// contiguous windows for calendar-grid highlighting. Like the matcher it is
// pure and stateless.
type FreeSlotAggregator struct{}

func NewFreeSlotAggregator() *FreeSlotAggregator {
	return &FreeSlotAggregator{}
}

// Aggregate scans one day's display slots in chronological order and emits
// every maximal run of fully-free slots whose total duration reaches
// minDurationMinutes. Slots that coincide with an already-surfaced
// suggestion break the run even when free for everyone, so the grid does
// not double-emphasize them. Runs shorter than the minimum are discarded.
func (a *FreeSlotAggregator) Aggregate(
	displaySlots []entity.DisplaySlot,
	minDurationMinutes int,
	gridStepMinutes int,
) []entity.FreeSlotGroup {

	if gridStepMinutes <= 0 {
		return []entity.FreeSlotGroup{}
	}

	groups := []entity.FreeSlotGroup{}
	var run []entity.DisplaySlot

	flush := func() {
		if len(run) == 0 {
			return
		}
		duration := len(run) * gridStepMinutes
		if duration >= minDurationMinutes {
			last := run[len(run)-1]
			groups = append(groups, entity.FreeSlotGroup{
				StartTime:       run[0].Time,
				EndTime:         last.Time.Add(time.Duration(gridStepMinutes) * time.Minute),
				DurationMinutes: duration,
			})
		}
		run = nil
	}

	for _, slot := range displaySlots {
		if slot.IsFullyFree() && !slot.IsSuggested {
			run = append(run, slot)
			continue
		}
		flush()
	}
	flush()

	return groups
}
