package service

import (
	"time"

	"meetmatch/modules/schedule/entity"
)

// BuildDaySlots discretizes one day's window into gridStepMinutes cells and
// annotates each cell with how many participants are free during it. A
// participant is free in a cell iff none of their busy intervals overlaps
// [t, t+step) — the same predicate the matcher uses, so a fully-free cell
// always agrees with a 100-score suggestion at the same instant.
//
// A cell is marked suggested when one of the given suggestions starts
// exactly at its time.
func BuildDaySlots(
	busyByUser map[string][]entity.TimeSlot,
	window entity.TimeWindow,
	targetDate time.Time,
	gridStepMinutes int,
	suggestions []entity.Suggestion,
) ([]entity.DisplaySlot, error) {

	windowStart, windowEnd, err := windowBounds(window, targetDate)
	if err != nil {
		return nil, err
	}
	if gridStepMinutes <= 0 {
		return nil, ErrInvalidDuration
	}

	suggestedAt := make(map[time.Time]bool, len(suggestions))
	for _, s := range suggestions {
		suggestedAt[s.StartTime] = true
	}

	step := time.Duration(gridStepMinutes) * time.Minute
	total := len(busyByUser)

	slots := []entity.DisplaySlot{}
	for t := windowStart; !t.Add(step).After(windowEnd); t = t.Add(step) {
		cell := entity.TimeSlot{Start: t, End: t.Add(step)}

		available := 0
		for _, busy := range busyByUser {
			if !hasConflict(cell, busy) {
				available++
			}
		}

		slots = append(slots, entity.DisplaySlot{
			Time:              t,
			AvailableCount:    available,
			TotalParticipants: total,
			IsSuggested:       suggestedAt[t],
		})
	}

	return slots, nil
}
