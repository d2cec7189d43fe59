package service

import (
	"errors"
	"sort"
	"time"

	"meetmatch/core/constants"
	"meetmatch/modules/schedule/entity"
)

// Matcher validation errors.
var (
	ErrInvalidWindow          = errors.New("window start and end must be HH:MM with start before end")
	ErrInvalidDuration        = errors.New("duration must be a positive number of minutes")
	ErrNegativeMaxSuggestions = errors.New("max suggestions must not be negative")
)

// SlotMatcher scans a daily window for candidate meeting slots and ranks
// them by how many participants are free. It is a pure computation: no
// I/O, no shared state, safe for concurrent use on independent inputs.
type SlotMatcher struct {
	// StepMinutes is the candidate scan granularity.
	StepMinutes int
}

// NewSlotMatcher creates a matcher with the default 15-minute scan step.
func NewSlotMatcher() *SlotMatcher {
	return &SlotMatcher{
		StepMinutes: constants.CandidateStepMinutes,
	}
}

// FindOptimalTimeSlots generates candidate slots of the requested duration
// at StepMinutes granularity inside the window on targetDate, classifies
// every participant per candidate, scores each candidate by the fraction of
// participants available, and returns at most maxSuggestions results sorted
// by score descending then start time ascending.
//
// A participant with no busy intervals (or no map entry at all) is always
// available. Input slices are never mutated.
func (m *SlotMatcher) FindOptimalTimeSlots(
	busyByUser map[string][]entity.TimeSlot,
	durationMinutes int,
	window entity.TimeWindow,
	targetDate time.Time,
	maxSuggestions int,
) ([]entity.Suggestion, error) {

	if durationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}
	if maxSuggestions < 0 {
		return nil, ErrNegativeMaxSuggestions
	}

	windowStart, windowEnd, err := windowBounds(window, targetDate)
	if err != nil {
		return nil, err
	}

	// Fixed iteration order keeps output deterministic across calls.
	userIDs := make([]string, 0, len(busyByUser))
	for id := range busyByUser {
		userIDs = append(userIDs, id)
	}
	sort.Strings(userIDs)

	duration := time.Duration(durationMinutes) * time.Minute
	step := time.Duration(m.StepMinutes) * time.Minute

	suggestions := []entity.Suggestion{}
	for start := windowStart; !start.Add(duration).After(windowEnd); start = start.Add(step) {
		candidate := entity.TimeSlot{Start: start, End: start.Add(duration)}

		available := []string{}
		conflicts := []string{}
		for _, userID := range userIDs {
			if hasConflict(candidate, busyByUser[userID]) {
				conflicts = append(conflicts, userID)
			} else {
				available = append(available, userID)
			}
		}

		score := 0.0
		if len(userIDs) > 0 {
			score = float64(len(available)) / float64(len(userIDs)) * 100
		}

		suggestions = append(suggestions, entity.Suggestion{
			StartTime:      candidate.Start,
			EndTime:        candidate.End,
			AvailableUsers: available,
			ConflictUsers:  conflicts,
			Score:          score,
		})
	}

	// Ties are common at full and zero availability; break them by start
	// time so earlier slots win.
	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].Score != suggestions[j].Score {
			return suggestions[i].Score > suggestions[j].Score
		}
		return suggestions[i].StartTime.Before(suggestions[j].StartTime)
	})

	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions, nil
}

// hasConflict reports whether any busy interval overlaps the candidate.
func hasConflict(candidate entity.TimeSlot, busy []entity.TimeSlot) bool {
	for _, interval := range busy {
		if candidate.Overlaps(interval) {
			return true
		}
	}
	return false
}

// windowBounds resolves a HH:MM window onto the target date, in the target
// date's location.
func windowBounds(window entity.TimeWindow, targetDate time.Time) (time.Time, time.Time, error) {
	start, err := time.Parse("15:04", window.Start)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidWindow
	}
	end, err := time.Parse("15:04", window.End)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidWindow
	}
	if !start.Before(end) {
		return time.Time{}, time.Time{}, ErrInvalidWindow
	}

	year, month, day := targetDate.Date()
	loc := targetDate.Location()
	windowStart := time.Date(year, month, day, start.Hour(), start.Minute(), 0, 0, loc)
	windowEnd := time.Date(year, month, day, end.Hour(), end.Minute(), 0, 0, loc)
	return windowStart, windowEnd, nil
}
