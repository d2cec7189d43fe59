package entity

import "time"

// TimeSlot is a half-open time range [Start, End). It is used both for
// busy intervals reported by calendar providers and for candidate meeting
// slots.
type TimeSlot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Overlaps reports whether two half-open ranges intersect. This is the one
// conflict predicate shared by the slot matcher and the display grid; the
// two must never diverge.
func (s TimeSlot) Overlaps(o TimeSlot) bool {
	return s.Start.Before(o.End) && s.End.After(o.Start)
}

// TimeWindow bounds the scan to a daily time-of-day range, both ends in
// "HH:MM" form with Start < End. Candidates never cross midnight.
type TimeWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Suggestion is a ranked candidate meeting slot. AvailableUsers and
// ConflictUsers partition the participant set passed to the matcher.
type Suggestion struct {
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	AvailableUsers []string  `json:"available_users"`
	ConflictUsers  []string  `json:"conflict_users"`
	Score          float64   `json:"score"`
}

// DisplaySlot is one cell of the coarse calendar grid, annotated with how
// many participants are free during [Time, Time+step).
type DisplaySlot struct {
	Time              time.Time `json:"time"`
	AvailableCount    int       `json:"available_count"`
	TotalParticipants int       `json:"total_participants"`
	IsSuggested       bool      `json:"is_suggested"`
}

// IsFullyFree reports whether every participant is free in this cell. An
// empty participant set is never "free".
func (d DisplaySlot) IsFullyFree() bool {
	return d.TotalParticipants > 0 && d.AvailableCount == d.TotalParticipants
}

// FreeSlotGroup is a maximal run of consecutive fully-free display slots.
type FreeSlotGroup struct {
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	DurationMinutes int       `json:"duration_minutes"`
}
