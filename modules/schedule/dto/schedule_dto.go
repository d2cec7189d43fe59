package dto

import "time"

// ===================== Request DTOs =====================

// SuggestRequest asks for ranked meeting-time suggestions for a set of
// participants on one day.
type SuggestRequest struct {
	UserIDs            []string `json:"user_ids" validate:"required"`
	Date               string   `json:"date"`         // YYYY-MM-DD, defaults to today
	WindowStart        string   `json:"window_start"` // HH:MM
	WindowEnd          string   `json:"window_end"`   // HH:MM
	DurationMinutes    int      `json:"duration_minutes"`
	MaxSuggestions     int      `json:"max_suggestions"`
	MinFreeSlotMinutes int      `json:"min_free_slot_minutes"`
}

// FreeSlotsRequest asks for per-day free-time windows over a date range.
type FreeSlotsRequest struct {
	UserIDs            []string `json:"user_ids" validate:"required"`
	StartDate          string   `json:"start_date"` // YYYY-MM-DD, defaults to today
	Days               int      `json:"days"`
	WindowStart        string   `json:"window_start"`
	WindowEnd          string   `json:"window_end"`
	MinFreeSlotMinutes int      `json:"min_free_slot_minutes"`
}

// ===================== Response DTOs =====================

// SuggestionDTO is one ranked candidate slot.
type SuggestionDTO struct {
	ID             string    `json:"id"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	AvailableUsers []string  `json:"available_users"`
	ConflictUsers  []string  `json:"conflict_users"`
	Score          float64   `json:"score"`
}

// DisplaySlotDTO is one cell of the 30-minute calendar grid.
type DisplaySlotDTO struct {
	Time              time.Time `json:"time"`
	AvailableCount    int       `json:"available_count"`
	TotalParticipants int       `json:"total_participants"`
	IsFullyFree       bool      `json:"is_fully_free"`
	IsSuggested       bool      `json:"is_suggested"`
}

// FreeSlotGroupDTO is a contiguous fully-free window.
type FreeSlotGroupDTO struct {
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	DurationMinutes int       `json:"duration_minutes"`
}

// SuggestResponse combines ranked suggestions with the display grid and
// its aggregated free windows for one day.
type SuggestResponse struct {
	Date            string             `json:"date"`
	WindowStart     string             `json:"window_start"`
	WindowEnd       string             `json:"window_end"`
	DurationMinutes int                `json:"duration_minutes"`
	Suggestions     []SuggestionDTO    `json:"suggestions"`
	DaySlots        []DisplaySlotDTO   `json:"day_slots"`
	FreeSlotGroups  []FreeSlotGroupDTO `json:"free_slot_groups"`
	Warnings        []string           `json:"warnings,omitempty"`
}

// DayFreeSlots is one day's grid and free windows in a range response.
type DayFreeSlots struct {
	Date           string             `json:"date"`
	Slots          []DisplaySlotDTO   `json:"slots"`
	FreeSlotGroups []FreeSlotGroupDTO `json:"free_slot_groups"`
}

// FreeSlotsResponse covers a multi-day range, one entry per calendar day.
// Free-time windows never cross a day boundary.
type FreeSlotsResponse struct {
	Days     []DayFreeSlots `json:"days"`
	Warnings []string       `json:"warnings,omitempty"`
}
