package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateMeetingRequest struct {
	Title           string   `json:"title"`
	Description     *string  `json:"description,omitempty"`
	DurationMinutes int      `json:"duration_minutes"`
	WindowStart     string   `json:"window_start"`
	WindowEnd       string   `json:"window_end"`
	TargetDate      string   `json:"target_date"`
	ParticipantIDs  []string `json:"participant_ids"`
}

type UpdateMeetingRequest struct {
	Title           *string `json:"title,omitempty"`
	Description     *string `json:"description,omitempty"`
	DurationMinutes *int    `json:"duration_minutes,omitempty"`
	WindowStart     *string `json:"window_start,omitempty"`
	WindowEnd       *string `json:"window_end,omitempty"`
	TargetDate      *string `json:"target_date,omitempty"`
	Status          *string `json:"status,omitempty"`
}

type AddParticipantRequest struct {
	UserID string `json:"user_id"`
}

type ParticipantDTO struct {
	UserID uuid.UUID `json:"user_id"`
	Status string    `json:"status"`
}

type MeetingDTO struct {
	ID              uuid.UUID        `json:"id"`
	HostID          uuid.UUID        `json:"host_id"`
	Title           string           `json:"title"`
	Description     *string          `json:"description,omitempty"`
	DurationMinutes int              `json:"duration_minutes"`
	WindowStart     string           `json:"window_start"`
	WindowEnd       string           `json:"window_end"`
	TargetDate      string           `json:"target_date"`
	Status          string           `json:"status"`
	PublicSlug      string           `json:"public_slug"`
	Participants    []ParticipantDTO `json:"participants,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
}

// PublicMeetingDTO is the read-only shape served on the shareable URL. It
// hides participant identities.
type PublicMeetingDTO struct {
	Title           string  `json:"title"`
	Description     *string `json:"description,omitempty"`
	DurationMinutes int     `json:"duration_minutes"`
	WindowStart     string  `json:"window_start"`
	WindowEnd       string  `json:"window_end"`
	TargetDate      string  `json:"target_date"`
	Status          string  `json:"status"`
}
