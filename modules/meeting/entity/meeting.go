package entity

import (
	"time"

	"meetmatch/core/entity"

	"github.com/google/uuid"
)

// Meeting statuses
const (
	StatusPending   = "pending"
	StatusScheduled = "scheduled"
	StatusCancelled = "cancelled"
)

// Participant statuses
const (
	ParticipantInvited  = "invited"
	ParticipantAccepted = "accepted"
	ParticipantDeclined = "declined"
)

// Meeting is a planned meeting whose concrete time has not necessarily
// been chosen yet. The scheduling window and duration drive slot search;
// PublicSlug gives the meeting a shareable read-only URL.
type Meeting struct {
	entity.BaseEntity
	HostID          uuid.UUID `db:"host_id" json:"host_id"`
	Title           string    `db:"title" json:"title"`
	Description     *string   `db:"description" json:"description,omitempty"`
	DurationMinutes int       `db:"duration_minutes" json:"duration_minutes"`
	WindowStart     string    `db:"window_start" json:"window_start"`
	WindowEnd       string    `db:"window_end" json:"window_end"`
	TargetDate      time.Time `db:"target_date" json:"target_date"`
	Status          string    `db:"status" json:"status"`
	PublicSlug      string    `db:"public_slug" json:"public_slug"`
}

func (Meeting) TableName() string {
	return "meetings"
}

type MeetingParticipant struct {
	entity.BaseEntity
	MeetingID uuid.UUID `db:"meeting_id" json:"meeting_id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	Status    string    `db:"status" json:"status"`
}

func (MeetingParticipant) TableName() string {
	return "meeting_participants"
}
