package entity

import (
	"time"

	"meetmatch/core/entity"

	"github.com/google/uuid"
)

// Provider names
const (
	ProviderGoogle = "google"
)

// CalendarConnection stores a user's calendar provider credentials. Busy
// intervals are fetched with these tokens; the tokens are refreshed in
// place when Google rotates them.
type CalendarConnection struct {
	entity.BaseEntity
	UserID         uuid.UUID `db:"user_id" json:"user_id"`
	Provider       string    `db:"provider" json:"provider"`
	AccessToken    string    `db:"access_token" json:"-"`
	RefreshToken   string    `db:"refresh_token" json:"-"`
	TokenExpiresAt time.Time `db:"token_expires_at" json:"token_expires_at"`
	CalendarEmail  string    `db:"calendar_email" json:"calendar_email"`
	IsActive       bool      `db:"is_active" json:"is_active"`
}

func (CalendarConnection) TableName() string {
	return "calendar_connections"
}
