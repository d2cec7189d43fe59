package dto

import "time"

type ConnectionDTO struct {
	Provider      string    `json:"provider"`
	CalendarEmail string    `json:"calendar_email"`
	IsActive      bool      `json:"is_active"`
	ConnectedAt   time.Time `json:"connected_at"`
}

// FreeBusyRequest asks for raw busy intervals in an RFC3339 range.
type FreeBusyRequest struct {
	From string `json:"from" query:"from"`
	To   string `json:"to" query:"to"`
}

type BusyIntervalDTO struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type FreeBusyResponse struct {
	Busy []BusyIntervalDTO `json:"busy"`
}
