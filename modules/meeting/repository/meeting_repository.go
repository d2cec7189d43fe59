package repository

import (
	"context"
	"database/sql"

	"meetmatch/core/database"
	"meetmatch/core/logger"
	"meetmatch/core/params"
	"meetmatch/modules/meeting/entity"

	"github.com/google/uuid"
)

type MeetingRepository interface {
	CreateMeeting(ctx context.Context, meeting *entity.Meeting) (*entity.Meeting, error)
	GetMeetingByID(ctx context.Context, id uuid.UUID) (*entity.Meeting, error)
	GetMeetingBySlug(ctx context.Context, slug string) (*entity.Meeting, error)
	ListMeetingsByHost(ctx context.Context, hostID uuid.UUID, p params.QueryParams) ([]entity.Meeting, int64, error)
	UpdateMeeting(ctx context.Context, meeting *entity.Meeting) error
	DeleteMeeting(ctx context.Context, id uuid.UUID) error

	AddParticipant(ctx context.Context, participant *entity.MeetingParticipant) error
	RemoveParticipant(ctx context.Context, meetingID, userID uuid.UUID) error
	GetParticipants(ctx context.Context, meetingID uuid.UUID) ([]entity.MeetingParticipant, error)
}

type meetingRepository struct {
	db database.Database
}

func NewMeetingRepository(db database.Database) MeetingRepository {
	return &meetingRepository{db: db}
}

const meetingColumns = `
	id, host_id, title, description, duration_minutes, window_start, window_end,
	target_date, status, public_slug, created_at, updated_at
`

func (r *meetingRepository) CreateMeeting(ctx context.Context, meeting *entity.Meeting) (*entity.Meeting, error) {
	query := `
		INSERT INTO meetings (host_id, title, description, duration_minutes, window_start, window_end, target_date, status, public_slug)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		meeting.HostID, meeting.Title, meeting.Description, meeting.DurationMinutes,
		meeting.WindowStart, meeting.WindowEnd, meeting.TargetDate, meeting.Status, meeting.PublicSlug,
	).Scan(&meeting.ID, &meeting.CreatedAt, &meeting.UpdatedAt)
	if err != nil {
		logger.Error("MeetingRepository:CreateMeeting", "error", err)
		return nil, err
	}
	return meeting, nil
}

func (r *meetingRepository) GetMeetingByID(ctx context.Context, id uuid.UUID) (*entity.Meeting, error) {
	query := `SELECT ` + meetingColumns + ` FROM meetings WHERE id = $1`

	var meeting entity.Meeting
	err := r.db.GetContext(ctx, &meeting, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("MeetingRepository:GetMeetingByID", "error", err)
		return nil, err
	}
	return &meeting, nil
}

func (r *meetingRepository) GetMeetingBySlug(ctx context.Context, slug string) (*entity.Meeting, error) {
	query := `SELECT ` + meetingColumns + ` FROM meetings WHERE public_slug = $1`

	var meeting entity.Meeting
	err := r.db.GetContext(ctx, &meeting, query, slug)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("MeetingRepository:GetMeetingBySlug", "error", err)
		return nil, err
	}
	return &meeting, nil
}

func (r *meetingRepository) ListMeetingsByHost(ctx context.Context, hostID uuid.UUID, p params.QueryParams) ([]entity.Meeting, int64, error) {
	countQuery := `SELECT COUNT(*) FROM meetings WHERE host_id = $1`
	var total int64
	if err := r.db.GetContext(ctx, &total, countQuery, hostID); err != nil {
		logger.Error("MeetingRepository:ListMeetingsByHost:Count", "error", err)
		return nil, 0, err
	}

	query := `
		SELECT ` + meetingColumns + `
		FROM meetings
		WHERE host_id = $1
		ORDER BY target_date, created_at
		LIMIT $2 OFFSET $3
	`
	var meetings []entity.Meeting
	if err := r.db.SelectContext(ctx, &meetings, query, hostID, p.PageSize, p.Offset()); err != nil {
		logger.Error("MeetingRepository:ListMeetingsByHost", "error", err)
		return nil, 0, err
	}
	return meetings, total, nil
}

func (r *meetingRepository) UpdateMeeting(ctx context.Context, meeting *entity.Meeting) error {
	query := `
		UPDATE meetings
		SET title = $2, description = $3, duration_minutes = $4, window_start = $5,
		    window_end = $6, target_date = $7, status = $8, updated_at = NOW()
		WHERE id = $1
	`
	err := r.db.ExecContext(ctx, query,
		meeting.ID, meeting.Title, meeting.Description, meeting.DurationMinutes,
		meeting.WindowStart, meeting.WindowEnd, meeting.TargetDate, meeting.Status)
	if err != nil {
		logger.Error("MeetingRepository:UpdateMeeting", "error", err)
	}
	return err
}

func (r *meetingRepository) DeleteMeeting(ctx context.Context, id uuid.UUID) error {
	// Participants go with the meeting.
	if err := r.db.ExecContext(ctx, `DELETE FROM meeting_participants WHERE meeting_id = $1`, id); err != nil {
		logger.Error("MeetingRepository:DeleteMeeting:Participants", "error", err)
		return err
	}
	err := r.db.ExecContext(ctx, `DELETE FROM meetings WHERE id = $1`, id)
	if err != nil {
		logger.Error("MeetingRepository:DeleteMeeting", "error", err)
	}
	return err
}

func (r *meetingRepository) AddParticipant(ctx context.Context, participant *entity.MeetingParticipant) error {
	query := `
		INSERT INTO meeting_participants (meeting_id, user_id, status)
		VALUES ($1, $2, $3)
		ON CONFLICT (meeting_id, user_id) DO UPDATE SET status = EXCLUDED.status, updated_at = NOW()
	`
	err := r.db.ExecContext(ctx, query, participant.MeetingID, participant.UserID, participant.Status)
	if err != nil {
		logger.Error("MeetingRepository:AddParticipant", "error", err)
	}
	return err
}

func (r *meetingRepository) RemoveParticipant(ctx context.Context, meetingID, userID uuid.UUID) error {
	query := `DELETE FROM meeting_participants WHERE meeting_id = $1 AND user_id = $2`
	err := r.db.ExecContext(ctx, query, meetingID, userID)
	if err != nil {
		logger.Error("MeetingRepository:RemoveParticipant", "error", err)
	}
	return err
}

func (r *meetingRepository) GetParticipants(ctx context.Context, meetingID uuid.UUID) ([]entity.MeetingParticipant, error) {
	query := `
		SELECT id, meeting_id, user_id, status, created_at, updated_at
		FROM meeting_participants
		WHERE meeting_id = $1
		ORDER BY created_at
	`
	var participants []entity.MeetingParticipant
	if err := r.db.SelectContext(ctx, &participants, query, meetingID); err != nil {
		logger.Error("MeetingRepository:GetParticipants", "error", err)
		return nil, err
	}
	return participants, nil
}
