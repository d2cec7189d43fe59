package repository

import (
	"context"
	"database/sql"
	"time"

	"meetmatch/core/database"
	"meetmatch/core/logger"
	"meetmatch/modules/calendar/entity"

	"github.com/google/uuid"
)

type CalendarRepository interface {
	CreateConnection(ctx context.Context, conn *entity.CalendarConnection) (*entity.CalendarConnection, error)
	GetConnectionByUserAndProvider(ctx context.Context, userID uuid.UUID, provider string) (*entity.CalendarConnection, error)
	GetConnectionsByUserID(ctx context.Context, userID uuid.UUID) ([]entity.CalendarConnection, error)
	GetConnectionsExpiringBefore(ctx context.Context, deadline time.Time) ([]entity.CalendarConnection, error)
	UpdateConnection(ctx context.Context, conn *entity.CalendarConnection) error
	DeleteConnection(ctx context.Context, userID uuid.UUID, provider string) error
}

type calendarRepository struct {
	db database.Database
}

func NewCalendarRepository(db database.Database) CalendarRepository {
	return &calendarRepository{db: db}
}

const connectionColumns = `
	id, user_id, provider, access_token, refresh_token, token_expires_at,
	calendar_email, is_active, created_at, updated_at
`

func (r *calendarRepository) CreateConnection(ctx context.Context, conn *entity.CalendarConnection) (*entity.CalendarConnection, error) {
	query := `
		INSERT INTO calendar_connections (user_id, provider, access_token, refresh_token, token_expires_at, calendar_email, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		conn.UserID, conn.Provider, conn.AccessToken, conn.RefreshToken,
		conn.TokenExpiresAt, conn.CalendarEmail, conn.IsActive,
	).Scan(&conn.ID, &conn.CreatedAt, &conn.UpdatedAt)

	if err != nil {
		logger.Error("CalendarRepository:CreateConnection", "error", err)
		return nil, err
	}
	return conn, nil
}

// GetConnectionByUserAndProvider returns nil when no active connection
// exists.
func (r *calendarRepository) GetConnectionByUserAndProvider(ctx context.Context, userID uuid.UUID, provider string) (*entity.CalendarConnection, error) {
	query := `
		SELECT ` + connectionColumns + `
		FROM calendar_connections
		WHERE user_id = $1 AND provider = $2 AND is_active = true
	`
	var conn entity.CalendarConnection
	err := r.db.GetContext(ctx, &conn, query, userID, provider)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("CalendarRepository:GetConnectionByUserAndProvider", "error", err)
		return nil, err
	}
	return &conn, nil
}

func (r *calendarRepository) GetConnectionsByUserID(ctx context.Context, userID uuid.UUID) ([]entity.CalendarConnection, error) {
	query := `
		SELECT ` + connectionColumns + `
		FROM calendar_connections
		WHERE user_id = $1
		ORDER BY created_at
	`
	var connections []entity.CalendarConnection
	if err := r.db.SelectContext(ctx, &connections, query, userID); err != nil {
		logger.Error("CalendarRepository:GetConnectionsByUserID", "error", err)
		return nil, err
	}
	return connections, nil
}

// GetConnectionsExpiringBefore lists active connections whose access token
// expires before the deadline, for the background refresh task.
func (r *calendarRepository) GetConnectionsExpiringBefore(ctx context.Context, deadline time.Time) ([]entity.CalendarConnection, error) {
	query := `
		SELECT ` + connectionColumns + `
		FROM calendar_connections
		WHERE is_active = true AND refresh_token <> '' AND token_expires_at < $1
		ORDER BY token_expires_at
	`
	var connections []entity.CalendarConnection
	if err := r.db.SelectContext(ctx, &connections, query, deadline); err != nil {
		logger.Error("CalendarRepository:GetConnectionsExpiringBefore", "error", err)
		return nil, err
	}
	return connections, nil
}

func (r *calendarRepository) UpdateConnection(ctx context.Context, conn *entity.CalendarConnection) error {
	query := `
		UPDATE calendar_connections
		SET access_token = $2, refresh_token = $3, token_expires_at = $4,
		    calendar_email = $5, is_active = $6, updated_at = NOW()
		WHERE id = $1
	`
	err := r.db.ExecContext(ctx, query,
		conn.ID, conn.AccessToken, conn.RefreshToken, conn.TokenExpiresAt,
		conn.CalendarEmail, conn.IsActive)
	if err != nil {
		logger.Error("CalendarRepository:UpdateConnection", "error", err)
	}
	return err
}

func (r *calendarRepository) DeleteConnection(ctx context.Context, userID uuid.UUID, provider string) error {
	query := `DELETE FROM calendar_connections WHERE user_id = $1 AND provider = $2`
	err := r.db.ExecContext(ctx, query, userID, provider)
	if err != nil {
		logger.Error("CalendarRepository:DeleteConnection", "error", err)
	}
	return err
}
