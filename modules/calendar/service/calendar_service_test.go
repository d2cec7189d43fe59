package service

import (
	"context"
	"testing"
	"time"

	"meetmatch/core/errors"
	"meetmatch/modules/calendar/entity"
	scheduleEntity "meetmatch/modules/schedule/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

type fakeConnRepo struct {
	connections map[uuid.UUID]*entity.CalendarConnection
	updates     int
}

func newFakeConnRepo() *fakeConnRepo {
	return &fakeConnRepo{connections: map[uuid.UUID]*entity.CalendarConnection{}}
}

func (f *fakeConnRepo) CreateConnection(_ context.Context, conn *entity.CalendarConnection) (*entity.CalendarConnection, error) {
	conn.ID = uuid.New()
	conn.CreatedAt = time.Now()
	f.connections[conn.UserID] = conn
	return conn, nil
}

func (f *fakeConnRepo) GetConnectionByUserAndProvider(_ context.Context, userID uuid.UUID, provider string) (*entity.CalendarConnection, error) {
	conn := f.connections[userID]
	if conn == nil || conn.Provider != provider || !conn.IsActive {
		return nil, nil
	}
	return conn, nil
}

func (f *fakeConnRepo) GetConnectionsByUserID(_ context.Context, userID uuid.UUID) ([]entity.CalendarConnection, error) {
	if conn := f.connections[userID]; conn != nil {
		return []entity.CalendarConnection{*conn}, nil
	}
	return nil, nil
}

func (f *fakeConnRepo) GetConnectionsExpiringBefore(_ context.Context, deadline time.Time) ([]entity.CalendarConnection, error) {
	var result []entity.CalendarConnection
	for _, conn := range f.connections {
		if conn.IsActive && conn.TokenExpiresAt.Before(deadline) {
			result = append(result, *conn)
		}
	}
	return result, nil
}

func (f *fakeConnRepo) UpdateConnection(_ context.Context, conn *entity.CalendarConnection) error {
	f.updates++
	f.connections[conn.UserID] = conn
	return nil
}

func (f *fakeConnRepo) DeleteConnection(_ context.Context, userID uuid.UUID, _ string) error {
	delete(f.connections, userID)
	return nil
}

// busyCache serves the busy-interval cache without redis.
type busyCache struct {
	intervals []scheduleEntity.TimeSlot
	hit       bool
}

func (c *busyCache) Set(context.Context, string, any, time.Duration) error { return nil }
func (c *busyCache) Delete(context.Context, string) error                  { return nil }
func (c *busyCache) SetOAuthState(context.Context, string) error           { return nil }
func (c *busyCache) ConsumeOAuthState(context.Context, string) (bool, error) {
	return false, nil
}
func (c *busyCache) Close() error { return nil }

func (c *busyCache) Get(_ context.Context, _ string, dest any) (bool, error) {
	if !c.hit {
		return false, nil
	}
	if slots, ok := dest.(*[]scheduleEntity.TimeSlot); ok {
		*slots = c.intervals
		return true, nil
	}
	return false, nil
}

func googleToken(access, refresh string, expiry time.Time) *oauth2.Token {
	return &oauth2.Token{AccessToken: access, RefreshToken: refresh, Expiry: expiry}
}

func TestSaveGoogleConnection_CreatesThenUpdates(t *testing.T) {
	repo := newFakeConnRepo()
	svc := NewCalendarService(repo, &busyCache{})
	userID := uuid.New()
	expiry := time.Now().Add(time.Hour)

	appErr := svc.SaveGoogleConnection(context.Background(), userID,
		googleToken("access-1", "refresh-1", expiry), "ada@example.com")
	require.Nil(t, appErr)

	conn := repo.connections[userID]
	require.NotNil(t, conn)
	require.Equal(t, entity.ProviderGoogle, conn.Provider)
	require.Equal(t, "access-1", conn.AccessToken)
	require.Equal(t, "refresh-1", conn.RefreshToken)
	require.True(t, conn.IsActive)

	// A repeat exchange without a refresh token keeps the stored one.
	appErr = svc.SaveGoogleConnection(context.Background(), userID,
		googleToken("access-2", "", expiry.Add(time.Hour)), "ada@example.com")
	require.Nil(t, appErr)

	conn = repo.connections[userID]
	require.Equal(t, "access-2", conn.AccessToken)
	require.Equal(t, "refresh-1", conn.RefreshToken)
}

func TestBusyIntervals_Disconnected(t *testing.T) {
	svc := NewCalendarService(newFakeConnRepo(), &busyCache{})

	intervals, connected, err := svc.BusyIntervals(context.Background(), uuid.New(),
		time.Now(), time.Now().Add(time.Hour))
	require.NoError(t, err)
	require.False(t, connected)
	require.Nil(t, intervals)
}

func TestBusyIntervals_ServedFromCache(t *testing.T) {
	repo := newFakeConnRepo()
	userID := uuid.New()
	repo.connections[userID] = &entity.CalendarConnection{
		UserID:   userID,
		Provider: entity.ProviderGoogle,
		IsActive: true,
	}

	cached := []scheduleEntity.TimeSlot{{
		Start: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
	}}
	svc := NewCalendarService(repo, &busyCache{intervals: cached, hit: true})

	intervals, connected, err := svc.BusyIntervals(context.Background(), userID,
		time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.True(t, connected)
	require.Equal(t, cached, intervals)
}

func TestDisconnect(t *testing.T) {
	repo := newFakeConnRepo()
	svc := NewCalendarService(repo, &busyCache{})
	userID := uuid.New()

	appErr := svc.Disconnect(context.Background(), userID, entity.ProviderGoogle)
	require.NotNil(t, appErr)
	require.Equal(t, errors.ErrNotFound, appErr.Code)

	require.Nil(t, svc.SaveGoogleConnection(context.Background(), userID,
		googleToken("access", "refresh", time.Now().Add(time.Hour)), "ada@example.com"))

	appErr = svc.Disconnect(context.Background(), userID, entity.ProviderGoogle)
	require.Nil(t, appErr)
	require.Nil(t, repo.connections[userID])
}
