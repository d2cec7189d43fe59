package service

import (
	"context"
	"testing"
	"time"

	"meetmatch/core/config"
	"meetmatch/core/errors"
	"meetmatch/modules/auth/dto"
	"meetmatch/modules/auth/entity"
	calendarDto "meetmatch/modules/calendar/dto"
	scheduleEntity "meetmatch/modules/schedule/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

type fakeAuthRepo struct {
	byEmail map[string]*entity.User
	byID    map[uuid.UUID]*entity.User
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{
		byEmail: map[string]*entity.User{},
		byID:    map[uuid.UUID]*entity.User{},
	}
}

func (f *fakeAuthRepo) CreateUser(_ context.Context, user *entity.User) (*entity.User, error) {
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	f.byEmail[user.Email] = user
	f.byID[user.ID] = user
	return user, nil
}

func (f *fakeAuthRepo) GetUserByEmail(_ context.Context, email string) (*entity.User, error) {
	return f.byEmail[email], nil
}

func (f *fakeAuthRepo) GetUserByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	return f.byID[id], nil
}

func (f *fakeAuthRepo) UpdateUser(_ context.Context, user *entity.User) error {
	f.byEmail[user.Email] = user
	f.byID[user.ID] = user
	return nil
}

type fakeCache struct {
	states map[string]bool
}

func newFakeCache() *fakeCache {
	return &fakeCache{states: map[string]bool{}}
}

func (f *fakeCache) Set(context.Context, string, any, time.Duration) error { return nil }
func (f *fakeCache) Get(context.Context, string, any) (bool, error)        { return false, nil }
func (f *fakeCache) Delete(context.Context, string) error                  { return nil }
func (f *fakeCache) Close() error                                          { return nil }

func (f *fakeCache) SetOAuthState(_ context.Context, state string) error {
	f.states[state] = true
	return nil
}

func (f *fakeCache) ConsumeOAuthState(_ context.Context, state string) (bool, error) {
	ok := f.states[state]
	delete(f.states, state)
	return ok, nil
}

type fakeCalendarService struct {
	saved int
}

func (f *fakeCalendarService) SaveGoogleConnection(context.Context, uuid.UUID, *oauth2.Token, string) *errors.AppError {
	f.saved++
	return nil
}

func (f *fakeCalendarService) GetConnections(context.Context, uuid.UUID) ([]calendarDto.ConnectionDTO, *errors.AppError) {
	return nil, nil
}

func (f *fakeCalendarService) Disconnect(context.Context, uuid.UUID, string) *errors.AppError {
	return nil
}

func (f *fakeCalendarService) FreeBusy(context.Context, uuid.UUID, *calendarDto.FreeBusyRequest) (*calendarDto.FreeBusyResponse, *errors.AppError) {
	return nil, nil
}

func (f *fakeCalendarService) BusyIntervals(context.Context, uuid.UUID, time.Time, time.Time) ([]scheduleEntity.TimeSlot, bool, error) {
	return nil, false, nil
}

func (f *fakeCalendarService) RefreshExpiringTokens(context.Context) error { return nil }

func newTestAuthService(t *testing.T) (AuthServiceInterface, *fakeAuthRepo, *fakeCache) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	_, err := config.Load()
	require.NoError(t, err)

	repo := newFakeAuthRepo()
	c := newFakeCache()
	return NewAuthService(repo, c, &fakeCalendarService{}), repo, c
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	resp, appErr := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "Ada@Example.com",
		Name:     "Ada",
		Password: "hunter2hunter2",
	})
	require.Nil(t, appErr)
	require.NotEmpty(t, resp.Token)
	require.Equal(t, "ada@example.com", resp.User.Email)

	login, appErr := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "ada@example.com",
		Password: "hunter2hunter2",
	})
	require.Nil(t, appErr)
	require.Equal(t, resp.User.ID, login.User.ID)
}

func TestRegister_Validation(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	_, appErr := svc.Register(context.Background(), &dto.RegisterRequest{
		Email: "not-an-email", Password: "hunter2hunter2",
	})
	require.NotNil(t, appErr)
	require.Equal(t, errors.ErrInvalidInput, appErr.Code)

	_, appErr = svc.Register(context.Background(), &dto.RegisterRequest{
		Email: "a@b.com", Password: "short",
	})
	require.NotNil(t, appErr)
	require.Equal(t, errors.ErrInvalidInput, appErr.Code)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	req := &dto.RegisterRequest{Email: "a@b.com", Password: "hunter2hunter2"}
	_, appErr := svc.Register(context.Background(), req)
	require.Nil(t, appErr)

	_, appErr = svc.Register(context.Background(), req)
	require.NotNil(t, appErr)
	require.Equal(t, errors.ErrAlreadyExists, appErr.Code)
}

func TestLogin_RejectsBadCredentials(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	_, appErr := svc.Register(context.Background(), &dto.RegisterRequest{
		Email: "a@b.com", Password: "hunter2hunter2",
	})
	require.Nil(t, appErr)

	_, appErr = svc.Login(context.Background(), &dto.LoginRequest{
		Email: "a@b.com", Password: "wrong-password",
	})
	require.NotNil(t, appErr)
	require.Equal(t, errors.ErrUnauthorized, appErr.Code)

	_, appErr = svc.Login(context.Background(), &dto.LoginRequest{
		Email: "nobody@b.com", Password: "hunter2hunter2",
	})
	require.NotNil(t, appErr)
	require.Equal(t, errors.ErrUnauthorized, appErr.Code)
}

func TestGoogleLoginURL_StoresState(t *testing.T) {
	svc, _, c := newTestAuthService(t)

	resp, appErr := svc.GoogleLoginURL(context.Background())
	require.Nil(t, appErr)
	require.Contains(t, resp.URL, "state=")
	require.Len(t, c.states, 1)
}

func TestGoogleCallback_RejectsUnknownState(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	_, appErr := svc.GoogleCallback(context.Background(), &dto.GoogleCallbackRequest{
		Code: "some-code", State: "never-issued",
	})
	require.NotNil(t, appErr)
	require.Equal(t, errors.ErrUnauthorized, appErr.Code)

	_, appErr = svc.GoogleCallback(context.Background(), &dto.GoogleCallbackRequest{})
	require.NotNil(t, appErr)
	require.Equal(t, errors.ErrInvalidInput, appErr.Code)
}

func TestMe(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	resp, appErr := svc.Register(context.Background(), &dto.RegisterRequest{
		Email: "a@b.com", Name: "Ada", Password: "hunter2hunter2",
	})
	require.Nil(t, appErr)

	me, appErr := svc.Me(context.Background(), resp.User.ID)
	require.Nil(t, appErr)
	require.Equal(t, "Ada", me.Name)

	_, appErr = svc.Me(context.Background(), uuid.New())
	require.NotNil(t, appErr)
	require.Equal(t, errors.ErrNotFound, appErr.Code)
}
