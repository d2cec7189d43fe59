package service

import (
	"context"
	"testing"
	"time"

	"meetmatch/core/errors"
	"meetmatch/core/params"
	"meetmatch/modules/meeting/dto"
	"meetmatch/modules/meeting/entity"
	scheduleDto "meetmatch/modules/schedule/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type fakeMeetingRepo struct {
	meetings     map[uuid.UUID]*entity.Meeting
	participants map[uuid.UUID][]entity.MeetingParticipant
}

func newFakeMeetingRepo() *fakeMeetingRepo {
	return &fakeMeetingRepo{
		meetings:     map[uuid.UUID]*entity.Meeting{},
		participants: map[uuid.UUID][]entity.MeetingParticipant{},
	}
}

func (f *fakeMeetingRepo) CreateMeeting(_ context.Context, m *entity.Meeting) (*entity.Meeting, error) {
	m.ID = uuid.New()
	m.CreatedAt = time.Now()
	m.UpdatedAt = m.CreatedAt
	f.meetings[m.ID] = m
	return m, nil
}

func (f *fakeMeetingRepo) GetMeetingByID(_ context.Context, id uuid.UUID) (*entity.Meeting, error) {
	return f.meetings[id], nil
}

func (f *fakeMeetingRepo) GetMeetingBySlug(_ context.Context, slug string) (*entity.Meeting, error) {
	for _, m := range f.meetings {
		if m.PublicSlug == slug {
			return m, nil
		}
	}
	return nil, nil
}

func (f *fakeMeetingRepo) ListMeetingsByHost(_ context.Context, hostID uuid.UUID, _ params.QueryParams) ([]entity.Meeting, int64, error) {
	var result []entity.Meeting
	for _, m := range f.meetings {
		if m.HostID == hostID {
			result = append(result, *m)
		}
	}
	return result, int64(len(result)), nil
}

func (f *fakeMeetingRepo) UpdateMeeting(_ context.Context, m *entity.Meeting) error {
	f.meetings[m.ID] = m
	return nil
}

func (f *fakeMeetingRepo) DeleteMeeting(_ context.Context, id uuid.UUID) error {
	delete(f.meetings, id)
	delete(f.participants, id)
	return nil
}

func (f *fakeMeetingRepo) AddParticipant(_ context.Context, p *entity.MeetingParticipant) error {
	for _, existing := range f.participants[p.MeetingID] {
		if existing.UserID == p.UserID {
			return nil
		}
	}
	f.participants[p.MeetingID] = append(f.participants[p.MeetingID], *p)
	return nil
}

func (f *fakeMeetingRepo) RemoveParticipant(_ context.Context, meetingID, userID uuid.UUID) error {
	kept := f.participants[meetingID][:0]
	for _, p := range f.participants[meetingID] {
		if p.UserID != userID {
			kept = append(kept, p)
		}
	}
	f.participants[meetingID] = kept
	return nil
}

func (f *fakeMeetingRepo) GetParticipants(_ context.Context, meetingID uuid.UUID) ([]entity.MeetingParticipant, error) {
	return f.participants[meetingID], nil
}

type fakeScheduleService struct {
	lastRequest *scheduleDto.SuggestRequest
}

func (f *fakeScheduleService) Suggest(_ context.Context, req *scheduleDto.SuggestRequest) (*scheduleDto.SuggestResponse, *errors.AppError) {
	f.lastRequest = req
	return &scheduleDto.SuggestResponse{
		Date:            req.Date,
		DurationMinutes: req.DurationMinutes,
		Suggestions:     []scheduleDto.SuggestionDTO{},
	}, nil
}

func (f *fakeScheduleService) FreeSlots(_ context.Context, _ *scheduleDto.FreeSlotsRequest) (*scheduleDto.FreeSlotsResponse, *errors.AppError) {
	return &scheduleDto.FreeSlotsResponse{}, nil
}

func TestCreateMeeting(t *testing.T) {
	repo := newFakeMeetingRepo()
	svc := NewMeetingService(repo, &fakeScheduleService{})
	hostID := uuid.New()
	participant := uuid.New()

	meeting, appErr := svc.Create(context.Background(), hostID, &dto.CreateMeetingRequest{
		Title:          "Project Sync",
		TargetDate:     "2026-03-10",
		ParticipantIDs: []string{participant.String()},
	})
	require.Nil(t, appErr)

	require.Equal(t, hostID, meeting.HostID)
	require.Equal(t, "pending", meeting.Status)
	require.Equal(t, 60, meeting.DurationMinutes)
	require.Equal(t, "09:00", meeting.WindowStart)
	require.Equal(t, "22:00", meeting.WindowEnd)
	require.Contains(t, meeting.PublicSlug, "project-sync-")
	require.Len(t, meeting.Participants, 1)
	require.Equal(t, participant, meeting.Participants[0].UserID)
}

func TestCreateMeeting_Validation(t *testing.T) {
	svc := NewMeetingService(newFakeMeetingRepo(), &fakeScheduleService{})
	hostID := uuid.New()

	_, appErr := svc.Create(context.Background(), hostID, &dto.CreateMeetingRequest{
		Title: "  ", TargetDate: "2026-03-10",
	})
	require.NotNil(t, appErr)
	require.Equal(t, errors.ErrInvalidInput, appErr.Code)

	_, appErr = svc.Create(context.Background(), hostID, &dto.CreateMeetingRequest{
		Title: "Sync", TargetDate: "tomorrow",
	})
	require.NotNil(t, appErr)
	require.Equal(t, errors.ErrInvalidInput, appErr.Code)
}

func TestMeetingHostAuthorization(t *testing.T) {
	repo := newFakeMeetingRepo()
	svc := NewMeetingService(repo, &fakeScheduleService{})
	hostID := uuid.New()
	stranger := uuid.New()

	meeting, appErr := svc.Create(context.Background(), hostID, &dto.CreateMeetingRequest{
		Title: "Sync", TargetDate: "2026-03-10",
	})
	require.Nil(t, appErr)
	meetingID := meeting.ID

	_, appErr = svc.Get(context.Background(), stranger, meetingID)
	require.NotNil(t, appErr)
	require.Equal(t, errors.ErrForbidden, appErr.Code)

	appErr = svc.Delete(context.Background(), stranger, meetingID)
	require.NotNil(t, appErr)
	require.Equal(t, errors.ErrForbidden, appErr.Code)

	_, appErr = svc.Get(context.Background(), hostID, meetingID)
	require.Nil(t, appErr)
}

func TestUpdateMeeting_StatusTransitions(t *testing.T) {
	repo := newFakeMeetingRepo()
	svc := NewMeetingService(repo, &fakeScheduleService{})
	hostID := uuid.New()

	meeting, appErr := svc.Create(context.Background(), hostID, &dto.CreateMeetingRequest{
		Title: "Sync", TargetDate: "2026-03-10",
	})
	require.Nil(t, appErr)

	scheduled := entity.StatusScheduled
	updated, appErr := svc.Update(context.Background(), hostID, meeting.ID, &dto.UpdateMeetingRequest{
		Status: &scheduled,
	})
	require.Nil(t, appErr)
	require.Equal(t, entity.StatusScheduled, updated.Status)

	bogus := "postponed"
	_, appErr = svc.Update(context.Background(), hostID, meeting.ID, &dto.UpdateMeetingRequest{
		Status: &bogus,
	})
	require.NotNil(t, appErr)
	require.Equal(t, errors.ErrInvalidInput, appErr.Code)
}

func TestGetBySlug_HidesParticipants(t *testing.T) {
	repo := newFakeMeetingRepo()
	svc := NewMeetingService(repo, &fakeScheduleService{})
	hostID := uuid.New()

	meeting, appErr := svc.Create(context.Background(), hostID, &dto.CreateMeetingRequest{
		Title: "Quarterly Review", TargetDate: "2026-03-10",
		ParticipantIDs: []string{uuid.NewString()},
	})
	require.Nil(t, appErr)

	public, appErr := svc.GetBySlug(context.Background(), meeting.PublicSlug)
	require.Nil(t, appErr)
	require.Equal(t, "Quarterly Review", public.Title)
	require.Equal(t, "2026-03-10", public.TargetDate)

	_, appErr = svc.GetBySlug(context.Background(), "no-such-slug")
	require.NotNil(t, appErr)
	require.Equal(t, errors.ErrNotFound, appErr.Code)
}

func TestFindSlots_DelegatesWithHostAndParticipants(t *testing.T) {
	repo := newFakeMeetingRepo()
	schedule := &fakeScheduleService{}
	svc := NewMeetingService(repo, schedule)
	hostID := uuid.New()
	participant := uuid.New()

	meeting, appErr := svc.Create(context.Background(), hostID, &dto.CreateMeetingRequest{
		Title:           "Sync",
		TargetDate:      "2026-03-10",
		DurationMinutes: 45,
		WindowStart:     "10:00",
		WindowEnd:       "16:00",
		ParticipantIDs:  []string{participant.String(), hostID.String()},
	})
	require.Nil(t, appErr)

	resp, appErr := svc.FindSlots(context.Background(), hostID, meeting.ID)
	require.Nil(t, appErr)
	require.Equal(t, "2026-03-10", resp.Date)

	req := schedule.lastRequest
	require.NotNil(t, req)
	require.Equal(t, 45, req.DurationMinutes)
	require.Equal(t, "10:00", req.WindowStart)
	require.Equal(t, "16:00", req.WindowEnd)
	// Host appears exactly once even when also listed as a participant.
	require.ElementsMatch(t, []string{hostID.String(), participant.String()}, req.UserIDs)
}
