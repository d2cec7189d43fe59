package service

import (
	"context"
	"strings"
	"time"

	"meetmatch/core/constants"
	coreDto "meetmatch/core/dto"
	"meetmatch/core/errors"
	"meetmatch/core/params"
	"meetmatch/core/utils"
	"meetmatch/modules/meeting/dto"
	"meetmatch/modules/meeting/entity"
	"meetmatch/modules/meeting/repository"
	scheduleDto "meetmatch/modules/schedule/dto"
	scheduleService "meetmatch/modules/schedule/service"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

type MeetingServiceInterface interface {
	Create(ctx context.Context, hostID uuid.UUID, req *dto.CreateMeetingRequest) (*dto.MeetingDTO, *errors.AppError)
	Get(ctx context.Context, hostID, meetingID uuid.UUID) (*dto.MeetingDTO, *errors.AppError)
	GetBySlug(ctx context.Context, slug string) (*dto.PublicMeetingDTO, *errors.AppError)
	List(ctx context.Context, hostID uuid.UUID, p params.QueryParams) (*coreDto.Pagination[dto.MeetingDTO], *errors.AppError)
	Update(ctx context.Context, hostID, meetingID uuid.UUID, req *dto.UpdateMeetingRequest) (*dto.MeetingDTO, *errors.AppError)
	Delete(ctx context.Context, hostID, meetingID uuid.UUID) *errors.AppError
	AddParticipant(ctx context.Context, hostID, meetingID uuid.UUID, req *dto.AddParticipantRequest) *errors.AppError
	RemoveParticipant(ctx context.Context, hostID, meetingID, userID uuid.UUID) *errors.AppError

	// FindSlots recomputes suggestions for the meeting's participants.
	// Nothing is persisted; each call reflects current calendar data.
	FindSlots(ctx context.Context, hostID, meetingID uuid.UUID) (*scheduleDto.SuggestResponse, *errors.AppError)
}

type MeetingService struct {
	repo     repository.MeetingRepository
	schedule scheduleService.ScheduleServiceInterface
}

func NewMeetingService(repo repository.MeetingRepository, schedule scheduleService.ScheduleServiceInterface) MeetingServiceInterface {
	return &MeetingService{
		repo:     repo,
		schedule: schedule,
	}
}

func (s *MeetingService) Create(ctx context.Context, hostID uuid.UUID, req *dto.CreateMeetingRequest) (*dto.MeetingDTO, *errors.AppError) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "title is required", nil)
	}

	targetDate, appErr := parseTargetDate(req.TargetDate)
	if appErr != nil {
		return nil, appErr
	}

	meeting := &entity.Meeting{
		HostID:          hostID,
		Title:           title,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		WindowStart:     req.WindowStart,
		WindowEnd:       req.WindowEnd,
		TargetDate:      targetDate,
		Status:          entity.StatusPending,
		PublicSlug:      slug.Make(title) + "-" + utils.GenerateID(),
	}
	if meeting.DurationMinutes <= 0 {
		meeting.DurationMinutes = constants.DefaultDurationMinutes
	}
	if meeting.WindowStart == "" {
		meeting.WindowStart = constants.DefaultWindowStart
	}
	if meeting.WindowEnd == "" {
		meeting.WindowEnd = constants.DefaultWindowEnd
	}

	if _, err := s.repo.CreateMeeting(ctx, meeting); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to create meeting", err)
	}

	for _, idStr := range req.ParticipantIDs {
		userID, err := uuid.Parse(idStr)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "invalid participant id "+idStr, err)
		}
		participant := &entity.MeetingParticipant{
			MeetingID: meeting.ID,
			UserID:    userID,
			Status:    entity.ParticipantInvited,
		}
		if err := s.repo.AddParticipant(ctx, participant); err != nil {
			return nil, errors.NewAppError(errors.ErrInternalServer, "failed to add participant", err)
		}
	}

	return s.loadMeetingDTO(ctx, meeting)
}

func (s *MeetingService) Get(ctx context.Context, hostID, meetingID uuid.UUID) (*dto.MeetingDTO, *errors.AppError) {
	meeting, appErr := s.ownedMeeting(ctx, hostID, meetingID)
	if appErr != nil {
		return nil, appErr
	}
	return s.loadMeetingDTO(ctx, meeting)
}

func (s *MeetingService) GetBySlug(ctx context.Context, publicSlug string) (*dto.PublicMeetingDTO, *errors.AppError) {
	meeting, err := s.repo.GetMeetingBySlug(ctx, publicSlug)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load meeting", err)
	}
	if meeting == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "meeting not found", nil)
	}
	return &dto.PublicMeetingDTO{
		Title:           meeting.Title,
		Description:     meeting.Description,
		DurationMinutes: meeting.DurationMinutes,
		WindowStart:     meeting.WindowStart,
		WindowEnd:       meeting.WindowEnd,
		TargetDate:      meeting.TargetDate.Format("2006-01-02"),
		Status:          meeting.Status,
	}, nil
}

func (s *MeetingService) List(ctx context.Context, hostID uuid.UUID, p params.QueryParams) (*coreDto.Pagination[dto.MeetingDTO], *errors.AppError) {
	meetings, total, err := s.repo.ListMeetingsByHost(ctx, hostID, p)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to list meetings", err)
	}

	items := make([]dto.MeetingDTO, 0, len(meetings))
	for i := range meetings {
		items = append(items, toMeetingDTO(&meetings[i], nil))
	}
	return coreDto.NewPagination(items, total, p.PageNumber, p.PageSize), nil
}

func (s *MeetingService) Update(ctx context.Context, hostID, meetingID uuid.UUID, req *dto.UpdateMeetingRequest) (*dto.MeetingDTO, *errors.AppError) {
	meeting, appErr := s.ownedMeeting(ctx, hostID, meetingID)
	if appErr != nil {
		return nil, appErr
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "title cannot be empty", nil)
		}
		meeting.Title = title
	}
	if req.Description != nil {
		meeting.Description = req.Description
	}
	if req.DurationMinutes != nil {
		if *req.DurationMinutes <= 0 {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "duration must be positive", nil)
		}
		meeting.DurationMinutes = *req.DurationMinutes
	}
	if req.WindowStart != nil {
		meeting.WindowStart = *req.WindowStart
	}
	if req.WindowEnd != nil {
		meeting.WindowEnd = *req.WindowEnd
	}
	if req.TargetDate != nil {
		targetDate, appErr := parseTargetDate(*req.TargetDate)
		if appErr != nil {
			return nil, appErr
		}
		meeting.TargetDate = targetDate
	}
	if req.Status != nil {
		switch *req.Status {
		case entity.StatusPending, entity.StatusScheduled, entity.StatusCancelled:
			meeting.Status = *req.Status
		default:
			return nil, errors.NewAppError(errors.ErrInvalidInput, "invalid status "+*req.Status, nil)
		}
	}

	if err := s.repo.UpdateMeeting(ctx, meeting); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to update meeting", err)
	}
	return s.loadMeetingDTO(ctx, meeting)
}

func (s *MeetingService) Delete(ctx context.Context, hostID, meetingID uuid.UUID) *errors.AppError {
	if _, appErr := s.ownedMeeting(ctx, hostID, meetingID); appErr != nil {
		return appErr
	}
	if err := s.repo.DeleteMeeting(ctx, meetingID); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to delete meeting", err)
	}
	return nil
}

func (s *MeetingService) AddParticipant(ctx context.Context, hostID, meetingID uuid.UUID, req *dto.AddParticipantRequest) *errors.AppError {
	if _, appErr := s.ownedMeeting(ctx, hostID, meetingID); appErr != nil {
		return appErr
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return errors.NewAppError(errors.ErrInvalidInput, "invalid user id", err)
	}

	participant := &entity.MeetingParticipant{
		MeetingID: meetingID,
		UserID:    userID,
		Status:    entity.ParticipantInvited,
	}
	if err := s.repo.AddParticipant(ctx, participant); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to add participant", err)
	}
	return nil
}

func (s *MeetingService) RemoveParticipant(ctx context.Context, hostID, meetingID, userID uuid.UUID) *errors.AppError {
	if _, appErr := s.ownedMeeting(ctx, hostID, meetingID); appErr != nil {
		return appErr
	}
	if err := s.repo.RemoveParticipant(ctx, meetingID, userID); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to remove participant", err)
	}
	return nil
}

func (s *MeetingService) FindSlots(ctx context.Context, hostID, meetingID uuid.UUID) (*scheduleDto.SuggestResponse, *errors.AppError) {
	meeting, appErr := s.ownedMeeting(ctx, hostID, meetingID)
	if appErr != nil {
		return nil, appErr
	}

	participants, err := s.repo.GetParticipants(ctx, meetingID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load participants", err)
	}

	// Host is always part of the scan, even without a participant row.
	userIDs := make([]string, 0, len(participants)+1)
	seen := map[uuid.UUID]bool{meeting.HostID: true}
	userIDs = append(userIDs, meeting.HostID.String())
	for _, p := range participants {
		if seen[p.UserID] {
			continue
		}
		seen[p.UserID] = true
		userIDs = append(userIDs, p.UserID.String())
	}

	return s.schedule.Suggest(ctx, &scheduleDto.SuggestRequest{
		UserIDs:         userIDs,
		Date:            meeting.TargetDate.Format("2006-01-02"),
		WindowStart:     meeting.WindowStart,
		WindowEnd:       meeting.WindowEnd,
		DurationMinutes: meeting.DurationMinutes,
	})
}

// ownedMeeting loads a meeting and enforces that hostID owns it.
func (s *MeetingService) ownedMeeting(ctx context.Context, hostID, meetingID uuid.UUID) (*entity.Meeting, *errors.AppError) {
	meeting, err := s.repo.GetMeetingByID(ctx, meetingID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load meeting", err)
	}
	if meeting == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "meeting not found", nil)
	}
	if meeting.HostID != hostID {
		return nil, errors.NewAppError(errors.ErrForbidden, "only the host can manage this meeting", nil)
	}
	return meeting, nil
}

func (s *MeetingService) loadMeetingDTO(ctx context.Context, meeting *entity.Meeting) (*dto.MeetingDTO, *errors.AppError) {
	participants, err := s.repo.GetParticipants(ctx, meeting.ID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load participants", err)
	}
	result := toMeetingDTO(meeting, participants)
	return &result, nil
}

func parseTargetDate(raw string) (time.Time, *errors.AppError) {
	if raw == "" {
		return time.Time{}, errors.NewAppError(errors.ErrInvalidInput, "target_date is required", nil)
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, errors.NewAppError(errors.ErrInvalidInput, "target_date must be YYYY-MM-DD", err)
	}
	return parsed, nil
}

func toMeetingDTO(meeting *entity.Meeting, participants []entity.MeetingParticipant) dto.MeetingDTO {
	result := dto.MeetingDTO{
		ID:              meeting.ID,
		HostID:          meeting.HostID,
		Title:           meeting.Title,
		Description:     meeting.Description,
		DurationMinutes: meeting.DurationMinutes,
		WindowStart:     meeting.WindowStart,
		WindowEnd:       meeting.WindowEnd,
		TargetDate:      meeting.TargetDate.Format("2006-01-02"),
		Status:          meeting.Status,
		PublicSlug:      meeting.PublicSlug,
		CreatedAt:       meeting.CreatedAt,
	}
	for _, p := range participants {
		result.Participants = append(result.Participants, dto.ParticipantDTO{
			UserID: p.UserID,
			Status: p.Status,
		})
	}
	return result
}
