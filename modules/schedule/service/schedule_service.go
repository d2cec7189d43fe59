package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"meetmatch/core/config"
	"meetmatch/core/constants"
	"meetmatch/core/errors"
	"meetmatch/core/logger"
	"meetmatch/modules/schedule/dto"
	"meetmatch/modules/schedule/entity"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const busyFetchConcurrency = 8

// BusyIntervalProvider supplies per-user busy intervals for a time range.
// The calendar module implements it; tests substitute a fake. The second
// return value reports whether the user has a connected calendar.
type BusyIntervalProvider interface {
	BusyIntervals(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]entity.TimeSlot, bool, error)
}

// ScheduleServiceInterface defines the scheduling operations exposed over
// HTTP and consumed by the meeting module.
type ScheduleServiceInterface interface {
	Suggest(ctx context.Context, req *dto.SuggestRequest) (*dto.SuggestResponse, *errors.AppError)
	FreeSlots(ctx context.Context, req *dto.FreeSlotsRequest) (*dto.FreeSlotsResponse, *errors.AppError)
}

// ScheduleService resolves busy intervals for all participants, then runs
// the pure matcher/aggregator over the materialized data. All I/O happens
// before the engines are invoked.
type ScheduleService struct {
	busy       BusyIntervalProvider
	matcher    *SlotMatcher
	aggregator *FreeSlotAggregator
	location   *time.Location
	now        func() time.Time
}

func NewScheduleService(busy BusyIntervalProvider) ScheduleServiceInterface {
	loc := time.UTC
	if cfg, ok := config.GetSafe(); ok {
		if parsed, err := time.LoadLocation(cfg.Schedule.Timezone); err == nil {
			loc = parsed
		} else {
			logger.Warn("Invalid schedule timezone, falling back to UTC", "timezone", cfg.Schedule.Timezone)
		}
	}

	return &ScheduleService{
		busy:       busy,
		matcher:    NewSlotMatcher(),
		aggregator: NewFreeSlotAggregator(),
		location:   loc,
		now:        time.Now,
	}
}

// Suggest fetches every participant's busy intervals concurrently, runs the
// slot matcher and builds the annotated day grid with its free windows.
func (s *ScheduleService) Suggest(ctx context.Context, req *dto.SuggestRequest) (*dto.SuggestResponse, *errors.AppError) {
	userIDs, appErr := parseUserIDs(req.UserIDs)
	if appErr != nil {
		return nil, appErr
	}

	window, duration, maxSuggestions, minFree := s.applyDefaults(
		req.WindowStart, req.WindowEnd, req.DurationMinutes, req.MaxSuggestions, req.MinFreeSlotMinutes)

	targetDate, appErr := s.parseDate(req.Date)
	if appErr != nil {
		return nil, appErr
	}

	windowStart, windowEnd, err := windowBounds(window, targetDate)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, err.Error(), err)
	}

	busyByUser, warnings := s.fetchBusyIntervals(ctx, userIDs, windowStart, windowEnd)

	suggestions, err := s.matcher.FindOptimalTimeSlots(busyByUser, duration, window, targetDate, maxSuggestions)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, err.Error(), err)
	}

	daySlots, err := BuildDaySlots(busyByUser, window, targetDate, constants.DisplayGridStepMinutes, suggestions)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, err.Error(), err)
	}

	groups := s.aggregator.Aggregate(daySlots, minFree, constants.DisplayGridStepMinutes)

	if len(userIDs) == 0 {
		warnings = append(warnings, "no participants given; all scores are zero")
	}

	return &dto.SuggestResponse{
		Date:            targetDate.Format("2006-01-02"),
		WindowStart:     window.Start,
		WindowEnd:       window.End,
		DurationMinutes: duration,
		Suggestions:     toSuggestionDTOs(suggestions),
		DaySlots:        toDisplaySlotDTOs(daySlots),
		FreeSlotGroups:  toFreeSlotGroupDTOs(groups),
		Warnings:        warnings,
	}, nil
}

// FreeSlots builds the grid and aggregated free windows for each day of a
// range. The aggregator runs once per calendar day, so a free run never
// crosses a day boundary.
func (s *ScheduleService) FreeSlots(ctx context.Context, req *dto.FreeSlotsRequest) (*dto.FreeSlotsResponse, *errors.AppError) {
	userIDs, appErr := parseUserIDs(req.UserIDs)
	if appErr != nil {
		return nil, appErr
	}

	window, _, _, minFree := s.applyDefaults(
		req.WindowStart, req.WindowEnd, 0, 0, req.MinFreeSlotMinutes)

	startDate, appErr := s.parseDate(req.StartDate)
	if appErr != nil {
		return nil, appErr
	}

	days := req.Days
	if days <= 0 {
		days = constants.DefaultSearchDays
	}

	firstStart, _, err := windowBounds(window, startDate)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, err.Error(), err)
	}
	_, lastEnd, err := windowBounds(window, startDate.AddDate(0, 0, days-1))
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, err.Error(), err)
	}

	// One fetch spanning the whole range; grid cells only ever compare
	// against overlapping intervals, so out-of-day intervals are inert.
	busyByUser, warnings := s.fetchBusyIntervals(ctx, userIDs, firstStart, lastEnd)

	result := make([]dto.DayFreeSlots, 0, days)
	for i := 0; i < days; i++ {
		day := startDate.AddDate(0, 0, i)

		daySlots, err := BuildDaySlots(busyByUser, window, day, constants.DisplayGridStepMinutes, nil)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput, err.Error(), err)
		}
		groups := s.aggregator.Aggregate(daySlots, minFree, constants.DisplayGridStepMinutes)

		result = append(result, dto.DayFreeSlots{
			Date:           day.Format("2006-01-02"),
			Slots:          toDisplaySlotDTOs(daySlots),
			FreeSlotGroups: toFreeSlotGroupDTOs(groups),
		})
	}

	return &dto.FreeSlotsResponse{
		Days:     result,
		Warnings: warnings,
	}, nil
}

// fetchBusyIntervals resolves busy data for every user concurrently. The
// returned map always has an entry for every requested user: fetch
// failures and missing calendar connections both degrade to an empty list
// plus a warning, they never abort the scan.
func (s *ScheduleService) fetchBusyIntervals(ctx context.Context, userIDs []uuid.UUID, from, to time.Time) (map[string][]entity.TimeSlot, []string) {
	busyByUser := make(map[string][]entity.TimeSlot, len(userIDs))
	var warnings []string
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(busyFetchConcurrency)

	for _, userID := range userIDs {
		userID := userID
		g.Go(func() error {
			intervals, connected, err := s.busy.BusyIntervals(gctx, userID, from, to)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				logger.Error("ScheduleService:fetchBusyIntervals:Error", "user_id", userID, "error", err)
				busyByUser[userID.String()] = []entity.TimeSlot{}
				warnings = append(warnings, fmt.Sprintf("could not load calendar for user %s; treated as fully available", userID))
			case !connected:
				busyByUser[userID.String()] = []entity.TimeSlot{}
				warnings = append(warnings, fmt.Sprintf("user %s has no connected calendar; treated as fully available", userID))
			default:
				busyByUser[userID.String()] = intervals
			}
			return nil
		})
	}
	// Workers never return errors; degradation is recorded per user.
	_ = g.Wait()

	sort.Strings(warnings)
	return busyByUser, warnings
}

func (s *ScheduleService) applyDefaults(windowStart, windowEnd string, duration, maxSuggestions, minFree int) (entity.TimeWindow, int, int, int) {
	cfg, ok := config.GetSafe()

	window := entity.TimeWindow{Start: windowStart, End: windowEnd}
	if window.Start == "" {
		window.Start = constants.DefaultWindowStart
		if ok {
			window.Start = cfg.Schedule.WindowStart
		}
	}
	if window.End == "" {
		window.End = constants.DefaultWindowEnd
		if ok {
			window.End = cfg.Schedule.WindowEnd
		}
	}
	if duration <= 0 {
		duration = constants.DefaultDurationMinutes
		if ok {
			duration = cfg.Schedule.DurationMinutes
		}
	}
	if maxSuggestions <= 0 {
		maxSuggestions = constants.DefaultMaxSuggestions
		if ok {
			maxSuggestions = cfg.Schedule.MaxSuggestions
		}
	}
	if minFree <= 0 {
		minFree = constants.DefaultMinFreeSlotMinutes
		if ok {
			minFree = cfg.Schedule.MinFreeSlotMinutes
		}
	}
	return window, duration, maxSuggestions, minFree
}

func (s *ScheduleService) parseDate(date string) (time.Time, *errors.AppError) {
	if date == "" {
		now := s.now().In(s.location)
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.location), nil
	}
	parsed, err := time.ParseInLocation("2006-01-02", date, s.location)
	if err != nil {
		return time.Time{}, errors.NewAppError(errors.ErrInvalidInput, "date must be YYYY-MM-DD", err)
	}
	return parsed, nil
}

func parseUserIDs(raw []string) ([]uuid.UUID, *errors.AppError) {
	userIDs := make([]uuid.UUID, 0, len(raw))
	for _, idStr := range raw {
		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput, fmt.Sprintf("invalid user id %q", idStr), err)
		}
		userIDs = append(userIDs, id)
	}
	return userIDs, nil
}

// ===================== DTO mapping =====================

func toSuggestionDTOs(suggestions []entity.Suggestion) []dto.SuggestionDTO {
	result := make([]dto.SuggestionDTO, 0, len(suggestions))
	for i, s := range suggestions {
		result = append(result, dto.SuggestionDTO{
			ID:             fmt.Sprintf("suggestion-%d", i),
			StartTime:      s.StartTime,
			EndTime:        s.EndTime,
			AvailableUsers: s.AvailableUsers,
			ConflictUsers:  s.ConflictUsers,
			Score:          s.Score,
		})
	}
	return result
}

func toDisplaySlotDTOs(slots []entity.DisplaySlot) []dto.DisplaySlotDTO {
	result := make([]dto.DisplaySlotDTO, 0, len(slots))
	for _, slot := range slots {
		result = append(result, dto.DisplaySlotDTO{
			Time:              slot.Time,
			AvailableCount:    slot.AvailableCount,
			TotalParticipants: slot.TotalParticipants,
			IsFullyFree:       slot.IsFullyFree(),
			IsSuggested:       slot.IsSuggested,
		})
	}
	return result
}

func toFreeSlotGroupDTOs(groups []entity.FreeSlotGroup) []dto.FreeSlotGroupDTO {
	result := make([]dto.FreeSlotGroupDTO, 0, len(groups))
	for _, g := range groups {
		result = append(result, dto.FreeSlotGroupDTO{
			StartTime:       g.StartTime,
			EndTime:         g.EndTime,
			DurationMinutes: g.DurationMinutes,
		})
	}
	return result
}
