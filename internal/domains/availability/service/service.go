package service

import (
	"context"
	"fmt"
	"time"

	"venue/config"
	"venue/infras/otel"
	"venue/internal/domains/availability/model"
	"venue/internal/domains/availability/model/dto"
	"venue/internal/domains/availability/repository"
	facilityModel "venue/internal/domains/facility/model"
	facilityRepo "venue/internal/domains/facility/repository"
	"venue/shared"
	"venue/shared/cache"
	"venue/shared/constant"
	gDto "venue/shared/dto"
	"venue/shared/failure"
	"venue/shared/timezone"

	"github.com/rs/zerolog/log"
)

// CacheKeyCalendar is shared with the booking domain, which invalidates
// a facility's calendar entries whenever a slot changes.
const CacheKeyCalendar = "availability:calendar"

type Availability interface {
	StatusOf(ctx context.Context, facilityID string, date time.Time) (string, error)
	IsBookable(ctx context.Context, facilityID, date string) (dto.BookableResponse, error)
	Calendar(ctx context.Context, facilityID, month string) (dto.CalendarResponse, error)
}

type serviceImpl struct {
	repo         repository.Availability
	facilityRepo facilityRepo.Facility
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(repo repository.Availability, facilityRepo facilityRepo.Facility, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Availability {
	return &serviceImpl{
		repo:         repo,
		facilityRepo: facilityRepo,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

// StatusOf reports the slot status of a facility on a date. A date with
// no slot row is available.
func (s *serviceImpl) StatusOf(ctx context.Context, facilityID string, date time.Time) (status string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".StatusOf")
	defer scope.End()
	defer scope.TraceIfError(err)

	slot, err := s.repo.Get(ctx, repository.FilterByFacilityDate(facilityID, date))
	if err != nil {
		log.Error().Err(err).Msg("failed to get slot")

		return constant.Empty, fmt.Errorf("failed to get slot: %w", err)
	}

	if slot.ID == constant.Empty {
		return model.StatusAvailable, nil
	}

	return slot.Status, nil
}

// IsBookable reports whether a date can be submitted for booking: the
// date must be strictly after today and not already booked. Pending
// dates stay bookable, the conflict is resolved at submission.
func (s *serviceImpl) IsBookable(ctx context.Context, facilityID, date string) (res dto.BookableResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".IsBookable")
	defer scope.End()
	defer scope.TraceIfError(err)

	day, err := timezone.Parse(constant.DayFormat, date)
	if err != nil {
		return res, failure.BadRequestFromString("invalid date, expected YYYY-MM-DD") // nolint:wrapcheck
	}

	if err = s.ensureFacilityExists(ctx, facilityID); err != nil {
		return res, err
	}

	status, err := s.StatusOf(ctx, facilityID, day)
	if err != nil {
		return res, err
	}

	res = dto.BookableResponse{
		FacilityID: facilityID,
		Date:       date,
		Status:     status,
		Bookable:   day.After(timezone.Today()) && status != model.StatusBooked,
	}

	return res, nil
}

// Calendar classifies every day of a month. Classification order is
// past, booked, pending, available; a past day outranks its slot status.
func (s *serviceImpl) Calendar(ctx context.Context, facilityID, month string) (res dto.CalendarResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Calendar")
	defer scope.End()
	defer scope.TraceIfError(err)

	firstDay, err := timezone.Parse(constant.MonthFormat, month)
	if err != nil {
		return res, failure.BadRequestFromString("invalid month, expected YYYY-MM") // nolint:wrapcheck
	}

	if err = s.ensureFacilityExists(ctx, facilityID); err != nil {
		return res, err
	}

	cacheKey := shared.BuildCacheKey(CacheKeyCalendar, facilityID, month)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for calendar")

		return res, nil
	}

	lastDay := firstDay.AddDate(0, 1, -1)

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldFacilityID,
				Value:    facilityID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Between(model.FieldSlotDate, model.TableName, firstDay.Format(constant.DayFormat), lastDay.Format(constant.DayFormat)),
		},
	}

	params := gDto.QueryParams{SortBy: model.FieldSlotDate, SortDir: gDto.SortDirAsc}

	slots, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get slots")

		return res, fmt.Errorf("failed to get slots: %w", err)
	}

	statusByDate := make(map[string]string, len(slots))
	for _, slot := range slots {
		statusByDate[slot.SlotDate.Format(constant.DayFormat)] = slot.Status
	}

	today := timezone.Today()
	days := make([]dto.DayStatus, 0, lastDay.Day())

	for day := firstDay; !day.After(lastDay); day = day.AddDate(0, 0, 1) {
		date := day.Format(constant.DayFormat)

		var status string

		switch {
		case day.Before(today):
			status = model.DayPast
		case statusByDate[date] == model.StatusBooked:
			status = model.DayBooked
		case statusByDate[date] == model.StatusPending:
			status = model.DayPending
		default:
			status = model.DayAvailable
		}

		days = append(days, dto.DayStatus{Date: date, Status: status})
	}

	res = dto.CalendarResponse{
		FacilityID: facilityID,
		Month:      month,
		Days:       days,
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save calendar to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) ensureFacilityExists(ctx context.Context, facilityID string) error {
	exist, err := s.facilityRepo.Exist(ctx, shared.FilterByID(facilityID, facilityModel.FieldID, facilityModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if facility exists")

		return fmt.Errorf("failed to check if facility exists: %w", err)
	}

	if !exist {
		return failure.NotFound("facility not found") // nolint:wrapcheck
	}

	return nil
}
