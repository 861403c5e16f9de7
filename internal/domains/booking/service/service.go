package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"venue/config"
	"venue/infras/kafka"
	"venue/infras/otel"
	slotModel "venue/internal/domains/availability/model"
	slotRepo "venue/internal/domains/availability/repository"
	availabilityService "venue/internal/domains/availability/service"
	"venue/internal/domains/booking/model"
	"venue/internal/domains/booking/model/dto"
	"venue/internal/domains/booking/repository"
	facilityModel "venue/internal/domains/facility/model"
	facilityRepo "venue/internal/domains/facility/repository"
	pricing "venue/internal/domains/pricing/service"
	"venue/shared"
	"venue/shared/cache"
	"venue/shared/constant"
	gDto "venue/shared/dto"
	"venue/shared/failure"
	gModel "venue/shared/model"
	"venue/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
)

type Booking interface {
	Submit(ctx context.Context, req dto.SubmitBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, criteria dto.ListBookingsCriteria) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Approve(ctx context.Context, id string) error
	Reject(ctx context.Context, id string) error
	Cancel(ctx context.Context, id string) error
}

// keyedMutex serializes local submitters per (facility, date) ahead of
// the database constraint.
type keyedMutex struct {
	locks sync.Map
}

func (k *keyedMutex) Lock(key string) func() {
	value, _ := k.locks.LoadOrStore(key, &sync.Mutex{})
	mutex := value.(*sync.Mutex)
	mutex.Lock()

	return mutex.Unlock
}

type serviceImpl struct {
	repo         repository.Booking
	slotRepo     slotRepo.Availability
	facilityRepo facilityRepo.Facility
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
	kafka        kafka.Client
	submitLocks  keyedMutex
}

func New(repo repository.Booking, slotRepo slotRepo.Availability, facilityRepo facilityRepo.Facility, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, kafka kafka.Client) Booking {
	return &serviceImpl{
		repo:         repo,
		slotRepo:     slotRepo,
		facilityRepo: facilityRepo,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
		kafka:        kafka,
	}
}

// Submit runs the booking resolver: fail-fast validation (incomplete
// form, date in past, slot unavailable, invalid time range, in that
// order), cost resolution, then an atomic insert-and-reserve. Exactly
// one of two concurrent submissions for the same facility and date wins.
func (s *serviceImpl) Submit(ctx context.Context, req dto.SubmitBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Submit")
	defer scope.End()
	defer scope.TraceIfError(err)

	role := shared.RequesterRole(ctx)

	if !req.HasRequiredFields() {
		return res, failure.Rejection(model.ReasonIncompleteForm, "all booking form fields are required") // nolint:wrapcheck
	}

	bookingDate, err := timezone.Parse(constant.DayFormat, req.BookingDate)
	if err != nil {
		return res, failure.BadRequestFromString("invalid booking date, expected YYYY-MM-DD") // nolint:wrapcheck
	}

	if bookingDate.Before(timezone.Today()) {
		return res, failure.Rejection(model.ReasonDateInPast, "booking date cannot be in the past") // nolint:wrapcheck
	}

	slot, err := s.slotRepo.Get(ctx, slotRepo.FilterByFacilityDate(req.FacilityID, bookingDate))
	if err != nil {
		log.Error().Err(err).Msg("failed to get slot")

		return res, fmt.Errorf("failed to get slot: %w", err)
	}

	if slot.Status == slotModel.StatusBooked {
		return res, failure.ConflictRejection(model.ReasonSlotUnavailable, "the requested date is already booked") // nolint:wrapcheck
	}

	startHour, err := pricing.SlotHour(req.StartTime)
	if err != nil {
		return res, failure.Rejection(model.ReasonInvalidTimeRange, "start time is not a valid time slot") // nolint:wrapcheck
	}

	endHour, err := pricing.SlotHour(req.EndTime)
	if err != nil {
		return res, failure.Rejection(model.ReasonInvalidTimeRange, "end time is not a valid time slot") // nolint:wrapcheck
	}

	if endHour <= startHour {
		return res, failure.Rejection(model.ReasonInvalidTimeRange, "end time must be after start time") // nolint:wrapcheck
	}

	facility, err := s.facilityRepo.Get(ctx, shared.FilterByID(req.FacilityID, facilityModel.FieldID, facilityModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get facility")

		return res, fmt.Errorf("failed to get facility: %w", err)
	}

	if facility.ID == constant.Empty {
		return res, failure.NotFound("facility not found") // nolint:wrapcheck
	}

	totalCost := pricing.ComputeCost(facility.RateTable, role, startHour, endHour, s.cfg.Booking.CleaningCharge, s.cfg.Booking.SecurityDeposit)
	booking := req.ToModel(role, facility.Name, bookingDate, totalCost)

	unlock := s.submitLocks.Lock(shared.BuildCacheKey(req.FacilityID, req.BookingDate))
	defer unlock()

	if err = s.repo.Submit(ctx, booking, s.newSlot(booking)); err != nil {
		log.Error().Err(err).Msg("failed to submit booking")

		return res, err
	}

	s.publishEvent(ctx, model.EventSubmitted, booking)
	s.invalidateAfterWrite(ctx, booking)

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) newSlot(booking model.Booking) slotModel.Slot {
	return slotModel.Slot{
		ID:         uuid.NewString(),
		FacilityID: booking.FacilityID,
		SlotDate:   booking.BookingDate,
		StartTime:  &booking.StartTime,
		EndTime:    &booking.EndTime,
		Status:     slotModel.StatusPending,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  booking.RequesterRole,
			ModifiedBy: booking.RequesterRole,
		},
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, criteria dto.ListBookingsCriteria) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := criteria.ToFilter()
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(nil)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.getByID(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

// Approve moves a pending booking to approved, bumps its approval
// level, and marks the slot booked.
func (s *serviceImpl) Approve(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Approve")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.getByID(ctx, id)
	if err != nil {
		return err
	}

	if booking.Status != model.StatusPending {
		return failure.Conflict("only pending bookings can be approved") // nolint:wrapcheck
	}

	fields := map[string]any{
		model.FieldStatus:        model.StatusApproved,
		model.FieldApprovalLevel: booking.ApprovalLevel + 1,
		constant.FieldModifiedAt: timezone.Now(),
	}

	if err = s.repo.Approve(ctx, booking, fields); err != nil {
		log.Error().Err(err).Msg("failed to approve booking")

		return fmt.Errorf("failed to approve booking: %w", err)
	}

	booking.Status = model.StatusApproved
	booking.ApprovalLevel++

	s.publishEvent(ctx, model.EventApproved, booking)
	s.invalidateAfterWrite(ctx, booking)

	return nil
}

// Reject moves a pending booking to rejected and releases its slot.
func (s *serviceImpl) Reject(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reject")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.getByID(ctx, id)
	if err != nil {
		return err
	}

	if booking.Status != model.StatusPending {
		return failure.Conflict("only pending bookings can be rejected") // nolint:wrapcheck
	}

	fields := map[string]any{
		model.FieldStatus:        model.StatusRejected,
		constant.FieldModifiedAt: timezone.Now(),
	}

	if err = s.repo.Reject(ctx, booking, fields); err != nil {
		log.Error().Err(err).Msg("failed to reject booking")

		return fmt.Errorf("failed to reject booking: %w", err)
	}

	booking.Status = model.StatusRejected

	s.publishEvent(ctx, model.EventRejected, booking)
	s.invalidateAfterWrite(ctx, booking)

	return nil
}

// Cancel removes the booking and returns its date to available.
func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.getByID(ctx, id)
	if err != nil {
		return err
	}

	if err = s.repo.Cancel(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to cancel booking")

		return fmt.Errorf("failed to cancel booking: %w", err)
	}

	s.publishEvent(ctx, model.EventCancelled, booking)
	s.invalidateAfterWrite(ctx, booking)

	return nil
}

func (s *serviceImpl) getByID(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) publishEvent(ctx context.Context, eventType string, booking model.Booking) {
	if !s.cfg.Kafka.Enable {
		return
	}

	event := dto.BookingEvent{
		Type:        eventType,
		BookingID:   booking.ID,
		FacilityID:  booking.FacilityID,
		BookingDate: booking.BookingDate.Format(constant.DayFormat),
		Status:      booking.Status,
		OccurredAt:  timezone.Now(),
	}

	topic := s.cfg.Kafka.BookingTopic

	go func() {
		c, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()

		message := kafka.Message{Key: booking.ID, Value: event}
		if err := s.kafka.SendMessages(c, topic, message); err != nil {
			log.Error().Err(err).Str("event", eventType).Str("bookingID", booking.ID).Msg("failed to publish booking event")
		}
	}()
}

func (s *serviceImpl) invalidateAfterWrite(ctx context.Context, booking model.Booking) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, booking.ID)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
		shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(availabilityService.CacheKeyCalendar, booking.FacilityID))
	}()
}
