package service

import (
	"context"
	"fmt"
	"math"

	"venue/config"
	"venue/infras/otel"
	facilityModel "venue/internal/domains/facility/model"
	facilityRepo "venue/internal/domains/facility/repository"
	"venue/internal/domains/pricing/model/dto"
	"venue/shared"
	"venue/shared/constant"
	"venue/shared/failure"
	"venue/shared/timezone"

	"github.com/rs/zerolog/log"
)

// fullDayHours is the baseline the daily role rate is divided by to get
// an hourly rate.
const fullDayHours = 8

type Pricing interface {
	Quote(ctx context.Context, req dto.QuoteRequest) (dto.QuoteResponse, error)
}

type serviceImpl struct {
	facilityRepo facilityRepo.Facility
	cfg          *config.Config
	otel         otel.Otel
}

func New(facilityRepo facilityRepo.Facility, cfg *config.Config, otel otel.Otel) Pricing {
	return &serviceImpl{
		facilityRepo: facilityRepo,
		cfg:          cfg,
		otel:         otel,
	}
}

// SlotHour extracts the hour from an on-the-hour time-slot string.
func SlotHour(slot string) (int, error) {
	parsed, err := timezone.Parse(constant.TimeSlotFormat, slot)
	if err != nil {
		return 0, fmt.Errorf("invalid time slot %q: %w", slot, err)
	}

	return parsed.Hour(), nil
}

// ComputeCost is the deterministic cost formula: the daily role rate is
// divided by the full-day baseline, multiplied by the duration in hours,
// then cleaning charge and security deposit are added. A non-positive
// duration costs nothing. The result is rounded to the nearest whole
// currency unit.
func ComputeCost(rates facilityModel.RateTable, role string, startHour, endHour int, cleaningCharge, securityDeposit float64) float64 {
	duration := endHour - startHour
	if duration <= 0 {
		return 0
	}

	hourlyRate := rates.RoleRate(role) / fullDayHours
	base := hourlyRate * float64(duration)

	return math.Round(base + cleaningCharge + securityDeposit)
}

// Quote resolves the live cost preview for a facility, role, and time
// range. An inverted or empty range yields a zero-cost incomplete quote
// rather than an error; the booking resolver rejects it independently.
func (s *serviceImpl) Quote(ctx context.Context, req dto.QuoteRequest) (res dto.QuoteResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Quote")
	defer scope.End()
	defer scope.TraceIfError(err)

	role := shared.RequesterRole(ctx)

	startHour, err := SlotHour(req.StartTime)
	if err != nil {
		return res, failure.BadRequestFromString(err.Error()) // nolint:wrapcheck
	}

	endHour, err := SlotHour(req.EndTime)
	if err != nil {
		return res, failure.BadRequestFromString(err.Error()) // nolint:wrapcheck
	}

	facility, err := s.facilityRepo.Get(ctx, shared.FilterByID(req.FacilityID, facilityModel.FieldID, facilityModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get facility")

		return res, fmt.Errorf("failed to get facility: %w", err)
	}

	if facility.ID == constant.Empty {
		return res, failure.NotFound("facility not found") // nolint:wrapcheck
	}

	res = dto.QuoteResponse{
		FacilityID: req.FacilityID,
		Role:       role,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
	}

	duration := endHour - startHour
	if duration <= 0 {
		return res, nil
	}

	cleaningCharge := s.cfg.Booking.CleaningCharge
	securityDeposit := s.cfg.Booking.SecurityDeposit
	hourlyRate := facility.RoleRate(role) / fullDayHours

	res.DurationHours = duration
	res.HourlyRate = hourlyRate
	res.BaseCost = hourlyRate * float64(duration)
	res.CleaningCharge = cleaningCharge
	res.SecurityDeposit = securityDeposit
	res.TotalCost = ComputeCost(facility.RateTable, role, startHour, endHour, cleaningCharge, securityDeposit)
	res.Complete = true

	return res, nil
}
