package model

import (
	"venue/shared/constant"
	"venue/shared/model"
)

const (
	TableName  = "facilities"
	EntityName = "facility"

	FieldID              = "id"
	FieldName            = "name"
	FieldDescription     = "description"
	FieldType            = "type"
	FieldCapacity        = "capacity"
	FieldRoomCount       = "room_count"
	FieldAmenities       = "amenities"
	FieldImage           = "image"
	FieldRateChart       = "rate_chart"
	FieldInChargeName    = "in_charge_name"
	FieldInChargeContact = "in_charge_contact"
	FieldInChargeEmail   = "in_charge_email"
	FieldRatePeak        = "rate_peak"
	FieldRateOffPeak     = "rate_off_peak"
	FieldActive          = "active"
)

const (
	TypeAuditorium    = "auditorium"
	TypeConference    = "conference"
	TypeSeminar       = "seminar"
	TypeSports        = "sports"
	TypeGuesthouse    = "guesthouse"
	TypeDining        = "dining"
	TypeAccommodation = "accommodation"
)

// RateTable holds the per-facility tariff columns. Required season rates
// are plain values; role and duration rates are optional overrides.
type RateTable struct {
	RatePeak     float64  `db:"rate_peak"`
	RateOffPeak  float64  `db:"rate_off_peak"`
	RateHalfDay  *float64 `db:"rate_half_day"`
	RateFullDay  *float64 `db:"rate_full_day"`
	RateEmployee *float64 `db:"rate_employee"`
	RateStudent  *float64 `db:"rate_student"`
	RateOutsider *float64 `db:"rate_outsider"`
}

// SeasonRate returns the base rate for a season.
func (r RateTable) SeasonRate(season string) float64 {
	if season == constant.SeasonOffPeak {
		return r.RateOffPeak
	}

	return r.RatePeak
}

func (r RateTable) roleOverride(role string) *float64 {
	switch role {
	case constant.RoleEmployee:
		return r.RateEmployee
	case constant.RoleStudent:
		return r.RateStudent
	default:
		return r.RateOutsider
	}
}

// RoleRate resolves the daily rate used for cost calculation. Each role
// falls back to a fixed season rate when its override is absent:
// employee to peak, student to off-peak, outsider to peak.
func (r RateTable) RoleRate(role string) float64 {
	switch role {
	case constant.RoleEmployee:
		if r.RateEmployee != nil {
			return *r.RateEmployee
		}

		return r.RatePeak
	case constant.RoleStudent:
		if r.RateStudent != nil {
			return *r.RateStudent
		}

		return r.RateOffPeak
	default:
		if r.RateOutsider != nil {
			return *r.RateOutsider
		}

		return r.RatePeak
	}
}

// PriceFor returns the display price for a role in a season: the role
// override when present, otherwise the season rate.
func (r RateTable) PriceFor(role, season string) float64 {
	if override := r.roleOverride(role); override != nil {
		return *override
	}

	return r.SeasonRate(season)
}

type Facility struct {
	ID              string  `db:"id"`
	Name            string  `db:"name"`
	Description     string  `db:"description"`
	Type            string  `db:"type"`
	Capacity        int     `db:"capacity"`
	RoomCount       *int    `db:"room_count"`
	Amenities       string  `db:"amenities"`
	Image           string  `db:"image"`
	RateChart       string  `db:"rate_chart"`
	InChargeName    *string `db:"in_charge_name"`
	InChargeContact *string `db:"in_charge_contact"`
	InChargeEmail   *string `db:"in_charge_email"`
	RateTable
	Active bool `db:"active"`
	model.Metadata
}
