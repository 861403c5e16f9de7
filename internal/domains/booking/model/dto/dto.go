package dto

import (
	"time"

	"venue/internal/domains/booking/model"
	"venue/shared"
	"venue/shared/constant"
	gDto "venue/shared/dto"
	gModel "venue/shared/model"
	"venue/shared/timezone"

	"github.com/google/uuid"
)

// SubmitBookingRequest deliberately keeps the form fields optional at
// the validator level: missing values are reported by the resolver as an
// INCOMPLETE_FORM rejection so the fail-fast order stays intact.
type SubmitBookingRequest struct {
	FacilityID     string `json:"facility_id"     validate:"required,uuid"`
	BookingDate    string `json:"booking_date"    validate:"required"`
	StartTime      string `json:"start_time"      validate:"omitempty,timeslot"`
	EndTime        string `json:"end_time"        validate:"omitempty,timeslot"`
	Purpose        string `json:"purpose"         validate:"omitempty,max=500"`
	OrganizingDept string `json:"organizing_dept" validate:"omitempty,max=150"`
	ContactEmail   string `json:"contact_email"   validate:"omitempty,email,max=100"`
	ContactMobile  string `json:"contact_mobile"  validate:"omitempty,max=20"`
}

// HasRequiredFields reports whether every field of the booking form is
// filled in.
func (r *SubmitBookingRequest) HasRequiredFields() bool {
	return r.StartTime != constant.Empty &&
		r.EndTime != constant.Empty &&
		r.Purpose != constant.Empty &&
		r.OrganizingDept != constant.Empty &&
		r.ContactEmail != constant.Empty &&
		r.ContactMobile != constant.Empty
}

func (r *SubmitBookingRequest) ToModel(role, facilityName string, bookingDate time.Time, totalCost float64) model.Booking {
	return model.Booking{
		ID:             uuid.NewString(),
		FacilityID:     r.FacilityID,
		FacilityName:   facilityName,
		BookingDate:    bookingDate,
		StartTime:      r.StartTime,
		EndTime:        r.EndTime,
		Purpose:        r.Purpose,
		OrganizingDept: r.OrganizingDept,
		ContactEmail:   r.ContactEmail,
		ContactMobile:  r.ContactMobile,
		RequesterRole:  role,
		Status:         model.StatusPending,
		ApprovalLevel:  0,
		TotalCost:      totalCost,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  role,
			ModifiedBy: role,
		},
	}
}

type ListBookingsCriteria struct {
	FacilityID  string `json:"facility_id"  validate:"omitempty,uuid"`
	Status      string `json:"status"       validate:"omitempty,oneof=pending approved rejected"`
	BookingDate string `json:"booking_date" validate:"omitempty"`
}

func (c ListBookingsCriteria) ToFilter() gDto.FilterGroup {
	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if c.FacilityID != constant.Empty {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldFacilityID,
			Value:    c.FacilityID,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	if c.Status != constant.Empty {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Value:    c.Status,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	if c.BookingDate != constant.Empty {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldBookingDate,
			Value:    c.BookingDate,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	return filter
}

type BookingResponse struct {
	ID             string  `json:"id"`
	FacilityID     string  `json:"facility_id"`
	FacilityName   string  `json:"facility_name"`
	BookingDate    string  `json:"booking_date"`
	StartTime      string  `json:"start_time"`
	EndTime        string  `json:"end_time"`
	Purpose        string  `json:"purpose"`
	OrganizingDept string  `json:"organizing_dept"`
	ContactEmail   string  `json:"contact_email"`
	ContactMobile  string  `json:"contact_mobile"`
	RequesterRole  string  `json:"requester_role"`
	Status         string  `json:"status"`
	ApprovalLevel  int     `json:"approval_level"`
	TotalCost      float64 `json:"total_cost"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(mod model.Booking) {
	r.ID = mod.ID
	r.FacilityID = mod.FacilityID
	r.FacilityName = mod.FacilityName
	r.BookingDate = mod.BookingDate.Format(constant.DayFormat)
	r.StartTime = mod.StartTime
	r.EndTime = mod.EndTime
	r.Purpose = mod.Purpose
	r.OrganizingDept = mod.OrganizingDept
	r.ContactEmail = mod.ContactEmail
	r.ContactMobile = mod.ContactMobile
	r.RequesterRole = mod.RequesterRole
	r.Status = mod.Status
	r.ApprovalLevel = mod.ApprovalLevel
	r.TotalCost = mod.TotalCost
	r.Metadata.FromModel(mod.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

// BookingEvent is the payload published to the booking topic for the
// external approval workflow.
type BookingEvent struct {
	Type        string    `json:"type"`
	BookingID   string    `json:"booking_id"`
	FacilityID  string    `json:"facility_id"`
	BookingDate string    `json:"booking_date"`
	Status      string    `json:"status"`
	OccurredAt  time.Time `json:"occurred_at"`
}
