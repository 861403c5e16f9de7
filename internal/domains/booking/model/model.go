package model

import (
	"time"
	"venue/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID             = "id"
	FieldFacilityID     = "facility_id"
	FieldFacilityName   = "facility_name"
	FieldBookingDate    = "booking_date"
	FieldStartTime      = "start_time"
	FieldEndTime        = "end_time"
	FieldPurpose        = "purpose"
	FieldOrganizingDept = "organizing_dept"
	FieldContactEmail   = "contact_email"
	FieldContactMobile  = "contact_mobile"
	FieldRequesterRole  = "requester_role"
	FieldStatus         = "status"
	FieldApprovalLevel  = "approval_level"
	FieldTotalCost      = "total_cost"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Rejection reasons surfaced to the submitter, in fail-fast order.
const (
	ReasonIncompleteForm   = "INCOMPLETE_FORM"
	ReasonDateInPast       = "DATE_IN_PAST"
	ReasonSlotUnavailable  = "SLOT_UNAVAILABLE"
	ReasonInvalidTimeRange = "INVALID_TIME_RANGE"
)

// Lifecycle event types published to the booking topic.
const (
	EventSubmitted = "booking.submitted"
	EventApproved  = "booking.approved"
	EventRejected  = "booking.rejected"
	EventCancelled = "booking.cancelled"
)

type Booking struct {
	ID             string    `db:"id"`
	FacilityID     string    `db:"facility_id"`
	FacilityName   string    `db:"facility_name"`
	BookingDate    time.Time `db:"booking_date"`
	StartTime      string    `db:"start_time"`
	EndTime        string    `db:"end_time"`
	Purpose        string    `db:"purpose"`
	OrganizingDept string    `db:"organizing_dept"`
	ContactEmail   string    `db:"contact_email"`
	ContactMobile  string    `db:"contact_mobile"`
	RequesterRole  string    `db:"requester_role"`
	Status         string    `db:"status"`
	ApprovalLevel  int       `db:"approval_level"`
	TotalCost      float64   `db:"total_cost"`
	model.Metadata
}
