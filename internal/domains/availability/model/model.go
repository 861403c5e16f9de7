package model

import (
	"time"
	"venue/shared/model"
)

const (
	TableName  = "facility_slots"
	EntityName = "slot"

	FieldID         = "id"
	FieldFacilityID = "facility_id"
	FieldSlotDate   = "slot_date"
	FieldStartTime  = "start_time"
	FieldEndTime    = "end_time"
	FieldStatus     = "status"
)

// Slot statuses. A date with no slot row is available; a single row per
// (facility_id, slot_date) means a date is never booked and pending at
// the same time.
const (
	StatusAvailable = "available"
	StatusPending   = "pending"
	StatusBooked    = "booked"
)

// Calendar day classifications. Past days outrank any slot status.
const (
	DayPast      = "past"
	DayBooked    = StatusBooked
	DayPending   = StatusPending
	DayAvailable = StatusAvailable
)

type Slot struct {
	ID         string    `db:"id"`
	FacilityID string    `db:"facility_id"`
	SlotDate   time.Time `db:"slot_date"`
	StartTime  *string   `db:"start_time"`
	EndTime    *string   `db:"end_time"`
	Status     string    `db:"status"`
	model.Metadata
}
