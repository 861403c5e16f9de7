package dto

type QuoteRequest struct {
	FacilityID string `json:"facility_id" validate:"required,uuid"`
	StartTime  string `json:"start_time"  validate:"required,timeslot"`
	EndTime    string `json:"end_time"    validate:"required,timeslot"`
}

type QuoteResponse struct {
	FacilityID      string  `json:"facility_id"`
	Role            string  `json:"role"`
	StartTime       string  `json:"start_time"`
	EndTime         string  `json:"end_time"`
	DurationHours   int     `json:"duration_hours"`
	HourlyRate      float64 `json:"hourly_rate"`
	BaseCost        float64 `json:"base_cost"`
	CleaningCharge  float64 `json:"cleaning_charge"`
	SecurityDeposit float64 `json:"security_deposit"`
	TotalCost       float64 `json:"total_cost"`
	Complete        bool    `json:"complete"`
}
