package dto

type DayStatus struct {
	Date   string `json:"date"`
	Status string `json:"status"`
}

type CalendarResponse struct {
	FacilityID string      `json:"facility_id"`
	Month      string      `json:"month"`
	Days       []DayStatus `json:"days"`
}

type BookableResponse struct {
	FacilityID string `json:"facility_id"`
	Date       string `json:"date"`
	Status     string `json:"status"`
	Bookable   bool   `json:"bookable"`
}
