package dto

import (
	"mime/multipart"

	"venue/internal/domains/facility/model"
	"venue/shared"
	"venue/shared/constant"
	gDto "venue/shared/dto"
	gModel "venue/shared/model"
	"venue/shared/timezone"

	"github.com/google/uuid"
)

type CreateFacilityRequest struct {
	Name            string                `json:"name"              validate:"required,max=150"`
	Description     string                `json:"description"       validate:"omitempty"`
	Type            string                `json:"type"              validate:"required,oneof=auditorium conference seminar sports guesthouse dining accommodation"`
	Capacity        int                   `json:"capacity"          validate:"required,min=1"`
	RoomCount       *int                  `json:"room_count"        validate:"omitempty,min=0"`
	Amenities       string                `json:"amenities"         validate:"omitempty"`
	InChargeName    *string               `json:"in_charge_name"    validate:"omitempty,max=100"`
	InChargeContact *string               `json:"in_charge_contact" validate:"omitempty,max=20"`
	InChargeEmail   *string               `json:"in_charge_email"   validate:"omitempty,email,max=100"`
	RatePeak        float64               `json:"rate_peak"         validate:"min=0"`
	RateOffPeak     float64               `json:"rate_off_peak"     validate:"min=0"`
	RateHalfDay     *float64              `json:"rate_half_day"     validate:"omitempty,min=0"`
	RateFullDay     *float64              `json:"rate_full_day"     validate:"omitempty,min=0"`
	RateEmployee    *float64              `json:"rate_employee"     validate:"omitempty,min=0"`
	RateStudent     *float64              `json:"rate_student"      validate:"omitempty,min=0"`
	RateOutsider    *float64              `json:"rate_outsider"     validate:"omitempty,min=0"`
	Image           *multipart.FileHeader `json:"image"             validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile       multipart.File        `json:"-"`
	RateChart       *multipart.FileHeader `json:"rate_chart"        validate:"omitempty,mimetypes=application/pdf image/png image/jpg image/jpeg,maxfilesize=2"`
	RateChartFile   multipart.File        `json:"-"`
	Active          *bool                 `json:"active"            validate:"omitempty"`
}

func (c *CreateFacilityRequest) ToModel(user, imageURL, rateChartURL string) model.Facility {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	return model.Facility{
		ID:              uuid.NewString(),
		Name:            c.Name,
		Description:     c.Description,
		Type:            c.Type,
		Capacity:        c.Capacity,
		RoomCount:       c.RoomCount,
		Amenities:       c.Amenities,
		Image:           imageURL,
		RateChart:       rateChartURL,
		InChargeName:    c.InChargeName,
		InChargeContact: c.InChargeContact,
		InChargeEmail:   c.InChargeEmail,
		RateTable: model.RateTable{
			RatePeak:     c.RatePeak,
			RateOffPeak:  c.RateOffPeak,
			RateHalfDay:  c.RateHalfDay,
			RateFullDay:  c.RateFullDay,
			RateEmployee: c.RateEmployee,
			RateStudent:  c.RateStudent,
			RateOutsider: c.RateOutsider,
		},
		Active: active,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateFacilityRequest struct {
	Name            string                `db:"name"              json:"name"              validate:"omitempty,max=150"`
	Description     string                `db:"description"       json:"description"       validate:"omitempty"`
	Type            string                `db:"type"              json:"type"              validate:"omitempty,oneof=auditorium conference seminar sports guesthouse dining accommodation"`
	Capacity        *int                  `db:"capacity"          json:"capacity"          validate:"omitempty,min=1"`
	RoomCount       *int                  `db:"room_count"        json:"room_count"        validate:"omitempty,min=0"`
	Amenities       string                `db:"amenities"         json:"amenities"         validate:"omitempty"`
	InChargeName    *string               `db:"in_charge_name"    json:"in_charge_name"    validate:"omitempty,max=100"`
	InChargeContact *string               `db:"in_charge_contact" json:"in_charge_contact" validate:"omitempty,max=20"`
	InChargeEmail   *string               `db:"in_charge_email"   json:"in_charge_email"   validate:"omitempty,email,max=100"`
	RatePeak        *float64              `db:"rate_peak"         json:"rate_peak"         validate:"omitempty,min=0"`
	RateOffPeak     *float64              `db:"rate_off_peak"     json:"rate_off_peak"     validate:"omitempty,min=0"`
	RateHalfDay     *float64              `db:"rate_half_day"     json:"rate_half_day"     validate:"omitempty,min=0"`
	RateFullDay     *float64              `db:"rate_full_day"     json:"rate_full_day"     validate:"omitempty,min=0"`
	RateEmployee    *float64              `db:"rate_employee"     json:"rate_employee"     validate:"omitempty,min=0"`
	RateStudent     *float64              `db:"rate_student"      json:"rate_student"      validate:"omitempty,min=0"`
	RateOutsider    *float64              `db:"rate_outsider"     json:"rate_outsider"     validate:"omitempty,min=0"`
	Image           *multipart.FileHeader `json:"image"           validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile       multipart.File        `json:"-"`
	RateChart       *multipart.FileHeader `json:"rate_chart"      validate:"omitempty,mimetypes=application/pdf image/png image/jpg image/jpeg,maxfilesize=2"`
	RateChartFile   multipart.File        `json:"-"`
	Active          *bool                 `db:"active"            json:"active"            validate:"omitempty"`
}

// ListFacilitiesCriteria is the immutable filter input for the catalog
// listing. Price bounds compare against the rate column of the requested
// season.
type ListFacilitiesCriteria struct {
	Type        string   `json:"type"         validate:"omitempty,oneof=auditorium conference seminar sports guesthouse dining accommodation"`
	MinCapacity int      `json:"min_capacity" validate:"omitempty,min=0"`
	MinPrice    *float64 `json:"min_price"    validate:"omitempty,min=0"`
	MaxPrice    *float64 `json:"max_price"    validate:"omitempty,min=0"`
	Season      string   `json:"season"       validate:"omitempty,oneof=peak offpeak"`
	Active      *bool    `json:"active"       validate:"omitempty"`
}

func (c ListFacilitiesCriteria) rateField() string {
	if c.Season == constant.SeasonOffPeak {
		return model.FieldRateOffPeak
	}

	return model.FieldRatePeak
}

func (c ListFacilitiesCriteria) ToFilter() gDto.FilterGroup {
	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if c.Type != constant.Empty {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldType,
			Value:    c.Type,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	if c.MinCapacity > 0 {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldCapacity,
			Value:    c.MinCapacity,
			Operator: gDto.FilterOperatorGreaterEq,
			Table:    model.TableName,
		})
	}

	if c.MinPrice != nil {
		filter.Filters = append(filter.Filters, gDto.Filter{
			ArgName:  "min_price",
			Field:    c.rateField(),
			Value:    *c.MinPrice,
			Operator: gDto.FilterOperatorGreaterEq,
			Table:    model.TableName,
		})
	}

	if c.MaxPrice != nil {
		filter.Filters = append(filter.Filters, gDto.Filter{
			ArgName:  "max_price",
			Field:    c.rateField(),
			Value:    *c.MaxPrice,
			Operator: gDto.FilterOperatorLessEq,
			Table:    model.TableName,
		})
	}

	if c.Active != nil {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldActive,
			Value:    *c.Active,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	return filter
}

type RateTableResponse struct {
	Peak     float64  `json:"peak"`
	OffPeak  float64  `json:"off_peak"`
	HalfDay  *float64 `json:"half_day,omitempty"`
	FullDay  *float64 `json:"full_day,omitempty"`
	Employee *float64 `json:"employee,omitempty"`
	Student  *float64 `json:"student,omitempty"`
	Outsider *float64 `json:"outsider,omitempty"`
}

func (r *RateTableResponse) FromModel(rates model.RateTable) {
	r.Peak = rates.RatePeak
	r.OffPeak = rates.RateOffPeak
	r.HalfDay = rates.RateHalfDay
	r.FullDay = rates.RateFullDay
	r.Employee = rates.RateEmployee
	r.Student = rates.RateStudent
	r.Outsider = rates.RateOutsider
}

type FacilityResponse struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Description     string            `json:"description"`
	Type            string            `json:"type"`
	Capacity        int               `json:"capacity"`
	RoomCount       *int              `json:"room_count,omitempty"`
	Amenities       string            `json:"amenities"`
	Image           string            `json:"image"`
	RateChart       string            `json:"rate_chart"`
	InChargeName    *string           `json:"in_charge_name,omitempty"`
	InChargeContact *string           `json:"in_charge_contact,omitempty"`
	InChargeEmail   *string           `json:"in_charge_email,omitempty"`
	Rates           RateTableResponse `json:"rates"`
	RolePrice       float64           `json:"role_price"`
	Active          bool              `json:"active"`
	gDto.Metadata
}

func (r *FacilityResponse) FromModel(mod model.Facility, role string) {
	r.ID = mod.ID
	r.Name = mod.Name
	r.Description = mod.Description
	r.Type = mod.Type
	r.Capacity = mod.Capacity
	r.RoomCount = mod.RoomCount
	r.Amenities = mod.Amenities
	r.Image = mod.Image
	r.RateChart = mod.RateChart
	r.InChargeName = mod.InChargeName
	r.InChargeContact = mod.InChargeContact
	r.InChargeEmail = mod.InChargeEmail
	r.Rates.FromModel(mod.RateTable)
	r.RolePrice = mod.RoleRate(role)
	r.Active = mod.Active
	r.Metadata.FromModel(mod.Metadata)
}

type GetFacilitiesResponse struct {
	Facilities []FacilityResponse `json:"facilities"`
	TotalPage  int                `json:"total_page"`
	TotalData  int                `json:"total_data"`
}

func (r *GetFacilitiesResponse) FromModels(models []model.Facility, role string, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Facilities = make([]FacilityResponse, len(models))
	for i, mod := range models {
		r.Facilities[i].FromModel(mod, role)
	}
}
