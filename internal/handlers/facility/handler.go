package facility

import (
	"net/http"
	"venue/infras/otel"
	"venue/internal/domains/facility/model"
	"venue/internal/domains/facility/model/dto"
	"venue/internal/domains/facility/service"
	"venue/shared"
	"venue/shared/constant"
	gDto "venue/shared/dto"
	"venue/shared/validator"
	"venue/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Facility
	otel    otel.Otel
}

func New(service service.Facility, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/facilities", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateFacility)
		routerGroup.Get("/", handler.GetFacilities)
		routerGroup.Get("/{id}", handler.GetFacilityByID)
		routerGroup.Patch("/{id}", handler.UpdateFacility)
		routerGroup.Delete("/{id}", handler.DeleteFacility)
	})
}

func createRequestFromForm(r *http.Request) dto.CreateFacilityRequest {
	req := dto.CreateFacilityRequest{
		Name:        r.FormValue(model.FieldName),
		Description: r.FormValue(model.FieldDescription),
		Type:        r.FormValue(model.FieldType),
		Amenities:   r.FormValue(model.FieldAmenities),
	}

	if capStr := r.FormValue(model.FieldCapacity); capStr != "" {
		if c, err := shared.ConvertStringToInt(capStr); err == nil {
			req.Capacity = c
		}
	}

	if countStr := r.FormValue(model.FieldRoomCount); countStr != "" {
		if c, err := shared.ConvertStringToInt(countStr); err == nil {
			req.RoomCount = &c
		}
	}

	if name := r.FormValue(model.FieldInChargeName); name != "" {
		req.InChargeName = &name
	}

	if contact := r.FormValue(model.FieldInChargeContact); contact != "" {
		req.InChargeContact = &contact
	}

	if email := r.FormValue(model.FieldInChargeEmail); email != "" {
		req.InChargeEmail = &email
	}

	if rate, err := shared.ConvertStringToFloat(r.FormValue(model.FieldRatePeak)); err == nil {
		req.RatePeak = rate
	}

	if rate, err := shared.ConvertStringToFloat(r.FormValue(model.FieldRateOffPeak)); err == nil {
		req.RateOffPeak = rate
	}

	for field, target := range map[string]**float64{
		"rate_half_day": &req.RateHalfDay,
		"rate_full_day": &req.RateFullDay,
		"rate_employee": &req.RateEmployee,
		"rate_student":  &req.RateStudent,
		"rate_outsider": &req.RateOutsider,
	} {
		if value := r.FormValue(field); value != "" {
			if rate, err := shared.ConvertStringToFloat(value); err == nil {
				*target = &rate
			}
		}
	}

	if activeStr := r.FormValue(model.FieldActive); activeStr != "" {
		req.Active = shared.ConvertStringToBool(activeStr)
	}

	if file, fileHeader, err := r.FormFile(model.FieldImage); err == nil {
		req.Image = fileHeader
		req.ImageFile = file
	}

	if file, fileHeader, err := r.FormFile(model.FieldRateChart); err == nil {
		req.RateChart = fileHeader
		req.RateChartFile = file
	}

	return req
}

// CreateFacility registers a new facility in the catalog.
// @Summary Create a new facility
// @Description Create a facility with its rate table, optional image, and rate chart document.
// @Tags Facility
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Facility name"
// @Param description formData string false "Facility description"
// @Param type formData string true "Facility type" Enums(auditorium, conference, seminar, sports, guesthouse, dining, accommodation)
// @Param capacity formData integer true "Facility capacity"
// @Param room_count formData integer false "Number of rooms"
// @Param amenities formData string false "Comma-joined amenities"
// @Param in_charge_name formData string false "In-charge name"
// @Param in_charge_contact formData string false "In-charge contact"
// @Param in_charge_email formData string false "In-charge email"
// @Param rate_peak formData number true "Peak season rate"
// @Param rate_off_peak formData number true "Off-peak season rate"
// @Param rate_half_day formData number false "Half-day rate"
// @Param rate_full_day formData number false "Full-day rate"
// @Param rate_employee formData number false "Employee rate override"
// @Param rate_student formData number false "Student rate override"
// @Param rate_outsider formData number false "Outsider rate override"
// @Param active formData boolean false "Active flag"
// @Param image formData file false "Facility image"
// @Param rate_chart formData file false "Rate chart document"
// @Success 201 {object} response.Message "Facility created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/facilities [post]
func (handler *Handler) CreateFacility(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateFacility")
	defer scope.End()

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(writer, err)

		return
	}

	req := createRequestFromForm(request)

	if req.ImageFile != nil {
		defer req.ImageFile.Close()
	}

	if req.RateChartFile != nil {
		defer req.RateChartFile.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create facility")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Facility created successfully")

	response.WithMessage(writer, http.StatusCreated, "Facility created successfully")
}

// GetFacilities lists the catalog with filter criteria.
// @Summary Get all facilities
// @Description Retrieve facilities filtered by type, capacity, season, and price range.
// @Tags Facility
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param type query string false "Filter by facility type"
// @Param min_capacity query integer false "Minimum capacity"
// @Param min_price query number false "Minimum price for the season"
// @Param max_price query number false "Maximum price for the season"
// @Param season query string false "Season the price bounds compare against" Enums(peak, offpeak)
// @Param active query boolean false "Filter by active status"
// @Success 200 {object} response.Data[dto.GetFacilitiesResponse] "List of facilities"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/facilities [get]
func (handler *Handler) GetFacilities(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFacilities")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	criteria := dto.ListFacilitiesCriteria{
		Type:   r.URL.Query().Get(model.FieldType),
		Season: r.URL.Query().Get("season"),
		Active: shared.ConvertStringToBool(r.URL.Query().Get(model.FieldActive)),
	}

	if minCapacity := r.URL.Query().Get("min_capacity"); minCapacity != "" {
		if c, err := shared.ConvertStringToInt(minCapacity); err == nil {
			criteria.MinCapacity = c
		}
	}

	if minPrice := r.URL.Query().Get("min_price"); minPrice != "" {
		if p, err := shared.ConvertStringToFloat(minPrice); err == nil {
			criteria.MinPrice = &p
		}
	}

	if maxPrice := r.URL.Query().Get("max_price"); maxPrice != "" {
		if p, err := shared.ConvertStringToFloat(maxPrice); err == nil {
			criteria.MaxPrice = &p
		}
	}

	if err := validator.ValidateStruct(&criteria); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate criteria")

		response.WithError(w, err)

		return
	}

	facilities, err := handler.service.GetAll(ctx, queryParams, criteria)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get facilities")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Facilities retrieved successfully")

	response.WithJSON(w, http.StatusOK, facilities)
}

// GetFacilityByID retrieves a facility by its ID.
// @Summary Get a facility by ID
// @Description Retrieve a facility with its rate table and the price for the requester role.
// @Tags Facility
// @Accept json
// @Produce json
// @Param id path string true "Facility ID"
// @Param X-Requester-Role header string false "Requester role" Enums(employee, student, outsider)
// @Success 200 {object} response.Data[dto.FacilityResponse] "Facility details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/facilities/{id} [get]
func (handler *Handler) GetFacilityByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFacilityByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	facility, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get facility by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Facility retrieved successfully")

	response.WithJSON(w, http.StatusOK, facility)
}

// UpdateFacility updates an existing facility by its ID.
// @Summary Update a facility by ID
// @Description Update facility details, rates, image, or rate chart.
// @Tags Facility
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Facility ID"
// @Param name formData string false "Facility name"
// @Param description formData string false "Facility description"
// @Param type formData string false "Facility type"
// @Param capacity formData integer false "Facility capacity"
// @Param rate_peak formData number false "Peak season rate"
// @Param rate_off_peak formData number false "Off-peak season rate"
// @Param active formData boolean false "Active flag"
// @Param image formData file false "Facility image"
// @Param rate_chart formData file false "Rate chart document"
// @Success 200 {object} response.Message "Facility updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/facilities/{id} [patch]
func (handler *Handler) UpdateFacility(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateFacility")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(w, err)

		return
	}

	req := updateRequestFromForm(r)

	if req.ImageFile != nil {
		defer req.ImageFile.Close()
	}

	if req.RateChartFile != nil {
		defer req.RateChartFile.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update facility")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Facility updated successfully")

	response.WithMessage(w, http.StatusOK, "Facility updated successfully")
}

func updateRequestFromForm(r *http.Request) dto.UpdateFacilityRequest {
	req := dto.UpdateFacilityRequest{
		Name:        r.FormValue(model.FieldName),
		Description: r.FormValue(model.FieldDescription),
		Type:        r.FormValue(model.FieldType),
		Amenities:   r.FormValue(model.FieldAmenities),
	}

	if capStr := r.FormValue(model.FieldCapacity); capStr != "" {
		if c, err := shared.ConvertStringToInt(capStr); err == nil {
			req.Capacity = &c
		}
	}

	if countStr := r.FormValue(model.FieldRoomCount); countStr != "" {
		if c, err := shared.ConvertStringToInt(countStr); err == nil {
			req.RoomCount = &c
		}
	}

	if name := r.FormValue(model.FieldInChargeName); name != "" {
		req.InChargeName = &name
	}

	if contact := r.FormValue(model.FieldInChargeContact); contact != "" {
		req.InChargeContact = &contact
	}

	if email := r.FormValue(model.FieldInChargeEmail); email != "" {
		req.InChargeEmail = &email
	}

	for field, target := range map[string]**float64{
		model.FieldRatePeak:    &req.RatePeak,
		model.FieldRateOffPeak: &req.RateOffPeak,
		"rate_half_day":        &req.RateHalfDay,
		"rate_full_day":        &req.RateFullDay,
		"rate_employee":        &req.RateEmployee,
		"rate_student":         &req.RateStudent,
		"rate_outsider":        &req.RateOutsider,
	} {
		if value := r.FormValue(field); value != "" {
			if rate, err := shared.ConvertStringToFloat(value); err == nil {
				*target = &rate
			}
		}
	}

	if activeStr := r.FormValue(model.FieldActive); activeStr != "" {
		req.Active = shared.ConvertStringToBool(activeStr)
	}

	if file, fileHeader, err := r.FormFile(model.FieldImage); err == nil {
		req.Image = fileHeader
		req.ImageFile = file
	}

	if file, fileHeader, err := r.FormFile(model.FieldRateChart); err == nil {
		req.RateChart = fileHeader
		req.RateChartFile = file
	}

	return req
}

// DeleteFacility deletes a facility by its ID.
// @Summary Delete a facility by ID
// @Description Delete a facility using its unique identifier.
// @Tags Facility
// @Accept json
// @Produce json
// @Param id path string true "Facility ID"
// @Success 200 {object} response.Message "Facility deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/facilities/{id} [delete]
func (handler *Handler) DeleteFacility(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteFacility")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete facility")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Facility deleted successfully")

	response.WithMessage(w, http.StatusOK, "Facility deleted successfully")
}
