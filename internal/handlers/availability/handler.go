package availability

import (
	"net/http"
	"venue/infras/otel"
	"venue/internal/domains/availability/service"
	"venue/shared/constant"
	"venue/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Availability
	otel    otel.Otel
}

func New(service service.Availability, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/facilities/{id}/availability", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetCalendar)
		routerGroup.Get("/bookable", handler.GetBookable)
	})
}

// GetCalendar returns the day-by-day availability calendar of a facility.
// @Summary Get the availability calendar for a month
// @Description Classify every day of the month as past, booked, pending, or available.
// @Tags Availability
// @Accept json
// @Produce json
// @Param id path string true "Facility ID"
// @Param month query string true "Month in YYYY-MM format"
// @Success 200 {object} response.Data[dto.CalendarResponse] "Availability calendar"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/facilities/{id}/availability [get]
func (handler *Handler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCalendar")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	month := r.URL.Query().Get("month")

	calendar, err := handler.service.Calendar(ctx, id, month)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get calendar")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Calendar retrieved successfully")

	response.WithJSON(w, http.StatusOK, calendar)
}

// GetBookable reports whether a facility date can be booked.
// @Summary Check whether a date is bookable
// @Description A date is bookable when it is strictly after today and not already booked. Pending dates stay bookable.
// @Tags Availability
// @Accept json
// @Produce json
// @Param id path string true "Facility ID"
// @Param date query string true "Date in YYYY-MM-DD format"
// @Success 200 {object} response.Data[dto.BookableResponse] "Bookable verdict"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/facilities/{id}/availability/bookable [get]
func (handler *Handler) GetBookable(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookable")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	date := r.URL.Query().Get("date")

	bookable, err := handler.service.IsBookable(ctx, id, date)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check bookable date")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Bookable date checked successfully")

	response.WithJSON(w, http.StatusOK, bookable)
}
