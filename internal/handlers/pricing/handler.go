package pricing

import (
	"net/http"
	"venue/infras/otel"
	"venue/internal/domains/pricing/model/dto"
	"venue/internal/domains/pricing/service"
	"venue/shared/constant"
	"venue/shared/validator"
	"venue/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Pricing
	otel    otel.Otel
}

func New(service service.Pricing, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/pricing", func(routerGroup chi.Router) {
		routerGroup.Get("/quote", handler.GetQuote)
	})
}

// GetQuote resolves the live cost preview for a facility and time range.
// @Summary Get a cost quote
// @Description Resolve the total cost for a facility, requester role, and time range. An empty or inverted range yields a zero-cost incomplete quote.
// @Tags Pricing
// @Accept json
// @Produce json
// @Param facility_id query string true "Facility ID"
// @Param start_time query string true "Start time slot (HH:00)"
// @Param end_time query string true "End time slot (HH:00)"
// @Param X-Requester-Role header string false "Requester role" Enums(employee, student, outsider)
// @Success 200 {object} response.Data[dto.QuoteResponse] "Cost quote"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/pricing/quote [get]
func (handler *Handler) GetQuote(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetQuote")
	defer scope.End()

	req := dto.QuoteRequest{
		FacilityID: r.URL.Query().Get("facility_id"),
		StartTime:  r.URL.Query().Get("start_time"),
		EndTime:    r.URL.Query().Get("end_time"),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	quote, err := handler.service.Quote(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to resolve quote")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Quote resolved successfully")

	response.WithJSON(w, http.StatusOK, quote)
}
