package availability

import (
	"net/http"

	"litrato/infras/otel"
	"litrato/internal/domains/availability/service"
	"litrato/shared/constant"
	"litrato/transport/http/response"

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
	router.Route("/availability", func(routerGroup chi.Router) {
		routerGroup.Get("/summary", handler.GetSummary)
		routerGroup.Get("/day", handler.GetDay)
	})
}

// GetSummary returns confirmed booking counts per date.
// @Summary Booking counts per date
// @Description Lightweight heat-map data for the public calendar. Defaults to the next 30 days.
// @Tags Availability
// @Produce json
// @Param from query string false "First date (YYYY-MM-DD)"
// @Param to query string false "Last date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.SummaryResponse]
// @Failure 400 {object} response.Message "Invalid date supplied"
// @Failure 500 {object} response.Message
// @Router /v1/availability/summary [get]
func (handler *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSummary")
	defer scope.End()

	query := r.URL.Query()

	res, err := handler.service.Summary(ctx, query.Get(constant.RequestParamFrom), query.Get(constant.RequestParamTo))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get availability summary")

		response.WithErrorMessage(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetDay returns the availability of every package on one date.
// @Summary Daily availability
// @Description Per-package status, free start windows and existing bookings with their extension headroom.
// @Tags Availability
// @Produce json
// @Param date query string true "Event date (YYYY-MM-DD)"
// @Param package_id query string false "Restrict to one package"
// @Success 200 {object} response.Data[dto.DailyAvailabilityResponse]
// @Failure 400 {object} response.Message "Invalid date supplied"
// @Failure 404 {object} response.Message
// @Failure 500 {object} response.Message
// @Router /v1/availability/day [get]
func (handler *Handler) GetDay(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDay")
	defer scope.End()

	query := r.URL.Query()
	date := query.Get(constant.RequestParamDate)

	scope.SetAttribute("availability.date", date)

	res, err := handler.service.Day(ctx, date, query.Get(constant.RequestParamPackage))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("date", date).Msg("failed to get daily availability")

		response.WithErrorMessage(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
