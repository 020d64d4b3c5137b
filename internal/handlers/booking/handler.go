package booking

import (
	"net/http"

	"litrato/infras/otel"
	"litrato/internal/domains/booking/model"
	"litrato/internal/domains/booking/model/dto"
	"litrato/internal/domains/booking/service"
	"litrato/shared"
	"litrato/shared/constant"
	gDto "litrato/shared/dto"
	"litrato/shared/failure"
	"litrato/shared/validator"
	"litrato/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Get("/{id}", handler.GetBookingByID)
		routerGroup.Patch("/{id}/status", handler.UpdateBookingStatus)
		routerGroup.Get("/{id}/extension-conflicts", handler.GetExtensionConflicts)
		routerGroup.Patch("/{id}/extension", handler.ExtendBooking)
	})
}

// GetBookings retrieves bookings. Customers only see their own.
// @Summary Get all bookings
// @Description Retrieve bookings with optional filtering and pagination.
// @Tags Booking
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param package_id query string false "Filter by package ID"
// @Param status query string false "Filter by status (scheduled, in_progress, completed, cancelled)"
// @Param event_date query string false "Filter by event date (YYYY-MM-DD)"
// @Param event_date_from query string false "Earliest event date, inclusive (YYYY-MM-DD)"
// @Param event_date_to query string false "Latest event date, inclusive (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "List of bookings"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	for _, field := range []string{model.FieldPackageID, model.FieldStatus, model.FieldEventDate} {
		if value := r.URL.Query().Get(field); value != "" {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				Field:    field,
				Operator: gDto.FilterOperatorEq,
				Value:    value,
				Table:    model.TableName,
			})
		}
	}

	query := r.URL.Query()

	dateRange, err := shared.DateRangeFilters(model.FieldEventDate, model.TableName, query.Get(model.FieldEventDate+"_from"), query.Get(model.FieldEventDate+"_to"))
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	filterGroup.Filters = append(filterGroup.Filters, dateRange...)

	bookings, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, bookings)
}

// GetBookingByID retrieves a booking by its ID.
// @Summary Get a booking by ID
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse] "Booking details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	booking, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, booking)
}

// UpdateBookingStatus moves a booking along its lifecycle.
// @Summary Update booking status
// @Description scheduled moves to in_progress or cancelled, in_progress moves to completed or cancelled.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.UpdateBookingStatusRequest true "New status"
// @Success 200 {object} response.Message "Booking status updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) UpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBookingStatus")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateBookingStatusRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateStatus(ctx, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to update booking status")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking " + id + " moved to " + req.Status)

	response.WithMessage(w, http.StatusOK, "Booking status updated successfully")
}

// GetExtensionConflicts checks whether a booking can be extended.
// @Summary Extension preflight
// @Description Lists the bookings an extension of the given hours would collide with. Nothing is saved.
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Param hours query int true "Extra hours"
// @Success 200 {object} response.Data[dto.ExtensionConflictsResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/extension-conflicts [get]
// @Security BearerAuth
func (handler *Handler) GetExtensionConflicts(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetExtensionConflicts")
	defer scope.End()

	hours, err := shared.ConvertStringToInt(r.URL.Query().Get(constant.RequestParamHours))
	if err != nil {
		response.WithError(w, failure.BadRequestFromString("hours must be a whole number"))

		return
	}

	res, err := handler.service.ExtensionConflicts(ctx, chi.URLParam(r, constant.RequestParamID), hours)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check extension conflicts")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// ExtendBooking adds hours to the end of a booking.
// @Summary Extend a booking
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.ExtendBookingRequest true "Extra hours"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Conflict
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/extension [patch]
// @Security BearerAuth
func (handler *Handler) ExtendBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ExtendBooking")
	defer scope.End()

	req := dto.ExtendBookingRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Extend(ctx, chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to extend booking")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
