package bookingrequest

import (
	"net/http"

	"litrato/infras/otel"
	"litrato/internal/domains/bookingrequest/model"
	"litrato/internal/domains/bookingrequest/model/dto"
	"litrato/internal/domains/bookingrequest/service"
	"litrato/shared"
	"litrato/shared/constant"
	gDto "litrato/shared/dto"
	"litrato/shared/validator"
	"litrato/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.BookingRequest
	otel    otel.Otel
}

func New(service service.BookingRequest, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/booking-requests", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBookingRequest)
		routerGroup.Get("/", handler.GetBookingRequests)
		routerGroup.Get("/{id}", handler.GetBookingRequestByID)
		routerGroup.Patch("/{id}/cancel", handler.CancelBookingRequest)
		routerGroup.Patch("/{id}/accept", handler.AcceptBookingRequest)
		routerGroup.Patch("/{id}/reject", handler.RejectBookingRequest)
	})
}

// CreateBookingRequest files a new booking request.
// @Summary Request a booking
// @Description The request is checked against every active booking and request, setup and teardown buffers included.
// @Tags BookingRequest
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequestRequest true "Booking request"
// @Success 201 {object} response.Data[dto.BookingRequestResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Conflict
// @Failure 500 {object} response.Error
// @Router /v1/booking-requests [post]
// @Security BearerAuth
func (handler *Handler) CreateBookingRequest(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBookingRequest")
	defer scope.End()

	req := dto.CreateBookingRequestRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking request")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking request " + res.ID + " created")

	response.WithJSON(w, http.StatusCreated, res)
}

// GetBookingRequests lists booking requests. Customers only see their own.
// @Summary Get booking requests
// @Tags BookingRequest
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param package_id query string false "Filter by package ID"
// @Param status query string false "Filter by status (pending, accepted, rejected, cancelled)"
// @Param event_date query string false "Filter by event date (YYYY-MM-DD)"
// @Param event_date_from query string false "Earliest event date, inclusive (YYYY-MM-DD)"
// @Param event_date_to query string false "Latest event date, inclusive (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.GetBookingRequestsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/booking-requests [get]
// @Security BearerAuth
func (handler *Handler) GetBookingRequests(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingRequests")
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

	res, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking requests")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetBookingRequestByID retrieves one booking request.
// @Summary Get a booking request by ID
// @Tags BookingRequest
// @Produce json
// @Param id path string true "Booking request ID"
// @Success 200 {object} response.Data[dto.BookingRequestResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/booking-requests/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingRequestByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingRequestByID")
	defer scope.End()

	res, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking request")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// CancelBookingRequest withdraws a pending request.
// @Summary Cancel a booking request
// @Tags BookingRequest
// @Produce json
// @Param id path string true "Booking request ID"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/booking-requests/{id}/cancel [patch]
// @Security BearerAuth
func (handler *Handler) CancelBookingRequest(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelBookingRequest")
	defer scope.End()

	if err := handler.service.Cancel(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel booking request")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Booking request cancelled successfully")
}

// AcceptBookingRequest turns a pending request into a scheduled booking.
// @Summary Accept a booking request
// @Tags BookingRequest
// @Produce json
// @Param id path string true "Booking request ID"
// @Success 200 {object} response.Data[dto.BookingRequestResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Conflict
// @Router /v1/booking-requests/{id}/accept [patch]
// @Security BearerAuth
func (handler *Handler) AcceptBookingRequest(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AcceptBookingRequest")
	defer scope.End()

	res, err := handler.service.Accept(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to accept booking request")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking " + res.BookingID + " scheduled")

	response.WithJSON(w, http.StatusOK, res)
}

// RejectBookingRequest declines a pending request with a reason.
// @Summary Reject a booking request
// @Tags BookingRequest
// @Accept json
// @Produce json
// @Param id path string true "Booking request ID"
// @Param request body dto.RejectBookingRequestRequest true "Reason"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/booking-requests/{id}/reject [patch]
// @Security BearerAuth
func (handler *Handler) RejectBookingRequest(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RejectBookingRequest")
	defer scope.End()

	req := dto.RejectBookingRequestRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Reject(ctx, chi.URLParam(r, constant.RequestParamID), req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to reject booking request")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Booking request rejected successfully")
}
