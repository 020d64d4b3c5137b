package packages

import (
	"net/http"
	"strconv"

	"litrato/infras/otel"
	"litrato/internal/domains/packages/model"
	"litrato/internal/domains/packages/model/dto"
	"litrato/internal/domains/packages/service"
	"litrato/shared"
	"litrato/shared/constant"
	gDto "litrato/shared/dto"
	"litrato/shared/validator"
	"litrato/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Package
	otel    otel.Otel
}

func New(service service.Package, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/packages", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreatePackage)
		routerGroup.Get("/", handler.GetPackages)
		routerGroup.Get("/{id}", handler.GetPackageByID)
		routerGroup.Patch("/{id}", handler.UpdatePackage)
		routerGroup.Delete("/{id}", handler.DeletePackage)
	})
}

func parseDuration(raw string) *float64 {
	if raw == constant.Empty {
		return nil
	}

	hours, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Warn().Err(err).Str("duration_hours", raw).Msg("ignoring malformed package duration")

		return nil
	}

	return &hours
}

func parsePrice(raw string) *int64 {
	if raw == constant.Empty {
		return nil
	}

	price, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}

	return &price
}

// CreatePackage handles the creation of a new photobooth package.
// @Summary Create a new package
// @Description Create a package with its price, default duration and an optional cover image.
// @Tags Package
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Package name"
// @Param description formData string false "Package description"
// @Param price formData integer false "Package price"
// @Param duration_hours formData number false "Default event duration in hours"
// @Param active formData boolean false "Package active status"
// @Param image formData file false "Package image"
// @Success 201 {object} response.Message "Package created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/packages [post]
// @Security BearerAuth
func (handler *Handler) CreatePackage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreatePackage")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(w, err)

		return
	}

	req := dto.CreatePackageRequest{
		Name:          r.FormValue(model.FieldName),
		Description:   r.FormValue(model.FieldDescription),
		DurationHours: parseDuration(r.FormValue(model.FieldDurationHours)),
		Active:        shared.ConvertStringToBool(r.FormValue(model.FieldActive)),
	}

	if price := parsePrice(r.FormValue(model.FieldPrice)); price != nil {
		req.Price = *price
	}

	file, fileHeader, err := r.FormFile(model.FieldImage)
	if err == nil {
		req.Image = fileHeader
		req.ImageFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create package")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusCreated, "Package created successfully")
}

// GetPackages lists packages.
// @Summary Get all packages
// @Tags Package
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Param active query boolean false "Filter by active status"
// @Success 200 {object} response.Data[dto.GetPackagesResponse] "List of packages"
// @Failure 500 {object} response.Error
// @Router /v1/packages [get]
func (handler *Handler) GetPackages(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPackages")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldName,
				Operator: gDto.FilterOperatorLike,
				Value:    r.URL.Query().Get(model.FieldName),
				Table:    model.TableName,
			},
		},
	}

	if active := shared.ConvertStringToBool(r.URL.Query().Get(model.FieldActive)); active != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldActive,
			Operator: gDto.FilterOperatorEq,
			Value:    *active,
			Table:    model.TableName,
		})
	}

	packages, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get packages")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, packages)
}

// GetPackageByID retrieves a package.
// @Summary Get a package by ID
// @Tags Package
// @Produce json
// @Param id path string true "Package ID"
// @Success 200 {object} response.Data[dto.PackageResponse] "Package details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/packages/{id} [get]
func (handler *Handler) GetPackageByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPackageByID")
	defer scope.End()

	pkg, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get package by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, pkg)
}

// UpdatePackage updates an existing package.
// @Summary Update a package by ID
// @Tags Package
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Package ID"
// @Param name formData string false "Package name"
// @Param description formData string false "Package description"
// @Param price formData integer false "Package price"
// @Param duration_hours formData number false "Default event duration in hours"
// @Param active formData boolean false "Package active status"
// @Param image formData file false "Package image"
// @Success 200 {object} response.Message "Package updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/packages/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdatePackage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdatePackage")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(w, err)

		return
	}

	req := dto.UpdatePackageRequest{
		Name:          r.FormValue(model.FieldName),
		Description:   r.FormValue(model.FieldDescription),
		Price:         parsePrice(r.FormValue(model.FieldPrice)),
		DurationHours: parseDuration(r.FormValue(model.FieldDurationHours)),
		Active:        shared.ConvertStringToBool(r.FormValue(model.FieldActive)),
	}

	file, fileHeader, err := r.FormFile(model.FieldImage)
	if err == nil {
		req.Image = fileHeader
		req.ImageFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update package")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Package updated successfully")
}

// DeletePackage deletes a package.
// @Summary Delete a package by ID
// @Tags Package
// @Produce json
// @Param id path string true "Package ID"
// @Success 200 {object} response.Message "Package deleted successfully"
// @Failure 404 {object} response.Error
// @Router /v1/packages/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeletePackage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeletePackage")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete package")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Package deleted by user " + user)

	response.WithMessage(w, http.StatusOK, "Package deleted successfully")
}
