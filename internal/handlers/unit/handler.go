package unit

import (
	"net/http"
	"rental/infras/otel"
	"rental/internal/domains/unit/model"
	"rental/internal/domains/unit/model/dto"
	"rental/internal/domains/unit/service"
	"rental/shared"
	"rental/shared/constant"
	gDto "rental/shared/dto"
	"rental/shared/failure"
	"rental/shared/validator"
	"rental/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Unit
	otel    otel.Otel
}

func New(service service.Unit, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

// Router registers flat /units patterns; nested unit resources are registered by their own handlers.
func (handler *Handler) Router(router chi.Router) {
	router.Post("/units", handler.CreateUnit)
	router.Get("/units", handler.GetUnits)
	router.Get("/units/mine", handler.GetMyUnits)
	router.Get("/units/{id}", handler.GetUnitByID)
	router.Patch("/units/{id}", handler.UpdateUnit)
	router.Delete("/units/{id}", handler.DeleteUnit)
}

// CreateUnit handles the creation of a new unit.
// @Summary Create a new unit
// @Description Create a rental unit, optionally assigned to an owner.
// @Tags Unit
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Unit name"
// @Param description formData string false "Unit description"
// @Param owner_id formData string false "Owner user ID"
// @Param is_available formData boolean false "Availability flag"
// @Param image formData file false "Unit image"
// @Success 201 {object} response.Message "Unit created successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/units [post]
// @Security BearerAuth
func (handler *Handler) CreateUnit(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateUnit")
	defer scope.End()

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(writer, failure.BadRequest(err))

		return
	}

	req := dto.CreateUnitRequest{
		Name:        request.FormValue(model.FieldName),
		Description: request.FormValue(model.FieldDescription),
		IsAvailable: shared.ConvertStringToBool(request.FormValue(model.FieldIsAvailable)),
	}

	if ownerID := request.FormValue(model.FieldOwnerID); ownerID != constant.Empty {
		req.OwnerID = &ownerID
	}

	file, fileHeader, err := request.FormFile(model.FieldImage)
	if err == nil {
		req.Image = fileHeader
		req.ImageFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create unit")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Unit created successfully by user " + shared.Username(ctx))

	response.WithMessage(writer, http.StatusCreated, "Unit created successfully")
}

// GetUnits retrieves all units.
// @Summary Get all units
// @Description Retrieve all units with optional filtering and pagination (staff).
// @Tags Unit
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Param owner_id query string false "Filter by owner"
// @Param is_available query boolean false "Filter by availability"
// @Success 200 {object} response.Data[dto.GetUnitsResponse] "List of units"
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/units [get]
// @Security BearerAuth
func (handler *Handler) GetUnits(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUnits")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true, model.SortableFields...)

	handler.list(w, r.WithContext(ctx), queryParams, r.URL.Query().Get(model.FieldOwnerID))
}

// GetMyUnits retrieves the units owned by the authenticated user.
// @Summary Get my units
// @Tags Unit
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Success 200 {object} response.Data[dto.GetUnitsResponse] "List of units"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/units/mine [get]
// @Security BearerAuth
func (handler *Handler) GetMyUnits(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyUnits")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true, model.SortableFields...)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	handler.list(w, r.WithContext(ctx), queryParams, userID)
}

func (handler *Handler) list(w http.ResponseWriter, r *http.Request, queryParams gDto.QueryParams, ownerID string) {
	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if name := r.URL.Query().Get(model.FieldName); name != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    name,
			Table:    model.TableName,
		})
	}

	if ownerID != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldOwnerID,
			Operator: gDto.FilterOperatorEq,
			Value:    ownerID,
			Table:    model.TableName,
		})
	}

	if available := shared.ConvertStringToBool(r.URL.Query().Get(model.FieldIsAvailable)); available != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldIsAvailable,
			Operator: gDto.FilterOperatorEq,
			Value:    *available,
			Table:    model.TableName,
		})
	}

	units, err := handler.service.GetAll(r.Context(), queryParams, filterGroup)
	if err != nil {
		log.Error().Err(err).Msg("failed to get units")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, units)
}

// GetUnitByID retrieves a unit by its ID.
// @Summary Get a unit by ID
// @Description Staff see every unit, owners only their own.
// @Tags Unit
// @Produce json
// @Param id path string true "Unit ID"
// @Success 200 {object} response.Data[dto.UnitResponse] "Unit details"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/units/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetUnitByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUnitByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	unit, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get unit by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Unit retrieved successfully")

	response.WithJSON(w, http.StatusOK, unit)
}

// UpdateUnit updates an existing unit by its ID.
// @Summary Update a unit by ID
// @Tags Unit
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Unit ID"
// @Param name formData string false "Unit name"
// @Param description formData string false "Unit description"
// @Param owner_id formData string false "Owner user ID"
// @Param is_available formData boolean false "Availability flag"
// @Param image formData file false "Unit image"
// @Success 200 {object} response.Message "Unit updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/units/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateUnit(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateUnit")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(w, failure.BadRequest(err))

		return
	}

	req := dto.UpdateUnitRequest{
		Name:        r.FormValue(model.FieldName),
		Description: r.FormValue(model.FieldDescription),
		IsAvailable: shared.ConvertStringToBool(r.FormValue(model.FieldIsAvailable)),
	}

	if ownerID := r.FormValue(model.FieldOwnerID); ownerID != constant.Empty {
		req.OwnerID = &ownerID
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

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update unit")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Unit updated successfully by user " + shared.Username(ctx))

	response.WithMessage(w, http.StatusOK, "Unit updated successfully")
}

// DeleteUnit deletes a unit by its ID.
// @Summary Delete a unit by ID
// @Tags Unit
// @Produce json
// @Param id path string true "Unit ID"
// @Success 200 {object} response.Message "Unit deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/units/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteUnit(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteUnit")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete unit")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Unit deleted successfully by user " + shared.Username(ctx))

	response.WithMessage(w, http.StatusOK, "Unit deleted successfully")
}
