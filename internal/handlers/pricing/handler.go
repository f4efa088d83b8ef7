package pricing

import (
	"context"
	"net/http"
	"rental/infras/otel"
	"rental/internal/domains/pricing/model/dto"
	"rental/internal/domains/pricing/service"
	"rental/shared"
	"rental/shared/constant"
	"rental/shared/failure"
	"rental/shared/validator"
	"rental/transport/http/response"

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
	router.Get("/units/{id}/pricing", handler.GetPricing)
	router.Get("/units/{id}/price", handler.ResolvePrice)
	router.Put("/units/{id}/pricing/weekdays", handler.UpsertWeekday)
	router.Put("/units/{id}/pricing/specials", handler.UpsertSpecial)
	router.Post("/units/{id}/holidays", handler.CreateHoliday)
	router.Delete("/pricing/weekdays/{id}", handler.DeleteWeekday)
	router.Delete("/pricing/specials/{id}", handler.DeleteSpecial)
	router.Patch("/holidays/{id}", handler.UpdateHoliday)
	router.Delete("/holidays/{id}", handler.DeleteHoliday)
}

// GetPricing returns every pricing source configured for a unit.
// @Summary Get unit pricing
// @Description Weekday prices, special holiday nights and dated holidays of a unit. Staff or the unit owner.
// @Tags Pricing
// @Produce json
// @Param id path string true "Unit ID"
// @Success 200 {object} response.Data[dto.UnitPricingResponse]
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/units/{id}/pricing [get]
// @Security BearerAuth
func (handler *Handler) GetPricing(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPricing")
	defer scope.End()

	res, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get unit pricing")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// ResolvePrice returns the applicable price of a unit for one date.
// @Summary Resolve a price
// @Description Resolves the price by priority holiday, special night, weekday. A null price means nothing is configured.
// @Tags Pricing
// @Produce json
// @Param id path string true "Unit ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param pricing_type query string false "Holiday period (eid_al_fitr, eid_al_adha, holiday)"
// @Param night query integer false "Night number inside the period (1-6)"
// @Success 200 {object} response.Data[dto.ResolvedPriceResponse]
// @Failure 400 {object} response.Error
// @Router /v1/units/{id}/price [get]
// @Security BearerAuth
func (handler *Handler) ResolvePrice(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ResolvePrice")
	defer scope.End()

	query := r.URL.Query()
	req := dto.ResolvePriceRequest{
		Date:        query.Get("date"),
		PricingType: query.Get("pricing_type"),
	}

	if night := query.Get("night"); night != "" {
		value, err := shared.ConvertStringToInt(night)
		if err != nil {
			response.WithError(w, failure.BadRequest(err))

			return
		}

		req.Night = value
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Resolve(ctx, chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to resolve price")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// UpsertWeekday sets the price of one weekday.
// @Summary Set weekday price
// @Tags Pricing
// @Accept json
// @Produce json
// @Param id path string true "Unit ID"
// @Param request body dto.UpsertWeekdayRequest true "Weekday price, day_of_week 0=Monday..6=Sunday"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/units/{id}/pricing/weekdays [put]
// @Security BearerAuth
func (handler *Handler) UpsertWeekday(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpsertWeekday")
	defer scope.End()

	req := dto.UpsertWeekdayRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpsertWeekday(ctx, chi.URLParam(r, constant.RequestParamID), req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upsert weekday pricing")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Weekday pricing saved successfully")
}

// UpsertSpecial sets the price of one night of a holiday period.
// @Summary Set special night price
// @Tags Pricing
// @Accept json
// @Produce json
// @Param id path string true "Unit ID"
// @Param request body dto.UpsertSpecialRequest true "Special pricing"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/units/{id}/pricing/specials [put]
// @Security BearerAuth
func (handler *Handler) UpsertSpecial(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpsertSpecial")
	defer scope.End()

	req := dto.UpsertSpecialRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpsertSpecial(ctx, chi.URLParam(r, constant.RequestParamID), req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upsert special pricing")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Special pricing saved successfully")
}

// CreateHoliday adds a dated price override.
// @Summary Create a holiday price
// @Tags Pricing
// @Accept json
// @Produce json
// @Param id path string true "Unit ID"
// @Param request body dto.CreateHolidayRequest true "Holiday"
// @Success 201 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/units/{id}/holidays [post]
// @Security BearerAuth
func (handler *Handler) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateHoliday")
	defer scope.End()

	req := dto.CreateHolidayRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.CreateHoliday(ctx, chi.URLParam(r, constant.RequestParamID), req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create holiday")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusCreated, "Holiday created successfully")
}

// UpdateHoliday changes a dated price override.
// @Summary Update a holiday price
// @Tags Pricing
// @Accept json
// @Produce json
// @Param id path string true "Holiday ID"
// @Param request body dto.UpdateHolidayRequest true "Holiday"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/holidays/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateHoliday(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateHoliday")
	defer scope.End()

	req := dto.UpdateHolidayRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateHoliday(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update holiday")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Holiday updated successfully")
}

// DeleteWeekday removes a weekday price.
// @Summary Delete a weekday price
// @Tags Pricing
// @Produce json
// @Param id path string true "Weekday pricing ID"
// @Success 200 {object} response.Message
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/pricing/weekdays/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteWeekday(w http.ResponseWriter, r *http.Request) {
	handler.delete(w, r, "DeleteWeekday", handler.service.DeleteWeekday, "Weekday pricing deleted successfully")
}

// DeleteSpecial removes a special night price.
// @Summary Delete a special night price
// @Tags Pricing
// @Produce json
// @Param id path string true "Special pricing ID"
// @Success 200 {object} response.Message
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/pricing/specials/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteSpecial(w http.ResponseWriter, r *http.Request) {
	handler.delete(w, r, "DeleteSpecial", handler.service.DeleteSpecial, "Special pricing deleted successfully")
}

// DeleteHoliday removes a holiday price.
// @Summary Delete a holiday price
// @Tags Pricing
// @Produce json
// @Param id path string true "Holiday ID"
// @Success 200 {object} response.Message
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/holidays/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	handler.delete(w, r, "DeleteHoliday", handler.service.DeleteHoliday, "Holiday deleted successfully")
}

func (handler *Handler) delete(w http.ResponseWriter, r *http.Request, name string, fn func(ctx context.Context, id string) error, message string) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+"."+name)
	defer scope.End()

	if err := fn(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("handler", name).Msg("failed to delete pricing")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, message)
}
