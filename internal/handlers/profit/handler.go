package profit

import (
	"net/http"
	"rental/infras/otel"
	"rental/internal/domains/profit/model/dto"
	"rental/internal/domains/profit/service"
	"rental/shared/constant"
	gDto "rental/shared/dto"
	"rental/shared/validator"
	"rental/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const queryUnitID = "unit_id"

type Handler struct {
	service service.Profit
	otel    otel.Otel
}

func New(service service.Profit, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/profit-percentages", func(routerGroup chi.Router) {
		routerGroup.Put("/", handler.UpsertPercentage)
		routerGroup.Get("/", handler.GetPercentages)
		routerGroup.Delete("/{id}", handler.DeletePercentage)
	})

	router.Get("/reports/profit", handler.GetReport)
	router.Get("/reports/profit/mine", handler.GetMyReport)
}

// UpsertPercentage sets the profit share of an owner.
// @Summary Set owner profit percentage
// @Description Create or replace the percentage of net income paid to an owner. Staff only.
// @Tags Profit
// @Accept json
// @Produce json
// @Param request body dto.UpsertPercentageRequest true "Upsert Percentage Request"
// @Success 200 {object} response.Message "Profit percentage saved successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/profit-percentages [put]
// @Security BearerAuth
func (handler *Handler) UpsertPercentage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpsertPercentage")
	defer scope.End()

	req := dto.UpsertPercentageRequest{}
	if err := validator.Decode(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to decode request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpsertPercentage(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to save profit percentage")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Profit percentage saved successfully")

	response.WithMessage(w, http.StatusOK, "Profit percentage saved successfully")
}

// GetPercentages lists the recorded owner percentages.
// @Summary Get profit percentages
// @Tags Profit
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetPercentagesResponse] "List of percentages"
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/profit-percentages [get]
// @Security BearerAuth
func (handler *Handler) GetPercentages(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPercentages")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	percentages, err := handler.service.GetPercentages(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get profit percentages")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, percentages)
}

// DeletePercentage removes an owner percentage so the default applies again.
// @Summary Delete a profit percentage
// @Tags Profit
// @Produce json
// @Param id path string true "Percentage ID"
// @Success 200 {object} response.Message "Profit percentage deleted successfully"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/profit-percentages/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeletePercentage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeletePercentage")
	defer scope.End()

	if err := handler.service.DeletePercentage(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete profit percentage")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Profit percentage deleted successfully")
}

// GetReport returns the profit of every unit.
// @Summary Get profit report
// @Description Per unit booking income, expenses, net and owner profit. Staff only.
// @Tags Report
// @Produce json
// @Param unit_id query string false "Restrict to a single unit"
// @Success 200 {object} response.Data[aggregate.Report] "Profit report"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reports/profit [get]
// @Security BearerAuth
func (handler *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReport")
	defer scope.End()

	report, err := handler.service.Report(ctx, r.URL.Query().Get(queryUnitID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to build profit report")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, report)
}

// GetMyReport returns the profit of the caller's units.
// @Summary Get my profit report
// @Tags Report
// @Produce json
// @Success 200 {object} response.Data[aggregate.Report] "Profit report"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reports/profit/mine [get]
// @Security BearerAuth
func (handler *Handler) GetMyReport(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyReport")
	defer scope.End()

	report, err := handler.service.MyReport(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to build profit report")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, report)
}
