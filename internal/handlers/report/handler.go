package report

import (
	"net/http"
	"rental/infras/otel"
	"rental/internal/domains/report/model/dto"
	"rental/internal/domains/report/service"
	"rental/shared/constant"
	"rental/shared/timezone"
	"rental/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Report
	otel    otel.Otel
}

func New(service service.Report, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/reports/payments", handler.GetPayments)
	router.Get("/reports/payments/xlsx", handler.ExportPayments)
}

func paymentsRequest(r *http.Request) dto.PaymentsRequest {
	query := r.URL.Query()

	return dto.PaymentsRequest{
		UnitID:     query.Get("unit_id"),
		ReportType: query.Get("report_type"),
		Date:       query.Get("date"),
	}
}

// GetPayments returns cash and transfer payments for a period.
// @Summary Get payments report
// @Description Bookings in the period ordered by start date, split by payment method. Staff only.
// @Tags Report
// @Produce json
// @Param unit_id query string false "Unit ID, ignored when unknown"
// @Param report_type query string false "all, daily, weekly or monthly"
// @Param date query string false "Anchor date YYYY-MM-DD, a malformed date disables the period"
// @Success 200 {object} response.Data[dto.PaymentsResponse] "Payments report"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reports/payments [get]
// @Security BearerAuth
func (handler *Handler) GetPayments(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPayments")
	defer scope.End()

	res, err := handler.service.Payments(ctx, paymentsRequest(r))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to build payments report")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// ExportPayments downloads the payments report as a spreadsheet.
// @Summary Export payments report
// @Tags Report
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param unit_id query string false "Unit ID, ignored when unknown"
// @Param report_type query string false "all, daily, weekly or monthly"
// @Param date query string false "Anchor date YYYY-MM-DD"
// @Success 200 {file} file "Payments workbook"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reports/payments/xlsx [get]
// @Security BearerAuth
func (handler *Handler) ExportPayments(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ExportPayments")
	defer scope.End()

	payload, err := handler.service.PaymentsXLSX(ctx, paymentsRequest(r))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to export payments report")

		response.WithError(w, err)

		return
	}

	name := "payments-" + timezone.Today().Format(constant.DateOnlyFormat) + ".xlsx"

	response.WithFile(w, constant.ContentTypeXLSX, name, payload)
}
