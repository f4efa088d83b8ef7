package expense

import (
	"net/http"
	"rental/infras/otel"
	"rental/internal/domains/expense/model"
	"rental/internal/domains/expense/model/dto"
	"rental/internal/domains/expense/service"
	"rental/shared/constant"
	gDto "rental/shared/dto"
	"rental/shared/failure"
	"rental/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const formInvoice = "invoice"

type Handler struct {
	service service.Expense
	otel    otel.Otel
}

func New(service service.Expense, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/units/{id}/expenses", handler.CreateExpense)

	router.Route("/expenses", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetExpenses)
		routerGroup.Get("/{id}", handler.GetExpenseByID)
		routerGroup.Patch("/{id}", handler.UpdateExpense)
		routerGroup.Delete("/{id}", handler.DeleteExpense)
	})
}

// CreateExpense records an expense on a unit.
// @Summary Create an expense
// @Description Record an expense with an optional invoice. Staff only.
// @Tags Expense
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Unit ID"
// @Param category formData string true "maintenance, cleaning, utilities, furnishing, supplies, marketing or other"
// @Param amount formData string true "Amount"
// @Param description formData string false "Description"
// @Param owner_id formData string false "Owner, defaults to the unit owner"
// @Param invoice formData file false "Invoice (pdf, png, jpeg)"
// @Success 201 {object} response.Data[dto.ExpenseResponse] "Created expense"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/units/{id}/expenses [post]
// @Security BearerAuth
func (handler *Handler) CreateExpense(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateExpense")
	defer scope.End()

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(writer, failure.BadRequest(err))

		return
	}

	req := dto.CreateExpenseRequest{
		OwnerID:     request.FormValue(model.FieldOwnerID),
		Category:    request.FormValue(model.FieldCategory),
		Amount:      request.FormValue(model.FieldAmount),
		Description: request.FormValue(model.FieldDescription),
	}

	file, fileHeader, err := request.FormFile(formInvoice)
	if err == nil {
		req.Invoice = fileHeader
		req.InvoiceFile = file

		defer file.Close()
	}

	expense, err := handler.service.Create(ctx, chi.URLParam(request, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create expense")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Expense created successfully")

	response.WithJSON(writer, http.StatusCreated, expense)
}

// GetExpenses lists expenses. Owners only see their own.
// @Summary Get all expenses
// @Tags Expense
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param unit_id query string false "Filter by unit ID"
// @Param category query string false "Filter by category"
// @Success 200 {object} response.Data[dto.GetExpensesResponse] "List of expenses"
// @Failure 500 {object} response.Error
// @Router /v1/expenses [get]
// @Security BearerAuth
func (handler *Handler) GetExpenses(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetExpenses")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true, model.SortableFields...)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	for _, field := range []string{model.FieldUnitID, model.FieldCategory} {
		if value := r.URL.Query().Get(field); value != "" {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				Field:    field,
				Operator: gDto.FilterOperatorEq,
				Value:    value,
				Table:    model.TableName,
			})
		}
	}

	expenses, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get expenses")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, expenses)
}

// GetExpenseByID retrieves an expense by its ID.
// @Summary Get an expense by ID
// @Tags Expense
// @Produce json
// @Param id path string true "Expense ID"
// @Success 200 {object} response.Data[dto.ExpenseResponse] "Expense details"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/expenses/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetExpenseByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetExpenseByID")
	defer scope.End()

	expense, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get expense by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, expense)
}

// UpdateExpense updates an expense and optionally replaces its invoice.
// @Summary Update an expense by ID
// @Tags Expense
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Expense ID"
// @Param category formData string false "Category"
// @Param amount formData string false "Amount"
// @Param description formData string false "Description"
// @Param invoice formData file false "Invoice (pdf, png, jpeg)"
// @Success 200 {object} response.Message "Expense updated successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/expenses/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateExpense")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(w, failure.BadRequest(err))

		return
	}

	req := dto.UpdateExpenseRequest{
		Category:    r.FormValue(model.FieldCategory),
		Amount:      r.FormValue(model.FieldAmount),
		Description: r.FormValue(model.FieldDescription),
	}

	file, fileHeader, err := r.FormFile(formInvoice)
	if err == nil {
		req.Invoice = fileHeader
		req.InvoiceFile = file

		defer file.Close()
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update expense")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Expense updated successfully")

	response.WithMessage(w, http.StatusOK, "Expense updated successfully")
}

// DeleteExpense deletes an expense and its invoice.
// @Summary Delete an expense by ID
// @Tags Expense
// @Produce json
// @Param id path string true "Expense ID"
// @Success 200 {object} response.Message "Expense deleted successfully"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/expenses/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteExpense")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete expense")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Expense deleted successfully")

	response.WithMessage(w, http.StatusOK, "Expense deleted successfully")
}
