package document

import (
	"net/http"
	"rental/infras/otel"
	"rental/internal/domains/document/model"
	"rental/internal/domains/document/model/dto"
	"rental/internal/domains/document/service"
	"rental/shared/constant"
	gDto "rental/shared/dto"
	"rental/shared/failure"
	"rental/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Document
	otel    otel.Otel
}

func New(service service.Document, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/documents", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.UploadDocument)
		routerGroup.Get("/", handler.GetDocuments)
		routerGroup.Get("/mine", handler.GetMyDocuments)
		routerGroup.Delete("/{id}", handler.DeleteDocument)
	})
}

// UploadDocument shares a report or contract with an owner.
// @Summary Upload an owner document
// @Description Upload a PDF report or contract for an owner. Staff only.
// @Tags Document
// @Accept multipart/form-data
// @Produce json
// @Param owner_id formData string true "Owner ID"
// @Param kind formData string true "report or contract"
// @Param title formData string true "Title"
// @Param file formData file true "PDF file"
// @Success 201 {object} response.Data[dto.DocumentResponse] "Uploaded document"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/documents [post]
// @Security BearerAuth
func (handler *Handler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadDocument")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(w, failure.BadRequest(err))

		return
	}

	req := dto.UploadDocumentRequest{
		OwnerID: r.FormValue(model.FieldOwnerID),
		Kind:    r.FormValue(model.FieldKind),
		Title:   r.FormValue(model.FieldTitle),
	}

	file, fileHeader, err := r.FormFile(model.FieldFile)
	if err == nil {
		req.File = fileHeader
		req.FileData = file

		defer file.Close()
	}

	document, err := handler.service.Upload(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload document")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Document uploaded successfully")

	response.WithJSON(w, http.StatusCreated, document)
}

// GetDocuments lists documents. Owners only see their own.
// @Summary Get documents
// @Tags Document
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param owner_id query string false "Filter by owner"
// @Param kind query string false "Filter by kind"
// @Success 200 {object} response.Data[dto.GetDocumentsResponse] "List of documents"
// @Failure 500 {object} response.Error
// @Router /v1/documents [get]
// @Security BearerAuth
func (handler *Handler) GetDocuments(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDocuments")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true, model.SortableFields...)

	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	for _, field := range []string{model.FieldOwnerID, model.FieldKind} {
		if value := r.URL.Query().Get(field); value != "" {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				Field:    field,
				Operator: gDto.FilterOperatorEq,
				Value:    value,
				Table:    model.TableName,
			})
		}
	}

	documents, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get documents")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, documents)
}

// GetMyDocuments lists the documents shared with the caller.
// @Summary Get my documents
// @Tags Document
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetDocumentsResponse] "List of documents"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/documents/mine [get]
// @Security BearerAuth
func (handler *Handler) GetMyDocuments(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyDocuments")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true, model.SortableFields...)

	documents, err := handler.service.Mine(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get my documents")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, documents)
}

// DeleteDocument removes a document and its file.
// @Summary Delete a document
// @Tags Document
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} response.Message "Document deleted successfully"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/documents/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteDocument")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete document")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Document deleted successfully")
}
