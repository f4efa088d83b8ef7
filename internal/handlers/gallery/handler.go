package gallery

import (
	"net/http"
	"rental/infras/otel"
	"rental/internal/domains/gallery/model/dto"
	"rental/internal/domains/gallery/service"
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
	service service.Gallery
	otel    otel.Otel
}

func New(service service.Gallery, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/units/{id}/images", handler.GetImages)
	router.Post("/units/{id}/images", handler.UploadImage)
	router.Patch("/gallery/{id}", handler.UpdateImage)
	router.Delete("/gallery/{id}", handler.DeleteImage)
}

// UploadImage adds a photo to a unit gallery.
// @Summary Upload a gallery image
// @Description Upload an image to the gallery of a unit. Staff only.
// @Tags Gallery
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Unit ID"
// @Param image formData file true "Image file"
// @Param caption formData string false "Caption"
// @Param sort_order formData integer false "Sort order"
// @Success 201 {object} response.Data[dto.GalleryImageResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/units/{id}/images [post]
// @Security BearerAuth
func (handler *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadImage")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, failure.BadRequest(err))

		return
	}

	req := dto.UploadImageRequest{Caption: r.FormValue("caption")}

	if order := r.FormValue("sort_order"); order != "" {
		if value, err := shared.ConvertStringToInt(order); err == nil {
			req.SortOrder = value
		}
	}

	file, fileHeader, err := r.FormFile("image")
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

	image, err := handler.service.Upload(ctx, chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload gallery image")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Gallery image uploaded successfully")

	response.WithJSON(w, http.StatusCreated, image)
}

// GetImages lists the gallery of a unit.
// @Summary Get unit gallery
// @Description List gallery images of a unit ordered by sort order. Staff or the unit owner.
// @Tags Gallery
// @Produce json
// @Param id path string true "Unit ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetGalleryImagesResponse]
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/units/{id}/images [get]
// @Security BearerAuth
func (handler *Handler) GetImages(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetImages")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	images, err := handler.service.GetAll(ctx, chi.URLParam(r, constant.RequestParamID), queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get gallery images")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, images)
}

// UpdateImage changes the caption or order of a gallery image.
// @Summary Update a gallery image
// @Tags Gallery
// @Accept json
// @Produce json
// @Param id path string true "Image ID"
// @Param request body dto.UpdateImageRequest true "Update Image Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/gallery/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateImage")
	defer scope.End()

	req := dto.UpdateImageRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update gallery image")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Gallery image updated successfully")
}

// DeleteImage removes a gallery image and its stored object.
// @Summary Delete a gallery image
// @Tags Gallery
// @Produce json
// @Param id path string true "Image ID"
// @Success 200 {object} response.Message
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/gallery/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteImage")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete gallery image")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Gallery image deleted successfully")

	response.WithMessage(w, http.StatusOK, "Gallery image deleted successfully")
}
