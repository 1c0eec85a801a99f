package gallery

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"lakeside/infras/otel"
	"lakeside/internal/domains/gallery/model"
	"lakeside/internal/domains/gallery/model/dto"
	"lakeside/internal/domains/gallery/service"
	"lakeside/shared/constant"
	gDto "lakeside/shared/dto"
	"lakeside/shared/validator"
	"lakeside/transport/http/response"
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
	router.Route("/gallery", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateGalleryImage)
		routerGroup.Get("/", handler.GetGalleryImages)
		routerGroup.Get("/{id}", handler.GetGalleryImageByID)
		routerGroup.Patch("/{id}", handler.UpdateGalleryImage)
		routerGroup.Delete("/{id}", handler.DeleteGalleryImage)
	})
}

// CreateGalleryImage handles the creation of a new gallery image.
// @Summary Create a new gallery image
// @Description Add an image to the gallery, either by URL or by uploading a file.
// @Tags Gallery
// @Accept multipart/form-data
// @Produce json
// @Param url formData string false "Image URL"
// @Param caption formData string false "Image caption"
// @Param category formData string false "Image category"
// @Param image formData file false "Image file"
// @Success 201 {object} response.Message "Gallery image created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/gallery [post]
// @Security BearerAuth
func (handler *Handler) CreateGalleryImage(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateGalleryImage")
	defer scope.End()

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(writer, err)

		return
	}

	req := dto.CreateGalleryImageRequest{
		URL:      request.FormValue("url"),
		Caption:  request.FormValue("caption"),
		Category: request.FormValue("category"),
	}

	file, fileHeader, err := request.FormFile("image")
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
		log.Error().Err(err).Msg("failed to create gallery image")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Gallery image created successfully by user " + user)

	response.WithMessage(writer, http.StatusCreated, "Gallery image created successfully")
}

// GetGalleryImages retrieves all gallery images based on query parameters.
// @Summary Get all gallery images
// @Description Retrieve all gallery images with optional filtering and pagination.
// @Tags Gallery
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param category query string false "Filter by category"
// @Success 200 {object} response.Data[dto.GetGalleryImagesResponse] "List of gallery images"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/gallery [get]
func (handler *Handler) GetGalleryImages(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetGalleryImages")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	category := r.URL.Query().Get(model.FieldCategory)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if category != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldCategory,
			Operator: gDto.FilterOperatorEq,
			Value:    category,
			Table:    model.TableName,
		})
	}

	images, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get gallery images")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Gallery images retrieved successfully")

	response.WithJSON(w, http.StatusOK, images)
}

// GetGalleryImageByID retrieves a gallery image by its ID.
// @Summary Get a gallery image by ID
// @Description Retrieve a gallery image by its unique identifier.
// @Tags Gallery
// @Accept json
// @Produce json
// @Param id path string true "Gallery image ID"
// @Success 200 {object} response.Data[dto.GalleryImageResponse] "Gallery image details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/gallery/{id} [get]
func (handler *Handler) GetGalleryImageByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetGalleryImageByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	image, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get gallery image by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Gallery image retrieved successfully")

	response.WithJSON(w, http.StatusOK, image)
}

// UpdateGalleryImage updates an existing gallery image by its ID.
// @Summary Update a gallery image by ID
// @Description Update the caption or category of an existing gallery image.
// @Tags Gallery
// @Accept json
// @Produce json
// @Param id path string true "Gallery image ID"
// @Param request body dto.UpdateGalleryImageRequest true "Update Gallery Image Request"
// @Success 200 {object} response.Message "Gallery image updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/gallery/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateGalleryImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateGalleryImage")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateGalleryImageRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update gallery image")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Gallery image updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Gallery image updated successfully")
}

// DeleteGalleryImage deletes a gallery image by its ID.
// @Summary Delete a gallery image by ID
// @Description Delete a gallery image using its unique identifier.
// @Tags Gallery
// @Accept json
// @Produce json
// @Param id path string true "Gallery image ID"
// @Success 200 {object} response.Message "Gallery image deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/gallery/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteGalleryImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteGalleryImage")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete gallery image")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Gallery image deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Gallery image deleted successfully")
}
