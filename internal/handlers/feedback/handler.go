package feedback

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"lakeside/infras/otel"
	"lakeside/internal/domains/feedback/model/dto"
	"lakeside/internal/domains/feedback/service"
	"lakeside/shared/constant"
	gDto "lakeside/shared/dto"
	"lakeside/shared/validator"
	"lakeside/transport/http/response"
)

type Handler struct {
	service service.Feedback
	otel    otel.Otel
}

func New(service service.Feedback, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/feedback", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateFeedback)
		routerGroup.Get("/", handler.GetFeedback)
		routerGroup.Delete("/{id}", handler.DeleteFeedback)
	})
}

// CreateFeedback handles submission of visitor feedback.
// @Summary Submit feedback
// @Description Submit visitor feedback. Open to anonymous visitors.
// @Tags Feedback
// @Accept json
// @Produce json
// @Param request body dto.CreateFeedbackRequest true "Create Feedback Request"
// @Success 201 {object} response.Message "Feedback submitted successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/feedback [post]
func (handler *Handler) CreateFeedback(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateFeedback")
	defer scope.End()

	req := dto.CreateFeedbackRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create feedback")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Feedback submitted successfully")

	response.WithMessage(writer, http.StatusCreated, "Feedback submitted successfully")
}

// GetFeedback retrieves all feedback entries based on query parameters.
// @Summary Get all feedback
// @Description Retrieve all feedback entries with pagination. Admin only.
// @Tags Feedback
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetFeedbackResponse] "List of feedback entries"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/feedback [get]
// @Security BearerAuth
func (handler *Handler) GetFeedback(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFeedback")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	feedback, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get feedback")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Feedback retrieved successfully")

	response.WithJSON(w, http.StatusOK, feedback)
}

// DeleteFeedback deletes a feedback entry by its ID.
// @Summary Delete feedback by ID
// @Description Delete a feedback entry using its unique identifier. Admin only.
// @Tags Feedback
// @Accept json
// @Produce json
// @Param id path string true "Feedback ID"
// @Success 200 {object} response.Message "Feedback deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/feedback/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteFeedback(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteFeedback")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete feedback")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Feedback deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Feedback deleted successfully")
}
