package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"lakeside/config"
	"lakeside/infras/otel"
	"lakeside/infras/telegram"
	"lakeside/internal/domains/feedback/model"
	"lakeside/internal/domains/feedback/model/dto"
	"lakeside/internal/domains/feedback/repository"
	"lakeside/shared"
	"lakeside/shared/cache"
	"lakeside/shared/constant"
	gDto "lakeside/shared/dto"
	"lakeside/shared/failure"
)

const (
	cacheGetAllFeedback = "feedback:gets"
	cacheCountFeedback  = "feedback:count"
)

type Feedback interface {
	Create(ctx context.Context, req dto.CreateFeedbackRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetFeedbackResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo     repository.Feedback
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
	notifier telegram.Notifier
}

func New(repo repository.Feedback, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, notifier telegram.Notifier) Feedback {
	return &serviceImpl{
		repo:     repo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
		notifier: notifier,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateFeedbackRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	feedback := req.ToModel(user)
	if err = s.repo.Insert(ctx, feedback); err != nil {
		return err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllFeedback)
		shared.InvalidateCaches(c, s.cache, cacheCountFeedback)

		if err := s.notifier.SendHTML(c, feedbackMessage(feedback)); err != nil {
			log.Error().Err(err).Msg("failed to send feedback notification")
		}
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetFeedbackResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllFeedback, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for feedback")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count feedback")

		return res, err
	}

	entries, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get feedback")

		return res, err
	}

	res.FromModels(entries, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save feedback to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (total int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountFeedback, req, filter)

	err = s.cache.Get(ctx, cacheKey, &total)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for feedback count")

		return total, nil
	}

	total, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count feedback")

		return total, err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, total, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save feedback count to cache")
		}
	}()

	return total, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check feedback existence")

		return fmt.Errorf("failed to check feedback existence: %w", err)
	}

	if !exist {
		return failure.NotFound("feedback not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete feedback")

		return fmt.Errorf("failed to delete feedback: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllFeedback)
		shared.InvalidateCaches(c, s.cache, cacheCountFeedback)
	}()

	return nil
}

func feedbackMessage(feedback model.Feedback) string {
	msg := fmt.Sprintf("<b>New feedback</b>\nFrom: %s\nPhone: %s", feedback.FullName, feedback.Phone)

	if feedback.Email != constant.Empty {
		msg += fmt.Sprintf("\nEmail: %s", feedback.Email)
	}

	return msg + fmt.Sprintf("\n\n%s", feedback.Message)
}
