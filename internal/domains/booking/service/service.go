package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"lakeside/config"
	"lakeside/infras/kafka"
	"lakeside/infras/otel"
	"lakeside/infras/telegram"
	"lakeside/internal/domains/booking/model"
	"lakeside/internal/domains/booking/model/dto"
	"lakeside/internal/domains/booking/repository"
	roomModel "lakeside/internal/domains/room/model"
	roomRepo "lakeside/internal/domains/room/repository"
	"lakeside/shared"
	"lakeside/shared/cache"
	"lakeside/shared/constant"
	gDto "lakeside/shared/dto"
	"lakeside/shared/failure"
	"lakeside/shared/timezone"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
)

// Actor identifies who is performing a booking operation. It is resolved
// by the transport layer and passed in explicitly; the service never reads
// identity from ambient request state.
type Actor struct {
	UserID string
	Admin  bool
}

type Booking interface {
	IsAvailable(ctx context.Context, roomID string, checkIn, checkOut time.Time) (bool, error)
	Create(ctx context.Context, actor Actor, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	Confirm(ctx context.Context, actor Actor, id string) error
	Cancel(ctx context.Context, actor Actor, id string) error
	AdminSetStatus(ctx context.Context, actor Actor, id string, target model.Status) error
	Get(ctx context.Context, actor Actor, id string) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	GetMine(ctx context.Context, actor Actor, req gDto.QueryParams) (dto.GetBookingsResponse, error)
}

type serviceImpl struct {
	repo     repository.Booking
	roomRepo roomRepo.Room
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
	notifier telegram.Notifier
	events   kafka.Client
}

func New(repo repository.Booking, roomRepo roomRepo.Room, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, notifier telegram.Notifier, events kafka.Client) Booking {
	return &serviceImpl{
		repo:     repo,
		roomRepo: roomRepo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
		notifier: notifier,
		events:   events,
	}
}

// IsAvailable reports whether the room is free of confirmed bookings for the
// half-open [checkIn, checkOut) range. Read only, no caching, no side effects.
func (s *serviceImpl) IsAvailable(ctx context.Context, roomID string, checkIn, checkOut time.Time) (available bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".IsAvailable")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !checkOut.After(checkIn) {
		return false, failure.BadRequestFromString(dto.ErrInvalidDateRange.Error()) // nolint:wrapcheck
	}

	exist, err := s.roomRepo.Exist(ctx, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if room exists")

		return false, fmt.Errorf("failed to check if room exists: %w", err)
	}

	if !exist {
		return false, failure.NotFound("room not found") // nolint:wrapcheck
	}

	overlap, err := s.repo.ExistOverlapping(ctx, nil, roomID, checkIn, checkOut, constant.Empty)
	if err != nil {
		log.Error().Err(err).Msg("failed to check overlapping bookings")

		return false, fmt.Errorf("failed to check overlapping bookings: %w", err)
	}

	return !overlap, nil
}

func (s *serviceImpl) Create(ctx context.Context, actor Actor, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := req.ToModel(actor.UserID)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	room, err := s.roomRepo.Get(ctx, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	if !room.IsAvailable {
		return res, failure.BadRequestFromString("room is not open for booking") // nolint:wrapcheck
	}

	// The room row lock serializes this check against concurrent confirms,
	// so a range held by a confirmed booking cannot be re-booked in between.
	err = s.repo.WithRoomLock(ctx, booking.RoomID, func(sqltx *sqlx.Tx) error {
		overlap, lockErr := s.repo.ExistOverlapping(ctx, sqltx, booking.RoomID, booking.CheckIn, booking.CheckOut, constant.Empty)
		if lockErr != nil {
			return lockErr
		}

		if overlap {
			return failure.Conflict("room is already booked for these dates") // nolint:wrapcheck
		}

		return s.repo.InsertTx(ctx, sqltx, booking)
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, err
	}

	res.FromModel(booking)

	s.afterWrite(ctx, booking.ID)
	s.notify(ctx, newBookingMessage(room.Name, booking))
	s.publishEvent(ctx, booking, constant.Empty, model.StatusPending)

	return res, nil
}

func (s *serviceImpl) Confirm(ctx context.Context, actor Actor, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Confirm")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !actor.Admin {
		return failure.Forbidden("only admins can confirm bookings") // nolint:wrapcheck
	}

	booking, err := s.getByID(ctx, id)
	if err != nil {
		return err
	}

	// Confirming an already confirmed booking changes nothing and must not
	// re-notify the staff chat.
	if booking.Status == model.StatusConfirmed {
		return nil
	}

	if !booking.Status.CanTransition(model.StatusConfirmed) {
		return failure.InvalidTransition(fmt.Sprintf("cannot confirm a %s booking", booking.Status)) // nolint:wrapcheck
	}

	if err = s.transitionConfirmed(ctx, actor, booking); err != nil {
		return err
	}

	s.afterWrite(ctx, booking.ID)
	s.notifyConfirmed(ctx, booking)
	s.publishEvent(ctx, booking, booking.Status, model.StatusConfirmed)

	return nil
}

func (s *serviceImpl) Cancel(ctx context.Context, actor Actor, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.getByID(ctx, id)
	if err != nil {
		return err
	}

	if !actor.Admin && !booking.OwnedBy(actor.UserID) {
		return failure.Forbidden("you cannot cancel this booking") // nolint:wrapcheck
	}

	// Cancelling twice is a harmless no-op.
	if booking.Status == model.StatusCancelled {
		return nil
	}

	if err = s.repo.Update(ctx, statusFields(actor.UserID, model.StatusCancelled), shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to cancel booking")

		return fmt.Errorf("failed to cancel booking: %w", err)
	}

	s.afterWrite(ctx, booking.ID)
	s.publishEvent(ctx, booking, booking.Status, model.StatusCancelled)

	return nil
}

// AdminSetStatus lets an admin force any status, including transitions the
// state machine forbids. Every override is audited. A confirmed target still
// has to pass the availability check, excluding the booking itself.
func (s *serviceImpl) AdminSetStatus(ctx context.Context, actor Actor, id string, target model.Status) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AdminSetStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !actor.Admin {
		return failure.Forbidden("only admins can override booking status") // nolint:wrapcheck
	}

	if !target.IsValid() {
		return failure.BadRequestFromString(fmt.Sprintf("unknown booking status: %s", target)) // nolint:wrapcheck
	}

	booking, err := s.getByID(ctx, id)
	if err != nil {
		return err
	}

	if booking.Status == target {
		return nil
	}

	log.Info().
		Str("booking_id", booking.ID).
		Str("admin", actor.UserID).
		Str("from", booking.Status.String()).
		Str("to", target.String()).
		Msg("admin booking status override")

	if target == model.StatusConfirmed {
		if err = s.transitionConfirmed(ctx, actor, booking); err != nil {
			return err
		}
	} else {
		if err = s.repo.Update(ctx, statusFields(actor.UserID, target), shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
			log.Error().Err(err).Msg("failed to override booking status")

			return fmt.Errorf("failed to override booking status: %w", err)
		}
	}

	s.afterWrite(ctx, booking.ID)

	if target == model.StatusConfirmed {
		s.notifyConfirmed(ctx, booking)
	}

	s.publishEvent(ctx, booking, booking.Status, target)

	return nil
}

func (s *serviceImpl) Get(ctx context.Context, actor Actor, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return s.guardOwnership(actor, res)
	}

	booking, err := s.getByID(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return s.guardOwnership(actor, res)
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetMine(ctx context.Context, actor Actor, req gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetMine")
	defer scope.End()
	defer scope.TraceIfError(err)

	if actor.UserID == constant.Empty {
		return res, failure.Unauthorized("login required") // nolint:wrapcheck
	}

	filter := shared.FilterByID(actor.UserID, model.FieldUserID, model.TableName)

	return s.GetAll(ctx, req, filter)
}

func (s *serviceImpl) getByID(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) guardOwnership(actor Actor, res dto.BookingResponse) (dto.BookingResponse, error) {
	if actor.Admin || (res.UserID != constant.Empty && res.UserID == actor.UserID) {
		return res, nil
	}

	// Non-owners get a 404 so booking ids cannot be probed.
	return dto.BookingResponse{}, failure.NotFound("booking not found") // nolint:wrapcheck
}

func (s *serviceImpl) transitionConfirmed(ctx context.Context, actor Actor, booking model.Booking) error {
	err := s.repo.WithRoomLock(ctx, booking.RoomID, func(sqltx *sqlx.Tx) error {
		overlap, lockErr := s.repo.ExistOverlapping(ctx, sqltx, booking.RoomID, booking.CheckIn, booking.CheckOut, booking.ID)
		if lockErr != nil {
			return lockErr
		}

		if overlap {
			return failure.Conflict("room is already booked for these dates") // nolint:wrapcheck
		}

		return s.repo.UpdateTx(ctx, sqltx, statusFields(actor.UserID, model.StatusConfirmed), shared.FilterByID(booking.ID, model.FieldID, model.TableName))
	})
	if err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to confirm booking")

		return err
	}

	return nil
}

func (s *serviceImpl) afterWrite(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()
}

// notify fires and forgets. Delivery failures are logged inside the notifier
// and never reach the caller.
func (s *serviceImpl) notify(ctx context.Context, text string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.notifier.SendHTML(c, text); err != nil {
			log.Error().Err(err).Msg("failed to send booking notification")
		}
	}()
}

func (s *serviceImpl) notifyConfirmed(ctx context.Context, booking model.Booking) {
	s.notify(ctx, confirmedBookingMessage(booking))
}

func (s *serviceImpl) publishEvent(ctx context.Context, booking model.Booking, from, to model.Status) {
	if !s.cfg.Kafka.Enable {
		return
	}

	event := dto.BookingStatusEvent{
		BookingID:  booking.ID,
		RoomID:     booking.RoomID,
		FromStatus: from.String(),
		ToStatus:   to.String(),
		At:         timezone.Format(timezone.Now(), constant.DateFormat),
	}

	go func() {
		c := context.WithoutCancel(ctx)

		err := s.events.SendMessages(c, s.cfg.Kafka.Topics.BookingEvents, kafka.Message{
			Key:   booking.ID,
			Value: event,
		})
		if err != nil {
			log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to publish booking status event")
		}
	}()
}

func statusFields(user string, target model.Status) map[string]any {
	if user == constant.Empty {
		user = constant.ContextGuest
	}

	return map[string]any{
		model.FieldStatus:        target,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}
}

func newBookingMessage(roomName string, booking model.Booking) string {
	return fmt.Sprintf(
		"<b>New booking request</b>\nRoom: %s\nGuest: %s (%s)\nDates: %s to %s (%d nights)\nStatus: %s",
		roomName,
		booking.FullName,
		booking.Phone,
		booking.CheckIn.Format(constant.DateOnlyFormat),
		booking.CheckOut.Format(constant.DateOnlyFormat),
		booking.Nights(),
		booking.Status,
	)
}

func confirmedBookingMessage(booking model.Booking) string {
	return fmt.Sprintf(
		"<b>Booking confirmed</b>\nBooking: %s\nGuest: %s\nDates: %s to %s (%d nights)",
		booking.ID,
		booking.FullName,
		booking.CheckIn.Format(constant.DateOnlyFormat),
		booking.CheckOut.Format(constant.DateOnlyFormat),
		booking.Nights(),
	)
}
