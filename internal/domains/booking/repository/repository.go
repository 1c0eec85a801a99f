package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"lakeside/infras/otel"
	"lakeside/infras/postgres"
	"lakeside/internal/domains/booking/model"
	roomModel "lakeside/internal/domains/room/model"
	"lakeside/shared/constant"
	gDto "lakeside/shared/dto"
	"lakeside/shared/failure"
	"lakeside/shared/logger"
	gRepo "lakeside/shared/repository"
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	ExistOverlapping(ctx context.Context, sqltx *sqlx.Tx, roomID string, checkIn, checkOut time.Time, excludeID string) (bool, error)
	WithRoomLock(ctx context.Context, roomID string, fn func(sqltx *sqlx.Tx) error) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// ExistOverlapping reports whether a confirmed booking for the room collides
// with the half-open [checkIn, checkOut) range. Rows matching excludeID are
// ignored so a booking can be re-confirmed against itself. When sqltx is nil
// the read pool is used; inside WithRoomLock the locked tx must be passed so
// the check and the following write are atomic.
func (repo *repositoryImpl) ExistOverlapping(ctx context.Context, sqltx *sqlx.Tx, roomID string, checkIn, checkOut time.Time, excludeID string) (exist bool, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".ExistOverlapping")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := fmt.Sprintf(
		"SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1 AND %s = $2 AND %s < $3 AND %s > $4 AND ($5 = '' OR %s <> $5))",
		model.TableName,
		model.FieldRoomID,
		model.FieldStatus,
		model.FieldCheckIn,
		model.FieldCheckOut,
		model.FieldID,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if sqltx != nil {
		err = sqltx.GetContext(ctx, &exist, query, roomID, model.StatusConfirmed, checkOut, checkIn, excludeID)
	} else {
		err = repo.db.Read.GetContext(ctx, &exist, query, roomID, model.StatusConfirmed, checkOut, checkIn, excludeID)
	}

	if err != nil {
		logger.ErrorWithStack(err)

		return false, fmt.Errorf("failed to check overlapping bookings: %w", err)
	}

	return exist, nil
}

// WithRoomLock runs fn inside a write transaction holding a row lock on the
// room, serializing concurrent availability checks for the same room.
func (repo *repositoryImpl) WithRoomLock(ctx context.Context, roomID string, fn func(sqltx *sqlx.Tx) error) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".WithRoomLock")
	defer scope.End()
	defer scope.TraceIfError(err)

	sqltx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = sqltx.Rollback()

			panic(p)
		}
	}()

	lockQuery := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1 FOR UPDATE", roomModel.FieldID, roomModel.TableName, roomModel.FieldID)
	scope.SetAttribute(constant.OtelQueryAttributeKey, lockQuery)

	var lockedID string
	if err = sqltx.GetContext(ctx, &lockedID, lockQuery, roomID); err != nil {
		_ = sqltx.Rollback()

		if errors.Is(err, sql.ErrNoRows) {
			return failure.NotFound("room not found") // nolint:wrapcheck
		}

		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to lock room row: %w", err)
	}

	if err = fn(sqltx); err != nil {
		_ = sqltx.Rollback()

		return err
	}

	if err = sqltx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
