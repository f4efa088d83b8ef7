package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"rental/infras/otel"
	"rental/infras/postgres"
	"rental/internal/domains/booking/conflict"
	"rental/internal/domains/booking/model"
	"rental/shared"
	"rental/shared/constant"
	gDto "rental/shared/dto"
	"rental/shared/failure"
	"rental/shared/logger"
	gRepo "rental/shared/repository"

	"github.com/jmoiron/sqlx"
)

const (
	queryLockUnit = `SELECT id FROM units WHERE id = $1 FOR UPDATE`

	queryOverlapping = `SELECT id, start_date, end_date FROM bookings
		WHERE unit_id = $1 AND start_date <= $3 AND end_date >= $2`
)

type Booking interface {
	InsertExclusive(ctx context.Context, booking model.Booking) error
	UpdateExclusive(ctx context.Context, unitID string, candidate conflict.Range, req map[string]any) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
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

// InsertExclusive writes the booking only if no other booking of the unit overlaps it.
func (r *repositoryImpl) InsertExclusive(ctx context.Context, booking model.Booking) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.InsertExclusive")
	defer scope.End()

	err := r.exclusive(ctx, booking.UnitID, booking.Range(), func(tx *sqlx.Tx) error {
		return r.InsertTx(ctx, tx, booking)
	})
	scope.TraceIfError(err)

	return err
}

// UpdateExclusive rewrites a booking, excluding the booking itself from the overlap check.
func (r *repositoryImpl) UpdateExclusive(ctx context.Context, unitID string, candidate conflict.Range, req map[string]any) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.UpdateExclusive")
	defer scope.End()

	err := r.exclusive(ctx, unitID, candidate, func(tx *sqlx.Tx) error {
		return r.UpdateTx(ctx, tx, req, shared.FilterByID(candidate.ID, model.FieldID, model.TableName))
	})
	scope.TraceIfError(err)

	return err
}

// exclusive serializes writers of one unit by locking its row, then runs the conflict
// check and the write in the same transaction.
func (r *repositoryImpl) exclusive(ctx context.Context, unitID string, candidate conflict.Range, write func(tx *sqlx.Tx) error) error {
	err := r.db.WithTx(ctx, nil, func(tx *sqlx.Tx) error {
		var locked string

		if err := tx.GetContext(ctx, &locked, queryLockUnit, unitID); err != nil {
			if errors.Is(err, sql.ErrNoRows) || postgres.IsInvalidText(err) {
				return failure.NotFound("unit not found")
			}

			return fmt.Errorf("failed to lock unit: %w", err)
		}

		var existing []conflict.Range

		if err := tx.SelectContext(ctx, &existing, queryOverlapping, unitID, candidate.Start, candidate.End); err != nil {
			return fmt.Errorf("failed to get overlapping bookings: %w", err)
		}

		if err := conflict.Check(candidate, existing); err != nil {
			return err //nolint:wrapcheck
		}

		return write(tx)
	})

	if postgres.IsUniqueViolation(err) {
		return failure.Conflict("date range conflict with an existing booking")
	}

	if err != nil && failure.GetCode(err) >= http.StatusInternalServerError {
		logger.ErrorWithStack(err)
	}

	return err //nolint:wrapcheck
}
