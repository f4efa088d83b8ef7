package repository_test

import (
	"context"
	"net/http"
	"rental/infras/otel/mocks"
	"rental/infras/postgres"
	"rental/internal/domains/booking/conflict"
	"rental/internal/domains/booking/model"
	"rental/internal/domains/booking/repository"
	"rental/shared/failure"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	unitID    = "7d1c2f8e-2b8a-4f57-9a53-0a3c4f1e9b11"
	bookingID = "c3a9e2d4-5f61-4b7a-8e0d-2f4b6a8c1d33"
	otherID   = "f0e1d2c3-b4a5-4968-8776-655443322110"
)

var (
	lockUnit    = regexp.QuoteMeta(`SELECT id FROM units WHERE id = $1 FOR UPDATE`)
	overlapping = regexp.QuoteMeta(`SELECT id, start_date, end_date FROM bookings`)
	day         = time.Date(2025, time.March, 30, 0, 0, 0, 0, time.UTC)
)

func newRepository(t *testing.T) (repository.Booking, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	conn := sqlx.NewDb(db, "postgres")

	return repository.New(&postgres.Connection{Read: conn, Write: conn}, mocks.NewOtel()), mock
}

func rangeRows(ranges ...conflict.Range) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "start_date", "end_date"})
	for _, r := range ranges {
		rows.AddRow(r.ID, r.Start, r.End)
	}

	return rows
}

func booking() model.Booking {
	return model.Booking{
		ID:           bookingID,
		UnitID:       unitID,
		StartDate:    day,
		EndDate:      day,
		CustomerName: "Abu Saleh",
	}
}

func TestInsertExclusive(t *testing.T) {
	ctx := context.Background()

	t.Run("locks the unit, checks overlaps with start and end bound in order, then inserts", func(t *testing.T) {
		repo, mock := newRepository(t)

		mock.ExpectBegin()
		mock.ExpectQuery(lockUnit).WithArgs(unitID).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(unitID))
		mock.ExpectQuery(overlapping).WithArgs(unitID, day, day).WillReturnRows(rangeRows())
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO bookings")).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.InsertExclusive(ctx, booking()))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("an overlapping booking is a conflict and nothing is written", func(t *testing.T) {
		repo, mock := newRepository(t)

		mock.ExpectBegin()
		mock.ExpectQuery(lockUnit).WithArgs(unitID).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(unitID))
		mock.ExpectQuery(overlapping).WithArgs(unitID, day, day).
			WillReturnRows(rangeRows(conflict.Range{ID: otherID, Start: day, End: day}))
		mock.ExpectRollback()

		err := repo.InsertExclusive(ctx, booking())

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
		assert.ErrorContains(t, err, "2025-03-30 to 2025-03-30")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("a unique violation from a concurrent insert is a conflict", func(t *testing.T) {
		repo, mock := newRepository(t)

		mock.ExpectBegin()
		mock.ExpectQuery(lockUnit).WithArgs(unitID).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(unitID))
		mock.ExpectQuery(overlapping).WithArgs(unitID, day, day).WillReturnRows(rangeRows())
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO bookings")).WillReturnError(&pq.Error{Code: "23505"})
		mock.ExpectRollback()

		err := repo.InsertExclusive(ctx, booking())

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("a missing unit is not found", func(t *testing.T) {
		repo, mock := newRepository(t)

		mock.ExpectBegin()
		mock.ExpectQuery(lockUnit).WithArgs(unitID).WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectRollback()

		err := repo.InsertExclusive(ctx, booking())

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("a malformed unit id is not found", func(t *testing.T) {
		repo, mock := newRepository(t)

		mock.ExpectBegin()
		mock.ExpectQuery(lockUnit).WithArgs("abc").WillReturnError(&pq.Error{Code: "22P02"})
		mock.ExpectRollback()

		malformed := booking()
		malformed.UnitID = "abc"

		err := repo.InsertExclusive(ctx, malformed)

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpdateExclusive(t *testing.T) {
	ctx := context.Background()
	next := day.AddDate(0, 0, 1)
	candidate := conflict.Range{ID: bookingID, Start: next, End: next}

	t.Run("the booking's own row does not conflict with itself", func(t *testing.T) {
		repo, mock := newRepository(t)

		mock.ExpectBegin()
		mock.ExpectQuery(lockUnit).WithArgs(unitID).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(unitID))
		mock.ExpectQuery(overlapping).WithArgs(unitID, next, next).
			WillReturnRows(rangeRows(conflict.Range{ID: bookingID, Start: next, End: next}))
		mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET end_date = $1, start_date = $2 WHERE (bookings.id = $3)")).
			WithArgs(next, next, bookingID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.UpdateExclusive(ctx, unitID, candidate, map[string]any{
			model.FieldStartDate: next,
			model.FieldEndDate:   next,
		})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("another booking on the new day is a conflict", func(t *testing.T) {
		repo, mock := newRepository(t)

		mock.ExpectBegin()
		mock.ExpectQuery(lockUnit).WithArgs(unitID).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(unitID))
		mock.ExpectQuery(overlapping).WithArgs(unitID, next, next).
			WillReturnRows(rangeRows(conflict.Range{ID: otherID, Start: next, End: next}))
		mock.ExpectRollback()

		err := repo.UpdateExclusive(ctx, unitID, candidate, map[string]any{model.FieldStartDate: next})

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
