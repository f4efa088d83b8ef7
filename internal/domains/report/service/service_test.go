package service_test

import (
	"bytes"
	"context"
	"rental/config"
	"rental/infras/otel/mocks"
	bookingMocks "rental/internal/domains/booking/mocks"
	bookingModel "rental/internal/domains/booking/model"
	"rental/internal/domains/report/export"
	"rental/internal/domains/report/model/dto"
	"rental/internal/domains/report/service"
	unitMocks "rental/internal/domains/unit/mocks"
	"rental/shared/constant"
	gDto "rental/shared/dto"
	"rental/shared/failure"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	svc      service.Report
	bookings *bookingMocks.MockBooking
	units    *unitMocks.MockUnit
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		bookings: bookingMocks.NewMockBooking(ctrl),
		units:    unitMocks.NewMockUnit(ctrl),
	}

	f.svc = service.New(f.bookings, f.units, &config.Config{}, mocks.NewOtel())

	return f
}

func asActor(id, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, id)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func day(s string) time.Time {
	t, _ := time.Parse(time.DateOnly, s)

	return t
}

// captured records the where clause the report queried with.
type captured struct {
	where  string
	args   map[string]any
	params gDto.QueryParams
}

func (f fixture) expectBookings(c *captured, rows []bookingModel.Booking) {
	f.bookings.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]bookingModel.Booking, error) {
			c.where, c.args = filter.GetWhereClause()
			c.params = params

			return rows, nil
		})
}

func TestReportService_Payments(t *testing.T) {
	admin := asActor("admin-1", constant.RoleAdmin)

	t.Run("weekly window on start date", func(t *testing.T) {
		f := newFixture(t)

		var c captured

		f.expectBookings(&c, []bookingModel.Booking{
			{ID: "b2", StartDate: day("2024-05-18"), EndDate: day("2024-05-18"), CashAmount: decimal.NewFromInt(300)},
			{ID: "b1", StartDate: day("2024-05-14"), EndDate: day("2024-05-14"), TransferAmount: decimal.NewFromInt(200)},
		})

		res, err := f.svc.Payments(admin, dto.PaymentsRequest{ReportType: "weekly", Date: "2024-05-15"})
		require.NoError(t, err)

		assert.Contains(t, c.where, "bookings.start_date >= :period_from")
		assert.Contains(t, c.where, "bookings.start_date <= :period_to")
		assert.Equal(t, day("2024-05-13"), c.args["period_from"])
		assert.Equal(t, day("2024-05-19"), c.args["period_to"])
		assert.Equal(t, "bookings.start_date", c.params.SortBy)
		assert.Equal(t, gDto.SortDirDesc, c.params.SortDir)

		assert.Equal(t, "2024-05-13", *res.From)
		assert.Equal(t, "2024-05-19", *res.To)
		assert.Len(t, res.CashBookings, 1)
		assert.Len(t, res.TransferBookings, 1)
		assert.True(t, res.TotalAll.Equal(decimal.NewFromInt(500)))
	})

	t.Run("malformed date ignores period", func(t *testing.T) {
		f := newFixture(t)

		var c captured

		f.expectBookings(&c, nil)

		res, err := f.svc.Payments(admin, dto.PaymentsRequest{ReportType: "daily", Date: "2024/05/15"})
		require.NoError(t, err)

		assert.Empty(t, c.where)
		assert.Nil(t, res.From)
	})

	t.Run("known unit is filtered", func(t *testing.T) {
		f := newFixture(t)

		var c captured

		f.units.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.expectBookings(&c, nil)

		_, err := f.svc.Payments(admin, dto.PaymentsRequest{UnitID: "unit-a"})
		require.NoError(t, err)

		assert.Contains(t, c.where, "bookings.unit_id = :unit_id")
		assert.Equal(t, "unit-a", c.args["unit_id"])
	})

	t.Run("unknown unit is ignored", func(t *testing.T) {
		f := newFixture(t)

		var c captured

		f.units.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.expectBookings(&c, nil)

		_, err := f.svc.Payments(admin, dto.PaymentsRequest{UnitID: "missing", ReportType: "all"})
		require.NoError(t, err)

		assert.NotContains(t, c.where, "unit_id")
	})

	t.Run("unknown report type", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Payments(admin, dto.PaymentsRequest{ReportType: "yearly"})
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("owner is forbidden", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Payments(asActor("owner-1", constant.RoleUser), dto.PaymentsRequest{})
		assert.Equal(t, 403, failure.GetCode(err))
	})
}

func TestReportService_PaymentsXLSX(t *testing.T) {
	f := newFixture(t)

	var c captured

	f.expectBookings(&c, []bookingModel.Booking{
		{ID: "b1", UnitName: "Chalet A", StartDate: day("2024-05-14"), EndDate: day("2024-05-14"), CustomerName: "Sara", CashAmount: decimal.NewFromInt(250)},
	})

	payload, err := f.svc.PaymentsXLSX(asActor("admin-1", constant.RoleSuperAdmin), dto.PaymentsRequest{})
	require.NoError(t, err)

	file, err := excelize.OpenReader(bytes.NewReader(payload))
	require.NoError(t, err)

	defer file.Close()

	rows, err := file.GetRows(export.SheetPayments)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Chalet A", rows[1][0])
	assert.Equal(t, "250", rows[2][6])
}
