package service_test

import (
	"context"
	"errors"
	"rental/config"
	"rental/infras/otel/mocks"
	bookingMocks "rental/internal/domains/booking/mocks"
	bookingModel "rental/internal/domains/booking/model"
	expenseMocks "rental/internal/domains/expense/mocks"
	expenseModel "rental/internal/domains/expense/model"
	profitMocks "rental/internal/domains/profit/mocks"
	"rental/internal/domains/profit/model"
	"rental/internal/domains/profit/model/dto"
	"rental/internal/domains/profit/service"
	unitMocks "rental/internal/domains/unit/mocks"
	unitModel "rental/internal/domains/unit/model"
	userMocks "rental/internal/domains/user/mocks"
	cacheMocks "rental/shared/cache/mocks"
	"rental/shared/constant"
	gDto "rental/shared/dto"
	"rental/shared/failure"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	svc      service.Profit
	repo     *profitMocks.MockPercentage
	units    *unitMocks.MockUnit
	bookings *bookingMocks.MockBooking
	expenses *expenseMocks.MockExpense
	users    *userMocks.MockUser
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		repo:     profitMocks.NewMockPercentage(ctrl),
		units:    unitMocks.NewMockUnit(ctrl),
		bookings: bookingMocks.NewMockBooking(ctrl),
		expenses: expenseMocks.NewMockExpense(ctrl),
		users:    userMocks.NewMockUser(ctrl),
	}

	redis := cacheMocks.NewMockRedisCache(ctrl)
	redis.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	redis.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	redis.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	redis.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f.svc = service.New(f.repo, f.units, f.bookings, f.expenses, f.users, cfg, redis, mocks.NewOtel())

	return f
}

func asActor(id, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, id)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func ptr(s string) *string {
	return &s
}

func TestProfitService_UpsertPercentage(t *testing.T) {
	ownerID := "5f0c8a3e-7a51-4b2c-9a57-2f6f1d3b9c10"

	t.Run("staff stores percentage", func(t *testing.T) {
		f := newFixture(t)

		f.users.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().Upsert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, m model.ProfitPercentage) error {
			assert.Equal(t, ownerID, m.OwnerID)
			assert.True(t, m.Percentage.Equal(decimal.NewFromInt(30)))
			assert.Equal(t, "admin-1", m.CreatedBy)

			return nil
		})

		err := f.svc.UpsertPercentage(asActor("admin-1", constant.RoleAdmin), dto.UpsertPercentageRequest{OwnerID: ownerID, Percentage: "30"})
		assert.NoError(t, err)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("owner is forbidden", func(t *testing.T) {
		f := newFixture(t)

		err := f.svc.UpsertPercentage(asActor(ownerID, constant.RoleUser), dto.UpsertPercentageRequest{OwnerID: ownerID, Percentage: "30"})
		assert.Equal(t, 403, failure.GetCode(err))
	})

	t.Run("above hundred", func(t *testing.T) {
		f := newFixture(t)

		err := f.svc.UpsertPercentage(asActor("admin-1", constant.RoleAdmin), dto.UpsertPercentageRequest{OwnerID: ownerID, Percentage: "100.5"})
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("negative", func(t *testing.T) {
		f := newFixture(t)

		err := f.svc.UpsertPercentage(asActor("admin-1", constant.RoleAdmin), dto.UpsertPercentageRequest{OwnerID: ownerID, Percentage: "-1"})
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("unknown owner", func(t *testing.T) {
		f := newFixture(t)

		f.users.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := f.svc.UpsertPercentage(asActor("admin-1", constant.RoleAdmin), dto.UpsertPercentageRequest{OwnerID: ownerID, Percentage: "100"})
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestProfitService_DeletePercentage(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.ProfitPercentage{}, nil)

		err := f.svc.DeletePercentage(asActor("admin-1", constant.RoleAdmin), "missing")
		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("deleted", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.ProfitPercentage{ID: "pct-1"}, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		err := f.svc.DeletePercentage(asActor("admin-1", constant.RoleSuperAdmin), "pct-1")
		assert.NoError(t, err)

		time.Sleep(10 * time.Millisecond)
	})
}

func TestProfitService_GetPercentages(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.ProfitPercentage{
		{ID: "pct-1", OwnerID: "owner-1", Percentage: decimal.NewFromInt(40), OwnerName: ptr("Sara")},
	}, nil)

	res, err := f.svc.GetPercentages(asActor("admin-1", constant.RoleAdmin), gDto.QueryParams{Limit: 10})
	assert.NoError(t, err)
	assert.Equal(t, 1, res.TotalData)
	assert.Equal(t, "Sara", res.Percentages[0].OwnerName)

	time.Sleep(10 * time.Millisecond)
}

func TestProfitService_Report(t *testing.T) {
	units := []unitModel.Unit{
		{ID: "unit-a", Name: "Chalet A", OwnerID: ptr("owner-1")},
		{ID: "unit-b", Name: "Chalet B", OwnerID: ptr("owner-2")},
	}

	t.Run("aggregates per unit", func(t *testing.T) {
		f := newFixture(t)

		f.units.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(units, nil)
		f.bookings.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]bookingModel.Booking, error) {
				where, args := filter.GetWhereClause()
				assert.Contains(t, where, "bookings.unit_id IN")
				assert.Len(t, args, 2)

				return []bookingModel.Booking{
					{UnitID: "unit-a", CashAmount: decimal.NewFromInt(1000)},
					{UnitID: "unit-b", TransferAmount: decimal.NewFromInt(400)},
				}, nil
			})
		f.expenses.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]expenseModel.Expense{
			{UnitID: "unit-a", Amount: decimal.NewFromInt(0)},
		}, nil)
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.ProfitPercentage{
			{OwnerID: "owner-1", Percentage: decimal.NewFromInt(30)},
		}, nil)

		res, err := f.svc.Report(asActor("admin-1", constant.RoleAdmin), "")
		assert.NoError(t, err)
		assert.Len(t, res.Units, 2)
		assert.True(t, res.Units[0].Profit.Equal(decimal.NewFromInt(300)), res.Units[0].Profit.String())
		assert.True(t, res.Units[1].Profit.Equal(decimal.NewFromInt(200)), res.Units[1].Profit.String())
		assert.True(t, res.Profit.Equal(decimal.NewFromInt(500)))
	})

	t.Run("unknown unit", func(t *testing.T) {
		f := newFixture(t)

		f.units.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

		_, err := f.svc.Report(asActor("admin-1", constant.RoleAdmin), "missing")
		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("owner is forbidden", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Report(asActor("owner-1", constant.RoleUser), "")
		assert.Equal(t, 403, failure.GetCode(err))
	})
}

func TestProfitService_MyReport(t *testing.T) {
	t.Run("scoped to caller", func(t *testing.T) {
		f := newFixture(t)

		f.units.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]unitModel.Unit, error) {
				where, args := filter.GetWhereClause()
				assert.Contains(t, where, "units.owner_id = :owner_id")
				assert.Equal(t, "owner-1", args["owner_id"])

				return nil, nil
			})

		res, err := f.svc.MyReport(asActor("owner-1", constant.RoleUser))
		assert.NoError(t, err)
		assert.Empty(t, res.Units)
		assert.True(t, res.Profit.IsZero())
	})

	t.Run("anonymous", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.MyReport(context.Background())
		assert.Equal(t, 401, failure.GetCode(err))
	})
}
