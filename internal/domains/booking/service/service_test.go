package service_test

import (
	"context"
	"net/http"
	"rental/config"
	kafkaMocks "rental/infras/kafka/mocks"
	"rental/infras/otel/mocks"
	"rental/internal/domains/booking/conflict"
	bookingMocks "rental/internal/domains/booking/mocks"
	"rental/internal/domains/booking/model"
	"rental/internal/domains/booking/model/dto"
	"rental/internal/domains/booking/service"
	pricingMocks "rental/internal/domains/pricing/mocks"
	pricingDto "rental/internal/domains/pricing/model/dto"
	unitMocks "rental/internal/domains/unit/mocks"
	unitModel "rental/internal/domains/unit/model"
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

const (
	unitID  = "unit-1"
	ownerID = "owner-1"
)

type fixture struct {
	svc     service.Booking
	repo    *bookingMocks.MockBooking
	units   *unitMocks.MockUnit
	pricing *pricingMocks.MockPricing
	kafka   *kafkaMocks.MockClient
	cache   *cacheMocks.MockRedisCache
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		repo:    bookingMocks.NewMockBooking(ctrl),
		units:   unitMocks.NewMockUnit(ctrl),
		pricing: pricingMocks.NewMockPricing(ctrl),
		kafka:   kafkaMocks.NewMockClient(ctrl),
		cache:   cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Kafka.Topic.Booking = "rental.booking"
	cfg.Booking.PhoneRegion = "SA"

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(failure.NotFound("cache miss")).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.kafka.EXPECT().SendMessages(gomock.Any(), "rental.booking", gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(f.repo, f.units, f.pricing, f.kafka, cfg, f.cache, mocks.NewOtel())

	return f
}

func (f fixture) withUnit(owner string) {
	f.units.EXPECT().Get(gomock.Any(), gomock.Any()).Return(unitModel.Unit{ID: unitID, Name: "Chalet A", OwnerID: &owner}, nil).AnyTimes()
}

// withStore backs the exclusive writes with an in-memory calendar so overlap rules run for real.
func (f fixture) withStore() *[]conflict.Range {
	stored := &[]conflict.Range{}

	f.repo.EXPECT().InsertExclusive(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, booking model.Booking) error {
		if err := conflict.Check(booking.Range(), *stored); err != nil {
			return err
		}

		*stored = append(*stored, booking.Range())

		return nil
	}).AnyTimes()

	return stored
}

func asActor(id, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, id)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func asNamedActor(id, role, name string) context.Context {
	return context.WithValue(asActor(id, role), constant.ContextKeyUserName, name)
}

func day(value string) time.Time {
	parsed, _ := time.Parse(time.DateOnly, value)

	return parsed
}

func TestBookingService_Create_Scenario(t *testing.T) {
	f := newFixture(t)
	f.withUnit(ownerID)
	stored := f.withStore()

	f.pricing.EXPECT().
		Resolve(gomock.Any(), unitID, gomock.Any()).
		Return(pricingDto.ResolvedPriceResponse{Source: "none"}, nil).
		AnyTimes()

	ctx := asActor("admin-1", constant.RoleAdmin)

	first, err := f.svc.Create(ctx, unitID, dto.CreateBookingRequest{StartDate: "2024-05-01", EndDate: "2024-05-01", PricePerDay: "200"})
	assert.NoError(t, err)
	assert.True(t, decimal.NewFromInt(200).Equal(*first.PricePerDay))
	assert.Equal(t, "Chalet A", first.UnitName)

	_, err = f.svc.Create(ctx, unitID, dto.CreateBookingRequest{StartDate: "2024-05-01", EndDate: "2024-05-01"})
	assert.Error(t, err)
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))

	_, err = f.svc.Create(ctx, unitID, dto.CreateBookingRequest{StartDate: "2024-05-02", EndDate: "2024-05-02"})
	assert.NoError(t, err)

	assert.Len(t, *stored, 2)

	time.Sleep(10 * time.Millisecond)
}

func TestBookingService_Create(t *testing.T) {
	t.Run("multi day booking is rejected before any conflict lookup", func(t *testing.T) {
		f := newFixture(t)
		f.withUnit(ownerID)

		_, err := f.svc.Create(asActor("admin-1", constant.RoleAdmin), unitID, dto.CreateBookingRequest{StartDate: "2024-05-01", EndDate: "2024-05-03"})

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("malformed date is a validation error", func(t *testing.T) {
		f := newFixture(t)
		f.withUnit(ownerID)

		_, err := f.svc.Create(asActor("admin-1", constant.RoleAdmin), unitID, dto.CreateBookingRequest{StartDate: "01/05/2024", EndDate: "01/05/2024"})

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("authorization runs before validation", func(t *testing.T) {
		f := newFixture(t)
		f.withUnit(ownerID)

		_, err := f.svc.Create(asActor("stranger", constant.RoleUser), unitID, dto.CreateBookingRequest{StartDate: "2024-05-01", EndDate: "2024-05-03"})

		assert.Error(t, err)
		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("unknown unit", func(t *testing.T) {
		f := newFixture(t)
		f.units.EXPECT().Get(gomock.Any(), gomock.Any()).Return(unitModel.Unit{}, nil)

		_, err := f.svc.Create(asActor("admin-1", constant.RoleAdmin), unitID, dto.CreateBookingRequest{StartDate: "2024-05-01", EndDate: "2024-05-01"})

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("owner creates an owner booking under their name", func(t *testing.T) {
		f := newFixture(t)
		f.withUnit(ownerID)

		price := decimal.NewFromInt(350)

		f.pricing.EXPECT().
			Resolve(gomock.Any(), unitID, pricingDto.ResolvePriceRequest{Date: "2024-05-01"}).
			Return(pricingDto.ResolvedPriceResponse{Date: "2024-05-01", Price: &price, Source: "weekday"}, nil)
		f.repo.EXPECT().
			InsertExclusive(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, booking model.Booking) error {
				assert.True(t, booking.IsOwnerBooking)
				assert.Equal(t, "Sara Owner", booking.CustomerName)
				assert.Equal(t, "+966501234567", booking.CustomerPhone)
				assert.True(t, booking.PricePerDay.Valid)
				assert.True(t, price.Equal(booking.PricePerDay.Decimal))
				assert.Equal(t, ownerID, booking.CreatedByUser())

				return nil
			})

		req := dto.CreateBookingRequest{
			StartDate:     "2024-05-01",
			EndDate:       "2024-05-01",
			CustomerName:  "ignored",
			CustomerPhone: "050 123 4567",
		}

		_, err := f.svc.Create(asNamedActor(ownerID, constant.RoleUser, "Sara Owner"), unitID, req)

		assert.NoError(t, err)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("invalid phone", func(t *testing.T) {
		f := newFixture(t)
		f.withUnit(ownerID)

		req := dto.CreateBookingRequest{StartDate: "2024-05-01", EndDate: "2024-05-01", CustomerPhone: "123"}

		_, err := f.svc.Create(asActor("admin-1", constant.RoleAdmin), unitID, req)

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestBookingService_Update(t *testing.T) {
	owner := ownerID
	current := model.Booking{
		ID:          "b-1",
		UnitID:      unitID,
		StartDate:   day("2024-05-01"),
		EndDate:     day("2024-05-01"),
		UnitOwnerID: &owner,
	}

	t.Run("unchanged range excludes itself", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)
		f.repo.EXPECT().
			UpdateExclusive(gomock.Any(), unitID, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, candidate conflict.Range, fields map[string]any) error {
				assert.Equal(t, "b-1", candidate.ID)
				assert.Equal(t, "updated", fields[model.FieldNotes])

				return conflict.Check(candidate, []conflict.Range{current.Range()})
			})

		err := f.svc.Update(asActor("admin-1", constant.RoleAdmin), dto.UpdateBookingRequest{Notes: "updated"}, "b-1")

		assert.NoError(t, err)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("moving onto another booking conflicts", func(t *testing.T) {
		f := newFixture(t)

		other := conflict.Range{ID: "b-2", Start: day("2024-05-02"), End: day("2024-05-02")}

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)
		f.repo.EXPECT().
			UpdateExclusive(gomock.Any(), unitID, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, candidate conflict.Range, _ map[string]any) error {
				return conflict.Check(candidate, []conflict.Range{current.Range(), other})
			})

		err := f.svc.Update(asActor("admin-1", constant.RoleAdmin), dto.UpdateBookingRequest{StartDate: "2024-05-02", EndDate: "2024-05-02"}, "b-1")

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("extending to several days is rejected", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)

		err := f.svc.Update(asActor(ownerID, constant.RoleUser), dto.UpdateBookingRequest{EndDate: "2024-05-03"}, "b-1")

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("owner edit stays an owner booking under their name", func(t *testing.T) {
		f := newFixture(t)

		notOwnerBooking := false

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)
		f.repo.EXPECT().
			UpdateExclusive(gomock.Any(), unitID, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, _ conflict.Range, fields map[string]any) error {
				assert.Equal(t, true, fields[model.FieldIsOwnerBooking])
				assert.Equal(t, "Sara Owner", fields[model.FieldCustomerName])

				return nil
			})

		req := dto.UpdateBookingRequest{CustomerName: "Walk-in Guest", IsOwnerBooking: &notOwnerBooking}

		err := f.svc.Update(asNamedActor(ownerID, constant.RoleUser, "Sara Owner"), req, "b-1")

		assert.NoError(t, err)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("staff may rename the customer", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)
		f.repo.EXPECT().
			UpdateExclusive(gomock.Any(), unitID, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, _ conflict.Range, fields map[string]any) error {
				assert.Equal(t, "Walk-in Guest", fields[model.FieldCustomerName])
				assert.NotContains(t, fields, model.FieldIsOwnerBooking)

				return nil
			})

		err := f.svc.Update(asActor("admin-1", constant.RoleAdmin), dto.UpdateBookingRequest{CustomerName: "Walk-in Guest"}, "b-1")

		assert.NoError(t, err)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("stranger is forbidden", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)

		err := f.svc.Update(asActor("stranger", constant.RoleUser), dto.UpdateBookingRequest{Notes: "x"}, "b-1")

		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("empty update", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)

		err := f.svc.Update(asActor("admin-1", constant.RoleAdmin), dto.UpdateBookingRequest{}, "b-1")

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestBookingService_Cancel(t *testing.T) {
	creator := "agent-7"
	owner := ownerID
	current := model.Booking{
		ID:           "b-1",
		UnitID:       unitID,
		StartDate:    day("2024-05-01"),
		EndDate:      day("2024-05-01"),
		CustomerName: "Omar Guest",
		UserID:       &creator,
		UnitOwnerID:  &owner,
	}

	tests := []struct {
		name     string
		ctx      context.Context
		wantCode int
	}{
		{name: "staff", ctx: asActor("admin-1", constant.RoleSuperAdmin)},
		{name: "unit owner", ctx: asActor(ownerID, constant.RoleUser)},
		{name: "creating user", ctx: asActor(creator, constant.RoleUser)},
		{name: "customer by display name", ctx: asNamedActor("guest-9", constant.RoleUser, "Omar Guest")},
		{name: "display name differs in case", ctx: asNamedActor("guest-9", constant.RoleUser, "omar guest"), wantCode: http.StatusForbidden},
		{name: "stranger", ctx: asActor("stranger", constant.RoleUser), wantCode: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)

			if tt.wantCode == 0 {
				f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
			}

			err := f.svc.Cancel(tt.ctx, "b-1")

			if tt.wantCode == 0 {
				assert.NoError(t, err)
			} else {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			}

			time.Sleep(10 * time.Millisecond)
		})
	}

	t.Run("unknown booking", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		err := f.svc.Cancel(asActor("admin-1", constant.RoleAdmin), "missing")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestBookingService_GetAll(t *testing.T) {
	t.Run("owner listing is scoped to owned units", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
				where, args := filter.GetWhereClause()

				assert.Contains(t, where, "units.owner_id = :actor_owner_id")
				assert.Equal(t, ownerID, args["actor_owner_id"])

				return 1, nil
			})
		f.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Booking{{ID: "b-1", StartDate: day("2024-05-01"), EndDate: day("2024-05-01")}}, nil)

		res, err := f.svc.GetAll(asActor(ownerID, constant.RoleUser), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

		assert.NoError(t, err)
		assert.Len(t, res.Bookings, 1)
		assert.Equal(t, 1, res.TotalData)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("staff listing is unscoped", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
				where, _ := filter.GetWhereClause()

				assert.NotContains(t, where, "owner_id")

				return 0, nil
			})
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

		_, err := f.svc.GetAll(asActor("admin-1", constant.RoleAdmin), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

		assert.NoError(t, err)

		time.Sleep(10 * time.Millisecond)
	})
}

func TestBookingService_Events(t *testing.T) {
	f := newFixture(t)
	f.withUnit(ownerID)

	f.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Booking{
			{StartDate: day("2024-05-01"), EndDate: day("2024-05-01"), IsOwnerBooking: true},
			{StartDate: day("2024-05-04"), EndDate: day("2024-05-04")},
		}, nil)

	res, err := f.svc.Events(context.Background(), unitID)

	assert.NoError(t, err)
	assert.Equal(t, "Chalet A", res.UnitName)
	assert.Len(t, res.Events, 2)
	assert.Equal(t, dto.EventTitleOwner, res.Events[0].Title)
	assert.Equal(t, dto.EventTitleBooked, res.Events[1].Title)

	time.Sleep(10 * time.Millisecond)
}
