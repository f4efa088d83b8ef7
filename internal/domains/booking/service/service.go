package service

import (
	"context"
	"fmt"
	"rental/config"
	"rental/infras/kafka"
	"rental/infras/otel"
	"rental/internal/domains/booking/conflict"
	"rental/internal/domains/booking/model"
	"rental/internal/domains/booking/model/dto"
	"rental/internal/domains/booking/repository"
	pricingDto "rental/internal/domains/pricing/model/dto"
	pricingService "rental/internal/domains/pricing/service"
	unitModel "rental/internal/domains/unit/model"
	unitRepo "rental/internal/domains/unit/repository"
	"rental/permissions"
	"rental/shared"
	"rental/shared/cache"
	"rental/shared/constant"
	gDto "rental/shared/dto"
	"rental/shared/failure"
	"rental/shared/phone"
	"rental/shared/validator"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
	cacheEventsBooking = "booking:events"

	argActorOwnerID = "actor_owner_id"

	messageInvalidDate = "dates must be formatted as YYYY-MM-DD"
)

type Booking interface {
	Create(ctx context.Context, unitID string, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, id string) error
	Cancel(ctx context.Context, id string) error
	Events(ctx context.Context, unitID string) (dto.EventsResponse, error)
}

type serviceImpl struct {
	repo     repository.Booking
	unitRepo unitRepo.Unit
	pricing  pricingService.Pricing
	kafka    kafka.Client
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(
	repo repository.Booking,
	unitRepo unitRepo.Unit,
	pricing pricingService.Pricing,
	kafka kafka.Client,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:     repo,
		unitRepo: unitRepo,
		pricing:  pricing,
		kafka:    kafka,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, unitID string, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	unit, err := s.unit(ctx, unitID)
	if err != nil {
		return res, err
	}

	actor := permissions.ActorFromContext(ctx)

	if err = permissions.Check(actor, permissions.ActionCreateBooking, permissions.Resource{OwnerID: unit.Owner()}); err != nil {
		return res, err
	}

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err //nolint:wrapcheck
	}

	start, end, err := req.Dates()
	if err != nil {
		return res, failure.BadRequestFromString(messageInvalidDate)
	}

	if err = conflict.ValidateDates(start, end); err != nil {
		return res, err //nolint:wrapcheck
	}

	// owners can only block their own calendar
	if !actor.IsStaff() {
		req.IsOwnerBooking = true
		req.CustomerName = actor.DisplayName
	}

	if req.CustomerPhone, err = phone.Normalize(req.CustomerPhone, s.cfg.Booking.PhoneRegion); err != nil {
		return res, failure.BadRequest(err)
	}

	booking := req.ToModel(shared.Username(ctx), unitID, start, end)
	booking.UnitName = unit.Name

	if !booking.PricePerDay.Valid {
		resolved, err := s.pricing.Resolve(ctx, unitID, pricingDto.ResolvePriceRequest{Date: req.StartDate})
		if err != nil {
			log.Error().Err(err).Msg("failed to resolve booking price")

			return res, fmt.Errorf("failed to resolve booking price: %w", err)
		}

		if resolved.Price != nil {
			booking.PricePerDay.Decimal, booking.PricePerDay.Valid = *resolved.Price, true
		}
	}

	if err = s.repo.InsertExclusive(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, err //nolint:wrapcheck
	}

	s.invalidate(ctx, unitID)
	s.publish(ctx, model.EventCreated, booking)

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	if actor := permissions.ActorFromContext(ctx); !actor.IsStaff() {
		filter = shared.And(filter, gDto.Filter{
			ArgName:  argActorOwnerID,
			Field:    model.FieldUnitOwnerID,
			Value:    actor.ID,
			Operator: gDto.FilterOperatorEq,
			Table:    model.UnitTableName,
		})
	}

	if params.SortBy == constant.Empty {
		params.SortBy, params.SortDir = model.TableName+"."+model.FieldStartDate, gDto.SortDirDesc
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, params, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.count(ctx, params, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, params, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
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

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.booking(ctx, id)
	if err != nil {
		return res, err
	}

	if err = permissions.Check(permissions.ActorFromContext(ctx), permissions.ActionViewUnit, permissions.Resource{OwnerID: booking.Owner()}); err != nil {
		return res, err
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	current, err := s.booking(ctx, id)
	if err != nil {
		return err
	}

	actor := permissions.ActorFromContext(ctx)

	if err = permissions.Check(actor, permissions.ActionUpdateBooking, permissions.Resource{OwnerID: current.Owner()}); err != nil {
		return err
	}

	if err = validator.ValidateStruct(&req); err != nil {
		return err //nolint:wrapcheck
	}

	if req.IsEmpty() {
		return failure.BadRequestFromString("update request cannot be empty")
	}

	// an owner's edit keeps the booking an owner booking under their name, as on create
	if !actor.IsStaff() {
		ownerBooking := true
		req.IsOwnerBooking = &ownerBooking
		req.CustomerName = actor.DisplayName
	}

	start, end, err := req.Range(current)
	if err != nil {
		return failure.BadRequestFromString(messageInvalidDate)
	}

	if err = conflict.ValidateDates(start, end); err != nil {
		return err //nolint:wrapcheck
	}

	if req.CustomerPhone, err = phone.Normalize(req.CustomerPhone, s.cfg.Booking.PhoneRegion); err != nil {
		return failure.BadRequest(err)
	}

	candidate := conflict.Range{ID: current.ID, Start: start, End: end}

	if err = s.repo.UpdateExclusive(ctx, current.UnitID, candidate, req.ToFields(shared.Username(ctx), start, end)); err != nil {
		log.Error().Err(err).Msg("failed to update booking")

		return err //nolint:wrapcheck
	}

	current.StartDate, current.EndDate = start, end

	s.invalidate(ctx, current.UnitID)
	s.publish(ctx, model.EventUpdated, current)

	return nil
}

func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	current, err := s.booking(ctx, id)
	if err != nil {
		return err
	}

	resource := permissions.Resource{
		OwnerID:      current.Owner(),
		CreatedBy:    current.CreatedByUser(),
		CustomerName: current.CustomerName,
	}

	if err = permissions.Check(permissions.ActorFromContext(ctx), permissions.ActionCancelBooking, resource); err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to cancel booking")

		return fmt.Errorf("failed to cancel booking: %w", err)
	}

	s.invalidate(ctx, current.UnitID)
	s.publish(ctx, model.EventCancelled, current)

	return nil
}

// Events lists the occupied days of a unit for the public calendar.
func (s *serviceImpl) Events(ctx context.Context, unitID string) (res dto.EventsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Events")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheEventsBooking, unitID)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking events")

		return res, nil
	}

	unit, err := s.unit(ctx, unitID)
	if err != nil {
		return res, err
	}

	params := gDto.QueryParams{SortBy: model.TableName + "." + model.FieldStartDate, SortDir: gDto.SortDirAsc}

	bookings, err := s.repo.GetAll(ctx, params, shared.And(shared.Eq(model.TableName, model.FieldUnitID, unitID)))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking events")

		return res, fmt.Errorf("failed to get booking events: %w", err)
	}

	res.FromModels(unit.Name, bookings)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking events to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) booking(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found")
	}

	return booking, nil
}

func (s *serviceImpl) unit(ctx context.Context, id string) (unitModel.Unit, error) {
	unit, err := s.unitRepo.Get(ctx, shared.FilterByID(id, unitModel.FieldID, unitModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get unit")

		return unit, fmt.Errorf("failed to get unit: %w", err)
	}

	if unit.ID == constant.Empty {
		return unit, failure.NotFound("unit not found")
	}

	return unit, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, unitID string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheEventsBooking, unitID)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking events cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()
}

// publish emits the booking event without blocking or failing the request.
func (s *serviceImpl) publish(ctx context.Context, event string, booking model.Booking) {
	message := kafka.Message{
		Key:   booking.UnitID,
		Value: dto.NewBookingEvent(event, shared.Username(ctx), booking),
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.kafka.SendMessages(c, s.cfg.Kafka.Topic.Booking, message); err != nil {
			log.Error().Err(err).Str("event", event).Str("bookingID", booking.ID).Msg("failed to publish booking event")
		}
	}()
}
