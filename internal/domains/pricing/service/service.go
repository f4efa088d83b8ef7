package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"rental/config"
	"rental/infras/otel"
	"rental/infras/postgres"
	"rental/internal/domains/pricing/model"
	"rental/internal/domains/pricing/model/dto"
	"rental/internal/domains/pricing/repository"
	unitModel "rental/internal/domains/unit/model"
	unitRepo "rental/internal/domains/unit/repository"
	"rental/permissions"
	"rental/shared"
	"rental/shared/cache"
	"rental/shared/constant"
	gDto "rental/shared/dto"
	"rental/shared/failure"
	"time"

	"github.com/rs/zerolog/log"
)

const cacheGetPricing = "pricing:get"

type Pricing interface {
	Get(ctx context.Context, unitID string) (dto.UnitPricingResponse, error)
	UpsertWeekday(ctx context.Context, unitID string, req dto.UpsertWeekdayRequest) error
	DeleteWeekday(ctx context.Context, id string) error
	UpsertSpecial(ctx context.Context, unitID string, req dto.UpsertSpecialRequest) error
	DeleteSpecial(ctx context.Context, id string) error
	CreateHoliday(ctx context.Context, unitID string, req dto.CreateHolidayRequest) error
	UpdateHoliday(ctx context.Context, req dto.UpdateHolidayRequest, id string) error
	DeleteHoliday(ctx context.Context, id string) error
	Resolve(ctx context.Context, unitID string, req dto.ResolvePriceRequest) (dto.ResolvedPriceResponse, error)
}

type serviceImpl struct {
	weekdayRepo repository.Weekday
	specialRepo repository.Special
	holidayRepo repository.Holiday
	unitRepo    unitRepo.Unit
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(
	weekdayRepo repository.Weekday,
	specialRepo repository.Special,
	holidayRepo repository.Holiday,
	unitRepo unitRepo.Unit,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Pricing {
	return &serviceImpl{
		weekdayRepo: weekdayRepo,
		specialRepo: specialRepo,
		holidayRepo: holidayRepo,
		unitRepo:    unitRepo,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

func (s *serviceImpl) Get(ctx context.Context, unitID string) (res dto.UnitPricingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	unit, err := s.unit(ctx, unitID)
	if err != nil {
		return res, err
	}

	if err = permissions.Check(permissions.ActorFromContext(ctx), permissions.ActionViewUnit, permissions.Resource{OwnerID: unit.Owner()}); err != nil {
		return res, err
	}

	cacheKey := shared.BuildCacheKey(cacheGetPricing, unitID)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for unit pricing")

		return res, nil
	}

	sortBy := func(field string) gDto.QueryParams {
		return gDto.QueryParams{SortBy: field, SortDir: gDto.SortDirAsc}
	}

	weekdays, err := s.weekdayRepo.GetAll(ctx, sortBy(model.FieldDayOfWeek), shared.And(shared.Eq(model.WeekdayTableName, model.FieldUnitID, unitID)))
	if err != nil {
		return res, fmt.Errorf("failed to get weekday pricing: %w", err)
	}

	specials, err := s.specialRepo.GetAll(ctx, sortBy(model.FieldPricingType+", "+model.FieldNightNumber), shared.And(shared.Eq(model.SpecialTableName, model.FieldUnitID, unitID)))
	if err != nil {
		return res, fmt.Errorf("failed to get special pricing: %w", err)
	}

	holidays, err := s.holidayRepo.GetAll(ctx, sortBy(model.FieldHolidayDate), shared.And(shared.Eq(model.HolidayTableName, model.FieldUnitID, unitID)))
	if err != nil {
		return res, fmt.Errorf("failed to get holidays: %w", err)
	}

	res.FromModels(unitID, weekdays, specials, holidays)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save unit pricing to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) UpsertWeekday(ctx context.Context, unitID string, req dto.UpsertWeekdayRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpsertWeekday")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.authorize(ctx, permissions.ActionManagePricing, unitID); err != nil {
		return err
	}

	if err = s.weekdayRepo.Upsert(ctx, req.ToModel(shared.Username(ctx), unitID)); err != nil {
		log.Error().Err(err).Msg("failed to upsert weekday pricing")

		return fmt.Errorf("failed to upsert weekday pricing: %w", err)
	}

	s.invalidate(ctx, unitID)

	return nil
}

func (s *serviceImpl) DeleteWeekday(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteWeekday")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = permissions.Check(permissions.ActorFromContext(ctx), permissions.ActionManagePricing, permissions.Resource{}); err != nil {
		return err
	}

	filter := shared.FilterByID(id, model.FieldID, model.WeekdayTableName)

	current, err := s.weekdayRepo.Get(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to get weekday pricing: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.NotFound("weekday pricing not found")
	}

	if err = s.weekdayRepo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete weekday pricing")

		return fmt.Errorf("failed to delete weekday pricing: %w", err)
	}

	s.invalidate(ctx, current.UnitID)

	return nil
}

func (s *serviceImpl) UpsertSpecial(ctx context.Context, unitID string, req dto.UpsertSpecialRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpsertSpecial")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.authorize(ctx, permissions.ActionManagePricing, unitID); err != nil {
		return err
	}

	if err = s.specialRepo.Upsert(ctx, req.ToModel(shared.Username(ctx), unitID)); err != nil {
		log.Error().Err(err).Msg("failed to upsert special pricing")

		return fmt.Errorf("failed to upsert special pricing: %w", err)
	}

	s.invalidate(ctx, unitID)

	return nil
}

func (s *serviceImpl) DeleteSpecial(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteSpecial")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = permissions.Check(permissions.ActorFromContext(ctx), permissions.ActionManagePricing, permissions.Resource{}); err != nil {
		return err
	}

	filter := shared.FilterByID(id, model.FieldID, model.SpecialTableName)

	current, err := s.specialRepo.Get(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to get special pricing: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.NotFound("special pricing not found")
	}

	if err = s.specialRepo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete special pricing")

		return fmt.Errorf("failed to delete special pricing: %w", err)
	}

	s.invalidate(ctx, current.UnitID)

	return nil
}

func (s *serviceImpl) CreateHoliday(ctx context.Context, unitID string, req dto.CreateHolidayRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateHoliday")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.authorize(ctx, permissions.ActionManageHoliday, unitID); err != nil {
		return err
	}

	holiday, err := req.ToModel(shared.Username(ctx), unitID)
	if err != nil {
		return failure.BadRequestFromString("date must be formatted as YYYY-MM-DD")
	}

	if err = s.holidayRepo.Insert(ctx, holiday); err != nil {
		if postgres.IsUniqueViolation(err) {
			return failure.Conflict("a holiday price already exists for " + req.Date)
		}

		log.Error().Err(err).Msg("failed to create holiday")

		return fmt.Errorf("failed to create holiday: %w", err)
	}

	s.invalidate(ctx, unitID)

	return nil
}

func (s *serviceImpl) UpdateHoliday(ctx context.Context, req dto.UpdateHolidayRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateHoliday")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = permissions.Check(permissions.ActorFromContext(ctx), permissions.ActionManageHoliday, permissions.Resource{}); err != nil {
		return err
	}

	if req.IsEmpty() {
		return failure.BadRequestFromString("update request cannot be empty")
	}

	filter := shared.FilterByID(id, model.FieldID, model.HolidayTableName)

	current, err := s.holidayRepo.Get(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to get holiday: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.NotFound("holiday not found")
	}

	if err = s.holidayRepo.Update(ctx, req.ToFields(shared.Username(ctx)), filter); err != nil {
		if postgres.IsUniqueViolation(err) {
			return failure.Conflict("a holiday price already exists for " + req.Date)
		}

		log.Error().Err(err).Msg("failed to update holiday")

		return fmt.Errorf("failed to update holiday: %w", err)
	}

	s.invalidate(ctx, current.UnitID)

	return nil
}

func (s *serviceImpl) DeleteHoliday(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteHoliday")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = permissions.Check(permissions.ActorFromContext(ctx), permissions.ActionManageHoliday, permissions.Resource{}); err != nil {
		return err
	}

	filter := shared.FilterByID(id, model.FieldID, model.HolidayTableName)

	current, err := s.holidayRepo.Get(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to get holiday: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.NotFound("holiday not found")
	}

	if err = s.holidayRepo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete holiday")

		return fmt.Errorf("failed to delete holiday: %w", err)
	}

	s.invalidate(ctx, current.UnitID)

	return nil
}

// Resolve picks the price of one day from the first source that has one:
// holiday, then special night (only when the caller names the period), then weekday.
func (s *serviceImpl) Resolve(ctx context.Context, unitID string, req dto.ResolvePriceRequest) (res dto.ResolvedPriceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Resolve")
	defer scope.End()
	defer scope.TraceIfError(err)

	date, err := time.Parse(constant.DateOnlyFormat, req.Date)
	if err != nil {
		return res, failure.BadRequestFromString("date must be formatted as YYYY-MM-DD")
	}

	res.Date = req.Date
	res.Source = model.SourceNone

	holiday, err := s.holidayRepo.Get(ctx, shared.And(
		shared.Eq(model.HolidayTableName, model.FieldUnitID, unitID),
		shared.Eq(model.HolidayTableName, model.FieldHolidayDate, req.Date),
	))
	if err != nil {
		return res, fmt.Errorf("failed to get holiday: %w", err)
	}

	if holiday.ID != constant.Empty {
		res.Price, res.Source = &holiday.Price, model.SourceHoliday

		return res, nil
	}

	if req.PricingType != constant.Empty && req.Night > 0 {
		special, err := s.specialRepo.Get(ctx, shared.And(
			shared.Eq(model.SpecialTableName, model.FieldUnitID, unitID),
			shared.Eq(model.SpecialTableName, model.FieldPricingType, req.PricingType),
			shared.Eq(model.SpecialTableName, model.FieldNightNumber, req.Night),
		))
		if err != nil {
			return res, fmt.Errorf("failed to get special pricing: %w", err)
		}

		if special.ID != constant.Empty {
			res.Price, res.Source = &special.Price, model.SourceSpecial

			return res, nil
		}
	}

	weekday, err := s.weekdayRepo.Get(ctx, shared.And(
		shared.Eq(model.WeekdayTableName, model.FieldUnitID, unitID),
		shared.Eq(model.WeekdayTableName, model.FieldDayOfWeek, model.DayOfWeek(date)),
	))
	if err != nil {
		return res, fmt.Errorf("failed to get weekday pricing: %w", err)
	}

	if weekday.ID != constant.Empty {
		res.Price, res.Source = &weekday.Price, model.SourceWeekday
	}

	return res, nil
}

func (s *serviceImpl) authorize(ctx context.Context, action permissions.Action, unitID string) error {
	if err := permissions.Check(permissions.ActorFromContext(ctx), action, permissions.Resource{}); err != nil {
		return err
	}

	_, err := s.unit(ctx, unitID)

	return err
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

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetPricing, unitID)); err != nil {
			log.Error().Err(err).Msg("failed to delete unit pricing cache")
		}
	}()
}
