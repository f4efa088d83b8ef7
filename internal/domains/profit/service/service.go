package service

import (
	"context"
	"fmt"
	"rental/config"
	"rental/infras/otel"
	bookingModel "rental/internal/domains/booking/model"
	bookingRepo "rental/internal/domains/booking/repository"
	expenseModel "rental/internal/domains/expense/model"
	expenseRepo "rental/internal/domains/expense/repository"
	"rental/internal/domains/profit/aggregate"
	"rental/internal/domains/profit/model"
	"rental/internal/domains/profit/model/dto"
	"rental/internal/domains/profit/repository"
	unitModel "rental/internal/domains/unit/model"
	unitRepo "rental/internal/domains/unit/repository"
	userModel "rental/internal/domains/user/model"
	userRepo "rental/internal/domains/user/repository"
	"rental/permissions"
	"rental/shared"
	"rental/shared/cache"
	"rental/shared/constant"
	gDto "rental/shared/dto"
	"rental/shared/failure"
	"rental/shared/validator"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	cacheGetAllPercentage = "profit:gets"
	cacheCountPercentage  = "profit:count"
)

type Profit interface {
	UpsertPercentage(ctx context.Context, req dto.UpsertPercentageRequest) error
	GetPercentages(ctx context.Context, params gDto.QueryParams) (dto.GetPercentagesResponse, error)
	DeletePercentage(ctx context.Context, id string) error
	Report(ctx context.Context, unitID string) (aggregate.Report, error)
	MyReport(ctx context.Context) (aggregate.Report, error)
}

type serviceImpl struct {
	repo        repository.Percentage
	unitRepo    unitRepo.Unit
	bookingRepo bookingRepo.Booking
	expenseRepo expenseRepo.Expense
	userRepo    userRepo.User
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(
	repo repository.Percentage,
	unitRepo unitRepo.Unit,
	bookingRepo bookingRepo.Booking,
	expenseRepo expenseRepo.Expense,
	userRepo userRepo.User,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Profit {
	return &serviceImpl{
		repo:        repo,
		unitRepo:    unitRepo,
		bookingRepo: bookingRepo,
		expenseRepo: expenseRepo,
		userRepo:    userRepo,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

func (s *serviceImpl) UpsertPercentage(ctx context.Context, req dto.UpsertPercentageRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpsertPercentage")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = permissions.Check(permissions.ActorFromContext(ctx), permissions.ActionManageProfit, permissions.Resource{}); err != nil {
		return err
	}

	if err = validator.ValidateStruct(&req); err != nil {
		return err //nolint:wrapcheck
	}

	if !req.InRange() {
		return failure.BadRequestFromString("percentage must be between 0 and 100")
	}

	exist, err := s.userRepo.Exist(ctx, shared.FilterByID(req.OwnerID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check owner")

		return fmt.Errorf("failed to check owner: %w", err)
	}

	if !exist {
		return failure.NotFound("owner not found")
	}

	if err = s.repo.Upsert(ctx, req.ToModel(shared.Username(ctx))); err != nil {
		log.Error().Err(err).Msg("failed to upsert profit percentage")

		return err //nolint:wrapcheck
	}

	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) GetPercentages(ctx context.Context, params gDto.QueryParams) (res dto.GetPercentagesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetPercentages")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = permissions.Check(permissions.ActorFromContext(ctx), permissions.ActionManageProfit, permissions.Resource{}); err != nil {
		return res, err
	}

	filter := gDto.FilterGroup{}
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllPercentage, params, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for profit percentages")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count profit percentages")

		return res, fmt.Errorf("failed to count profit percentages: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get profit percentages")

		return res, fmt.Errorf("failed to get profit percentages: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save profit percentages to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) DeletePercentage(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeletePercentage")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = permissions.Check(permissions.ActorFromContext(ctx), permissions.ActionManageProfit, permissions.Resource{}); err != nil {
		return err
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to get profit percentage: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.NotFound("profit percentage not found")
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete profit percentage")

		return fmt.Errorf("failed to delete profit percentage: %w", err)
	}

	s.invalidate(ctx)

	return nil
}

// Report is the staff view over every unit, or a single one when unitID is set.
func (s *serviceImpl) Report(ctx context.Context, unitID string) (res aggregate.Report, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Report")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = permissions.Check(permissions.ActorFromContext(ctx), permissions.ActionViewReport, permissions.Resource{}); err != nil {
		return res, err
	}

	filter := gDto.FilterGroup{}
	if unitID != constant.Empty {
		filter = shared.FilterByID(unitID, unitModel.FieldID, unitModel.TableName)
	}

	units, err := s.units(ctx, filter)
	if err != nil {
		return res, err
	}

	if unitID != constant.Empty && len(units) == 0 {
		return res, failure.NotFound("unit not found")
	}

	return s.build(ctx, units)
}

// MyReport covers the units owned by the caller.
func (s *serviceImpl) MyReport(ctx context.Context) (res aggregate.Report, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MyReport")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor := permissions.ActorFromContext(ctx)
	if actor.ID == constant.Empty {
		return res, failure.Unauthorized("login required")
	}

	units, err := s.units(ctx, shared.And(shared.Eq(unitModel.TableName, unitModel.FieldOwnerID, actor.ID)))
	if err != nil {
		return res, err
	}

	return s.build(ctx, units)
}

func (s *serviceImpl) units(ctx context.Context, filter gDto.FilterGroup) ([]unitModel.Unit, error) {
	params := gDto.QueryParams{SortBy: unitModel.TableName + "." + unitModel.FieldName, SortDir: gDto.SortDirAsc}

	units, err := s.unitRepo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get units")

		return nil, fmt.Errorf("failed to get units: %w", err)
	}

	return units, nil
}

func (s *serviceImpl) build(ctx context.Context, units []unitModel.Unit) (aggregate.Report, error) {
	if len(units) == 0 {
		return aggregate.Build(nil, nil, nil, nil), nil
	}

	unitIDs := make([]string, 0, len(units))
	ownerIDs := make([]string, 0, len(units))
	seen := map[string]bool{}

	for _, unit := range units {
		unitIDs = append(unitIDs, unit.ID)

		if owner := unit.Owner(); owner != constant.Empty && !seen[owner] {
			seen[owner] = true
			ownerIDs = append(ownerIDs, owner)
		}
	}

	bookings, err := s.bookingRepo.GetAll(ctx, gDto.QueryParams{}, shared.And(in(bookingModel.TableName, bookingModel.FieldUnitID, unitIDs)))
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return aggregate.Report{}, fmt.Errorf("failed to get bookings: %w", err)
	}

	expenses, err := s.expenseRepo.GetAll(ctx, gDto.QueryParams{}, shared.And(in(expenseModel.TableName, expenseModel.FieldUnitID, unitIDs)))
	if err != nil {
		log.Error().Err(err).Msg("failed to get expenses")

		return aggregate.Report{}, fmt.Errorf("failed to get expenses: %w", err)
	}

	percentages := map[string]decimal.Decimal{}

	if len(ownerIDs) > 0 {
		records, err := s.repo.GetAll(ctx, gDto.QueryParams{}, shared.And(in(model.TableName, model.FieldOwnerID, ownerIDs)))
		if err != nil {
			log.Error().Err(err).Msg("failed to get profit percentages")

			return aggregate.Report{}, fmt.Errorf("failed to get profit percentages: %w", err)
		}

		for _, record := range records {
			percentages[record.OwnerID] = record.Percentage
		}
	}

	return aggregate.Build(units, bookings, expenses, percentages), nil
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllPercentage)
		shared.InvalidateCaches(c, s.cache, cacheCountPercentage)
	}()
}

func in(table, field string, values []string) gDto.Filter {
	return gDto.Filter{
		Field:    field,
		Value:    values,
		Operator: gDto.FilterOperatorIn,
		Table:    table,
	}
}
