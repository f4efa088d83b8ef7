package service

import (
	"context"
	"fmt"
	"rental/config"
	"rental/infras/otel"
	"rental/infras/s3"
	"rental/internal/domains/expense/model"
	"rental/internal/domains/expense/model/dto"
	"rental/internal/domains/expense/repository"
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
)

const (
	cacheGetExpense    = "expense:get"
	cacheGetAllExpense = "expense:gets"
	cacheCountExpense  = "expense:count"

	argActorOwnerID = "actor_owner_id"
)

type Expense interface {
	Create(ctx context.Context, unitID string, req dto.CreateExpenseRequest) (dto.ExpenseResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetExpensesResponse, error)
	Get(ctx context.Context, id string) (dto.ExpenseResponse, error)
	Update(ctx context.Context, req dto.UpdateExpenseRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo     repository.Expense
	unitRepo unitRepo.Unit
	userRepo userRepo.User
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
	s3       s3.S3
}

func New(
	repo repository.Expense,
	unitRepo unitRepo.Unit,
	userRepo userRepo.User,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	s3 s3.S3,
) Expense {
	return &serviceImpl{
		repo:     repo,
		unitRepo: unitRepo,
		userRepo: userRepo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
		s3:       s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, unitID string, req dto.CreateExpenseRequest) (res dto.ExpenseResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = permissions.Check(permissions.ActorFromContext(ctx), permissions.ActionManageExpense, permissions.Resource{}); err != nil {
		return res, err
	}

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err //nolint:wrapcheck
	}

	unit, err := s.unit(ctx, unitID)
	if err != nil {
		return res, err
	}

	ownerID := req.OwnerID
	if ownerID == constant.Empty {
		ownerID = unit.Owner()
	} else if err = s.ensureOwner(ctx, ownerID); err != nil {
		return res, err
	}

	bucketName := s.cfg.External.S3.BucketName
	invoiceURL, objectName := constant.Empty, constant.Empty

	if req.Invoice != nil {
		objectName = s3.ObjectName(req.Invoice.Filename)

		invoiceURL, err = s.s3.UploadFile(ctx, bucketName, model.EntityName, req.InvoiceFile, req.Invoice, objectName)
		if err != nil {
			log.Error().Err(err).Msg("failed to upload invoice")

			return res, fmt.Errorf("failed to upload invoice: %w", err)
		}
	}

	expense := req.ToModel(shared.Username(ctx), unitID, ownerID, invoiceURL)
	expense.UnitName = unit.Name

	if err = s.repo.Insert(ctx, expense); err != nil {
		log.Error().Err(err).Msg("failed to create expense")

		if objectName != constant.Empty {
			_ = s.s3.DeleteFile(ctx, bucketName, model.EntityName, objectName)
		}

		return res, fmt.Errorf("failed to create expense: %w", err)
	}

	res.FromModel(expense)

	s.invalidate(ctx, constant.Empty)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetExpensesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	if actor := permissions.ActorFromContext(ctx); !actor.IsStaff() {
		filter = shared.And(filter, gDto.Filter{
			ArgName:  argActorOwnerID,
			Field:    model.FieldOwnerID,
			Value:    actor.ID,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	if params.SortBy == constant.Empty {
		params.SortBy, params.SortDir = model.TableName+"."+constant.FieldCreatedAt, gDto.SortDirDesc
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllExpense, params, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for expenses")

		return res, nil
	}

	total, err := s.count(ctx, params, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get expenses")

		return res, fmt.Errorf("failed to get expenses: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save expenses to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountExpense, params, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count expenses")

		return res, fmt.Errorf("failed to count expenses: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save expense count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ExpenseResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetExpense, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err != nil {
		expense, err := s.expense(ctx, id)
		if err != nil {
			return res, err
		}

		res.FromModel(expense)

		go func() {
			c := context.WithoutCancel(ctx)

			if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
				log.Error().Err(err).Msg("failed to save expense to cache")
			}
		}()
	}

	owner := constant.Empty
	if res.OwnerID != nil {
		owner = *res.OwnerID
	}

	// checked on cached entries too
	if err = permissions.Check(permissions.ActorFromContext(ctx), permissions.ActionViewUnit, permissions.Resource{OwnerID: owner}); err != nil {
		return dto.ExpenseResponse{}, err
	}

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateExpenseRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = permissions.Check(permissions.ActorFromContext(ctx), permissions.ActionManageExpense, permissions.Resource{}); err != nil {
		return err
	}

	if err = validator.ValidateStruct(&req); err != nil {
		return err //nolint:wrapcheck
	}

	if req.IsEmpty() {
		return failure.BadRequestFromString("update request cannot be empty")
	}

	current, err := s.expense(ctx, id)
	if err != nil {
		return err
	}

	bucketName := s.cfg.External.S3.BucketName
	invoiceURL, objectName := constant.Empty, constant.Empty

	if req.Invoice != nil {
		objectName = s3.ObjectName(req.Invoice.Filename)

		invoiceURL, err = s.s3.UploadFile(ctx, bucketName, model.EntityName, req.InvoiceFile, req.Invoice, objectName)
		if err != nil {
			return fmt.Errorf("failed to upload invoice: %w", err)
		}
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	if err = s.repo.Update(ctx, req.ToFields(shared.Username(ctx), invoiceURL), filter); err != nil {
		log.Error().Err(err).Msg("failed to update expense")

		if objectName != constant.Empty {
			_ = s.s3.DeleteFile(ctx, bucketName, model.EntityName, objectName)
		}

		return fmt.Errorf("failed to update expense: %w", err)
	}

	// the replaced invoice is only removed once the new one is stored
	if invoiceURL != constant.Empty && current.Invoice != constant.Empty {
		s.deleteObject(ctx, current.Invoice)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = permissions.Check(permissions.ActorFromContext(ctx), permissions.ActionManageExpense, permissions.Resource{}); err != nil {
		return err
	}

	current, err := s.expense(ctx, id)
	if err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete expense")

		return fmt.Errorf("failed to delete expense: %w", err)
	}

	if current.Invoice != constant.Empty {
		s.deleteObject(ctx, current.Invoice)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) expense(ctx context.Context, id string) (model.Expense, error) {
	expense, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get expense")

		return expense, fmt.Errorf("failed to get expense: %w", err)
	}

	if expense.ID == constant.Empty {
		return expense, failure.NotFound("expense not found")
	}

	return expense, nil
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

func (s *serviceImpl) ensureOwner(ctx context.Context, ownerID string) error {
	exist, err := s.userRepo.Exist(ctx, shared.FilterByID(ownerID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check expense owner")

		return fmt.Errorf("failed to check expense owner: %w", err)
	}

	if !exist {
		return failure.NotFound("owner not found")
	}

	return nil
}

func (s *serviceImpl) deleteObject(ctx context.Context, url string) {
	go func() {
		c := context.WithoutCancel(ctx)
		bucketName := s.cfg.External.S3.BucketName

		objectName := s.s3.GetObjectNameFromURL(bucketName, url)
		if objectName == constant.Empty {
			return
		}

		if err := s.s3.DeleteFile(c, bucketName, model.EntityName, objectName); err != nil {
			log.Error().Err(err).Str("object", objectName).Msg("failed to delete invoice")
		}
	}()
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetExpense, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete expense cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllExpense)
		shared.InvalidateCaches(c, s.cache, cacheCountExpense)
	}()
}
