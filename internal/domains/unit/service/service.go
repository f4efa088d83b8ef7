package service

import (
	"context"
	"fmt"
	"rental/config"
	"rental/infras/otel"
	"rental/infras/s3"
	"rental/internal/domains/unit/model"
	"rental/internal/domains/unit/model/dto"
	"rental/internal/domains/unit/repository"
	userModel "rental/internal/domains/user/model"
	userRepo "rental/internal/domains/user/repository"
	"rental/permissions"
	"rental/shared"
	"rental/shared/cache"
	"rental/shared/constant"
	gDto "rental/shared/dto"
	"rental/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetUnit    = "unit:get"
	cacheGetAllUnit = "unit:gets"
	cacheCountUnit  = "unit:count"
)

type Unit interface {
	Create(ctx context.Context, req dto.CreateUnitRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetUnitsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.UnitResponse, error)
	Update(ctx context.Context, req dto.UpdateUnitRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo     repository.Unit
	userRepo userRepo.User
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
	s3       s3.S3
}

func New(repo repository.Unit, userRepo userRepo.User, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Unit {
	return &serviceImpl{
		repo:     repo,
		userRepo: userRepo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
		s3:       s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateUnitRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user := shared.Username(ctx)

	if err = s.ensureOwner(ctx, req.OwnerID); err != nil {
		return err
	}

	bucketName := s.cfg.External.S3.BucketName
	imageURL := constant.Empty
	uploadedObjectName := constant.Empty

	if req.Image != nil {
		uploadedObjectName = s3.ObjectName(req.Image.Filename)

		imageURL, err = s.s3.UploadFile(ctx, bucketName, model.EntityName, req.ImageFile, req.Image, uploadedObjectName)
		if err != nil {
			log.Error().Err(err).Msg("failed to upload unit image")

			return fmt.Errorf("failed to upload image: %w", err)
		}
	}

	if err = s.repo.Insert(ctx, req.ToModel(user, imageURL)); err != nil {
		if uploadedObjectName != constant.Empty {
			_ = s.s3.DeleteFile(ctx, bucketName, model.EntityName, uploadedObjectName)
		}

		return fmt.Errorf("failed to create unit: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllUnit)
		shared.InvalidateCaches(c, s.cache, cacheCountUnit)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetUnitsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllUnit, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for units")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count units")

		return res, fmt.Errorf("failed to count units: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get units")

		return res, fmt.Errorf("failed to get units: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save units to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountUnit, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for unit count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count units")

		return res, fmt.Errorf("failed to count units: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save unit count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.UnitResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetUnit, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err != nil {
		unit, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to get unit")

			return res, fmt.Errorf("failed to get unit: %w", err)
		}

		if unit.ID == constant.Empty {
			return res, failure.NotFound("unit not found") // nolint:wrapcheck
		}

		res.FromModel(unit)

		go func() {
			c := context.WithoutCancel(ctx)

			if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
				log.Error().Err(err).Msg("failed to save unit to cache")
			}
		}()
	} else {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for unit")
	}

	actor := permissions.ActorFromContext(ctx)
	if err = permissions.Check(actor, permissions.ActionViewUnit, permissions.Resource{OwnerID: res.Owner()}); err != nil {
		return dto.UnitResponse{}, err
	}

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateUnitRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.IsEmpty() {
		return failure.BadRequestFromString("update request cannot be empty")
	}

	user := shared.Username(ctx)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check unit existence")

		return fmt.Errorf("failed to get unit: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.NotFound("unit not found")
	}

	if err = s.ensureOwner(ctx, req.OwnerID); err != nil {
		return err
	}

	return s.updateInternal(ctx, req, current, user, filter)
}

func (s *serviceImpl) updateInternal(ctx context.Context, req dto.UpdateUnitRequest, current model.Unit, user string, filter gDto.FilterGroup) (err error) {
	bucketName := s.cfg.External.S3.BucketName
	imageURL := constant.Empty
	uploadedObjectName := constant.Empty

	if req.Image != nil {
		uploadedObjectName = s3.ObjectName(req.Image.Filename)

		imageURL, err = s.s3.UploadFile(ctx, bucketName, model.EntityName, req.ImageFile, req.Image, uploadedObjectName)
		if err != nil {
			return fmt.Errorf("failed to upload image: %w", err)
		}
	}

	updatedFields := shared.TransformFields(req, user)
	if imageURL != constant.Empty {
		updatedFields[model.FieldImage] = imageURL
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update unit")

		if uploadedObjectName != constant.Empty {
			_ = s.s3.DeleteFile(ctx, bucketName, model.EntityName, uploadedObjectName)
		}

		return fmt.Errorf("failed to update unit: %w", err)
	}

	// old image goes only after the row points at the new one
	if imageURL != constant.Empty && current.Image != constant.Empty {
		if oldObjectName := s.s3.GetObjectNameFromURL(bucketName, current.Image); oldObjectName != constant.Empty {
			_ = s.s3.DeleteFile(ctx, bucketName, model.EntityName, oldObjectName)
		}
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetUnit, current.ID)); err != nil {
			log.Error().Err(err).Msg("failed to delete unit cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllUnit)
		shared.InvalidateCaches(c, s.cache, cacheCountUnit)
	}()

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if unit exists")

		return fmt.Errorf("failed to check if unit exists: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.NotFound("unit not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete unit")

		return fmt.Errorf("failed to delete unit: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if current.Image != constant.Empty {
			bucketName := s.cfg.External.S3.BucketName
			if objectName := s.s3.GetObjectNameFromURL(bucketName, current.Image); objectName != constant.Empty {
				if err := s.s3.DeleteFile(c, bucketName, model.EntityName, objectName); err != nil {
					log.Error().Err(err).Msg("failed to delete unit image")
				}
			}
		}

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetUnit, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete unit from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllUnit)
		shared.InvalidateCaches(c, s.cache, cacheCountUnit)
	}()

	return nil
}

func (s *serviceImpl) ensureOwner(ctx context.Context, ownerID *string) error {
	if ownerID == nil || *ownerID == constant.Empty {
		return nil
	}

	exist, err := s.userRepo.Exist(ctx, shared.FilterByID(*ownerID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check unit owner")

		return fmt.Errorf("failed to check unit owner: %w", err)
	}

	if !exist {
		return failure.NotFound("owner not found") // nolint:wrapcheck
	}

	return nil
}
