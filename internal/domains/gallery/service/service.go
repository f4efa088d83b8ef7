package service

import (
	"context"
	"fmt"
	"rental/config"
	"rental/infras/otel"
	"rental/infras/s3"
	"rental/internal/domains/gallery/model"
	"rental/internal/domains/gallery/model/dto"
	"rental/internal/domains/gallery/repository"
	unitModel "rental/internal/domains/unit/model"
	unitRepo "rental/internal/domains/unit/repository"
	"rental/permissions"
	"rental/shared"
	"rental/shared/cache"
	"rental/shared/constant"
	gDto "rental/shared/dto"
	"rental/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetAllGallery = "gallery:gets"
	cacheCountGallery  = "gallery:count"
)

type Gallery interface {
	Upload(ctx context.Context, unitID string, req dto.UploadImageRequest) (dto.GalleryImageResponse, error)
	GetAll(ctx context.Context, unitID string, req gDto.QueryParams) (dto.GetGalleryImagesResponse, error)
	Update(ctx context.Context, req dto.UpdateImageRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo     repository.Gallery
	unitRepo unitRepo.Unit
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
	s3       s3.S3
}

func New(repo repository.Gallery, unitRepo unitRepo.Unit, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Gallery {
	return &serviceImpl{
		repo:     repo,
		unitRepo: unitRepo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
		s3:       s3,
	}
}

func (s *serviceImpl) Upload(ctx context.Context, unitID string, req dto.UploadImageRequest) (res dto.GalleryImageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Upload")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = permissions.Check(permissions.ActorFromContext(ctx), permissions.ActionManageUnit, permissions.Resource{}); err != nil {
		return res, err
	}

	if _, err = s.unit(ctx, unitID); err != nil {
		return res, err
	}

	if req.Image == nil {
		return res, failure.BadRequestFromString("image is required")
	}

	bucketName := s.cfg.External.S3.BucketName
	objectName := s3.ObjectName(req.Image.Filename)

	url, err := s.s3.UploadFile(ctx, bucketName, model.EntityName, req.ImageFile, req.Image, objectName)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload gallery image")

		return res, fmt.Errorf("failed to upload image: %w", err)
	}

	image := req.ToModel(shared.Username(ctx), unitID, url)

	if err = s.repo.Insert(ctx, image); err != nil {
		log.Error().Err(err).Msg("failed to create gallery image")

		_ = s.s3.DeleteFile(ctx, bucketName, model.EntityName, objectName)

		return res, fmt.Errorf("failed to create gallery image: %w", err)
	}

	res.FromModel(image)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllGallery)
		shared.InvalidateCaches(c, s.cache, cacheCountGallery)
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, unitID string, req gDto.QueryParams) (res dto.GetGalleryImagesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	unit, err := s.unit(ctx, unitID)
	if err != nil {
		return res, err
	}

	actor := permissions.ActorFromContext(ctx)
	if err = permissions.Check(actor, permissions.ActionViewUnit, permissions.Resource{OwnerID: unit.Owner()}); err != nil {
		return res, err
	}

	if req.SortBy == constant.Empty {
		req.SortBy = model.FieldSortOrder
		req.SortDir = gDto.SortDirAsc
	}

	filter := shared.FilterByID(unitID, model.FieldUnitID, model.TableName)
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllGallery, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for gallery images")

		return res, nil
	}

	total, err := s.count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get gallery images")

		return res, fmt.Errorf("failed to get gallery images: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save gallery images to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountGallery, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count gallery images")

		return res, fmt.Errorf("failed to count gallery images: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save gallery count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateImageRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = permissions.Check(permissions.ActorFromContext(ctx), permissions.ActionManageUnit, permissions.Resource{}); err != nil {
		return err
	}

	if req.IsEmpty() {
		return failure.BadRequestFromString("update request cannot be empty")
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check gallery image existence")

		return fmt.Errorf("failed to check gallery image existence: %w", err)
	}

	if !exist {
		return failure.NotFound("gallery image not found")
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, shared.Username(ctx)), filter); err != nil {
		log.Error().Err(err).Msg("failed to update gallery image")

		return fmt.Errorf("failed to update gallery image: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllGallery)
	}()

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = permissions.Check(permissions.ActorFromContext(ctx), permissions.ActionManageUnit, permissions.Resource{}); err != nil {
		return err
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get gallery image")

		return fmt.Errorf("failed to get gallery image: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.NotFound("gallery image not found")
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete gallery image")

		return fmt.Errorf("failed to delete gallery image: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		s.deleteObject(c, current.Image)

		shared.InvalidateCaches(c, s.cache, cacheGetAllGallery)
		shared.InvalidateCaches(c, s.cache, cacheCountGallery)
	}()

	return nil
}

func (s *serviceImpl) deleteObject(ctx context.Context, url string) {
	bucketName := s.cfg.External.S3.BucketName

	objectName := s.s3.GetObjectNameFromURL(bucketName, url)
	if objectName == constant.Empty {
		log.Warn().Str("url", url).Msg("could not extract object name from gallery url")

		return
	}

	if err := s.s3.DeleteFile(ctx, bucketName, model.EntityName, objectName); err != nil {
		log.Error().Err(err).Str("object", objectName).Msg("failed to delete gallery image from S3")
	}
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
