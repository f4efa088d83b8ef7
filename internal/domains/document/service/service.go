package service

import (
	"context"
	"fmt"
	"rental/config"
	"rental/infras/otel"
	"rental/infras/s3"
	"rental/internal/domains/document/model"
	"rental/internal/domains/document/model/dto"
	"rental/internal/domains/document/repository"
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
	cacheGetAllDocument = "document:gets"

	argActorOwnerID = "actor_owner_id"
)

type Document interface {
	Upload(ctx context.Context, req dto.UploadDocumentRequest) (dto.DocumentResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetDocumentsResponse, error)
	Mine(ctx context.Context, params gDto.QueryParams) (dto.GetDocumentsResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo     repository.Document
	userRepo userRepo.User
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
	s3       s3.S3
}

func New(repo repository.Document, userRepo userRepo.User, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Document {
	return &serviceImpl{
		repo:     repo,
		userRepo: userRepo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
		s3:       s3,
	}
}

func (s *serviceImpl) Upload(ctx context.Context, req dto.UploadDocumentRequest) (res dto.DocumentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Upload")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = permissions.Check(permissions.ActorFromContext(ctx), permissions.ActionManageDocument, permissions.Resource{}); err != nil {
		return res, err
	}

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err //nolint:wrapcheck
	}

	exist, err := s.userRepo.Exist(ctx, shared.FilterByID(req.OwnerID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check document owner")

		return res, fmt.Errorf("failed to check document owner: %w", err)
	}

	if !exist {
		return res, failure.NotFound("owner not found")
	}

	bucketName := s.cfg.External.S3.BucketName
	objectName := s3.ObjectName(req.File.Filename)

	fileURL, err := s.s3.UploadFile(ctx, bucketName, model.EntityName, req.FileData, req.File, objectName)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload document")

		return res, fmt.Errorf("failed to upload document: %w", err)
	}

	document := req.ToModel(shared.Username(ctx), fileURL)

	if err = s.repo.Insert(ctx, document); err != nil {
		log.Error().Err(err).Msg("failed to create document")

		_ = s.s3.DeleteFile(ctx, bucketName, model.EntityName, objectName)

		return res, fmt.Errorf("failed to create document: %w", err)
	}

	res.FromModel(document)

	s.invalidate(ctx)

	return res, nil
}

// GetAll lists every document for staff and only their own for owners.
func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetDocumentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	if actor := permissions.ActorFromContext(ctx); !actor.IsStaff() {
		filter = shared.And(filter, s.ownedBy(actor.ID))
	}

	return s.list(ctx, params, filter)
}

func (s *serviceImpl) Mine(ctx context.Context, params gDto.QueryParams) (res dto.GetDocumentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Mine")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor := permissions.ActorFromContext(ctx)
	if actor.ID == constant.Empty {
		return res, failure.Unauthorized("login required")
	}

	return s.list(ctx, params, shared.And(s.ownedBy(actor.ID)))
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = permissions.Check(permissions.ActorFromContext(ctx), permissions.ActionManageDocument, permissions.Resource{}); err != nil {
		return err
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get document")

		return fmt.Errorf("failed to get document: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.NotFound("document not found")
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete document")

		return fmt.Errorf("failed to delete document: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)
		bucketName := s.cfg.External.S3.BucketName

		objectName := s.s3.GetObjectNameFromURL(bucketName, current.File)
		if objectName == constant.Empty {
			return
		}

		if err := s.s3.DeleteFile(c, bucketName, model.EntityName, objectName); err != nil {
			log.Error().Err(err).Str("object", objectName).Msg("failed to delete document file")
		}
	}()

	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) list(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetDocumentsResponse, err error) {
	if params.SortBy == constant.Empty {
		params.SortBy, params.SortDir = model.TableName+"."+constant.FieldCreatedAt, gDto.SortDirDesc
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllDocument, params, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for documents")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count documents")

		return res, fmt.Errorf("failed to count documents: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get documents")

		return res, fmt.Errorf("failed to get documents: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save documents to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) ownedBy(ownerID string) gDto.Filter {
	return gDto.Filter{
		ArgName:  argActorOwnerID,
		Field:    model.FieldOwnerID,
		Value:    ownerID,
		Operator: gDto.FilterOperatorEq,
		Table:    model.TableName,
	}
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	go shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, cacheGetAllDocument)
}
