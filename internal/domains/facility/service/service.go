package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"venue/config"
	"venue/infras/otel"
	"venue/infras/s3"
	"venue/internal/domains/facility/model"
	"venue/internal/domains/facility/model/dto"
	"venue/internal/domains/facility/repository"
	"venue/shared"
	"venue/shared/cache"
	"venue/shared/constant"
	gDto "venue/shared/dto"
	"venue/shared/failure"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetFacility    = "facility:get"
	cacheGetAllFacility = "facility:gets"
	cacheCountFacility  = "facility:count"
)

type Facility interface {
	Create(ctx context.Context, req dto.CreateFacilityRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, criteria dto.ListFacilitiesCriteria) (dto.GetFacilitiesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.FacilityResponse, error)
	Update(ctx context.Context, req dto.UpdateFacilityRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Facility
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
}

func New(repo repository.Facility, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Facility {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
	}
}

func (s *serviceImpl) uploadAttachment(ctx context.Context, file multipart.File, header *multipart.FileHeader) (url, objectName string, err error) {
	bucketName := s.cfg.External.S3.BucketName
	filename := uuid.NewString()

	// Keep the original extension
	parts := strings.Split(header.Filename, ".")
	if len(parts) > 1 {
		filename = fmt.Sprintf("%s.%s", filename, parts[len(parts)-1])
	}

	url, err = s.s3.UploadFile(ctx, bucketName, model.EntityName, file, header, filename)
	if err != nil {
		return constant.Empty, constant.Empty, fmt.Errorf("failed to upload file: %w", err)
	}

	return url, filename, nil
}

func (s *serviceImpl) deleteAttachment(ctx context.Context, objectName string) {
	if objectName == constant.Empty {
		return
	}

	_ = s.s3.DeleteFile(ctx, s.cfg.External.S3.BucketName, model.EntityName, objectName)
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateFacilityRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user := shared.RequesterRole(ctx)

	imageURL := constant.Empty
	rateChartURL := constant.Empty

	var uploadedObjects []string

	if req.Image != nil {
		url, objectName, err := s.uploadAttachment(ctx, req.ImageFile, req.Image)
		if err != nil {
			log.Error().Err(err).Msg("failed to upload facility image")

			return err
		}

		imageURL = url
		uploadedObjects = append(uploadedObjects, objectName)
	}

	if req.RateChart != nil {
		url, objectName, err := s.uploadAttachment(ctx, req.RateChartFile, req.RateChart)
		if err != nil {
			log.Error().Err(err).Msg("failed to upload rate chart")

			for _, object := range uploadedObjects {
				s.deleteAttachment(ctx, object)
			}

			return err
		}

		rateChartURL = url
		uploadedObjects = append(uploadedObjects, objectName)
	}

	if err = s.repo.Insert(ctx, req.ToModel(user, imageURL, rateChartURL)); err != nil {
		for _, object := range uploadedObjects {
			s.deleteAttachment(ctx, object)
		}

		return err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllFacility)
		shared.InvalidateCaches(c, s.cache, cacheCountFacility)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, criteria dto.ListFacilitiesCriteria) (res dto.GetFacilitiesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	role := shared.RequesterRole(ctx)
	filter := criteria.ToFilter()

	cacheKey := shared.BuildCacheKey(shared.BuildCacheKeyWithQuery(cacheGetAllFacility, req, filter), role)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for facilities")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count facilities")

		return res, fmt.Errorf("failed to count facilities: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get facilities")

		return res, fmt.Errorf("failed to get facilities: %w", err)
	}

	res.FromModels(models, role, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save facilities to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountFacility, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for facility count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count facilities")

		return res, fmt.Errorf("failed to count facilities: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save facility count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.FacilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(nil)

	role := shared.RequesterRole(ctx)
	cacheKey := shared.BuildCacheKey(cacheGetFacility, id, role)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for facility")

		return res, nil
	}

	facility, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get facility")

		return res, fmt.Errorf("failed to get facility: %w", err)
	}

	if facility.ID == constant.Empty {
		return res, failure.NotFound("facility not found") // nolint:wrapcheck
	}

	res.FromModel(facility, role)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save facility to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateFacilityRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user := shared.RequesterRole(ctx)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	currentFacility, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check facility existence")

		return err
	}

	if currentFacility.ID == constant.Empty {
		log.Error().Msg("facility not found")

		return failure.NotFound("facility not found")
	}

	return s.updateInternal(ctx, req, currentFacility, user, filter)
}

func (s *serviceImpl) updateInternal(ctx context.Context, req dto.UpdateFacilityRequest, currentFacility model.Facility, user string, filter gDto.FilterGroup) error {
	bucketName := s.cfg.External.S3.BucketName

	imageURL := constant.Empty
	rateChartURL := constant.Empty

	var uploadedObjects []string

	if req.Image != nil {
		url, objectName, err := s.uploadAttachment(ctx, req.ImageFile, req.Image)
		if err != nil {
			return err
		}

		imageURL = url
		uploadedObjects = append(uploadedObjects, objectName)
	}

	if req.RateChart != nil {
		url, objectName, err := s.uploadAttachment(ctx, req.RateChartFile, req.RateChart)
		if err != nil {
			for _, object := range uploadedObjects {
				s.deleteAttachment(ctx, object)
			}

			return err
		}

		rateChartURL = url
		uploadedObjects = append(uploadedObjects, objectName)
	}

	updatedFields := shared.TransformFields(req, user)
	if imageURL != constant.Empty {
		updatedFields[model.FieldImage] = imageURL
	}

	if rateChartURL != constant.Empty {
		updatedFields[model.FieldRateChart] = rateChartURL
	}

	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update facility")

		// Cleanup: delete newly uploaded files if DB update fails
		for _, object := range uploadedObjects {
			s.deleteAttachment(ctx, object)
		}

		return fmt.Errorf("failed to update facility: %w", err)
	}

	// Delete replaced files once the update succeeded
	if imageURL != constant.Empty && currentFacility.Image != constant.Empty {
		s.deleteAttachment(ctx, s.s3.GetObjectNameFromURL(bucketName, currentFacility.Image))
	}

	if rateChartURL != constant.Empty && currentFacility.RateChart != constant.Empty {
		s.deleteAttachment(ctx, s.s3.GetObjectNameFromURL(bucketName, currentFacility.RateChart))
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(cacheGetFacility, currentFacility.ID))
		shared.InvalidateCaches(c, s.cache, cacheGetAllFacility)
		shared.InvalidateCaches(c, s.cache, cacheCountFacility)
	}()

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(nil)

	exist, err := s.repo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if facility exists")

		return fmt.Errorf("failed to check if facility exists: %w", err)
	}

	if !exist {
		log.Error().Msg("facility not found")

		return failure.NotFound("facility not found") // nolint:wrapcheck
	}

	if err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete facility")

		return fmt.Errorf("failed to delete facility: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(cacheGetFacility, id))
		shared.InvalidateCaches(c, s.cache, cacheGetAllFacility)
		shared.InvalidateCaches(c, s.cache, cacheCountFacility)
	}()

	return nil
}
