// services/tag_service.go
package services

import (
	"context"
	"errors"

	"blog-service/cache"
	"blog-service/helper"
	"blog-service/models"
	"blog-service/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type TagService interface {
	CreateTag(ctx context.Context, name string) (*models.TagResponse, error)
	GetTags(ctx context.Context) ([]models.TagResponse, error)
	DeleteTag(ctx context.Context, name string) error
}

type tagService struct {
	tagRepo   repositories.TagRepository
	tx        repositories.TxManager
	cache     cache.ListingCache
	validator *helper.Validator
	sanitizer *helper.Sanitizer
	logger    *zap.Logger
}

func NewTagService(
	tagRepo repositories.TagRepository,
	tx repositories.TxManager,
	listingCache cache.ListingCache,
	validator *helper.Validator,
	sanitizer *helper.Sanitizer,
	logger *zap.Logger,
) TagService {
	if listingCache == nil {
		listingCache = cache.NopListingCache{}
	}
	return &tagService{
		tagRepo:   tagRepo,
		tx:        tx,
		cache:     listingCache,
		validator: validator,
		sanitizer: sanitizer,
		logger:    logger.Named("tag_service"),
	}
}

func (s *tagService) CreateTag(ctx context.Context, name string) (*models.TagResponse, error) {
	name, err := s.cleanName(name)
	if err != nil {
		return nil, err
	}

	s.logger.Info("creating tag", zap.String("tag", name))

	// Check if tag already exists
	_, err = s.tagRepo.GetByName(ctx, name)
	if err == nil {
		s.logger.Warn("tag already exists", zap.String("tag", name))
		return nil, models.TagAlreadyExists(name)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// The unique index still rejects a concurrent create of the same name.
	tag := &models.Tag{Name: name}
	if err := s.tagRepo.Create(ctx, tag); err != nil {
		return nil, err
	}

	s.logger.Info("tag created", zap.Uint("id", tag.ID))
	resp := models.ToTagResponse(*tag)
	return &resp, nil
}

func (s *tagService) GetTags(ctx context.Context) ([]models.TagResponse, error) {
	tags, err := s.tagRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return models.ToTagResponses(tags), nil
}

// DeleteTag removes the tag from every post carrying it, then deletes it.
func (s *tagService) DeleteTag(ctx context.Context, name string) error {
	name, err := s.cleanName(name)
	if err != nil {
		return err
	}

	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		tag, err := s.tagRepo.GetByName(ctx, name)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.TagNotFound(name)
			}
			return err
		}

		if err := s.tagRepo.ClearPosts(ctx, tag); err != nil {
			return err
		}
		return s.tagRepo.Delete(ctx, tag.ID)
	})
	if err != nil {
		if errors.Is(err, models.ErrTagNotFound) {
			s.logger.Warn("tag not found", zap.String("tag", name))
		}
		return err
	}

	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("listing cache invalidation failed", zap.Error(err))
	}
	s.logger.Info("tag deleted", zap.String("tag", name))
	return nil
}

func (s *tagService) cleanName(raw string) (string, error) {
	name := s.sanitizer.Plain(raw)
	if err := s.validator.Check(models.TagNameRequest{TagName: name}); err != nil {
		return "", err
	}
	return name, nil
}
