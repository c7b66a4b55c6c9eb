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

type PostService interface {
	AddPost(ctx context.Context, req models.CreatePostRequest, user models.UserDetails) (*models.PostResponse, error)
	GetPost(ctx context.Context, id uint) (*models.PostResponse, error)
	GetAllPosts(ctx context.Context) ([]models.PostResponse, error)
	ListPosts(ctx context.Context, params models.PostListParams) (*models.PostPage, error)
	UpdatePost(ctx context.Context, id uint, req models.UpdatePostRequest, user models.UserDetails) (*models.PostResponse, error)
	AddTagToPost(ctx context.Context, id uint, tagName string) (*models.PostResponse, error)
	RemoveTagFromPost(ctx context.Context, id uint, tagName string) (*models.PostResponse, error)
	DeletePost(ctx context.Context, id uint, user models.UserDetails) error
}

type postService struct {
	postRepo  repositories.PostRepository
	tagRepo   repositories.TagRepository
	tx        repositories.TxManager
	cache     cache.ListingCache
	validator *helper.Validator
	sanitizer *helper.Sanitizer
	adminRole string
	logger    *zap.Logger
}

func NewPostService(
	postRepo repositories.PostRepository,
	tagRepo repositories.TagRepository,
	tx repositories.TxManager,
	listingCache cache.ListingCache,
	validator *helper.Validator,
	sanitizer *helper.Sanitizer,
	adminRole string,
	logger *zap.Logger,
) PostService {
	if listingCache == nil {
		listingCache = cache.NopListingCache{}
	}
	return &postService{
		postRepo:  postRepo,
		tagRepo:   tagRepo,
		tx:        tx,
		cache:     listingCache,
		validator: validator,
		sanitizer: sanitizer,
		adminRole: adminRole,
		logger:    logger.Named("post_service"),
	}
}

func (s *postService) AddPost(ctx context.Context, req models.CreatePostRequest, user models.UserDetails) (*models.PostResponse, error) {
	clean := models.CreatePostRequest{
		Title: s.sanitizer.Plain(req.Title),
		Text:  s.sanitizer.Text(req.Text),
		Tags:  s.sanitizeAll(req.Tags),
	}
	if err := s.validator.Check(clean); err != nil {
		return nil, err
	}
	names := uniqueNames(clean.Tags)

	post := &models.Post{
		Title:  clean.Title,
		Text:   clean.Text,
		Author: user.Username,
	}

	s.logger.Info("creating blog post", zap.String("author", user.Username), zap.Int("tags", len(names)))

	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		tags, err := s.resolveTags(ctx, names)
		if err != nil {
			return err
		}
		post.Tags = tags
		return s.postRepo.Create(ctx, post)
	})
	if err != nil {
		s.logger.Error("failed to create blog post", zap.Error(err))
		return nil, models.NewError(models.ErrPostCreationFailed, "Failed to create blog post", err)
	}

	s.invalidateListings(ctx)
	s.logger.Info("blog post created", zap.Uint("id", post.ID))

	resp := models.ToPostResponse(*post)
	return &resp, nil
}

func (s *postService) GetPost(ctx context.Context, id uint) (*models.PostResponse, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.postLookupError(id, err)
	}

	resp := models.ToPostResponse(*post)
	return &resp, nil
}

func (s *postService) GetAllPosts(ctx context.Context) ([]models.PostResponse, error) {
	posts, err := s.postRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return models.ToPostResponses(posts), nil
}

func (s *postService) ListPosts(ctx context.Context, params models.PostListParams) (*models.PostPage, error) {
	query, err := BuildPostQuery(params)
	if err != nil {
		return nil, err
	}

	var cached models.PostPage
	gen, hit, err := s.cache.Get(ctx, query.CacheKey(), &cached)
	cacheable := err == nil
	switch {
	case err != nil:
		listingCacheLookups.WithLabelValues("error").Inc()
		s.logger.Warn("listing cache read failed", zap.Error(err))
	case hit:
		listingCacheLookups.WithLabelValues("hit").Inc()
		return &cached, nil
	default:
		listingCacheLookups.WithLabelValues("miss").Inc()
	}

	posts, total, err := s.postRepo.List(ctx, query.Filter, query.Page)
	if err != nil {
		return nil, err
	}

	content := models.ToPostResponses(posts)
	if query.SummaryLimit != nil {
		for i := range content {
			content[i].Text = Summarize(content[i].Text, *query.SummaryLimit)
		}
	}

	page := &models.PostPage{
		Content:       content,
		Page:          query.Page.Page,
		Size:          query.Page.Size,
		TotalElements: total,
		TotalPages:    query.Page.TotalPages(total),
	}

	if cacheable {
		if err := s.cache.Set(ctx, gen, query.CacheKey(), page); err != nil {
			s.logger.Warn("listing cache write failed", zap.Error(err))
		}
	}
	return page, nil
}

// UpdatePost applies the non-empty fields of req that differ from the stored
// post. Nothing is written when no field changes.
func (s *postService) UpdatePost(ctx context.Context, id uint, req models.UpdatePostRequest, user models.UserDetails) (*models.PostResponse, error) {
	clean := models.UpdatePostRequest{
		Title: s.sanitizer.Plain(req.Title),
		Text:  s.sanitizer.Text(req.Text),
		Tags:  s.sanitizeAll(req.Tags),
	}
	if req.Title != "" && clean.Title == "" {
		return nil, models.ValidationError("Title must not be blank")
	}
	if req.Text != "" && clean.Text == "" {
		return nil, models.ValidationError("Text must not be blank")
	}
	if err := s.validator.Check(clean); err != nil {
		return nil, err
	}
	names := uniqueNames(clean.Tags)

	var post *models.Post
	dirty := false

	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		p, err := s.postRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return s.postLookupError(id, err)
		}
		if !IsOwnerOrAdmin(user, p.Author, s.adminRole) {
			s.logger.Warn("update rejected",
				zap.Uint("id", id),
				zap.String("user", user.Username),
			)
			return models.NewError(models.ErrForbidden, "User does not have permission to edit this blog post.", nil)
		}
		post = p

		if clean.Title != "" && clean.Title != post.Title {
			post.Title = clean.Title
			dirty = true
		}
		if clean.Text != "" && clean.Text != post.Text {
			post.Text = clean.Text
			dirty = true
		}
		if len(names) > 0 {
			tags, err := s.resolveTags(ctx, names)
			if err != nil {
				return err
			}
			if !post.SameTags(tags) {
				post.Tags = tags
				dirty = true
			}
		}

		if !dirty {
			return nil
		}
		return s.postRepo.Save(ctx, post)
	})
	if err != nil {
		return nil, err
	}

	if dirty {
		s.invalidateListings(ctx)
		s.logger.Info("blog post updated", zap.Uint("id", id))
	} else {
		s.logger.Info("blog post unchanged", zap.Uint("id", id))
	}

	resp := models.ToPostResponse(*post)
	return &resp, nil
}

func (s *postService) AddTagToPost(ctx context.Context, id uint, tagName string) (*models.PostResponse, error) {
	name, err := s.cleanTagName(tagName)
	if err != nil {
		return nil, err
	}

	var post *models.Post
	added := false

	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		p, err := s.postRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return s.postLookupError(id, err)
		}
		post = p

		tag, err := s.tagRepo.FindOrCreate(ctx, name)
		if err != nil {
			return err
		}
		if added = post.AddTag(*tag); !added {
			return nil
		}
		return s.postRepo.Save(ctx, post)
	})
	if err != nil {
		return nil, err
	}

	if added {
		s.invalidateListings(ctx)
		s.logger.Info("tag added to blog post", zap.Uint("id", id), zap.String("tag", name))
	}

	resp := models.ToPostResponse(*post)
	return &resp, nil
}

func (s *postService) RemoveTagFromPost(ctx context.Context, id uint, tagName string) (*models.PostResponse, error) {
	name, err := s.cleanTagName(tagName)
	if err != nil {
		return nil, err
	}

	var post *models.Post
	removed := false

	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		p, err := s.postRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return s.postLookupError(id, err)
		}
		post = p

		if _, err := s.tagRepo.GetByName(ctx, name); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.TagNotFound(name)
			}
			return err
		}

		if removed = post.RemoveTag(name); !removed {
			s.logger.Info("tag not attached to blog post", zap.Uint("id", id), zap.String("tag", name))
			return nil
		}
		return s.postRepo.Save(ctx, post)
	})
	if err != nil {
		return nil, err
	}

	if removed {
		s.invalidateListings(ctx)
		s.logger.Info("tag removed from blog post", zap.Uint("id", id), zap.String("tag", name))
	}

	resp := models.ToPostResponse(*post)
	return &resp, nil
}

// DeletePost detaches the post from all of its tags and deletes it.
func (s *postService) DeletePost(ctx context.Context, id uint, user models.UserDetails) error {
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		post, err := s.postRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return s.postLookupError(id, err)
		}
		if !IsOwnerOrAdmin(user, post.Author, s.adminRole) {
			s.logger.Warn("delete rejected",
				zap.Uint("id", id),
				zap.String("user", user.Username),
			)
			return models.NewError(models.ErrForbidden, "User does not have permission to delete this blog post.", nil)
		}

		if err := s.postRepo.ClearTags(ctx, post); err != nil {
			return err
		}
		return s.postRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.invalidateListings(ctx)
	s.logger.Info("blog post deleted", zap.Uint("id", id))
	return nil
}

// resolveTags find-or-creates every name, keeping the given order.
func (s *postService) resolveTags(ctx context.Context, names []string) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(names))
	for _, name := range names {
		tag, err := s.tagRepo.FindOrCreate(ctx, name)
		if err != nil {
			return nil, err
		}
		tags = append(tags, *tag)
	}
	return tags, nil
}

func (s *postService) cleanTagName(raw string) (string, error) {
	name := s.sanitizer.Plain(raw)
	if err := s.validator.Check(models.PostTagRequest{Tag: name}); err != nil {
		return "", err
	}
	return name, nil
}

func (s *postService) sanitizeAll(raw []string) []string {
	if raw == nil {
		return nil
	}
	out := make([]string, len(raw))
	for i, r := range raw {
		out[i] = s.sanitizer.Plain(r)
	}
	return out
}

// uniqueNames drops repeated names, keeping the first occurrence.
func uniqueNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

func (s *postService) postLookupError(id uint, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Warn("blog post not found", zap.Uint("id", id))
		return models.PostNotFound(id)
	}
	return err
}

func (s *postService) invalidateListings(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("listing cache invalidation failed", zap.Error(err))
	}
}
