package repositories

import (
	"context"

	"blog-service/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	GetByIDForUpdate(ctx context.Context, id uint) (*models.Post, error)
	GetAll(ctx context.Context) ([]models.Post, error)
	List(ctx context.Context, filter PostFilter, page Pageable) ([]models.Post, int64, error)
	Save(ctx context.Context, post *models.Post) error
	ClearTags(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func preloadTags(db *gorm.DB) *gorm.DB {
	return db.Order("tags.name asc")
}

// Create inserts the post and links the tags it carries. Tags must already exist.
func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return conn(ctx, r.db).Omit("Tags.*").Create(post).Error
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := conn(ctx, r.db).Preload("Tags", preloadTags).First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// GetByIDForUpdate loads the post and locks its row until the surrounding
// transaction ends.
func (r *postRepository) GetByIDForUpdate(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := conn(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&post, id).Error
	if err != nil {
		return nil, err
	}

	if err := conn(ctx, r.db).Model(&post).Order("tags.name asc").Association("Tags").Find(&post.Tags); err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) GetAll(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := conn(ctx, r.db).Preload("Tags", preloadTags).Order("posts.id asc").Find(&posts).Error
	return posts, err
}

func (r *postRepository) List(ctx context.Context, filter PostFilter, page Pageable) ([]models.Post, int64, error) {
	if filter == nil {
		filter = NoFilter{}
	}

	var posts []models.Post
	var total int64

	query := filter.Scope(conn(ctx, r.db).Model(&models.Post{})).Session(&gorm.Session{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []models.Post{}, 0, nil
	}

	err := query.
		Preload("Tags", preloadTags).
		Order(page.order()).
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&posts).Error

	return posts, total, err
}

// Save writes the scalar fields and replaces the stored tag set with post.Tags.
func (r *postRepository) Save(ctx context.Context, post *models.Post) error {
	db := conn(ctx, r.db)
	if err := db.Omit(clause.Associations).Save(post).Error; err != nil {
		return err
	}
	return db.Model(post).Association("Tags").Replace(post.Tags)
}

// ClearTags removes every tag link of the post. The tags themselves stay.
func (r *postRepository) ClearTags(ctx context.Context, post *models.Post) error {
	return conn(ctx, r.db).Model(post).Association("Tags").Clear()
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	return conn(ctx, r.db).Delete(&models.Post{}, id).Error
}
