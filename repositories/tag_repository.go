package repositories

import (
	"context"
	"errors"

	"blog-service/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TagRepository interface {
	Create(ctx context.Context, tag *models.Tag) error
	FindOrCreate(ctx context.Context, name string) (*models.Tag, error)
	GetByName(ctx context.Context, name string) (*models.Tag, error)
	GetAll(ctx context.Context) ([]models.Tag, error)
	ClearPosts(ctx context.Context, tag *models.Tag) error
	Delete(ctx context.Context, id uint) error
}

type tagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) Create(ctx context.Context, tag *models.Tag) error {
	err := conn(ctx, r.db).Create(tag).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return models.TagAlreadyExists(tag.Name)
	}
	return err
}

// FindOrCreate inserts the tag unless the name is taken and returns the
// stored row. Concurrent callers with the same name all get the same tag.
func (r *tagRepository) FindOrCreate(ctx context.Context, name string) (*models.Tag, error) {
	db := conn(ctx, r.db)

	tag := models.Tag{Name: name}
	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&tag)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected > 0 && tag.ID != 0 {
		return &tag, nil
	}

	return r.GetByName(ctx, name)
}

func (r *tagRepository) GetByName(ctx context.Context, name string) (*models.Tag, error) {
	var tag models.Tag
	err := conn(ctx, r.db).Where("name = ?", name).First(&tag).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) GetAll(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	err := conn(ctx, r.db).Order("name asc").Find(&tags).Error
	return tags, err
}

// ClearPosts detaches the tag from every post that references it.
func (r *tagRepository) ClearPosts(ctx context.Context, tag *models.Tag) error {
	return conn(ctx, r.db).Model(tag).Association("Posts").Clear()
}

func (r *tagRepository) Delete(ctx context.Context, id uint) error {
	return conn(ctx, r.db).Delete(&models.Tag{}, id).Error
}
