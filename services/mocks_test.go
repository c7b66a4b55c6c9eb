package services

import (
	"context"
	"errors"
	"fmt"

	"blog-service/helper"
	"blog-service/models"
	"blog-service/repositories"

	"github.com/stretchr/testify/mock"
)

type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) error {
	return m.Called(ctx, post).Error(0)
}

func (m *MockPostRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*models.Post), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPostRepository) GetByIDForUpdate(ctx context.Context, id uint) (*models.Post, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*models.Post), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPostRepository) GetAll(ctx context.Context) ([]models.Post, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostRepository) List(ctx context.Context, filter repositories.PostFilter, page repositories.Pageable) ([]models.Post, int64, error) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).([]models.Post), args.Get(1).(int64), args.Error(2)
}

func (m *MockPostRepository) Save(ctx context.Context, post *models.Post) error {
	return m.Called(ctx, post).Error(0)
}

func (m *MockPostRepository) ClearTags(ctx context.Context, post *models.Post) error {
	return m.Called(ctx, post).Error(0)
}

func (m *MockPostRepository) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type MockTagRepository struct {
	mock.Mock
}

func (m *MockTagRepository) Create(ctx context.Context, tag *models.Tag) error {
	return m.Called(ctx, tag).Error(0)
}

func (m *MockTagRepository) FindOrCreate(ctx context.Context, name string) (*models.Tag, error) {
	args := m.Called(ctx, name)
	if t := args.Get(0); t != nil {
		return t.(*models.Tag), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTagRepository) GetByName(ctx context.Context, name string) (*models.Tag, error) {
	args := m.Called(ctx, name)
	if t := args.Get(0); t != nil {
		return t.(*models.Tag), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTagRepository) GetAll(ctx context.Context) ([]models.Tag, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Tag), args.Error(1)
}

func (m *MockTagRepository) ClearPosts(ctx context.Context, tag *models.Tag) error {
	return m.Called(ctx, tag).Error(0)
}

func (m *MockTagRepository) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

// passthroughTx runs fn directly; transactions are covered by the repository suite.
type passthroughTx struct{}

func (passthroughTx) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// memoryCache is a map backed listing cache with generations that records
// invalidations.
type memoryCache struct {
	gen           int64
	pages         map[string]models.PostPage
	invalidations int
	failReads     bool
	writes        int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{pages: map[string]models.PostPage{}}
}

func memoryKey(gen int64, key string) string {
	return fmt.Sprintf("%d:%s", gen, key)
}

func (c *memoryCache) Get(_ context.Context, key string, dest interface{}) (int64, bool, error) {
	if c.failReads {
		return 0, false, errors.New("cache unavailable")
	}
	p, ok := c.pages[memoryKey(c.gen, key)]
	if !ok {
		return c.gen, false, nil
	}
	*dest.(*models.PostPage) = p
	return c.gen, true, nil
}

func (c *memoryCache) Set(_ context.Context, gen int64, key string, value interface{}) error {
	c.writes++
	c.pages[memoryKey(gen, key)] = *value.(*models.PostPage)
	return nil
}

func (c *memoryCache) Invalidate(context.Context) error {
	c.gen++
	c.invalidations++
	return nil
}

func mustValidator() *helper.Validator {
	v, err := helper.NewValidator()
	if err != nil {
		panic(err)
	}
	return v
}
