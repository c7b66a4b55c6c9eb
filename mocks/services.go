// Package mocks holds testify mocks of the service interfaces.
package mocks

import (
	"context"

	"blog-service/models"

	"github.com/stretchr/testify/mock"
)

type AuthService struct {
	mock.Mock
}

func (m *AuthService) Authenticate(ctx context.Context, username, password string) (*models.LoginResponse, error) {
	args := m.Called(ctx, username, password)
	if r := args.Get(0); r != nil {
		return r.(*models.LoginResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AuthService) ValidateToken(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}

func (m *AuthService) ExtractToken(header string) (string, error) {
	args := m.Called(header)
	return args.String(0), args.Error(1)
}

func (m *AuthService) GetUserDetails(ctx context.Context, token string) (*models.UserDetails, error) {
	args := m.Called(ctx, token)
	if r := args.Get(0); r != nil {
		return r.(*models.UserDetails), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AuthService) GetAllUsers(ctx context.Context, token string) ([]models.UserDetails, error) {
	args := m.Called(ctx, token)
	if r := args.Get(0); r != nil {
		return r.([]models.UserDetails), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AuthService) DeleteUser(ctx context.Context, username, token string) error {
	return m.Called(ctx, username, token).Error(0)
}

func (m *AuthService) CanEditOrDelete(ctx context.Context, token, owner string) (bool, error) {
	args := m.Called(ctx, token, owner)
	return args.Bool(0), args.Error(1)
}

type PostService struct {
	mock.Mock
}

func (m *PostService) AddPost(ctx context.Context, req models.CreatePostRequest, user models.UserDetails) (*models.PostResponse, error) {
	args := m.Called(ctx, req, user)
	if r := args.Get(0); r != nil {
		return r.(*models.PostResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *PostService) GetPost(ctx context.Context, id uint) (*models.PostResponse, error) {
	args := m.Called(ctx, id)
	if r := args.Get(0); r != nil {
		return r.(*models.PostResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *PostService) GetAllPosts(ctx context.Context) ([]models.PostResponse, error) {
	args := m.Called(ctx)
	if r := args.Get(0); r != nil {
		return r.([]models.PostResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *PostService) ListPosts(ctx context.Context, params models.PostListParams) (*models.PostPage, error) {
	args := m.Called(ctx, params)
	if r := args.Get(0); r != nil {
		return r.(*models.PostPage), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *PostService) UpdatePost(ctx context.Context, id uint, req models.UpdatePostRequest, user models.UserDetails) (*models.PostResponse, error) {
	args := m.Called(ctx, id, req, user)
	if r := args.Get(0); r != nil {
		return r.(*models.PostResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *PostService) AddTagToPost(ctx context.Context, id uint, tagName string) (*models.PostResponse, error) {
	args := m.Called(ctx, id, tagName)
	if r := args.Get(0); r != nil {
		return r.(*models.PostResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *PostService) RemoveTagFromPost(ctx context.Context, id uint, tagName string) (*models.PostResponse, error) {
	args := m.Called(ctx, id, tagName)
	if r := args.Get(0); r != nil {
		return r.(*models.PostResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *PostService) DeletePost(ctx context.Context, id uint, user models.UserDetails) error {
	return m.Called(ctx, id, user).Error(0)
}

type TagService struct {
	mock.Mock
}

func (m *TagService) CreateTag(ctx context.Context, name string) (*models.TagResponse, error) {
	args := m.Called(ctx, name)
	if r := args.Get(0); r != nil {
		return r.(*models.TagResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TagService) GetTags(ctx context.Context) ([]models.TagResponse, error) {
	args := m.Called(ctx)
	if r := args.Get(0); r != nil {
		return r.([]models.TagResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TagService) DeleteTag(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}
