package routes

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"blog-service/helper"
	"blog-service/middleware"
	"blog-service/mocks"
	"blog-service/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type RouterTestSuite struct {
	suite.Suite
	router *gin.Engine
	auth   *mocks.AuthService
	posts  *mocks.PostService
	tags   *mocks.TagService
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}

func (s *RouterTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	v, err := helper.NewValidator()
	s.Require().NoError(err)

	s.auth = new(mocks.AuthService)
	s.posts = new(mocks.PostService)
	s.tags = new(mocks.TagService)

	s.router = SetupRouter(Dependencies{
		AuthService:    s.auth,
		PostService:    s.posts,
		TagService:     s.tags,
		Helper:         helper.NewHTTPHelper(v),
		Logger:         zap.NewNop(),
		AllowedOrigins: []string{"*"},
		AdminRole:      models.RoleAdmin,
		LoginLimiter:   middleware.NewIPRateLimiter(1000),
	})
}

func (s *RouterTestSuite) TearDownTest() {
	s.auth.AssertExpectations(s.T())
	s.posts.AssertExpectations(s.T())
	s.tags.AssertExpectations(s.T())
}

func (s *RouterTestSuite) do(method, target, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *RouterTestSuite) signIn(token string, user models.UserDetails) {
	s.auth.On("ExtractToken", "Bearer "+token).Return(token, nil).Once()
	s.auth.On("ValidateToken", mock.Anything, token).Return(true, nil).Once()
	s.auth.On("GetUserDetails", mock.Anything, token).Return(&user, nil).Once()
}

func (s *RouterTestSuite) message(w *httptest.ResponseRecorder) string {
	var body models.ErrorResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body.Message
}

var alice = models.UserDetails{Username: "alice", Roles: []string{"ROLE_USER"}}

func (s *RouterTestSuite) TestHealth() {
	w := s.do(http.MethodGet, "/health", "", "")
	s.Equal(http.StatusOK, w.Code)
	s.NotEmpty(w.Header().Get(middleware.RequestIDHeader))
}

func (s *RouterTestSuite) TestListPosts_PassesQuery() {
	limit := 10
	want := models.PostListParams{Tag: "go", Parity: "even", SummaryLimit: &limit, Page: 1, Size: 5, Sort: "title,desc"}
	s.posts.On("ListPosts", mock.Anything, want).Return(&models.PostPage{
		Content:       []models.PostResponse{{ID: 1, Title: "Hello", Text: "Hel ..."}},
		Page:          1,
		Size:          5,
		TotalElements: 6,
		TotalPages:    2,
	}, nil).Once()

	w := s.do(http.MethodGet, "/posts?tag=go&parity=even&summaryLimit=10&page=1&size=5&sort=title,desc", "", "")

	s.Equal(http.StatusOK, w.Code)
	var page models.PostPage
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &page))
	s.EqualValues(6, page.TotalElements)
	s.Equal("Hel ...", page.Content[0].Text)
}

func (s *RouterTestSuite) TestListPosts_ValidationError() {
	s.posts.On("ListPosts", mock.Anything, mock.Anything).
		Return(nil, models.ValidationError("Parity must be either 'even' or 'odd'")).Once()

	w := s.do(http.MethodGet, "/posts?parity=prime", "", "")

	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("Parity must be either 'even' or 'odd'", s.message(w))
}

func (s *RouterTestSuite) TestListPosts_MalformedSummaryLimit() {
	w := s.do(http.MethodGet, "/posts?summaryLimit=ten", "", "")
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *RouterTestSuite) TestGetPost_NotFound() {
	s.posts.On("GetPost", mock.Anything, uint(99)).Return(nil, models.PostNotFound(99)).Once()

	w := s.do(http.MethodGet, "/posts/99", "", "")

	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("Blogpost with id 99 not found", s.message(w))
}

func (s *RouterTestSuite) TestGetPost_BadID() {
	w := s.do(http.MethodGet, "/posts/abc", "", "")
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *RouterTestSuite) TestCreatePost_RequiresToken() {
	w := s.do(http.MethodPost, "/posts", `{"title":"Hello","text":"World!"}`, "")

	s.Equal(http.StatusUnauthorized, w.Code)
	s.posts.AssertNotCalled(s.T(), "AddPost", mock.Anything, mock.Anything, mock.Anything)
}

func (s *RouterTestSuite) TestCreatePost_MalformedHeader() {
	s.auth.On("ExtractToken", "Basic abc").Return("", models.ValidationError("Invalid Authorization header format")).Once()

	req := httptest.NewRequest(http.MethodPost, "/posts", strings.NewReader(`{}`))
	req.Header.Set("Authorization", "Basic abc")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *RouterTestSuite) TestCreatePost_InvalidToken() {
	s.auth.On("ExtractToken", "Bearer bad").Return("bad", nil).Once()
	s.auth.On("ValidateToken", mock.Anything, "bad").Return(false, nil).Once()

	w := s.do(http.MethodPost, "/posts", `{"title":"Hello","text":"World!"}`, "bad")

	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *RouterTestSuite) TestCreatePost_AuthServiceDown() {
	s.auth.On("ExtractToken", "Bearer tok").Return("tok", nil).Once()
	s.auth.On("ValidateToken", mock.Anything, "tok").
		Return(false, models.NewError(models.ErrUpstream, "Auth service is unavailable", errors.New("dial tcp"))).Once()

	w := s.do(http.MethodPost, "/posts", `{"title":"Hello","text":"World!"}`, "tok")

	s.Equal(http.StatusBadGateway, w.Code)
	s.Equal("Auth service is unavailable", s.message(w))
}

func (s *RouterTestSuite) TestCreatePost() {
	s.signIn("tok", alice)
	req := models.CreatePostRequest{Title: "Hello", Text: "World!", Tags: []string{"go"}}
	s.posts.On("AddPost", mock.Anything, req, alice).Return(&models.PostResponse{
		ID: 1, Title: "Hello", Text: "World!", Author: "alice",
		Tags: []models.TagResponse{{ID: 1, Name: "go"}},
	}, nil).Once()

	w := s.do(http.MethodPost, "/posts", `{"title":"Hello","text":"World!","tags":["go"],"author":"mallory"}`, "tok")

	s.Equal(http.StatusOK, w.Code)
	var post models.PostResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &post))
	s.Equal("alice", post.Author)
}

func (s *RouterTestSuite) TestUpdatePost_Forbidden() {
	s.signIn("tok", alice)
	s.posts.On("UpdatePost", mock.Anything, uint(3), models.UpdatePostRequest{Text: "Updated content"}, alice).
		Return(nil, models.NewError(models.ErrForbidden, "User does not have permission to edit this blog post.", nil)).Once()

	w := s.do(http.MethodPatch, "/posts/3", `{"text":"Updated content"}`, "tok")

	s.Equal(http.StatusForbidden, w.Code)
}

func (s *RouterTestSuite) TestDeletePost() {
	s.signIn("tok", alice)
	s.posts.On("DeletePost", mock.Anything, uint(3), alice).Return(nil).Once()

	w := s.do(http.MethodDelete, "/posts/3", "", "tok")

	s.Equal(http.StatusNoContent, w.Code)
}

func (s *RouterTestSuite) TestAddAndRemoveTag() {
	s.signIn("tok", alice)
	s.posts.On("AddTagToPost", mock.Anything, uint(3), "go").
		Return(&models.PostResponse{ID: 3, Tags: []models.TagResponse{{Name: "go"}}}, nil).Once()
	w := s.do(http.MethodPost, "/posts/3/tags?tag=go", "", "tok")
	s.Equal(http.StatusOK, w.Code)

	s.signIn("tok", alice)
	s.posts.On("RemoveTagFromPost", mock.Anything, uint(3), "nope").Return(nil, models.TagNotFound("nope")).Once()
	w = s.do(http.MethodDelete, "/posts/3/tags?tag=nope", "", "tok")
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("Tag with name nope not found", s.message(w))
}

func (s *RouterTestSuite) TestAdminUsers_RequiresAdminRole() {
	s.signIn("tok", alice)

	w := s.do(http.MethodGet, "/posts/admin/users", "", "tok")

	s.Equal(http.StatusForbidden, w.Code)
	s.auth.AssertNotCalled(s.T(), "GetAllUsers", mock.Anything, mock.Anything)
}

func (s *RouterTestSuite) TestAdminUsers() {
	admin := models.UserDetails{Username: "root", Roles: []string{models.RoleAdmin}}
	users := []models.UserDetails{admin, alice}

	s.signIn("tok", admin)
	s.auth.On("GetAllUsers", mock.Anything, "tok").Return(users, nil).Once()
	w := s.do(http.MethodGet, "/posts/admin/users", "", "tok")
	s.Equal(http.StatusOK, w.Code)

	s.signIn("tok", admin)
	s.auth.On("DeleteUser", mock.Anything, "alice", "tok").Return(nil).Once()
	w = s.do(http.MethodDelete, "/posts/admin/users?username=alice", "", "tok")
	s.Equal(http.StatusNoContent, w.Code)

	s.signIn("tok", admin)
	s.auth.On("DeleteUser", mock.Anything, "bob", "tok").
		Return(models.NewError(models.ErrUserDeletionFailed, "Failed to delete user", nil)).Once()
	w = s.do(http.MethodDelete, "/posts/admin/users?username=bob", "", "tok")
	s.Equal(http.StatusInternalServerError, w.Code)
	s.Equal("Failed to delete user", s.message(w))
}

func (s *RouterTestSuite) TestLogin() {
	s.auth.On("Authenticate", mock.Anything, "alice", "secret").
		Return(&models.LoginResponse{Token: "jwt", ExpiresIn: 3600}, nil).Once()

	w := s.do(http.MethodPost, "/login", `{"username":"alice","password":"secret"}`, "")

	s.Equal(http.StatusOK, w.Code)
	var resp models.LoginResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("jwt", resp.Token)
	s.EqualValues(3600, resp.ExpiresIn)
}

func (s *RouterTestSuite) TestLogin_Failure() {
	s.auth.On("Authenticate", mock.Anything, "alice", "wrong").
		Return(nil, models.NewError(models.ErrAuthenticationFailed, "Failed to authenticate", nil)).Once()

	w := s.do(http.MethodPost, "/login", `{"username":"alice","password":"wrong"}`, "")

	s.Equal(http.StatusUnauthorized, w.Code)
	s.JSONEq(`{"message":"Invalid username or password"}`, w.Body.String())
}

func (s *RouterTestSuite) TestLogin_MissingFields() {
	w := s.do(http.MethodPost, "/login", `{"username":"alice"}`, "")
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *RouterTestSuite) TestTags() {
	s.tags.On("GetTags", mock.Anything).Return([]models.TagResponse{{ID: 1, Name: "go"}}, nil).Once()
	w := s.do(http.MethodGet, "/tags", "", "")
	s.Equal(http.StatusOK, w.Code)

	s.signIn("tok", alice)
	s.tags.On("CreateTag", mock.Anything, "go").Return(nil, models.TagAlreadyExists("go")).Once()
	w = s.do(http.MethodPost, "/tags/create-tag?tagName=go", "", "tok")
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("Tag with name go already exists", s.message(w))

	s.signIn("tok", alice)
	s.tags.On("DeleteTag", mock.Anything, "go").Return(nil).Once()
	w = s.do(http.MethodDelete, "/tags?tagName=go", "", "tok")
	s.Equal(http.StatusNoContent, w.Code)
}

func (s *RouterTestSuite) TestMissingQueryParametersAreRejected() {
	admin := models.UserDetails{Username: "root", Roles: []string{models.RoleAdmin}}

	cases := []struct {
		method string
		path   string
		user   models.UserDetails
	}{
		{http.MethodPost, "/tags/create-tag", alice},
		{http.MethodDelete, "/tags", alice},
		{http.MethodPost, "/posts/3/tags", alice},
		{http.MethodDelete, "/posts/3/tags", alice},
		{http.MethodDelete, "/posts/admin/users", admin},
	}

	for _, tc := range cases {
		s.signIn("tok", tc.user)
		w := s.do(tc.method, tc.path, "", "tok")
		s.Equal(http.StatusBadRequest, w.Code, "%s %s", tc.method, tc.path)
		s.Equal("Invalid query parameters", s.message(w), "%s %s", tc.method, tc.path)
	}

	s.tags.AssertNotCalled(s.T(), "CreateTag", mock.Anything, mock.Anything)
	s.tags.AssertNotCalled(s.T(), "DeleteTag", mock.Anything, mock.Anything)
	s.posts.AssertNotCalled(s.T(), "AddTagToPost", mock.Anything, mock.Anything, mock.Anything)
	s.posts.AssertNotCalled(s.T(), "RemoveTagFromPost", mock.Anything, mock.Anything, mock.Anything)
	s.auth.AssertNotCalled(s.T(), "DeleteUser", mock.Anything, mock.Anything, mock.Anything)
}

func (s *RouterTestSuite) TestLogin_RateLimited() {
	router := SetupRouter(Dependencies{
		AuthService:  s.auth,
		PostService:  s.posts,
		TagService:   s.tags,
		Helper:       helper.NewHTTPHelper(nil),
		Logger:       zap.NewNop(),
		AdminRole:    models.RoleAdmin,
		LoginLimiter: middleware.NewIPRateLimiter(1),
	})
	s.auth.On("Authenticate", mock.Anything, "alice", "secret").
		Return(&models.LoginResponse{Token: "jwt"}, nil).Once()

	send := func() int {
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"alice","password":"secret"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	s.Equal(http.StatusOK, send())
	s.Equal(http.StatusTooManyRequests, send())
}
