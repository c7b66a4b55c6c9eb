package helper

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"blog-service/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStatusCode(t *testing.T) {
	h := &HTTPHelper{}

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"validation", models.ValidationError("bad"), http.StatusBadRequest},
		{"post not found", models.PostNotFound(1), http.StatusNotFound},
		{"tag not found", models.TagNotFound("go"), http.StatusNotFound},
		{"tag exists", models.TagAlreadyExists("go"), http.StatusBadRequest},
		{"unauthenticated", models.NewError(models.ErrUnauthenticated, "", nil), http.StatusUnauthorized},
		{"forbidden", models.NewError(models.ErrForbidden, "", nil), http.StatusForbidden},
		{"upstream", models.NewError(models.ErrUpstream, "", nil), http.StatusBadGateway},
		{"user details", models.NewError(models.ErrUserDetailsRetrieval, "", nil), http.StatusUnauthorized},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, h.GetStatusCode(tt.err))
		})
	}
}

func TestSendError_UnknownError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := &HTTPHelper{}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	h.SendError(c, errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var body models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "boom", body.Message)
	assert.False(t, body.Timestamp.IsZero())
}

func TestSendError_DomainMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := &HTTPHelper{}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	h.SendError(c, models.PostNotFound(42))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Blogpost with id 42 not found")
}

func TestValidator_Check(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	err = v.Check(models.CreatePostRequest{Title: "abc", Text: "long enough"})
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrValidation)
	assert.Contains(t, err.Error(), "Title")

	assert.NoError(t, v.Check(models.CreatePostRequest{Title: "Hello", Text: "World!", Tags: []string{"go"}}))
}

func TestValidator_TagNames(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	err = v.Check(models.CreatePostRequest{Title: "Hello", Text: "World!", Tags: []string{""}})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestSanitizer(t *testing.T) {
	s := NewSanitizer()

	assert.Equal(t, "Hello <b>world</b>", s.Text(`Hello <b>world</b><script>alert(1)</script>`))
	assert.Equal(t, "Tom & Jerry", s.Plain("<i>Tom & Jerry</i>"))
}

func TestSanitizer_KeepsEntitiesUnescaped(t *testing.T) {
	s := NewSanitizer()

	assert.Equal(t, "if a < b && c > d then", s.Text("if a < b && c > d then"))
	assert.Equal(t, "Q&A", s.Plain("Q&amp;A"))
}

func TestSanitizer_EscapedMarkupStaysInert(t *testing.T) {
	s := NewSanitizer()

	assert.Equal(t, "", s.Text("&lt;script&gt;alert(1)&lt;/script&gt;"))
	assert.Equal(t, "", s.Text("<script>alert(1)</script>"))
	assert.Equal(t, "ab", s.Plain("<b>ab</b>"))
}
