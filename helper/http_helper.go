package helper

import (
	"errors"
	"net/http"
	"time"

	"blog-service/models"

	"github.com/gin-gonic/gin"
)

// HTTPHelper ...
type HTTPHelper struct {
	Validator *Validator
}

func NewHTTPHelper(v *Validator) *HTTPHelper {
	return &HTTPHelper{Validator: v}
}

var statusByKind = []struct {
	kind   error
	status int
}{
	{models.ErrValidation, http.StatusBadRequest},
	{models.ErrPostNotFound, http.StatusNotFound},
	{models.ErrTagNotFound, http.StatusNotFound},
	{models.ErrTagAlreadyExists, http.StatusBadRequest},
	{models.ErrAuthenticationFailed, http.StatusUnauthorized},
	{models.ErrUnauthenticated, http.StatusUnauthorized},
	{models.ErrUserDetailsRetrieval, http.StatusUnauthorized},
	{models.ErrForbidden, http.StatusForbidden},
	{models.ErrUpstream, http.StatusBadGateway},
	{models.ErrPostCreationFailed, http.StatusInternalServerError},
	{models.ErrUserDeletionFailed, http.StatusInternalServerError},
}

// GetStatusCode ...
func (u *HTTPHelper) GetStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}
	for _, m := range statusByKind {
		if errors.Is(err, m.kind) {
			return m.status
		}
	}
	return http.StatusInternalServerError
}

// SendError ...
// Send error response to consumers. Domain errors carry their public
// message; anything else reports its own message only.
func (u *HTTPHelper) SendError(c *gin.Context, err error) {
	u.SendMessage(c, u.GetStatusCode(err), err.Error())
}

// SendMessage writes an error body with the given status and aborts the chain.
func (u *HTTPHelper) SendMessage(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, models.ErrorResponse{
		Message:   message,
		Timestamp: time.Now().UTC(),
	})
}

// SendBadRequest ...
func (u *HTTPHelper) SendBadRequest(c *gin.Context, message string) {
	u.SendMessage(c, http.StatusBadRequest, message)
}

// SendSuccess ...
// Send success response to consumers.
func (u *HTTPHelper) SendSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

func (u *HTTPHelper) SendNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Check runs struct validation and returns a validation error on failure.
func (u *HTTPHelper) Check(v interface{}) error {
	if u.Validator == nil {
		return nil
	}
	return u.Validator.Check(v)
}
