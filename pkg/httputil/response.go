package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/password-analyzer/pkg/errors"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Response wraps all API responses
type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: StatusSuccess,
		Data:   data,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  StatusError,
		Message: message,
	}
}

// RespondWithSuccess sends a 200 success response
func RespondWithSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, NewSuccessResponse(data))
}

// RespondWithError sends an error response. Only AppError messages reach
// the client; anything else becomes a generic 500.
func RespondWithError(c *gin.Context, err error) {
	status, message := Describe(err)
	c.JSON(status, NewErrorResponse(message))
}

// AbortWithError is RespondWithError for middleware
func AbortWithError(c *gin.Context, err error) {
	status, message := Describe(err)
	c.AbortWithStatusJSON(status, NewErrorResponse(message))
}

// Describe returns the HTTP status and client-facing message for err
func Describe(err error) (int, string) {
	if appErr, ok := errors.As(err); ok {
		return appErr.StatusCode(), appErr.Message
	}
	return http.StatusInternalServerError, "internal server error"
}
