package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/lk2023060901/search-aggregator/internal/pkg/errors"
)

// ErrorBody is the JSON shape of every error response
type ErrorBody struct {
	Error string `json:"error"`
}

// Success writes data as the 200 response body
func Success(c *gin.Context, data interface{}) {
	if data == nil {
		data = struct{}{}
	}
	c.JSON(http.StatusOK, data)
}

// SuccessWithMessage writes a 200 response with a message and optional extra fields
func SuccessWithMessage(c *gin.Context, message string, extra gin.H) {
	body := gin.H{"message": message}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// Error writes an error response
func Error(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, ErrorBody{Error: message})
}

// BadRequest 400
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// NotFound 404
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// InternalError 500
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

// HandleError maps an error to a response through its AppError code.
// Server errors never expose details to the caller.
func HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	code := apperrors.ExtractCode(err)
	if apperrors.IsServerError(code) {
		Error(c, apperrors.GetHTTPStatus(code), apperrors.GetMessage(code))
		return
	}
	Error(c, apperrors.GetHTTPStatus(code), apperrors.FormatError(code, apperrors.GetDetails(err)))
}

// ErrorWithCode writes the response registered for code
func ErrorWithCode(c *gin.Context, code int, details ...string) {
	Error(c, apperrors.GetHTTPStatus(code), apperrors.FormatError(code, details...))
}
