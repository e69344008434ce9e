package response

import (
	"net/http"

	"codehunt/pkg/errors"
	"codehunt/pkg/utils/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	contentTypeText = "text/plain; charset=utf-8"
	contentTypeHTML = "text/html; charset=utf-8"
)

// Text sends a plain text body with the given status.
func Text(c *gin.Context, status int, body string) {
	c.Data(status, contentTypeText, []byte(body))
}

// HTML sends an HTML fragment with the given status.
func HTML(c *gin.Context, status int, body string) {
	c.Data(status, contentTypeHTML, []byte(body))
}

// JSON sends a JSON body with the given status.
func JSON(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}

// Success sends a 200 JSON response.
func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Error sends an error response
// It automatically extracts error code and message from the error.
// Challenge clients read the status and the bare message, so the body is plain text.
func Error(c *gin.Context, err error) {
	customErr := errors.GetError(err)
	status := customErr.Code.HTTPStatus()

	fields := []zap.Field{
		zap.Int("code", int(customErr.Code)),
		zap.String("message", customErr.Error()),
		zap.Int("status", status),
	}
	if customErr.Err != nil {
		fields = append(fields, zap.Error(customErr.Err))
	}
	if status >= http.StatusInternalServerError {
		fields = append(fields, zap.String("stack", customErr.Stack))
		logger.Error(c.Request.Context(), "request error", fields...)
	} else {
		logger.Debug(c.Request.Context(), "request rejected", fields...)
	}

	Text(c, status, customErr.Error())
}

// ErrorWithBody sends an error status with a caller supplied body.
func ErrorWithBody(c *gin.Context, code errors.ErrorCode, body string) {
	logger.Debug(c.Request.Context(), "request rejected",
		zap.Int("code", int(code)),
		zap.Int("status", code.HTTPStatus()),
	)
	Text(c, code.HTTPStatus(), body)
}

// Status sends an empty body with the status mapped from the error code.
func Status(c *gin.Context, code errors.ErrorCode) {
	c.Status(code.HTTPStatus())
}

// AbortWithError aborts the request and sends error response
func AbortWithError(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}
