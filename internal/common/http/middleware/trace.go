package middleware

import (
	"context"
	"strings"

	"codehunt/pkg/utils/contextkey"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	TraceIDHeader      = "X-Trace-Id"
	RequestIDHeader    = "X-Request-Id"
	SubmissionIDHeader = "X-Submission-Id"
)

// TraceContextConfig controls which ids are echoed back to the caller.
type TraceContextConfig struct {
	EchoHeaders bool `yaml:"echoHeaders"`
}

// TraceContextMiddleware ensures trace/request ids are in context and response headers.
// A submission id sent by a validator is carried along for log correlation.
func TraceContextMiddleware() gin.HandlerFunc {
	return TraceContextMiddlewareWithConfig(TraceContextConfig{EchoHeaders: true})
}

// TraceContextMiddlewareWithConfig is the configurable version of TraceContextMiddleware.
func TraceContextMiddlewareWithConfig(cfg TraceContextConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		traceID := headerOrNew(c, TraceIDHeader)
		c.Set(string(contextkey.TraceID), traceID)
		ctx = context.WithValue(ctx, contextkey.TraceID, traceID)

		requestID := headerOrNew(c, RequestIDHeader)
		c.Set(string(contextkey.RequestID), requestID)
		ctx = context.WithValue(ctx, contextkey.RequestID, requestID)

		if submissionID := strings.TrimSpace(c.GetHeader(SubmissionIDHeader)); submissionID != "" {
			c.Set(string(contextkey.SubmissionID), submissionID)
			ctx = context.WithValue(ctx, contextkey.SubmissionID, submissionID)
		}

		c.Request = c.Request.WithContext(ctx)
		if cfg.EchoHeaders {
			c.Writer.Header().Set(TraceIDHeader, traceID)
			c.Writer.Header().Set(RequestIDHeader, requestID)
		}

		c.Next()
	}
}

func headerOrNew(c *gin.Context, name string) string {
	if v := strings.TrimSpace(c.GetHeader(name)); v != "" {
		return v
	}
	return uuid.NewString()
}
