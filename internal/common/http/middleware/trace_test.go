package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	commonmw "codehunt/internal/common/http/middleware"
	"codehunt/pkg/utils/contextkey"

	"github.com/gin-gonic/gin"
)

type traceResponse struct {
	CtxTraceID      string `json:"ctx_trace_id"`
	CtxRequestID    string `json:"ctx_request_id"`
	CtxSubmissionID string `json:"ctx_submission_id"`
}

func newTraceRouter(cfg commonmw.TraceContextConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(commonmw.TraceContextMiddlewareWithConfig(cfg))
	router.GET("/trace", func(c *gin.Context) {
		ctx := c.Request.Context()
		c.JSON(http.StatusOK, traceResponse{
			CtxTraceID:      toString(ctx.Value(contextkey.TraceID)),
			CtxRequestID:    toString(ctx.Value(contextkey.RequestID)),
			CtxSubmissionID: toString(ctx.Value(contextkey.SubmissionID)),
		})
	})
	return router
}

func TestTraceContextMiddleware(t *testing.T) {
	router := newTraceRouter(commonmw.TraceContextConfig{EchoHeaders: true})

	cases := []struct {
		name               string
		headers            map[string]string
		expectedTraceID    string
		expectedRequestID  string
		expectedSubmission string
	}{
		{
			name: "generate trace and request id",
		},
		{
			name: "preserve ids and carry submission",
			headers: map[string]string{
				"X-Trace-Id":      "trace-123",
				"X-Request-Id":    "req-123",
				"X-Submission-Id": "sub-1",
			},
			expectedTraceID:    "trace-123",
			expectedRequestID:  "req-123",
			expectedSubmission: "sub-1",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/trace", nil)
			for key, value := range tc.headers {
				req.Header.Set(key, value)
			}
			router.ServeHTTP(rec, req)

			var resp traceResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("decode response failed: %v", err)
			}
			if resp.CtxTraceID == "" || resp.CtxRequestID == "" {
				t.Fatalf("expected ids in request context, got %+v", resp)
			}
			if tc.expectedTraceID != "" && resp.CtxTraceID != tc.expectedTraceID {
				t.Fatalf("expected trace id %s, got %s", tc.expectedTraceID, resp.CtxTraceID)
			}
			if tc.expectedRequestID != "" && resp.CtxRequestID != tc.expectedRequestID {
				t.Fatalf("expected request id %s, got %s", tc.expectedRequestID, resp.CtxRequestID)
			}
			if resp.CtxSubmissionID != tc.expectedSubmission {
				t.Fatalf("expected submission id %q, got %q", tc.expectedSubmission, resp.CtxSubmissionID)
			}
			if rec.Header().Get("X-Trace-Id") != resp.CtxTraceID {
				t.Fatalf("expected trace id header")
			}
			if rec.Header().Get("X-Request-Id") != resp.CtxRequestID {
				t.Fatalf("expected request id header")
			}
		})
	}
}

func TestTraceContextMiddlewareWithoutEcho(t *testing.T) {
	router := newTraceRouter(commonmw.TraceContextConfig{})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/trace", nil))
	if rec.Header().Get("X-Trace-Id") != "" {
		t.Fatalf("unexpected trace id header")
	}
}

func toString(value any) string {
	s, _ := value.(string)
	return s
}
