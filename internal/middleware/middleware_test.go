package middleware_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SscSPs/ledger_service/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(handlers...)
	r.GET("/ping", func(c *gin.Context) {
		middleware.GetLoggerFromCtx(c.Request.Context()).Info().Msg("ping")
		c.String(http.StatusOK, "pong")
	})
	return r
}

func TestStructuredLogging_EchoesRequestID(t *testing.T) {
	var buf bytes.Buffer
	r := newRouter(middleware.StructuredLoggingMiddleware(zerolog.New(&buf)))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "req-42", w.Header().Get(middleware.RequestIDHeader))
	// Both the handler's line and the completion line carry the request ID.
	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte(`"request_id":"req-42"`)))
	assert.Contains(t, buf.String(), `"status":200`)
}

func TestStructuredLogging_GeneratesRequestID(t *testing.T) {
	r := newRouter(middleware.StructuredLoggingMiddleware(zerolog.Nop()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestRateLimit_RejectsOverLimit(t *testing.T) {
	rate, err := limiter.NewRateFromFormatted("2-M")
	require.NoError(t, err)
	r := newRouter(middleware.RateLimit(limiter.New(memory.NewStore(), rate)))

	codes := make([]int, 0, 3)
	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		last = httptest.NewRecorder()
		r.ServeHTTP(last, httptest.NewRequest(http.MethodGet, "/ping", nil))
		codes = append(codes, last.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	var body struct {
		Kind   string   `json:"kind"`
		Errors []string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(last.Body.Bytes(), &body))
	assert.Equal(t, "RATE_LIMITED", body.Kind)
	assert.NotEmpty(t, body.Errors)
	assert.Equal(t, "0", last.Header().Get("X-RateLimit-Remaining"))
}

func TestMetrics_PassesThrough(t *testing.T) {
	r := newRouter(middleware.Metrics())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}
