package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"SquareBridge/pkg/correlation"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("nonsense"))
}

func TestSetup_InjectsContextIDs(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	t.Run("correlation and merchant", func(t *testing.T) {
		var buf bytes.Buffer
		l := Setup(Options{Level: "info", Output: &buf})

		ctx := correlation.WithMerchant(correlation.WithID(context.Background(), "corr-42"), "MERCHANT-1")
		l.InfoContext(ctx, "hello")

		var record map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
		assert.Equal(t, "hello", record["msg"])
		assert.Equal(t, "corr-42", record["correlation_id"])
		assert.Equal(t, "MERCHANT-1", record["merchant_id"])
	})

	t.Run("bare context adds nothing", func(t *testing.T) {
		var buf bytes.Buffer
		l := Setup(Options{Level: "info", Format: "json", Output: &buf})

		l.Info("hello")

		var record map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
		assert.NotContains(t, record, "correlation_id")
		assert.NotContains(t, record, "merchant_id")
	})

	t.Run("debug is filtered at info", func(t *testing.T) {
		var buf bytes.Buffer
		l := Setup(Options{Level: "info", Output: &buf})

		l.Debug("noise")

		assert.Empty(t, buf.String())
	})
}

func TestCorrelationMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.Use(CorrelationMiddleware())
	engine.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, correlation.FromContext(c.Request.Context()))
	})

	t.Run("propagates incoming header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(correlation.HeaderName, "abc")
		w := httptest.NewRecorder()

		engine.ServeHTTP(w, req)

		assert.Equal(t, "abc", w.Body.String())
		assert.Equal(t, "abc", w.Header().Get(correlation.HeaderName))
	})

	t.Run("generates id when header missing", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		w := httptest.NewRecorder()

		engine.ServeHTTP(w, req)

		assert.NotEmpty(t, w.Body.String())
		assert.Equal(t, w.Body.String(), w.Header().Get(correlation.HeaderName))
	})
}

func TestBodyLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	prev := slog.Default()
	defer slog.SetDefault(prev)

	var buf bytes.Buffer
	Setup(Options{Level: "info", Output: &buf})

	engine := gin.New()
	engine.Use(BodyLogger("/health/live"))
	engine.POST("/echo", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	engine.GET("/health/live", func(c *gin.Context) {
		c.String(http.StatusOK, "up")
	})
	engine.GET("/broken", func(c *gin.Context) {
		c.String(http.StatusBadGateway, "boom")
	})

	req := httptest.NewRequest(http.MethodPost, "/echo?code=secret", strings.NewReader(`{"type":"order.created"}`))
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "/echo", record["path"])
	assert.Equal(t, float64(http.StatusOK), record["status"])
	assert.Equal(t, map[string]any{"type": "order.created"}, record["request_body"])
	assert.Equal(t, "ok", record["response_body"])
	assert.Equal(t, "INFO", record["level"])
	assert.NotContains(t, buf.String(), "secret")

	buf.Reset()
	engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health/live", nil))
	assert.Empty(t, buf.String())

	engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/broken", nil))
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "ERROR", record["level"])
	assert.Equal(t, "/broken", record["route"])
}
