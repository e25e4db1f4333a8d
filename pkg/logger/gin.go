package logger

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"time"

	"SquareBridge/pkg/correlation"

	"github.com/gin-gonic/gin"
)

const maxBody = 8 * 1024

func limit(b []byte) []byte {
	if len(b) > maxBody {
		return b[:maxBody]
	}
	return b
}

type responseBodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (r *responseBodyWriter) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *responseBodyWriter) WriteString(s string) (int, error) {
	r.body.WriteString(s)
	return r.ResponseWriter.WriteString(s)
}

// CorrelationMiddleware takes the correlation ID from the request header, or
// generates one, and echoes it in the response.
func CorrelationMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		corrID := c.GetHeader(correlation.HeaderName)
		if corrID == "" {
			corrID = correlation.NewID()
		}

		ctx := correlation.WithID(c.Request.Context(), corrID)
		c.Request = c.Request.WithContext(ctx)
		c.Header(correlation.HeaderName, corrID)

		c.Next()
	}
}

// BodyLogger logs every request with its truncated request and response
// bodies, except requests to the skipped paths. The query string is never
// logged: the OAuth callback carries the authorization code there.
// 5xx responses log at error level, 4xx at warn.
func BodyLogger(skip ...string) gin.HandlerFunc {
	skipped := make(map[string]struct{}, len(skip))
	for _, p := range skip {
		skipped[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skipped[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		start := time.Now()

		var requestBody []byte
		if c.Request.Body != nil {
			requestBody, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(requestBody))
		}

		responseBuffer := &bytes.Buffer{}
		c.Writer = &responseBodyWriter{
			body:           responseBuffer,
			ResponseWriter: c.Writer,
		}

		c.Next()

		status := c.Writer.Status()
		slog.Log(c.Request.Context(), levelFor(status), "HTTP Request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"route", c.FullPath(),
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			maybeJSON("request_body", limit(requestBody)),
			maybeJSON("response_body", limit(responseBuffer.Bytes())),
		)
	}
}

func levelFor(status int) slog.Level {
	switch {
	case status >= 500:
		return slog.LevelError
	case status >= 400:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

func maybeJSON(key string, b []byte) slog.Attr {
	bb := bytes.TrimSpace(b)

	if len(bb) == 0 {
		return slog.Any(key, nil)
	}

	if json.Valid(bb) {
		return slog.Any(key, json.RawMessage(bb))
	}

	return slog.String(key, string(bb))
}
