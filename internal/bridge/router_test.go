package bridge

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"SquareBridge/internal/controller/rest"
	"SquareBridge/internal/controller/rest/handlers"
	"SquareBridge/internal/domain/oauth"
	"SquareBridge/internal/webhook"
	"SquareBridge/pkg/health"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newTestEngine(t *testing.T, journal *handlers.JournalHandler) http.Handler {
	t.Helper()
	ctrl := gomock.NewController(t)

	provider := oauth.NewMockProvider(ctrl)
	provider.EXPECT().AuthorizeURL().Return("https://example.test/oauth2/authorize").AnyTimes()

	api := rest.NewRouter(
		handlers.NewOAuthHandler(oauth.NewService(provider)),
		handlers.NewWebhookHandler(webhook.NewMockProcessor(ctrl), nil),
		journal,
	)

	engine := NewGinEngine()
	NewRouter(api, health.NewRegistry()).SetUp(engine)
	return engine
}

func TestRouter_SetUp(t *testing.T) {
	engine := newTestEngine(t, nil)

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/health/live", http.StatusOK},
		{http.MethodGet, "/health/ready", http.StatusOK},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodGet, "/auth", http.StatusFound},
		{http.MethodGet, "/square/callback", http.StatusBadRequest},
		{http.MethodGet, "/webhook-events", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestNewGinEngine_CorrelationHeader(t *testing.T) {
	engine := newTestEngine(t, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	req.Header.Set("X-Correlation-ID", "corr-1")
	engine.ServeHTTP(w, req)

	assert.Equal(t, "corr-1", w.Header().Get("X-Correlation-ID"))
}
