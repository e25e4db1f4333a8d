package rest

import (
	"SquareBridge/internal/controller/rest/handlers"

	"github.com/gin-gonic/gin"
)

type Router struct {
	oauth   handlers.OAuthHandler
	webhook handlers.WebhookHandler
	journal *handlers.JournalHandler
}

func (r *Router) SetUp(engine *gin.Engine) {
	engine.GET("/auth", r.oauth.Authorize)
	engine.GET("/square/callback", r.oauth.Callback)

	engine.POST("/square-webhook", r.webhook.Square)

	if r.journal != nil {
		engine.GET("/webhook-events", r.journal.List)
	}
}

// NewRouter wires the public routes. journal may be nil when no journal is configured.
func NewRouter(oauth handlers.OAuthHandler, webhook handlers.WebhookHandler, journal *handlers.JournalHandler) *Router {
	return &Router{
		oauth:   oauth,
		webhook: webhook,
		journal: journal,
	}
}
