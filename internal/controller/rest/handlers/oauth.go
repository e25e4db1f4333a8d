package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"SquareBridge/internal/domain/oauth"

	"github.com/gin-gonic/gin"
)

const (
	msgMissingCode  = "Missing authorization code"
	msgOAuthSuccess = "OAuth Success! Token received."
	msgOAuthFailed  = "OAuth failed. Check logs."
)

type OAuthHandler struct {
	service *oauth.Service
}

func NewOAuthHandler(s *oauth.Service) OAuthHandler {
	return OAuthHandler{service: s}
}

// Authorize redirects the merchant to the payments platform's consent page.
func (h *OAuthHandler) Authorize(c *gin.Context) {
	c.Redirect(http.StatusFound, h.service.AuthorizeURL())
}

// Callback exchanges the authorization code. Exchange failures of any kind
// produce the same plain-text failure message with status 200.
func (h *OAuthHandler) Callback(c *gin.Context) {
	code := strings.TrimSpace(c.Query("code"))
	if code == "" {
		c.String(http.StatusBadRequest, msgMissingCode)
		return
	}

	if _, err := h.service.Exchange(c.Request.Context(), code); err != nil {
		slog.ErrorContext(c.Request.Context(), "OAuth code exchange failed", slog.Any("error", err))
		c.String(http.StatusOK, msgOAuthFailed)
		return
	}

	c.String(http.StatusOK, msgOAuthSuccess)
}
