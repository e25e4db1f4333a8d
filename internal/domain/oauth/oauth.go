package oauth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

//go:generate mockgen -source=oauth.go -destination=mock_oauth.go -package=oauth

var (
	ErrMissingCode = errors.New("missing authorization code")
	// ErrNoToken is returned when the token endpoint answers without an access token.
	ErrNoToken = errors.New("token response carries no access token")
)

// Token is the result of an authorization-code exchange.
type Token struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type,omitempty"`
	ExpiresAt    string `json:"expires_at,omitempty"`
	MerchantID   string `json:"merchant_id,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// Provider is the payments platform's OAuth surface.
type Provider interface {
	AuthorizeURL() string
	ObtainToken(ctx context.Context, code string) (Token, error)
}

type Service struct {
	provider Provider
}

func NewService(p Provider) *Service {
	return &Service{provider: p}
}

func (s *Service) AuthorizeURL() string {
	return s.provider.AuthorizeURL()
}

// Exchange trades an authorization code for a token. The token is logged
// without its secrets and is not stored.
func (s *Service) Exchange(ctx context.Context, code string) (Token, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return Token{}, ErrMissingCode
	}

	token, err := s.provider.ObtainToken(ctx, code)
	if err != nil {
		return Token{}, fmt.Errorf("obtain token: %w", err)
	}
	if token.AccessToken == "" {
		return Token{}, ErrNoToken
	}

	slog.InfoContext(ctx, "OAuth token received",
		"merchant_id", token.MerchantID,
		"token_type", token.TokenType,
		"expires_at", token.ExpiresAt,
		"has_refresh_token", token.RefreshToken != "")

	return token, nil
}
