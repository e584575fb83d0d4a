package service

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/assertgrant/internal/auth/domain"
	"github.com/aussiebroadwan/assertgrant/internal/auth/store"
	"github.com/aussiebroadwan/assertgrant/pkg/slogx"
)

// TokenService answers introspection and revocation requests for issued
// access tokens.
type TokenService struct {
	Store store.Store
}

// Introspect returns the stored token and whether it is active right now.
// Unknown tokens are simply inactive.
func (s *TokenService) Introspect(ctx context.Context, token string) (domain.AccessToken, bool, error) {
	if token == "" {
		return domain.AccessToken{}, false, nil
	}

	tok, err := s.Store.AccessTokens().GetAccessToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.AccessToken{}, false, nil
		}
		return domain.AccessToken{}, false, err
	}
	return tok, tok.Active(time.Now()), nil
}

// Revoke marks token revoked. Unknown tokens are not an error, matching
// RFC 7009.
func (s *TokenService) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	err := s.Store.AccessTokens().RevokeAccessToken(ctx, token, time.Now())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		slogx.FromContext(ctx).Error("failed to revoke access token", "error", err)
		return err
	}

	slogx.FromContext(ctx).Info("access token revoked")
	return nil
}
