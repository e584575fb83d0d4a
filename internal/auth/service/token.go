package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/assertgrant/internal/auth/domain"
	"github.com/aussiebroadwan/assertgrant/internal/auth/store"
	"github.com/aussiebroadwan/assertgrant/pkg/cryptox"
	"github.com/aussiebroadwan/assertgrant/pkg/idx"
	"github.com/aussiebroadwan/assertgrant/pkg/lockx"
	"github.com/aussiebroadwan/assertgrant/pkg/slogx"
)

// TokenIssuer mints opaque access tokens, or hands back the live one when
// the same client, owner and scopes asked before.
type TokenIssuer struct {
	Store    store.Store
	Locker   lockx.Locker
	Lifetime LifetimePolicy
	// Reuse enables find-or-create. When false every call mints a token.
	Reuse bool
	// Now defaults to time.Now.
	Now func() time.Time
}

// IssueOrReuse returns the token for (client, ownerID, scopes) and whether it
// was an existing one. The lookup and the insert run under a lock on the
// tuple and inside one transaction, so concurrent callers agree on a single
// token.
func (i *TokenIssuer) IssueOrReuse(
	ctx context.Context,
	client domain.Client,
	ownerID string,
	scopes []string,
) (domain.AccessToken, bool, error) {
	l := slogx.FromContext(ctx)

	scopes = domain.NormalizeScopes(scopes)
	key := "token:" + cryptox.Fingerprint(client.ID, ownerID, domain.JoinScopes(scopes))

	unlock, err := i.Locker.Lock(ctx, key)
	if err != nil {
		return domain.AccessToken{}, false, fmt.Errorf("lock token tuple: %w", err)
	}
	defer unlock()

	now := i.now().UTC().Truncate(time.Second)

	var (
		tok    domain.AccessToken
		reused bool
	)
	err = i.Store.WithTx(ctx, func(tx store.Tx) error {
		if i.Reuse {
			existing, err := tx.AccessTokens().FindActiveAccessToken(ctx, client.ID, ownerID, scopes, now)
			switch {
			case err == nil:
				tok, reused = existing, true
				return nil
			case !errors.Is(err, store.ErrNotFound):
				return err
			}
		}

		value, err := cryptox.GenerateToken(cryptox.TokenSize256)
		if err != nil {
			return err
		}

		tok = domain.AccessToken{
			ID:              idx.New().String(),
			Token:           value,
			ClientID:        client.ID,
			ResourceOwnerID: ownerID,
			Scopes:          scopes,
			IssuedAt:        now,
			ExpiresAt:       now.Add(i.Lifetime.For(client)),
		}
		return tx.AccessTokens().CreateAccessToken(ctx, tok)
	})
	if err != nil {
		return domain.AccessToken{}, false, err
	}

	l.Debug("access token ready",
		slog.String("client_id", client.ID),
		slog.String("token_id", tok.ID),
		slog.Bool("reused", reused),
	)
	return tok, reused, nil
}

func (i *TokenIssuer) now() time.Time {
	if i.Now != nil {
		return i.Now()
	}
	return time.Now()
}
