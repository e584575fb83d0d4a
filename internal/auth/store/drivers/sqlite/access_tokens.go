package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/assertgrant/internal/auth/domain"
	"github.com/aussiebroadwan/assertgrant/internal/auth/store/drivers/sqlite/gen"
)

type accessTokensRepo struct {
	q *gen.Queries
}

func (r *accessTokensRepo) FindActiveAccessToken(
	ctx context.Context,
	clientID, ownerID string,
	scopes []string,
	now time.Time,
) (domain.AccessToken, error) {
	row, err := r.q.FindActiveAccessToken(ctx, gen.FindActiveAccessTokenParams{
		ClientID:        clientID,
		ResourceOwnerID: ownerID,
		Scopes:          domain.JoinScopes(domain.NormalizeScopes(scopes)),
		ExpiresAt:       dbTime(now),
	})
	if err != nil {
		return domain.AccessToken{}, mapNotFound(err)
	}
	return mapAccessToken(row), nil
}

func (r *accessTokensRepo) CreateAccessToken(ctx context.Context, t domain.AccessToken) error {
	return mapConstraint(r.q.CreateAccessToken(ctx, gen.CreateAccessTokenParams{
		ID:              t.ID,
		Token:           t.Token,
		ClientID:        t.ClientID,
		ResourceOwnerID: t.ResourceOwnerID,
		Scopes:          domain.JoinScopes(domain.NormalizeScopes(t.Scopes)),
		IssuedAt:        dbTime(t.IssuedAt),
		ExpiresAt:       dbTime(t.ExpiresAt),
	}))
}

func (r *accessTokensRepo) GetAccessToken(ctx context.Context, token string) (domain.AccessToken, error) {
	row, err := r.q.GetAccessToken(ctx, token)
	if err != nil {
		return domain.AccessToken{}, mapNotFound(err)
	}
	return mapAccessToken(row), nil
}

func (r *accessTokensRepo) RevokeAccessToken(ctx context.Context, token string, at time.Time) error {
	return expectOne(r.q.RevokeAccessToken(ctx, gen.RevokeAccessTokenParams{
		RevokedAt: sql.NullTime{Time: dbTime(at), Valid: true},
		Token:     token,
	}))
}

func (r *accessTokensRepo) DeleteStaleAccessTokens(ctx context.Context, cutoff time.Time) (int64, error) {
	cutoff = dbTime(cutoff)
	return r.q.DeleteStaleAccessTokens(ctx, gen.DeleteStaleAccessTokensParams{
		ExpiresAt: cutoff,
		RevokedAt: sql.NullTime{Time: cutoff, Valid: true},
	})
}
