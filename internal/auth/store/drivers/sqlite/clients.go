package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/assertgrant/internal/auth/domain"
	"github.com/aussiebroadwan/assertgrant/internal/auth/store/drivers/sqlite/gen"
)

type clientsRepo struct {
	q *gen.Queries
}

func (r *clientsRepo) GetClientByID(ctx context.Context, id string) (domain.Client, error) {
	row, err := r.q.GetClientByID(ctx, id)
	if err != nil {
		return domain.Client{}, mapNotFound(err)
	}
	return mapClient(row), nil
}

func (r *clientsRepo) ListClients(ctx context.Context) ([]domain.Client, error) {
	rows, err := r.q.ListClients(ctx)
	if err != nil {
		return nil, err
	}

	clients := make([]domain.Client, len(rows))
	for i, row := range rows {
		clients[i] = mapClient(row)
	}
	return clients, nil
}

func (r *clientsRepo) CreateClient(ctx context.Context, c domain.Client) error {
	err := r.q.CreateClient(ctx, gen.CreateClientParams{
		ID:                    c.ID,
		Name:                  c.Name,
		Scopes:                domain.JoinScopes(domain.NormalizeScopes(c.Scopes)),
		AccessTokenTtlSeconds: int64(c.AccessTokenTTL / time.Second),
		Protected:             c.Protected,
		CreatedAt:             dbTime(c.CreatedAt),
		UpdatedAt:             dbTime(c.UpdatedAt),
	})
	return mapConstraint(err)
}

func (r *clientsRepo) UpdateClientScopes(ctx context.Context, clientID string, scopes []string) error {
	return expectOne(r.q.UpdateClientScopes(ctx, gen.UpdateClientScopesParams{
		Scopes:    domain.JoinScopes(domain.NormalizeScopes(scopes)),
		UpdatedAt: dbTime(time.Now()),
		ID:        clientID,
	}))
}

func (r *clientsRepo) DeleteClient(ctx context.Context, clientID string) error {
	return expectOne(r.q.DeleteClient(ctx, clientID))
}
