package sqlite

import (
	"context"

	"github.com/aussiebroadwan/assertgrant/internal/auth/domain"
	"github.com/aussiebroadwan/assertgrant/internal/auth/store/drivers/sqlite/gen"
)

type ownersRepo struct {
	q *gen.Queries
}

func (r *ownersRepo) GetOwnerByID(ctx context.Context, id string) (domain.ResourceOwner, error) {
	row, err := r.q.GetOwnerByID(ctx, id)
	if err != nil {
		return domain.ResourceOwner{}, mapNotFound(err)
	}
	return mapOwner(row), nil
}

func (r *ownersRepo) ListOwners(ctx context.Context) ([]domain.ResourceOwner, error) {
	rows, err := r.q.ListOwners(ctx)
	if err != nil {
		return nil, err
	}

	owners := make([]domain.ResourceOwner, len(rows))
	for i, row := range rows {
		owners[i] = mapOwner(row)
	}
	return owners, nil
}

func (r *ownersRepo) CreateOwner(ctx context.Context, o domain.ResourceOwner) error {
	return mapConstraint(r.q.CreateOwner(ctx, gen.CreateOwnerParams{
		ID:        o.ID,
		Name:      o.Name,
		CreatedAt: dbTime(o.CreatedAt),
		UpdatedAt: dbTime(o.UpdatedAt),
	}))
}
