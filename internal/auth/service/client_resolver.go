package service

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/assertgrant/internal/auth/domain"
	"github.com/aussiebroadwan/assertgrant/internal/auth/store"
)

//go:generate go run go.uber.org/mock/mockgen -package mocks -destination mocks/service_mock.go github.com/aussiebroadwan/assertgrant/internal/auth/service ClientFinder,OwnerFinder,ResourceOwnerResolver

// ClientFinder is the slice of store.Clients the resolvers need.
type ClientFinder interface {
	GetClientByID(ctx context.Context, id string) (domain.Client, error)
}

// ClientResolver finds the client a grant request is made for. A nil client
// with a nil error means no client could be identified.
type ClientResolver interface {
	ResolveClient(ctx context.Context, req domain.GrantRequest) (*domain.Client, error)
}

// NewClientResolver picks the resolution strategy once, at startup.
func NewClientResolver(useIssuer bool, clients ClientFinder) ClientResolver {
	if useIssuer {
		return &IssuerClientResolver{Clients: clients}
	}
	return &ExplicitClientResolver{Clients: clients}
}

// IssuerClientResolver treats the "iss" claim of the verified assertion as
// the client ID.
type IssuerClientResolver struct {
	Clients ClientFinder
}

func (r *IssuerClientResolver) ResolveClient(ctx context.Context, _ domain.GrantRequest) (*domain.Client, error) {
	a, ok := AssertionFromContext(ctx)
	if !ok {
		return nil, nil
	}
	return findClient(ctx, r.Clients, a.Issuer())
}

// ExplicitClientResolver uses the client_id request parameter.
type ExplicitClientResolver struct {
	Clients ClientFinder
}

func (r *ExplicitClientResolver) ResolveClient(ctx context.Context, req domain.GrantRequest) (*domain.Client, error) {
	return findClient(ctx, r.Clients, req.ClientID)
}

func findClient(ctx context.Context, clients ClientFinder, id string) (*domain.Client, error) {
	if id == "" {
		return nil, nil
	}
	c, err := clients.GetClientByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}
