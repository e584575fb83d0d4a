package service

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/assertgrant/internal/auth/domain"
	"github.com/aussiebroadwan/assertgrant/internal/auth/store"
	"github.com/aussiebroadwan/assertgrant/pkg/idx"
	"github.com/aussiebroadwan/assertgrant/pkg/slogx"
)

type ClientService struct {
	Store store.Store
}

// NewClient describes a client to register.
type NewClient struct {
	// ID is what the client puts in "iss". Empty generates one.
	ID             string
	Name           string
	Scopes         []string
	AccessTokenTTL time.Duration
	Protected      bool
}

// CreateClient registers a client and returns it as stored.
func (s *ClientService) CreateClient(ctx context.Context, in NewClient) (domain.Client, error) {
	l := slogx.FromContext(ctx)

	id := in.ID
	if id == "" {
		id = idx.New().String()
	}

	now := time.Now().UTC()
	c := domain.Client{
		ID:             id,
		Name:           in.Name,
		Scopes:         domain.NormalizeScopes(in.Scopes),
		AccessTokenTTL: in.AccessTokenTTL,
		Protected:      in.Protected,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.Store.Clients().CreateClient(ctx, c); err != nil {
		l.Error("failed to create client", "error", err, "client_id", id)
		return domain.Client{}, err
	}

	l.Info("client created successfully", "client_id", id, "name", in.Name)
	return c, nil
}

// ListClients returns all clients.
func (s *ClientService) ListClients(ctx context.Context) ([]domain.Client, error) {
	return s.Store.Clients().ListClients(ctx)
}

// UpdateClientScopes replaces the scopes a client may request.
func (s *ClientService) UpdateClientScopes(ctx context.Context, clientID string, scopes []string) error {
	err := s.Store.Clients().UpdateClientScopes(ctx, clientID, domain.NormalizeScopes(scopes))
	if errors.Is(err, store.ErrNotFound) {
		return ErrClientNotFound
	}
	return err
}

// DeleteClient deletes a client and, through the schema, its tokens.
// Returns ErrClientProtected for protected clients.
func (s *ClientService) DeleteClient(ctx context.Context, clientID string) error {
	l := slogx.FromContext(ctx)

	client, err := s.Store.Clients().GetClientByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrClientNotFound
		}
		return err
	}

	if client.Protected {
		l.Warn("attempted to delete protected client", "client_id", clientID)
		return ErrClientProtected
	}

	if err := s.Store.Clients().DeleteClient(ctx, clientID); err != nil {
		l.Error("failed to delete client", "error", err, "client_id", clientID)
		return err
	}

	l.Info("client deleted successfully", "client_id", clientID)
	return nil
}

type OwnerService struct {
	Store store.Store
}

// CreateOwner registers a resource owner. An empty id generates one.
func (s *OwnerService) CreateOwner(ctx context.Context, id, name string) (domain.ResourceOwner, error) {
	if id == "" {
		id = idx.New().String()
	}

	now := time.Now().UTC()
	o := domain.ResourceOwner{ID: id, Name: name, CreatedAt: now, UpdatedAt: now}
	if err := s.Store.Owners().CreateOwner(ctx, o); err != nil {
		slogx.FromContext(ctx).Error("failed to create resource owner", "error", err, "owner_id", id)
		return domain.ResourceOwner{}, err
	}

	slogx.FromContext(ctx).Info("resource owner created", "owner_id", id)
	return o, nil
}

func (s *OwnerService) ListOwners(ctx context.Context) ([]domain.ResourceOwner, error) {
	return s.Store.Owners().ListOwners(ctx)
}
