package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/assertgrant/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers implement this.
// It exposes sub-repositories so a transaction-scoped Store hands out the
// same repos bound to the transaction.
type Store interface {
	Clients() Clients
	Owners() Owners
	AccessTokens() AccessTokens

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, committing when fn returns nil
	// and rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Clients interface {
	// GetClientByID fetches a client; ErrNotFound when missing.
	GetClientByID(ctx context.Context, id string) (domain.Client, error)

	// ListClients returns all clients ordered by creation date (newest first).
	ListClients(ctx context.Context) ([]domain.Client, error)

	// CreateClient inserts a new client; ErrAlreadyExists on a duplicate id.
	CreateClient(ctx context.Context, c domain.Client) error

	UpdateClientScopes(ctx context.Context, clientID string, scopes []string) error

	// DeleteClient cascades to access_tokens (per schema).
	DeleteClient(ctx context.Context, clientID string) error
}

type Owners interface {
	GetOwnerByID(ctx context.Context, id string) (domain.ResourceOwner, error)
	ListOwners(ctx context.Context) ([]domain.ResourceOwner, error)
	CreateOwner(ctx context.Context, o domain.ResourceOwner) error
}

type AccessTokens interface {
	// FindActiveAccessToken returns the newest unrevoked token for the exact
	// client, owner and scope set that is still valid at now.
	FindActiveAccessToken(ctx context.Context, clientID, ownerID string, scopes []string, now time.Time) (domain.AccessToken, error)

	CreateAccessToken(ctx context.Context, t domain.AccessToken) error

	// GetAccessToken looks a token up by its opaque value.
	GetAccessToken(ctx context.Context, token string) (domain.AccessToken, error)

	// RevokeAccessToken sets revoked_at; revoking twice keeps the first time.
	RevokeAccessToken(ctx context.Context, token string, at time.Time) error

	// DeleteStaleAccessTokens removes tokens that expired or were revoked
	// before cutoff and returns how many went.
	DeleteStaleAccessTokens(ctx context.Context, cutoff time.Time) (int64, error)
}
