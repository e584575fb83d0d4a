package service_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/assertgrant/internal/auth/domain"
	"github.com/aussiebroadwan/assertgrant/internal/auth/service"
	"github.com/aussiebroadwan/assertgrant/internal/auth/store"
	"github.com/aussiebroadwan/assertgrant/internal/auth/store/drivers/sqlite"
	"github.com/aussiebroadwan/assertgrant/pkg/jwtx"
	"github.com/aussiebroadwan/assertgrant/pkg/lockx"
	"github.com/stretchr/testify/require"
)

const testSecret = "assertion-secret-0123456789abcdef"

func newStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore(filepath.Join(t.TempDir(), "grant.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func secretKey(t *testing.T) *jwtx.Key {
	t.Helper()
	k, err := jwtx.NewSecretKey([]byte(testSecret))
	require.NoError(t, err)
	return k
}

func mint(t *testing.T, key *jwtx.Key, claims jwtx.AssertionClaims) string {
	t.Helper()
	tok, err := jwtx.SignAssertion(key, "", claims.Map(time.Now()))
	require.NoError(t, err)
	return tok
}

func assertionFor(iss string) jwtx.AssertionClaims {
	return jwtx.AssertionClaims{Issuer: iss}
}

func testConfig(key *jwtx.Key) service.GrantConfig {
	return service.GrantConfig{
		Key:                 key,
		UseIssuerAsClientID: true,
		Scopes:              service.ScopePolicy{Server: []string{"read", "write"}},
		Lifetime:            service.LifetimePolicy{Default: 15 * time.Minute, Max: time.Hour},
		ReuseAccessToken:    true,
	}
}

// grantFixture is a grant service over a real store with client "client-42"
// (scopes read and write) and owner "u-1" registered.
type grantFixture struct {
	store store.Store
	key   *jwtx.Key
	svc   *service.GrantService
}

func newGrantFixture(t *testing.T, cfg func(*service.GrantConfig)) grantFixture {
	t.Helper()
	ctx := context.Background()

	st := newStore(t)
	key := secretKey(t)

	clients := &service.ClientService{Store: st}
	_, err := clients.CreateClient(ctx, service.NewClient{ID: "client-42", Name: "Client 42", Scopes: []string{"read", "write"}})
	require.NoError(t, err)

	owners := &service.OwnerService{Store: st}
	_, err = owners.CreateOwner(ctx, "u-1", "User One")
	require.NoError(t, err)

	c := testConfig(key)
	if cfg != nil {
		cfg(&c)
	}

	svc, err := service.NewGrantService(c, st, service.ContextOwnerResolver{}, lockx.NewLocal(), nil)
	require.NoError(t, err)

	return grantFixture{store: st, key: key, svc: svc}
}

func ownerCtx(id string) context.Context {
	return service.WithResourceOwner(context.Background(), domain.ResourceOwner{ID: id})
}
