package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/assertgrant/internal/auth/domain"
	"github.com/aussiebroadwan/assertgrant/internal/auth/service"
	"github.com/aussiebroadwan/assertgrant/internal/auth/service/mocks"
	"github.com/aussiebroadwan/assertgrant/pkg/jwtx"
	"github.com/aussiebroadwan/assertgrant/pkg/lockx"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestAuthorizeEndToEnd(t *testing.T) {
	f := newGrantFixture(t, nil)

	// No exp claim: the assertion never expires.
	assertion := mint(t, f.key, jwtx.AssertionClaims{Issuer: "client-42"})

	out := f.svc.Authorize(ownerCtx("u-1"), domain.GrantRequest{
		Assertion:     assertion,
		AssertionType: domain.AssertionTypeJWTBearer,
		Scope:         "read",
	})
	require.True(t, out.OK(), "unexpected error: %v", out.Err)
	require.Nil(t, out.Err)
	require.False(t, out.Reused)

	tok := out.Token
	require.NotEmpty(t, tok.Token)
	require.Equal(t, "client-42", tok.ClientID)
	require.Equal(t, "u-1", tok.ResourceOwnerID)
	require.Equal(t, []string{"read"}, tok.Scopes)
	require.Equal(t, 15*time.Minute, tok.ExpiresAt.Sub(tok.IssuedAt))
	require.False(t, tok.HasRefreshToken())
	require.Empty(t, tok.RefreshToken)

	stored, err := f.store.AccessTokens().GetAccessToken(context.Background(), tok.Token)
	require.NoError(t, err)
	require.Equal(t, tok.ID, stored.ID)
}

func TestAuthorizeReusesLiveToken(t *testing.T) {
	t.Run("reuse enabled", func(t *testing.T) {
		f := newGrantFixture(t, nil)
		req := domain.GrantRequest{Assertion: mint(t, f.key, jwtx.AssertionClaims{Issuer: "client-42"}), Scope: "read write"}

		first := f.svc.Authorize(ownerCtx("u-1"), req)
		require.True(t, first.OK())

		// Scope order does not matter.
		req.Scope = "write read"
		second := f.svc.Authorize(ownerCtx("u-1"), req)
		require.True(t, second.OK())
		require.True(t, second.Reused)
		require.Equal(t, first.Token.Token, second.Token.Token)

		// A different owner gets its own token.
		third := f.svc.Authorize(ownerCtx("u-2"), req)
		require.True(t, third.OK())
		require.NotEqual(t, first.Token.Token, third.Token.Token)
	})

	t.Run("revoked tokens are not reused", func(t *testing.T) {
		f := newGrantFixture(t, nil)
		req := domain.GrantRequest{Assertion: mint(t, f.key, jwtx.AssertionClaims{Issuer: "client-42"})}

		first := f.svc.Authorize(ownerCtx("u-1"), req)
		require.True(t, first.OK())

		tokens := &service.TokenService{Store: f.store}
		require.NoError(t, tokens.Revoke(context.Background(), first.Token.Token))

		second := f.svc.Authorize(ownerCtx("u-1"), req)
		require.True(t, second.OK())
		require.False(t, second.Reused)
		require.NotEqual(t, first.Token.Token, second.Token.Token)
	})

	t.Run("reuse disabled", func(t *testing.T) {
		f := newGrantFixture(t, func(c *service.GrantConfig) { c.ReuseAccessToken = false })
		req := domain.GrantRequest{Assertion: mint(t, f.key, jwtx.AssertionClaims{Issuer: "client-42"})}

		first := f.svc.Authorize(ownerCtx("u-1"), req)
		second := f.svc.Authorize(ownerCtx("u-1"), req)
		require.True(t, first.OK())
		require.True(t, second.OK())
		require.NotEqual(t, first.Token.Token, second.Token.Token)
	})
}

func TestAuthorizeConcurrentRequestsShareToken(t *testing.T) {
	f := newGrantFixture(t, nil)
	req := domain.GrantRequest{Assertion: mint(t, f.key, jwtx.AssertionClaims{Issuer: "client-42"}), Scope: "read"}

	const n = 16
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		values = map[string]int{}
	)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out := f.svc.Authorize(ownerCtx("u-1"), req)
			if !out.OK() {
				t.Errorf("grant failed: %v", out.Err)
				return
			}
			mu.Lock()
			values[out.Token.Token]++
			mu.Unlock()
		}()
	}
	wg.Wait()

	require.Len(t, values, 1, "concurrent grants must agree on one token")
	for _, count := range values {
		require.Equal(t, n, count)
	}
}

func TestAuthorizeScopeNarrowedByClient(t *testing.T) {
	f := newGrantFixture(t, func(c *service.GrantConfig) {
		c.Scopes = service.ScopePolicy{Server: []string{"a", "b", "c"}}
	})
	clients := &service.ClientService{Store: f.store}
	_, err := clients.CreateClient(context.Background(), service.NewClient{ID: "narrow", Scopes: []string{"a"}})
	require.NoError(t, err)

	assertion := mint(t, f.key, jwtx.AssertionClaims{Issuer: "narrow"})

	out := f.svc.Authorize(ownerCtx("u-1"), domain.GrantRequest{Assertion: assertion, Scope: "a b"})
	require.False(t, out.OK())
	require.Equal(t, domain.CodeInvalidScope, out.Err.Code)
	require.Equal(t, domain.ReasonScopeNotAllowed, out.Err.Reason)

	out = f.svc.Authorize(ownerCtx("u-1"), domain.GrantRequest{Assertion: assertion, Scope: "a"})
	require.True(t, out.OK())
	require.Equal(t, []string{"a"}, out.Token.Scopes)
}

func TestAuthorizeFirstFailureWins(t *testing.T) {
	f := newGrantFixture(t, nil)

	valid := mint(t, f.key, jwtx.AssertionClaims{Issuer: "client-42"})
	unknown := mint(t, f.key, jwtx.AssertionClaims{Issuer: "client-404"})

	tests := []struct {
		name   string
		ctx    context.Context
		req    domain.GrantRequest
		code   string
		reason string
		step   string
	}{
		{
			name:   "bad assertion beats everything",
			ctx:    context.Background(),
			req:    domain.GrantRequest{Assertion: "garbage", Scope: "admin"},
			code:   domain.CodeInvalidGrant,
			reason: domain.ReasonInvalid,
			step:   domain.StepAssertion,
		},
		{
			name:   "wrong assertion type",
			ctx:    ownerCtx("u-1"),
			req:    domain.GrantRequest{Assertion: valid, AssertionType: "urn:example:saml"},
			code:   domain.CodeInvalidGrant,
			reason: domain.ReasonUnsupportedType,
			step:   domain.StepAssertion,
		},
		{
			name:   "unknown client beats scope and owner",
			ctx:    context.Background(),
			req:    domain.GrantRequest{Assertion: unknown, Scope: "admin"},
			code:   domain.CodeInvalidClient,
			reason: domain.ReasonUnknownClient,
			step:   domain.StepClient,
		},
		{
			name:   "scope beats owner",
			ctx:    context.Background(),
			req:    domain.GrantRequest{Assertion: valid, Scope: "admin"},
			code:   domain.CodeInvalidScope,
			reason: domain.ReasonScopeNotAllowed,
			step:   domain.StepScope,
		},
		{
			name:   "no resource owner",
			ctx:    context.Background(),
			req:    domain.GrantRequest{Assertion: valid, Scope: "read"},
			code:   domain.CodeInvalidGrant,
			reason: domain.ReasonNoResourceOwner,
			step:   domain.StepResourceOwner,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := f.svc.Authorize(tt.ctx, tt.req)
			require.False(t, out.OK())
			require.Nil(t, out.Token)
			require.Equal(t, tt.code, out.Err.Code)
			require.Equal(t, tt.reason, out.Err.Reason)
			require.Equal(t, tt.step, out.Err.Step)
			require.NotEmpty(t, out.Err.Description)
		})
	}

	t.Run("no token is written on failure", func(t *testing.T) {
		_, err := f.store.AccessTokens().FindActiveAccessToken(context.Background(), "client-42", "u-1", []string{"read"}, time.Now())
		require.Error(t, err)
	})
}

func TestAuthorizeExplicitClientID(t *testing.T) {
	f := newGrantFixture(t, func(c *service.GrantConfig) { c.UseIssuerAsClientID = false })
	assertion := mint(t, f.key, jwtx.AssertionClaims{Issuer: "someone-else"})

	out := f.svc.Authorize(ownerCtx("u-1"), domain.GrantRequest{Assertion: assertion})
	require.False(t, out.OK())
	require.Equal(t, domain.CodeInvalidClient, out.Err.Code)

	out = f.svc.Authorize(ownerCtx("u-1"), domain.GrantRequest{Assertion: assertion, ClientID: "client-42"})
	require.True(t, out.OK())
	require.Equal(t, "client-42", out.Token.ClientID)
}

func TestAuthorizeClientLifetime(t *testing.T) {
	f := newGrantFixture(t, nil)
	clients := &service.ClientService{Store: f.store}
	_, err := clients.CreateClient(context.Background(), service.NewClient{ID: "short", AccessTokenTTL: 5 * time.Minute})
	require.NoError(t, err)
	_, err = clients.CreateClient(context.Background(), service.NewClient{ID: "greedy", AccessTokenTTL: 48 * time.Hour})
	require.NoError(t, err)

	out := f.svc.Authorize(ownerCtx("u-1"), domain.GrantRequest{Assertion: mint(t, f.key, jwtx.AssertionClaims{Issuer: "short"})})
	require.True(t, out.OK())
	require.Equal(t, 5*time.Minute, out.Token.ExpiresAt.Sub(out.Token.IssuedAt))

	out = f.svc.Authorize(ownerCtx("u-1"), domain.GrantRequest{Assertion: mint(t, f.key, jwtx.AssertionClaims{Issuer: "greedy"})})
	require.True(t, out.OK())
	require.Equal(t, time.Hour, out.Token.ExpiresAt.Sub(out.Token.IssuedAt), "capped at the max lifetime")
}

func TestAuthorizeDefaultScopes(t *testing.T) {
	f := newGrantFixture(t, func(c *service.GrantConfig) { c.Scopes.Default = []string{"read"} })

	out := f.svc.Authorize(ownerCtx("u-1"), domain.GrantRequest{Assertion: mint(t, f.key, jwtx.AssertionClaims{Issuer: "client-42"})})
	require.True(t, out.OK())
	require.Equal(t, []string{"read"}, out.Token.Scopes)
}

func TestAuthorizeSubjectOwner(t *testing.T) {
	st := newStore(t)
	key := secretKey(t)
	ctx := context.Background()

	_, err := (&service.ClientService{Store: st}).CreateClient(ctx, service.NewClient{ID: "client-42"})
	require.NoError(t, err)
	_, err = (&service.OwnerService{Store: st}).CreateOwner(ctx, "u-1", "")
	require.NoError(t, err)

	svc, err := service.NewGrantService(testConfig(key), st, &service.SubjectOwnerResolver{Owners: st.Owners()}, nil, nil)
	require.NoError(t, err)

	out := svc.Authorize(ctx, domain.GrantRequest{Assertion: mint(t, key, jwtx.AssertionClaims{Issuer: "client-42", Subject: "u-1"})})
	require.True(t, out.OK())
	require.Equal(t, "u-1", out.Token.ResourceOwnerID)

	out = svc.Authorize(ctx, domain.GrantRequest{Assertion: mint(t, key, jwtx.AssertionClaims{Issuer: "client-42", Subject: "u-404"})})
	require.False(t, out.OK())
	require.Equal(t, domain.ReasonNoResourceOwner, out.Err.Reason)
}

type recordingObserver struct {
	outcomes []domain.GrantOutcome
}

func (r *recordingObserver) ObserveGrant(out domain.GrantOutcome, _ time.Duration) {
	r.outcomes = append(r.outcomes, out)
}

func TestAuthorizeInternalFault(t *testing.T) {
	ctrl := gomock.NewController(t)
	key := secretKey(t)

	clients := mocks.NewMockClientFinder(ctrl)
	clients.EXPECT().GetClientByID(gomock.Any(), "client-42").
		Return(domain.Client{}, errors.New("database is locked"))

	owners := mocks.NewMockResourceOwnerResolver(ctrl)
	owners.EXPECT().ResolveOwner(gomock.Any()).Return(&domain.ResourceOwner{ID: "u-1"}, nil)

	obs := &recordingObserver{}
	svc := &service.GrantService{
		Assertions: service.NewAssertionVerifier(jwtx.NewAssertionVerifier(key)),
		Clients:    &service.IssuerClientResolver{Clients: clients},
		Scopes:     service.ScopePolicy{Server: []string{"read"}},
		Owners:     owners,
		Observer:   obs,
	}

	out := svc.Authorize(context.Background(), domain.GrantRequest{
		Assertion: mint(t, key, jwtx.AssertionClaims{Issuer: "client-42"}),
	})
	require.False(t, out.OK())
	require.Equal(t, domain.CodeInvalidGrant, out.Err.Code)
	require.Equal(t, domain.ReasonServerError, out.Err.Reason)
	require.Equal(t, domain.StepClient, out.Err.Step)
	require.Equal(t, "the grant could not be processed", out.Err.Description)

	require.Len(t, obs.outcomes, 1)
	require.Equal(t, out, obs.outcomes[0])
}

func TestAuthorizeLockFailure(t *testing.T) {
	f := newGrantFixture(t, nil)
	f.svc.Tokens.Locker = lockx.Multi(failingLocker{})

	out := f.svc.Authorize(ownerCtx("u-1"), domain.GrantRequest{Assertion: mint(t, f.key, jwtx.AssertionClaims{Issuer: "client-42"})})
	require.False(t, out.OK())
	require.Equal(t, domain.StepAccessToken, out.Err.Step)
	require.Equal(t, domain.ReasonServerError, out.Err.Reason)
}

type failingLocker struct{}

func (failingLocker) Lock(context.Context, string) (lockx.Unlock, error) {
	return nil, lockx.ErrNotAcquired
}

func TestNewGrantServiceValidatesConfig(t *testing.T) {
	st := newStore(t)

	_, err := service.NewGrantService(service.GrantConfig{}, st, service.ContextOwnerResolver{}, nil, nil)
	require.ErrorIs(t, err, service.ErrInvalidConfig)

	cfg := testConfig(secretKey(t))
	_, err = service.NewGrantService(cfg, st, nil, nil, nil)
	require.ErrorIs(t, err, service.ErrInvalidConfig)

	cfg.Lifetime.Default = 0
	_, err = service.NewGrantService(cfg, st, service.ContextOwnerResolver{}, nil, nil)
	require.ErrorIs(t, err, service.ErrInvalidConfig)

	cfg = testConfig(secretKey(t))
	cfg.Lifetime.Max = 0
	_, err = service.NewGrantService(cfg, st, service.ContextOwnerResolver{}, nil, nil)
	require.ErrorIs(t, err, service.ErrInvalidConfig)
}
