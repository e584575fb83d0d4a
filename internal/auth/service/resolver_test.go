package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aussiebroadwan/assertgrant/internal/auth/domain"
	"github.com/aussiebroadwan/assertgrant/internal/auth/service"
	"github.com/aussiebroadwan/assertgrant/internal/auth/service/mocks"
	"github.com/aussiebroadwan/assertgrant/internal/auth/store"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func withIssuer(iss, sub string) context.Context {
	return service.WithAssertion(context.Background(), domain.VerifiedAssertion{
		Claims: map[string]any{"iss": iss, "sub": sub},
	})
}

func TestIssuerClientResolver(t *testing.T) {
	t.Parallel()

	t.Run("resolves client from iss", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		finder := mocks.NewMockClientFinder(ctrl)
		finder.EXPECT().GetClientByID(gomock.Any(), "client-42").
			Return(domain.Client{ID: "client-42"}, nil)

		r := service.NewClientResolver(true, finder)
		c, err := r.ResolveClient(withIssuer("client-42", ""), domain.GrantRequest{ClientID: "ignored"})
		require.NoError(t, err)
		require.NotNil(t, c)
		require.Equal(t, "client-42", c.ID)
	})

	t.Run("unknown client is none", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		finder := mocks.NewMockClientFinder(ctrl)
		finder.EXPECT().GetClientByID(gomock.Any(), "nobody").
			Return(domain.Client{}, store.ErrNotFound)

		r := &service.IssuerClientResolver{Clients: finder}
		c, err := r.ResolveClient(withIssuer("nobody", ""), domain.GrantRequest{})
		require.NoError(t, err)
		require.Nil(t, c)
	})

	t.Run("no assertion or empty iss skips lookup", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		finder := mocks.NewMockClientFinder(ctrl)

		r := &service.IssuerClientResolver{Clients: finder}
		c, err := r.ResolveClient(context.Background(), domain.GrantRequest{})
		require.NoError(t, err)
		require.Nil(t, c)

		c, err = r.ResolveClient(withIssuer("", ""), domain.GrantRequest{})
		require.NoError(t, err)
		require.Nil(t, c)
	})

	t.Run("store failures surface", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		finder := mocks.NewMockClientFinder(ctrl)
		boom := errors.New("disk on fire")
		finder.EXPECT().GetClientByID(gomock.Any(), "client-42").Return(domain.Client{}, boom)

		r := &service.IssuerClientResolver{Clients: finder}
		_, err := r.ResolveClient(withIssuer("client-42", ""), domain.GrantRequest{})
		require.ErrorIs(t, err, boom)
	})
}

func TestExplicitClientResolver(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	finder := mocks.NewMockClientFinder(ctrl)
	finder.EXPECT().GetClientByID(gomock.Any(), "client-7").Return(domain.Client{ID: "client-7"}, nil)

	r := service.NewClientResolver(false, finder)
	require.IsType(t, &service.ExplicitClientResolver{}, r)

	c, err := r.ResolveClient(withIssuer("client-42", ""), domain.GrantRequest{ClientID: "client-7"})
	require.NoError(t, err)
	require.Equal(t, "client-7", c.ID)

	c, err = r.ResolveClient(context.Background(), domain.GrantRequest{})
	require.NoError(t, err)
	require.Nil(t, c)
}

func TestSubjectOwnerResolver(t *testing.T) {
	t.Parallel()

	t.Run("looks up sub", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		owners := mocks.NewMockOwnerFinder(ctrl)
		owners.EXPECT().GetOwnerByID(gomock.Any(), "u-1").Return(domain.ResourceOwner{ID: "u-1"}, nil)

		r := &service.SubjectOwnerResolver{Owners: owners}
		o, err := r.ResolveOwner(withIssuer("client-42", "u-1"))
		require.NoError(t, err)
		require.Equal(t, "u-1", o.ID)
	})

	t.Run("unknown subject is none", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		owners := mocks.NewMockOwnerFinder(ctrl)
		owners.EXPECT().GetOwnerByID(gomock.Any(), "ghost").Return(domain.ResourceOwner{}, store.ErrNotFound)

		r := &service.SubjectOwnerResolver{Owners: owners}
		o, err := r.ResolveOwner(withIssuer("client-42", "ghost"))
		require.NoError(t, err)
		require.Nil(t, o)
	})

	t.Run("missing sub skips lookup", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		r := &service.SubjectOwnerResolver{Owners: mocks.NewMockOwnerFinder(ctrl)}

		o, err := r.ResolveOwner(withIssuer("client-42", ""))
		require.NoError(t, err)
		require.Nil(t, o)
	})
}

func TestContextOwnerResolver(t *testing.T) {
	t.Parallel()

	o, err := service.ContextOwnerResolver{}.ResolveOwner(context.Background())
	require.NoError(t, err)
	require.Nil(t, o)

	o, err = service.ContextOwnerResolver{}.ResolveOwner(ownerCtx("u-1"))
	require.NoError(t, err)
	require.Equal(t, "u-1", o.ID)

	o, err = service.ContextOwnerResolver{}.ResolveOwner(ownerCtx(""))
	require.NoError(t, err)
	require.Nil(t, o)
}

func TestValidateScopes(t *testing.T) {
	t.Parallel()

	server := []string{"a", "b", "c"}

	tests := []struct {
		name      string
		requested string
		client    []string
		want      bool
	}{
		{"blank request", "", []string{"a"}, true},
		{"whitespace request", "   ", nil, true},
		{"subset of client scopes", "a", []string{"a"}, true},
		{"beyond client scopes", "a b", []string{"a"}, false},
		{"client without scopes allows server scopes", "a b", nil, true},
		{"unknown to server", "d", nil, false},
		{"unknown to server even if client lists it", "d", []string{"d"}, false},
		{"control characters", "a\tb", nil, false},
		{"newline", "a\nb", nil, false},
		{"extra spaces", " a  b ", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, service.ValidateScopes(tt.requested, server, tt.client))
		})
	}
}

func TestScopePolicy(t *testing.T) {
	t.Parallel()

	p := service.ScopePolicy{Server: []string{"read", "write"}, Default: []string{"read"}}
	require.NoError(t, p.Validate())

	require.True(t, p.Allows("", nil))
	require.False(t, p.Allows("read", nil), "scopes need a client")
	require.True(t, p.Allows("read", &domain.Client{}))

	require.Equal(t, []string{"read"}, p.Effective(""))
	require.Equal(t, []string{"read", "write"}, p.Effective("write read write"))

	require.ErrorIs(t, service.ScopePolicy{}.Validate(), service.ErrInvalidConfig)
	require.ErrorIs(t, service.ScopePolicy{Server: []string{"read"}, Default: []string{"admin"}}.Validate(), service.ErrInvalidConfig)
}

func TestLifetimePolicy(t *testing.T) {
	t.Parallel()

	p := service.LifetimePolicy{Default: 15 * time.Minute, Max: time.Hour}
	require.NoError(t, p.Validate())

	require.Equal(t, 15*time.Minute, p.For(domain.Client{}))
	require.Equal(t, 5*time.Minute, p.For(domain.Client{AccessTokenTTL: 5 * time.Minute}))
	require.Equal(t, time.Hour, p.For(domain.Client{AccessTokenTTL: 24 * time.Hour}))

	require.ErrorIs(t, service.LifetimePolicy{}.Validate(), service.ErrInvalidConfig)
	require.ErrorIs(t, service.LifetimePolicy{Default: time.Hour}.Validate(), service.ErrInvalidConfig, "an uncapped policy is rejected")
	require.ErrorIs(t, service.LifetimePolicy{Default: time.Hour, Max: time.Minute}.Validate(), service.ErrInvalidConfig)
}
