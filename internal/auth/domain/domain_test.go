package domain_test

import (
	"net/url"
	"testing"
	"time"

	"github.com/aussiebroadwan/assertgrant/internal/auth/domain"
	"github.com/stretchr/testify/require"
)

func TestNormalizeScopes(t *testing.T) {
	require.Equal(t, []string{"a", "b"}, domain.NormalizeScopes([]string{"b", "a", "b", " ", ""}))
	require.Nil(t, domain.NormalizeScopes(nil))
	require.Nil(t, domain.NormalizeScopes([]string{" ", ""}))
	require.Nil(t, domain.ParseScopes("   "))
	require.Nil(t, domain.ParseScopes(""))
	require.Equal(t, []string{"read", "write"}, domain.ParseScopes(" read  write "))
}

func TestAccessTokenLifetime(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tok := domain.AccessToken{IssuedAt: now, ExpiresAt: now.Add(15 * time.Minute)}

	require.Equal(t, 15*time.Minute, tok.ExpiresIn(now))
	require.True(t, tok.Active(now))
	require.False(t, tok.Active(now.Add(15*time.Minute)))
	require.Zero(t, tok.ExpiresIn(now.Add(time.Hour)))
	require.False(t, tok.HasRefreshToken())

	revoked := now
	tok.RevokedAt = &revoked
	require.False(t, tok.Active(now))
}

func TestNewGrantRequest(t *testing.T) {
	req := domain.NewGrantRequest(url.Values{
		"assertion":      {" eyJ.x.y "},
		"assertion_type": {domain.AssertionTypeJWTBearer},
		"scope":          {"read"},
		"client_id":      {"client-42"},
	})
	require.Equal(t, "eyJ.x.y", req.Assertion)
	require.Equal(t, domain.AssertionTypeJWTBearer, req.AssertionType)
	require.Equal(t, "read", req.Scope)
	require.Equal(t, "client-42", req.ClientID)
}

func TestVerifiedAssertionAccessors(t *testing.T) {
	a := domain.VerifiedAssertion{Claims: map[string]any{"iss": "client-42", "sub": 7.0}}
	require.Equal(t, "client-42", a.Issuer())
	require.Empty(t, a.Subject(), "non-string claims read as empty")
}

func TestGrantOutcome(t *testing.T) {
	ok := domain.Granted(domain.AccessToken{Token: "t"}, false)
	require.True(t, ok.OK())
	require.Nil(t, ok.Err)

	bad := domain.Rejected(&domain.GrantError{Code: domain.CodeInvalidScope, Description: "nope"})
	require.False(t, bad.OK())
	require.Nil(t, bad.Token)
	require.EqualError(t, bad.Err, "invalid_scope: nope")
}
