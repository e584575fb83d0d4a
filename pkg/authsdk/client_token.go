package authsdk

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// AssertionGrantRequest carries the optional parameters of an assertion
// exchange. Assertion is required.
type AssertionGrantRequest struct {
	Assertion string
	Scopes    []string

	// ClientID is only needed when the server does not derive the client
	// from the assertion issuer.
	ClientID string

	// Legacy sends grant_type=assertion with an explicit assertion_type
	// instead of the RFC 7523 grant type URI.
	Legacy bool
}

// AssertionGrant exchanges a signed JWT for an access token.
func (c *SDKClient) AssertionGrant(ctx context.Context, in AssertionGrantRequest) (*TokenResponse, error) {
	data := url.Values{
		"grant_type": {GrantTypeJWTBearer},
		"assertion":  {in.Assertion},
	}
	if in.Legacy {
		data.Set("grant_type", GrantTypeAssertion)
		data.Set("assertion_type", GrantTypeJWTBearer)
	}
	if len(in.Scopes) > 0 {
		data.Set("scope", strings.Join(in.Scopes, " "))
	}
	if in.ClientID != "" {
		data.Set("client_id", in.ClientID)
	}

	resp, err := c.postForm(ctx, "/v1/oauth2/token", data, nil)
	if err != nil {
		return nil, err
	}

	var tokenResp TokenResponse
	if err := decodeJSON(resp, &tokenResp, http.StatusOK); err != nil {
		return nil, err
	}
	return &tokenResp, nil
}

// Introspect asks the server whether token is active (RFC 7662).
func (c *SDKClient) Introspect(ctx context.Context, token string) (*IntrospectionResponse, error) {
	headers := map[string]string{}
	if c.IntrospectionSecret != "" {
		headers["Authorization"] = "Bearer " + c.IntrospectionSecret
	}

	resp, err := c.postForm(ctx, "/v1/oauth2/introspect", url.Values{"token": {token}}, headers)
	if err != nil {
		return nil, err
	}

	var out IntrospectionResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// RevokeToken revokes an access token (RFC 7009). Unknown tokens are not an error.
func (c *SDKClient) RevokeToken(ctx context.Context, token string) error {
	resp, err := c.postForm(ctx, "/v1/oauth2/revoke", url.Values{"token": {token}}, nil)
	if err != nil {
		return err
	}
	return checkStatus(resp, http.StatusOK)
}
