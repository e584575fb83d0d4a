/*
Package authsdk provides a client SDK and the shared wire types for the
assertgrant token service.

# Overview

A client proves its identity by signing a JWT (the assertion) and exchanging
it at the token endpoint for a short-lived opaque access token. No refresh
token is ever issued; when the access token expires the client signs a new
assertion.

	client := authsdk.NewSDKClient("https://auth.example.com")

	tok, err := client.AssertionGrant(ctx, authsdk.AssertionGrantRequest{
		Assertion: signedJWT,
		Scopes:    []string{"read"},
	})

Resource servers validate tokens through introspection, authenticated with a
shared secret:

	client.IntrospectionSecret = os.Getenv("AUTH_INTROSPECTION_SECRET")
	info, err := client.Introspect(ctx, tok.AccessToken)
	if err == nil && info.Active {
		// token is live, info.Sub is the resource owner
	}

# Errors

All server errors come back as *OAuth2Error. Use errors.As to inspect the code:

	var oe *authsdk.OAuth2Error
	if errors.As(err, &oe) && oe.Code == authsdk.ErrorCodeInvalidGrant {
		// assertion rejected, oe.Description says why
	}

The same type is used server-side to render RFC 6749 error bodies.
*/
package authsdk
