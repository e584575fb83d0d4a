package authsdk

import (
	"net/http"
	"strings"
	"time"
)

// SDKClient talks to an assertgrant server: it exchanges signed assertions
// for access tokens and lets resource servers introspect or revoke them.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client

	// IntrospectionSecret is sent as a bearer token to /v1/oauth2/introspect.
	IntrospectionSecret string
}

// NewSDKClient creates a new client with a 10 second request timeout.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}
