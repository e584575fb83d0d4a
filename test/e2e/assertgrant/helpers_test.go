package assertgrant_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/aussiebroadwan/assertgrant/pkg/authsdk"
	"github.com/aussiebroadwan/assertgrant/pkg/jwtx"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Common constants and helper functions for assertgrant end-to-end tests.
 * This includes container setup, registry seeding and assertion minting.
 */

const (
	testImageName = "assertgrant-test:latest"

	assertionSecret     = "e2e-assertion-secret-0123456789abcdef"
	introspectionSecret = "e2e-introspection-secret"

	clientID = "client-42"
	ownerID  = "u-1"
)

// TestMain manages the test lifecycle, builds the Docker image once before
// all tests and cleans it up after all tests complete.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building assertgrant Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up assertgrant Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/assertgrant/Dockerfile",
		"../../../")
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // Ignore errors - image might not exist
}

// setupContainer starts assertgrant with env layered over the defaults,
// registers client-42 (scopes read, write) and owner u-1, and returns the
// base URL.
func setupContainer(t *testing.T, env map[string]string) string {
	t.Helper()
	ctx := context.Background()

	vars := map[string]string{
		"AUTH_JWT_SECRET":           assertionSecret,
		"AUTH_SCOPES":               "read write admin",
		"AUTH_INTROSPECTION_SECRET": introspectionSecret,
		"ENV":                       "test",
		"LOG_LEVEL":                 "info",
		"LOG_FORMAT":                "json",
	}
	for k, v := range env {
		vars[k] = v
	}

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env:          vars,
		WaitingFor: wait.ForHTTP("/readyz").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	execCLI(t, container, "clients", "create", "--id", clientID, "--name", "E2E Client", "--scopes", "read,write")
	execCLI(t, container, "owners", "create", "--id", ownerID, "--name", "E2E Owner")

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	return fmt.Sprintf("http://%s:%s", host, mappedPort.Port())
}

// execCLI runs the assertgrant binary inside the container against the
// same database the server uses.
func execCLI(t *testing.T, c testcontainers.Container, args ...string) {
	t.Helper()

	code, out, err := c.Exec(context.Background(), append([]string{"/assertgrant"}, args...))
	require.NoError(t, err)

	if code != 0 {
		b, _ := io.ReadAll(out)
		t.Fatalf("assertgrant %v exited %d: %s", args, code, b)
	}
}

// newClient returns an SDK client that can also introspect.
func newClient(baseURL string) *authsdk.SDKClient {
	client := authsdk.NewSDKClient(baseURL)
	client.IntrospectionSecret = introspectionSecret
	return client
}

// mint signs an assertion with the shared secret.
func mint(t *testing.T, claims jwtx.AssertionClaims) string {
	t.Helper()

	key, err := jwtx.NewSecretKey([]byte(assertionSecret))
	require.NoError(t, err)

	tok, err := jwtx.SignAssertion(key, "", claims.Map(time.Now()))
	require.NoError(t, err)
	return tok
}

func validClaims() jwtx.AssertionClaims {
	return jwtx.AssertionClaims{Issuer: clientID, Subject: ownerID, TTL: time.Minute}
}

// assertTokenResponse verifies a token response has all required fields.
func assertTokenResponse(t *testing.T, resp *authsdk.TokenResponse) {
	t.Helper()
	require.NotNil(t, resp)
	require.NotEmpty(t, resp.AccessToken, "Access token should not be empty")
	require.Equal(t, "bearer", resp.TokenType)
	require.Positive(t, resp.ExpiresIn)
}

// assertOAuth2Error checks the error code an exchange failed with.
func assertOAuth2Error(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)

	var oauthErr *authsdk.OAuth2Error
	require.True(t, errors.As(err, &oauthErr), "expected OAuth2Error, got %T: %v", err, err)
	require.Equal(t, code, oauthErr.Code, oauthErr.Description)
}

// assertHealthy verifies a health check response is OK.
func assertHealthy(t *testing.T, health *authsdk.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
}
