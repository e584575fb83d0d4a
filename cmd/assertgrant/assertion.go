package main

import (
	"errors"
	"time"

	"github.com/aussiebroadwan/assertgrant/internal/auth/app"
	"github.com/aussiebroadwan/assertgrant/pkg/authsdk"
	"github.com/aussiebroadwan/assertgrant/pkg/jwtx"
	"github.com/spf13/cobra"
)

func newAssertionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assertion",
		Short: "Client side helpers for testing a deployment",
	}

	cmd.AddCommand(newAssertionMintCommand(), newAssertionExchangeCommand())

	return cmd
}

type mintOptions struct {
	keyFile    string
	passphrase string
	secret     string
	alg        string
	claims     jwtx.AssertionClaims
}

func (o *mintOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.keyFile, "key-file", "", "private key (PEM or JWK) to sign with")
	cmd.Flags().StringVar(&o.passphrase, "passphrase", "", "passphrase for an encrypted key file")
	cmd.Flags().StringVar(&o.secret, "secret", "", "HMAC secret to sign with")
	cmd.Flags().StringVar(&o.alg, "alg", "", "signing algorithm (defaults to the key's)")
	cmd.Flags().StringVar(&o.claims.Issuer, "iss", "", "issuer, usually the client id")
	cmd.Flags().StringVar(&o.claims.Subject, "sub", "", "subject, the resource owner id")
	cmd.Flags().StringVar(&o.claims.Audience, "aud", "", "audience")
	cmd.Flags().DurationVar(&o.claims.TTL, "ttl", 5*time.Minute, "assertion lifetime (0 omits exp)")
}

// key falls back to the server's own AUTH_JWT_* settings when no flag is given.
func (o *mintOptions) key() (*jwtx.Key, error) {
	switch {
	case o.secret != "" && o.keyFile != "":
		return nil, errors.New("--secret and --key-file are mutually exclusive")
	case o.secret != "":
		return jwtx.NewSecretKey([]byte(o.secret))
	case o.keyFile != "":
		return jwtx.LoadKeyFile(o.keyFile, o.passphrase)
	}

	cfg, err := app.LoadConfig()
	if err != nil {
		return nil, err
	}
	return app.LoadAssertionKey(cfg, cliLogger(cfg))
}

func (o *mintOptions) mint() (string, error) {
	key, err := o.key()
	if err != nil {
		return "", err
	}
	if !key.CanSign() {
		return "", errors.New("key cannot sign, a private key or secret is required")
	}
	return jwtx.SignAssertion(key, o.alg, o.claims.Map(time.Now()))
}

func newAssertionMintCommand() *cobra.Command {
	var opts mintOptions

	cmd := &cobra.Command{
		Use:   "mint",
		Short: "Sign an assertion and print it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tok, err := opts.mint()
			if err != nil {
				return err
			}
			cmd.Println(tok)
			return nil
		},
	}
	opts.bind(cmd)

	return cmd
}

func newAssertionExchangeCommand() *cobra.Command {
	var (
		opts      mintOptions
		server    string
		assertion string
		req       authsdk.AssertionGrantRequest
	)

	cmd := &cobra.Command{
		Use:   "exchange",
		Short: "Exchange an assertion for an access token",
		Long:  "Posts an assertion to the token endpoint. Without --assertion one is minted from the signing flags.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req.Assertion = assertion
			if req.Assertion == "" {
				tok, err := opts.mint()
				if err != nil {
					return err
				}
				req.Assertion = tok
			}

			resp, err := authsdk.NewSDKClient(server).AssertionGrant(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd, resp)
		},
	}
	opts.bind(cmd)

	cmd.Flags().StringVar(&server, "server", "http://localhost:8080", "assertgrant base URL")
	cmd.Flags().StringVar(&assertion, "assertion", "", "pre-signed assertion")
	cmd.Flags().StringSliceVar(&req.Scopes, "scope", nil, "scopes to request")
	cmd.Flags().StringVar(&req.ClientID, "client-id", "", "explicit client_id parameter")
	cmd.Flags().BoolVar(&req.Legacy, "legacy", false, "use grant_type=assertion with assertion_type")

	return cmd
}
