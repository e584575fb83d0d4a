package main

import (
	"encoding/json"
	"log/slog"
	"os"

	"github.com/aussiebroadwan/assertgrant/internal/auth/app"
	"github.com/aussiebroadwan/assertgrant/internal/auth/store"
	"github.com/aussiebroadwan/assertgrant/pkg/slogx"
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "assertgrant",
		Short:             "OAuth 2.0 JWT bearer assertion grant server",
		Long:              "assertgrant exchanges signed JWT assertions for opaque access tokens (RFC 7523).",
		Version:           app.BuildVersion,
		SilenceUsage:      true,
		DisableAutoGenTag: true,
	}

	cmd.AddCommand(
		newServeCommand(),
		newClientsCommand(),
		newOwnersCommand(),
		newAssertionCommand(),
	)

	return cmd
}

// cliLogger logs to stderr so command output can be piped.
func cliLogger(cfg app.Config) *slog.Logger {
	return slogx.New(slogx.Config{
		Service: "assertgrant",
		Version: app.BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  "text",
		Output:  os.Stderr,
	})
}

// withStore loads the configuration, opens the database and hands it to fn.
func withStore(fn func(cmd *cobra.Command, st store.Store) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		cfg, err := app.LoadConfig()
		if err != nil {
			return err
		}

		st, err := app.OpenStore(cfg, cliLogger(cfg))
		if err != nil {
			return err
		}
		defer st.Close()

		return fn(cmd, st)
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
