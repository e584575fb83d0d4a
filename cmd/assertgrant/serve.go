package main

import (
	"github.com/aussiebroadwan/assertgrant/internal/auth/app"
	"github.com/spf13/cobra"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the token endpoint",
		Long:  "Serve the token, revoke and introspection endpoints using configuration from the environment (and .env).",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := app.LoadConfig()
			if err != nil {
				return err
			}

			application, err := app.New(cfg, app.NewLogger(cfg))
			if err != nil {
				return err
			}
			return application.Run()
		},
	}
}
