package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/aussiebroadwan/assertgrant/internal/auth/service"
	"github.com/aussiebroadwan/assertgrant/internal/auth/store"
	"github.com/spf13/cobra"
)

func newOwnersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "owners",
		Short: "Manage resource owners",
		Long:  "Owners are looked up by the assertion subject when AUTH_OWNER_SOURCE=subject.",
	}

	cmd.AddCommand(newOwnersCreateCommand(), newOwnersListCommand())

	return cmd
}

func newOwnersCreateCommand() *cobra.Command {
	var id, name string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a resource owner",
		Args:  cobra.NoArgs,
		RunE: withStore(func(cmd *cobra.Command, st store.Store) error {
			svc := &service.OwnerService{Store: st}
			o, err := svc.CreateOwner(cmd.Context(), id, name)
			if err != nil {
				return err
			}
			return printJSON(cmd, o)
		}),
	}

	cmd.Flags().StringVar(&id, "id", "", "owner id, matched against the assertion subject (generated when empty)")
	cmd.Flags().StringVar(&name, "name", "", "display name")

	return cmd
}

func newOwnersListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List resource owners",
		Args:  cobra.NoArgs,
		RunE: withStore(func(cmd *cobra.Command, st store.Store) error {
			svc := &service.OwnerService{Store: st}
			owners, err := svc.ListOwners(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCREATED")
			for _, o := range owners {
				fmt.Fprintf(w, "%s\t%s\t%s\n", o.ID, o.Name, o.CreatedAt.Format(time.RFC3339))
			}
			return w.Flush()
		}),
	}
}
