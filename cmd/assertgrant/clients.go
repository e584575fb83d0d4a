package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/aussiebroadwan/assertgrant/internal/auth/service"
	"github.com/aussiebroadwan/assertgrant/internal/auth/store"
	"github.com/spf13/cobra"
)

func newClientsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clients",
		Short: "Manage registered clients",
		Long:  "A client's id is the value it sends as the assertion issuer.",
	}

	cmd.AddCommand(
		newClientsCreateCommand(),
		newClientsListCommand(),
		newClientsScopesCommand(),
		newClientsDeleteCommand(),
	)

	return cmd
}

func newClientsCreateCommand() *cobra.Command {
	var in service.NewClient

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a client",
		Args:  cobra.NoArgs,
		RunE: withStore(func(cmd *cobra.Command, st store.Store) error {
			svc := &service.ClientService{Store: st}
			c, err := svc.CreateClient(cmd.Context(), in)
			if err != nil {
				return err
			}
			return printJSON(cmd, c)
		}),
	}

	cmd.Flags().StringVar(&in.ID, "id", "", "client id, matched against the assertion issuer (generated when empty)")
	cmd.Flags().StringVar(&in.Name, "name", "", "display name")
	cmd.Flags().StringSliceVar(&in.Scopes, "scopes", nil, "scopes the client may request (empty allows every server scope)")
	cmd.Flags().DurationVar(&in.AccessTokenTTL, "ttl", 0, "access token lifetime override")
	cmd.Flags().BoolVar(&in.Protected, "protected", false, "refuse deletion")

	return cmd
}

func newClientsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List clients",
		Args:  cobra.NoArgs,
		RunE: withStore(func(cmd *cobra.Command, st store.Store) error {
			svc := &service.ClientService{Store: st}
			clients, err := svc.ListClients(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSCOPES\tTTL\tPROTECTED\tCREATED")
			for _, c := range clients {
				ttl := "-"
				if c.AccessTokenTTL > 0 {
					ttl = c.AccessTokenTTL.String()
				}
				fmt.Fprintf(w, "%s\t%s\t%v\t%s\t%t\t%s\n",
					c.ID, c.Name, c.Scopes, ttl, c.Protected, c.CreatedAt.Format(time.RFC3339))
			}
			return w.Flush()
		}),
	}
}

func newClientsScopesCommand() *cobra.Command {
	var scopes []string

	cmd := &cobra.Command{
		Use:   "scopes <id>",
		Short: "Replace a client's allowed scopes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(cmd *cobra.Command, st store.Store) error {
				svc := &service.ClientService{Store: st}
				if err := svc.UpdateClientScopes(cmd.Context(), args[0], scopes); err != nil {
					return err
				}
				cmd.Printf("Client %s scopes set to %v\n", args[0], scopes)
				return nil
			})(cmd, args)
		},
	}

	cmd.Flags().StringSliceVar(&scopes, "scopes", nil, "new scope list")

	return cmd
}

func newClientsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a client and its tokens",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(cmd *cobra.Command, st store.Store) error {
				svc := &service.ClientService{Store: st}
				if err := svc.DeleteClient(cmd.Context(), args[0]); err != nil {
					return err
				}
				cmd.Printf("Client %s deleted\n", args[0])
				return nil
			})(cmd, args)
		},
	}
}
