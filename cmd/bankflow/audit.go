package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bankflowhq/bankflow/internal/cli"
)

func auditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Show the action audit log",
		RunE: func(cmd *cobra.Command, _ []string) error {
			limit, _ := cmd.Flags().GetInt("limit")

			store, err := initStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			entries, err := store.GetAuditLog(cmd.Context(), limit)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatAuditTable(entries))
			return nil
		},
	}

	cmd.Flags().Int("limit", 100, "maximum rows to show")
	return cmd
}
