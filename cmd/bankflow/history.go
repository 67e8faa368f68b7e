package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bankflowhq/bankflow/internal/cli"
	"github.com/bankflowhq/bankflow/internal/model"
	"github.com/bankflowhq/bankflow/internal/service"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past decisions",
		RunE:  runHistory,
	}

	cmd.Flags().String("from", "", "earliest decision date (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "latest decision date (YYYY-MM-DD)")
	cmd.Flags().String("officer", "", "filter by officer")
	cmd.Flags().String("status", "", "filter by status (COMPLETED, PENDING_MANAGER)")
	cmd.Flags().Int("limit", 50, "maximum rows to show")

	return cmd
}

func runHistory(cmd *cobra.Command, _ []string) error {
	filter, err := filterFromFlags(cmd)
	if err != nil {
		return err
	}

	store, err := initStorage(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	entries, err := store.GetHistory(cmd.Context(), filter)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatHistoryTable(entries))
	return nil
}

func filterFromFlags(cmd *cobra.Command) (service.HistoryFilter, error) {
	flags := cmd.Flags()

	filter := service.HistoryFilter{}
	filter.Officer, _ = flags.GetString("officer")
	filter.Limit, _ = flags.GetInt("limit")

	status, _ := flags.GetString("status")
	filter.Status = model.Status(status)

	from, _ := flags.GetString("from")
	if from != "" {
		start, err := time.Parse("2006-01-02", from)
		if err != nil {
			return filter, fmt.Errorf("invalid --from date %q: %w", from, err)
		}
		filter.StartDate = &start
	}

	to, _ := flags.GetString("to")
	if to != "" {
		end, err := time.Parse("2006-01-02", to)
		if err != nil {
			return filter, fmt.Errorf("invalid --to date %q: %w", to, err)
		}
		// Include the whole closing day.
		end = end.Add(24*time.Hour - time.Nanosecond)
		filter.EndDate = &end
	}

	return filter, nil
}
