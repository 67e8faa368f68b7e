package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bankflowhq/bankflow/internal/cli"
	"github.com/bankflowhq/bankflow/internal/scoring"
)

func thresholdCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "threshold",
		Short: "Inspect or move the approval threshold",
		Long: `The risk threshold is the score at which an application becomes
approvable. Scores within 400 points below it fall into the review
band. The threshold must stay between ` +
			strconv.Itoa(scoring.MinRiskThreshold) + ` and ` + strconv.Itoa(scoring.MaxRiskThreshold) + `.`,
	}

	cmd.AddCommand(thresholdGetCmd())
	cmd.AddCommand(thresholdSetCmd())
	return cmd
}

func thresholdGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Show the current threshold",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := initStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			threshold, err := store.GetRiskThreshold(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo(fmt.Sprintf("Risk threshold: %d", threshold)))
			return nil
		},
	}
}

func thresholdSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <value>",
		Short: "Move the threshold",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid threshold %q: %w", args[0], err)
			}

			store, err := initStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.SetRiskThreshold(cmd.Context(), value); err != nil {
				return err
			}

			actor, _ := cmd.Flags().GetString("actor")
			if err := store.AppendAudit(cmd.Context(), actor, "threshold_changed",
				fmt.Sprintf("threshold=%d", value)); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Risk threshold set to %d", value)))
			return nil
		},
	}

	cmd.Flags().String("actor", "", "staff member making the change")
	_ = cmd.MarkFlagRequired("actor")
	return cmd
}
