package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bankflowhq/bankflow/internal/cli"
	"github.com/bankflowhq/bankflow/internal/model"
	"github.com/bankflowhq/bankflow/internal/scoring"
)

func decideCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decide",
		Short: "Score one credit application and record the decision",
		Long: `Run the full analysis for one applicant: model score, policy
adjustments, classification against the risk threshold, payment plan,
and factor explanation. The outcome is recorded in the history; each
applicant can be queried once per day.`,
		RunE: runDecide,
	}

	addIntakeFlags(cmd)
	cmd.Flags().Int("top-k", scoring.DefaultTopK, "number of explanation factors to show")

	return cmd
}

func runDecide(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	eng, store, err := initEngine(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	req := requestFromFlags(cmd)
	req.TopK, _ = cmd.Flags().GetInt("top-k")

	result, err := eng.Decide(ctx, req)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, cli.FormatDecisionResult(model.MaskNationalID(req.NationalID), req.Amount, result))

	return nil
}
