package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/bankflowhq/bankflow/internal/cli"
	"github.com/bankflowhq/bankflow/internal/model"
	"github.com/bankflowhq/bankflow/internal/report"
	"github.com/bankflowhq/bankflow/internal/scoring"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render a PDF analysis report",
		Long: `Run a what-if analysis for one applicant and write the result as
a PDF. Nothing is recorded: report runs do not touch the history, the
audit log, or the daily query limit.`,
		RunE: runReport,
	}

	addIntakeFlags(cmd)
	cmd.Flags().Int("top-k", scoring.DefaultTopK, "number of explanation factors to include")
	cmd.Flags().String("out", "", "output PDF path")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func runReport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	eng, store, err := initEngine(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	req := requestFromFlags(cmd)
	req.TopK, _ = cmd.Flags().GetInt("top-k")

	result, err := eng.Analyze(ctx, req)
	if err != nil {
		return err
	}

	out, _ := cmd.Flags().GetString("out")
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer func() { _ = f.Close() }()

	data := report.Data{
		GeneratedAt:    time.Now(),
		MaskedID:       model.MaskNationalID(req.NationalID),
		Officer:        req.Officer,
		Result:         result,
		Amount:         req.Amount,
		DurationMonths: req.Record.Duration,
		InterestRate:   req.InterestRate,
	}
	if err := report.Generate(f, data); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Report written to "+out))
	return nil
}
