package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bankflowhq/bankflow/internal/cli"
	"github.com/bankflowhq/bankflow/internal/engine"
	"github.com/bankflowhq/bankflow/internal/importer"
)

func batchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Score a workbook of applications",
		Long: `Import an xlsx workbook of applications and score every row.
Batch rows skip the per-applicant explanation and the daily query
limit; very large requests with middling scores are rejected outright.`,
		RunE: runBatch,
	}

	cmd.Flags().String("file", "", "xlsx workbook to import")
	cmd.Flags().String("officer", "", "officer attributed to the run")
	cmd.Flags().Bool("progress", true, "show a progress bar")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("officer")

	return cmd
}

func runBatch(cmd *cobra.Command, _ []string) error {
	file, _ := cmd.Flags().GetString("file")
	officer, _ := cmd.Flags().GetString("officer")
	progress, _ := cmd.Flags().GetBool("progress")

	requests, err := importer.ReadFile(file, officer)
	if err != nil {
		return err
	}

	eng, store, err := initEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	interrupts := cli.NewInterruptHandler(os.Stdout)
	ctx := interrupts.HandleInterrupts(cmd.Context())

	results, err := eng.ProcessBatch(ctx, requests, engine.BatchOptions{ShowProgress: progress})
	if err != nil && !interrupts.WasInterrupted() {
		return err
	}

	out := cmd.OutOrStdout()
	var failed int
	for _, result := range results {
		if result.Err != nil {
			failed++
			fmt.Fprintln(out, cli.FormatError(fmt.Sprintf("row %d: %v", result.Index+2, result.Err)))
		}
	}

	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Processed %d of %d applications (%d failed)",
		len(results)-failed, len(requests), failed)))

	return nil
}
