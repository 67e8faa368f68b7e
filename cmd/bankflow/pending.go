package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bankflowhq/bankflow/internal/cli"
)

func pendingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pending",
		Short: "List files awaiting manager approval",
		RunE:  runPending,
	}

	cmd.Flags().Bool("review", false, "review each file interactively")
	cmd.Flags().String("actor", "", "manager recording the review decisions")

	return cmd
}

func runPending(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	review, _ := cmd.Flags().GetBool("review")
	actor, _ := cmd.Flags().GetString("actor")

	if review && actor == "" {
		return fmt.Errorf("--review requires --actor")
	}

	eng, store, err := initEngine(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	entries, err := eng.PendingEntries(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !review {
		fmt.Fprintln(out, cli.FormatPendingTable(entries))
		return nil
	}

	prompter := cli.NewPrompter(os.Stdin, out)
	for _, entry := range entries {
		choice, err := prompter.ReviewPending(ctx, entry)
		if err != nil {
			return err
		}

		switch choice {
		case cli.ReviewApprove:
			if err := eng.Finalize(ctx, entry.ID, true, actor); err != nil {
				return err
			}
			fmt.Fprintln(out, cli.FormatSuccess("Approved "+entry.MaskedID))
		case cli.ReviewReject:
			if err := eng.Finalize(ctx, entry.ID, false, actor); err != nil {
				return err
			}
			fmt.Fprintln(out, cli.FormatError("Rejected "+entry.MaskedID))
		case cli.ReviewSkip:
			continue
		case cli.ReviewQuit:
			return nil
		}
	}

	return nil
}

func approveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "approve <entry-id>",
		Short: "Approve a pending file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFinalize(cmd, args[0], true)
		},
	}
	cmd.Flags().String("actor", "", "manager recording the decision")
	_ = cmd.MarkFlagRequired("actor")
	return cmd
}

func rejectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reject <entry-id>",
		Short: "Reject a pending file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFinalize(cmd, args[0], false)
		},
	}
	cmd.Flags().String("actor", "", "manager recording the decision")
	_ = cmd.MarkFlagRequired("actor")
	return cmd
}

func runFinalize(cmd *cobra.Command, entryID string, approve bool) error {
	ctx := cmd.Context()
	actor, _ := cmd.Flags().GetString("actor")

	eng, store, err := initEngine(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := eng.Finalize(ctx, entryID, approve, actor); err != nil {
		return err
	}

	verdict := "rejected"
	if approve {
		verdict = "approved"
	}
	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Entry %s %s", entryID, verdict)))
	return nil
}
