package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bankflowhq/bankflow/internal/model"
)

// ReviewChoice is the action a manager picks for one pending file.
type ReviewChoice string

// Review choices.
const (
	ReviewApprove ReviewChoice = "approve"
	ReviewReject  ReviewChoice = "reject"
	ReviewSkip    ReviewChoice = "skip"
	ReviewQuit    ReviewChoice = "quit"
)

// Prompter drives interactive confirmation flows on a terminal.
type Prompter struct {
	reader *InputReader
	writer io.Writer
}

// NewPrompter creates a prompter over the given streams, defaulting to
// stdin/stdout.
func NewPrompter(reader io.Reader, writer io.Writer) *Prompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}

	return &Prompter{
		reader: NewInputReader(reader),
		writer: writer,
	}
}

// Confirm asks a yes/no question and returns the answer. An empty answer
// means no.
func (p *Prompter) Confirm(ctx context.Context, question string) (bool, error) {
	if _, err := fmt.Fprint(p.writer, FormatPrompt(question+" [y/N]")); err != nil {
		return false, fmt.Errorf("failed to write prompt: %w", err)
	}

	line, err := p.reader.ReadLine(ctx)
	if err != nil {
		return false, err
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

// ReviewPending shows one queued file and asks the manager what to do with
// it. Unrecognized input repeats the prompt.
func (p *Prompter) ReviewPending(ctx context.Context, entry model.HistoryEntry) (ReviewChoice, error) {
	content := fmt.Sprintf("%s %s\n%s %d\n%s %d\n%s %s\n%s %s",
		BoldStyle.Render("Applicant:"), entry.MaskedID,
		BoldStyle.Render("Amount:"), entry.Amount,
		BoldStyle.Render("Score:"), entry.Score,
		BoldStyle.Render("Officer:"), entry.Officer,
		BoldStyle.Render("Queued:"), entry.CreatedAt.Format("2006-01-02 15:04"))

	if _, err := fmt.Fprintln(p.writer, RenderBox("Pending File", content)); err != nil {
		return ReviewQuit, fmt.Errorf("failed to write file box: %w", err)
	}

	for {
		if _, err := fmt.Fprint(p.writer, FormatPrompt("[a]pprove / [r]eject / [s]kip / [q]uit")); err != nil {
			return ReviewQuit, fmt.Errorf("failed to write prompt: %w", err)
		}

		line, err := p.reader.ReadLine(ctx)
		if err != nil {
			return ReviewQuit, err
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "a", "approve":
			return ReviewApprove, nil
		case "r", "reject":
			return ReviewReject, nil
		case "s", "skip", "":
			return ReviewSkip, nil
		case "q", "quit":
			return ReviewQuit, nil
		}

		if _, err := fmt.Fprintln(p.writer, FormatWarning("Please answer a, r, s, or q.")); err != nil {
			return ReviewQuit, fmt.Errorf("failed to write retry notice: %w", err)
		}
	}
}
