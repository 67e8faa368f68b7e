package cli

import (
	"fmt"
	"strings"

	"github.com/bankflowhq/bankflow/internal/model"
)

// FormatDecisionResult renders one completed analysis as a boxed summary.
func FormatDecisionResult(maskedID string, amount float64, result *model.DecisionResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n", BoldStyle.Render("Applicant:"), maskedID)
	fmt.Fprintf(&b, "%s %.2f\n", BoldStyle.Render("Amount:"), amount)
	fmt.Fprintf(&b, "%s %d (model %d, threshold %d)\n",
		BoldStyle.Render("Score:"), result.FinalScore, result.RawScore, result.Threshold)
	fmt.Fprintf(&b, "%s %s\n",
		BoldStyle.Render("Decision:"), DecisionStyle(result.Decision).Render(string(result.Decision)))

	if result.Status == model.StatusPendingManager {
		fmt.Fprintf(&b, "%s\n", WarningStyle.Render("File is awaiting manager approval."))
	}

	if len(result.Messages) > 0 {
		b.WriteString("\n" + BoldStyle.Render("Policy notes:") + "\n")
		for _, msg := range result.Messages {
			fmt.Fprintf(&b, "  - %s\n", msg)
		}
	}

	if len(result.Explanation.Effects) > 0 {
		b.WriteString("\n" + BoldStyle.Render("Key factors:") + "\n")
		b.WriteString(FormatEffects(result.Explanation.Effects))
	}

	fmt.Fprintf(&b, "\n%s %.2f/month, %.2f total",
		BoldStyle.Render("Payment plan:"),
		result.Payment.MonthlyPayment, result.Payment.TotalPayment)

	return RenderBox("Credit Analysis", b.String())
}

// FormatEffects renders ranked feature effects, one per line.
func FormatEffects(effects model.FeatureEffects) string {
	var b strings.Builder
	for _, effect := range effects {
		style := SuccessStyle
		if effect.Delta < 0 {
			style = ErrorStyle
		}
		fmt.Fprintf(&b, "  %s %s\n", style.Render(fmt.Sprintf("%+5d", effect.Delta)), effect.Feature)
	}
	return b.String()
}

// FormatHistoryTable renders history entries as a plain table.
func FormatHistoryTable(entries []model.HistoryEntry) string {
	if len(entries) == 0 {
		return SubtleStyle.Render("No records found.")
	}

	var b strings.Builder
	b.WriteString(TableHeaderStyle.Render(fmt.Sprintf("%-19s %-13s %-10s %6s %-20s %-16s %s",
		"DATE", "APPLICANT", "AMOUNT", "SCORE", "DECISION", "STATUS", "OFFICER")))
	b.WriteString("\n")

	for _, entry := range entries {
		line := fmt.Sprintf("%-19s %-13s %-10d %6d %-20s %-16s %s",
			entry.CreatedAt.Format("2006-01-02 15:04"),
			entry.MaskedID,
			entry.Amount,
			entry.Score,
			DecisionStyle(entry.Decision).Render(fmt.Sprintf("%-20s", entry.Decision)),
			entry.Status,
			entry.Officer)
		b.WriteString(line + "\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// FormatPendingTable renders the manager approval queue.
func FormatPendingTable(entries []model.HistoryEntry) string {
	if len(entries) == 0 {
		return SubtleStyle.Render("No files awaiting approval.")
	}

	var b strings.Builder
	b.WriteString(TableHeaderStyle.Render(fmt.Sprintf("%-36s %-13s %-10s %6s %s",
		"ENTRY", "APPLICANT", "AMOUNT", "SCORE", "QUEUED")))
	b.WriteString("\n")

	for _, entry := range entries {
		fmt.Fprintf(&b, "%-36s %-13s %-10d %6d %s\n",
			entry.ID,
			entry.MaskedID,
			entry.Amount,
			entry.Score,
			entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	return strings.TrimRight(b.String(), "\n")
}

// FormatAuditTable renders audit log entries newest first.
func FormatAuditTable(entries []model.AuditEntry) string {
	if len(entries) == 0 {
		return SubtleStyle.Render("Audit log is empty.")
	}

	var b strings.Builder
	b.WriteString(TableHeaderStyle.Render(fmt.Sprintf("%-19s %-24s %-20s %s",
		"TIME", "ACTOR", "ACTION", "DETAILS")))
	b.WriteString("\n")

	for _, entry := range entries {
		fmt.Fprintf(&b, "%-19s %-24s %-20s %s\n",
			entry.Timestamp.Format("2006-01-02 15:04"),
			entry.Actor,
			entry.Action,
			entry.Details)
	}

	return strings.TrimRight(b.String(), "\n")
}

// FormatUserTable renders staff accounts.
func FormatUserTable(users []model.User) string {
	if len(users) == 0 {
		return SubtleStyle.Render("No staff accounts.")
	}

	var b strings.Builder
	b.WriteString(TableHeaderStyle.Render(fmt.Sprintf("%-30s %-24s %-8s %s",
		"EMAIL", "NAME", "ROLE", "CREATED")))
	b.WriteString("\n")

	for _, user := range users {
		fmt.Fprintf(&b, "%-30s %-24s %-8s %s\n",
			user.Email,
			user.Name,
			user.Role,
			user.CreatedAt.Format("2006-01-02"))
	}

	return strings.TrimRight(b.String(), "\n")
}
