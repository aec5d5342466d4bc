package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/finchwatch/finch/internal/model"
)

// RenderDetections writes a styled table of recurring-charge detections.
func RenderDetections(w io.Writer, title string, results []model.DetectionResult) {
	fmt.Fprintln(w, TitleStyle.Render(title))

	if len(results) == 0 {
		fmt.Fprintln(w, SubtleStyle.Render("No recurring charges detected."))
		return
	}

	header := fmt.Sprintf("%-24s %-10s %-10s %-16s %-6s %-10s %s",
		"NAME", "AMOUNT", "FREQ", "CATEGORY", "COUNT", "NEXT", "CONFIDENCE")
	fmt.Fprintln(w, TableHeaderStyle.Render(header))

	for _, r := range results {
		row := fmt.Sprintf("%-24s $%-9.2f %-10s %-16s %-6d %-10s %s",
			truncate(r.Name, 24),
			r.Amount,
			r.Frequency,
			truncate(r.SuggestedCategory, 16),
			r.TransactionCount,
			r.PredictedNextDate.Format("2006-01-02"),
			confidenceBadge(r.ConfidenceLevel))
		fmt.Fprintln(w, TableCellStyle.Render(row))
	}
}

// RenderAnomalies writes a styled table of anomaly flags.
func RenderAnomalies(w io.Writer, records []model.AnomalyRecord) {
	fmt.Fprintln(w, TitleStyle.Render("Anomalous transactions"))

	if len(records) == 0 {
		fmt.Fprintln(w, SuccessStyle.Render("No anomalies found."))
		return
	}

	header := fmt.Sprintf("%-12s %-28s %-10s %-26s %s",
		"DATE", "PAYEE", "AMOUNT", "KIND", "SEVERITY")
	fmt.Fprintln(w, TableHeaderStyle.Render(header))

	for _, rec := range records {
		row := fmt.Sprintf("%-12s %-28s $%-9.2f %-26s %s",
			rec.Transaction.Date.Format("2006-01-02"),
			truncate(rec.Transaction.Payee(), 28),
			rec.Transaction.Amount,
			rec.Kind,
			severityBadge(rec.Severity))
		fmt.Fprintln(w, TableCellStyle.Render(row))
	}
}

func confidenceBadge(level model.ConfidenceLevel) string {
	switch level {
	case model.ConfidenceHigh:
		return SuccessStyle.Render("high")
	case model.ConfidenceMedium:
		return WarningStyle.Render("medium")
	default:
		return SubtleStyle.Render("low")
	}
}

func severityBadge(severity model.AnomalySeverity) string {
	switch severity {
	case model.SeverityHigh:
		return ErrorStyle.Render("high")
	case model.SeverityMedium:
		return WarningStyle.Render("medium")
	default:
		return SubtleStyle.Render("low")
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return strings.TrimSpace(s[:n-3]) + "..."
}
