// package formatter renders snapshots of the record manager as JSON, CSV, Markdown or plain text
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/desertthunder/userdeck/internal/models"
	"github.com/desertthunder/userdeck/internal/shared"
)

// Format names an output format.
type Format string

const (
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatPlain    Format = "plain"
)

// Formats lists every supported format.
var Formats = []Format{FormatJSON, FormatCSV, FormatMarkdown, FormatPlain}

// ParseFormat maps a format name to a [Format]. "md" and "text" are accepted as aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "plain", "text", "txt":
		return FormatPlain, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, s)
	}
}

// Export renders snap in format f. title heads the Markdown and plain outputs.
func Export(snap models.Snapshot, f Format, title string) ([]byte, error) {
	switch f {
	case FormatJSON:
		return ExportToJSON(snap, true)
	case FormatCSV:
		return ExportToCSV(snap.Visible)
	case FormatMarkdown:
		return ExportToMarkdown(snap, title)
	case FormatPlain:
		return ExportToText(snap, title)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, f)
	}
}

// ExportToJSON converts a Snapshot to JSON
func ExportToJSON(snap models.Snapshot, pretty bool) ([]byte, error) {
	data, err := shared.MarshalJSON(snap, pretty)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return data, nil
}

// ExportToCSV converts records to CSV format with columns: ID, Name, Email
func ExportToCSV(records []models.Record) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Name", "Email"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, r := range records {
		if err := writer.Write([]string{r.ID, r.Name, r.Email}); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a Snapshot to Markdown with counters, the notification and a table of
// the visible records.
func ExportToMarkdown(snap models.Snapshot, title string) ([]byte, error) {
	var buf bytes.Buffer

	if title != "" {
		buf.WriteString(fmt.Sprintf("# %s\n\n", title))
	}

	buf.WriteString(fmt.Sprintf("**%s** | %s\n\n", TotalLabel(snap), ShowingLabel(snap)))

	if snap.Query != "" {
		buf.WriteString(fmt.Sprintf("**Search**: `%s`\n\n", snap.Query))
	}
	if snap.Session.IsEditing() {
		buf.WriteString(fmt.Sprintf("**Editing**: %s\n\n", snap.Session.RecordID()))
	}
	if snap.Pending {
		buf.WriteString("**Pending**: operation in progress\n\n")
	}
	if n := snap.Notification; n != nil {
		buf.WriteString(fmt.Sprintf("> **%s**: %s\n\n", n.Kind, n.Message))
	}

	if empty := EmptyState(snap); empty != "" {
		buf.WriteString(fmt.Sprintf("_%s_\n", empty))
		return buf.Bytes(), nil
	}

	buf.WriteString("| # | Name | Email | Status |\n")
	buf.WriteString("|---|------|-------|--------|\n")
	for i, r := range snap.Visible {
		buf.WriteString(fmt.Sprintf("| %d | %s | %s | %s |\n",
			i+1, escapeCell(r.Name), escapeCell(r.Email), RowStatus(snap, i)))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a Snapshot to plain text format
func ExportToText(snap models.Snapshot, title string) ([]byte, error) {
	var buf bytes.Buffer

	if title != "" {
		buf.WriteString(title + "\n")
	}
	buf.WriteString(fmt.Sprintf("%s, %s\n", TotalLabel(snap), ShowingLabel(snap)))
	if snap.Query != "" {
		buf.WriteString(fmt.Sprintf("Search: %s\n", snap.Query))
	}
	buf.WriteString(fmt.Sprintf("Session: %s\n", snap.Session))
	if snap.Pending {
		buf.WriteString("Pending: yes\n")
	}
	if n := snap.Notification; n != nil {
		buf.WriteString(fmt.Sprintf("[%s] %s\n", n.Kind, n.Message))
	}
	for _, f := range models.Fields {
		if msg, ok := snap.Errors[f]; ok {
			buf.WriteString(fmt.Sprintf("%s: %s\n", f, msg))
		}
	}
	buf.WriteString("\n")

	if empty := EmptyState(snap); empty != "" {
		buf.WriteString(empty + "\n")
		return buf.Bytes(), nil
	}

	for i, r := range snap.Visible {
		line := fmt.Sprintf("%d. %s <%s>", i+1, r.Name, r.Email)
		if status := RowStatus(snap, i); status != "" {
			line += " (" + status + ")"
		}
		buf.WriteString(line + "\n")
	}

	return buf.Bytes(), nil
}

// RenderMarkdown renders Markdown for a terminal using the named glamour style ("dark", "light",
// "notty", ...) wrapped at width.
func RenderMarkdown(md []byte, style string, width int) (string, error) {
	if style == "" {
		style = "notty"
	}
	if width < 20 {
		width = 20
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	out, err := r.Render(string(md))
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}

// TotalLabel returns "N Total Users".
func TotalLabel(snap models.Snapshot) string {
	return strconv.Itoa(len(snap.Records)) + " Total Users"
}

// ShowingLabel returns "Showing X of N users".
func ShowingLabel(snap models.Snapshot) string {
	return fmt.Sprintf("Showing %d of %d users", len(snap.Visible), len(snap.Records))
}

// EmptyState returns the message shown instead of the table, or "" when there are rows to show.
func EmptyState(snap models.Snapshot) string {
	switch {
	case len(snap.Records) == 0:
		return "No users yet"
	case len(snap.Visible) == 0:
		return "No results found"
	default:
		return ""
	}
}

// RowStatus returns the marker for the visible row at pos.
func RowStatus(snap models.Snapshot, pos int) string {
	switch {
	case snap.IsEditingRow(pos):
		return "Editing"
	case snap.IsConfirmingRow(pos):
		return "Delete? y/n"
	default:
		return ""
	}
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
