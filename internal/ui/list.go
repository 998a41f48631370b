package ui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/desertthunder/userdeck/internal/formatter"
	"github.com/desertthunder/userdeck/internal/models"
)

const (
	idxWidth    = 4
	nameWidth   = 20
	emailWidth  = 28
	statusWidth = 12
)

func recordColumns(width int) []table.Column {
	email := emailWidth
	if spare := width - (idxWidth + nameWidth + emailWidth + statusWidth + 10); spare > 0 {
		email += spare
	}
	return []table.Column{
		{Title: "#", Width: idxWidth},
		{Title: "Name", Width: nameWidth},
		{Title: "Email", Width: email},
		{Title: "Status", Width: statusWidth},
	}
}

// recordRows builds one [table.Row] per visible record, marking the row under edit and the row
// awaiting delete confirmation.
func recordRows(snap models.Snapshot) []table.Row {
	rows := make([]table.Row, len(snap.Visible))
	for i, r := range snap.Visible {
		rows[i] = table.Row{strconv.Itoa(i + 1), r.Name, r.Email, formatter.RowStatus(snap, i)}
	}
	return rows
}
