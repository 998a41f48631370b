// Package search derives the visible subset of records for a query.
package search

import (
	"strings"

	"github.com/desertthunder/userdeck/internal/models"
	"github.com/desertthunder/userdeck/internal/shared"
)

// Filter returns the records whose name or email contains query, ignoring case, in their original order.
//
// An empty query returns every record. The result never aliases records.
func Filter(records []models.Record, query string) []models.Record {
	if query == "" {
		return models.CloneRecords(records)
	}

	needle := shared.Fold(query)
	out := make([]models.Record, 0, len(records))
	for _, r := range records {
		if Matches(r, needle) {
			out = append(out, r)
		}
	}
	return out
}

// Matches reports whether r's name or email contains the already folded needle.
func Matches(r models.Record, needle string) bool {
	return strings.Contains(shared.Fold(r.Name), needle) ||
		strings.Contains(shared.Fold(r.Email), needle)
}
