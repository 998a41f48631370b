// Package validation checks a form draft against the field rules and the existing records.
//
// [Validate] is total: it never fails, it only reports field errors. Both fields are always
// checked, so a single pass surfaces every problem at once.
package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/desertthunder/userdeck/internal/models"
	"github.com/desertthunder/userdeck/internal/session"
	"github.com/desertthunder/userdeck/internal/shared"
)

// MinNameLength is the minimum trimmed length of a name, in characters.
const MinNameLength = 2

// Messages shown for each failure.
const (
	MsgNameRequired  = "Name is required"
	MsgNameTooShort  = "Name must be at least 2 characters"
	MsgEmailRequired = "Email is required"
	MsgEmailInvalid  = "Please enter a valid email"
	MsgEmailExists   = "Email already exists"
)

// local@domain.tld: no whitespace or '@' in any part, at least one '.' after the '@'.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validate returns the field errors for draft. An empty set means the draft may be submitted.
//
// When sess is editing, the record under edit is exempt from the duplicate email check so a
// record can keep its own address.
func Validate(draft models.Draft, records []models.Record, sess session.Session) models.ErrorSet {
	errs := models.ErrorSet{}

	if msg, ok := checkName(draft.Name); !ok {
		errs[models.FieldName] = msg
	}
	if msg, ok := checkEmail(draft.Email, records, sess); !ok {
		errs[models.FieldEmail] = msg
	}

	return errs
}

func checkName(name string) (string, bool) {
	trimmed := strings.TrimSpace(name)
	switch {
	case trimmed == "":
		return MsgNameRequired, false
	case utf8.RuneCountInString(trimmed) < MinNameLength:
		return MsgNameTooShort, false
	}
	return "", true
}

func checkEmail(email string, records []models.Record, sess session.Session) (string, bool) {
	if strings.TrimSpace(email) == "" {
		return MsgEmailRequired, false
	}

	// A duplicate outranks a malformed address.
	if EmailTaken(email, records, sess) {
		return MsgEmailExists, false
	}
	if !ValidEmail(email) {
		return MsgEmailInvalid, false
	}
	return "", true
}

// ValidEmail reports whether email has the local@domain.tld shape.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// EmailTaken reports whether any record other than the one under edit already uses email, ignoring case.
func EmailTaken(email string, records []models.Record, sess session.Session) bool {
	for _, r := range records {
		if sess.Targets(r.ID) {
			continue
		}
		if shared.SameFold(r.Email, email) {
			return true
		}
	}
	return false
}
