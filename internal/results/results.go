package results

import (
	"regexp"
	"strings"
)

// A test result is Negative if the result is exactly "Negative" or "Negative.".
var negativePattern = regexp.MustCompile(`^Negative\.?$`)

var wordPattern = regexp.MustCompile(`\w\S*`)

// IsNegative reports whether a raw result value from the clinical store is a
// released Negative result. A nil value means the result is still pending.
// Everything that is not an exact match, including Positive and Indeterminate,
// is treated as "not ready" so that this channel never distinguishes
// pending from non-negative.
func IsNegative(result *string) bool {
	if result == nil {
		return false
	}
	return negativePattern.MatchString(strings.TrimSpace(*result))
}

// NormalizeIdentity canonicalizes client-supplied identity fields into the
// matching format used by the clinical-records store: hyphens stripped from
// the health care number and birth date, last name upper-cased. No format
// validation is done; malformed input simply matches nothing.
func NormalizeIdentity(healthCareNumber, birthDate, lastName string) (hcn, dob, name string) {
	hcn = strings.ReplaceAll(healthCareNumber, "-", "")
	dob = strings.ReplaceAll(birthDate, "-", "")
	name = strings.ToUpper(lastName)
	return hcn, dob, name
}

// TitleCasePatientName re-cases a stored patient name for display: each
// whitespace-delimited token gets an upper-case first letter, the rest lower.
func TitleCasePatientName(name string) string {
	lowered := strings.ToLower(strings.TrimSpace(name))
	return wordPattern.ReplaceAllStringFunc(lowered, func(w string) string {
		return strings.ToUpper(w[:1]) + w[1:]
	})
}

// FormatBirthDate reformats an 8-digit YYYYMMDD date of birth as YYYY-MM-DD.
// Shorter values are returned unchanged.
func FormatBirthDate(dob string) string {
	if len(dob) < 8 {
		return dob
	}
	return dob[0:4] + "-" + dob[4:6] + "-" + dob[6:]
}
