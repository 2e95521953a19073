// Package sanitize strips the characters that can break out of a quoted SQL
// literal or identifier.
//
// Values reach the store as bound arguments, so Clean is no longer what keeps
// them safe. It is still applied to every identifier before quoting and is the
// reference form for the "empty value" validation rules in package statement.
package sanitize

import "strings"

var stripper = strings.NewReplacer("`", "", "'", "", `"`, "", ";", "")

// Clean removes backtick, single quote, double quote and semicolon from s.
// Clean(Clean(s)) == Clean(s).
func Clean(s string) string {
	return stripper.Replace(s)
}

// CleanAll returns a cleaned copy of values. The input slice is not modified.
func CleanAll(values ...string) []string {
	cleaned := make([]string, len(values))
	for i, v := range values {
		cleaned[i] = Clean(v)
	}
	return cleaned
}
