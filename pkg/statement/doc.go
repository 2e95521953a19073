// Package statement builds parameterized SQL statements from loosely typed
// column/value input.
//
// Identifiers are cleaned with package sanitize and quoted; values are never
// interpolated and travel as bound arguments ($1, $2, ...). The validation
// rules of the original string-building design are kept: an insert with an
// empty value, or an update/delete without a selector, fails with
// ErrValidation before anything reaches the store.
package statement
