// Package university implements the registrar's operations on the
// university schema: browsing and maintaining courses and sections for
// staff, and registering, dropping and transcripts for students.
//
// Each operation is checked against the session's permission table before
// a statement is built, and its outcome is audited.
package university
