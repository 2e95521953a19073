// Package audit provides audit logging for registrar sessions.
//
// Security-relevant decisions are written as RFC5424 syslog lines to the
// default logger and, when REGISTRAR_AUDIT_DATABASE_URL is set, persisted to
// a messages table.
//
// # Event Types
//
//   - Authentication events (success/failure)
//   - Permission check events (table/operation allowed or denied)
//   - Statement events (data-manipulation outcome)
//
// # Usage
//
//	audit.Log(audit.AuthenticateEvent{Principal: "grey", Success: true})
//
// Set REGISTRAR_AUDIT_ENABLED=false to disable audit output.
package audit
