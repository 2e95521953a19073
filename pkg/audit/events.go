package audit

import "fmt"

// AuthenticateEvent represents a login attempt.
type AuthenticateEvent struct {
	Principal string
	Role      string
	Success   bool
}

func (e AuthenticateEvent) MessageID() string {
	return "authn"
}

func (e AuthenticateEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s successfully authenticated as %s", e.Principal, e.Role)
	}
	return fmt.Sprintf("%s failed to authenticate: invalid credentials", e.Principal)
}

func (e AuthenticateEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e AuthenticateEvent) Facility() int {
	return FacilityAuthPriv
}

func (e AuthenticateEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDAuth: {
			"user": e.Principal,
		},
	}
	if e.Success {
		sd[SDIDAuth]["role"] = e.Role
	}
	return sd
}

// CheckEvent represents a permission check on a table.
type CheckEvent struct {
	Principal string
	Table     string
	Operation string
	Allowed   bool
}

func (e CheckEvent) MessageID() string {
	return "check"
}

func (e CheckEvent) Message() string {
	if e.Allowed {
		return fmt.Sprintf("%s checked permission %s on %s: allowed", e.Principal, e.Operation, e.Table)
	}
	return fmt.Sprintf("%s checked permission %s on %s: denied", e.Principal, e.Operation, e.Table)
}

func (e CheckEvent) Severity() Severity {
	if e.Allowed {
		return SeverityInfo
	}
	return SeverityNotice
}

func (e CheckEvent) Facility() int {
	return FacilityAuth
}

func (e CheckEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDAuth: {
			"user": e.Principal,
		},
		SDIDSubject: {
			"table":     e.Table,
			"operation": e.Operation,
		},
		SDIDAction: {
			"operation": "check",
			"result":    result(e.Allowed),
		},
	}
}

// StatementEvent represents the outcome of a data-manipulation request.
type StatementEvent struct {
	Principal    string
	Table        string
	Operation    string
	Success      bool
	ErrorMessage string
}

func (e StatementEvent) MessageID() string {
	return "statement"
}

func (e StatementEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s performed %s on %s", e.Principal, e.Operation, e.Table)
	}
	msg := fmt.Sprintf("%s failed to perform %s on %s", e.Principal, e.Operation, e.Table)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e StatementEvent) Severity() Severity {
	if e.Success {
		return SeverityNotice
	}
	return SeverityWarning
}

func (e StatementEvent) Facility() int {
	return FacilityLocal0
}

func (e StatementEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDAuth: {
			"user": e.Principal,
		},
		SDIDSubject: {
			"table": e.Table,
		},
		SDIDAction: {
			"operation": e.Operation,
			"result":    result(e.Success),
		},
	}
}

func result(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}
