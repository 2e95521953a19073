package main

import (
	"fmt"
	"io"
	"os"

	"github.com/doodlesbykumbi/registrar/pkg/audit"
)

// openAuditLog sends the audit logger's lines to path, appending. With no
// path the lines are dropped so they never reach the terminal running the
// shell; REGISTRAR_AUDIT_DATABASE_URL still persists every event.
func openAuditLog(logger *audit.Logger, path string) (func() error, error) {
	if path == "" {
		logger.SetWriter(io.Discard)
		return func() error { return nil }, nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	logger.SetWriter(f)
	return func() error {
		logger.SetWriter(io.Discard)
		return f.Close()
	}, nil
}
