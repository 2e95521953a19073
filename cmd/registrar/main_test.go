package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/registrar/pkg/audit"
	"github.com/doodlesbykumbi/registrar/pkg/config"
	"github.com/doodlesbykumbi/registrar/pkg/permission"
)

func TestWaitForStore(t *testing.T) {
	t.Run("ready after retries", func(t *testing.T) {
		var out bytes.Buffer
		attempts := 0
		probe := func(context.Context) error {
			attempts++
			if attempts < 3 {
				return errors.New("connection refused")
			}
			return nil
		}

		require.NoError(t, waitForStore(context.Background(), &out, probe, 5, time.Millisecond))
		assert.Equal(t, 3, attempts)
		assert.Contains(t, out.String(), "..\nDatabase is ready!")
	})

	t.Run("gives up", func(t *testing.T) {
		var out bytes.Buffer
		refused := errors.New("connection refused")
		err := waitForStore(context.Background(), &out, func(context.Context) error { return refused }, 2, time.Millisecond)
		assert.ErrorIs(t, err, refused)
		assert.Contains(t, err.Error(), "not ready after 2 attempts")
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := waitForStore(ctx, &bytes.Buffer{}, func(context.Context) error { return errors.New("down") }, 10, time.Hour)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestListPrincipals(t *testing.T) {
	var out bytes.Buffer
	listPrincipals(&out, []config.Principal{
		{Name: "brown", Secret: "brown123", Role: permission.RoleStaff},
		{Name: "grey", Secret: "grey123", Role: permission.RoleStudent},
	})

	text := out.String()
	assert.Contains(t, text, "course: Retrieve, Create, Update, Delete")
	assert.Contains(t, text, "takes: Retrieve, Drop, Register")
	assert.Contains(t, text, "12426")
	assert.NotContains(t, text, "grey123")
}

func TestShowConfiguration(t *testing.T) {
	t.Setenv("REGISTRAR_CONFIG_PATH", t.TempDir())
	t.Setenv("REGISTRAR_DB_HOST", "db.internal")

	var out bytes.Buffer
	require.NoError(t, showConfiguration(&out, "text"))
	assert.Contains(t, out.String(), "db.internal")
	assert.Contains(t, out.String(), "environment")

	out.Reset()
	require.NoError(t, showConfiguration(&out, "json"))
	assert.Contains(t, out.String(), `"config_file"`)
}

func TestOpenAuditLog(t *testing.T) {
	event := audit.AuthenticateEvent{Principal: "grey", Role: "Student", Success: true}

	t.Run("discards without a path", func(t *testing.T) {
		r, w, err := os.Pipe()
		require.NoError(t, err)
		stderr := os.Stderr
		os.Stderr = w
		logger := audit.NewLogger()
		os.Stderr = stderr

		closeAudit, err := openAuditLog(logger, "")
		require.NoError(t, err)
		logger.Log(event)
		require.NoError(t, closeAudit())
		require.NoError(t, w.Close())

		written, err := io.ReadAll(r)
		require.NoError(t, err)
		assert.Empty(t, written)
	})

	t.Run("appends to the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "audit.log")
		require.NoError(t, os.WriteFile(path, []byte("earlier\n"), 0o600))

		logger := audit.NewLogger()
		closeAudit, err := openAuditLog(logger, path)
		require.NoError(t, err)
		logger.Log(event)
		require.NoError(t, closeAudit())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "earlier\n<86>1 ")
		assert.Contains(t, string(data), `authn [auth@32473 role="Student" user="grey"]`)
	})

	t.Run("unwritable path", func(t *testing.T) {
		_, err := openAuditLog(audit.NewLogger(), filepath.Join(t.TempDir(), "missing", "audit.log"))
		assert.ErrorContains(t, err, "failed to open audit log")
	})
}
