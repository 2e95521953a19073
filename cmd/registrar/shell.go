package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/registrar/pkg/audit"
	"github.com/doodlesbykumbi/registrar/pkg/config"
	"github.com/doodlesbykumbi/registrar/pkg/session"
	"github.com/doodlesbykumbi/registrar/pkg/shell"
	"github.com/doodlesbykumbi/registrar/pkg/university"
)

// shellCmd represents the shell command
var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Log in and run the interactive registrar menus",
	Long: `Log in and run the interactive registrar menus.

The shell connects to the configured database, registers the configured
principals, then asks for a username and password until valid ones are
given. Menus list only the tables and commands the principal's role allows.
Audit lines are written to --audit-log, if given, and never to the terminal.

Example:
  registrar shell
  REGISTRAR_DB_HOST=db registrar shell
  registrar shell --audit-log /var/log/registrar/audit.log`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		history, _ := cmd.Flags().GetString("history")
		auditLog, _ := cmd.Flags().GetString("audit-log")
		if err := runShell(cmd.Context(), cfg, history, auditLog); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
	shellCmd.Flags().String("history", defaultHistoryFile(), "Readline history file (empty to disable)")
	shellCmd.Flags().String("audit-log", "", "File to append RFC5424 audit lines to (default: discard)")
}

func defaultHistoryFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "registrar", "history")
}

func runShell(ctx context.Context, cfg *config.RegistrarConfig, history, auditLog string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := newLogger(cfg)

	closeAudit, err := openAuditLog(audit.DefaultLogger, auditLog)
	if err != nil {
		return err
	}
	defer func() { _ = closeAudit() }()

	conn, err := openCatalog(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	registry := session.NewRegistry()
	sess := session.New(registry, session.WithAuditSink(audit.Default))
	catalog := university.New(conn, registry, sess,
		university.WithAuditSink(audit.Default),
		university.WithTerm(cfg.Term()),
		university.WithLogger(logger))
	defer catalog.Close()

	for _, p := range cfg.Principals {
		if _, err := catalog.AddPrincipal(ctx, p.Name, p.Secret, p.Role); err != nil {
			return fmt.Errorf("failed to add principal %q: %w", p.Name, err)
		}
	}
	log.Printf("Registered %d principals in %s", registry.Len(), conn.Catalog())

	prompter, err := newPrompter(history)
	if err != nil {
		return err
	}
	defer func() { _ = prompter.Close() }()

	return shell.New(catalog, sess, prompter, os.Stdout).Run(ctx)
}

func newPrompter(history string) (shell.Prompter, error) {
	if !readline.IsTerminal(int(os.Stdin.Fd())) {
		return shell.NewScannerPrompter(os.Stdin, os.Stdout), nil
	}
	if history != "" {
		_ = os.MkdirAll(filepath.Dir(history), 0o700)
	}
	rl, err := shell.NewReadline(history)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize prompt: %w", err)
	}
	return rl, nil
}
