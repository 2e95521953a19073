package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// waitCmd represents the wait command
var waitCmd = &cobra.Command{
	Use:   "wait",
	Short: "Wait for the university database to be reachable",
	Long: `Wait for the university database to be reachable.

This command will repeatedly connect to the configured server and select the
catalog until it succeeds or the maximum number of retries is reached.

Example:
  registrar wait
  registrar wait --retries 60`,
	Run: func(cmd *cobra.Command, args []string) {
		retries, _ := cmd.Flags().GetInt("retries")

		cfg, err := loadConfig()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		probe := func(ctx context.Context) error {
			conn, err := openCatalog(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = conn.Close() }()
			return conn.Ping(ctx)
		}

		if err := waitForStore(context.Background(), cmd.OutOrStdout(), probe, retries, time.Second); err != nil {
			fmt.Fprintf(os.Stderr, "Database did not become ready: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(waitCmd)
	waitCmd.Flags().IntP("retries", "r", 90, "Number of retries")
}

func waitForStore(ctx context.Context, w io.Writer, probe func(context.Context) error, retries int, interval time.Duration) error {
	_, _ = fmt.Fprintln(w, "Waiting for the database to be ready...")

	var lastErr error
	for i := 0; i < retries; i++ {
		if lastErr = probe(ctx); lastErr == nil {
			_, _ = fmt.Fprintln(w)
			_, _ = fmt.Fprintln(w, "Database is ready!")
			return nil
		}

		_, _ = fmt.Fprint(w, ".")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}

	_, _ = fmt.Fprintln(w)
	return fmt.Errorf("not ready after %d attempts: %w", retries, lastErr)
}
