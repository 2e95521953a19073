package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/registrar/pkg/config"
)

// configurationShowCmd represents the configuration show command
var configurationShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show registrar configuration attributes and their sources",
	Long: `Show registrar configuration attributes and their sources.

Each attribute is reported with the layer that set it: default, file or
environment. Secrets are masked.

Config file location: /etc/registrar/registrar.yml (or REGISTRAR_CONFIG_PATH)

Example:
  registrar configuration show
  registrar configuration show --output json`,
	Run: func(cmd *cobra.Command, args []string) {
		output, _ := cmd.Flags().GetString("output")

		if err := showConfiguration(cmd.OutOrStdout(), output); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to show configuration: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	configurationCmd.AddCommand(configurationShowCmd)
	configurationShowCmd.Flags().StringP("output", "o", "text", "Output format (text or json)")
}

func showConfiguration(w io.Writer, output string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if output == "json" {
		jsonOutput, err := cfg.FormatJSON()
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(w, jsonOutput)
		return nil
	}

	_, _ = fmt.Fprint(w, cfg.FormatText())
	if err := cfg.Validate(); err != nil {
		_, _ = fmt.Fprintf(w, "\nWarning: %v\n", err)
	}
	return nil
}
