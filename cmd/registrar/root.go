package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "registrar",
	Short: "University registrar command-line interface",
	Long: `A role-restricted front-end over a university database.

Staff manage courses and sections; students register, drop and read their
transcript.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}
