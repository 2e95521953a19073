package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// principalCmd represents the principal command
var principalCmd = &cobra.Command{
	Use:   "principal",
	Short: "Inspect configured principals",
	Long:  `Inspect the principals that may log in to the shell.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'principal' requires a subcommand (list)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(principalCmd)
}
