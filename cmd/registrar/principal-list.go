package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/registrar/pkg/config"
	"github.com/doodlesbykumbi/registrar/pkg/permission"
	"github.com/doodlesbykumbi/registrar/pkg/session"
)

// principalListCmd represents the principal list command
var principalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured principals and what they may do",
	Long: `List configured principals, their role and the tables and operations
the role grants. Secrets are never shown.

Example:
  registrar principal list`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		listPrincipals(cmd.OutOrStdout(), cfg.Principals)
	},
}

func init() {
	principalCmd.AddCommand(principalListCmd)
}

func listPrincipals(w io.Writer, principals []config.Principal) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"NAME", "ROLE", "STUDENT ID", "PERMISSIONS"})

	for _, p := range principals {
		id := "-"
		if p.Role == permission.RoleStudent {
			id = fmt.Sprint(session.Principal{Name: p.Name}.StudentID())
		}

		tables := permission.TablesFor(p.Role)
		grants := make([]string, 0, len(tables))
		for _, tbl := range tables {
			grants = append(grants, fmt.Sprintf("%s: %s", tbl, permission.OperationsFor(p.Role, tbl)))
		}
		t.AppendRow(table.Row{p.Name, p.Role.String(), id, strings.Join(grants, "; ")})
	}
	t.Render()
}
