package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ngld/knossos/packages/galconf/pkg/drivers"
)

var listDriversCmd = &cobra.Command{
	Use:   "list-drivers",
	Short: "Lists every known Gallium driver",
	RunE: func(cmd *cobra.Command, args []string) error {
		printRegistry(cmd.OutOrStdout())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listDriversCmd)
}

func printRegistry(out io.Writer) {
	entries := drivers.Registry()
	maxNameLen := 0
	for _, entry := range entries {
		if len(entry.Name) > maxNameLen {
			maxNameLen = len(entry.Name)
		}
	}

	lineFmt := fmt.Sprintf(" * %%-%ds %%s", maxNameLen+3)
	for _, entry := range entries {
		fmt.Fprintf(out, lineFmt, entry.Name+":", entry.Description)
		if entry.Status == drivers.Disabled {
			fmt.Fprintf(out, " (disabled: %s)", entry.Reason)
		}
		fmt.Fprintln(out)
	}
}
