package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ngld/knossos/packages/galconf/pkg/drivers"
	"github.com/ngld/knossos/packages/galconf/pkg/platform"
)

var platformsCmd = &cobra.Command{
	Use:   "platforms",
	Short: "Lists known systems, CPU families and their default drivers",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printPlatforms(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(platformsCmd)
}

func printPlatforms(out io.Writer) error {
	fmt.Fprintln(out, "Systems:")
	systems := platform.KnownSystems()
	maxNameLen := 0
	for _, name := range systems {
		if len(name) > maxNameLen {
			maxNameLen = len(name)
		}
	}

	lineFmt := fmt.Sprintf(" * %%-%ds %%s\n", maxNameLen+3)
	for _, name := range systems {
		fmt.Fprintf(out, lineFmt, string(name)+":", name.Family())
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Defaults on KMS systems:")
	cpus := platform.KnownCPUs()
	labels := make([]string, len(cpus))
	maxNameLen = 0
	for idx, info := range cpus {
		labels[idx] = cpuLabel(info)
		if len(labels[idx]) > maxNameLen {
			maxNameLen = len(labels[idx])
		}
	}

	lineFmt = fmt.Sprintf(" * %%-%ds %%s\n", maxNameLen+1)
	for idx, info := range cpus {
		list, err := drivers.Defaults(info.Family)
		value := strings.Join(list, ",")
		if err != nil {
			value = "(none, pass -Dgallium-drivers)"
		}

		fmt.Fprintf(out, lineFmt, labels[idx]+":", value)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Other known systems only build swrast.")
	return nil
}

func cpuLabel(info platform.CPUInfo) string {
	if info.BigEndian {
		return fmt.Sprintf("%s (%d bit, big endian)", info.Family, info.Bits)
	}
	return fmt.Sprintf("%s (%d bit)", info.Family, info.Bits)
}
