package cmd

import (
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/ngld/knossos/packages/galconf/pkg"
	"github.com/ngld/knossos/packages/galconf/pkg/buildsys"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Prints the result of the last configure run",
	RunE: func(cmd *cobra.Command, args []string) error {
		wd, err := os.Getwd()
		if err != nil {
			return eris.Wrap(err, "Failed to retrieve the current working directory")
		}

		return runSummary(cmd.OutOrStdout(), wd, cfg.Script, cfg.Cache)
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(out io.Writer, dir, script, cache string) error {
	scriptPath, err := pkg.FindUpwards(dir, script)
	if err != nil {
		return err
	}

	cacheFile := cachePath(scriptPath, cache)
	options, result, err := buildsys.ReadCache(cacheFile)
	if err != nil {
		if eris.Is(err, os.ErrNotExist) {
			return eris.New("No configure results found, please run configure first")
		}
		return eris.Wrapf(err, "failed to read %s", cacheFile)
	}

	printSummary(out, options, result)
	return nil
}
