package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/ngld/knossos/packages/galconf/pkg"
	"github.com/ngld/knossos/packages/galconf/pkg/buildsys"
	"github.com/ngld/knossos/packages/galconf/pkg/platform"
)

type configureRequest struct {
	Dir     string
	Script  string
	Cache   string
	Target  platform.Platform
	Options map[string]string
	Strict  bool
	// ListOptions prints the declared options instead of configuring.
	ListOptions bool
}

var configureCmd = &cobra.Command{
	Use:   "configure [key=value ...]",
	Short: "Runs the nearest configure script",
	Long: `Searches the current directory and its parents for the configure script (configure.star
unless changed in galconf.toml), runs it with the passed options and stores the resulting summary
next to the script.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		options, rest := parseOptions(args)
		if len(rest) > 0 {
			return eris.Errorf("unexpected argument %s, expected key=value", rest[0])
		}

		defines, err := cmd.Flags().GetStringArray("define")
		if err != nil {
			return err
		}

		extra, err := parseDefines(defines)
		if err != nil {
			return err
		}
		for name, value := range extra {
			options[name] = value
		}

		target, err := resolveTarget(cmd)
		if err != nil {
			return err
		}

		strict, err := cmd.Flags().GetBool("strict")
		if err != nil {
			return err
		}

		listOptions, err := cmd.Flags().GetBool("list-options")
		if err != nil {
			return err
		}

		wd, err := os.Getwd()
		if err != nil {
			return eris.Wrap(err, "Failed to retrieve the current working directory")
		}

		return runConfigure(commandContext(), cmd.OutOrStdout(), configureRequest{
			Dir:         wd,
			Script:      cfg.Script,
			Cache:       cfg.Cache,
			Target:      target,
			Options:     options,
			Strict:      cfg.Strict || strict,
			ListOptions: listOptions,
		})
	},
}

func init() {
	configureCmd.Flags().StringArrayP("define", "D", nil, "set an option, same as passing key=value")
	configureCmd.Flags().Bool("strict", false, "fail on unknown, disabled or duplicate drivers in explicit lists")
	configureCmd.Flags().Bool("list-options", false, "print the options the script declares and exit")
	rootCmd.AddCommand(configureCmd)
}

func cachePath(scriptPath, cache string) string {
	if filepath.IsAbs(cache) {
		return cache
	}
	return filepath.Join(filepath.Dir(scriptPath), cache)
}

func runConfigure(ctx context.Context, out io.Writer, req configureRequest) error {
	scriptPath, err := pkg.FindUpwards(req.Dir, req.Script)
	if err != nil {
		return err
	}

	projectRoot, err := pkg.GetProjectRoot(filepath.Dir(scriptPath))
	if err != nil {
		return err
	}

	params := buildsys.Params{
		Filename:      scriptPath,
		ProjectRoot:   projectRoot,
		Target:        req.Target,
		Options:       req.Options,
		Strict:        req.Strict,
		SkipConfigure: req.ListOptions,
	}

	if req.ListOptions {
		_, declared, err := buildsys.RunScript(ctx, params)
		if err != nil {
			return err
		}

		printOptionList(out, declared)
		return nil
	}

	pkg.PrintTask(out, fmt.Sprintf("Configuring %s for %s", scriptPath, req.Target))
	result, declared, err := buildsys.RunScript(ctx, params)
	if err != nil {
		return err
	}

	effective := make(map[string]string, len(declared))
	for name, opt := range declared {
		value, ok := req.Options[name]
		if !ok {
			value = opt.Default()
		}
		effective[name] = value
	}

	printSummary(out, effective, result)

	cacheFile := cachePath(scriptPath, req.Cache)
	err = buildsys.WriteCache(cacheFile, effective, result)
	if err != nil {
		return eris.Wrapf(err, "failed to write %s", cacheFile)
	}

	buildsys.Logger(ctx).Debug().Str("path", cacheFile).Msgf("Wrote %s", cacheFile)
	return nil
}

func printOptionList(out io.Writer, declared map[string]buildsys.ScriptOption) {
	if len(declared) == 0 {
		fmt.Fprintln(out, "The script declares no options.")
		return
	}

	names := make([]string, 0, len(declared))
	maxNameLen := 0
	for name := range declared {
		names = append(names, name)
		if len(name) > maxNameLen {
			maxNameLen = len(name)
		}
	}
	sort.Strings(names)

	fmt.Fprintln(out, "Options:")
	lineFmt := fmt.Sprintf(" * %%-%ds %%s (default: %%s)\n", maxNameLen+3)
	for _, name := range names {
		opt := declared[name]
		help := opt.Help
		if help == "" {
			help = "-"
		}
		fmt.Fprintf(out, lineFmt, name+":", help, opt.Default())
	}
}

func printSummary(out io.Writer, options map[string]string, result buildsys.Summary) {
	if len(options) > 0 {
		names := make([]string, 0, len(options))
		for name := range options {
			names = append(names, name)
		}
		sort.Strings(names)

		pkg.PrintTask(out, "Options")
		for _, name := range names {
			pkg.PrintSubtask(out, fmt.Sprintf("%s = %s", name, options[name]))
		}
	}

	for _, section := range result.Sections() {
		title := section
		if title == "" {
			title = "Summary"
		}

		pkg.PrintTask(out, title)
		for _, entry := range result {
			if entry.Section != section {
				continue
			}

			value := strings.Join(entry.Values, ", ")
			if len(entry.Values) == 0 {
				value = "(none)"
			}
			pkg.PrintSubtask(out, fmt.Sprintf("%s: %s", entry.Key, value))
		}
	}
}
