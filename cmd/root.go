package cmd

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ngld/knossos/packages/galconf/pkg"
	"github.com/ngld/knossos/packages/galconf/pkg/buildsys"
	"github.com/ngld/knossos/packages/galconf/pkg/config"
	"github.com/ngld/knossos/packages/galconf/pkg/platform"
)

var (
	cfg    *config.Config
	logger zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "galconf",
	Short: "Gallium driver configuration helper",
	Long: `galconf works out which Gallium drivers to build for a platform.
It can resolve the default driver list directly or run a configure.star script
that declares options and records the resolved configuration.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "galconf.toml", "settings file")
	flags.String("log-level", "", "override log.level (trace, debug, info, warn, error)")
	flags.Bool("log-json", false, "write log events as JSON instead of console messages")
	flags.String("system", "", "target system (meson name, i.e. linux, darwin, windows); defaults to the host")
	flags.String("cpu-family", "", "target CPU family (meson name, i.e. x86_64, aarch64); defaults to the host")
}

// Execute runs the root command and exits with a non-zero status if it fails
func Execute() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, out, errOut io.Writer) int {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	if err := rootCmd.Execute(); err != nil {
		pkg.PrintError(errOut, err.Error())
		return 1
	}
	return 0
}

// findSettings searches wd and its parents for the default settings file.
// An explicitly passed path is used as is.
func findSettings(wd, name string, explicit bool) string {
	if explicit || filepath.IsAbs(name) {
		return name
	}

	path, err := pkg.FindUpwards(wd, name)
	if err != nil {
		return name
	}
	return path
}

func setup(cmd *cobra.Command) error {
	file, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}

	wd, err := os.Getwd()
	if err != nil {
		return eris.Wrap(err, "Failed to retrieve the current working directory")
	}
	file = findSettings(wd, file, cmd.Flags().Changed("config"))

	settings, loader := config.Loader(file)
	if err := loader.Load(); err != nil {
		return eris.Wrapf(err, "failed to load %s", file)
	}

	level, err := cmd.Flags().GetString("log-level")
	if err != nil {
		return err
	}
	if level != "" {
		settings.Log.Level = level
	}

	jsonLog, err := cmd.Flags().GetBool("log-json")
	if err != nil {
		return err
	}
	if jsonLog {
		settings.Log.JSON = true
	}

	if err := settings.Validate(); err != nil {
		return err
	}
	cfg = settings

	var out io.Writer = NewConsoleWriter(cmd.ErrOrStderr())
	if cfg.Log.JSON {
		out = cmd.ErrOrStderr()
		zerolog.ErrorMarshalFunc = func(err error) interface{} {
			return eris.ToJSON(err, debugEnabled())
		}
	}

	logger = zerolog.New(out).Level(cfg.LogLevel())
	return nil
}

func commandContext() context.Context {
	return buildsys.WithLogger(context.Background(), &logger)
}

// resolveTarget starts from the host platform and applies the settings file and flag overrides.
func resolveTarget(cmd *cobra.Command) (platform.Platform, error) {
	system, err := cmd.Flags().GetString("system")
	if err != nil {
		return platform.Platform{}, err
	}

	cpu, err := cmd.Flags().GetString("cpu-family")
	if err != nil {
		return platform.Platform{}, err
	}

	host, hostErr := platform.Host()
	return pickTarget(host, hostErr, cfg, system, cpu)
}

func pickTarget(host platform.Platform, hostErr error, settings *config.Config, system, cpu string) (platform.Platform, error) {
	target := settings.ApplyTarget(host)
	if system != "" {
		target.System = platform.System(system)
	}
	if cpu != "" {
		target.CPU = platform.CPUFamily(cpu)
	}

	if target.System == "" || target.CPU == "" {
		if hostErr == nil {
			hostErr = eris.New("empty target platform")
		}
		return target, eris.Wrap(hostErr, "could not detect the host platform, please pass --system and --cpu-family")
	}

	return target, nil
}
