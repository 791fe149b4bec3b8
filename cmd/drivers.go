package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/ngld/knossos/packages/galconf/pkg/buildsys"
	"github.com/ngld/knossos/packages/galconf/pkg/drivers"
	"github.com/ngld/knossos/packages/galconf/pkg/platform"
)

type driversRequest struct {
	Target    platform.Platform
	Selection drivers.Selection
	JSON      bool
	Strict    bool
}

type driversResult struct {
	System  platform.System    `json:"system"`
	CPU     platform.CPUFamily `json:"cpu_family"`
	Auto    bool               `json:"auto"`
	Drivers []string           `json:"drivers"`
}

var driversCmd = &cobra.Command{
	Use:   "drivers",
	Short: "Prints the Gallium drivers to build",
	Long: `Resolves the gallium-drivers option for the target platform and prints the result.
Without -Dgallium-drivers (or with -Dgallium-drivers=auto) the platform defaults are used.
The text output can be passed back to meson as -Dgallium-drivers=<output>.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		defines, err := cmd.Flags().GetStringArray("define")
		if err != nil {
			return err
		}

		options, err := parseDefines(defines)
		if err != nil {
			return err
		}

		req := driversRequest{
			Selection: drivers.Auto(),
			Strict:    cfg.Strict,
		}

		for name, value := range options {
			if name == driversOption {
				req.Selection = drivers.ParseSelection(value)
			} else {
				logger.Warn().Msgf("Ignoring unknown option %s", name)
			}
		}

		req.Target, err = resolveTarget(cmd)
		if err != nil {
			return err
		}

		req.JSON, err = cmd.Flags().GetBool("json")
		if err != nil {
			return err
		}

		strict, err := cmd.Flags().GetBool("strict")
		if err != nil {
			return err
		}
		req.Strict = req.Strict || strict

		return runDrivers(commandContext(), cmd.OutOrStdout(), req)
	},
}

func init() {
	driversCmd.Flags().StringArrayP("define", "D", nil, "set an option, i.e. -Dgallium-drivers=radeonsi,swrast")
	driversCmd.Flags().Bool("json", false, "print the result as JSON")
	driversCmd.Flags().Bool("strict", false, "fail on unknown, disabled or duplicate drivers in an explicit list")
	rootCmd.AddCommand(driversCmd)
}

func runDrivers(ctx context.Context, out io.Writer, req driversRequest) error {
	log := buildsys.Logger(ctx)

	list, err := drivers.Resolve(req.Selection, req.Target)
	if err != nil {
		return err
	}

	if !req.Selection.IsAuto() {
		problems := drivers.Check(list)
		for _, problem := range problems {
			log.Warn().Msg(problem.String())
		}

		if req.Strict && len(problems) > 0 {
			return eris.Errorf("found %d problems in the driver list (strict mode)", len(problems))
		}
	}

	log.Debug().Strs("drivers", list).Msgf("Resolved %s for %s", req.Selection, req.Target)

	if req.JSON {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(driversResult{
			System:  req.Target.System,
			CPU:     req.Target.CPU,
			Auto:    req.Selection.IsAuto(),
			Drivers: list,
		})
	}

	_, err = fmt.Fprintln(out, strings.Join(list, ","))
	return err
}
