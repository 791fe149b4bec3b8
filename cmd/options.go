package cmd

import (
	"strings"

	"github.com/rotisserie/eris"
)

const driversOption = "gallium-drivers"

// parseOptions splits key=value pairs. Arguments without "=" are returned separately.
func parseOptions(args []string) (map[string]string, []string) {
	options := make(map[string]string)
	rest := make([]string, 0)

	for _, part := range args {
		pos := strings.Index(part, "=")
		if pos > -1 {
			options[part[:pos]] = part[pos+1:]
		} else {
			rest = append(rest, part)
		}
	}

	return options, rest
}

// parseDefines reads the values of repeated -D flags; each must be key=value.
func parseDefines(defines []string) (map[string]string, error) {
	options, rest := parseOptions(defines)
	if len(rest) > 0 {
		return nil, eris.Errorf("-D%s: expected key=value", rest[0])
	}

	return options, nil
}
