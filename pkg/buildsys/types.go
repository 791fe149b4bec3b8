package buildsys

import (
	"go.starlark.net/starlark"

	"github.com/ngld/knossos/packages/galconf/pkg/platform"
)

// ScriptOption is an option declared by a script through option()
type ScriptOption struct {
	DefaultValue starlark.String
	Help         string
}

func (o ScriptOption) Default() string {
	return o.DefaultValue.GoString()
}

// SummaryEntry is one value recorded by summary()
type SummaryEntry struct {
	Section string
	Key     string
	Values  []string
}

// Summary contains the recorded entries in the order the script produced them
type Summary []SummaryEntry

// Lookup returns the first entry with the given key
func (s Summary) Lookup(key string) (SummaryEntry, bool) {
	for _, entry := range s {
		if entry.Key == key {
			return entry, true
		}
	}
	return SummaryEntry{}, false
}

// Sections lists the distinct section names in order of first appearance
func (s Summary) Sections() []string {
	seen := make(map[string]bool)
	result := make([]string, 0)
	for _, entry := range s {
		if !seen[entry.Section] {
			seen[entry.Section] = true
			result = append(result, entry.Section)
		}
	}
	return result
}

// Params collects everything RunScript needs besides the context
type Params struct {
	Filename    string
	ProjectRoot string
	// Target is exposed to scripts as SYSTEM, CPU_FAMILY and HAS_KMS. The OS and ARCH globals always
	// describe the machine galconf runs on, even when Target names a different platform.
	Target platform.Platform
	// Options holds the key=value pairs passed on the command line.
	Options map[string]string
	// Strict turns driver list warnings into errors.
	Strict bool
	// SkipConfigure stops after the init phase; only the declared options are returned.
	SkipConfigure bool
}
