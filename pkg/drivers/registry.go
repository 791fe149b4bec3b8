package drivers

import "fmt"

// Status tells whether a registry entry can be selected
type Status int

const (
	Available Status = iota
	// Disabled entries are known identifiers that are no longer selectable.
	// Reason says why.
	Disabled
)

func (s Status) String() string {
	if s == Disabled {
		return "disabled"
	}
	return "available"
}

// Driver describes one Gallium backend identifier
type Driver struct {
	Name        string
	Description string
	Status      Status
	Reason      string
}

var registry = []Driver{
	{Name: "asahi", Description: "Apple AGX (M1 and later)"},
	{Name: "crocus", Description: "Intel Gen4 to Gen7"},
	{Name: "d3d12", Description: "Direct3D 12 layered driver"},
	{Name: "etnaviv", Description: "Vivante GPUs"},
	{Name: "freedreno", Description: "Qualcomm Adreno"},
	{Name: "i915", Description: "Intel Gen3"},
	{Name: "iris", Description: "Intel Gen8 and later"},
	{Name: "lima", Description: "ARM Mali Utgard"},
	{Name: "nouveau", Description: "NVIDIA"},
	{Name: "panfrost", Description: "ARM Mali Midgard and Bifrost"},
	{Name: "r300", Description: "AMD R300 to R500"},
	{Name: "r600", Description: "AMD R600 to Northern Islands"},
	{Name: "radeonsi", Description: "AMD Southern Islands and later"},
	{Name: "svga", Description: "VMware virtual GPU"},
	{Name: "swrast", Description: "software rasterizer (llvmpipe or softpipe)"},
	{Name: "tegra", Description: "NVIDIA Tegra render-only wrapper"},
	{Name: "v3d", Description: "Broadcom VideoCore VI"},
	{Name: "vc4", Description: "Broadcom VideoCore IV"},
	{Name: "virgl", Description: "virtio-gpu 3D"},
	{Name: "zink", Description: "OpenGL on Vulkan"},
	{
		Name:        "kmsro",
		Description: "render-only KMS display wrapper",
		Status:      Disabled,
		Reason:      "enabled implicitly by the render-only drivers that need it",
	},
	{
		Name:        "swr",
		Description: "OpenSWR software rasterizer",
		Status:      Disabled,
		Reason:      "removed upstream; use swrast",
	},
}

var registryIndex = func() map[string]int {
	index := make(map[string]int, len(registry))
	for idx, entry := range registry {
		index[entry.Name] = idx
	}
	return index
}()

// Lookup returns the registry entry for a driver identifier
func Lookup(name string) (Driver, bool) {
	idx, ok := registryIndex[name]
	if !ok {
		return Driver{}, false
	}
	return registry[idx], true
}

// Registry returns every known driver, available ones first.
func Registry() []Driver {
	result := make([]Driver, len(registry))
	copy(result, registry)
	return result
}

// Problem is an advisory finding about an explicit driver list
type Problem struct {
	Driver  string
	Message string
}

func (p Problem) String() string {
	return fmt.Sprintf("%s: %s", p.Driver, p.Message)
}

// Check looks for unknown, disabled and duplicate identifiers. It is
// advisory; Resolve never rejects an explicit list.
func Check(list []string) []Problem {
	problems := make([]Problem, 0)
	seen := make(map[string]bool, len(list))

	for _, name := range list {
		if seen[name] {
			problems = append(problems, Problem{Driver: name, Message: "listed more than once"})
			continue
		}
		seen[name] = true

		entry, ok := Lookup(name)
		switch {
		case !ok:
			problems = append(problems, Problem{Driver: name, Message: "unknown driver"})
		case entry.Status == Disabled:
			problems = append(problems, Problem{Driver: name, Message: "disabled: " + entry.Reason})
		}
	}

	return problems
}
