package drivers

import "github.com/ngld/knossos/packages/galconf/pkg/platform"

var defaultSets = map[platform.ArchGroup][]string{
	platform.GroupX86:       {"r300", "r600", "radeonsi", "nouveau", "virgl", "svga", "swrast", "iris", "crocus", "i915"},
	platform.GroupARM:       {"v3d", "vc4", "freedreno", "etnaviv", "nouveau", "svga", "tegra", "virgl", "lima", "panfrost", "swrast"},
	platform.GroupMIPSRISCV: {"r300", "r600", "radeonsi", "nouveau", "virgl", "swrast"},
}

var softwareOnly = []string{"swrast"}

// Resolve returns the driver set to build for the given platform.
//
// Explicit selections are returned unchanged. For Auto, KMS systems get the
// default list of their CPU family's group and the remaining known systems
// only get the software rasterizer. Anything else fails with
// UnsupportedArchitecture or UnsupportedPlatform.
func Resolve(sel Selection, target platform.Platform) ([]string, error) {
	if !sel.IsAuto() {
		return sel.Drivers(), nil
	}

	switch target.System.Family() {
	case platform.FamilyKMS:
		return defaultsFor(target.CPU)
	case platform.FamilyDarwin, platform.FamilyWindows, platform.FamilyCygwin, platform.FamilyHaiku:
		return clone(softwareOnly), nil
	}

	return nil, UnsupportedPlatform{OS: string(target.System)}
}

// Defaults returns the KMS default set for a CPU family.
func Defaults(cpu platform.CPUFamily) ([]string, error) {
	return defaultsFor(cpu)
}

func defaultsFor(cpu platform.CPUFamily) ([]string, error) {
	info, ok := platform.LookupCPU(cpu)
	if ok {
		if list, ok := defaultSets[info.Group]; ok {
			return clone(list), nil
		}
	}

	return nil, UnsupportedArchitecture{Arch: string(cpu)}
}

func clone(list []string) []string {
	result := make([]string, len(list))
	copy(result, list)
	return result
}
