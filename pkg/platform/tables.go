package platform

import "sort"

var systems = map[System]Family{
	Linux:     FamilyKMS,
	Android:   FamilyKMS,
	FreeBSD:   FamilyKMS,
	KFreeBSD:  FamilyKMS,
	NetBSD:    FamilyKMS,
	OpenBSD:   FamilyKMS,
	DragonFly: FamilyKMS,
	SunOS:     FamilyKMS,
	Managarm:  FamilyKMS,
	Darwin:    FamilyDarwin,
	Windows:   FamilyWindows,
	Cygwin:    FamilyCygwin,
	Haiku:     FamilyHaiku,
}

var cpus = map[CPUFamily]CPUInfo{
	X86:         {Family: X86, Group: GroupX86, Bits: 32},
	X86_64:      {Family: X86_64, Group: GroupX86, Bits: 64},
	ARM:         {Family: ARM, Group: GroupARM, Bits: 32},
	AArch64:     {Family: AArch64, Group: GroupARM, Bits: 64},
	MIPS:        {Family: MIPS, Group: GroupMIPSRISCV, Bits: 32},
	MIPS64:      {Family: MIPS64, Group: GroupMIPSRISCV, Bits: 64},
	RISCV32:     {Family: RISCV32, Group: GroupMIPSRISCV, Bits: 32},
	RISCV64:     {Family: RISCV64, Group: GroupMIPSRISCV, Bits: 64},
	PPC:         {Family: PPC, Group: GroupOther, Bits: 32, BigEndian: true},
	PPC64:       {Family: PPC64, Group: GroupOther, Bits: 64},
	S390X:       {Family: S390X, Group: GroupOther, Bits: 64, BigEndian: true},
	Sparc:       {Family: Sparc, Group: GroupOther, Bits: 32, BigEndian: true},
	Sparc64:     {Family: Sparc64, Group: GroupOther, Bits: 64, BigEndian: true},
	LoongArch64: {Family: LoongArch64, Group: GroupOther, Bits: 64},
	WASM32:      {Family: WASM32, Group: GroupOther, Bits: 32},
}

// Every GOOS value of the Go distribution, mapped to the name meson reports.
var goSystems = map[string]System{
	"aix":       AIX,
	"android":   Android,
	"darwin":    Darwin,
	"dragonfly": DragonFly,
	"freebsd":   FreeBSD,
	"illumos":   SunOS,
	"ios":       Darwin,
	"js":        Emscripten,
	"linux":     Linux,
	"netbsd":    NetBSD,
	"openbsd":   OpenBSD,
	"plan9":     Plan9,
	"solaris":   SunOS,
	"wasip1":    WASI,
	"windows":   Windows,
	"zos":       ZOS,
}

// Same for GOARCH. meson folds endianness variants into one family.
var goArches = map[string]CPUFamily{
	"386":      X86,
	"amd64":    X86_64,
	"arm":      ARM,
	"arm64":    AArch64,
	"loong64":  LoongArch64,
	"mips":     MIPS,
	"mipsle":   MIPS,
	"mips64":   MIPS64,
	"mips64le": MIPS64,
	"ppc64":    PPC64,
	"ppc64le":  PPC64,
	"riscv64":  RISCV64,
	"s390x":    S390X,
	"wasm":     WASM32,
}

// LookupSystem returns the family of a known system. ok is false for
// systems missing from the table.
func LookupSystem(s System) (family Family, ok bool) {
	family, ok = systems[s]
	return
}

// LookupCPU returns the record of a known CPU family
func LookupCPU(f CPUFamily) (CPUInfo, bool) {
	info, ok := cpus[f]
	return info, ok
}

// KnownSystems lists every system in the family table, sorted by name.
func KnownSystems() []System {
	result := make([]System, 0, len(systems))
	for name := range systems {
		result = append(result, name)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i] < result[j]
	})
	return result
}

// KnownCPUs lists every CPU family record, sorted by group and then name.
func KnownCPUs() []CPUInfo {
	result := make([]CPUInfo, 0, len(cpus))
	for _, info := range cpus {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Group != result[j].Group {
			return result[i].Group < result[j].Group
		}
		return result[i].Family < result[j].Family
	})
	return result
}
