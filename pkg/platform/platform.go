// Package platform describes the target a driver set is resolved for.
//
// System and CPU family names follow the values meson reports for
// host_machine.system() and host_machine.cpu_family(). Both are open string
// types; the fixed tables in tables.go classify them into families.
package platform

import (
	"fmt"
	"runtime"

	"github.com/rotisserie/eris"
)

// System names an operating system, e.g. "linux" or "darwin"
type System string

// CPUFamily names a CPU architecture family, e.g. "x86_64" or "aarch64"
type CPUFamily string

const (
	Linux      System = "linux"
	Android    System = "android"
	FreeBSD    System = "freebsd"
	KFreeBSD   System = "gnu/kfreebsd"
	NetBSD     System = "netbsd"
	OpenBSD    System = "openbsd"
	DragonFly  System = "dragonfly"
	SunOS      System = "sunos"
	Managarm   System = "managarm"
	Darwin     System = "darwin"
	Windows    System = "windows"
	Cygwin     System = "cygwin"
	Haiku      System = "haiku"
	Plan9      System = "plan9"
	AIX        System = "aix"
	Emscripten System = "emscripten"
	WASI       System = "wasi"
	ZOS        System = "zos"
)

const (
	X86         CPUFamily = "x86"
	X86_64      CPUFamily = "x86_64"
	ARM         CPUFamily = "arm"
	AArch64     CPUFamily = "aarch64"
	MIPS        CPUFamily = "mips"
	MIPS64      CPUFamily = "mips64"
	RISCV32     CPUFamily = "riscv32"
	RISCV64     CPUFamily = "riscv64"
	PPC         CPUFamily = "ppc"
	PPC64       CPUFamily = "ppc64"
	S390X       CPUFamily = "s390x"
	Sparc       CPUFamily = "sparc"
	Sparc64     CPUFamily = "sparc64"
	LoongArch64 CPUFamily = "loongarch64"
	WASM32      CPUFamily = "wasm32"
)

// Family classifies systems by the graphics stack they provide
type Family int

const (
	FamilyOther Family = iota
	// FamilyKMS covers systems with kernel modesetting / DRM support.
	FamilyKMS
	FamilyDarwin
	FamilyWindows
	FamilyCygwin
	FamilyHaiku
)

func (f Family) String() string {
	switch f {
	case FamilyKMS:
		return "kms"
	case FamilyDarwin:
		return "darwin"
	case FamilyWindows:
		return "windows"
	case FamilyCygwin:
		return "cygwin"
	case FamilyHaiku:
		return "haiku"
	default:
		return "other"
	}
}

// ArchGroup collects CPU families that share a default driver list
type ArchGroup int

const (
	GroupOther ArchGroup = iota
	GroupX86
	GroupARM
	// GroupMIPSRISCV covers MIPS and RISC-V, both 32 and 64 bit.
	GroupMIPSRISCV
)

func (g ArchGroup) String() string {
	switch g {
	case GroupX86:
		return "x86"
	case GroupARM:
		return "arm"
	case GroupMIPSRISCV:
		return "mips/riscv"
	default:
		return "other"
	}
}

// CPUInfo is the record stored for every known CPU family
type CPUInfo struct {
	Family CPUFamily
	Group  ArchGroup
	Bits   int
	// BigEndian is only set for families without a little endian variant.
	BigEndian bool
}

// Platform is the (system, CPU family) pair a driver set is resolved for.
type Platform struct {
	System System
	CPU    CPUFamily
}

func (p Platform) String() string {
	return fmt.Sprintf("%s/%s", p.System, p.CPU)
}

// Family looks up the system's family. Unknown systems are FamilyOther.
func (s System) Family() Family {
	family, ok := LookupSystem(s)
	if !ok {
		return FamilyOther
	}
	return family
}

// HasKMS reports whether the system provides kernel modesetting
func (s System) HasKMS() bool {
	return s.Family() == FamilyKMS
}

// FromGo translates Go's GOOS and GOARCH names into a Platform.
func FromGo(goos, goarch string) (Platform, error) {
	system, ok := goSystems[goos]
	if !ok {
		return Platform{}, eris.Errorf("unknown GOOS %s", goos)
	}

	cpu, ok := goArches[goarch]
	if !ok {
		return Platform{}, eris.Errorf("unknown GOARCH %s", goarch)
	}

	return Platform{System: system, CPU: cpu}, nil
}

// Host returns the platform this binary was built for
func Host() (Platform, error) {
	return FromGo(runtime.GOOS, runtime.GOARCH)
}
