package drivers

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/ngld/knossos/packages/galconf/pkg/platform"
)

var (
	x86Defaults  = []string{"r300", "r600", "radeonsi", "nouveau", "virgl", "svga", "swrast", "iris", "crocus", "i915"}
	armDefaults  = []string{"v3d", "vc4", "freedreno", "etnaviv", "nouveau", "svga", "tegra", "virgl", "lima", "panfrost", "swrast"}
	mipsDefaults = []string{"r300", "r600", "radeonsi", "nouveau", "virgl", "swrast"}
)

func TestResolveExplicitPassThrough(t *testing.T) {
	targets := []platform.Platform{
		{System: platform.Linux, CPU: platform.X86_64},
		{System: platform.Darwin, CPU: platform.AArch64},
		{System: platform.Plan9, CPU: platform.X86},
		{System: platform.Linux, CPU: platform.Sparc},
	}
	lists := [][]string{
		{},
		{"radeonsi"},
		{"swrast", "swrast", "not-a-driver"},
		{"auto"},
	}

	for _, target := range targets {
		for _, list := range lists {
			got, err := Resolve(Explicit(list...), target)
			if err != nil {
				t.Errorf("Resolve(%v, %v) failed: %v", list, target, err)
				continue
			}
			if !reflect.DeepEqual(got, list) {
				t.Errorf("Resolve(%v, %v) = %v, want the input unchanged", list, target, got)
			}
		}
	}
}

func TestResolveDefaults(t *testing.T) {
	tests := []struct {
		target platform.Platform
		want   []string
	}{
		{platform.Platform{System: platform.Linux, CPU: platform.X86_64}, x86Defaults},
		{platform.Platform{System: platform.FreeBSD, CPU: platform.X86}, x86Defaults},
		{platform.Platform{System: platform.Linux, CPU: platform.AArch64}, armDefaults},
		{platform.Platform{System: platform.Android, CPU: platform.ARM}, armDefaults},
		{platform.Platform{System: platform.Linux, CPU: platform.RISCV64}, mipsDefaults},
		{platform.Platform{System: platform.NetBSD, CPU: platform.RISCV32}, mipsDefaults},
		{platform.Platform{System: platform.Linux, CPU: platform.MIPS}, mipsDefaults},
		{platform.Platform{System: platform.OpenBSD, CPU: platform.MIPS64}, mipsDefaults},
		{platform.Platform{System: platform.Darwin, CPU: platform.AArch64}, []string{"swrast"}},
		{platform.Platform{System: platform.Windows, CPU: platform.X86_64}, []string{"swrast"}},
		{platform.Platform{System: platform.Cygwin, CPU: platform.X86}, []string{"swrast"}},
		{platform.Platform{System: platform.Haiku, CPU: platform.Sparc}, []string{"swrast"}},
	}

	for _, test := range tests {
		got, err := Resolve(Auto(), test.target)
		if err != nil {
			t.Errorf("Resolve(auto, %v) failed: %v", test.target, err)
			continue
		}
		if !reflect.DeepEqual(got, test.want) {
			t.Errorf("Resolve(auto, %v) = %v, want %v", test.target, got, test.want)
		}
	}
}

func TestResolveReturnsCopies(t *testing.T) {
	target := platform.Platform{System: platform.Linux, CPU: platform.X86_64}
	first, err := Resolve(Auto(), target)
	if err != nil {
		t.Fatal(err)
	}
	first[0] = "mangled"

	second, err := Resolve(Auto(), target)
	if err != nil {
		t.Fatal(err)
	}
	if second[0] != "r300" {
		t.Errorf("mutating a result leaked into the defaults table: %v", second)
	}
}

func TestResolveUnsupportedArchitecture(t *testing.T) {
	_, err := Resolve(Auto(), platform.Platform{System: platform.Linux, CPU: "sparc"})
	if err == nil {
		t.Fatal("Resolve(auto, linux/sparc) succeeded")
	}

	var archErr UnsupportedArchitecture
	if !errors.As(err, &archErr) {
		t.Fatalf("got %T, want UnsupportedArchitecture", err)
	}
	if archErr.Arch != "sparc" {
		t.Errorf("Arch = %q, want sparc", archErr.Arch)
	}

	want := "Unknown architecture sparc. Please pass -Dgallium-drivers to set driver options. Patches gladly accepted to fix this."
	if err.Error() != want {
		t.Errorf("message = %q, want %q", err.Error(), want)
	}

	// CPU families missing from the table fail the same way.
	_, err = Resolve(Auto(), platform.Platform{System: platform.FreeBSD, CPU: "vax"})
	if !errors.As(err, &archErr) || archErr.Arch != "vax" {
		t.Errorf("Resolve(auto, freebsd/vax) = %v, want UnsupportedArchitecture", err)
	}
}

func TestResolveUnsupportedPlatform(t *testing.T) {
	for _, cpu := range []platform.CPUFamily{platform.X86_64, platform.AArch64, "sparc"} {
		_, err := Resolve(Auto(), platform.Platform{System: "plan9", CPU: cpu})

		var osErr UnsupportedPlatform
		if !errors.As(err, &osErr) {
			t.Errorf("Resolve(auto, plan9/%s) = %v, want UnsupportedPlatform", cpu, err)
			continue
		}
		if osErr.OS != "plan9" {
			t.Errorf("OS = %q, want plan9", osErr.OS)
		}
	}

	_, err := Resolve(Auto(), platform.Platform{System: "plan9", CPU: platform.X86})
	want := "Unknown OS plan9. Please pass -Dgallium-drivers to set driver options. Patches gladly accepted to fix this."
	if err == nil || err.Error() != want {
		t.Errorf("message = %v, want %q", err, want)
	}
}

func TestDefaults(t *testing.T) {
	got, err := Defaults(platform.AArch64)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, armDefaults) {
		t.Errorf("Defaults(aarch64) = %v", got)
	}

	if _, err := Defaults(platform.PPC64); err == nil {
		t.Error("Defaults(ppc64) succeeded")
	}
}

func TestParseSelection(t *testing.T) {
	tests := []struct {
		value string
		auto  bool
		want  []string
	}{
		{"auto", true, nil},
		{" auto ", true, nil},
		{"radeonsi,auto", true, nil},
		{"", false, []string{}},
		{" , ", false, []string{}},
		{"radeonsi", false, []string{"radeonsi"}},
		{"radeonsi, swrast,,iris", false, []string{"radeonsi", "swrast", "iris"}},
	}

	for _, test := range tests {
		sel := ParseSelection(test.value)
		if sel.IsAuto() != test.auto {
			t.Errorf("ParseSelection(%q).IsAuto() = %v, want %v", test.value, sel.IsAuto(), test.auto)
			continue
		}
		if !reflect.DeepEqual(sel.Drivers(), test.want) {
			t.Errorf("ParseSelection(%q).Drivers() = %#v, want %#v", test.value, sel.Drivers(), test.want)
		}
	}
}

func TestSelectionZeroValueIsAuto(t *testing.T) {
	var sel Selection
	if !sel.IsAuto() {
		t.Error("zero Selection is not auto")
	}
	if sel.String() != "auto" {
		t.Errorf("String() = %q", sel.String())
	}
	if got := Explicit("a", "b").String(); got != "a,b" {
		t.Errorf("Explicit(a, b).String() = %q", got)
	}
}

func TestExplicitCopiesInput(t *testing.T) {
	input := []string{"radeonsi"}
	sel := Explicit(input...)
	input[0] = "mangled"

	if got := sel.Drivers(); got[0] != "radeonsi" {
		t.Errorf("Explicit kept a reference to its input: %v", got)
	}
}

func TestRegistryLookup(t *testing.T) {
	for _, list := range [][]string{x86Defaults, armDefaults, mipsDefaults} {
		for _, name := range list {
			entry, ok := Lookup(name)
			if !ok {
				t.Errorf("default driver %s is missing from the registry", name)
				continue
			}
			if entry.Status != Available {
				t.Errorf("default driver %s is %v", name, entry.Status)
			}
		}
	}

	entry, ok := Lookup("swr")
	if !ok || entry.Status != Disabled || entry.Reason == "" {
		t.Errorf("Lookup(swr) = %+v, %v; want a disabled entry with a reason", entry, ok)
	}
}

func TestRegistryNamesAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, entry := range Registry() {
		if seen[entry.Name] {
			t.Errorf("duplicate registry entry %s", entry.Name)
		}
		seen[entry.Name] = true
	}
}

func TestCheck(t *testing.T) {
	problems := Check([]string{"radeonsi", "swr", "bogus", "radeonsi"})
	if len(problems) != 3 {
		t.Fatalf("Check() returned %d problems, want 3: %v", len(problems), problems)
	}

	if problems[0].Driver != "swr" || !strings.HasPrefix(problems[0].Message, "disabled") {
		t.Errorf("problems[0] = %v", problems[0])
	}
	if problems[1].Driver != "bogus" || problems[1].Message != "unknown driver" {
		t.Errorf("problems[1] = %v", problems[1])
	}
	if problems[2].Driver != "radeonsi" || problems[2].Message != "listed more than once" {
		t.Errorf("problems[2] = %v", problems[2])
	}

	if problems := Check(x86Defaults); len(problems) != 0 {
		t.Errorf("Check(x86 defaults) = %v", problems)
	}
}
