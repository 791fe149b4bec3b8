package drivers

import "fmt"

const explicitHint = "Please pass -Dgallium-drivers to set driver options. Patches gladly accepted to fix this."

// UnsupportedArchitecture is returned when a KMS system runs on a CPU family
// without a default driver list.
type UnsupportedArchitecture struct {
	Arch string
}

var _ error = (*UnsupportedArchitecture)(nil)

func (e UnsupportedArchitecture) Error() string {
	return fmt.Sprintf("Unknown architecture %s. %s", e.Arch, explicitHint)
}

// UnsupportedPlatform is returned for systems that are neither KMS capable
// nor one of the known software-only systems.
type UnsupportedPlatform struct {
	OS string
}

var _ error = (*UnsupportedPlatform)(nil)

func (e UnsupportedPlatform) Error() string {
	return fmt.Sprintf("Unknown OS %s. %s", e.OS, explicitHint)
}
