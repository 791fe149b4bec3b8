package drivers

import "strings"

// AutoValue is the option value that requests the platform defaults
const AutoValue = "auto"

// Selection is either the Auto sentinel or an explicit driver list.
// The zero value is Auto.
type Selection struct {
	drivers  []string
	explicit bool
}

// Auto requests the default driver set for the target platform
func Auto() Selection {
	return Selection{}
}

// Explicit selects exactly the given drivers. No drivers is a valid choice
// and disables Gallium entirely.
func Explicit(drivers ...string) Selection {
	list := make([]string, len(drivers))
	copy(list, drivers)

	return Selection{drivers: list, explicit: true}
}

// FromList turns an option list into a Selection. A list containing "auto"
// anywhere is the sentinel.
func FromList(items []string) Selection {
	for _, item := range items {
		if item == AutoValue {
			return Auto()
		}
	}

	return Explicit(items...)
}

// ParseSelection parses a comma separated option value such as
// "auto" or "radeonsi,swrast". Blank entries are dropped, so an empty
// value selects no drivers.
func ParseSelection(value string) Selection {
	items := make([]string, 0)
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			items = append(items, part)
		}
	}

	return FromList(items)
}

// IsAuto reports whether this is the "use default" sentinel
func (s Selection) IsAuto() bool {
	return !s.explicit
}

// Drivers returns the explicit list, or nil for Auto.
func (s Selection) Drivers() []string {
	if !s.explicit {
		return nil
	}

	list := make([]string, len(s.drivers))
	copy(list, s.drivers)
	return list
}

func (s Selection) String() string {
	if !s.explicit {
		return AutoValue
	}
	return strings.Join(s.drivers, ",")
}
