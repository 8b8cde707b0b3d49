package catalogs

import (
	"strings"

	"github.com/agentstation/fontmap/pkg/errors"
)

// Location is the installation scope of a local font copy.
type Location int

const (
	// LocationUser is a per-user install, a path under the user's home directory.
	LocationUser Location = iota
	// LocationSystem is a system-wide install.
	LocationSystem
	// LocationMemory covers faces the system reports without a filesystem path.
	LocationMemory
)

// Locations returns every location in resolution order.
func Locations() []Location {
	return []Location{LocationUser, LocationSystem, LocationMemory}
}

// String returns the lowercase name of the location.
func (l Location) String() string {
	switch l {
	case LocationUser:
		return "user"
	case LocationSystem:
		return "system"
	case LocationMemory:
		return "memory"
	default:
		return "unknown"
	}
}

// IsValid reports whether l is one of the defined locations.
func (l Location) IsValid() bool {
	return l >= LocationUser && l <= LocationMemory
}

// Installable reports whether fonts can be written to and removed from l.
func (l Location) Installable() bool {
	return l == LocationUser || l == LocationSystem
}

// MarshalText implements encoding.TextMarshaler.
func (l Location) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Location) UnmarshalText(text []byte) error {
	parsed, err := ParseLocation(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ParseLocation parses "user", "system" or "memory".
func ParseLocation(s string) (Location, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "user":
		return LocationUser, nil
	case "system":
		return LocationSystem, nil
	case "memory":
		return LocationMemory, nil
	}
	return 0, errors.NewValidationError("location", s, "must be one of user, system, memory")
}
