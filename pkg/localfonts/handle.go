// Package localfonts finds the fonts already installed on the machine and
// turns them into catalogs.LocalFont records.
//
// An Enumerator reports raw handles, one per face. The Resolver groups the
// handles of a family by location and derives variant names from the full
// name of each face.
package localfonts

import (
	"time"
)

// Handle is one font face as reported by the system.
type Handle struct {
	FullName       string
	PostScriptName string
	Family         string
	// Path is empty for faces that exist only in memory.
	Path    string
	ModTime time.Time
}

// Enumerator lists installed font faces.
type Enumerator interface {
	// Fonts returns the faces whose family matches family, ignoring case.
	Fonts(family string) ([]Handle, error)
	// All returns every face.
	All() ([]Handle, error)
}

// Handles is a fixed set of faces, for faces registered in memory and tests.
type Handles []Handle

// Fonts implements Enumerator.
func (h Handles) Fonts(family string) ([]Handle, error) {
	var out []Handle
	for _, handle := range h {
		if sameFamily(handle.Family, family) {
			out = append(out, handle)
		}
	}
	return out, nil
}

// All implements Enumerator.
func (h Handles) All() ([]Handle, error) {
	return append([]Handle(nil), h...), nil
}
