package catalogs

import (
	"maps"
	"slices"
	"time"
)

// LocalFont is what is known about one family at one location.
//
// Every field is optional. A nil field has not been resolved yet; a resolved
// empty list is non-nil. A record whose Installed is false is the uninstalled
// sentinel: the resolver ran (or an uninstall succeeded) and nothing is there.
type LocalFont struct {
	Family       *string           `json:"family,omitempty" yaml:"family,omitempty"`
	Variants     []string          `json:"variants,omitempty" yaml:"variants,omitempty"`
	Files        map[string]string `json:"files,omitempty" yaml:"files,omitempty"` // variant -> local path
	LastModified *time.Time        `json:"last_modified,omitempty" yaml:"last_modified,omitempty"`
	Installed    *bool             `json:"installed,omitempty" yaml:"installed,omitempty"`
}

// LocalEntry pairs a record with the location it describes.
type LocalEntry struct {
	Location Location
	Font     LocalFont
}

// NewLocalFont returns a fully resolved, installed record.
// A nil modified time leaves LastModified unresolved (in-memory faces).
func NewLocalFont(family string, variants []string, files map[string]string, modified *time.Time) LocalFont {
	installed := true
	if variants == nil {
		variants = []string{}
	}
	if files == nil {
		files = map[string]string{}
	}
	return LocalFont{
		Family:       &family,
		Variants:     variants,
		Files:        files,
		LastModified: modified,
		Installed:    &installed,
	}
}

// Uninstalled returns the sentinel record.
func Uninstalled() LocalFont {
	installed := false
	return LocalFont{Installed: &installed}
}

// IsSentinel reports whether the record marks "resolved, nothing there".
func (l LocalFont) IsSentinel() bool {
	return l.Installed != nil && !*l.Installed
}

// FamilyName returns the family or "" when unresolved.
func (l LocalFont) FamilyName() string {
	if l.Family == nil {
		return ""
	}
	return *l.Family
}

func (l LocalFont) clone() LocalFont {
	out := LocalFont{
		Variants: slices.Clone(l.Variants),
		Files:    maps.Clone(l.Files),
	}
	if l.Family != nil {
		family := *l.Family
		out.Family = &family
	}
	if l.LastModified != nil {
		modified := *l.LastModified
		out.LastModified = &modified
	}
	if l.Installed != nil {
		installed := *l.Installed
		out.Installed = &installed
	}
	return out
}
