package localfonts

import (
	"maps"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/text/cases"

	"github.com/agentstation/fontmap/pkg/catalogs"
	"github.com/agentstation/fontmap/pkg/constants"
	"github.com/agentstation/fontmap/pkg/logging"
)

// Resolver implements catalogs.Resolver on top of an Enumerator.
type Resolver struct {
	enum   Enumerator
	home   string
	logger *zerolog.Logger
}

var _ catalogs.Resolver = (*Resolver)(nil)

// NewResolver creates a resolver. Faces stored under home resolve to the
// user location.
func NewResolver(enum Enumerator, home string, logger *zerolog.Logger) *Resolver {
	if logger == nil {
		logger = logging.Default()
	}
	return &Resolver{enum: enum, home: home, logger: logger}
}

// Resolve returns one record per location holding faces of family.
// Enumeration failures are logged and reported as nothing found.
func (r *Resolver) Resolve(family string) []catalogs.LocalEntry {
	handles, err := r.enum.Fonts(family)
	if err != nil {
		r.logger.Warn().Err(err).Str("family", family).Msg("Font enumeration failed")
		return nil
	}
	return r.group(family, handles)
}

// Scan returns the records of every installed family, sorted by family then
// location. It feeds the initial local scan of a catalog.
func (r *Resolver) Scan() ([]catalogs.LocalEntry, error) {
	handles, err := r.enum.All()
	if err != nil {
		return nil, err
	}

	byFamily := make(map[string][]Handle)
	for _, h := range handles {
		if h.Family == "" {
			continue
		}
		byFamily[h.Family] = append(byFamily[h.Family], h)
	}

	var entries []catalogs.LocalEntry
	for _, family := range slices.Sorted(maps.Keys(byFamily)) {
		entries = append(entries, r.group(family, byFamily[family])...)
	}
	return entries, nil
}

// group builds one record per location from the handles of family.
func (r *Resolver) group(family string, handles []Handle) []catalogs.LocalEntry {
	type acc struct {
		files    map[string]string
		variants map[string]struct{}
		modified time.Time
	}
	byLoc := make(map[catalogs.Location]*acc)

	for _, h := range handles {
		loc := Locate(h.Path, r.home)
		a, ok := byLoc[loc]
		if !ok {
			a = &acc{files: make(map[string]string), variants: make(map[string]struct{})}
			byLoc[loc] = a
		}
		variant := VariantName(family, h.FullName, h.PostScriptName)
		a.variants[variant] = struct{}{}
		if h.Path != "" {
			a.files[variant] = h.Path
		}
		if h.ModTime.After(a.modified) {
			a.modified = h.ModTime
		}
	}

	entries := make([]catalogs.LocalEntry, 0, len(byLoc))
	for _, loc := range catalogs.Locations() {
		a, ok := byLoc[loc]
		if !ok {
			continue
		}
		var modified *time.Time
		if loc != catalogs.LocationMemory && !a.modified.IsZero() {
			m := a.modified
			modified = &m
		}
		entries = append(entries, catalogs.LocalEntry{
			Location: loc,
			Font:     catalogs.NewLocalFont(family, slices.Sorted(maps.Keys(a.variants)), a.files, modified),
		})
	}
	return entries
}

// Locate maps a face path to its location: no path is memory, a path under
// home is user, anything else is system.
func Locate(path, home string) catalogs.Location {
	if path == "" {
		return catalogs.LocationMemory
	}
	if home != "" {
		rel, err := filepath.Rel(home, path)
		if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel) {
			return catalogs.LocationUser
		}
	}
	return catalogs.LocationSystem
}

// VariantName derives a variant from a face's full name by removing the
// family name and normalizing separators. "Roboto Bold Italic" in family
// "Roboto" is "Bold Italic"; a face named just "Roboto" is "Regular". When the
// full name is empty the PostScript style suffix is used.
func VariantName(family, fullName, postScriptName string) string {
	name := fullName
	if name == "" {
		if _, style, ok := strings.Cut(postScriptName, "-"); ok {
			name = style
		}
	}

	folder := cases.Fold()
	if folder.String(name[:min(len(name), len(family))]) == folder.String(family) {
		name = name[len(family):]
	} else {
		name = strings.Replace(name, family, "", 1)
	}

	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return constants.DefaultVariant
	}
	return name
}

func sameFamily(a, b string) bool {
	folder := cases.Fold()
	return folder.String(a) == folder.String(b)
}
