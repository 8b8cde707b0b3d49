// Package catalogs reconciles remote font repositories with the fonts already
// on the machine.
//
// A Catalog maps each family name to one Font aggregate. The aggregate holds
// the family as published by every repository plus what is installed at each
// Location, resolving local state lazily through a Resolver and driving
// install and uninstall.
//
// Example usage:
//
//	catalog := catalogs.Build(repoFonts, localEntries,
//	    catalogs.WithResolver(resolver),
//	    catalogs.WithRepositoryOrder("Google Fonts", "Open Font Repository"),
//	)
//	font, err := catalog.Lookup("roboto")
//	if err != nil {
//	    return err
//	}
//	if repos, ok := font.HasUpdate(catalogs.LocationUser); ok {
//	    _, err = font.Install(ctx, catalogs.LocationUser, repos[0])
//	}
package catalogs

import (
	"maps"
	"slices"

	"golang.org/x/text/cases"

	"github.com/agentstation/fontmap/pkg/errors"
)

// Catalog maps family names to Font aggregates.
//
// The family map is fixed once Build returns; aggregates are mutated in place
// and guard themselves, so different families may be used concurrently.
type Catalog struct {
	fonts map[string]*Font
	env   *environment
}

// Build merges repository entries and an initial local scan into a catalog.
//
// Repositories are visited in name order and their entries in slice order, so
// the result never depends on map iteration. A repository listing the same
// family twice keeps the later entry. A local entry replaces any earlier one
// for the same family and location. Local records without a family are
// skipped since they cannot be keyed. With WithScannedLocations, families the
// scan did not report under any casing get the uninstalled sentinel at every
// scanned location.
func Build(repos map[string][]RepoFont, local []LocalEntry, opts ...Option) *Catalog {
	env := defaultEnvironment()
	for _, opt := range opts {
		opt(env)
	}

	c := &Catalog{
		fonts: make(map[string]*Font),
		env:   env,
	}

	for _, name := range slices.Sorted(maps.Keys(repos)) {
		for _, entry := range repos[name] {
			c.font(entry.Family).repo[name] = entry.clone()
		}
	}

	for _, entry := range local {
		if entry.Font.Family == nil {
			env.logger.Debug().Str("location", entry.Location.String()).Msg("Skipping local record without family")
			continue
		}
		family := *entry.Font.Family
		c.font(family).local[entry.Location] = entry.Font.clone()
	}

	if len(env.scanned) > 0 {
		folder := cases.Fold()
		seen := make(map[string]bool)
		for _, entry := range local {
			if entry.Font.Family != nil {
				seen[folder.String(*entry.Font.Family)] = true
			}
		}
		for name, f := range c.fonts {
			if seen[folder.String(name)] {
				continue
			}
			for _, loc := range env.scanned {
				if _, ok := f.local[loc]; !ok {
					f.local[loc] = Uninstalled()
				}
			}
		}
	}

	return c
}

// font returns the aggregate for family, creating it if needed.
func (c *Catalog) font(family string) *Font {
	f, ok := c.fonts[family]
	if !ok {
		f = newFont(family, c.env)
		c.fonts[family] = f
	}
	return f
}

// Font returns the aggregate for an exact family name.
func (c *Catalog) Font(family string) (*Font, error) {
	if f, ok := c.fonts[family]; ok {
		return f, nil
	}
	return nil, errors.NewNotFoundError("family", family)
}

// Lookup returns the aggregate for family, falling back to a case-insensitive match.
// When several families fold to the same name the alphabetically first wins.
func (c *Catalog) Lookup(family string) (*Font, error) {
	if f, ok := c.fonts[family]; ok {
		return f, nil
	}
	folder := cases.Fold()
	want := folder.String(family)
	for _, name := range c.Families() {
		if folder.String(name) == want {
			return c.fonts[name], nil
		}
	}
	return nil, errors.NewNotFoundError("family", family)
}

// Len returns the number of families.
func (c *Catalog) Len() int {
	return len(c.fonts)
}

// Families returns every family name, sorted.
func (c *Catalog) Families() []string {
	return slices.Sorted(maps.Keys(c.fonts))
}

// Fonts returns every aggregate, sorted by family.
func (c *Catalog) Fonts() []*Font {
	fonts := make([]*Font, 0, len(c.fonts))
	for _, name := range c.Families() {
		fonts = append(fonts, c.fonts[name])
	}
	return fonts
}

// Repositories returns the names of all repositories contributing to the
// catalog, in priority order.
func (c *Catalog) Repositories() []string {
	seen := make(map[string]struct{})
	for _, f := range c.fonts {
		for name := range f.repo {
			seen[name] = struct{}{}
		}
	}
	return c.env.sortRepositories(slices.Collect(maps.Keys(seen)))
}

// Snapshot copies the current state of every aggregate without resolving anything.
func (c *Catalog) Snapshot() map[string]Snapshot {
	out := make(map[string]Snapshot, len(c.fonts))
	for name, f := range c.fonts {
		out[name] = f.Snapshot()
	}
	return out
}

// sortRepositories orders names by configured priority, then alphabetically.
func (env *environment) sortRepositories(names []string) []string {
	rank := make(map[string]int, len(env.order))
	for i, name := range env.order {
		if _, dup := rank[name]; !dup {
			rank[name] = i
		}
	}
	slices.SortFunc(names, func(a, b string) int {
		ra, aok := rank[a]
		rb, bok := rank[b]
		switch {
		case aok && bok:
			return ra - rb
		case aok:
			return -1
		case bok:
			return 1
		}
		if a < b {
			return -1
		}
		if a > b {
			return 1
		}
		return 0
	})
	return names
}
