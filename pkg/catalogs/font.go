package catalogs

import (
	"slices"
	"sync"
)

// Font is the merged view of one family across every repository and location.
//
// Local state is resolved lazily: a query for an attribute the cached record
// lacks asks the Resolver once, stores what it reports and falls back to a
// default when nothing is found. Every query and mutation holds the aggregate's
// mutex, so one Font is never mutated from two goroutines at once.
type Font struct {
	mu     sync.Mutex
	family string
	repo   map[string]RepoFont
	local  map[Location]LocalFont
	env    *environment
}

func newFont(family string, env *environment) *Font {
	return &Font{
		family: family,
		repo:   make(map[string]RepoFont),
		local:  make(map[Location]LocalFont),
		env:    env,
	}
}

// Family returns the family name the aggregate is keyed by.
func (f *Font) Family() string {
	return f.family
}

// InRepo reports whether repository publishes the family.
func (f *Font) InRepo(repository string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.repo[repository]
	return ok
}

// Repositories returns the repositories publishing the family, in priority order.
func (f *Font) Repositories() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.repositoriesLocked()
}

func (f *Font) repositoriesLocked() []string {
	names := make([]string, 0, len(f.repo))
	for name := range f.repo {
		names = append(names, name)
	}
	return f.env.sortRepositories(names)
}

// FirstAvailableRepository returns the highest priority repository publishing
// the family. ok is false when no repository does.
func (f *Font) FirstAvailableRepository() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	names := f.repositoriesLocked()
	if len(names) == 0 {
		return "", false
	}
	return names[0], true
}

// RepoFont returns a copy of the entry published by repository.
func (f *Font) RepoFont(repository string) (RepoFont, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	entry, ok := f.repo[repository]
	if !ok {
		return RepoFont{}, false
	}
	return entry.clone(), true
}

// RepoVariants returns the variants repository publishes, or an empty slice.
func (f *Font) RepoVariants(repository string) []string {
	entry, _ := f.RepoFont(repository)
	if entry.Variants == nil {
		return []string{}
	}
	return entry.Variants
}

// RepoFiles returns the variant to URL mapping of repository, or an empty map.
func (f *Font) RepoFiles(repository string) map[string]string {
	entry, _ := f.RepoFont(repository)
	if entry.Files == nil {
		return map[string]string{}
	}
	return entry.Files
}

// RepoSubsets returns the subsets repository lists for the family.
func (f *Font) RepoSubsets(repository string) []string {
	entry, _ := f.RepoFont(repository)
	if entry.Subsets == nil {
		return []string{}
	}
	return entry.Subsets
}

// RepoVersion returns the version string repository lists for the family.
func (f *Font) RepoVersion(repository string) string {
	entry, _ := f.RepoFont(repository)
	return entry.Version
}

// RepoCommentary returns the free-text commentary of repository's entry.
func (f *Font) RepoCommentary(repository string) string {
	entry, _ := f.RepoFont(repository)
	return entry.Commentary
}

// RepoCreator returns the creator recorded by repository's entry.
func (f *Font) RepoCreator(repository string) string {
	entry, _ := f.RepoFont(repository)
	return entry.Creator
}

// Snapshot is a point-in-time copy of an aggregate.
type Snapshot struct {
	Family string                 `json:"family" yaml:"family"`
	Repo   map[string]RepoFont    `json:"repo,omitempty" yaml:"repo,omitempty"`
	Local  map[Location]LocalFont `json:"local,omitempty" yaml:"local,omitempty"`
}

// Snapshot copies the aggregate's current state without resolving anything.
// Later queries may resolve and so invalidate it.
func (f *Font) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := Snapshot{
		Family: f.family,
		Repo:   make(map[string]RepoFont, len(f.repo)),
		Local:  make(map[Location]LocalFont, len(f.local)),
	}
	for name, entry := range f.repo {
		s.Repo[name] = entry.clone()
	}
	for loc, record := range f.local {
		s.Local[loc] = record.clone()
	}
	return s
}

// Locations returns the locations with a cached record, resolved or sentinel.
func (s Snapshot) Locations() []Location {
	locs := make([]Location, 0, len(s.Local))
	for loc := range s.Local {
		locs = append(locs, loc)
	}
	slices.Sort(locs)
	return locs
}
