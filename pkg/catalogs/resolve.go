package catalogs

import (
	"maps"
	"slices"
	"time"
)

// lookupLocked returns the record cached for loc, resolving once when has
// reports the attribute missing. The boolean is false when the attribute is
// still absent and the caller should use its default. f.mu must be held.
func (f *Font) lookupLocked(loc Location, has func(LocalFont) bool) (LocalFont, bool) {
	if record, ok := f.local[loc]; ok {
		if record.IsSentinel() || has(record) {
			return record, has(record)
		}
	}

	f.resolveLocked(loc)

	record, ok := f.local[loc]
	if !ok {
		return LocalFont{}, false
	}
	return record, has(record)
}

// resolveLocked asks the resolver for the family and stores every record it
// reports. When nothing comes back for loc and the cached record there is
// unresolved, the sentinel is stored so later queries do not rescan. A record
// already known to be installed is kept as is. f.mu must be held.
func (f *Font) resolveLocked(loc Location) {
	var entries []LocalEntry
	if f.env.resolver != nil {
		entries = f.env.resolver.Resolve(f.family)
	}

	found := false
	for _, entry := range entries {
		f.local[entry.Location] = entry.Font.clone()
		if entry.Location == loc {
			found = true
		}
	}
	if !found {
		if record, ok := f.local[loc]; !ok || record.Installed == nil {
			f.local[loc] = Uninstalled()
		}
	}

	f.env.logger.Debug().
		Str("family", f.family).
		Str("location", loc.String()).
		Int("records", len(entries)).
		Bool("found", found).
		Msg("Resolved local font")
}

// Installed reports whether the family is installed at loc.
func (f *Font) Installed(loc Location) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.installedLocked(loc)
}

func (f *Font) installedLocked(loc Location) bool {
	record, ok := f.lookupLocked(loc, func(r LocalFont) bool { return r.Installed != nil })
	return ok && *record.Installed
}

// InstalledAnywhere reports whether the family is installed at any location.
func (f *Font) InstalledAnywhere() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, loc := range Locations() {
		if f.installedLocked(loc) {
			return true
		}
	}
	return false
}

// Variants returns the locally installed variants at loc.
func (f *Font) Variants(loc Location) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	record, ok := f.lookupLocked(loc, func(r LocalFont) bool { return r.Variants != nil })
	if !ok {
		return []string{}
	}
	return slices.Clone(record.Variants)
}

// Files returns the variant to path mapping at loc.
func (f *Font) Files(loc Location) map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.filesLocked(loc)
}

func (f *Font) filesLocked(loc Location) map[string]string {
	record, ok := f.lookupLocked(loc, func(r LocalFont) bool { return r.Files != nil })
	if !ok {
		return map[string]string{}
	}
	return maps.Clone(record.Files)
}

// LastModified returns the local copy's modification time at loc, or the
// current time when it is unknown.
func (f *Font) LastModified(loc Location) time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	modified, _ := f.lastModifiedLocked(loc)
	return modified
}

func (f *Font) lastModifiedLocked(loc Location) (time.Time, bool) {
	record, ok := f.lookupLocked(loc, func(r LocalFont) bool { return r.LastModified != nil })
	if !ok {
		return f.env.now(), false
	}
	return *record.LastModified, true
}

// LocalFamily returns the family name the local copy at loc reports.
func (f *Font) LocalFamily(loc Location) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	record, ok := f.lookupLocked(loc, func(r LocalFont) bool { return r.Family != nil })
	if !ok {
		return ""
	}
	return *record.Family
}

// Refresh drops the cached record for loc and resolves it again.
func (f *Font) Refresh(loc Location) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.local, loc)
	f.resolveLocked(loc)
}
