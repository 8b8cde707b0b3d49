package catalogs

import (
	"time"
)

// UpdateStatus is the outcome of an update check.
type UpdateStatus int

const (
	// UpdateNoLocalCopy means the family is not installed at the location.
	UpdateNoLocalCopy UpdateStatus = iota
	// UpdateUpToDate means no repository has a newer entry.
	UpdateUpToDate
	// UpdateAvailable means at least one repository has a newer entry.
	UpdateAvailable
)

// String returns the status name.
func (s UpdateStatus) String() string {
	switch s {
	case UpdateNoLocalCopy:
		return "not installed"
	case UpdateUpToDate:
		return "up to date"
	case UpdateAvailable:
		return "update available"
	default:
		return "unknown"
	}
}

// UpdateReport describes the update state of one family at one location.
type UpdateReport struct {
	Status UpdateStatus
	// Local is the local copy's modification time, zero for UpdateNoLocalCopy.
	Local time.Time
	// Repositories lists, in priority order, the repositories with a newer entry.
	Repositories []string
	// Errors holds a *errors.DateParseError per repository whose date was
	// malformed. Those repositories are left out of Repositories.
	Errors []error
}

// CheckUpdates compares each repository's last-modified date, read as
// midnight UTC, with the local copy at loc. A repository counts as newer
// only when its date is strictly after the local timestamp.
func (f *Font) CheckUpdates(loc Location) UpdateReport {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.installedLocked(loc) {
		return UpdateReport{Status: UpdateNoLocalCopy}
	}

	local, _ := f.lastModifiedLocked(loc)
	report := UpdateReport{Status: UpdateUpToDate, Local: local}

	for _, name := range f.repositoriesLocked() {
		published, ok, err := f.repo[name].LastModifiedTime(name)
		if err != nil {
			f.env.logger.Warn().
				Err(err).
				Str("repository", name).
				Str("family", f.family).
				Msg("Ignoring repository with malformed date")
			report.Errors = append(report.Errors, err)
			continue
		}
		if ok && published.After(local) {
			report.Repositories = append(report.Repositories, name)
		}
	}

	if len(report.Repositories) > 0 {
		report.Status = UpdateAvailable
	}
	return report
}

// HasUpdate returns the repositories with a newer entry than the copy at loc.
//
// ok is false both when nothing is newer and when there is no local copy at
// all. Use CheckUpdates to tell the two apart.
func (f *Font) HasUpdate(loc Location) ([]string, bool) {
	report := f.CheckUpdates(loc)
	if report.Status != UpdateAvailable {
		return nil, false
	}
	return report.Repositories, true
}
