package output

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentstation/fontmap"
	"github.com/agentstation/fontmap/pkg/catalogs"
	"github.com/agentstation/fontmap/pkg/sources"
)

const none = "-"

var titleCaser = cases.Title(language.English)

// FontSummary is one row of a font listing.
type FontSummary struct {
	Family       string   `json:"family" yaml:"family"`
	Repositories []string `json:"repositories" yaml:"repositories"`
	Installed    []string `json:"installed" yaml:"installed"`
	Update       string   `json:"update,omitempty" yaml:"update,omitempty"`
	UpdateFrom   []string `json:"update_from,omitempty" yaml:"update_from,omitempty"`
	Score        *int     `json:"score,omitempty" yaml:"score,omitempty"`
}

// Summarize builds the listing row of f. With updates set, every installed
// location is checked against the repositories.
func Summarize(f *catalogs.Font, updates bool) FontSummary {
	s := FontSummary{
		Family:       f.Family(),
		Repositories: f.Repositories(),
		Installed:    []string{},
	}
	var status catalogs.UpdateStatus
	for _, loc := range catalogs.Locations() {
		if !f.Installed(loc) {
			continue
		}
		s.Installed = append(s.Installed, loc.String())
		if !updates || !loc.Installable() {
			continue
		}
		report := f.CheckUpdates(loc)
		if report.Status > status {
			status = report.Status
		}
		for _, repo := range report.Repositories {
			if !slices.Contains(s.UpdateFrom, repo) {
				s.UpdateFrom = append(s.UpdateFrom, repo)
			}
		}
	}
	if status != catalogs.UpdateNoLocalCopy {
		s.Update = status.String()
	}
	return s
}

// SearchSummaries builds listing rows for search results, keeping the score.
func SearchSummaries(results []catalogs.SearchResult, updates bool) []FontSummary {
	rows := make([]FontSummary, 0, len(results))
	for _, r := range results {
		s := Summarize(r.Font, updates)
		score := r.Score
		s.Score = &score
		rows = append(rows, s)
	}
	return rows
}

// SummariesToData renders listing rows. The update and score columns only
// appear when a row carries them.
func SummariesToData(rows []FontSummary) Data {
	var withUpdate, withScore bool
	for _, r := range rows {
		withUpdate = withUpdate || r.Update != ""
		withScore = withScore || r.Score != nil
	}

	data := Data{Headers: []string{"Family", "Repositories", "Installed"}}
	if withUpdate {
		data.Headers = append(data.Headers, "Update")
	}
	if withScore {
		data.Headers = append(data.Headers, "Score")
		data.ColumnAlignment = []Align{AlignLeft, AlignLeft, AlignLeft, AlignRight}
		if withUpdate {
			data.ColumnAlignment = slices.Insert(data.ColumnAlignment, 3, AlignLeft)
		}
	}

	for _, r := range rows {
		row := []string{r.Family, join(r.Repositories), join(r.Installed)}
		if withUpdate {
			update := r.Update
			if len(r.UpdateFrom) > 0 {
				update += " (" + strings.Join(r.UpdateFrom, ", ") + ")"
			}
			row = append(row, orNone(update))
		}
		if withScore {
			score := none
			if r.Score != nil {
				score = strconv.Itoa(*r.Score)
			}
			row = append(row, score)
		}
		data.Rows = append(data.Rows, row)
	}
	return data
}

// RepositoryDetail is what one repository says about a family.
type RepositoryDetail struct {
	Name         string   `json:"name" yaml:"name"`
	Version      string   `json:"version,omitempty" yaml:"version,omitempty"`
	LastModified string   `json:"last_modified,omitempty" yaml:"last_modified,omitempty"`
	Variants     []string `json:"variants" yaml:"variants"`
	Subsets      []string `json:"subsets,omitempty" yaml:"subsets,omitempty"`
	Creator      string   `json:"creator,omitempty" yaml:"creator,omitempty"`
	Commentary   string   `json:"commentary,omitempty" yaml:"commentary,omitempty"`
}

// LocationDetail is the installed copy of a family at one location.
type LocationDetail struct {
	Location     string            `json:"location" yaml:"location"`
	Family       string            `json:"family" yaml:"family"`
	Variants     []string          `json:"variants" yaml:"variants"`
	Files        map[string]string `json:"files,omitempty" yaml:"files,omitempty"`
	LastModified *time.Time        `json:"last_modified,omitempty" yaml:"last_modified,omitempty"`
	Update       string            `json:"update,omitempty" yaml:"update,omitempty"`
	UpdateFrom   []string          `json:"update_from,omitempty" yaml:"update_from,omitempty"`
}

// FontDetail is everything known about one family.
type FontDetail struct {
	Family       string             `json:"family" yaml:"family"`
	Repositories []RepositoryDetail `json:"repositories" yaml:"repositories"`
	Locations    []LocationDetail   `json:"locations" yaml:"locations"`
}

// Describe collects the detail view of f, resolving every location.
func Describe(f *catalogs.Font) FontDetail {
	d := FontDetail{
		Family:       f.Family(),
		Repositories: []RepositoryDetail{},
		Locations:    []LocationDetail{},
	}
	for _, name := range f.Repositories() {
		entry, _ := f.RepoFont(name)
		d.Repositories = append(d.Repositories, RepositoryDetail{
			Name:         name,
			Version:      entry.Version,
			LastModified: entry.LastModified,
			Variants:     f.RepoVariants(name),
			Subsets:      entry.Subsets,
			Creator:      entry.Creator,
			Commentary:   entry.Commentary,
		})
	}
	for _, loc := range catalogs.Locations() {
		if !f.Installed(loc) {
			continue
		}
		ld := LocationDetail{
			Location: loc.String(),
			Family:   f.LocalFamily(loc),
			Variants: f.Variants(loc),
			Files:    f.Files(loc),
		}
		if loc.Installable() {
			modified := f.LastModified(loc)
			ld.LastModified = &modified
			report := f.CheckUpdates(loc)
			ld.Update = report.Status.String()
			ld.UpdateFrom = report.Repositories
		}
		d.Locations = append(d.Locations, ld)
	}
	return d
}

// DetailToData renders a detail view as a property table.
func DetailToData(d FontDetail) Data {
	data := Data{Headers: []string{"Property", "Value"}}
	add := func(k, v string) {
		data.Rows = append(data.Rows, []string{k, orNone(v)})
	}

	add("Family", d.Family)
	for _, r := range d.Repositories {
		prefix := r.Name + " "
		add(prefix+"Variants", join(r.Variants))
		add(prefix+"Version", r.Version)
		add(prefix+"Last Modified", r.LastModified)
		if len(r.Subsets) > 0 {
			add(prefix+"Subsets", join(r.Subsets))
		}
		if r.Creator != "" {
			add(prefix+"Creator", r.Creator)
		}
		if r.Commentary != "" {
			add(prefix+"Commentary", r.Commentary)
		}
	}
	if len(d.Locations) == 0 {
		add("Installed", "")
	}
	for _, l := range d.Locations {
		prefix := titleCaser.String(l.Location) + " "
		add(prefix+"Variants", join(l.Variants))
		if l.Family != d.Family {
			add(prefix+"Family", l.Family)
		}
		for _, variant := range sortedKeys(l.Files) {
			add(prefix+"File "+variant, l.Files[variant])
		}
		if l.LastModified != nil {
			add(prefix+"Last Modified", l.LastModified.Format(time.DateOnly))
		}
		if l.Update != "" {
			update := l.Update
			if len(l.UpdateFrom) > 0 {
				update += " (" + strings.Join(l.UpdateFrom, ", ") + ")"
			}
			add(prefix+"Update", update)
		}
	}
	return data
}

// SyncRow is the printable form of a fontmap.SyncResult.
type SyncRow struct {
	Repository string   `json:"repository" yaml:"repository"`
	Families   int      `json:"families" yaml:"families"`
	Changed    bool     `json:"changed" yaml:"changed"`
	Digest     string   `json:"digest,omitempty" yaml:"digest,omitempty"`
	Added      []string `json:"added,omitempty" yaml:"added,omitempty"`
	Updated    []string `json:"updated,omitempty" yaml:"updated,omitempty"`
	Removed    []string `json:"removed,omitempty" yaml:"removed,omitempty"`
	Error      string   `json:"error,omitempty" yaml:"error,omitempty"`
}

// SyncRows converts refresh results for output.
func SyncRows(results []fontmap.SyncResult) []SyncRow {
	rows := make([]SyncRow, 0, len(results))
	for _, r := range results {
		row := SyncRow{
			Repository: r.Repository,
			Families:   r.Families,
			Changed:    r.Changed,
			Digest:     r.Digest,
			Added:      r.Added,
			Updated:    r.Updated,
			Removed:    r.Removed,
		}
		if r.Err != nil {
			row.Error = r.Err.Error()
		}
		rows = append(rows, row)
	}
	return rows
}

// SyncToData renders refresh results.
func SyncToData(rows []SyncRow) Data {
	data := Data{
		Headers:         []string{"Repository", "Families", "Status", "Added", "Updated", "Removed"},
		ColumnAlignment: []Align{AlignLeft, AlignRight, AlignLeft, AlignRight, AlignRight, AlignRight},
	}
	for _, r := range rows {
		status := "unchanged"
		switch {
		case r.Error != "":
			status = "failed: " + r.Error
		case r.Changed:
			status = "changed"
		}
		data.Rows = append(data.Rows, []string{
			r.Repository,
			strconv.Itoa(r.Families),
			status,
			strconv.Itoa(len(r.Added)),
			strconv.Itoa(len(r.Updated)),
			strconv.Itoa(len(r.Removed)),
		})
	}
	return data
}

// RepositoryRow is the printable form of a configured repository. The key
// itself is never printed.
type RepositoryRow struct {
	Priority int    `json:"priority" yaml:"priority"`
	Name     string `json:"name" yaml:"name"`
	URL      string `json:"url" yaml:"url"`
	Local    bool   `json:"local" yaml:"local"`
	HasKey   bool   `json:"has_key" yaml:"has_key"`
}

// RepositoryRows converts repositories for output, numbering them by priority.
func RepositoryRows(repos []sources.Repository) []RepositoryRow {
	rows := make([]RepositoryRow, 0, len(repos))
	for i, r := range repos {
		rows = append(rows, RepositoryRow{
			Priority: i + 1,
			Name:     r.Name,
			URL:      r.URL,
			Local:    r.IsLocal(),
			HasKey:   r.Key != "",
		})
	}
	return rows
}

// RepositoriesToData renders repositories.
func RepositoriesToData(rows []RepositoryRow) Data {
	data := Data{
		Headers:         []string{"#", "Name", "URL", "Source"},
		ColumnAlignment: []Align{AlignRight, AlignLeft, AlignLeft, AlignLeft},
	}
	for _, r := range rows {
		source := "remote"
		if r.Local {
			source = "local"
		}
		data.Rows = append(data.Rows, []string{strconv.Itoa(r.Priority), r.Name, r.URL, source})
	}
	return data
}

// DirRow names one directory fontmap reads or writes.
type DirRow struct {
	Name string `json:"name" yaml:"name"`
	Path string `json:"path" yaml:"path"`
}

// DirRows lists the data, cache and install directories of a client.
func DirRows(client *fontmap.Client) []DirRow {
	rows := []DirRow{
		{Name: "data", Path: client.DataDir()},
		{Name: "cache", Path: client.CacheDir()},
	}
	for _, loc := range catalogs.Locations() {
		if loc.Installable() {
			rows = append(rows, DirRow{Name: loc.String() + " fonts", Path: orNone(client.InstallDir(loc))})
		}
	}
	return rows
}

// DirsToData renders directories.
func DirsToData(rows []DirRow) Data {
	data := Data{Headers: []string{"Directory", "Path"}}
	for _, r := range rows {
		data.Rows = append(data.Rows, []string{r.Name, r.Path})
	}
	return data
}

// ActionRow reports the outcome of install, download, uninstall or upgrade
// for one family.
type ActionRow struct {
	Family     string   `json:"family" yaml:"family"`
	Action     string   `json:"action" yaml:"action"`
	Repository string   `json:"repository,omitempty" yaml:"repository,omitempty"`
	Location   string   `json:"location,omitempty" yaml:"location,omitempty"`
	Files      []string `json:"files,omitempty" yaml:"files,omitempty"`
	Error      string   `json:"error,omitempty" yaml:"error,omitempty"`
}

// ActionsToData renders per-family outcomes.
func ActionsToData(rows []ActionRow) Data {
	data := Data{
		Headers:         []string{"Family", "Action", "Repository", "Location", "Files", "Result"},
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignLeft, AlignLeft, AlignRight, AlignLeft},
	}
	for _, r := range rows {
		result := "ok"
		if r.Error != "" {
			result = r.Error
		}
		data.Rows = append(data.Rows, []string{
			r.Family,
			r.Action,
			orNone(r.Repository),
			orNone(r.Location),
			fmt.Sprint(len(r.Files)),
			result,
		})
	}
	return data
}

func join(values []string) string {
	if len(values) == 0 {
		return none
	}
	return strings.Join(values, ", ")
}

func orNone(s string) string {
	if s == "" {
		return none
	}
	return s
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
