package catalogs

import (
	"maps"
	"slices"
	"time"

	"github.com/agentstation/fontmap/pkg/constants"
	"github.com/agentstation/fontmap/pkg/errors"
)

// RepoFont is one family as published by one repository.
// Field names follow the webfonts payload shared by Google Fonts and the
// Open Font Repository.
type RepoFont struct {
	Kind         string            `json:"kind,omitempty" yaml:"kind,omitempty"`
	Family       string            `json:"family" yaml:"family"`
	Variants     []string          `json:"variants" yaml:"variants"`
	Subsets      []string          `json:"subsets,omitempty" yaml:"subsets,omitempty"`
	Version      string            `json:"version,omitempty" yaml:"version,omitempty"`
	LastModified string            `json:"lastModified,omitempty" yaml:"last_modified,omitempty"` // YYYY-MM-DD
	Files        map[string]string `json:"files" yaml:"files"`                                     // variant -> download URL
	Commentary   string            `json:"commentary,omitempty" yaml:"commentary,omitempty"`
	Creator      string            `json:"creator,omitempty" yaml:"creator,omitempty"`
}

// ParseRepoDate parses a YYYY-MM-DD date as midnight UTC.
func ParseRepoDate(value string) (time.Time, error) {
	return time.ParseInLocation(constants.RepoDateLayout, value, time.UTC)
}

// LastModifiedTime returns the entry's date as midnight UTC.
// ok is false when the entry carries no date.
func (r RepoFont) LastModifiedTime(repository string) (t time.Time, ok bool, err error) {
	if r.LastModified == "" {
		return time.Time{}, false, nil
	}
	t, err = ParseRepoDate(r.LastModified)
	if err != nil {
		return time.Time{}, false, &errors.DateParseError{
			Repository: repository,
			Family:     r.Family,
			Value:      r.LastModified,
			Err:        err,
		}
	}
	return t, true, nil
}

// SortedVariants returns the variants that have a download URL, sorted by name.
func (r RepoFont) SortedVariants() []string {
	return slices.Sorted(maps.Keys(r.Files))
}

func (r RepoFont) clone() RepoFont {
	r.Variants = slices.Clone(r.Variants)
	r.Subsets = slices.Clone(r.Subsets)
	r.Files = maps.Clone(r.Files)
	return r
}
