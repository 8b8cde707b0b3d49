package catalogs

import (
	"cmp"
	"slices"
	"strings"
	"sync"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

var initMatcher = sync.OnceFunc(func() {
	algo.Init("default")
})

// SearchOptions narrows a catalog search.
type SearchOptions struct {
	// Repository keeps only families that repository publishes.
	Repository string
	// Installed keeps only families installed at some location.
	Installed bool
	// Limit caps the number of results, zero means no cap.
	Limit int
}

// SearchResult is one family matching a query.
type SearchResult struct {
	Font  *Font
	Score int
}

// Search fuzzy matches query against every family name.
//
// Results are ordered by score, best first, then by family. An empty query
// matches every family with score zero.
func (c *Catalog) Search(query string, opts SearchOptions) []SearchResult {
	initMatcher()

	pattern := []rune(strings.ToLower(strings.TrimSpace(query)))
	slab := util.MakeSlab(100*1024, 2048)

	var results []SearchResult
	for _, name := range c.Families() {
		font := c.fonts[name]
		if opts.Repository != "" && !font.InRepo(opts.Repository) {
			continue
		}

		score := 0
		if len(pattern) > 0 {
			chars := util.ToChars([]byte(name))
			result, _ := algo.FuzzyMatchV2(false, true, true, &chars, pattern, false, slab)
			if result.Start < 0 {
				continue
			}
			score = result.Score
		}

		if opts.Installed && !font.InstalledAnywhere() {
			continue
		}
		results = append(results, SearchResult{Font: font, Score: score})
	}

	slices.SortStableFunc(results, func(a, b SearchResult) int {
		if a.Score != b.Score {
			return cmp.Compare(b.Score, a.Score)
		}
		return cmp.Compare(a.Font.Family(), b.Font.Family())
	})

	if opts.Limit > 0 && len(results) > opts.Limit {
		results = results[:opts.Limit]
	}
	return results
}
