package catalogs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/agentstation/fontmap/pkg/logging"
)

// countingResolver returns fixed records and counts calls per family.
type countingResolver struct {
	mu      sync.Mutex
	records map[string][]LocalEntry
	calls   map[string]int
}

func newCountingResolver() *countingResolver {
	return &countingResolver{
		records: make(map[string][]LocalEntry),
		calls:   make(map[string]int),
	}
}

func (r *countingResolver) set(family string, entries ...LocalEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[family] = entries
}

func (r *countingResolver) Resolve(family string) []LocalEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls[family]++
	return r.records[family]
}

func (r *countingResolver) count(family string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[family]
}

// mapDownloader serves bytes per URL.
type mapDownloader map[string][]byte

func (d mapDownloader) Download(_ context.Context, url string) ([]byte, error) {
	data, ok := d[url]
	if !ok {
		return nil, fmt.Errorf("no such url %s", url)
	}
	return data, nil
}

func date(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func roboto() RepoFont {
	return RepoFont{
		Family:   "Roboto",
		Variants: []string{"Regular", "Bold"},
		Files: map[string]string{
			"Regular": "http://x/r.ttf",
			"Bold":    "http://x/b.ttf",
		},
	}
}

func quiet() Option {
	return WithLogger(logging.NewNopLogger())
}
