package fontmap

import (
	"reflect"
	"sync"

	"github.com/agentstation/fontmap/pkg/catalogs"
)

// Hook function types for repository catalog changes seen by Sync.
type (
	// FamilyAddedHook is called when a repository starts listing a family.
	FamilyAddedHook func(repository string, font catalogs.RepoFont)

	// FamilyUpdatedHook is called when a repository's entry for a family changes.
	FamilyUpdatedHook func(repository string, old, new catalogs.RepoFont)

	// FamilyRemovedHook is called when a repository stops listing a family.
	FamilyRemovedHook func(repository string, font catalogs.RepoFont)
)

// hooks manages callbacks for catalog changes.
type hooks struct {
	mu              sync.RWMutex
	onFamilyAdded   []FamilyAddedHook
	onFamilyUpdated []FamilyUpdatedHook
	onFamilyRemoved []FamilyRemovedHook
}

func newHooks() *hooks {
	return &hooks{}
}

// OnFamilyAdded registers a callback for families a repository starts listing.
func (c *Client) OnFamilyAdded(fn FamilyAddedHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onFamilyAdded = append(c.hooks.onFamilyAdded, fn)
}

// OnFamilyUpdated registers a callback for changed repository entries.
func (c *Client) OnFamilyUpdated(fn FamilyUpdatedHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onFamilyUpdated = append(c.hooks.onFamilyUpdated, fn)
}

// OnFamilyRemoved registers a callback for families a repository drops.
func (c *Client) OnFamilyRemoved(fn FamilyRemovedHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onFamilyRemoved = append(c.hooks.onFamilyRemoved, fn)
}

// byFamily indexes entries by family. A family listed twice keeps its last
// entry and its first position.
func byFamily(fonts []catalogs.RepoFont) (order []string, index map[string]catalogs.RepoFont) {
	index = make(map[string]catalogs.RepoFont, len(fonts))
	for _, f := range fonts {
		if _, ok := index[f.Family]; !ok {
			order = append(order, f.Family)
		}
		index[f.Family] = f
	}
	return order, index
}

// diff compares two entry lists of one repository. previous[i] is the old
// entry of updated[i].
func diff(oldFonts, newFonts []catalogs.RepoFont) (added, updated, removed, previous []catalogs.RepoFont) {
	oldOrder, oldIndex := byFamily(oldFonts)
	newOrder, newIndex := byFamily(newFonts)

	for _, family := range newOrder {
		cur := newIndex[family]
		old, ok := oldIndex[family]
		switch {
		case !ok:
			added = append(added, cur)
		case !reflect.DeepEqual(old, cur):
			updated = append(updated, cur)
			previous = append(previous, old)
		}
	}
	for _, family := range oldOrder {
		if _, ok := newIndex[family]; !ok {
			removed = append(removed, oldIndex[family])
		}
	}
	return added, updated, removed, previous
}

// trigger runs the registered hooks for one repository's changes.
func (h *hooks) trigger(repository string, added, updated, removed, previous []catalogs.RepoFont) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, f := range added {
		for _, hook := range h.onFamilyAdded {
			hook(repository, f)
		}
	}
	for i, f := range updated {
		for _, hook := range h.onFamilyUpdated {
			hook(repository, previous[i], f)
		}
	}
	for _, f := range removed {
		for _, hook := range h.onFamilyRemoved {
			hook(repository, f)
		}
	}
}
