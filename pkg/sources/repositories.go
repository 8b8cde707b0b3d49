package sources

import (
	"sync"
)

// Repositories is an ordered, thread-safe set of repositories keyed by name.
type Repositories struct {
	mu    sync.RWMutex
	order []string
	repos map[string]Repository
}

// NewRepositories creates a set from repos, in order.
func NewRepositories(repos ...Repository) *Repositories {
	r := &Repositories{repos: make(map[string]Repository)}
	for _, repo := range repos {
		r.Set(repo)
	}
	return r
}

// Get returns a repository by name.
func (r *Repositories) Get(name string) (Repository, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	repo, ok := r.repos[name]
	return repo, ok
}

// Set adds repo at the end, or replaces a repository of the same name in place.
func (r *Repositories) Set(repo Repository) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.repos[repo.Name]; !ok {
		r.order = append(r.order, repo.Name)
	}
	r.repos[repo.Name] = repo
}

// Delete removes a repository by name.
func (r *Repositories) Delete(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.repos[name]; !ok {
		return
	}
	delete(r.repos, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of repositories.
func (r *Repositories) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// List returns the repositories in priority order.
func (r *Repositories) List() []Repository {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Repository, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.repos[name])
	}
	return out
}

// Names returns the repository names in priority order.
func (r *Repositories) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}
