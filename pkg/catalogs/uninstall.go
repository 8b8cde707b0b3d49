package catalogs

import (
	"context"
	"maps"
	"os"
	"slices"

	"github.com/agentstation/fontmap/pkg/errors"
)

// UninstallResult lists the files an uninstall removed.
type UninstallResult struct {
	Family   string
	Location Location
	Removed  []string
}

// Uninstall deletes every file of the family at loc.
//
// Files are removed one at a time in variant order. On success the location
// holds the sentinel, so the next query reports "not installed" without a
// rescan. On the first failure the remaining deletions are skipped, the
// record keeps the files still on disk, and an *errors.UninstallError lists
// what was removed and what remains.
func (f *Font) Uninstall(ctx context.Context, loc Location) (*UninstallResult, error) {
	if !loc.Installable() {
		return nil, errors.NewValidationError("location", loc.String(), "fonts at this location cannot be uninstalled")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.installedLocked(loc) {
		return nil, errors.NewNotFoundError("installed font", f.family+" ("+loc.String()+")")
	}

	files := f.filesLocked(loc)
	variants := slices.Sorted(maps.Keys(files))
	removed := make([]string, 0, len(variants))

	for i, variant := range variants {
		target := files[variant]
		err := ctx.Err()
		if err == nil {
			err = f.env.fs.Remove(target)
			if os.IsNotExist(err) {
				err = nil
			}
		}
		if err != nil {
			f.keepRemainingLocked(loc, variants[i:], files)
			remaining := make([]string, 0, len(variants)-i)
			for _, v := range variants[i:] {
				remaining = append(remaining, files[v])
			}
			f.env.logger.Error().
				Err(err).
				Str("family", f.family).
				Str("location", loc.String()).
				Strs("remaining", remaining).
				Msg("Uninstall stopped")
			return nil, &errors.UninstallError{
				Family:    f.family,
				Location:  loc.String(),
				Removed:   removed,
				Remaining: remaining,
				Err:       errors.WrapIO("delete", target, err),
			}
		}
		removed = append(removed, target)
	}

	f.local[loc] = Uninstalled()
	f.env.logger.Info().
		Str("family", f.family).
		Str("location", loc.String()).
		Int("files", len(removed)).
		Msg("Uninstalled font")

	return &UninstallResult{Family: f.family, Location: loc, Removed: removed}, nil
}

// keepRemainingLocked narrows the record at loc to the variants still on disk.
func (f *Font) keepRemainingLocked(loc Location, variants []string, files map[string]string) {
	record := f.local[loc].clone()
	remaining := make(map[string]string, len(variants))
	for _, v := range variants {
		remaining[v] = files[v]
	}
	record.Files = remaining
	record.Variants = slices.Clone(variants)
	installed := true
	record.Installed = &installed
	f.local[loc] = record
}
