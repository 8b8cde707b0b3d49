package localfonts

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"seehuhn.de/go/sfnt"

	"github.com/agentstation/fontmap/pkg/errors"
	"github.com/agentstation/fontmap/pkg/logging"
)

// fontExtensions are the file types the scanner parses.
var fontExtensions = map[string]bool{".ttf": true, ".otf": true}

// DirEnumerator scans font directories and reads each file's name table.
// Parsed files are remembered by path, size and modification time.
type DirEnumerator struct {
	fs     afero.Fs
	dirs   []string
	logger *zerolog.Logger

	mu   sync.Mutex
	memo map[string]memoEntry
}

type memoEntry struct {
	size    int64
	modTime time.Time
	handle  Handle
	ok      bool
}

// NewDirEnumerator scans dirs on fs. Missing directories are ignored.
func NewDirEnumerator(fs afero.Fs, logger *zerolog.Logger, dirs ...string) *DirEnumerator {
	if logger == nil {
		logger = logging.Default()
	}
	return &DirEnumerator{
		fs:     fs,
		dirs:   dirs,
		logger: logger,
		memo:   make(map[string]memoEntry),
	}
}

// Fonts implements Enumerator.
func (d *DirEnumerator) Fonts(family string) ([]Handle, error) {
	all, err := d.All()
	if err != nil {
		return nil, err
	}
	return Handles(all).Fonts(family)
}

// All implements Enumerator.
func (d *DirEnumerator) All() ([]Handle, error) {
	var handles []Handle
	for _, dir := range d.dirs {
		err := afero.Walk(d.fs, dir, func(path string, info fs.FileInfo, err error) error {
			if err != nil {
				if !os.IsNotExist(err) {
					d.logger.Debug().Err(err).Str("path", path).Msg("Skipping unreadable font path")
				}
				return nil
			}
			if info.IsDir() || !fontExtensions[strings.ToLower(filepath.Ext(path))] {
				return nil
			}
			if handle, ok := d.read(path, info); ok {
				handles = append(handles, handle)
			}
			return nil
		})
		if err != nil {
			return nil, errors.WrapIO("scan", dir, err)
		}
	}
	return handles, nil
}

// read parses path, using the memo when the file is unchanged.
func (d *DirEnumerator) read(path string, info fs.FileInfo) (Handle, bool) {
	d.mu.Lock()
	entry, hit := d.memo[path]
	d.mu.Unlock()
	if hit && entry.size == info.Size() && entry.modTime.Equal(info.ModTime()) {
		return entry.handle, entry.ok
	}

	handle, err := d.parse(path, info)
	entry = memoEntry{size: info.Size(), modTime: info.ModTime(), handle: handle, ok: err == nil}
	if err != nil {
		d.logger.Debug().Err(err).Str("path", path).Msg("Skipping unparsable font file")
	}

	d.mu.Lock()
	d.memo[path] = entry
	d.mu.Unlock()
	return entry.handle, entry.ok
}

func (d *DirEnumerator) parse(path string, info fs.FileInfo) (Handle, error) {
	data, err := afero.ReadFile(d.fs, path)
	if err != nil {
		return Handle{}, errors.WrapIO("read", path, err)
	}

	font, err := sfnt.Read(bytes.NewReader(data))
	if err != nil {
		return Handle{}, errors.NewParseError("font", path, err.Error(), err)
	}
	return Handle{
		FullName:       font.FullName(),
		PostScriptName: font.PostScriptName(),
		Family:         font.FamilyName,
		Path:           path,
		ModTime:        info.ModTime(),
	}, nil
}
