// Package cache keeps the last fetched payload of each repository on disk,
// zstd-compressed, so catalogs can be built without the network.
package cache

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/spf13/afero"
	"github.com/zeebo/blake3"

	"github.com/agentstation/fontmap/pkg/constants"
	"github.com/agentstation/fontmap/pkg/errors"
)

const extension = ".json.zst"

// Encoder and decoder are safe for concurrent use and reused across calls.
var (
	encoder *zstd.Encoder
	decoder *zstd.Decoder
)

func init() {
	var err error
	encoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("cache: zstd encoder initialization failed: " + err.Error())
	}
	decoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("cache: zstd decoder initialization failed: " + err.Error())
	}
}

// Store reads and writes cached payloads under one directory.
type Store struct {
	fs  afero.Fs
	dir string
}

// New returns a store rooted at dir.
func New(fs afero.Fs, dir string) *Store {
	return &Store{fs: fs, dir: dir}
}

// Dir returns the cache directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the cache file of a repository.
func (s *Store) Path(repository string) string {
	return filepath.Join(s.dir, fileName(repository)+extension)
}

// fileName maps a repository name to a safe file name. The suffix is a short
// digest of the raw name, so names that sanitize alike stay distinct.
func fileName(repository string) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, repository)
	return safe + "-" + Digest([]byte(repository))[:8]
}

// Digest returns the hex BLAKE3 digest of a payload.
func Digest(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Has reports whether a payload is cached for repository.
func (s *Store) Has(repository string) bool {
	ok, err := afero.Exists(s.fs, s.Path(repository))
	return err == nil && ok
}

// Load returns the cached payload of repository, or an *errors.NotFoundError.
func (s *Store) Load(repository string) ([]byte, error) {
	path := s.Path(repository)
	compressed, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("cache", repository)
		}
		return nil, errors.WrapIO("read", path, err)
	}
	data, err := decoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, errors.NewParseError("zstd", path, err.Error(), err)
	}
	return data, nil
}

// Save stores data for repository. changed is false when the cached payload
// already has the same digest, in which case nothing is written.
func (s *Store) Save(repository string, data []byte) (changed bool, err error) {
	if old, err := s.Load(repository); err == nil && Digest(old) == Digest(data) {
		return false, nil
	}

	if err := s.fs.MkdirAll(s.dir, constants.DirPermissions); err != nil {
		return false, errors.WrapIO("create", s.dir, err)
	}

	path := s.Path(repository)
	tmp := path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, encoder.EncodeAll(data, nil), constants.FilePermissions); err != nil {
		return false, errors.WrapIO("write", tmp, err)
	}
	if err := s.fs.Rename(tmp, path); err != nil {
		_ = s.fs.Remove(tmp)
		return false, errors.WrapIO("rename", path, err)
	}
	return true, nil
}

// Remove deletes the cached payload of repository, if any.
func (s *Store) Remove(repository string) error {
	err := s.fs.Remove(s.Path(repository))
	if err != nil && !os.IsNotExist(err) {
		return errors.WrapIO("delete", s.Path(repository), err)
	}
	return nil
}
