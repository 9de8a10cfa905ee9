// Package molfile discovers and loads molecule-string files on disk.
package molfile

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ziadkadry99/molview/internal/molecule"
)

// DefaultMaxFileSize is the maximum file size to load (1 MB).
const DefaultMaxFileSize int64 = 1 << 20

// DefaultInclude matches the usual molecule-string file extensions.
var DefaultInclude = []string{"**/*.mol.txt", "**/*.xyzs"}

// File is a molecule file found during traversal.
type File struct {
	Path        string // Absolute path on disk.
	RelPath     string // Path relative to the root directory, slash separated.
	Size        int64
	ContentHash string // SHA-256 hex digest of the file content.
	Molecule    molecule.Molecule
	Records     int
	Skipped     int
}

// Config controls the behaviour of Walk.
type Config struct {
	RootDir     string
	Include     []string // Glob patterns; empty means DefaultInclude.
	Exclude     []string
	MaxFileSize int64 // 0 = use default
}

// Walk traverses the tree rooted at cfg.RootDir and loads every file that
// matches the include patterns. Files with no parseable atoms are skipped.
func Walk(cfg Config) ([]File, error) {
	root, err := filepath.Abs(cfg.RootDir)
	if err != nil {
		return nil, fmt.Errorf("molfile: resolve root: %w", err)
	}
	include := cfg.Include
	if len(include) == 0 {
		include = DefaultInclude
	}
	maxSize := cfg.MaxFileSize
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}

	var files []File
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		if d.IsDir() {
			if path != root && shouldExcludeDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		if !matchesAny(relPath, include) || matchesAny(relPath, cfg.Exclude) {
			return nil
		}

		info, err := d.Info()
		if err != nil || info.Size() > maxSize {
			return nil
		}

		f, err := Load(path)
		if err != nil || f.Molecule.Len() == 0 {
			return nil
		}
		f.RelPath = filepath.ToSlash(relPath)
		files = append(files, f)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("molfile: traversal: %w", err)
	}
	return files, nil
}

// Load reads and parses a single molecule file. The molecule is named after
// the file with its extensions removed.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("molfile: reading %s: %w", path, err)
	}
	text := string(data)
	atoms := molecule.ParseMoleculeString(text)
	records := molecule.CountRecords(text)
	sum := sha256.Sum256(data)

	return File{
		Path:        path,
		RelPath:     filepath.ToSlash(filepath.Base(path)),
		Size:        int64(len(data)),
		ContentHash: hex.EncodeToString(sum[:]),
		Molecule:    molecule.Molecule{Name: Stem(path), Atoms: atoms},
		Records:     records,
		Skipped:     records - len(atoms),
	}, nil
}

// Stem returns the base name of path without any extensions.
func Stem(path string) string {
	base := filepath.Base(path)
	if i := strings.IndexByte(base, '.'); i > 0 {
		return base[:i]
	}
	return base
}
