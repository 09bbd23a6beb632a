// Package scan finds downloaded game files beneath an input directory.
package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Source is one game file and the bucket it was filed under.
type Source struct {
	// Path is the absolute or root-joined path of the file.
	Path string
	// RelPath is Path relative to the scan root; used for ordering.
	RelPath string
	// Name is the file's base name.
	Name string
	// Bucket is the name of the directory containing the file (win, loss, draw).
	Bucket string
}

// Matcher reports whether a file name should be scanned.
type Matcher func(name string) bool

// ExtensionMatcher matches names whose extension equals one of exts ignoring case.
func ExtensionMatcher(exts ...string) Matcher {
	set := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		set[ext] = struct{}{}
	}
	return func(name string) bool {
		_, ok := set[strings.ToLower(filepath.Ext(name))]
		return ok
	}
}

// Listing is the outcome of a scan.
type Listing struct {
	Sources []Source
	// Unreadable holds entries below the root that could not be read. Files
	// inside an unreadable directory are missing from Sources.
	Unreadable []Unreadable
}

// Unreadable is an entry the walk had to leave out.
type Unreadable struct {
	RelPath string
	Err     error
}

// Games walks root recursively and returns every matching file sorted by
// relative path. A missing root yields an empty listing; an unreadable root
// is an error, while unreadable entries below it are recorded and skipped.
func Games(root string, match Matcher) (Listing, error) {
	root = filepath.Clean(root)
	if match == nil {
		match = ExtensionMatcher(".pgn")
	}
	if _, err := os.Stat(root); err != nil {
		if os.IsNotExist(err) {
			return Listing{}, nil
		}
		return Listing{}, fmt.Errorf("stat input dir: %w", err)
	}

	var listing Listing
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			rel, _ := filepath.Rel(root, path)
			listing.Unreadable = append(listing.Unreadable, Unreadable{RelPath: rel, Err: walkErr})
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !match(d.Name()) {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		listing.Sources = append(listing.Sources, Source{
			Path:    path,
			RelPath: rel,
			Name:    d.Name(),
			Bucket:  filepath.Base(filepath.Dir(path)),
		})
		return nil
	})
	if err != nil {
		return Listing{}, fmt.Errorf("scan %s: %w", root, err)
	}

	sort.Slice(listing.Sources, func(i, j int) bool {
		return listing.Sources[i].RelPath < listing.Sources[j].RelPath
	})
	return listing, nil
}

// Open opens the source file for reading.
func (s Source) Open() (*os.File, error) {
	return os.Open(s.Path)
}
