package theme

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/maruel/natural"
)

// DefaultInclude selects style sheets when no include patterns are given.
var DefaultInclude = []string{"**/*.css"}

// Discover walks dir and returns files matching any of include patterns and
// none of exclude patterns. Patterns use doublestar syntax and are matched
// against slash separated paths relative to dir. Excluded directories are not
// entered. Result is sorted in natural order ("2.css" before "10.css").
func Discover(dir string, include, exclude []string) ([]string, error) {
	if len(include) == 0 {
		include = DefaultInclude
	}
	for _, pattern := range exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern: %s", pattern)
		}
	}
	for _, pattern := range include {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid include pattern: %s", pattern)
		}
	}

	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("unable to resolve theme directory: %w", err)
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}

		if matchAny(exclude, rel) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !matchAny(include, rel) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("unable to walk theme directory: %w", err)
	}

	sort.Sort(natural.StringSlice(files))
	return files, nil
}

func matchAny(patterns []string, path string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, path); ok {
			return true
		}
	}
	return false
}
