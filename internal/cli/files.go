package cli

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pordosol/pordosol-ls/internal/utils"
)

// Extension is the file extension of Por Do Sol sources.
const Extension = ".pds"

// DefaultPattern selects every source below the workspace root.
const DefaultPattern = "**/*" + Extension

// expandPatterns resolves doublestar patterns relative to root into a sorted
// list of files. A pattern matching nothing is an error so typos are noticed.
func expandPatterns(root string, patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		patterns = []string{DefaultPattern}
	}

	var files []string
	for _, pattern := range patterns {
		if !filepath.IsAbs(pattern) {
			pattern = filepath.Join(root, pattern)
		}
		if !doublestar.ValidatePathPattern(pattern) {
			return nil, fmt.Errorf("invalid pattern %q", pattern)
		}
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("expanding %q: %w", pattern, err)
		}
		if len(matches) == 0 && pattern != filepath.Join(root, DefaultPattern) {
			return nil, fmt.Errorf("no files match %q", pattern)
		}
		for _, m := range matches {
			files = utils.AppendUnique(files, m)
		}
	}
	sort.Strings(files)
	return files, nil
}
