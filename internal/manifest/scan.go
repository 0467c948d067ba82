package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Scan returns the regular files in dir whose names match tag, sorted.
// Symbolic links to regular files are included. Paths keep dir as given,
// so "./" yields "./A_R1.fastq" rather than the cleaned "A_R1.fastq".
func Scan(dir string, tag Tag) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, tag.Pattern))
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", tag.Pattern, err)
	}

	files := make([]string, 0, len(matches))
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		files = append(files, joinAsGiven(dir, filepath.Base(m)))
	}
	sort.Strings(files)
	return files, nil
}

// joinAsGiven appends name to dir without cleaning dir.
func joinAsGiven(dir, name string) string {
	if dir == "" {
		return name
	}
	sep := string(filepath.Separator)
	return strings.TrimRight(dir, sep) + sep + name
}
