package merge

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// fileExt matches the per-symbol files written by the generator.
const fileExt = ".txt"

// File is one per-symbol input.
type File struct {
	ID     int // 1-based, in name order
	Symbol string
	Path   string
}

// Discover lists every regular *.txt file in dir, sorted by name.
func Discover(dir string) ([]File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.Type().IsRegular() || filepath.Ext(e.Name()) != fileExt {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	files := make([]File, len(names))
	for i, name := range names {
		files[i] = File{
			ID:     i + 1,
			Symbol: strings.TrimSuffix(name, fileExt),
			Path:   filepath.Join(dir, name),
		}
	}
	return files, nil
}

// partition splits files into n contiguous groups. The first group takes the
// remainder.
func partition(files []File, n int) [][]File {
	if n > len(files) {
		n = len(files)
	}
	if n < 1 {
		return nil
	}

	per := len(files) / n
	first := per + len(files)%n

	groups := make([][]File, 0, n)
	groups = append(groups, files[:first])
	for start := first; start < len(files); start += per {
		groups = append(groups, files[start:start+per])
	}
	return groups
}
