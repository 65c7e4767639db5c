package kit

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Discover lists immediate subdirectories of root that contain at least one
// file matching the naming grammar, i.e. the set of usable kit directories
// under a library root.
func Discover(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	var kits []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		dir := filepath.Join(root, e.Name())
		if hasGrammarMatch(dir) {
			kits = append(kits, dir)
		}
	}
	sort.Strings(kits)
	return kits, nil
}

func hasGrammarMatch(dir string) bool {
	files, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		stem := strings.TrimSuffix(f.Name(), filepath.Ext(f.Name()))
		if _, ok := parseFilename(stem); ok {
			return true
		}
	}
	return false
}
