package manifest

import (
	"path"
	"sort"
	"strings"
)

// Index groups entries by directory. It is built once and only read afterwards.
type Index struct {
	entries map[string][]Entry
	// subdirs maps a directory to its direct child directory keys, sorted lexicographically.
	subdirs map[string][]string
}

// NewIndex groups entries by directory in a single pass. Entries keep their
// input order; sibling sorting happens when the tree is built.
func NewIndex(entries []Entry) *Index {
	idx := &Index{
		entries: make(map[string][]Entry),
		subdirs: make(map[string][]string),
	}
	for _, e := range entries {
		idx.entries[e.Directory] = append(idx.entries[e.Directory], e)
	}
	for dir := range idx.entries {
		if dir == "" {
			continue
		}
		parent := parentDir(dir)
		idx.subdirs[parent] = append(idx.subdirs[parent], dir)
	}
	for _, dirs := range idx.subdirs {
		sort.Strings(dirs)
	}
	return idx
}

// Directories returns every directory key in lexicographic order.
func (idx *Index) Directories() []string {
	dirs := make([]string, 0, len(idx.entries))
	for dir := range idx.entries {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	return dirs
}

// Entries returns a copy of the entries recorded for dir, in input order.
func (idx *Index) Entries(dir string) []Entry {
	return append([]Entry(nil), idx.entries[dir]...)
}

// childDirs returns the direct subdirectories of dir owned by number.
func (idx *Index) childDirs(dir, number string) []string {
	prefix := number + "_"
	if dir != "" {
		prefix = dir + "/" + prefix
	}
	var matched []string
	for _, child := range idx.subdirs[dir] {
		if strings.HasPrefix(child, prefix) {
			matched = append(matched, child)
		}
	}
	return matched
}

// Orphans returns the directories that no numbered document claims, directly
// or through an ancestor. Their documents never appear in the tree.
func (idx *Index) Orphans() []string {
	reached := make(map[string]bool)
	var visit func(dir string)
	visit = func(dir string) {
		reached[dir] = true
		for _, e := range idx.entries[dir] {
			number, ok := ExtractNumber(e.OriginalName)
			if !ok {
				continue
			}
			for _, child := range idx.childDirs(dir, number) {
				if !reached[child] {
					visit(child)
				}
			}
		}
	}
	visit("")

	var orphans []string
	for _, dir := range idx.Directories() {
		if !reached[dir] {
			orphans = append(orphans, dir)
		}
	}
	return orphans
}

func parentDir(dir string) string {
	parent := path.Dir(dir)
	if parent == "." {
		return ""
	}
	return parent
}
