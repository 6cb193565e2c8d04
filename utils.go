package main

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

func splitNameExtension(filename string) (string, string) {
	for i := len(filename) - 1; i > 0; i-- {
		if filename[i] == '.' {
			return filename[:i], filename[i+1:]
		}
	}
	return filename, ""
}

// stripExtension drops the last extension, so "a.b.mp3" becomes "a.b".
// Dotfiles and names without a dot come back unchanged.
func stripExtension(filename string) string {
	name, _ := splitNameExtension(filename)
	return name
}

// withTrailingSeparator makes dir end in exactly one separator so output
// templates can be appended to it. The root directory is returned as is.
func withTrailingSeparator(dir string) string {
	sep := string(filepath.Separator)
	trimmed := strings.TrimRight(dir, sep)
	if trimmed == "" || trimmed == filepath.VolumeName(dir) {
		return dir
	}
	return trimmed + sep
}

// Snapshot is the set of regular file names in a directory.
type Snapshot map[string]struct{}

func TakeSnapshot(dir string) (Snapshot, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	snap := make(Snapshot, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		snap[e.Name()] = struct{}{}
	}
	return snap, nil
}

// NewSince returns the names in s that are not in before, sorted.
func (s Snapshot) NewSince(before Snapshot) []string {
	var names []string
	for name := range s {
		if _, ok := before[name]; !ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
