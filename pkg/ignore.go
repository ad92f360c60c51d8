package dirchecksums

import (
	"bufio"
	"fmt"
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/spf13/afero"
)

// IgnoreSet holds bare entry names that are skipped by the walker.
// Names match a single path component exactly; there are no globs.
type IgnoreSet struct {
	names mapset.Set[string]
}

// NewIgnoreSet creates a set from names. Entries may themselves be
// comma-separated lists.
func NewIgnoreSet(names ...string) *IgnoreSet {
	is := &IgnoreSet{names: mapset.NewThreadUnsafeSet[string]()}
	is.Add(names...)
	return is
}

// Add inserts names, splitting on commas and dropping blanks
func (is *IgnoreSet) Add(names ...string) {
	for _, entry := range names {
		for _, name := range strings.Split(entry, ",") {
			name = strings.TrimSpace(name)
			if name != "" {
				is.names.Add(name)
			}
		}
	}
}

// ShouldIgnore reports whether a bare entry name is in the set
func (is *IgnoreSet) ShouldIgnore(name string) bool {
	if is == nil {
		return false
	}
	return is.names.Contains(name)
}

// Len returns the number of names
func (is *IgnoreSet) Len() int {
	if is == nil {
		return 0
	}
	return is.names.Cardinality()
}

// Names returns the names sorted
func (is *IgnoreSet) Names() []string {
	if is == nil {
		return nil
	}
	names := is.names.ToSlice()
	sort.Strings(names)
	return names
}

// LoadIgnoreFile adds one name per line from a file. Blank lines and lines
// starting with # are skipped.
func (is *IgnoreSet) LoadIgnoreFile(fs afero.Fs, path string) error {
	file, err := fs.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open ignore file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		is.names.Add(line)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading ignore file: %w", err)
	}
	return nil
}
