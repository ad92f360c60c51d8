package dirchecksums

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/afero"
)

// maxLineSize bounds a single hash table line
const maxLineSize = 1024 * 1024

// NewLinePattern compiles the hash table line pattern: a path, at least two
// whitespace characters, then a hex digest or sentinel
func NewLinePattern() *regexp.Regexp {
	return regexp.MustCompile(`^(.+?)\s{2,}([[:xdigit:]-]+)$`)
}

// formatLines renders one line per record with the self-row inserted in order
func formatLines(store *HashStore, selfName string, hexLen int) [][]byte {
	rows := store.Copy()
	if selfName != "" {
		rows.Put(selfName, Sentinel(hexLen))
	}

	width := rows.MaxPathLen() + 2
	lines := make([][]byte, 0, rows.Len())
	rows.ForEach(func(rec HashRecord) bool {
		line := make([]byte, 0, width+len(rec.Hash)+1)
		line = append(line, rec.Path...)
		for i := len(rec.Path); i < width; i++ {
			line = append(line, ' ')
		}
		line = append(line, rec.Hash...)
		line = append(line, '\n')
		lines = append(lines, line)
		return true
	})
	return lines
}

// WriteHashStore writes the table to w. An *os.File destination is written
// with vectored I/O where the platform supports it.
func WriteHashStore(w io.Writer, store *HashStore, selfName string, hexLen int) error {
	lines := formatLines(store, selfName, hexLen)

	if file, ok := w.(*os.File); ok {
		return writeLinesFile(file, lines)
	}
	return writeLines(w, lines)
}

func writeLines(w io.Writer, lines [][]byte) error {
	bw := bufio.NewWriter(w)
	for _, line := range lines {
		if _, err := bw.Write(line); err != nil {
			return fmt.Errorf("failed to write hash table: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write hash table: %w", err)
	}
	return nil
}

// SaveHashStore writes the table to path, refusing to replace an existing
// file unless force is set
func SaveHashStore(fs afero.Fs, path string, store *HashStore, selfName string, hexLen int, force bool) error {
	defer VerboseEnter()()

	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if !force {
		flags |= os.O_EXCL
	}

	file, err := fs.OpenFile(path, flags, 0644)
	if err != nil {
		if os.IsExist(err) {
			return &OptionsError{Err: ErrOutputExists}
		}
		return fmt.Errorf("failed to create hash file %s: %w", path, err)
	}

	if err := WriteHashStore(file, store, selfName, hexLen); err != nil {
		file.Close()
		return fmt.Errorf("failed to write hash file %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close hash file %s: %w", path, err)
	}

	VerboseLog(1, "Wrote %d records to %s", store.Len()+1, path)
	return nil
}

// ParseHashStore reads a hash table. Blank lines are skipped, a trailing
// carriage return is dropped, and every malformed line is reported in a
// single *ParseError. For repeated paths the last line wins.
func ParseHashStore(r io.Reader, pattern *regexp.Regexp) (*HashStore, error) {
	store := NewHashStore(LoadedGeneration)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	var badLines []int
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		m := pattern.FindStringSubmatch(line)
		if m == nil {
			badLines = append(badLines, lineNum)
			continue
		}
		store.Put(m[1], strings.ToUpper(m[2]))
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read hash table: %w", err)
	}
	if len(badLines) > 0 {
		return nil, &ParseError{Lines: badLines}
	}

	debugLog("codec", "parsed hash table", "records", store.Len())
	return store, nil
}

// LoadHashStore opens and parses the hash table at path
func LoadHashStore(fs afero.Fs, path string, pattern *regexp.Regexp) (*HashStore, error) {
	defer VerboseEnter()()

	file, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open hash file %s: %w", path, err)
	}
	defer file.Close()

	store, err := ParseHashStore(file, pattern)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			perr.Path = path
		}
		return nil, err
	}
	return store, nil
}
