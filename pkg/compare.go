package dirchecksums

import (
	"fmt"
	"sort"
	"strings"
)

// ChangeKind is a structural difference between two tables
type ChangeKind int

const (
	FileAdded ChangeKind = iota
	FileRemoved
	FileIgnored
)

func (k ChangeKind) String() string {
	switch k {
	case FileAdded:
		return "added"
	case FileRemoved:
		return "removed"
	case FileIgnored:
		return "ignored"
	default:
		return "unknown"
	}
}

// FileKind is the content verdict for a path present on both sides
type FileKind int

const (
	FileMatches FileKind = iota
	FileDiffers
)

func (k FileKind) String() string {
	if k == FileDiffers {
		return "differs"
	}
	return "matches"
}

// CompareResult is a path that was added, removed or ignored
type CompareResult struct {
	Kind ChangeKind
	Path string
}

// FileResult is a path compared by content. Was and Now are only set for FileDiffers.
type FileResult struct {
	Kind FileKind
	Path string
	Was  string
	Now  string
}

// CompareOutcome holds both result lists, each sorted by path
type CompareOutcome struct {
	Changes []CompareResult
	Files   []FileResult
}

// DiffCount returns the number of FileDiffers results
func (co *CompareOutcome) DiffCount() int {
	n := 0
	for _, f := range co.Files {
		if f.Kind == FileDiffers {
			n++
		}
	}
	return n
}

func isSentinel(hash string) bool {
	return hash != "" && strings.Trim(hash, string(SentinelRune)) == ""
}

// Compare classifies every path of the current scan against the loaded table.
// selfName is removed from both sides first. The stores are not modified.
func Compare(current, loaded *HashStore, selfName string) (*CompareOutcome, error) {
	defer VerboseEnter()()

	currentLen := current.HashLen()
	loadedLen := loaded.HashLen()

	current = current.Copy()
	loaded = loaded.Copy()
	current.Delete(selfName)
	loaded.Delete(selfName)

	if currentLen != 0 && loadedLen != 0 && currentLen != loadedLen {
		return nil, &HashLengthError{PreviousLen: loadedLen, CurrentLen: currentLen}
	}

	outcome := &CompareOutcome{
		Changes: []CompareResult{},
		Files:   []FileResult{},
	}

	// Structural pass: keys present on one side only, and sentinel rows
	current.ForEach(func(rec HashRecord) bool {
		loadedHash, ok := loaded.Get(rec.Path)
		switch {
		case !ok && isSentinel(rec.Hash):
			outcome.Changes = append(outcome.Changes, CompareResult{Kind: FileIgnored, Path: rec.Path})
		case !ok:
			outcome.Changes = append(outcome.Changes, CompareResult{Kind: FileAdded, Path: rec.Path})
		case isSentinel(rec.Hash) || isSentinel(loadedHash):
			outcome.Changes = append(outcome.Changes, CompareResult{Kind: FileIgnored, Path: rec.Path})
		}
		return true
	})

	loaded.ForEach(func(rec HashRecord) bool {
		if current.Has(rec.Path) {
			return true
		}
		kind := FileRemoved
		if isSentinel(rec.Hash) {
			kind = FileIgnored
		}
		outcome.Changes = append(outcome.Changes, CompareResult{Kind: kind, Path: rec.Path})
		return true
	})

	for _, c := range outcome.Changes {
		current.Delete(c.Path)
		loaded.Delete(c.Path)
	}

	// Content pass: both sides now hold the same key set
	if current.Len() != loaded.Len() {
		return nil, fmt.Errorf("internal error: %d current and %d loaded paths left after classification", current.Len(), loaded.Len())
	}

	var keyErr error
	current.ForEach(func(rec HashRecord) bool {
		was, ok := loaded.Get(rec.Path)
		if !ok {
			keyErr = fmt.Errorf("internal error: %q missing from loaded table after classification", rec.Path)
			return false
		}
		if was == rec.Hash {
			outcome.Files = append(outcome.Files, FileResult{Kind: FileMatches, Path: rec.Path})
		} else {
			outcome.Files = append(outcome.Files, FileResult{Kind: FileDiffers, Path: rec.Path, Was: was, Now: rec.Hash})
		}
		return true
	})
	if keyErr != nil {
		return nil, keyErr
	}

	sort.SliceStable(outcome.Changes, func(i, j int) bool {
		return outcome.Changes[i].Path < outcome.Changes[j].Path
	})
	sort.SliceStable(outcome.Files, func(i, j int) bool {
		return outcome.Files[i].Path < outcome.Files[j].Path
	})

	debugLog("compare", "compare finished", "changes", len(outcome.Changes), "files", len(outcome.Files))
	return outcome, nil
}
