package dirchecksums

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// OptionsError reports invalid or conflicting options
type OptionsError struct {
	Err error
}

func (e *OptionsError) Error() string { return e.Err.Error() }
func (e *OptionsError) Unwrap() error { return e.Err }

// HashLengthError reports that the loaded table was produced by an algorithm
// with a different output length than the selected one
type HashLengthError struct {
	PreviousLen int
	CurrentLen  int
}

func (e *HashLengthError) Error() string {
	return fmt.Sprintf("Hash lengths do not match; selected: %d, loaded: %d", e.CurrentLen, e.PreviousLen)
}

// ParseError lists every malformed line (1-based) of a hash table
type ParseError struct {
	Path  string
	Lines []int
}

func (e *ParseError) Error() string {
	nums := make([]string, len(e.Lines))
	for i, n := range e.Lines {
		nums[i] = strconv.Itoa(n)
	}
	name := e.Path
	if name == "" {
		name = "hash file"
	}
	return fmt.Sprintf("failed to parse %s: malformed line(s) %s", name, strings.Join(nums, ", "))
}

// FilesDifferError reports how many files no longer match their recorded hash
type FilesDifferError struct {
	N int
}

func (e *FilesDifferError) Error() string {
	if e.N == 1 {
		return "1 file doesn't match"
	}
	return fmt.Sprintf("%d files don't match", e.N)
}

// ResultKind classifies a verification outcome
type ResultKind int

const (
	NothingToVerify ResultKind = iota // no records on either side
	NoFilesToVerify                   // only additions, removals or ignores
	Verified
	FilesDiffer
)

func (k ResultKind) String() string {
	switch k {
	case NothingToVerify:
		return "nothing-to-verify"
	case NoFilesToVerify:
		return "no-files-to-verify"
	case Verified:
		return "verified"
	case FilesDiffer:
		return "files-differ"
	default:
		return "unknown"
	}
}

// Classify returns the kind of a compare outcome
func Classify(outcome *CompareOutcome) ResultKind {
	if outcome == nil || (len(outcome.Changes) == 0 && len(outcome.Files) == 0) {
		return NothingToVerify
	}
	if len(outcome.Files) == 0 {
		return NoFilesToVerify
	}
	if outcome.DiffCount() > 0 {
		return FilesDiffer
	}
	return Verified
}

// Summarize converts an outcome into nil or a *FilesDifferError
func Summarize(outcome *CompareOutcome) error {
	if outcome == nil {
		return nil
	}
	if n := outcome.DiffCount(); n > 0 {
		return &FilesDifferError{N: n}
	}
	return nil
}

// Exit codes
const (
	ExitOK         = 0
	ExitOptions    = 1
	ExitHashLength = 2
	ExitParse      = 3
	exitMax        = 255
)

// ExitCode maps a run error onto the process exit status
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var optErr *OptionsError
	var lenErr *HashLengthError
	var parseErr *ParseError
	var diffErr *FilesDifferError

	switch {
	case errors.As(err, &diffErr):
		return min(ExitParse+diffErr.N, exitMax)
	case errors.As(err, &lenErr):
		return ExitHashLength
	case errors.As(err, &parseErr):
		return ExitParse
	case errors.As(err, &optErr):
		return ExitOptions
	default:
		return ExitOptions
	}
}
