package dirchecksums

import (
	"context"

	"github.com/spf13/afero"
)

// RunResult is what a create or verify run produced
type RunResult struct {
	Mode     Mode
	HashFile string
	Stats    *ScanStats
	Outcome  *CompareOutcome // verify only
}

// Run validates opts and performs the selected mode
func Run(ctx context.Context, fs afero.Fs, opts *Options) (*RunResult, error) {
	if err := opts.Validate(fs); err != nil {
		return nil, err
	}
	if opts.Mode == ModeCreate {
		return Create(ctx, fs, opts)
	}
	return Verify(ctx, fs, opts)
}

// Create hashes the tree and writes a new hash table including its self-row
func Create(ctx context.Context, fs afero.Fs, opts *Options) (*RunResult, error) {
	defer VerboseEnter()()

	store, stats, err := CreateHashes(ctx, fs, opts)
	if err != nil {
		return nil, err
	}

	if err := SaveHashStore(fs, opts.HashFile, store, opts.SelfName(), opts.Algorithm.HexLen(), opts.Force); err != nil {
		return nil, err
	}

	return &RunResult{Mode: ModeCreate, HashFile: opts.HashFile, Stats: stats}, nil
}

// Verify loads the existing table, hashes the tree and compares the two.
// The table is parsed before any hashing so a malformed file fails fast.
// Differing files are not an error here; see Summarize.
func Verify(ctx context.Context, fs afero.Fs, opts *Options) (*RunResult, error) {
	defer VerboseEnter()()

	loaded, err := LoadHashStore(fs, opts.HashFile, NewLinePattern())
	if err != nil {
		return nil, err
	}
	VerboseLog(1, "Loaded %d records from %s", loaded.Len(), opts.HashFile)

	current, stats, err := CreateHashes(ctx, fs, opts)
	if err != nil {
		return nil, err
	}

	outcome, err := Compare(current, loaded, opts.SelfName())
	if err != nil {
		return &RunResult{Mode: ModeVerify, HashFile: opts.HashFile, Stats: stats}, err
	}

	VerboseLog(1, "Verify finished: %s", Classify(outcome))

	return &RunResult{Mode: ModeVerify, HashFile: opts.HashFile, Stats: stats, Outcome: outcome}, nil
}
