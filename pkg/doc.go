// Package dirchecksums computes per-file checksums across a directory tree,
// stores them in a plain two-column hash table, and verifies the tree against
// that table later.
//
// # Core API
//
// Create a table for a directory:
//
//	opts := dirchecksums.DefaultOptions("/path/to/dir")
//	opts.Mode = dirchecksums.ModeCreate
//	opts.Depth = dirchecksums.Infinite
//	result, err := dirchecksums.Run(ctx, afero.NewOsFs(), opts)
//
// Verify it:
//
//	opts.Mode = dirchecksums.ModeVerify
//	result, err := dirchecksums.Run(ctx, afero.NewOsFs(), opts)
//	if err == nil {
//		err = dirchecksums.Summarize(result.Outcome)
//	}
//	os.Exit(dirchecksums.ExitCode(err))
//
// # Hash table format
//
// One line per file: the relative path using '/' separators, at least two
// spaces, then the uppercase hex digest. Ignored files carry a run of '-'
// of the digest length. The table lists itself with that placeholder.
//
//	a.txt       A9993E364706816ABA3E25717850C26C9CD0D89D
//	dir/b.txt   84983E441C3BD26EBAAE4AA1F95129E5E54670F1
//	dir.hash    ----------------------------------------
//
// # Building blocks
//
// The pieces used by Run are exported for callers that want to drive them
// separately: TreeWalker, CreateHashes, WriteHashStore / ParseHashStore,
// Compare and Summarize.
//
// # Configuration
//
// Enable debug output:
//
//	dirchecksums.SetDebugFlags("walk,hash")
//	dirchecksums.SetVerboseLevel(2)
package dirchecksums
