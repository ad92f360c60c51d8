package dirchecksums

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/spf13/afero"
)

// WalkEntry is one file discovered by the walker. Ignored entries are not
// opened; they become sentinel records.
type WalkEntry struct {
	RelPath string
	AbsPath string
	Ignored bool
}

// SymlinkLoopError reports a directory that is already on the current
// ancestry chain. It is delivered as an event and does not stop the walk.
type SymlinkLoopError struct {
	Path string
}

func (e *SymlinkLoopError) Error() string {
	return fmt.Sprintf("symbolic link loop detected at %q, skipping", e.Path)
}

// TreeWalker produces the files below Root that should be hashed
type TreeWalker struct {
	Fs             afero.Fs
	Root           string
	Depth          DepthSetting
	FollowSymlinks bool
	Ignore         *IgnoreSet
}

// Walk sends every entry on out in lexical order per directory and closes
// out when finished. Non-fatal events go to events, which may be nil.
func (tw *TreeWalker) Walk(ctx context.Context, out chan<- WalkEntry, events chan<- error) error {
	defer VerboseEnter()()
	defer close(out)

	info, err := tw.Fs.Stat(tw.Root)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", tw.Root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", tw.Root)
	}

	ancestry := map[string]bool{dirIdentity(tw.Fs, tw.Root): true}
	return tw.walkDir(ctx, tw.Root, "", tw.Depth, ancestry, out, events)
}

func (tw *TreeWalker) walkDir(ctx context.Context, absDir, relDir string, depth DepthSetting,
	ancestry map[string]bool, out chan<- WalkEntry, events chan<- error) error {

	entries, err := afero.ReadDir(tw.Fs, absDir)
	if err != nil {
		return fmt.Errorf("failed to read directory %s: %w", absDir, err)
	}

	for _, fi := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		name := fi.Name()
		absPath := filepath.Join(absDir, name)
		relPath := path.Join(relDir, name)
		isDir := fi.IsDir()

		if fi.Mode()&os.ModeSymlink != 0 {
			if !tw.FollowSymlinks {
				debugLog("walk", "skipping symlink", "path", relPath)
				continue
			}
			target, err := tw.Fs.Stat(absPath)
			if err != nil {
				debugLog("walk", "skipping broken symlink", "path", relPath, "error", err)
				continue
			}
			if !target.IsDir() && !target.Mode().IsRegular() {
				continue
			}
			isDir = target.IsDir()
		} else if !isDir && !fi.Mode().IsRegular() {
			debugLog("walk", "skipping special file", "path", relPath)
			continue
		}

		if tw.Ignore.ShouldIgnore(name) {
			if isDir {
				debugLog("walk", "skipping ignored directory", "path", relPath)
				continue
			}
			if err := send(ctx, out, WalkEntry{RelPath: relPath, AbsPath: absPath, Ignored: true}); err != nil {
				return err
			}
			continue
		}

		if !isDir {
			if err := send(ctx, out, WalkEntry{RelPath: relPath, AbsPath: absPath}); err != nil {
				return err
			}
			continue
		}

		next, ok := depth.NextLevel()
		if !ok {
			continue
		}

		id := dirIdentity(tw.Fs, absPath)
		if ancestry[id] {
			loopErr := &SymlinkLoopError{Path: relPath}
			Logger().Warn(loopErr.Error())
			if events != nil {
				if err := send(ctx, events, error(loopErr)); err != nil {
					return err
				}
			}
			continue
		}

		ancestry[id] = true
		err := tw.walkDir(ctx, absPath, relPath, next, ancestry, out, events)
		delete(ancestry, id)
		if err != nil {
			return err
		}
	}

	return nil
}

func send[T any](ctx context.Context, ch chan<- T, v T) error {
	select {
	case ch <- v:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// pathIdentity resolves symlinks on the real filesystem so that two routes to
// one directory compare equal; other filesystems have no links to resolve.
func pathIdentity(fs afero.Fs, absPath string) string {
	if _, ok := fs.(*afero.OsFs); ok {
		if resolved, err := filepath.EvalSymlinks(absPath); err == nil {
			absPath = resolved
		}
	}
	if abs, err := filepath.Abs(absPath); err == nil {
		absPath = abs
	}
	return "path:" + filepath.Clean(absPath)
}
