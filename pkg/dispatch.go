package dirchecksums

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

// ScanStats summarises one hashing run
type ScanStats struct {
	Files    int           `json:"files" yaml:"files"`
	Ignored  int           `json:"ignored" yaml:"ignored"`
	Bytes    int64         `json:"bytes" yaml:"bytes"`
	Duration time.Duration `json:"duration" yaml:"duration"`
	Warnings []string      `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

func (s *ScanStats) String() string {
	return fmt.Sprintf("%d files (%s), %d ignored in %s",
		s.Files, humanize.IBytes(uint64(s.Bytes)), s.Ignored, s.Duration.Round(time.Millisecond))
}

// hashManager runs one hashing task per file on a bounded errgroup and
// collects the results under a lock
type hashManager struct {
	group      *errgroup.Group
	ctx        context.Context
	fs         afero.Fs
	algorithm  *HashAlgorithm
	bufferSize int

	mu    sync.Mutex
	store *HashStore
	bytes int64
}

func newHashManager(ctx context.Context, fs afero.Fs, algorithm *HashAlgorithm, bufferSize, jobs int) *hashManager {
	group, groupCtx := errgroup.WithContext(ctx)

	limit := WorkerLimit(jobs)
	if limit < 0 {
		Logger().Warn("unbounded worker count: one goroutine and open file per entry")
	}
	group.SetLimit(limit)
	VerboseLog(2, "Hashing with %d workers (-1 is unbounded)", limit)

	return &hashManager{
		group:      group,
		ctx:        groupCtx,
		fs:         fs,
		algorithm:  algorithm,
		bufferSize: bufferSize,
		store:      NewHashStore(CurrentGeneration),
	}
}

// Submit queues a file, blocking while every worker is busy
func (hm *hashManager) Submit(entry WalkEntry) {
	hm.group.Go(func() error {
		hash, n, err := HashFile(hm.ctx, hm.fs, entry.AbsPath, hm.algorithm, hm.bufferSize)
		if err != nil {
			return err
		}
		hm.record(entry.RelPath, hash, n)
		return nil
	})
}

func (hm *hashManager) record(relPath, hash string, n int64) {
	hm.mu.Lock()
	defer hm.mu.Unlock()
	hm.store.Put(relPath, hash)
	hm.bytes += n
}

// Wait blocks until every submitted task finished and returns the first error
func (hm *hashManager) Wait() (*HashStore, int64, error) {
	if err := hm.group.Wait(); err != nil {
		return nil, 0, err
	}
	return hm.store, hm.bytes, nil
}

// CreateHashes walks opts.Directory and hashes every selected file. The store
// is returned only after all tasks completed; the first I/O error aborts the
// whole run.
func CreateHashes(ctx context.Context, fs afero.Fs, opts *Options) (*HashStore, *ScanStats, error) {
	defer VerboseEnter()()
	start := time.Now()

	algorithm, err := Resolve(opts.Algorithm)
	if err != nil {
		return nil, nil, &OptionsError{Err: err}
	}

	walkCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	hm := newHashManager(walkCtx, fs, algorithm, opts.HashBuffer, opts.Jobs)
	walker := &TreeWalker{
		Fs:             fs,
		Root:           opts.Directory,
		Depth:          opts.Depth,
		FollowSymlinks: opts.FollowSymlinks,
		Ignore:         opts.Ignore,
	}

	entries := make(chan WalkEntry, 64)
	events := make(chan error, 16)
	walkDone := make(chan error, 1)
	go func() {
		walkDone <- walker.Walk(hm.ctx, entries, events)
	}()

	stats := &ScanStats{}
	sentinel := Sentinel(algorithm.HexLen)
	var ignored []string

	collectEvent := func(ev error) {
		stats.Warnings = append(stats.Warnings, ev.Error())
	}

loop:
	for {
		select {
		case entry, ok := <-entries:
			if !ok {
				break loop
			}
			if entry.Ignored {
				ignored = append(ignored, entry.RelPath)
				continue
			}
			stats.Files++
			debugLog("dispatch", "submitting", "path", entry.RelPath)
			hm.Submit(entry)
		case ev := <-events:
			collectEvent(ev)
		}
	}

	walkErr := <-walkDone
	for drained := false; !drained; {
		select {
		case ev := <-events:
			collectEvent(ev)
		default:
			drained = true
		}
	}

	store, bytes, hashErr := hm.Wait()
	switch {
	case hashErr != nil:
		return nil, nil, hashErr
	case walkErr != nil:
		return nil, nil, walkErr
	}

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	for _, p := range ignored {
		store.Put(p, sentinel)
	}

	stats.Ignored = len(ignored)
	stats.Bytes = bytes
	stats.Duration = time.Since(start)
	VerboseLog(1, "Hashed %s", stats)

	return store, stats, nil
}

// IsCancelled reports whether err came from context cancellation
func IsCancelled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
