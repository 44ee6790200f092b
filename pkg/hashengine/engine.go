// Package hashengine computes SHA-256 content fingerprints and groups
// file records into duplicate sets. Files are bucketed by size first so
// unique-size files are never hashed at all.
package hashengine

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/arthur-debert/dedup/pkg/errors"
	"github.com/arthur-debert/dedup/pkg/logging"
	"github.com/arthur-debert/dedup/pkg/types"
)

const (
	// WholeReadLimit is the largest file read in a single call.
	// Anything bigger is streamed in ChunkSize reads so peak memory
	// stays independent of file size.
	WholeReadLimit = 10 << 20 // 10 MiB

	// ChunkSize is the read size for the streaming path.
	ChunkSize = 4 << 20 // 4 MiB
)

// Engine computes and memoizes content digests. The path-to-digest
// cache is valid for one scanning session only: a cache hit returns the
// previously computed value even if the file has changed since. Engines
// must not be shared across sessions.
type Engine struct {
	fs     types.FS
	mu     sync.Mutex
	cache  map[string]string
	logger zerolog.Logger
}

// New creates an Engine for one scanning session.
func New(fsys types.FS) *Engine {
	return &Engine{
		fs:     fsys,
		cache:  make(map[string]string),
		logger: logging.GetLogger("hashengine"),
	}
}

// Options configures a duplicate-detection pass.
type Options struct {
	// Progress, when set, is invoked after each hashed candidate with
	// a monotonically non-decreasing percentage. The total is the
	// candidate count across multi-member size buckets, not the full
	// file set.
	Progress func(pct int)

	// Workers enables parallel hashing when greater than one. Size
	// bucketing always completes before any hashing starts.
	Workers int
}

// Digest returns the hex-encoded SHA-256 digest of the file's content.
// Fails with NOT_FOUND for missing paths, NOT_A_FILE for non-regular
// files, and PERMISSION or IO_FAILURE on read errors.
func (e *Engine) Digest(path string) (string, error) {
	e.mu.Lock()
	if digest, ok := e.cache[path]; ok {
		e.mu.Unlock()
		return digest, nil
	}
	e.mu.Unlock()

	info, err := e.fs.Stat(path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ClassifyIO(err), "cannot stat %s", path)
	}
	if !info.Mode().IsRegular() {
		return "", errors.Newf(errors.ErrNotAFile, "path is not a regular file: %s", path)
	}

	hasher := sha256.New()

	if info.Size() <= WholeReadLimit {
		data, err := e.fs.ReadFile(path)
		if err != nil {
			return "", errors.Wrapf(err, errors.ClassifyIO(err), "cannot read %s", path)
		}
		hasher.Write(data)
	} else {
		file, err := e.fs.Open(path)
		if err != nil {
			return "", errors.Wrapf(err, errors.ClassifyIO(err), "cannot open %s", path)
		}
		defer func() { _ = file.Close() }()

		// Fixed-size sequential reads; the digest is identical to the
		// whole-file path for the same byte sequence.
		buf := make([]byte, ChunkSize)
		if _, err := io.CopyBuffer(hasher, file, buf); err != nil {
			return "", errors.Wrapf(err, errors.ClassifyIO(err), "cannot read %s", path)
		}
	}

	digest := hex.EncodeToString(hasher.Sum(nil))

	e.mu.Lock()
	e.cache[path] = digest
	e.mu.Unlock()

	return digest, nil
}

// ClearCache drops the path-to-digest memo. Useful when reusing a
// process for a second, unrelated pass.
func (e *Engine) ClearCache() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cache = make(map[string]string)
}

// FindDuplicates groups records into duplicate sets. Records are
// bucketed by exact size; singleton buckets are discarded without ever
// being hashed. Remaining candidates are digested and grouped by hash,
// and only groups with two or more members are returned. Per-member
// digest failures are logged and skipped, never fatal to the pass.
func (e *Engine) FindDuplicates(records []types.FileRecord, opts Options) map[string]types.DuplicateGroup {
	if len(records) == 0 {
		return map[string]types.DuplicateGroup{}
	}

	// Size pre-filter: a file can only duplicate another of equal size
	bySize := make(map[int64]int, len(records))
	for _, rec := range records {
		bySize[rec.Size]++
	}

	var candidates []types.FileRecord
	for _, rec := range records {
		if bySize[rec.Size] >= 2 {
			candidates = append(candidates, rec)
		}
	}

	e.logger.Debug().
		Int("records", len(records)).
		Int("candidates", len(candidates)).
		Msg("Size pre-filter complete")

	if len(candidates) == 0 {
		return map[string]types.DuplicateGroup{}
	}

	digests := e.digestCandidates(candidates, opts)

	byHash := make(map[string][]types.FileRecord)
	for i, rec := range candidates {
		if digests[i] == "" {
			continue
		}
		byHash[digests[i]] = append(byHash[digests[i]], rec)
	}

	groups := make(map[string]types.DuplicateGroup)
	for hash, files := range byHash {
		if len(files) >= 2 {
			groups[hash] = types.DuplicateGroup{Hash: hash, Files: files}
		}
	}

	e.logger.Info().
		Int("candidates", len(candidates)).
		Int("groups", len(groups)).
		Msg("Duplicate detection complete")

	return groups
}

// digestCandidates hashes every candidate, sequentially or across a
// bounded worker set, reporting progress from a shared counter so the
// percentage stays monotone even when files complete out of order.
func (e *Engine) digestCandidates(candidates []types.FileRecord, opts Options) []string {
	digests := make([]string, len(candidates))
	total := len(candidates)

	var progressMu sync.Mutex
	completed := 0
	report := func() {
		if opts.Progress == nil {
			return
		}
		progressMu.Lock()
		completed++
		pct := completed * 100 / total
		opts.Progress(pct)
		progressMu.Unlock()
	}

	hashOne := func(i int) {
		digest, err := e.Digest(candidates[i].Path)
		if err != nil {
			e.logger.Warn().Err(err).Str("path", candidates[i].Path).Msg("Cannot hash file, skipping")
		} else {
			digests[i] = digest
		}
		report()
	}

	if opts.Workers > 1 {
		var g errgroup.Group
		g.SetLimit(opts.Workers)
		for i := range candidates {
			i := i
			g.Go(func() error {
				hashOne(i)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i := range candidates {
			hashOne(i)
		}
	}

	return digests
}
