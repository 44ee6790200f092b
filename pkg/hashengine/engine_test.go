package hashengine_test

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/dedup/pkg/errors"
	"github.com/arthur-debert/dedup/pkg/hashengine"
	"github.com/arthur-debert/dedup/pkg/testutil"
	"github.com/arthur-debert/dedup/pkg/types"
)

func record(path string, size int64) types.FileRecord {
	return types.FileRecord{Path: path, Size: size, ModTime: 100}
}

func TestDigest(t *testing.T) {
	mfs := testutil.NewMemoryFS()
	mfs.AddFile("/data/hello.txt", "Hello, World!", time.Now())

	engine := hashengine.New(mfs)

	digest, err := engine.Digest("/data/hello.txt")
	require.NoError(t, err)
	assert.Equal(t, testutil.GetTestChecksum("Hello, World!"), digest)
	assert.Len(t, digest, 64)

	// Deterministic
	again, err := engine.Digest("/data/hello.txt")
	require.NoError(t, err)
	assert.Equal(t, digest, again)
}

func TestDigestErrors(t *testing.T) {
	mfs := testutil.NewMemoryFS()
	mfs.AddDir("/data/subdir")
	mfs.AddFile("/data/locked.txt", "secret", time.Now())
	mfs.InjectError("/data/locked.txt", &fs.PathError{Op: "open", Path: "/data/locked.txt", Err: fs.ErrPermission})

	engine := hashengine.New(mfs)

	tests := []struct {
		name string
		path string
		code errors.ErrorCode
	}{
		{"missing_file", "/data/gone.txt", errors.ErrNotFound},
		{"directory", "/data/subdir", errors.ErrNotAFile},
		{"permission_denied", "/data/locked.txt", errors.ErrPermission},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.Digest(tt.path)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code),
				"got code %s, want %s", errors.GetErrorCode(err), tt.code)
		})
	}
}

func TestDigestChunkBoundaryIndependence(t *testing.T) {
	// Larger than the whole-read limit, and deliberately not a
	// multiple of the chunk size
	content := strings.Repeat("0123456789abcdef", (hashengine.WholeReadLimit/16)+5) + "xyz"
	require.Greater(t, len(content), hashengine.WholeReadLimit)

	mfs := testutil.NewMemoryFS()
	mfs.AddFile("/data/big.bin", content, time.Now())
	mfs.AddFile("/data/small.bin", "tiny", time.Now())

	engine := hashengine.New(mfs)

	big, err := engine.Digest("/data/big.bin")
	require.NoError(t, err)

	// The streamed digest must equal a direct whole-buffer hash
	sum := sha256.Sum256([]byte(content))
	assert.Equal(t, hex.EncodeToString(sum[:]), big)

	small, err := engine.Digest("/data/small.bin")
	require.NoError(t, err)
	assert.Equal(t, testutil.GetTestChecksum("tiny"), small)
}

func TestCacheReturnsStaleValueUntilCleared(t *testing.T) {
	mfs := testutil.NewMemoryFS()
	mfs.AddFile("/data/f.txt", "original", time.Now())

	engine := hashengine.New(mfs)

	first, err := engine.Digest("/data/f.txt")
	require.NoError(t, err)

	// Content changes mid-session; the memo is documented to win
	mfs.AddFile("/data/f.txt", "changed", time.Now())

	cached, err := engine.Digest("/data/f.txt")
	require.NoError(t, err)
	assert.Equal(t, first, cached)

	engine.ClearCache()

	fresh, err := engine.Digest("/data/f.txt")
	require.NoError(t, err)
	assert.Equal(t, testutil.GetTestChecksum("changed"), fresh)
	assert.NotEqual(t, first, fresh)
}

func TestFindDuplicatesGroupsByContent(t *testing.T) {
	mfs := testutil.NewMemoryFS()
	now := time.Now()
	mfs.AddFile("/data/a.txt", "Hello, World!", now)
	mfs.AddFile("/data/b.txt", "Hello, World!", now)
	mfs.AddFile("/data/unique.txt", "completely different", now)

	engine := hashengine.New(mfs)
	groups := engine.FindDuplicates([]types.FileRecord{
		record("/data/a.txt", 13),
		record("/data/b.txt", 13),
		record("/data/unique.txt", 20),
	}, hashengine.Options{})

	require.Len(t, groups, 1)
	group, ok := groups[testutil.GetTestChecksum("Hello, World!")]
	require.True(t, ok)
	assert.Len(t, group.Files, 2)
	assert.Equal(t, "/data/a.txt", group.Files[0].Path)
	assert.Equal(t, "/data/b.txt", group.Files[1].Path)
}

func TestEqualSizeDifferentContentIsNotGrouped(t *testing.T) {
	mfs := testutil.NewMemoryFS()
	now := time.Now()
	mfs.AddFile("/data/x.txt", "0123456789", now)
	mfs.AddFile("/data/y.txt", "abcdefghij", now)

	engine := hashengine.New(mfs)
	groups := engine.FindDuplicates([]types.FileRecord{
		record("/data/x.txt", 10),
		record("/data/y.txt", 10),
	}, hashengine.Options{})

	assert.Empty(t, groups)
}

func TestSingletonSizeBucketsAreNeverHashed(t *testing.T) {
	mfs := testutil.NewMemoryFS()
	now := time.Now()
	mfs.AddFile("/data/a.txt", "same size!", now)
	mfs.AddFile("/data/b.txt", "same size?", now)
	mfs.AddFile("/data/odd.txt", "a unique length here", now)

	engine := hashengine.New(mfs)

	var calls int
	engine.FindDuplicates([]types.FileRecord{
		record("/data/a.txt", 10),
		record("/data/b.txt", 10),
		record("/data/odd.txt", 20),
	}, hashengine.Options{Progress: func(pct int) { calls++ }})

	// Progress fires once per hashed candidate; the unique-size file
	// must not be among them
	assert.Equal(t, 2, calls)
}

func TestPerMemberHashFailuresAreSkipped(t *testing.T) {
	mfs := testutil.NewMemoryFS()
	now := time.Now()
	mfs.AddFile("/data/a.txt", "duplicated", now)
	mfs.AddFile("/data/b.txt", "duplicated", now)
	mfs.AddFile("/data/c.txt", "uniqueness", now)
	mfs.InjectError("/data/c.txt", &fs.PathError{Op: "open", Path: "/data/c.txt", Err: fs.ErrPermission})

	engine := hashengine.New(mfs)
	groups := engine.FindDuplicates([]types.FileRecord{
		record("/data/a.txt", 10),
		record("/data/b.txt", 10),
		record("/data/c.txt", 10),
	}, hashengine.Options{})

	require.Len(t, groups, 1)
	group := groups[testutil.GetTestChecksum("duplicated")]
	assert.Len(t, group.Files, 2)
}

func TestProgressIsMonotoneAndReaches100(t *testing.T) {
	mfs := testutil.NewMemoryFS()
	now := time.Now()
	for i := 0; i < 6; i++ {
		mfs.AddFile(fmt.Sprintf("/data/f%d.txt", i), "equal size", now)
	}

	records := make([]types.FileRecord, 6)
	for i := range records {
		records[i] = record(fmt.Sprintf("/data/f%d.txt", i), 10)
	}

	var pcts []int
	engine := hashengine.New(mfs)
	engine.FindDuplicates(records, hashengine.Options{
		Progress: func(pct int) { pcts = append(pcts, pct) },
	})

	require.Len(t, pcts, 6)
	for i := 1; i < len(pcts); i++ {
		assert.GreaterOrEqual(t, pcts[i], pcts[i-1])
	}
	assert.Equal(t, 100, pcts[len(pcts)-1])
}

func TestParallelHashingMatchesSequential(t *testing.T) {
	mfs := testutil.NewMemoryFS()
	now := time.Now()
	var records []types.FileRecord
	for i := 0; i < 20; i++ {
		content := fmt.Sprintf("content-%02d", i%5)
		path := fmt.Sprintf("/data/f%02d.txt", i)
		mfs.AddFile(path, content, now)
		records = append(records, record(path, int64(len(content))))
	}

	sequential := hashengine.New(mfs).FindDuplicates(records, hashengine.Options{})

	var pcts []int
	parallel := hashengine.New(mfs).FindDuplicates(records, hashengine.Options{
		Workers:  4,
		Progress: func(pct int) { pcts = append(pcts, pct) },
	})

	assert.Equal(t, sequential, parallel)
	for i := 1; i < len(pcts); i++ {
		assert.GreaterOrEqual(t, pcts[i], pcts[i-1])
	}
}

func TestEmptyRecords(t *testing.T) {
	engine := hashengine.New(testutil.NewMemoryFS())
	assert.Empty(t, engine.FindDuplicates(nil, hashengine.Options{}))
}
