package types

// FileRecord describes one regular file discovered by a scan.
// Records are immutable once produced and are scoped to the scan
// that created them.
type FileRecord struct {
	// Path is the absolute path to the file
	Path string

	// Size is the file size in bytes
	Size int64

	// ModTime is the last-modification time in fractional seconds
	// since the Unix epoch
	ModTime float64

	// IsSymlink reports whether the entry was a symbolic link.
	// Symlinks are counted by the scanner but never emitted, so
	// this is false for every record the standard pipeline produces.
	IsSymlink bool
}

// DuplicateGroup is a set of files sharing both size and content hash.
// All members have equal size. Groups produced by the hash engine have
// at least two members; single-member groups are tolerated downstream.
type DuplicateGroup struct {
	// Hash is the hex-encoded SHA-256 digest shared by all members
	Hash string

	// Files are the members, in the order they were encountered
	Files []FileRecord
}

// Decision records which member of a duplicate group survives.
// Keep is always a member of the originating group, and Keep plus
// Delete together cover the whole group with no overlap.
type Decision struct {
	Hash   string
	Keep   string
	Delete []string
}

// DeletionOutcome is the result of one attempted deletion.
// Never mutated after creation.
type DeletionOutcome struct {
	Path    string
	Success bool
	Err     error
}

// ScanSummary carries the aggregate counters of one scan pass.
// Not part of the per-file contract, but the deletion-confirmation
// UI is built on top of it.
type ScanSummary struct {
	// Processed is the number of records emitted
	Processed int

	// SkippedSymlinks counts symbolic links that were detected and
	// skipped without being followed
	SkippedSymlinks int

	// Errors counts per-entry I/O failures that were skipped over
	Errors int
}
