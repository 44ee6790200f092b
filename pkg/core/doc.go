// Package core orchestrates the duplicate-detection pipeline: scan,
// size bucketing, content hashing, keep selection and recoverable
// deletion. The CLI is a thin layer over this package; embedding
// callers use FindDuplicates and Clean directly.
package core
