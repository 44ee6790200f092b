// Package types defines the data model shared across the dedup
// pipeline: file records produced by scanning, duplicate groups
// produced by hashing, keep/delete decisions and deletion outcomes.
package types
