// Package testutil provides test helpers for dedup: an in-memory
// types.FS with error injection, checksum helpers and real-filesystem
// fixtures with pinned modification times.
package testutil
