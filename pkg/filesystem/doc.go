// Package filesystem provides filesystem implementations for dedup.
//
// This package contains implementations of the types.FS interface,
// currently the standard OS filesystem. The in-memory filesystem used
// by tests lives in pkg/testutil.
package filesystem
