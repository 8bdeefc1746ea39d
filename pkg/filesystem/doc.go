// Package filesystem provides filesystem implementations for dotlink.
//
// This package contains implementations of the types.FS interface,
// currently the standard OS filesystem. Test doubles live in pkg/testutil.
package filesystem
