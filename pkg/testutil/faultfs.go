package testutil

import (
	"io/fs"

	"github.com/dotlink/dotlink/pkg/types"
)

// FaultFS wraps a types.FS and fails selected operations. Used to exercise
// the engine's fail-safe paths (e.g. backup moves that must not lose data).
type FaultFS struct {
	types.FS

	// RenameErr, when set, is returned by every Rename call.
	RenameErr error

	// WriteErr, when set, is returned by every WriteFile call. Combined
	// with RenameErr this forces the copy fallback to fail mid-copy.
	WriteErr error

	// SymlinkErr, when set, is returned by every Symlink call.
	SymlinkErr error
}

// NewFaultFS wraps base with no faults armed.
func NewFaultFS(base types.FS) *FaultFS {
	return &FaultFS{FS: base}
}

func (f *FaultFS) Rename(oldpath, newpath string) error {
	if f.RenameErr != nil {
		return f.RenameErr
	}
	return f.FS.Rename(oldpath, newpath)
}

func (f *FaultFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	if f.WriteErr != nil {
		return f.WriteErr
	}
	return f.FS.WriteFile(name, data, perm)
}

func (f *FaultFS) Symlink(oldname, newname string) error {
	if f.SymlinkErr != nil {
		return f.SymlinkErr
	}
	return f.FS.Symlink(oldname, newname)
}
