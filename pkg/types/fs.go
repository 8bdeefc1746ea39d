package types

import "io/fs"

// FS is the filesystem interface used throughout dotlink.
// The engine never calls the os package directly; everything goes through
// this interface so fault injection and alternate roots work in tests.
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	ReadDir(name string) ([]fs.DirEntry, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)
	Remove(name string) error
	RemoveAll(path string) error
	Rename(oldpath, newpath string) error

	// Canonical resolves all symlinks in path and returns the canonical
	// absolute form. Used for link-correctness comparison.
	Canonical(path string) (string, error)
}
