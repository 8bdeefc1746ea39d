package backup

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dotlink/dotlink/pkg/types"
)

// copyEntry recursively copies the entry at src to dst, preserving file
// modes and reproducing symlinks as symlinks. It is the cross-volume
// fallback for moves; callers clean up dst on failure.
func copyEntry(fsys types.FS, src, dst string) error {
	info, err := fsys.Lstat(src)
	if err != nil {
		return err
	}

	switch {
	case info.Mode()&os.ModeSymlink != 0:
		target, err := fsys.Readlink(src)
		if err != nil {
			return err
		}
		return fsys.Symlink(target, dst)

	case info.IsDir():
		if err := fsys.MkdirAll(dst, info.Mode().Perm()); err != nil {
			return err
		}
		entries, err := fsys.ReadDir(src)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			if err := copyEntry(fsys, filepath.Join(src, entry.Name()), filepath.Join(dst, entry.Name())); err != nil {
				return err
			}
		}
		return nil

	default:
		return copyFile(fsys, src, dst, info.Mode())
	}
}

func copyFile(fsys types.FS, src, dst string, mode fs.FileMode) error {
	data, err := fsys.ReadFile(src)
	if err != nil {
		return err
	}
	return fsys.WriteFile(dst, data, mode.Perm())
}
