// Package inspect classifies the live state of a link target.
//
// State is computed on demand and never cached; the tool is interactive and
// the filesystem can change between runs, so the classification must always
// reflect what is on disk at the time of the operation.
package inspect

import (
	stderrors "errors"
	"io/fs"
	"os"

	"github.com/dotlink/dotlink/pkg/errors"
	"github.com/dotlink/dotlink/pkg/types"
)

// State classifies what currently occupies target relative to the expected
// source path:
//
//   - nothing there (not even a dangling symlink): StateAbsent
//   - a symlink resolving to the canonical source: StateLinked
//   - any other symlink, dangling included: StateWrongTarget
//   - a regular file or real directory: StateRealEntry
//
// Both sides of the comparison are canonicalized so path aliasing (through
// intermediate symlinks, trailing separators, case-folding mounts) does not
// produce false wrong-target classifications.
func State(fsys types.FS, target, expectedSource string) (types.LinkState, error) {
	info, err := fsys.Lstat(target)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return types.StateAbsent, nil
		}
		return "", errors.Wrap(err, errors.ErrFileAccess, "cannot inspect target").
			WithDetail("path", target)
	}

	if info.Mode()&os.ModeSymlink == 0 {
		return types.StateRealEntry, nil
	}

	resolved, err := fsys.Canonical(target)
	if err != nil {
		// Dangling symlink: it exists as a link entry but resolves nowhere.
		return types.StateWrongTarget, nil
	}

	want, err := fsys.Canonical(expectedSource)
	if err != nil {
		// The source itself is gone; whatever the link points at, it cannot
		// be correct.
		return types.StateWrongTarget, nil
	}

	if resolved == want {
		return types.StateLinked, nil
	}
	return types.StateWrongTarget, nil
}
