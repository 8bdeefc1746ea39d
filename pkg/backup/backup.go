// Package backup implements the timestamped snapshot store.
//
// The store exclusively owns the backups directory. Snapshots accumulate as
// an append-only recovery log under <root>/<timestamp>/ and are never
// deleted automatically.
package backup

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"time"

	"github.com/dotlink/dotlink/pkg/errors"
	"github.com/dotlink/dotlink/pkg/logging"
	"github.com/dotlink/dotlink/pkg/types"
)

// TimestampFormat names snapshot directories so that lexicographic order
// equals chronological order.
const TimestampFormat = "20060102_150405"

// Store manages snapshots under a single backups root.
type Store struct {
	fsys types.FS
	root string
	now  func() time.Time
}

// New creates a Store over the given backups root. The root itself is only
// created when a snapshot first receives an entry.
func New(fsys types.FS, root string) *Store {
	return &Store{fsys: fsys, root: root, now: time.Now}
}

// Snapshot is one run's backup directory. The directory is created lazily on
// the first MoveInto, so a run that displaces nothing leaves no trace.
type Snapshot struct {
	fsys    types.FS
	path    string
	created bool
	entries int
}

// NewSnapshot returns the snapshot for a run starting now. No directory is
// created yet. Timestamps have one-second resolution, so when an earlier
// run's snapshot already occupies the name a numeric suffix keeps this run's
// entries separate; the suffixed name still sorts as the newest.
func (s *Store) NewSnapshot() *Snapshot {
	base := filepath.Join(s.root, s.now().Format(TimestampFormat))
	path := base
	for n := 2; ; n++ {
		if _, err := s.fsys.Lstat(path); err != nil {
			break
		}
		path = fmt.Sprintf("%s_%d", base, n)
	}
	return &Snapshot{fsys: s.fsys, path: path}
}

// Path is the snapshot directory, which may not exist yet.
func (sn *Snapshot) Path() string {
	return sn.path
}

// Created reports whether the snapshot directory was materialized, i.e.
// whether at least one entry was moved into it.
func (sn *Snapshot) Created() bool {
	return sn.created
}

// MoveInto relocates the real filesystem entry at sourceEntry to
// <snapshot>/<name>. The move is a rename where the platform allows it, with
// a copy-then-delete fallback across volumes. On any failure the original
// entry is left in place.
func (sn *Snapshot) MoveInto(name, sourceEntry string) error {
	logger := logging.GetLogger("backup")

	if !sn.created {
		if err := sn.fsys.MkdirAll(sn.path, 0755); err != nil {
			return errors.Wrap(err, errors.ErrDirCreate, "cannot create snapshot directory").
				WithDetail("path", sn.path)
		}
		sn.created = true
	}

	dest := filepath.Join(sn.path, name)
	if err := sn.fsys.Rename(sourceEntry, dest); err == nil {
		sn.entries++
		logger.Debug().Str("from", sourceEntry).Str("to", dest).Msg("Backed up entry via rename")
		return nil
	}

	// Rename failed (likely cross-volume). Copy first, delete the original
	// only once the copy fully succeeded.
	if err := copyEntry(sn.fsys, sourceEntry, dest); err != nil {
		_ = sn.fsys.RemoveAll(dest)
		sn.rollbackIfEmpty()
		return errors.Wrap(err, errors.ErrBackupMove, "backup copy failed, original left in place").
			WithDetail("source", sourceEntry).
			WithDetail("dest", dest)
	}
	sn.entries++
	if err := sn.fsys.RemoveAll(sourceEntry); err != nil {
		return errors.Wrap(err, errors.ErrBackupMove, "backed up but could not remove original").
			WithDetail("source", sourceEntry)
	}

	logger.Debug().Str("from", sourceEntry).Str("to", dest).Msg("Backed up entry via copy")
	return nil
}

// rollbackIfEmpty removes the snapshot directory again when no entry ever
// made it in, preserving the invariant that a snapshot only exists on disk
// if something was actually displaced.
func (sn *Snapshot) rollbackIfEmpty() {
	if sn.entries > 0 || !sn.created {
		return
	}
	if err := sn.fsys.Remove(sn.path); err == nil {
		sn.created = false
	}
}

// Latest returns the most recent snapshot directory under the store root, or
// "" when there are no snapshots (including when the root does not exist).
func (s *Store) Latest() (string, error) {
	entries, err := s.fsys.ReadDir(s.root)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", errors.Wrap(err, errors.ErrFileAccess, "cannot read backups directory").
			WithDetail("path", s.root)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	if len(names) == 0 {
		return "", nil
	}

	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return filepath.Join(s.root, names[0]), nil
}

// Has reports whether the given snapshot contains an entry for name.
func (s *Store) Has(snapshotPath, name string) bool {
	if snapshotPath == "" {
		return false
	}
	_, err := s.fsys.Lstat(filepath.Join(snapshotPath, name))
	return err == nil
}

// Restore moves <snapshot>/<name> back to targetPath. It refuses to clobber:
// the target must be confirmed absent, otherwise ErrRestoreConflict.
func (s *Store) Restore(snapshotPath, name, targetPath string) error {
	if _, err := s.fsys.Lstat(targetPath); err == nil {
		return errors.New(errors.ErrRestoreConflict, "restore target is not absent").
			WithDetail("path", targetPath)
	}

	entry := filepath.Join(snapshotPath, name)
	if err := s.fsys.Rename(entry, targetPath); err == nil {
		return nil
	}

	if err := copyEntry(s.fsys, entry, targetPath); err != nil {
		_ = s.fsys.RemoveAll(targetPath)
		return errors.Wrap(err, errors.ErrRestoreMove, "restore copy failed, snapshot left intact").
			WithDetail("source", entry).
			WithDetail("dest", targetPath)
	}
	if err := s.fsys.RemoveAll(entry); err != nil {
		return errors.Wrap(err, errors.ErrRestoreMove, "restored but could not remove snapshot entry").
			WithDetail("source", entry)
	}
	return nil
}
