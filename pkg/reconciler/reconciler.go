package reconciler

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/dotlink/dotlink/pkg/backup"
	"github.com/dotlink/dotlink/pkg/errors"
	"github.com/dotlink/dotlink/pkg/inspect"
	"github.com/dotlink/dotlink/pkg/logging"
	"github.com/dotlink/dotlink/pkg/platform"
	"github.com/dotlink/dotlink/pkg/types"
	"github.com/dotlink/dotlink/pkg/units"
)

// Reconciler performs the link, unlink, and status operations. It takes
// already-resolved source and target directories; path resolution happens
// once, in the caller, before any operation starts.
type Reconciler struct {
	fsys   types.FS
	plat   platform.Platform
	store  *backup.Store
	logger zerolog.Logger
}

// New creates a Reconciler over the given filesystem, platform, and backup
// store.
func New(fsys types.FS, plat platform.Platform, store *backup.Store) *Reconciler {
	return &Reconciler{
		fsys:   fsys,
		plat:   plat,
		store:  store,
		logger: logging.GetLogger("reconciler"),
	}
}

// Link reconciles every unit under sourceDir into targetDir: correct links
// are left alone, stale links are replaced, and real entries are moved into
// a lazily created snapshot before linking. Failures are per-unit.
func (r *Reconciler) Link(sourceDir, targetDir string) (types.RunResult, error) {
	list, err := units.List(r.fsys, sourceDir, r.plat)
	if err != nil {
		return types.RunResult{}, err
	}

	// Cross-platform drift cleanup: a unit excluded here may have been
	// linked by another platform sharing the same dotfiles repo. Only the
	// link entry is ever removed, never a real file or directory.
	r.removeExcludedLinks(targetDir)

	snapshot := r.store.NewSnapshot()

	var results []types.UnitResult
	for _, unit := range list {
		results = append(results, r.linkUnit(unit, targetDir, snapshot))
	}

	run := types.RunResult{Results: results}
	if snapshot.Created() {
		run.SnapshotDir = snapshot.Path()
	}
	return run, nil
}

func (r *Reconciler) linkUnit(unit types.ConfigUnit, targetDir string, snapshot *backup.Snapshot) types.UnitResult {
	target := filepath.Join(targetDir, unit.Name)
	res := types.UnitResult{Unit: unit}

	state, err := inspect.State(r.fsys, target, unit.SourcePath)
	if err != nil {
		res.Action = types.ActionFail
		res.Err = err
		return res
	}
	res.State = state

	switch state {
	case types.StateLinked:
		res.Action = types.ActionNone
		return res

	case types.StateWrongTarget:
		// Remove only the link entry, never what it points at.
		if err := r.fsys.Remove(target); err != nil {
			res.Action = types.ActionFail
			res.Err = errors.Wrap(err, errors.ErrSymlinkRemove, "cannot remove stale symlink").
				WithDetail("path", target)
			return res
		}
		res.Action = types.ActionRelink

	case types.StateRealEntry:
		if err := snapshot.MoveInto(unit.Name, target); err != nil {
			// Fail-closed: the original entry is still at target, so the
			// unit is skipped for linking this run.
			res.Action = types.ActionFail
			res.Err = err
			return res
		}
		res.Action = types.ActionBackupLink
		res.BackupPath = filepath.Join(snapshot.Path(), unit.Name)

	case types.StateAbsent:
		res.Action = types.ActionLink
	}

	if err := r.plat.CreateLink(r.fsys, unit.SourcePath, target); err != nil {
		res.Action = types.ActionFail
		res.Err = errors.Wrap(err, errors.ErrSymlinkCreate, "cannot create symlink").
			WithDetail("source", unit.SourcePath).
			WithDetail("target", target)
		return res
	}

	r.logger.Info().
		Str("unit", unit.Name).
		Str("target", target).
		Str("action", string(res.Action)).
		Msg("Linked unit")
	return res
}

// Unlink removes unit symlinks from targetDir and restores each unit's entry
// from the single most recent snapshot, when one exists. The snapshot is
// resolved once at the start of the run and used consistently for every
// unit.
func (r *Reconciler) Unlink(sourceDir, targetDir string) (types.RunResult, error) {
	list, err := units.List(r.fsys, sourceDir, r.plat)
	if err != nil {
		return types.RunResult{}, err
	}

	latest, err := r.store.Latest()
	if err != nil {
		return types.RunResult{}, err
	}

	var results []types.UnitResult
	for _, unit := range list {
		results = append(results, r.unlinkUnit(unit, targetDir, latest))
	}
	return types.RunResult{Results: results}, nil
}

func (r *Reconciler) unlinkUnit(unit types.ConfigUnit, targetDir, snapshotPath string) types.UnitResult {
	target := filepath.Join(targetDir, unit.Name)
	res := types.UnitResult{Unit: unit}

	state, err := inspect.State(r.fsys, target, unit.SourcePath)
	if err != nil {
		res.Action = types.ActionFail
		res.Err = err
		return res
	}
	res.State = state

	switch state {
	case types.StateAbsent:
		res.Action = types.ActionNone
		return res

	case types.StateRealEntry:
		// Never destroy user data the tool does not own.
		res.Action = types.ActionSkip
		r.logger.Warn().Str("unit", unit.Name).Str("target", target).
			Msg("Target is a real entry, not removing")
		return res

	case types.StateLinked, types.StateWrongTarget:
		if err := r.fsys.Remove(target); err != nil {
			res.Action = types.ActionFail
			res.Err = errors.Wrap(err, errors.ErrSymlinkRemove, "cannot remove symlink").
				WithDetail("path", target)
			return res
		}
	}

	if !r.store.Has(snapshotPath, unit.Name) {
		// No backup to restore; the unit is simply left absent.
		res.Action = types.ActionUnlink
		return res
	}

	if err := r.store.Restore(snapshotPath, unit.Name, target); err != nil {
		res.Action = types.ActionFail
		res.Err = err
		return res
	}

	res.Action = types.ActionRestore
	res.RestoredFrom = filepath.Join(snapshotPath, unit.Name)
	r.logger.Info().Str("unit", unit.Name).Str("from", res.RestoredFrom).Msg("Restored unit from snapshot")
	return res
}

// Status reports the live state of every unit. It is a pure read and never
// mutates the filesystem.
func (r *Reconciler) Status(sourceDir, targetDir string) ([]types.UnitStatus, error) {
	list, err := units.List(r.fsys, sourceDir, r.plat)
	if err != nil {
		return nil, err
	}

	var statuses []types.UnitStatus
	for _, unit := range list {
		target := filepath.Join(targetDir, unit.Name)
		state, err := inspect.State(r.fsys, target, unit.SourcePath)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, types.UnitStatus{
			Unit:       unit,
			State:      state,
			TargetPath: target,
		})
	}
	return statuses, nil
}

// removeExcludedLinks removes stale symlinks for units that do not apply on
// this platform. Runs once per link invocation, before the per-unit loop.
func (r *Reconciler) removeExcludedLinks(targetDir string) {
	for _, name := range r.plat.ExcludedUnits() {
		target := filepath.Join(targetDir, name)
		info, err := r.fsys.Lstat(target)
		if err != nil {
			continue
		}
		if info.Mode()&os.ModeSymlink == 0 {
			continue
		}
		if err := r.fsys.Remove(target); err != nil {
			r.logger.Warn().Err(err).Str("path", target).
				Msg("Could not remove stale excluded-unit symlink")
			continue
		}
		r.logger.Info().Str("unit", name).Str("path", target).
			Msg("Removed stale symlink for platform-excluded unit")
	}
}
