package types

// UnitAction describes what the reconciler did (or declined to do) for a
// single unit during a run.
type UnitAction string

const (
	// ActionNone - the unit was already in the desired state
	ActionNone UnitAction = "none"

	// ActionLink - a new symlink was created at an absent target
	ActionLink UnitAction = "link"

	// ActionRelink - a stale symlink was removed and recreated
	ActionRelink UnitAction = "relink"

	// ActionBackupLink - a real entry was moved into a snapshot, then linked
	ActionBackupLink UnitAction = "backup+link"

	// ActionUnlink - the symlink was removed, nothing restored
	ActionUnlink UnitAction = "unlink"

	// ActionRestore - the symlink was removed and a snapshot entry restored
	ActionRestore UnitAction = "restore"

	// ActionSkip - the unit was left untouched (e.g. real entry on unlink)
	ActionSkip UnitAction = "skip"

	// ActionFail - the unit's operation failed; see UnitResult.Err
	ActionFail UnitAction = "fail"
)

// UnitResult is the outcome of reconciling one unit.
type UnitResult struct {
	Unit   ConfigUnit
	State  LinkState  // state observed before acting
	Action UnitAction // what was done
	Err    error      // set when Action is ActionFail

	// BackupPath is where the displaced real entry was moved, when
	// Action is ActionBackupLink.
	BackupPath string

	// RestoredFrom is the snapshot entry a restore came from, when
	// Action is ActionRestore.
	RestoredFrom string
}

// RunResult aggregates the per-unit outcomes of a link or unlink run.
type RunResult struct {
	Results []UnitResult

	// SnapshotDir is the snapshot created during this run, empty if the
	// run displaced nothing (snapshots are created lazily).
	SnapshotDir string
}

// Failed reports whether any unit in the run failed.
func (r RunResult) Failed() bool {
	for _, res := range r.Results {
		if res.Action == ActionFail {
			return true
		}
	}
	return false
}
