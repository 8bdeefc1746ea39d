package reconciler

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dotlink/dotlink/pkg/backup"
	"github.com/dotlink/dotlink/pkg/filesystem"
	"github.com/dotlink/dotlink/pkg/platform"
	"github.com/dotlink/dotlink/pkg/testutil"
	"github.com/dotlink/dotlink/pkg/types"
)

// fixture builds a repo layout with a source dir, target dir, and backups
// root inside one temp dir.
type fixture struct {
	sourceDir  string
	targetDir  string
	backupsDir string
	fsys       types.FS
	rec        *Reconciler
}

func newFixture(t *testing.T, fsys types.FS) *fixture {
	t.Helper()
	tmp := t.TempDir()
	f := &fixture{
		sourceDir:  filepath.Join(tmp, "config"),
		targetDir:  filepath.Join(tmp, "home", ".config"),
		backupsDir: filepath.Join(tmp, "backups"),
		fsys:       fsys,
	}
	require.NoError(t, os.MkdirAll(f.sourceDir, 0755))
	require.NoError(t, os.MkdirAll(f.targetDir, 0755))
	f.rec = New(fsys, platform.NewUnix("linux"), backup.New(fsys, f.backupsDir))
	return f
}

func (f *fixture) target(name string) string {
	return filepath.Join(f.targetDir, name)
}

func snapshots(t *testing.T, backupsDir string) []string {
	t.Helper()
	entries, err := os.ReadDir(backupsDir)
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestLink_Scenario_RealEntryAndAbsent(t *testing.T) {
	f := newFixture(t, filesystem.NewOS())
	testutil.CreateUnit(t, f.sourceDir, "alpha", map[string]string{"rc": "new alpha"})
	testutil.CreateUnit(t, f.sourceDir, "beta", map[string]string{"rc": "new beta"})

	// alpha already occupied by a real directory, beta absent
	testutil.WriteFile(t, filepath.Join(f.target("alpha"), "rc"), "old alpha")

	run, err := f.rec.Link(f.sourceDir, f.targetDir)
	require.NoError(t, err)
	require.Len(t, run.Results, 2)

	assert.Equal(t, types.ActionBackupLink, run.Results[0].Action)
	assert.Equal(t, types.ActionLink, run.Results[1].Action)
	assert.True(t, testutil.IsSymlinkTo(t, f.target("alpha"), filepath.Join(f.sourceDir, "alpha")))
	assert.True(t, testutil.IsSymlinkTo(t, f.target("beta"), filepath.Join(f.sourceDir, "beta")))

	// The displaced real entry lives in the snapshot
	require.NotEmpty(t, run.SnapshotDir)
	assert.Equal(t, "old alpha", testutil.ReadFile(t, filepath.Join(run.SnapshotDir, "alpha", "rc")))

	// status reports both Linked
	statuses, err := f.rec.Status(f.sourceDir, f.targetDir)
	require.NoError(t, err)
	require.Len(t, statuses, 2)
	assert.Equal(t, types.StateLinked, statuses[0].State)
	assert.Equal(t, types.StateLinked, statuses[1].State)
}

func TestLink_Idempotent(t *testing.T) {
	f := newFixture(t, filesystem.NewOS())
	testutil.CreateUnit(t, f.sourceDir, "alpha", map[string]string{"rc": "a"})
	testutil.WriteFile(t, filepath.Join(f.target("alpha"), "rc"), "old")

	run1, err := f.rec.Link(f.sourceDir, f.targetDir)
	require.NoError(t, err)
	require.NotEmpty(t, run1.SnapshotDir)
	require.Len(t, snapshots(t, f.backupsDir), 1)

	// Second run: everything already linked, no new snapshot
	run2, err := f.rec.Link(f.sourceDir, f.targetDir)
	require.NoError(t, err)
	assert.Empty(t, run2.SnapshotDir)
	assert.Equal(t, types.ActionNone, run2.Results[0].Action)
	assert.Len(t, snapshots(t, f.backupsDir), 1)
}

func TestLink_LazySnapshotWhenNothingDisplaced(t *testing.T) {
	f := newFixture(t, filesystem.NewOS())
	testutil.CreateUnit(t, f.sourceDir, "alpha", map[string]string{"rc": "a"})

	run, err := f.rec.Link(f.sourceDir, f.targetDir)
	require.NoError(t, err)
	assert.Empty(t, run.SnapshotDir)
	assert.Empty(t, snapshots(t, f.backupsDir))
}

func TestLink_ReplacesWrongTarget(t *testing.T) {
	f := newFixture(t, filesystem.NewOS())
	testutil.CreateUnit(t, f.sourceDir, "alpha", map[string]string{"rc": "a"})
	other := testutil.CreateUnit(t, f.sourceDir, "other", map[string]string{"rc": "o"})

	require.NoError(t, os.Symlink(other, f.target("alpha")))

	run, err := f.rec.Link(f.sourceDir, f.targetDir)
	require.NoError(t, err)

	var alphaRes types.UnitResult
	for _, res := range run.Results {
		if res.Unit.Name == "alpha" {
			alphaRes = res
		}
	}
	assert.Equal(t, types.ActionRelink, alphaRes.Action)
	assert.Equal(t, types.StateWrongTarget, alphaRes.State)
	assert.True(t, testutil.IsSymlinkTo(t, f.target("alpha"), filepath.Join(f.sourceDir, "alpha")))
	// Only the link entry was replaced; what it pointed at is untouched.
	assert.Equal(t, "o", testutil.ReadFile(t, filepath.Join(other, "rc")))
}

func TestLink_SymlinkFailureDoesNotBlockOtherUnits(t *testing.T) {
	fs := testutil.NewFaultFS(filesystem.NewOS())
	f := newFixture(t, fs)
	testutil.CreateUnit(t, f.sourceDir, "alpha", map[string]string{"rc": "a"})
	testutil.CreateUnit(t, f.sourceDir, "beta", map[string]string{"rc": "b"})

	fs.SymlinkErr = fmt.Errorf("operation not permitted")

	run, err := f.rec.Link(f.sourceDir, f.targetDir)
	require.NoError(t, err)
	// Both units were processed; both failed locally, neither aborted the run.
	require.Len(t, run.Results, 2)
	assert.Equal(t, types.ActionFail, run.Results[0].Action)
	assert.Equal(t, types.ActionFail, run.Results[1].Action)
	assert.True(t, run.Failed())
}

func TestLink_BackupFailureSkipsLinkAndKeepsData(t *testing.T) {
	fs := testutil.NewFaultFS(filesystem.NewOS())
	f := newFixture(t, fs)
	testutil.CreateUnit(t, f.sourceDir, "alpha", map[string]string{"rc": "new"})
	testutil.WriteFile(t, filepath.Join(f.target("alpha"), "rc"), "precious")

	fs.RenameErr = fmt.Errorf("cross-device link")
	fs.WriteErr = fmt.Errorf("disk full")

	run, err := f.rec.Link(f.sourceDir, f.targetDir)
	require.NoError(t, err)
	require.Len(t, run.Results, 1)
	assert.Equal(t, types.ActionFail, run.Results[0].Action)

	// No data loss: the original real entry is still at the target and no
	// symlink replaced it.
	info, err := os.Lstat(f.target("alpha"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, "precious", testutil.ReadFile(t, filepath.Join(f.target("alpha"), "rc")))
}

func TestLink_RemovesStaleExcludedUnitSymlink(t *testing.T) {
	f := newFixture(t, filesystem.NewOS())
	testutil.CreateUnit(t, f.sourceDir, "alpha", map[string]string{"rc": "a"})
	psSource := testutil.CreateUnit(t, f.sourceDir, "powershell", map[string]string{"profile.ps1": "p"})

	// Drift from another platform: a powershell symlink at the target
	require.NoError(t, os.Symlink(psSource, f.target("powershell")))

	run, err := f.rec.Link(f.sourceDir, f.targetDir)
	require.NoError(t, err)

	// powershell was not enumerated and its stale link is gone
	for _, res := range run.Results {
		assert.NotEqual(t, "powershell", res.Unit.Name)
	}
	_, err = os.Lstat(f.target("powershell"))
	assert.True(t, os.IsNotExist(err))

	// A real entry for an excluded unit is never removed
	testutil.WriteFile(t, filepath.Join(f.target("powershell"), "profile.ps1"), "mine")
	_, err = f.rec.Link(f.sourceDir, f.targetDir)
	require.NoError(t, err)
	assert.Equal(t, "mine", testutil.ReadFile(t, filepath.Join(f.target("powershell"), "profile.ps1")))
}

func TestUnlink_Scenario_RestoreAndAbsent(t *testing.T) {
	f := newFixture(t, filesystem.NewOS())
	testutil.CreateUnit(t, f.sourceDir, "alpha", map[string]string{"rc": "new alpha"})
	testutil.CreateUnit(t, f.sourceDir, "beta", map[string]string{"rc": "new beta"})
	testutil.WriteFile(t, filepath.Join(f.target("alpha"), "rc"), "old alpha")

	_, err := f.rec.Link(f.sourceDir, f.targetDir)
	require.NoError(t, err)

	run, err := f.rec.Unlink(f.sourceDir, f.targetDir)
	require.NoError(t, err)
	require.Len(t, run.Results, 2)

	// alpha: symlink removed, original restored byte-for-byte
	assert.Equal(t, types.ActionRestore, run.Results[0].Action)
	info, err := os.Lstat(f.target("alpha"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, "old alpha", testutil.ReadFile(t, filepath.Join(f.target("alpha"), "rc")))

	// beta: symlink removed, nothing to restore, left absent
	assert.Equal(t, types.ActionUnlink, run.Results[1].Action)
	_, err = os.Lstat(f.target("beta"))
	assert.True(t, os.IsNotExist(err))
}

func TestUnlink_UsesLatestSnapshot(t *testing.T) {
	f := newFixture(t, filesystem.NewOS())
	source := testutil.CreateUnit(t, f.sourceDir, "alpha", map[string]string{"rc": "a"})
	require.NoError(t, os.Symlink(source, f.target("alpha")))

	testutil.WriteFile(t, filepath.Join(f.backupsDir, "20240101_000000", "alpha", "rc"), "january")
	testutil.WriteFile(t, filepath.Join(f.backupsDir, "20240601_120000", "alpha", "rc"), "june")

	run, err := f.rec.Unlink(f.sourceDir, f.targetDir)
	require.NoError(t, err)
	require.Len(t, run.Results, 1)
	assert.Equal(t, types.ActionRestore, run.Results[0].Action)
	assert.Contains(t, run.Results[0].RestoredFrom, "20240601_120000")
	assert.Equal(t, "june", testutil.ReadFile(t, filepath.Join(f.target("alpha"), "rc")))
}

func TestUnlink_SkipsRealEntry(t *testing.T) {
	f := newFixture(t, filesystem.NewOS())
	testutil.CreateUnit(t, f.sourceDir, "alpha", map[string]string{"rc": "a"})
	testutil.WriteFile(t, filepath.Join(f.target("alpha"), "rc"), "user data")

	run, err := f.rec.Unlink(f.sourceDir, f.targetDir)
	require.NoError(t, err)
	require.Len(t, run.Results, 1)
	assert.Equal(t, types.ActionSkip, run.Results[0].Action)
	assert.Equal(t, types.StateRealEntry, run.Results[0].State)
	assert.Equal(t, "user data", testutil.ReadFile(t, filepath.Join(f.target("alpha"), "rc")))
}

func TestUnlink_AbsentIsNoop(t *testing.T) {
	f := newFixture(t, filesystem.NewOS())
	testutil.CreateUnit(t, f.sourceDir, "alpha", map[string]string{"rc": "a"})

	run, err := f.rec.Unlink(f.sourceDir, f.targetDir)
	require.NoError(t, err)
	require.Len(t, run.Results, 1)
	assert.Equal(t, types.ActionNone, run.Results[0].Action)
}

func TestUnlink_RemovesWrongTargetWithoutFollowing(t *testing.T) {
	f := newFixture(t, filesystem.NewOS())
	testutil.CreateUnit(t, f.sourceDir, "alpha", map[string]string{"rc": "a"})
	other := testutil.CreateUnit(t, f.sourceDir, "other", map[string]string{"rc": "o"})
	require.NoError(t, os.Symlink(other, f.target("alpha")))

	run, err := f.rec.Unlink(f.sourceDir, f.targetDir)
	require.NoError(t, err)
	assert.Equal(t, types.ActionUnlink, run.Results[0].Action)

	_, err = os.Lstat(f.target("alpha"))
	assert.True(t, os.IsNotExist(err))
	// The link target itself was not deleted through the link
	assert.Equal(t, "o", testutil.ReadFile(t, filepath.Join(other, "rc")))
}

func TestStatus_IsReadOnly(t *testing.T) {
	f := newFixture(t, filesystem.NewOS())
	testutil.CreateUnit(t, f.sourceDir, "alpha", map[string]string{"rc": "a"})
	testutil.WriteFile(t, filepath.Join(f.target("alpha"), "rc"), "real")

	statuses, err := f.rec.Status(f.sourceDir, f.targetDir)
	require.NoError(t, err)
	require.Len(t, statuses, 1)
	assert.Equal(t, types.StateRealEntry, statuses[0].State)

	// Nothing was mutated
	assert.Equal(t, "real", testutil.ReadFile(t, filepath.Join(f.target("alpha"), "rc")))
	assert.Empty(t, snapshots(t, f.backupsDir))
}

func TestLink_RoundTripPreservesOriginal(t *testing.T) {
	f := newFixture(t, filesystem.NewOS())
	testutil.CreateUnit(t, f.sourceDir, "alpha", map[string]string{"rc": "managed"})
	testutil.WriteFile(t, filepath.Join(f.target("alpha"), "deep", "nested.conf"), "keep me")
	testutil.WriteFile(t, filepath.Join(f.target("alpha"), "rc"), "keep me too")

	_, err := f.rec.Link(f.sourceDir, f.targetDir)
	require.NoError(t, err)
	_, err = f.rec.Unlink(f.sourceDir, f.targetDir)
	require.NoError(t, err)

	assert.Equal(t, "keep me", testutil.ReadFile(t, filepath.Join(f.target("alpha"), "deep", "nested.conf")))
	assert.Equal(t, "keep me too", testutil.ReadFile(t, filepath.Join(f.target("alpha"), "rc")))
}

func TestLink_MissingSourceYieldsEmptyRun(t *testing.T) {
	f := newFixture(t, filesystem.NewOS())
	require.NoError(t, os.RemoveAll(f.sourceDir))

	run, err := f.rec.Link(f.sourceDir, f.targetDir)
	require.NoError(t, err)
	assert.Empty(t, run.Results)
	assert.Empty(t, run.SnapshotDir)
}
