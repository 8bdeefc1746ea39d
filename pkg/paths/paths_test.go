package paths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dotlink/dotlink/pkg/config"
	"github.com/dotlink/dotlink/pkg/platform"
)

func TestResolveRoot_Override(t *testing.T) {
	tmp := t.TempDir()

	root, err := ResolveRoot(tmp)
	require.NoError(t, err)
	assert.Equal(t, tmp, root)
}

func TestResolveRoot_Env(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv(EnvRepoRoot, tmp)

	root, err := ResolveRoot("")
	require.NoError(t, err)
	assert.Equal(t, tmp, root)
}

func TestResolveRoot_OverrideBeatsEnv(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv(EnvRepoRoot, "/somewhere/else")

	root, err := ResolveRoot(tmp)
	require.NoError(t, err)
	assert.Equal(t, tmp, root)
}

func TestResolve_Layout(t *testing.T) {
	tmp := t.TempDir()
	cfg := &config.Config{SourceDir: "config", BackupsDir: "backups", TargetDir: "/custom/target"}

	p, err := Resolve(tmp, cfg, platform.NewUnix("linux"))
	require.NoError(t, err)

	assert.Equal(t, tmp, p.RepoRoot())
	assert.Equal(t, filepath.Join(tmp, "config"), p.SourceDir())
	assert.Equal(t, filepath.Join(tmp, "backups"), p.BackupsDir())
	assert.Equal(t, "/custom/target", p.TargetDir())
}

func TestResolve_PlatformTargetWhenNoOverride(t *testing.T) {
	tmp := t.TempDir()
	cfg := &config.Config{SourceDir: "config", BackupsDir: "backups"}
	plat := platform.NewUnix("linux")

	p, err := Resolve(tmp, cfg, plat)
	require.NoError(t, err)

	want, err := plat.TargetBaseDir()
	require.NoError(t, err)
	assert.Equal(t, want, p.TargetDir())
}
