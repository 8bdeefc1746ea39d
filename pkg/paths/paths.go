// Package paths provides centralized path handling for dotlink.
// It resolves the dotfiles repo root, the source and backups directories
// under it, and the platform target directory, so the engine packages can
// take already-resolved absolute paths as parameters.
package paths

import (
	"os"
	"path/filepath"

	"github.com/dotlink/dotlink/pkg/config"
	"github.com/dotlink/dotlink/pkg/errors"
	"github.com/dotlink/dotlink/pkg/platform"
)

// Environment variable names
const (
	// EnvRepoRoot is the primary environment variable for the dotfiles
	// repo location.
	EnvRepoRoot = "DOTLINK_ROOT"
)

// DefaultRepoDir is the fallback repo directory name under $HOME.
const DefaultRepoDir = "dotfiles"

// Paths holds the resolved directory layout for a run. All paths are
// absolute and resolved exactly once, before any engine operation starts.
type Paths struct {
	repoRoot   string
	sourceDir  string
	backupsDir string
	targetDir  string
}

// ResolveRoot resolves the dotfiles repo root from an explicit override
// (may be empty), then DOTLINK_ROOT, then ~/dotfiles. The result is
// absolute.
func ResolveRoot(override string) (string, error) {
	root := override
	if root == "" {
		root = os.Getenv(EnvRepoRoot)
	}
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errors.Wrap(err, errors.ErrNotFound, "cannot determine home directory")
		}
		root = filepath.Join(home, DefaultRepoDir)
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInvalidInput, "invalid repo root").
			WithDetail("path", root)
	}
	return abs, nil
}

// Resolve computes the path layout from an explicit root override (may be
// empty), the loaded configuration, and the platform.
func Resolve(rootOverride string, cfg *config.Config, plat platform.Platform) (*Paths, error) {
	root, err := ResolveRoot(rootOverride)
	if err != nil {
		return nil, err
	}

	target := cfg.TargetDir
	if target == "" {
		target, err = plat.TargetBaseDir()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrNotFound, "cannot resolve target directory")
		}
	}

	return &Paths{
		repoRoot:   root,
		sourceDir:  filepath.Join(root, cfg.SourceDir),
		backupsDir: filepath.Join(root, cfg.BackupsDir),
		targetDir:  target,
	}, nil
}

// RepoRoot is the dotfiles repository root.
func (p *Paths) RepoRoot() string {
	return p.repoRoot
}

// SourceDir is the directory holding the config units.
func (p *Paths) SourceDir() string {
	return p.sourceDir
}

// BackupsDir is the directory snapshots are stored under.
func (p *Paths) BackupsDir() string {
	return p.backupsDir
}

// TargetDir is the platform configuration directory symlinks live in.
func (p *Paths) TargetDir() string {
	return p.targetDir
}
