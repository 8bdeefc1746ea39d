// Package platform abstracts the per-OS capabilities the reconciler needs:
// target directory resolution, the symlink creation primitive, and the
// platform exclusion rule. The reconciliation logic itself is written once
// against this interface.
package platform

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/adrg/xdg"
	"github.com/dotlink/dotlink/pkg/types"
)

// Platform provides the OS-specific capabilities used during reconciliation.
type Platform interface {
	// Name is the platform identifier used in unit applicability rules,
	// e.g. "linux", "darwin", "windows".
	Name() string

	// TargetBaseDir resolves the platform configuration directory that
	// unit symlinks are created under.
	TargetBaseDir() (string, error)

	// Excluded reports whether the named unit is excluded on this platform.
	Excluded(unit string) bool

	// ExcludedUnits lists all units excluded on this platform. Used by the
	// reconciler to clean up stale symlinks left by another platform.
	ExcludedUnits() []string

	// CreateLink creates a symlink at target pointing to source, with the
	// correct link kind for platforms that distinguish file and directory
	// symlinks.
	CreateLink(fsys types.FS, source, target string) error
}

// PowerShellUnit is the terminal-shell unit that only applies on Windows.
// It is the single built-in exclusion on Unix-like platforms.
const PowerShellUnit = "powershell"

// Current returns the Platform for the running OS.
func Current() Platform {
	if runtime.GOOS == "windows" {
		return NewWindows()
	}
	return NewUnix(runtime.GOOS)
}

type unixPlatform struct {
	name string
}

// NewUnix returns the Platform for Unix-like systems. The name is the GOOS
// value to report ("linux", "darwin").
func NewUnix(name string) Platform {
	return &unixPlatform{name: name}
}

func (p *unixPlatform) Name() string {
	return p.name
}

// TargetBaseDir honors XDG_CONFIG_HOME and falls back to ~/.config.
func (p *unixPlatform) TargetBaseDir() (string, error) {
	return xdg.ConfigHome, nil
}

func (p *unixPlatform) Excluded(unit string) bool {
	return unit == PowerShellUnit
}

func (p *unixPlatform) ExcludedUnits() []string {
	return []string{PowerShellUnit}
}

func (p *unixPlatform) CreateLink(fsys types.FS, source, target string) error {
	return fsys.Symlink(source, target)
}

type windowsPlatform struct{}

// NewWindows returns the Platform for Windows.
func NewWindows() Platform {
	return &windowsPlatform{}
}

func (p *windowsPlatform) Name() string {
	return "windows"
}

// TargetBaseDir is the fixed per-user configuration location on Windows.
func (p *windowsPlatform) TargetBaseDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "AppData", "Local"), nil
}

func (p *windowsPlatform) Excluded(unit string) bool {
	return false
}

func (p *windowsPlatform) ExcludedUnits() []string {
	return nil
}

// CreateLink stats the source first so the link kind matches the entry type.
// os.Symlink picks the directory flag from the live source on Windows, so a
// missing source would otherwise silently produce a file symlink.
func (p *windowsPlatform) CreateLink(fsys types.FS, source, target string) error {
	if _, err := fsys.Stat(source); err != nil {
		return err
	}
	return fsys.Symlink(source, target)
}
