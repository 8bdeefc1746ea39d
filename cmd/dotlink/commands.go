package main

import (
	"fmt"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/dotlink/dotlink/pkg/backup"
	"github.com/dotlink/dotlink/pkg/config"
	"github.com/dotlink/dotlink/pkg/doctor"
	"github.com/dotlink/dotlink/pkg/filesystem"
	"github.com/dotlink/dotlink/pkg/output"
	"github.com/dotlink/dotlink/pkg/paths"
	"github.com/dotlink/dotlink/pkg/platform"
	"github.com/dotlink/dotlink/pkg/reconciler"
	"github.com/dotlink/dotlink/pkg/style"
	"github.com/dotlink/dotlink/pkg/topics"
	"github.com/dotlink/dotlink/pkg/types"
)

// env bundles everything a command needs after path and config resolution.
type env struct {
	fsys types.FS
	cfg  *config.Config
	plat platform.Platform
	p    *paths.Paths
	rec  *reconciler.Reconciler
}

// newEnv resolves configuration and paths once, before any engine operation.
func newEnv() (*env, error) {
	root, err := paths.ResolveRoot(rootFlag)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(root)
	if err != nil {
		return nil, err
	}

	if cfg.Theme != "" {
		theme := cfg.Theme
		if !filepath.IsAbs(theme) {
			theme = filepath.Join(root, theme)
		}
		if err := output.LoadStylesFromFile(theme); err != nil {
			return nil, err
		}
	}

	plat := platform.Current()
	p, err := paths.Resolve(root, cfg, plat)
	if err != nil {
		return nil, err
	}

	fsys := filesystem.NewOS()
	store := backup.New(fsys, p.BackupsDir())
	return &env{
		fsys: fsys,
		cfg:  cfg,
		plat: plat,
		p:    p,
		rec:  reconciler.New(fsys, plat, store),
	}, nil
}

func printRun(run types.RunResult) {
	for _, res := range run.Results {
		fmt.Println(style.RenderUnitResult(res))
	}
	if run.SnapshotDir != "" {
		pterm.Println(pterm.Gray(fmt.Sprintf(MsgSnapshotCreated, run.SnapshotDir)))
	}
	if len(run.Results) == 0 {
		pterm.Println(pterm.Gray(MsgNoUnits))
	}
}

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Symlink every unit into the target directory",
	Long: `Link reconciles each unit under config/ into the target directory.
Correct links are left alone, stale links are replaced, and real files or
directories are moved into a timestamped backup before linking. A failing
unit is reported and skipped; the rest still run.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		run, err := e.rec.Link(e.p.SourceDir(), e.p.TargetDir())
		if err != nil {
			return err
		}
		printRun(run)
		if run.Failed() {
			return fmt.Errorf(MsgSomeUnitsFailed)
		}
		return nil
	},
}

var unlinkCmd = &cobra.Command{
	Use:   "unlink",
	Short: "Remove unit symlinks and restore the latest backup",
	Long: `Unlink removes each unit's symlink from the target directory and, when
the most recent backup snapshot holds an entry for the unit, restores it.
Real files or directories at the target are never removed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		run, err := e.rec.Unlink(e.p.SourceDir(), e.p.TargetDir())
		if err != nil {
			return err
		}
		printRun(run)
		if run.Failed() {
			return fmt.Errorf(MsgSomeUnitsFailed)
		}
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the link state of every unit",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		statuses, err := e.rec.Status(e.p.SourceDir(), e.p.TargetDir())
		if err != nil {
			return err
		}
		output.RenderStatusTable(cmd.OutOrStdout(), statuses)
		return nil
	},
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run read-only diagnostics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		failed := false
		for _, check := range doctor.Run(e.fsys, e.p, e.plat) {
			printCheck(check)
			if check.Status == doctor.CheckFail {
				failed = true
			}
		}
		if failed {
			return fmt.Errorf(MsgDoctorFailed)
		}
		return nil
	},
}

func printCheck(check doctor.Check) {
	var badge string
	switch check.Status {
	case doctor.CheckOK:
		badge = pterm.NewStyle(pterm.FgGreen).Sprint(" ok ")
	case doctor.CheckWarn:
		badge = pterm.NewStyle(pterm.FgYellow).Sprint("warn")
	case doctor.CheckFail:
		badge = pterm.NewStyle(pterm.FgRed, pterm.Bold).Sprint("FAIL")
	}
	fmt.Printf("[%s] %-20s %s\n", badge, check.Name, check.Detail)
}

var topicsCmd = &cobra.Command{
	Use:   "topics [name]",
	Short: "Show long-form help topics",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			names, err := topics.List()
			if err != nil {
				return err
			}
			cmd.Println(MsgTopicsAvailable)
			for _, name := range names {
				cmd.Printf("  %s\n", name)
			}
			return nil
		}

		rendered, err := topics.Render(args[0])
		if err != nil {
			return err
		}
		cmd.Print(rendered)
		return nil
	},
}
