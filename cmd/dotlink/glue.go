package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Run the configured package-manager command for this platform",
	Long: `Install runs the command configured under [install.<platform>] in
dotlink.toml, e.g.

    [install]
    linux = ["sudo", "apt-get", "install", "-y", "neovim", "tmux"]

Nothing is run when no command is configured for the current platform.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}

		argv := e.cfg.Install[e.plat.Name()]
		if len(argv) == 0 {
			pterm.Println(pterm.Gray(fmt.Sprintf(MsgNoInstallCommand, e.plat.Name())))
			return nil
		}

		c := exec.Command(argv[0], argv[1:]...)
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		return c.Run()
	},
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Persist the config-home variable and link everything",
	Long: `Setup makes the target directory resolution stick for future shell
sessions by writing an XDG_CONFIG_HOME export into your shell profile when
it is missing or pointing elsewhere, then runs link.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}

		if err := persistConfigHome(e.p.TargetDir()); err != nil {
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

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the dotfiles repo in your editor",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}

		editor := e.cfg.Editor
		if editor == "" {
			editor = os.Getenv("EDITOR")
		}
		if editor == "" {
			editor = "vi"
		}

		c := exec.Command(editor, e.p.RepoRoot())
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		return c.Run()
	},
}

// persistConfigHome appends an XDG_CONFIG_HOME export to the user's shell
// profile when the live environment does not already point at target.
// No-op on Windows, where the target location is fixed.
func persistConfigHome(target string) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	if os.Getenv("XDG_CONFIG_HOME") == target {
		return nil
	}

	profile, err := shellProfilePath()
	if err != nil {
		return err
	}

	line := fmt.Sprintf("export XDG_CONFIG_HOME=%q", target)
	if existing, err := os.ReadFile(profile); err == nil &&
		strings.Contains(string(existing), line) {
		return nil
	}

	f, err := os.OpenFile(profile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if _, err := fmt.Fprintf(f, "\n# added by dotlink setup\n%s\n", line); err != nil {
		return err
	}
	pterm.Println(pterm.Gray(fmt.Sprintf(MsgProfileUpdated, profile)))
	return nil
}

func shellProfilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	if strings.Contains(os.Getenv("SHELL"), "zsh") {
		return filepath.Join(home, ".zshrc"), nil
	}
	return filepath.Join(home, ".bashrc"), nil
}
