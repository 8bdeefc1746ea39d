package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/dotlink/dotlink/internal/version"
	"github.com/dotlink/dotlink/pkg/logging"
)

var (
	verbosity int
	rootFlag  string

	rootCmd = &cobra.Command{
		Use:   "dotlink",
		Short: "Symlink your dotfiles into place, with backups",
		Long: `dotlink manages a versioned dotfiles repository by symlinking each
configuration folder under config/ into your platform configuration
directory. Pre-existing files are moved into timestamped backups and
restored on unlink.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute adds all child commands to the root command and sets flags
// appropriately. Called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	initTemplateFormatting()
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", "", "Dotfiles repo root (default $DOTLINK_ROOT or ~/dotfiles)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(manCmd)
	rootCmd.AddCommand(linkCmd)
	rootCmd.AddCommand(unlinkCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(topicsCmd)
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(editCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("dotlink version %s\n", version.Version)
		cmd.Printf("  commit: %s\n", version.Commit)
		cmd.Printf("  built:  %s\n", version.Date)
	},
}

var manCmd = &cobra.Command{
	Use:    "man [directory]",
	Short:  "Generate man pages",
	Hidden: true,
	Args:   cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		header := &doc.GenManHeader{Title: "DOTLINK", Section: "1"}
		return doc.GenManTree(rootCmd, header, dir)
	},
}
