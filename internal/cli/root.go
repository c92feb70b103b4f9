package cli

import (
	"fmt"
	"os"
	"runtime"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/yildizm/bookrec/internal/config"
	"github.com/yildizm/bookrec/internal/emoji"
	"github.com/yildizm/bookrec/internal/logger"
	"github.com/yildizm/bookrec/internal/ui"
)

var (
	cfgFile string
	verbose bool
	noColor bool
	noEmoji bool
)

// NewRootCommand creates the root command
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bookrec",
		Short: "Terminal book recommendations",
		Long: `bookrec recommends books from a catalog of readers and their reading history.

Run without a subcommand to open the interactive browser. Pick a user to see
personalized recommendations, mark books as read to refine them, or build a
history from scratch in the creator.

The catalog can be a local YAML file or a remote bookrec server.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Auto-disable emojis on Windows if not explicitly set
			if runtime.GOOS == "windows" && !cmd.Flag("no-emoji").Changed {
				noEmoji = true
			}
			emoji.SetEmojiDisabled(noEmoji)
			if noColor {
				ui.SetColorDisabled(true)
			}
		},
		RunE: runBrowse,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&noEmoji, "no-emoji", false, "disable emoji output (useful for Windows terminals)")
	addBrowseFlags(rootCmd)

	// Add subcommands
	rootCmd.AddCommand(newBrowseCommand())
	rootCmd.AddCommand(newRecommendCommand())
	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newHistoryCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

func newVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display version number, build commit, date, and runtime information",
		Run: func(cmd *cobra.Command, args []string) {
			displayVersion := version
			displayCommit := commit
			displayDate := date

			if version == "dev" || version == "" {
				displayVersion = "development"
			}
			if commit == "none" || commit == "" {
				displayCommit = "local-build"
			}
			if date == "unknown" || date == "" {
				displayDate = "local-build"
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "bookrec %s (%s) built on %s\n", displayVersion, displayCommit, displayDate)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

// loadConfig loads the effective configuration and applies its UI settings
func loadConfig() (*config.Config, error) {
	cfg, err := config.NewLoader().LoadConfig(cfgFile)
	if err != nil {
		return nil, err
	}

	if cfg.UI.NoEmoji {
		emoji.SetEmojiDisabled(true)
	}
	ui.SetColorDisabled(!colorEnabled(cfg.UI.ColorMode, stdoutIsTerminal()))
	if !ui.SetThemeByName(cfg.UI.Theme) {
		return nil, fmt.Errorf("unknown theme %q (available: %v)", cfg.UI.Theme, ui.GetAvailableThemes())
	}
	return cfg, nil
}

// colorEnabled resolves the color mode; --no-color and NO_COLOR always win
func colorEnabled(mode string, terminal bool) bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return terminal
	}
}

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Global helpers
func isVerbose() bool {
	return verbose
}

func newLogger(component string) *logger.Logger {
	return logger.NewWithCallback(component, isVerbose)
}
