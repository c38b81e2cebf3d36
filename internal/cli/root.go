// Package cli provides the genre-fill command line.
package cli

import (
	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/binaryphile/genre-fill/internal/config"
	"github.com/binaryphile/genre-fill/internal/logging"
)

const appName = "genre-fill"

// Version is reported by --version.
var Version = "1.0"

// app is the state shared by all commands of one invocation.
type app struct {
	configPath string
	verbose    bool
	noColor    bool

	log      zerolog.Logger
	settings *config.Settings
}

// NewRootCmd creates the root command. It tags the paths given as
// arguments; inspect and recent are subcommands.
func NewRootCmd() *cobra.Command {
	a := &app{log: zerolog.Nop()}

	rootCmd := &cobra.Command{
		Use:   appName + " [flags] [path...]",
		Short: "Set genre and artists on MP3 files",
		Long: `genre-fill writes a genre and a normalized artist list into the ID3 tags
of every MP3 file under the given files and folders.

Artists are separated with "," or ";". By default they are stored as one
"Artist One / Artist Two" value; with --join=false they are stored as
ID3v2.4 multi-values. Legacy "a/b" artist values are split even when no
artists are given.`,
		Version:           Version,
		Args:              cobra.ArbitraryArgs,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Settings file path (default: $XDG_CONFIG_HOME/genre-fill/settings.json)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Verbose output (shows per-file decisions)")
	rootCmd.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable colored output")

	addTagFlags(rootCmd, a)
	rootCmd.AddCommand(newInspectCmd())
	rootCmd.AddCommand(newRecentCmd(a))

	return rootCmd
}

// Execute runs the command line against os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if a.noColor {
		color.NoColor = true
	}
	a.log = logging.New(cmd.ErrOrStderr(), logging.Options{
		Verbose: a.verbose,
		NoColor: color.NoColor,
	})

	if a.configPath == "" {
		path, err := config.DefaultPath()
		if err != nil {
			return err
		}
		a.configPath = path
	}

	settings, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.settings = settings
	a.log.Debug().Str("config", a.configPath).Msg("settings loaded")
	return nil
}

func (a *app) saveSettings() {
	if err := a.settings.Save(a.configPath); err != nil {
		a.log.Warn().Err(err).Msg("settings not saved")
	}
}
