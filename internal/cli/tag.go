package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/binaryphile/genre-fill/internal/batch"
	"github.com/binaryphile/genre-fill/internal/progress"
	"github.com/binaryphile/genre-fill/internal/tagging"
)

var (
	errNoPaths  = errors.New("no paths given (use --last for the most recent folder)")
	errNoRecent = errors.New("no recent folder remembered")
	errNoMP3    = errors.New("no mp3 files found")
)

type tagOptions struct {
	genre   string
	artists string
	join    bool
	dryRun  bool
	last    bool
}

func addTagFlags(cmd *cobra.Command, a *app) {
	opts := &tagOptions{}

	cmd.Flags().StringVarP(&opts.genre, "genre", "g", "", "Genre to write (blank leaves the genre alone)")
	cmd.Flags().StringVarP(&opts.artists, "artists", "a", "", `Artists separated by "," or ";"`)
	cmd.Flags().BoolVarP(&opts.join, "join", "j", true, `Store artists as one "A / B" value (default: saved setting)`)
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Show what would be done")
	cmd.Flags().BoolVar(&opts.last, "last", false, "Use the most recent folder when no paths are given")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return a.runTag(cmd, args, opts)
	}
}

func (a *app) runTag(cmd *cobra.Command, args []string, opts *tagOptions) error {
	paths := args
	if len(paths) == 0 {
		if !opts.last {
			return errNoPaths
		}
		dir, ok := a.settings.LastDir()
		if !ok {
			return errNoRecent
		}
		a.log.Info().Str("path", dir).Msg("using most recent folder")
		paths = []string{dir}
	}

	join := a.settings.JoinArtists
	if cmd.Flags().Changed("join") {
		join = opts.join
	}

	runner := batch.NewRunner(a.log, progress.ForTerminal())
	report := runner.Run(batch.Request{
		Paths: paths,
		Input: tagging.Input{
			Genre:   opts.genre,
			Artists: opts.artists,
			Join:    join,
		},
		DryRun: opts.dryRun,
	})

	out := cmd.OutOrStdout()
	printResults(out, report)

	if !opts.dryRun {
		for i := len(report.Dirs) - 1; i >= 0; i-- {
			a.settings.Remember(report.Dirs[i])
		}
		a.settings.JoinArtists = join
		a.saveSettings()
	}

	if report.NoMP3() {
		return errNoMP3
	}
	if report.Summary.Failed > 0 {
		return fmt.Errorf("%d file(s) failed", report.Summary.Failed)
	}
	return nil
}

func printResults(w io.Writer, report batch.Report) {
	updated := color.New(color.FgGreen)
	skipped := color.New(color.FgYellow)
	failed := color.New(color.FgRed)

	for _, res := range report.Results {
		switch res.Outcome {
		case batch.Updated:
			updated.Fprintln(w, res.Line())
		case batch.Failed:
			failed.Fprintln(w, res.Line())
		default:
			skipped.Fprintln(w, res.Line())
		}
	}

	summary := "Summary: " + report.Summary.String()
	if report.Summary.Missing > 0 {
		summary += fmt.Sprintf(", %d missing", report.Summary.Missing)
	}
	fmt.Fprintln(w, summary)
}
