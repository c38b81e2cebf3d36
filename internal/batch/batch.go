// Package batch runs one tagging pass over a selection of files.
package batch

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/binaryphile/genre-fill/internal/collect"
	"github.com/binaryphile/genre-fill/internal/progress"
	"github.com/binaryphile/genre-fill/internal/tagging"
)

// Request is one run's input.
type Request struct {
	Paths  []string
	Input  tagging.Input
	DryRun bool // decide and report, write nothing
}

// Outcome classifies a FileResult.
type Outcome int

const (
	Updated Outcome = iota
	SkippedNotMP3
	SkippedNothing
	Failed
)

// FileResult is the outcome for one file.
type FileResult struct {
	Path     string
	Outcome  Outcome
	Decision tagging.Decision // set for Updated
	DryRun   bool
	Err      error // set for Failed
}

// Status is the human-readable outcome used in result lines.
func (r FileResult) Status() string {
	switch r.Outcome {
	case Updated:
		status := "updated"
		switch {
		case r.Decision.WritesGenre() && r.Decision.WritesArtists():
			status = "genre+artists updated"
		case r.Decision.WritesGenre():
			status = "genre updated"
		case r.Decision.WritesArtists():
			status = "artists updated"
		}
		if r.DryRun {
			status += " (dry run)"
		}
		return status
	case SkippedNotMP3:
		return "skipped (not mp3)"
	case SkippedNothing:
		return "skipped (nothing to update)"
	default:
		return fmt.Sprintf("failed: %v", r.Err)
	}
}

// Line formats the result as "<path>: <status>".
func (r FileResult) Line() string {
	return r.Path + ": " + r.Status()
}

// Summary counts outcomes.
type Summary struct {
	Updated int
	Skipped int
	Failed  int
	Missing int
}

func (s Summary) String() string {
	return fmt.Sprintf("%d updated, %d skipped, %d failed", s.Updated, s.Skipped, s.Failed)
}

// Report is everything a run produced.
type Report struct {
	Results []FileResult // MP3 files in collection order, then non-MP3 files
	Missing []string
	Dirs    []string // selected directories, for the recent-folders store
	Found   int      // MP3 files collected
	Summary Summary
}

// NoMP3 reports whether the selection held no MP3 file at all.
func (r Report) NoMP3() bool {
	return r.Found == 0
}

// Runner executes requests one file at a time.
type Runner struct {
	log      zerolog.Logger
	progress progress.Reporter
}

// NewRunner creates a Runner. A nil reporter disables progress.
func NewRunner(log zerolog.Logger, reporter progress.Reporter) *Runner {
	if reporter == nil {
		reporter = progress.Nop{}
	}
	return &Runner{log: log, progress: reporter}
}

// Run collects the selection and tags every MP3 in it. It never fails:
// each problem is local to one file and reported in its FileResult.
func (r *Runner) Run(req Request) Report {
	c := collect.Collect(req.Paths)
	for _, p := range c.Missing {
		r.log.Warn().Str("path", p).Msg("missing path skipped")
	}

	report := Report{
		Results: make([]FileResult, 0, len(c.Files)+len(c.NotMP3)),
		Missing: c.Missing,
		Dirs:    c.Dirs,
		Found:   len(c.Files),
	}

	r.progress.Start(len(c.Files))
	for _, path := range c.Files {
		report.Results = append(report.Results, r.processFile(path, req))
		r.progress.Advance(path)
	}
	r.progress.Finish()

	for _, path := range c.NotMP3 {
		report.Results = append(report.Results, FileResult{Path: path, Outcome: SkippedNotMP3})
	}

	report.Summary = summarize(report.Results, len(c.Missing))
	return report
}

func (r *Runner) processFile(path string, req Request) FileResult {
	log := r.log.With().Str("path", path).Logger()

	existing, err := tagging.ReadExisting(path)
	if err != nil {
		log.Debug().Err(err).Msg("read failed")
		return FileResult{Path: path, Outcome: Failed, Err: err}
	}

	d := tagging.Decide(req.Input, existing)
	log.Debug().
		Str("genre", d.Genre).
		Strs("artists", d.Artists).
		Bool("join", d.Join).
		Bool("migrated", d.Migrated).
		Msg("decision")

	if !d.Changes() {
		return FileResult{Path: path, Outcome: SkippedNothing}
	}

	if !req.DryRun {
		if err := d.Apply(path); err != nil {
			log.Debug().Err(err).Msg("write failed")
			return FileResult{Path: path, Outcome: Failed, Err: err}
		}
	}

	return FileResult{Path: path, Outcome: Updated, Decision: d, DryRun: req.DryRun}
}

func summarize(results []FileResult, missing int) Summary {
	s := Summary{Missing: missing}
	for _, res := range results {
		switch res.Outcome {
		case Updated:
			s.Updated++
		case SkippedNotMP3, SkippedNothing:
			s.Skipped++
		case Failed:
			s.Failed++
		}
	}
	return s
}
