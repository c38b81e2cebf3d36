package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/binaryphile/genre-fill/internal/artists"
	"github.com/binaryphile/genre-fill/internal/tagging"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file> [file...]",
		Short: "Show the genre and artist frames of MP3 files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			failed := 0
			for _, path := range args {
				snap, err := tagging.Inspect(path)
				if err != nil {
					failed++
					color.New(color.FgRed).Fprintf(out, "%s: failed: %v\n", path, err)
					continue
				}
				printSnapshot(out, path, snap)
			}
			if failed > 0 {
				return fmt.Errorf("%d file(s) could not be read", failed)
			}
			return nil
		},
	}
}

func printSnapshot(w io.Writer, path string, snap tagging.Snapshot) {
	color.New(color.Bold).Fprintln(w, path)
	fmt.Fprintf(w, "  version: ID3v2.%d\n", snap.Version)
	fmt.Fprintf(w, "  genre:   %s\n", orNone(snap.Genre))

	quoted := make([]string, len(snap.Artists))
	for i, v := range snap.Artists {
		quoted[i] = fmt.Sprintf("%q", v)
	}
	fmt.Fprintf(w, "  artists: %s\n", orNone(strings.Join(quoted, ", ")))

	switch {
	case snap.Aux != nil:
		fmt.Fprintf(w, "  list:    %s\n", strings.Join(snap.Aux, artists.DisplaySeparator))
	case snap.AuxRaw != "":
		fmt.Fprintf(w, "  list:    malformed %q\n", snap.AuxRaw)
	default:
		fmt.Fprintln(w, "  list:    (none)")
	}
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
