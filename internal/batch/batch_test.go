package batch

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bogem/id3v2/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/binaryphile/genre-fill/internal/mpeg"
	"github.com/binaryphile/genre-fill/internal/tagging"
)

func writeMP3(t *testing.T, path, artist string) string {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, mpeg.SilentFrames(4), 0644))
	if artist != "" {
		tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
		require.NoError(t, err)
		tag.SetArtist(artist)
		require.NoError(t, tag.Save())
		require.NoError(t, tag.Close())
	}
	return path
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newRunner() *Runner {
	return NewRunner(zerolog.Nop(), nil)
}

func lines(r Report) []string {
	var out []string
	for _, res := range r.Results {
		out = append(out, res.Line())
	}
	return out
}

func TestRun_JazzScenario(t *testing.T) {
	path := writeMP3(t, filepath.Join(t.TempDir(), "so_what.mp3"), "")

	report := newRunner().Run(Request{
		Paths: []string{path},
		Input: tagging.Input{Genre: "Jazz", Artists: "Miles Davis, John Coltrane", Join: true},
	})

	require.Len(t, report.Results, 1)
	assert.Equal(t, path+": genre+artists updated", report.Results[0].Line())
	assert.Equal(t, Summary{Updated: 1}, report.Summary)

	snap, err := tagging.Inspect(path)
	require.NoError(t, err)
	assert.Equal(t, "Jazz", snap.Genre)
	assert.Equal(t, []string{"Miles Davis / John Coltrane"}, snap.Artists)
	assert.Equal(t, []string{"Miles Davis", "John Coltrane"}, snap.Aux)
}

func TestRun_NothingToUpdate(t *testing.T) {
	path := writeMP3(t, filepath.Join(t.TempDir(), "solo.mp3"), "SoloArtist")
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	report := newRunner().Run(Request{Paths: []string{path}})

	require.Len(t, report.Results, 1)
	assert.Equal(t, "skipped (nothing to update)", report.Results[0].Status())
	assert.Equal(t, Summary{Skipped: 1}, report.Summary)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestRun_StatusPerField(t *testing.T) {
	dir := t.TempDir()
	genreOnly := writeMP3(t, filepath.Join(dir, "a.mp3"), "")
	legacy := writeMP3(t, filepath.Join(dir, "b.mp3"), "aaa/bbb")

	report := newRunner().Run(Request{
		Paths: []string{genreOnly},
		Input: tagging.Input{Genre: "Soul"},
	})
	assert.Equal(t, "genre updated", report.Results[0].Status())

	report = newRunner().Run(Request{
		Paths: []string{legacy},
		Input: tagging.Input{Join: true},
	})
	assert.Equal(t, "artists updated", report.Results[0].Status())
	assert.True(t, report.Results[0].Decision.Migrated)
}

func TestRun_NonMP3InFolder(t *testing.T) {
	dir := t.TempDir()
	writeMP3(t, filepath.Join(dir, "01.mp3"), "")
	writeMP3(t, filepath.Join(dir, "cd2", "02.mp3"), "")
	cover := writeFile(t, filepath.Join(dir, "cover.jpg"), "jpeg bytes")
	cue := writeFile(t, filepath.Join(dir, "cd2", "disc.cue"), "FILE")
	require.NoError(t, os.Chmod(cover, 0444))
	coverBefore, _ := os.Stat(cover)

	report := newRunner().Run(Request{
		Paths: []string{dir},
		Input: tagging.Input{Genre: "Rock"},
	})

	assert.Equal(t, []string{
		filepath.Join(dir, "01.mp3") + ": genre updated",
		filepath.Join(dir, "cd2", "02.mp3") + ": genre updated",
		cue + ": skipped (not mp3)",
		cover + ": skipped (not mp3)",
	}, lines(report))
	assert.Equal(t, Summary{Updated: 2, Skipped: 2}, report.Summary)
	assert.Equal(t, []string{dir}, report.Dirs)

	coverAfter, _ := os.Stat(cover)
	assert.Equal(t, coverBefore.ModTime(), coverAfter.ModTime())
	data, _ := os.ReadFile(cue)
	assert.Equal(t, "FILE", string(data))
}

func TestRun_FailureDoesNotAbort(t *testing.T) {
	dir := t.TempDir()
	first := writeMP3(t, filepath.Join(dir, "1.mp3"), "")
	fake := writeFile(t, filepath.Join(dir, "2.mp3"), "definitely not audio")
	last := writeMP3(t, filepath.Join(dir, "3.mp3"), "")

	report := newRunner().Run(Request{
		Paths: []string{dir},
		Input: tagging.Input{Genre: "Pop"},
	})

	require.Len(t, report.Results, 3)
	assert.Equal(t, first, report.Results[0].Path)
	assert.Equal(t, Updated, report.Results[0].Outcome)

	assert.Equal(t, fake, report.Results[1].Path)
	assert.Equal(t, Failed, report.Results[1].Outcome)
	assert.True(t, errors.Is(report.Results[1].Err, tagging.ErrNotAudio))
	assert.True(t, strings.HasPrefix(report.Results[1].Status(), "failed: not an audio file"))

	assert.Equal(t, last, report.Results[2].Path)
	assert.Equal(t, Updated, report.Results[2].Outcome)

	assert.Equal(t, Summary{Updated: 2, Failed: 1}, report.Summary)
}

func TestRun_Idempotent(t *testing.T) {
	dir := t.TempDir()
	writeMP3(t, filepath.Join(dir, "a.mp3"), "x/y")
	writeMP3(t, filepath.Join(dir, "b.mp3"), "")
	req := Request{
		Paths: []string{dir},
		Input: tagging.Input{Genre: "Folk", Artists: "Joni Mitchell; James Taylor", Join: true},
	}

	newRunner().Run(req)
	first := inspectAll(t, dir)

	report := newRunner().Run(req)
	assert.Equal(t, first, inspectAll(t, dir))
	assert.Equal(t, Summary{Updated: 2}, report.Summary)
}

func TestRun_DryRunWritesNothing(t *testing.T) {
	path := writeMP3(t, filepath.Join(t.TempDir(), "dry.mp3"), "aaa/bbb")
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	report := newRunner().Run(Request{
		Paths:  []string{path},
		Input:  tagging.Input{Genre: "Jazz"},
		DryRun: true,
	})

	assert.Equal(t, "genre+artists updated (dry run)", report.Results[0].Status())
	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestRun_MissingAndEmpty(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)
	missing := filepath.Join(t.TempDir(), "gone")

	report := NewRunner(log, nil).Run(Request{Paths: []string{missing}})

	assert.True(t, report.NoMP3())
	assert.Empty(t, report.Results)
	assert.Equal(t, []string{missing}, report.Missing)
	assert.Equal(t, 1, report.Summary.Missing)
	assert.Contains(t, buf.String(), "missing path skipped")
}

func TestRun_NoInput(t *testing.T) {
	report := newRunner().Run(Request{})

	assert.True(t, report.NoMP3())
	assert.Equal(t, Summary{}, report.Summary)
}

type countingReporter struct {
	total    int
	advanced []string
	finished bool
}

func (c *countingReporter) Start(total int)     { c.total = total }
func (c *countingReporter) Advance(path string) { c.advanced = append(c.advanced, path) }
func (c *countingReporter) Finish()             { c.finished = true }

func TestRun_ReportsProgress(t *testing.T) {
	dir := t.TempDir()
	a := writeMP3(t, filepath.Join(dir, "a.mp3"), "")
	b := writeMP3(t, filepath.Join(dir, "b.mp3"), "")
	writeFile(t, filepath.Join(dir, "c.txt"), "")

	rep := &countingReporter{}
	NewRunner(zerolog.Nop(), rep).Run(Request{Paths: []string{dir}, Input: tagging.Input{Genre: "x"}})

	assert.Equal(t, 2, rep.total)
	assert.Equal(t, []string{a, b}, rep.advanced)
	assert.True(t, rep.finished)
}

func TestSummary_String(t *testing.T) {
	s := Summary{Updated: 3, Skipped: 2, Failed: 1}
	assert.Equal(t, "3 updated, 2 skipped, 1 failed", s.String())
}

func inspectAll(t *testing.T, dir string) map[string]tagging.Snapshot {
	t.Helper()

	out := map[string]tagging.Snapshot{}
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		snap, err := tagging.Inspect(filepath.Join(dir, e.Name()))
		require.NoError(t, err)
		out[e.Name()] = snap
	}
	return out
}
