package tagging

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/bogem/id3v2/v2"

	"github.com/binaryphile/genre-fill/internal/artists"
	"github.com/binaryphile/genre-fill/internal/mpeg"
)

const (
	frameArtist   = "TPE1"
	frameUserText = "TXXX"

	// ID3v2.4 separates the values of a multi-valued text frame with NUL
	multiValueSeparator = "\x00"
)

// Snapshot is the tag state shown by Inspect.
type Snapshot struct {
	Version byte
	Genre   string
	Artists []string // raw TPE1 values
	Aux     []string // decoded auxiliary list, nil if absent
	AuxRaw  string   // undecoded auxiliary value, set even when it is malformed
}

// ReadExisting reads the artist state of an MP3 file.
func ReadExisting(path string) (Existing, error) {
	tag, err := open(path)
	if err != nil {
		return Existing{}, err
	}
	defer tag.Close()

	aux, _ := auxList(tag)
	return Existing{
		Values:     splitValues(tag.GetTextFrame(frameArtist).Text),
		Structured: aux,
	}, nil
}

// Inspect reads the frames this tool manages, for display.
func Inspect(path string) (Snapshot, error) {
	tag, err := open(path)
	if err != nil {
		return Snapshot{}, err
	}
	defer tag.Close()

	aux, raw := auxList(tag)
	return Snapshot{
		Version: tag.Version(),
		Genre:   tag.Genre(),
		Artists: splitValues(tag.GetTextFrame(frameArtist).Text),
		Aux:     aux,
		AuxRaw:  raw,
	}, nil
}

// Apply writes the decision to an MP3 file.
// This is boundary code - performs file I/O.
//
// Only the frames the decision marks are replaced; all other frames are
// kept. The tag is saved as ID3v2.4 UTF-8, which multi-value frames need.
// id3v2 writes the new file beside the original and renames it over, so a
// failed save leaves the original untouched.
func (d Decision) Apply(path string) error {
	if !d.Changes() {
		return nil
	}

	tag, err := open(path)
	if err != nil {
		return err
	}
	defer tag.Close()

	if err := checkWritable(path); err != nil {
		return classify(err)
	}

	tag.SetVersion(4)
	tag.SetDefaultEncoding(id3v2.EncodingUTF8)

	if d.WritesGenre() {
		tag.SetGenre(d.Genre)
	}

	if d.WritesArtists() {
		aux, err := artists.EncodeAux(d.Artists)
		if err != nil {
			return err
		}
		tag.AddTextFrame(frameArtist, id3v2.EncodingUTF8, d.Display())
		setAux(tag, aux)
	}

	if err := tag.Save(); err != nil {
		return classify(fmt.Errorf("save tags: %w", err))
	}

	return nil
}

// open probes the container and parses its tag. Files without a tag get
// an empty one.
func open(path string) (*id3v2.Tag, error) {
	if err := mpeg.ProbeFile(path); err != nil {
		return nil, classify(err)
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return nil, classify(fmt.Errorf("open mp3: %w", err))
		}
		return nil, fmt.Errorf("%w: parse tag: %w", ErrNotAudio, err)
	}
	return tag, nil
}

// checkWritable opens the file for writing without truncating it.
func checkWritable(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return err
	}
	return f.Close()
}

func splitValues(text string) []string {
	var values []string
	for _, v := range strings.Split(text, multiValueSeparator) {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}

// auxList finds our TXXX frame. A malformed value is reported raw with a
// nil list, so it is ignored by Decide and overwritten on the next write.
func auxList(tag *id3v2.Tag) ([]string, string) {
	for _, f := range tag.GetFrames(frameUserText) {
		udtf, ok := f.(id3v2.UserDefinedTextFrame)
		if !ok || udtf.Description != artists.AuxDescription {
			continue
		}
		list, err := artists.DecodeAux(udtf.Value)
		if err != nil {
			return nil, udtf.Value
		}
		return list, udtf.Value
	}
	return nil, ""
}

// setAux replaces our TXXX frame and keeps every other TXXX frame.
func setAux(tag *id3v2.Tag, value string) {
	// copy: DeleteFrames recycles the sequence backing GetFrames
	others := append([]id3v2.Framer(nil), tag.GetFrames(frameUserText)...)
	tag.DeleteFrames(frameUserText)
	for _, f := range others {
		if udtf, ok := f.(id3v2.UserDefinedTextFrame); ok && udtf.Description == artists.AuxDescription {
			continue
		}
		tag.AddFrame(frameUserText, f)
	}

	tag.AddUserDefinedTextFrame(id3v2.UserDefinedTextFrame{
		Encoding:    id3v2.EncodingUTF8,
		Description: artists.AuxDescription,
		Value:       value,
	})
}
