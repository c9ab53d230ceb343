package mmlwav

import (
	"io"

	"github.com/pkg/errors"

	intsynth "github.com/cbegin/mmlwav-go/internal/synth"
	intwav "github.com/cbegin/mmlwav-go/internal/wavfile"
)

// ErrTruncated marks a conversion that hit the buffer ceiling. The samples
// produced before that point are still encoded.
var ErrTruncated = errors.New("mmlwav: output truncated at buffer limit")

// Result is the rendered audio and its scan counters: Samples, SampleRate,
// Notes, Rests, Params, Adjusted, Truncated, StoppedAt and Grows.
type Result struct {
	intsynth.Result
}

// Err returns ErrTruncated (wrapped with the stop offset) for partial
// results and nil otherwise.
func (r *Result) Err() error {
	if !r.Truncated {
		return nil
	}
	return errors.Wrapf(ErrTruncated, "stopped at byte %d", r.StoppedAt)
}

// Render converts score text to samples. Malformed input is skipped, so
// Render never fails; check Result.Truncated for partial output.
func Render(mmlText string, opts ...Option) *Result {
	cfg := newConfig(opts)
	return render(mmlText, cfg)
}

func render(mmlText string, cfg config) *Result {
	res := intsynth.New(cfg.synth).Render(mmlText)
	if res.Truncated {
		cfg.logger.Printf("warning: buffer limit reached at byte %d, keeping %.2fs of audio", res.StoppedAt, res.Seconds())
	}
	return &Result{res}
}

// Convert renders mmlText and writes it to path as a mono 16-bit WAV file.
// The error only reports output failures.
func Convert(mmlText string, path string, opts ...Option) (*Result, error) {
	cfg := newConfig(opts)
	res := render(mmlText, cfg)
	if err := intwav.WriteFile(path, res.Samples, res.SampleRate); err != nil {
		return res, err
	}
	cfg.logger.Printf("%s: %d notes, %d rests, %.2fs", path, res.Notes, res.Rests, res.Seconds())
	return res, nil
}

// WriteWAV writes res as a complete WAV file to w, which need not seek.
func WriteWAV(w io.Writer, res *Result) error {
	if _, err := w.Write(EncodeWAVPCM16LE(res.Samples, res.SampleRate)); err != nil {
		return errors.Wrap(err, "mmlwav: write wav")
	}
	return nil
}

func EncodeWAVPCM16LE(samples []int16, sampleRate int) []byte {
	return intwav.Encode(samples, sampleRate)
}

// ReadWAV decodes a file written by Convert, for verification.
func ReadWAV(path string) ([]int16, int, error) {
	return intwav.ReadFile(path)
}
