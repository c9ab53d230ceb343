package synth

import (
	"github.com/cbegin/mmlwav-go/internal/mml"
	"github.com/cbegin/mmlwav-go/internal/osc"
	"github.com/cbegin/mmlwav-go/internal/pcm"
)

type Config struct {
	SampleRate     int
	InitialSeconds float64 // capacity allocated before the first note
	MaxSeconds     float64 // hard ceiling on buffered audio, 0 = none
	Seed           int64   // noise waveform seed
	PreciseSine    bool
	Score          mml.Config
}

func DefaultConfig() Config {
	return Config{
		SampleRate:     48000,
		InitialSeconds: 120,
		MaxSeconds:     3600,
		Seed:           1,
		Score:          mml.DefaultConfig(),
	}
}

// Result is the rendered sample stream plus counters. Truncated is set when
// the buffer ceiling stopped rendering early; Samples then holds everything
// produced before that note.
type Result struct {
	Samples    []int16
	SampleRate int
	Notes      int
	Rests      int
	Params     int
	Adjusted   int // parameter commands that were clamped or ignored
	Truncated  bool
	StoppedAt  int // byte offset of the note that did not fit
	Grows      int
}

// Seconds is the length of the rendered audio.
func (r Result) Seconds() float64 {
	if r.SampleRate <= 0 {
		return 0
	}
	return float64(len(r.Samples)) / float64(r.SampleRate)
}

type Renderer struct {
	cfg Config
}

func New(cfg Config) *Renderer {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = DefaultConfig().SampleRate
	}
	if cfg.InitialSeconds < 0 {
		cfg.InitialSeconds = 0
	}
	return &Renderer{cfg: cfg}
}

func (r *Renderer) Config() Config { return r.cfg }

// Render scans src once and synthesizes every note and rest in order.
func (r *Renderer) Render(src string) Result {
	sr := r.cfg.SampleRate
	limit := 0
	if r.cfg.MaxSeconds > 0 {
		limit = int(r.cfg.MaxSeconds * float64(sr))
	}
	buf := pcm.New(int(r.cfg.InitialSeconds*float64(sr)), limit)
	o := osc.New(r.cfg.Seed)
	o.SetPreciseSine(r.cfg.PreciseSine)

	res := Result{SampleRate: sr, StoppedAt: -1}
	sc := mml.NewScanner(src, r.cfg.Score)
	for {
		evt, ok := sc.Next()
		if !ok {
			break
		}
		if evt.Type == mml.EventParam {
			res.Params++
			if evt.Outcome != mml.Applied {
				res.Adjusted++
			}
			continue
		}
		ns := SampleCount(evt.Seconds, sr)
		if err := buf.Reserve(ns); err != nil {
			res.Truncated = true
			res.StoppedAt = evt.Pos
			break
		}
		seg := buf.Extend(ns)
		if evt.Type == mml.EventRest {
			res.Rests++
			continue
		}
		renderNote(o, seg, evt, float64(sr))
		res.Notes++
	}
	res.Samples = buf.Samples()
	res.Grows = buf.Grows()
	return res
}

// SampleCount truncates seconds*sampleRate to whole samples.
func SampleCount(seconds float64, sampleRate int) int {
	if seconds <= 0 {
		return 0
	}
	return int(seconds * float64(sampleRate))
}

// renderNote fills the gated head of seg with one continuous oscillation
// and leaves the tail silent. seg arrives zeroed.
func renderNote(o *osc.Oscillator, seg []int16, evt mml.Event, sampleRate float64) {
	ns := len(seg)
	play := int(float64(ns) * mml.GateRatio(evt.Gate))
	if play > ns {
		play = ns
	}
	o.SetWaveform(evt.Waveform)
	o.Reset()
	for j := 0; j < play; j++ {
		seg[j] = osc.Quantize(o.Next(evt.Freq, sampleRate), evt.Volume)
	}
}
