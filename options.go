package mmlwav

import (
	"io"
	"log"

	intmml "github.com/cbegin/mmlwav-go/internal/mml"
	intsynth "github.com/cbegin/mmlwav-go/internal/synth"
)

// DefaultSampleRate is the output rate used unless WithSampleRate is given.
const DefaultSampleRate = 48000

// ScoreConfig holds the performance state every conversion starts from.
type ScoreConfig = intmml.Config

func DefaultScoreConfig() ScoreConfig { return intmml.DefaultConfig() }

type Option func(*config)

type config struct {
	synth  intsynth.Config
	logger *log.Logger
}

func defaultConfig() config {
	cfg := intsynth.DefaultConfig()
	cfg.SampleRate = DefaultSampleRate
	return config{
		synth:  cfg,
		logger: log.New(io.Discard, "", 0),
	}
}

func newConfig(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

func WithSampleRate(sampleRate int) Option {
	return func(cfg *config) {
		if sampleRate > 0 {
			cfg.synth.SampleRate = sampleRate
		}
	}
}

// WithMaxSeconds caps how much audio one conversion may buffer. Rendering
// stops at the first note that would cross the cap. 0 removes the cap.
func WithMaxSeconds(seconds float64) Option {
	return func(cfg *config) {
		if seconds >= 0 {
			cfg.synth.MaxSeconds = seconds
		}
	}
}

// WithInitialSeconds sizes the buffer allocated before the first note.
func WithInitialSeconds(seconds float64) Option {
	return func(cfg *config) {
		if seconds >= 0 {
			cfg.synth.InitialSeconds = seconds
		}
	}
}

// WithSeed seeds the noise waveform (@6).
func WithSeed(seed int64) Option {
	return func(cfg *config) {
		cfg.synth.Seed = seed
	}
}

// WithPreciseSine renders @0 with math.Sin instead of the polynomial.
func WithPreciseSine(enabled bool) Option {
	return func(cfg *config) {
		cfg.synth.PreciseSine = enabled
	}
}

func WithScoreConfig(score ScoreConfig) Option {
	return func(cfg *config) {
		cfg.synth.Score = score
	}
}

// WithLogger receives one summary line per conversion and truncation
// warnings. The default logger discards everything.
func WithLogger(logger *log.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}
